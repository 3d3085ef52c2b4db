// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package schema implements the msgconv commands that inspect the type
// registry: describe prints a type's canonical definition and wire
// facts, and types lists registered types with optional fuzzy
// filtering.
package schema
