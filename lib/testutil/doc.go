// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for msgconv packages.
//
// [WriteFile] and [ReadFile] create and read fixture files under a
// test's temporary directory. [DirNames] lists a directory, for tests
// that check a failed write left nothing behind.
//
// [RequireKind] asserts the msgerr classification of an error, which
// is what every layer's error tests check rather than message text.
//
// [CaptureLogger] returns a JSON slog logger writing into a buffer and
// [LogRecords] decodes what it captured, so tests can assert on
// structured log fields.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
package testutil
