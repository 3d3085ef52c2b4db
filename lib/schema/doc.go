// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package schema describes record types: the field model every codec
// interprets records against, and the message definition language
// types are written in.
//
// A definition lists one field per line in wire order:
//
//	# Standard metadata for higher-level stamped data types.
//	uint32 seq
//	time stamp
//	string frame_id
//
// Field types are primitives (bool, int8..int64, uint8..uint64,
// float32, float64, string, time, duration, and the aliases byte and
// char), references to other message types ("geometry_msgs/Point", a
// bare name in the same package, or "Header"), and single-level arrays
// of either ("float64[]", "float64[9]"). uint8 and char arrays are byte
// arrays. Lines of the form "TYPE NAME=VALUE" declare constants, which
// occupy no space on the wire.
//
// [ParseDefinition] produces an unresolved [Definition]; the registry
// package resolves references and produces an immutable [Type].
// [Type.Fingerprint] identifies a type's layout independent of the
// names of the packages its dependencies live in.
//
// This package depends on no other msgconv packages.
package schema
