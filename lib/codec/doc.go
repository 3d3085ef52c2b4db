// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec converts records to and from documents.
//
// A record's document form is a [jsonnode.Node] tree. [ToJSON] builds
// one from a record, with object keys in field declaration order;
// [FromJSON] builds a record from one, checking every value against
// its declared field type:
//
//	bool                  true / false
//	integers              number; integral float literals (4.0, 1e3)
//	                      are accepted, fractional ones are not
//	float32, float64      number, or "NaN", "Infinity", "-Infinity"
//	string                string
//	uint8[], char[]       base64 string (standard alphabet, padded),
//	                      or an array of integers 0..255 on input
//	time, duration        {"secs": n, "nsecs": n}
//	nested message        object
//	arrays                array; fixed arrays must match their length
//
// Missing fields are a SchemaMismatch error and extra keys are
// ignored. Integer values outside their declared width are a
// ValueOutOfRange error, never silently truncated.
//
// Floats print as the shortest literal that reads back to the same
// value at the field's width, so a float32 0.1 prints as 0.1 rather
// than 0.10000000149011612.
//
// The tree is then printed in one of three [Format]s:
//
//   - JSON, via package jsonnode.
//   - YAML, block style with key order kept. Strings that would read
//     back as another type are quoted.
//   - CBOR, using Core Deterministic Encoding (RFC 8949 §4.2): sorted
//     map keys, smallest integer encoding, no indefinite-length items.
//     The same record always produces identical bytes. CBOR byte
//     strings read back as base64 text.
//
// [Diagnose] renders CBOR in diagnostic notation for inspection.
package codec
