// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package wire implements the binary encoding of records.
//
// The encoding is the ROS1 serialization format. Fields are written in
// declaration order with no tags, names, or framing:
//
//   - bool, int8, uint8: one byte
//   - int16..int64, uint16..uint64, float32, float64: little-endian,
//     two to eight bytes
//   - time: uint32 seconds then uint32 nanoseconds
//   - duration: int32 seconds then int32 nanoseconds
//   - string, uint8[] (and char[]): uint32 byte count, then the bytes
//   - T[]: uint32 element count, then each element
//   - T[N], uint8[N]: exactly N elements, no count
//   - nested messages: their fields inline, no length
//
// Because the blob carries no type information, decoding with the
// wrong type is detected only when the input runs out early or has
// bytes left over. [Decode] treats leftover bytes as malformed input;
// [DecodePrefix] returns them.
//
// Strings are copied byte for byte and are not checked for valid
// UTF-8.
package wire
