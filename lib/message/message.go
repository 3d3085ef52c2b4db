// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package message defines the in-memory form of a record: a resolved
// type plus a value for each of its fields.
//
// Field values have a fixed Go shape per field kind:
//
//	bool                   bool
//	int8 .. int64          int8 .. int64
//	uint8 .. uint64        uint8 .. uint64
//	float32, float64       float32, float64
//	string                 string
//	uint8[], char[]        []byte
//	time                   Time
//	duration               Duration
//	nested message         *Record
//	array                  []any of the element shape
//
// Both codecs produce records in exactly these shapes and reject any
// other shape on encode. Arrays are never nil after decoding, so a
// decoded empty array compares equal to a constructed empty array.
package message

import (
	"fmt"

	"github.com/bureau-foundation/msgconv/lib/schema"
)

// Time is a point in time as unsigned seconds and nanoseconds since
// the epoch.
type Time struct {
	Sec  uint32
	Nsec uint32
}

// Duration is a signed span of seconds and nanoseconds.
type Duration struct {
	Sec  int32
	Nsec int32
}

// Record is an instance of a record type.
type Record struct {
	Type   *schema.Type
	Fields map[string]any
}

// New returns a record of type t with every field set to its zero
// value: zero numbers, empty strings, empty variable-length arrays,
// fixed-length arrays of zero elements, and zero nested records.
func New(t *schema.Type) *Record {
	record := &Record{Type: t, Fields: make(map[string]any, len(t.Fields))}
	for _, field := range t.Fields {
		record.Fields[field.Name] = Zero(field.Type)
	}
	return record
}

// Zero returns the zero value of a field type in its record shape.
func Zero(ft schema.FieldType) any {
	switch ft.Kind {
	case schema.KindBool:
		return false
	case schema.KindInt8:
		return int8(0)
	case schema.KindInt16:
		return int16(0)
	case schema.KindInt32:
		return int32(0)
	case schema.KindInt64:
		return int64(0)
	case schema.KindUint8:
		return uint8(0)
	case schema.KindUint16:
		return uint16(0)
	case schema.KindUint32:
		return uint32(0)
	case schema.KindUint64:
		return uint64(0)
	case schema.KindFloat32:
		return float32(0)
	case schema.KindFloat64:
		return float64(0)
	case schema.KindString:
		return ""
	case schema.KindBytes:
		return make([]byte, ft.Length)
	case schema.KindTime:
		return Time{}
	case schema.KindDuration:
		return Duration{}
	case schema.KindMessage:
		if ft.Message == nil {
			return nil
		}
		return New(ft.Message)
	case schema.KindArray:
		elements := make([]any, ft.Length)
		for index := range elements {
			elements[index] = Zero(*ft.Elem)
		}
		return elements
	default:
		return nil
	}
}

// Get returns the value of the named field.
func (r *Record) Get(name string) (any, bool) {
	value, ok := r.Fields[name]
	return value, ok
}

// Set assigns the named field. The value is not checked against the
// field's kind until the record is encoded.
func (r *Record) Set(name string, value any) {
	if r.Fields == nil {
		r.Fields = make(map[string]any)
	}
	r.Fields[name] = value
}

// String renders the record for debugging and test failure output.
func (r *Record) String() string {
	if r == nil {
		return "<nil>"
	}
	name := "<untyped>"
	if r.Type != nil {
		name = r.Type.FullName()
	}
	return fmt.Sprintf("%s%v", name, r.Fields)
}
