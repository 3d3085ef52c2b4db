// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import "fmt"

// Kind is the declared kind of a field.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindBool
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindFloat32
	KindFloat64
	KindString

	// KindBytes is a byte array: uint8[] or char[] (and the fixed
	// forms uint8[N], char[N]). Byte arrays are raw bytes on the wire
	// and base64 text in documents.
	KindBytes

	// KindTime is a point in time: unsigned seconds and nanoseconds.
	KindTime

	// KindDuration is a signed span: seconds and nanoseconds.
	KindDuration

	// KindMessage is a nested record of another type.
	KindMessage

	// KindArray is a fixed- or variable-length array of a non-array
	// element type.
	KindArray
)

// primitiveNames maps definition-language names to kinds. byte and
// char are the historical aliases for int8 and uint8.
var primitiveNames = map[string]Kind{
	"bool":     KindBool,
	"int8":     KindInt8,
	"int16":    KindInt16,
	"int32":    KindInt32,
	"int64":    KindInt64,
	"uint8":    KindUint8,
	"uint16":   KindUint16,
	"uint32":   KindUint32,
	"uint64":   KindUint64,
	"float32":  KindFloat32,
	"float64":  KindFloat64,
	"string":   KindString,
	"time":     KindTime,
	"duration": KindDuration,
	"byte":     KindInt8,
	"char":     KindUint8,
}

// String returns the definition-language name of the kind.
func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt8:
		return "int8"
	case KindInt16:
		return "int16"
	case KindInt32:
		return "int32"
	case KindInt64:
		return "int64"
	case KindUint8:
		return "uint8"
	case KindUint16:
		return "uint16"
	case KindUint32:
		return "uint32"
	case KindUint64:
		return "uint64"
	case KindFloat32:
		return "float32"
	case KindFloat64:
		return "float64"
	case KindString:
		return "string"
	case KindBytes:
		return "bytes"
	case KindTime:
		return "time"
	case KindDuration:
		return "duration"
	case KindMessage:
		return "message"
	case KindArray:
		return "array"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Width returns the encoded size in bytes of a fixed-width scalar kind,
// or 0 for kinds whose size depends on the value.
func (k Kind) Width() int {
	switch k {
	case KindBool, KindInt8, KindUint8:
		return 1
	case KindInt16, KindUint16:
		return 2
	case KindInt32, KindUint32, KindFloat32:
		return 4
	case KindInt64, KindUint64, KindFloat64, KindTime, KindDuration:
		return 8
	default:
		return 0
	}
}

// IsInteger reports whether k is a signed or unsigned integer kind.
func (k Kind) IsInteger() bool {
	return k.IsSigned() || k.IsUnsigned()
}

// IsSigned reports whether k is a signed integer kind.
func (k Kind) IsSigned() bool {
	return k >= KindInt8 && k <= KindInt64
}

// IsUnsigned reports whether k is an unsigned integer kind.
func (k Kind) IsUnsigned() bool {
	return k >= KindUint8 && k <= KindUint64
}

// IsFloat reports whether k is a floating-point kind.
func (k Kind) IsFloat() bool {
	return k == KindFloat32 || k == KindFloat64
}

// Bits returns the bit width of an integer or floating-point kind, or
// 0 for other kinds.
func (k Kind) Bits() int {
	if k.IsInteger() || k.IsFloat() {
		return k.Width() * 8
	}
	return 0
}

// isPrimitive reports whether k can appear as a constant type.
func (k Kind) isPrimitive() bool {
	return k == KindBool || k == KindString || k.IsInteger() || k.IsFloat()
}
