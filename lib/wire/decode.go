// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"encoding/binary"
	"math"

	"github.com/bureau-foundation/msgconv/lib/message"
	"github.com/bureau-foundation/msgconv/lib/msgerr"
	"github.com/bureau-foundation/msgconv/lib/schema"
)

// maxZeroSizeElements caps the element count of an array whose
// elements encode to zero bytes (arrays of empty messages). Such a
// count consumes no input, so nothing else bounds the allocation.
const maxZeroSizeElements = 1 << 16

// Decode decodes a complete wire encoding of type t. It fails with a
// MalformedInput error when data ends before the last field, when a
// length prefix points past the end of data, or when bytes remain
// after the last field.
func Decode(data []byte, t *schema.Type) (*message.Record, error) {
	record, rest, err := DecodePrefix(data, t)
	if err != nil {
		return nil, err
	}
	if len(rest) > 0 {
		return nil, msgerr.Malformed("%d trailing bytes after %s at offset %d (input is %d bytes)",
			len(rest), t.FullName(), len(data)-len(rest), len(data))
	}
	return record, nil
}

// DecodePrefix decodes one record of type t from the front of data
// and returns it with the unconsumed remainder.
func DecodePrefix(data []byte, t *schema.Type) (*message.Record, []byte, error) {
	reader := &reader{data: data}
	record, err := reader.record(t)
	if err != nil {
		return nil, nil, err
	}
	return record, data[reader.offset:], nil
}

// reader consumes a wire encoding front to back.
type reader struct {
	data   []byte
	offset int
}

func (r *reader) remaining() int {
	return len(r.data) - r.offset
}

// take consumes n bytes.
func (r *reader) take(n int, what string) ([]byte, error) {
	if n > r.remaining() {
		return nil, msgerr.Malformed("unexpected end of input reading %s at offset %d: need %d bytes, have %d",
			what, r.offset, n, r.remaining())
	}
	chunk := r.data[r.offset : r.offset+n]
	r.offset += n
	return chunk, nil
}

func (r *reader) uint32(what string) (uint32, error) {
	chunk, err := r.take(4, what)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(chunk), nil
}

// length reads a length prefix and checks that at least
// length*minElementSize bytes follow it.
func (r *reader) length(what string, minElementSize int) (int, error) {
	prefixOffset := r.offset
	length, err := r.uint32(what + " length")
	if err != nil {
		return 0, err
	}
	if minElementSize == 0 {
		if length > maxZeroSizeElements {
			return 0, msgerr.Malformed("%s length %d at offset %d exceeds the limit of %d zero-size elements",
				what, length, prefixOffset, maxZeroSizeElements)
		}
		return int(length), nil
	}
	if uint64(length)*uint64(minElementSize) > uint64(r.remaining()) {
		return 0, msgerr.Malformed("%s length %d at offset %d runs past the end of input (%d bytes remain)",
			what, length, prefixOffset, r.remaining())
	}
	return int(length), nil
}

func (r *reader) record(t *schema.Type) (*message.Record, error) {
	record := &message.Record{Type: t, Fields: make(map[string]any, len(t.Fields))}
	for _, field := range t.Fields {
		value, err := r.value(field.Type)
		if err != nil {
			return nil, msgerr.At(err, field.Name)
		}
		record.Fields[field.Name] = value
	}
	return record, nil
}

func (r *reader) value(ft schema.FieldType) (any, error) {
	switch ft.Kind {
	case schema.KindBool:
		chunk, err := r.take(1, "bool")
		if err != nil {
			return nil, err
		}
		return chunk[0] != 0, nil
	case schema.KindInt8:
		chunk, err := r.take(1, "int8")
		if err != nil {
			return nil, err
		}
		return int8(chunk[0]), nil
	case schema.KindUint8:
		chunk, err := r.take(1, "uint8")
		if err != nil {
			return nil, err
		}
		return chunk[0], nil
	case schema.KindInt16:
		chunk, err := r.take(2, "int16")
		if err != nil {
			return nil, err
		}
		return int16(binary.LittleEndian.Uint16(chunk)), nil
	case schema.KindUint16:
		chunk, err := r.take(2, "uint16")
		if err != nil {
			return nil, err
		}
		return binary.LittleEndian.Uint16(chunk), nil
	case schema.KindInt32:
		v, err := r.uint32("int32")
		return int32(v), err
	case schema.KindUint32:
		return r.uint32("uint32")
	case schema.KindFloat32:
		v, err := r.uint32("float32")
		return math.Float32frombits(v), err
	case schema.KindInt64:
		chunk, err := r.take(8, "int64")
		if err != nil {
			return nil, err
		}
		return int64(binary.LittleEndian.Uint64(chunk)), nil
	case schema.KindUint64:
		chunk, err := r.take(8, "uint64")
		if err != nil {
			return nil, err
		}
		return binary.LittleEndian.Uint64(chunk), nil
	case schema.KindFloat64:
		chunk, err := r.take(8, "float64")
		if err != nil {
			return nil, err
		}
		return math.Float64frombits(binary.LittleEndian.Uint64(chunk)), nil
	case schema.KindString:
		length, err := r.length("string", 1)
		if err != nil {
			return nil, err
		}
		chunk, err := r.take(length, "string")
		if err != nil {
			return nil, err
		}
		return string(chunk), nil
	case schema.KindBytes:
		length := ft.Length
		if !ft.Fixed() {
			var err error
			if length, err = r.length("byte array", 1); err != nil {
				return nil, err
			}
		}
		chunk, err := r.take(length, "byte array")
		if err != nil {
			return nil, err
		}
		return append(make([]byte, 0, length), chunk...), nil
	case schema.KindTime:
		chunk, err := r.take(8, "time")
		if err != nil {
			return nil, err
		}
		return message.Time{
			Sec:  binary.LittleEndian.Uint32(chunk),
			Nsec: binary.LittleEndian.Uint32(chunk[4:]),
		}, nil
	case schema.KindDuration:
		chunk, err := r.take(8, "duration")
		if err != nil {
			return nil, err
		}
		return message.Duration{
			Sec:  int32(binary.LittleEndian.Uint32(chunk)),
			Nsec: int32(binary.LittleEndian.Uint32(chunk[4:])),
		}, nil
	case schema.KindMessage:
		if ft.Message == nil {
			return nil, msgerr.Mismatch("unresolved message type %s", ft.Reference)
		}
		return r.record(ft.Message)
	case schema.KindArray:
		return r.array(ft)
	default:
		return nil, msgerr.Mismatch("unsupported field kind %s", ft.Kind)
	}
}

func (r *reader) array(ft schema.FieldType) (any, error) {
	if ft.Elem == nil {
		return nil, msgerr.Mismatch("array field without element type")
	}
	length := ft.Length
	if !ft.Fixed() {
		var err error
		if length, err = r.length("array", ft.Elem.MinSize()); err != nil {
			return nil, err
		}
	}

	elements := make([]any, length)
	for index := range elements {
		element, err := r.value(*ft.Elem)
		if err != nil {
			return nil, msgerr.At(err, indexPath(index))
		}
		elements[index] = element
	}
	return elements, nil
}
