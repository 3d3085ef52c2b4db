// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"encoding/binary"
	"math"
	"strconv"

	"github.com/bureau-foundation/msgconv/lib/message"
	"github.com/bureau-foundation/msgconv/lib/msgerr"
	"github.com/bureau-foundation/msgconv/lib/schema"
)

// Encode returns the wire encoding of record. Every field of the
// record's type must be present with a value of its kind's Go shape
// (see package message); keys outside the type are ignored.
func Encode(record *message.Record) ([]byte, error) {
	size, err := Size(record)
	if err != nil {
		return nil, err
	}
	return AppendRecord(make([]byte, 0, size), record)
}

// AppendRecord appends the wire encoding of record to buffer.
func AppendRecord(buffer []byte, record *message.Record) ([]byte, error) {
	if record == nil || record.Type == nil {
		return nil, msgerr.Mismatch("record has no type")
	}
	return appendFields(buffer, record, record.Type)
}

func appendFields(buffer []byte, record *message.Record, t *schema.Type) ([]byte, error) {
	for _, field := range t.Fields {
		value, ok := record.Fields[field.Name]
		if !ok {
			return nil, msgerr.Mismatch("missing field").At(field.Name)
		}
		var err error
		buffer, err = appendValue(buffer, field.Type, value)
		if err != nil {
			return nil, msgerr.At(err, field.Name)
		}
	}
	return buffer, nil
}

func appendValue(buffer []byte, ft schema.FieldType, value any) ([]byte, error) {
	switch ft.Kind {
	case schema.KindBool:
		v, ok := value.(bool)
		if !ok {
			return nil, shapeError(ft, value)
		}
		if v {
			return append(buffer, 1), nil
		}
		return append(buffer, 0), nil
	case schema.KindInt8:
		v, ok := value.(int8)
		if !ok {
			return nil, shapeError(ft, value)
		}
		return append(buffer, byte(v)), nil
	case schema.KindInt16:
		v, ok := value.(int16)
		if !ok {
			return nil, shapeError(ft, value)
		}
		return binary.LittleEndian.AppendUint16(buffer, uint16(v)), nil
	case schema.KindInt32:
		v, ok := value.(int32)
		if !ok {
			return nil, shapeError(ft, value)
		}
		return binary.LittleEndian.AppendUint32(buffer, uint32(v)), nil
	case schema.KindInt64:
		v, ok := value.(int64)
		if !ok {
			return nil, shapeError(ft, value)
		}
		return binary.LittleEndian.AppendUint64(buffer, uint64(v)), nil
	case schema.KindUint8:
		v, ok := value.(uint8)
		if !ok {
			return nil, shapeError(ft, value)
		}
		return append(buffer, v), nil
	case schema.KindUint16:
		v, ok := value.(uint16)
		if !ok {
			return nil, shapeError(ft, value)
		}
		return binary.LittleEndian.AppendUint16(buffer, v), nil
	case schema.KindUint32:
		v, ok := value.(uint32)
		if !ok {
			return nil, shapeError(ft, value)
		}
		return binary.LittleEndian.AppendUint32(buffer, v), nil
	case schema.KindUint64:
		v, ok := value.(uint64)
		if !ok {
			return nil, shapeError(ft, value)
		}
		return binary.LittleEndian.AppendUint64(buffer, v), nil
	case schema.KindFloat32:
		v, ok := value.(float32)
		if !ok {
			return nil, shapeError(ft, value)
		}
		return binary.LittleEndian.AppendUint32(buffer, math.Float32bits(v)), nil
	case schema.KindFloat64:
		v, ok := value.(float64)
		if !ok {
			return nil, shapeError(ft, value)
		}
		return binary.LittleEndian.AppendUint64(buffer, math.Float64bits(v)), nil
	case schema.KindString:
		v, ok := value.(string)
		if !ok {
			return nil, shapeError(ft, value)
		}
		buffer, err := appendLength(buffer, len(v))
		if err != nil {
			return nil, err
		}
		return append(buffer, v...), nil
	case schema.KindBytes:
		v, ok := value.([]byte)
		if !ok {
			return nil, shapeError(ft, value)
		}
		if ft.Fixed() {
			if len(v) != ft.Length {
				return nil, msgerr.Mismatch("fixed byte array has %d bytes, want %d", len(v), ft.Length)
			}
			return append(buffer, v...), nil
		}
		buffer, err := appendLength(buffer, len(v))
		if err != nil {
			return nil, err
		}
		return append(buffer, v...), nil
	case schema.KindTime:
		v, ok := value.(message.Time)
		if !ok {
			return nil, shapeError(ft, value)
		}
		buffer = binary.LittleEndian.AppendUint32(buffer, v.Sec)
		return binary.LittleEndian.AppendUint32(buffer, v.Nsec), nil
	case schema.KindDuration:
		v, ok := value.(message.Duration)
		if !ok {
			return nil, shapeError(ft, value)
		}
		buffer = binary.LittleEndian.AppendUint32(buffer, uint32(v.Sec))
		return binary.LittleEndian.AppendUint32(buffer, uint32(v.Nsec)), nil
	case schema.KindMessage:
		nested, err := nestedRecord(ft, value)
		if err != nil {
			return nil, err
		}
		return appendFields(buffer, nested, ft.Message)
	case schema.KindArray:
		elements, err := arrayElements(ft, value)
		if err != nil {
			return nil, err
		}
		if !ft.Fixed() {
			if buffer, err = appendLength(buffer, len(elements)); err != nil {
				return nil, err
			}
		}
		for index, element := range elements {
			buffer, err = appendValue(buffer, *ft.Elem, element)
			if err != nil {
				return nil, msgerr.At(err, indexPath(index))
			}
		}
		return buffer, nil
	default:
		return nil, msgerr.Mismatch("unsupported field kind %s", ft.Kind)
	}
}

func appendLength(buffer []byte, length int) ([]byte, error) {
	if uint64(length) > math.MaxUint32 {
		return nil, msgerr.OutOfRange("length %d exceeds the 32-bit length prefix", length)
	}
	return binary.LittleEndian.AppendUint32(buffer, uint32(length)), nil
}

// nestedRecord checks that value is a record of the field's message
// type. A record without a type is accepted and interpreted as the
// field's type.
func nestedRecord(ft schema.FieldType, value any) (*message.Record, error) {
	if ft.Message == nil {
		return nil, msgerr.Mismatch("unresolved message type %s", ft.Reference)
	}
	nested, ok := value.(*message.Record)
	if !ok || nested == nil {
		return nil, shapeError(ft, value)
	}
	if nested.Type != nil && nested.Type.FullName() != ft.Message.FullName() {
		return nil, msgerr.Mismatch("expected %s record, got %s", ft.Message.FullName(), nested.Type.FullName())
	}
	return nested, nil
}

// arrayElements checks that value is an array of the field's length.
func arrayElements(ft schema.FieldType, value any) ([]any, error) {
	if ft.Elem == nil {
		return nil, msgerr.Mismatch("array field without element type")
	}
	elements, ok := value.([]any)
	if !ok {
		return nil, shapeError(ft, value)
	}
	if ft.Fixed() && len(elements) != ft.Length {
		return nil, msgerr.Mismatch("fixed array has %d elements, want %d", len(elements), ft.Length)
	}
	return elements, nil
}

func shapeError(ft schema.FieldType, value any) error {
	return msgerr.Mismatch("value of type %T does not match field type %s", value, ft)
}

func indexPath(index int) string {
	return "[" + strconv.Itoa(index) + "]"
}
