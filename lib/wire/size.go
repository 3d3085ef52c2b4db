// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"github.com/bureau-foundation/msgconv/lib/message"
	"github.com/bureau-foundation/msgconv/lib/msgerr"
	"github.com/bureau-foundation/msgconv/lib/schema"
)

// Size returns the exact length of the wire encoding of record. It
// fails on the same records [Encode] fails on.
func Size(record *message.Record) (int, error) {
	if record == nil || record.Type == nil {
		return 0, msgerr.Mismatch("record has no type")
	}
	return fieldsSize(record, record.Type)
}

func fieldsSize(record *message.Record, t *schema.Type) (int, error) {
	total := 0
	for _, field := range t.Fields {
		value, ok := record.Fields[field.Name]
		if !ok {
			return 0, msgerr.Mismatch("missing field").At(field.Name)
		}
		size, err := valueSize(field.Type, value)
		if err != nil {
			return 0, msgerr.At(err, field.Name)
		}
		total += size
	}
	return total, nil
}

func valueSize(ft schema.FieldType, value any) (int, error) {
	switch ft.Kind {
	case schema.KindString:
		v, ok := value.(string)
		if !ok {
			return 0, shapeError(ft, value)
		}
		return 4 + len(v), nil
	case schema.KindBytes:
		v, ok := value.([]byte)
		if !ok {
			return 0, shapeError(ft, value)
		}
		if ft.Fixed() {
			if len(v) != ft.Length {
				return 0, msgerr.Mismatch("fixed byte array has %d bytes, want %d", len(v), ft.Length)
			}
			return len(v), nil
		}
		return 4 + len(v), nil
	case schema.KindMessage:
		nested, err := nestedRecord(ft, value)
		if err != nil {
			return 0, err
		}
		return fieldsSize(nested, ft.Message)
	case schema.KindArray:
		elements, err := arrayElements(ft, value)
		if err != nil {
			return 0, err
		}
		total := 0
		if !ft.Fixed() {
			total = 4
		}
		for index, element := range elements {
			size, err := valueSize(*ft.Elem, element)
			if err != nil {
				return 0, msgerr.At(err, indexPath(index))
			}
			total += size
		}
		return total, nil
	default:
		if err := checkScalarShape(ft, value); err != nil {
			return 0, err
		}
		return ft.Kind.Width(), nil
	}
}

// checkScalarShape checks the Go shape of a fixed-width scalar value.
func checkScalarShape(ft schema.FieldType, value any) error {
	var ok bool
	switch ft.Kind {
	case schema.KindBool:
		_, ok = value.(bool)
	case schema.KindInt8:
		_, ok = value.(int8)
	case schema.KindInt16:
		_, ok = value.(int16)
	case schema.KindInt32:
		_, ok = value.(int32)
	case schema.KindInt64:
		_, ok = value.(int64)
	case schema.KindUint8:
		_, ok = value.(uint8)
	case schema.KindUint16:
		_, ok = value.(uint16)
	case schema.KindUint32:
		_, ok = value.(uint32)
	case schema.KindUint64:
		_, ok = value.(uint64)
	case schema.KindFloat32:
		_, ok = value.(float32)
	case schema.KindFloat64:
		_, ok = value.(float64)
	case schema.KindTime:
		_, ok = value.(message.Time)
	case schema.KindDuration:
		_, ok = value.(message.Duration)
	default:
		return msgerr.Mismatch("unsupported field kind %s", ft.Kind)
	}
	if !ok {
		return shapeError(ft, value)
	}
	return nil
}
