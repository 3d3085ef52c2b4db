// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"encoding/base64"
	"strconv"
	"unicode/utf8"

	"github.com/bureau-foundation/msgconv/lib/jsonnode"
	"github.com/bureau-foundation/msgconv/lib/message"
	"github.com/bureau-foundation/msgconv/lib/msgerr"
	"github.com/bureau-foundation/msgconv/lib/schema"
)

// Keys of the time and duration objects.
const (
	keySecs  = "secs"
	keyNsecs = "nsecs"
)

// ToJSON converts a record to a document tree. Object keys follow the
// type's field declaration order. The record must carry its type and
// hold every field in its Go shape (see package message).
func ToJSON(record *message.Record) (*jsonnode.Node, error) {
	if record == nil || record.Type == nil {
		return nil, msgerr.Mismatch("record has no type")
	}
	return recordNode(record, record.Type)
}

func recordNode(record *message.Record, t *schema.Type) (*jsonnode.Node, error) {
	object := jsonnode.Object()
	for _, field := range t.Fields {
		value, ok := record.Fields[field.Name]
		if !ok {
			return nil, msgerr.Mismatch("missing field").At(field.Name)
		}
		node, err := valueNode(field.Type, value)
		if err != nil {
			return nil, msgerr.At(err, field.Name)
		}
		object.Set(field.Name, node)
	}
	return object, nil
}

func valueNode(ft schema.FieldType, value any) (*jsonnode.Node, error) {
	switch ft.Kind {
	case schema.KindBool:
		v, ok := value.(bool)
		if !ok {
			return nil, shapeError(ft, value)
		}
		return jsonnode.Bool(v), nil
	case schema.KindInt8:
		v, ok := value.(int8)
		if !ok {
			return nil, shapeError(ft, value)
		}
		return signedNode(int64(v)), nil
	case schema.KindInt16:
		v, ok := value.(int16)
		if !ok {
			return nil, shapeError(ft, value)
		}
		return signedNode(int64(v)), nil
	case schema.KindInt32:
		v, ok := value.(int32)
		if !ok {
			return nil, shapeError(ft, value)
		}
		return signedNode(int64(v)), nil
	case schema.KindInt64:
		v, ok := value.(int64)
		if !ok {
			return nil, shapeError(ft, value)
		}
		return signedNode(v), nil
	case schema.KindUint8:
		v, ok := value.(uint8)
		if !ok {
			return nil, shapeError(ft, value)
		}
		return unsignedNode(uint64(v)), nil
	case schema.KindUint16:
		v, ok := value.(uint16)
		if !ok {
			return nil, shapeError(ft, value)
		}
		return unsignedNode(uint64(v)), nil
	case schema.KindUint32:
		v, ok := value.(uint32)
		if !ok {
			return nil, shapeError(ft, value)
		}
		return unsignedNode(uint64(v)), nil
	case schema.KindUint64:
		v, ok := value.(uint64)
		if !ok {
			return nil, shapeError(ft, value)
		}
		return unsignedNode(v), nil
	case schema.KindFloat32:
		v, ok := value.(float32)
		if !ok {
			return nil, shapeError(ft, value)
		}
		return floatNode(float64(v), 32), nil
	case schema.KindFloat64:
		v, ok := value.(float64)
		if !ok {
			return nil, shapeError(ft, value)
		}
		return floatNode(v, 64), nil
	case schema.KindString:
		v, ok := value.(string)
		if !ok {
			return nil, shapeError(ft, value)
		}
		// JSON text cannot carry arbitrary bytes; printing would
		// replace them with U+FFFD and change the record.
		if !utf8.ValidString(v) {
			return nil, msgerr.Malformed("string is not valid UTF-8")
		}
		return jsonnode.String(v), nil
	case schema.KindBytes:
		v, ok := value.([]byte)
		if !ok {
			return nil, shapeError(ft, value)
		}
		if ft.Fixed() && len(v) != ft.Length {
			return nil, msgerr.Mismatch("fixed byte array has %d bytes, want %d", len(v), ft.Length)
		}
		return jsonnode.String(base64.StdEncoding.EncodeToString(v)), nil
	case schema.KindTime:
		v, ok := value.(message.Time)
		if !ok {
			return nil, shapeError(ft, value)
		}
		return jsonnode.Object().
			Set(keySecs, unsignedNode(uint64(v.Sec))).
			Set(keyNsecs, unsignedNode(uint64(v.Nsec))), nil
	case schema.KindDuration:
		v, ok := value.(message.Duration)
		if !ok {
			return nil, shapeError(ft, value)
		}
		return jsonnode.Object().
			Set(keySecs, signedNode(int64(v.Sec))).
			Set(keyNsecs, signedNode(int64(v.Nsec))), nil
	case schema.KindMessage:
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
		return recordNode(nested, ft.Message)
	case schema.KindArray:
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
		items := make([]*jsonnode.Node, len(elements))
		for index, element := range elements {
			item, err := valueNode(*ft.Elem, element)
			if err != nil {
				return nil, msgerr.At(err, indexPath(index))
			}
			items[index] = item
		}
		return jsonnode.Array(items...), nil
	default:
		return nil, msgerr.Mismatch("unsupported field kind %s", ft.Kind)
	}
}

func signedNode(value int64) *jsonnode.Node {
	return jsonnode.Number(strconv.FormatInt(value, 10))
}

func unsignedNode(value uint64) *jsonnode.Node {
	return jsonnode.Number(strconv.FormatUint(value, 10))
}

func floatNode(value float64, bits int) *jsonnode.Node {
	text, finite := formatFloat(value, bits)
	if !finite {
		return jsonnode.String(text)
	}
	return jsonnode.Number(text)
}

// FromJSON builds a record of type t from a document tree. The tree
// must be an object holding every field of t; keys outside t are
// ignored. Numbers are range-checked against their declared widths.
func FromJSON(node *jsonnode.Node, t *schema.Type) (*message.Record, error) {
	if t == nil {
		return nil, msgerr.Mismatch("no record type")
	}
	return recordFromNode(node, t)
}

func recordFromNode(node *jsonnode.Node, t *schema.Type) (*message.Record, error) {
	if node == nil || node.Kind != jsonnode.KindObject {
		return nil, kindError(t.FullName()+" object", node)
	}
	record := &message.Record{Type: t, Fields: make(map[string]any, len(t.Fields))}
	for _, field := range t.Fields {
		member, ok := node.Get(field.Name)
		if !ok {
			return nil, msgerr.Mismatch("missing field").At(field.Name)
		}
		value, err := valueFromNode(field.Type, member)
		if err != nil {
			return nil, msgerr.At(err, field.Name)
		}
		record.Fields[field.Name] = value
	}
	return record, nil
}

func valueFromNode(ft schema.FieldType, node *jsonnode.Node) (any, error) {
	if node == nil {
		return nil, kindError(ft.String(), nil)
	}
	switch {
	case ft.Kind == schema.KindBool:
		if node.Kind != jsonnode.KindBool {
			return nil, kindError("boolean", node)
		}
		return node.Bool, nil
	case ft.Kind.IsInteger():
		return integerFromNode(ft.Kind, node)
	case ft.Kind.IsFloat():
		value, err := floatFromNode(ft.Kind, node)
		if err != nil {
			return nil, err
		}
		if ft.Kind == schema.KindFloat32 {
			return float32(value), nil
		}
		return value, nil
	case ft.Kind == schema.KindString:
		if node.Kind != jsonnode.KindString {
			return nil, kindError("string", node)
		}
		return node.Text, nil
	case ft.Kind == schema.KindBytes:
		return bytesFromNode(ft, node)
	case ft.Kind == schema.KindTime:
		secs, nsecs, err := pairFromNode(node, schema.KindUint32)
		if err != nil {
			return nil, err
		}
		return message.Time{Sec: secs.(uint32), Nsec: nsecs.(uint32)}, nil
	case ft.Kind == schema.KindDuration:
		secs, nsecs, err := pairFromNode(node, schema.KindInt32)
		if err != nil {
			return nil, err
		}
		return message.Duration{Sec: secs.(int32), Nsec: nsecs.(int32)}, nil
	case ft.Kind == schema.KindMessage:
		if ft.Message == nil {
			return nil, msgerr.Mismatch("unresolved message type %s", ft.Reference)
		}
		return recordFromNode(node, ft.Message)
	case ft.Kind == schema.KindArray:
		if ft.Elem == nil {
			return nil, msgerr.Mismatch("array field without element type")
		}
		if node.Kind != jsonnode.KindArray {
			return nil, kindError("array", node)
		}
		if ft.Fixed() && len(node.Items) != ft.Length {
			return nil, msgerr.Mismatch("fixed array has %d elements, want %d", len(node.Items), ft.Length)
		}
		elements := make([]any, len(node.Items))
		for index, item := range node.Items {
			element, err := valueFromNode(*ft.Elem, item)
			if err != nil {
				return nil, msgerr.At(err, indexPath(index))
			}
			elements[index] = element
		}
		return elements, nil
	default:
		return nil, msgerr.Mismatch("unsupported field kind %s", ft.Kind)
	}
}

func integerFromNode(kind schema.Kind, node *jsonnode.Node) (any, error) {
	if node.Kind != jsonnode.KindNumber {
		return nil, kindError(kind.String(), node)
	}
	signed, unsigned, err := parseInteger(node.Text, kind)
	if err != nil {
		return nil, err
	}
	return integerValue(kind, signed, unsigned), nil
}

func floatFromNode(kind schema.Kind, node *jsonnode.Node) (float64, error) {
	switch node.Kind {
	case jsonnode.KindNumber:
		return parseFloat(node.Text, kind)
	case jsonnode.KindString:
		if value, ok := parseSpecialFloat(node.Text); ok {
			return value, nil
		}
		return 0, msgerr.Mismatch("string %q is not a number for %s", node.Text, kind)
	default:
		return 0, kindError(kind.String(), node)
	}
}

// bytesFromNode accepts base64 text, or an array of integers in
// 0..255.
func bytesFromNode(ft schema.FieldType, node *jsonnode.Node) ([]byte, error) {
	var data []byte
	switch node.Kind {
	case jsonnode.KindString:
		decoded, err := base64.StdEncoding.DecodeString(node.Text)
		if err != nil {
			return nil, msgerr.Malformed("invalid base64: %v", err)
		}
		data = decoded
	case jsonnode.KindArray:
		data = make([]byte, len(node.Items))
		for index, item := range node.Items {
			value, err := integerFromNode(schema.KindUint8, item)
			if err != nil {
				return nil, msgerr.At(err, indexPath(index))
			}
			data[index] = value.(uint8)
		}
	default:
		return nil, kindError("base64 string", node)
	}
	if ft.Fixed() && len(data) != ft.Length {
		return nil, msgerr.Mismatch("fixed byte array has %d bytes, want %d", len(data), ft.Length)
	}
	return data, nil
}

// pairFromNode reads a {"secs", "nsecs"} object whose members are
// integers of kind.
func pairFromNode(node *jsonnode.Node, kind schema.Kind) (secs, nsecs any, err error) {
	if node.Kind != jsonnode.KindObject {
		return nil, nil, kindError("{secs, nsecs} object", node)
	}
	values := make([]any, 2)
	for index, key := range []string{keySecs, keyNsecs} {
		member, ok := node.Get(key)
		if !ok {
			return nil, nil, msgerr.Mismatch("missing field").At(key)
		}
		value, err := integerFromNode(kind, member)
		if err != nil {
			return nil, nil, msgerr.At(err, key)
		}
		values[index] = value
	}
	return values[0], values[1], nil
}

func kindError(want string, node *jsonnode.Node) error {
	if node == nil {
		return msgerr.Mismatch("expected %s, got nothing", want)
	}
	return msgerr.Mismatch("expected %s, got %s", want, node.Kind)
}

func shapeError(ft schema.FieldType, value any) error {
	return msgerr.Mismatch("value of type %T does not match field type %s", value, ft)
}

func indexPath(index int) string {
	return "[" + strconv.Itoa(index) + "]"
}
