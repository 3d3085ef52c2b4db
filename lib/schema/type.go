// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"strconv"
	"strings"
)

// FieldType is the declared type of a field.
type FieldType struct {
	// Kind is the field's kind.
	Kind Kind

	// Elem is the element type of a KindArray field. Elements are
	// never arrays themselves.
	Elem *FieldType

	// Length is the fixed element count of a KindArray or KindBytes
	// field. Zero means variable length (length-prefixed on the wire).
	Length int

	// Message is the nested type of a KindMessage field. Nil until the
	// field is resolved by a registry.
	Message *Type

	// Reference is the fully qualified name ("geometry_msgs/Point") of
	// a KindMessage field as written in its definition.
	Reference string
}

// Fixed reports whether an array or byte array has a fixed length.
func (ft FieldType) Fixed() bool {
	return ft.Length > 0
}

// String returns the definition-language spelling of the type.
func (ft FieldType) String() string {
	switch ft.Kind {
	case KindArray:
		if ft.Elem == nil {
			return "invalid[]"
		}
		return ft.Elem.String() + arraySuffix(ft.Length)
	case KindBytes:
		return "uint8" + arraySuffix(ft.Length)
	case KindMessage:
		if ft.Message != nil {
			return ft.Message.FullName()
		}
		return ft.Reference
	default:
		return ft.Kind.String()
	}
}

func arraySuffix(length int) string {
	if length > 0 {
		return "[" + strconv.Itoa(length) + "]"
	}
	return "[]"
}

// FixedSize returns the encoded size of the type and true when every
// value of the type encodes to the same number of bytes.
func (ft FieldType) FixedSize() (int, bool) {
	switch ft.Kind {
	case KindString:
		return 0, false
	case KindBytes:
		if ft.Fixed() {
			return ft.Length, true
		}
		return 0, false
	case KindMessage:
		if ft.Message == nil {
			return 0, false
		}
		return ft.Message.FixedSize()
	case KindArray:
		if !ft.Fixed() || ft.Elem == nil {
			return 0, false
		}
		elementSize, ok := ft.Elem.FixedSize()
		if !ok {
			return 0, false
		}
		return elementSize * ft.Length, true
	default:
		return ft.Kind.Width(), true
	}
}

// MinSize returns the smallest number of bytes any value of the type
// can encode to.
func (ft FieldType) MinSize() int {
	switch ft.Kind {
	case KindString:
		return 4
	case KindBytes:
		if ft.Fixed() {
			return ft.Length
		}
		return 4
	case KindMessage:
		if ft.Message == nil {
			return 0
		}
		return ft.Message.MinSize()
	case KindArray:
		if !ft.Fixed() {
			return 4
		}
		if ft.Elem == nil {
			return 0
		}
		return ft.Elem.MinSize() * ft.Length
	default:
		return ft.Kind.Width()
	}
}

// Field is a named, typed member of a record type.
type Field struct {
	Name string
	Type FieldType
}

// Constant is a named value declared alongside a type's fields.
// Constants occupy no space on the wire and do not appear in
// documents.
type Constant struct {
	Name  string
	Kind  Kind
	Value string
}

// Type is a resolved record type: the TypeDescriptor every codec
// interprets records against. A Type is immutable once a registry has
// resolved it.
type Type struct {
	// Package is the namespace the type belongs to ("std_msgs").
	Package string

	// Name is the type name within its package ("Header").
	Name string

	// Fields lists the type's fields in wire order.
	Fields []Field

	// Constants lists the type's declared constants.
	Constants []Constant
}

// FullName returns "package/Name".
func (t *Type) FullName() string {
	return t.Package + "/" + t.Name
}

// Field returns the field named name.
func (t *Type) Field(name string) (Field, bool) {
	for _, field := range t.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// FixedSize returns the encoded size of the type and true when every
// record of the type encodes to the same number of bytes.
func (t *Type) FixedSize() (int, bool) {
	total := 0
	for _, field := range t.Fields {
		size, ok := field.Type.FixedSize()
		if !ok {
			return 0, false
		}
		total += size
	}
	return total, true
}

// MinSize returns the smallest encoded size of any record of the type.
func (t *Type) MinSize() int {
	total := 0
	for _, field := range t.Fields {
		total += field.Type.MinSize()
	}
	return total
}

// Dependencies returns every message type t refers to, directly or
// transitively, each once, in depth-first order of first reference.
func (t *Type) Dependencies() []*Type {
	var ordered []*Type
	seen := map[string]bool{t.FullName(): true}

	var visit func(*Type)
	visit = func(current *Type) {
		for _, field := range current.Fields {
			nested := field.Type.message()
			if nested == nil || seen[nested.FullName()] {
				continue
			}
			seen[nested.FullName()] = true
			ordered = append(ordered, nested)
			visit(nested)
		}
	}
	visit(t)
	return ordered
}

// message returns the nested type of a message field or a message
// array, or nil.
func (ft FieldType) message() *Type {
	if ft.Kind == KindArray && ft.Elem != nil {
		return ft.Elem.Message
	}
	if ft.Kind == KindMessage {
		return ft.Message
	}
	return nil
}

// Text returns the canonical definition text of the type: constants
// first, then fields, one per line, without comments.
func (t *Type) Text() string {
	var builder strings.Builder
	for _, constant := range t.Constants {
		builder.WriteString(constant.Kind.String())
		builder.WriteByte(' ')
		builder.WriteString(constant.Name)
		builder.WriteByte('=')
		builder.WriteString(constant.Value)
		builder.WriteByte('\n')
	}
	for _, field := range t.Fields {
		builder.WriteString(field.Type.String())
		builder.WriteByte(' ')
		builder.WriteString(field.Name)
		builder.WriteByte('\n')
	}
	return builder.String()
}

// dependencySeparator separates sections of [Type.FullText].
var dependencySeparator = strings.Repeat("=", 80)

// FullText returns the canonical text of t followed by the text of
// every dependency, each introduced by a separator line and a
// "MSG: package/Name" header.
func (t *Type) FullText() string {
	var builder strings.Builder
	builder.WriteString(t.Text())
	for _, dependency := range t.Dependencies() {
		builder.WriteString(dependencySeparator)
		builder.WriteString("\nMSG: ")
		builder.WriteString(dependency.FullName())
		builder.WriteByte('\n')
		builder.WriteString(dependency.Text())
	}
	return builder.String()
}
