// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"strings"
	"testing"
)

func TestParseFieldType(t *testing.T) {
	tests := []struct {
		text      string
		kind      Kind
		length    int
		elem      Kind
		reference string
	}{
		{text: "bool", kind: KindBool},
		{text: "byte", kind: KindInt8},
		{text: "char", kind: KindUint8},
		{text: "uint64", kind: KindUint64},
		{text: "time", kind: KindTime},
		{text: "duration", kind: KindDuration},
		{text: "string", kind: KindString},
		{text: "uint8[]", kind: KindBytes},
		{text: "char[16]", kind: KindBytes, length: 16},
		{text: "byte[]", kind: KindArray, elem: KindInt8},
		{text: "float64[9]", kind: KindArray, length: 9, elem: KindFloat64},
		{text: "string[]", kind: KindArray, elem: KindString},
		{text: "Header", kind: KindMessage, reference: "std_msgs/Header"},
		{text: "Point", kind: KindMessage, reference: "geometry_msgs/Point"},
		{text: "std_msgs/ColorRGBA", kind: KindMessage, reference: "std_msgs/ColorRGBA"},
		{text: "JointTrajectoryPoint[]", kind: KindArray, elem: KindMessage, reference: "geometry_msgs/JointTrajectoryPoint"},
	}

	for _, test := range tests {
		t.Run(test.text, func(t *testing.T) {
			fieldType, err := ParseFieldType("geometry_msgs", test.text)
			if err != nil {
				t.Fatalf("ParseFieldType(%q): %v", test.text, err)
			}
			if fieldType.Kind != test.kind {
				t.Errorf("Kind = %v, want %v", fieldType.Kind, test.kind)
			}
			if fieldType.Length != test.length {
				t.Errorf("Length = %d, want %d", fieldType.Length, test.length)
			}
			reference := fieldType.Reference
			if test.kind == KindArray {
				if fieldType.Elem == nil {
					t.Fatal("array without element type")
				}
				if fieldType.Elem.Kind != test.elem {
					t.Errorf("Elem.Kind = %v, want %v", fieldType.Elem.Kind, test.elem)
				}
				reference = fieldType.Elem.Reference
			}
			if reference != test.reference {
				t.Errorf("Reference = %q, want %q", reference, test.reference)
			}
		})
	}
}

func TestParseFieldTypeErrors(t *testing.T) {
	for _, text := range []string{
		"",
		"float64[][]",
		"float64[3][2]",
		"float64[0]",
		"float64[-1]",
		"float64[x]",
		"float64[",
		"bad-name",
		"pkg/bad-name",
	} {
		t.Run(text, func(t *testing.T) {
			if _, err := ParseFieldType("pkg", text); err == nil {
				t.Errorf("ParseFieldType(%q) succeeded, want error", text)
			}
		})
	}
}

func TestParseDefinition(t *testing.T) {
	text := `# Mesh triangle primitive.
uint8 BOX=1   # box
uint8 SPHERE = 2
string LABEL=hello # not a comment
float64 EPSILON=1e-9

uint8 type
float64[] dimensions	# sized by type
Header header
`
	definition, err := ParseDefinition("shape_msgs", "Primitive", text)
	if err != nil {
		t.Fatalf("ParseDefinition: %v", err)
	}

	if got := definition.FullName(); got != "shape_msgs/Primitive" {
		t.Errorf("FullName = %q", got)
	}

	wantConstants := []Constant{
		{Name: "BOX", Kind: KindUint8, Value: "1"},
		{Name: "SPHERE", Kind: KindUint8, Value: "2"},
		{Name: "LABEL", Kind: KindString, Value: "hello # not a comment"},
		{Name: "EPSILON", Kind: KindFloat64, Value: "1e-9"},
	}
	if len(definition.Constants) != len(wantConstants) {
		t.Fatalf("got %d constants, want %d", len(definition.Constants), len(wantConstants))
	}
	for index, want := range wantConstants {
		if definition.Constants[index] != want {
			t.Errorf("constant %d = %+v, want %+v", index, definition.Constants[index], want)
		}
	}

	wantFields := []string{"type", "dimensions", "header"}
	if len(definition.Fields) != len(wantFields) {
		t.Fatalf("got %d fields, want %d", len(definition.Fields), len(wantFields))
	}
	for index, name := range wantFields {
		if definition.Fields[index].Name != name {
			t.Errorf("field %d = %q, want %q", index, definition.Fields[index].Name, name)
		}
	}
	if definition.Fields[2].Type.Reference != HeaderReference {
		t.Errorf("header reference = %q", definition.Fields[2].Type.Reference)
	}
}

func TestParseDefinitionErrors(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		contains string
	}{
		{"duplicate field", "int32 x\nint32 x", "duplicate name"},
		{"field and constant collide", "int32 X=1\nint32 X", "duplicate name"},
		{"missing name", "int32", "TYPE NAME"},
		{"bad field name", "int32 9lives", "invalid field name"},
		{"message constant", "Header H=1", "not a primitive"},
		{"time constant", "time T=1", "not a primitive"},
		{"constant out of range", "uint8 BIG=300", "invalid uint8 value"},
		{"bad bool constant", "bool B=maybe", "invalid bool value"},
		{"nested array", "int32[][] grid", "nested array"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := ParseDefinition("pkg", "Type", test.text)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), test.contains) {
				t.Errorf("error = %q, want it to contain %q", err, test.contains)
			}
		})
	}
}

func TestParseDefinitionRejectsBadNames(t *testing.T) {
	if _, err := ParseDefinition("bad/pkg", "Type", ""); err == nil {
		t.Error("expected error for package with slash")
	}
	if _, err := ParseDefinition("pkg", "", ""); err == nil {
		t.Error("expected error for empty type name")
	}
}

func TestSplitName(t *testing.T) {
	pkg, name := SplitName("std_msgs/Header")
	if pkg != "std_msgs" || name != "Header" {
		t.Errorf("SplitName = %q, %q", pkg, name)
	}
	pkg, name = SplitName("Header")
	if pkg != "" || name != "Header" {
		t.Errorf("SplitName(unqualified) = %q, %q", pkg, name)
	}
}
