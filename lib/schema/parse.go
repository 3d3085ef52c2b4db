// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// HeaderReference is the type a bare "Header" field refers to,
// regardless of the package the definition belongs to.
const HeaderReference = "std_msgs/Header"

var (
	fieldNamePattern   = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)
	packageNamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)
	typeNamePattern    = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)
)

// Definition is a parsed but unresolved message definition. Message
// field types carry a Reference and a nil Message until a registry
// resolves them.
type Definition struct {
	Package   string
	Name      string
	Fields    []Field
	Constants []Constant
}

// FullName returns "package/Name".
func (d *Definition) FullName() string {
	return d.Package + "/" + d.Name
}

// Text returns the canonical definition text, as [Type.Text] does for
// the resolved type.
func (d *Definition) Text() string {
	return (&Type{Fields: d.Fields, Constants: d.Constants}).Text()
}

// ValidatePackageName reports whether name is usable as a package.
func ValidatePackageName(name string) error {
	if !packageNamePattern.MatchString(name) {
		return fmt.Errorf("invalid package name %q", name)
	}
	return nil
}

// ValidateTypeName reports whether name is usable as a type name.
func ValidateTypeName(name string) error {
	if !typeNamePattern.MatchString(name) {
		return fmt.Errorf("invalid type name %q", name)
	}
	return nil
}

// SplitName splits a possibly qualified type name ("geometry_msgs/Point")
// into package and type. An unqualified name returns an empty package.
func SplitName(name string) (pkg, typeName string) {
	if index := strings.LastIndexByte(name, '/'); index >= 0 {
		return name[:index], name[index+1:]
	}
	return "", name
}

// ParseFieldType parses a field type as written in a definition:
// "base", "base[]", or "base[N]". Bare message references are
// qualified with pkg; "Header" always means std_msgs/Header.
//
// uint8 and char arrays parse as KindBytes. Arrays of arrays are an
// error.
func ParseFieldType(pkg, text string) (FieldType, error) {
	base, length, isArray, err := splitArray(text)
	if err != nil {
		return FieldType{}, err
	}

	element, err := parseBaseType(pkg, base)
	if err != nil {
		return FieldType{}, err
	}
	if !isArray {
		return element, nil
	}

	if base == "uint8" || base == "char" {
		return FieldType{Kind: KindBytes, Length: length}, nil
	}
	return FieldType{Kind: KindArray, Elem: &element, Length: length}, nil
}

// splitArray separates an array suffix from a type. length is 0 for a
// variable-length array.
func splitArray(text string) (base string, length int, isArray bool, err error) {
	open := strings.IndexByte(text, '[')
	if open < 0 {
		return text, 0, false, nil
	}
	if !strings.HasSuffix(text, "]") {
		return "", 0, false, fmt.Errorf("malformed array type %q", text)
	}
	base = text[:open]
	inner := text[open+1 : len(text)-1]
	if strings.ContainsAny(inner, "[]") || strings.ContainsAny(base, "[]") {
		return "", 0, false, fmt.Errorf("nested array type %q is not supported", text)
	}
	if inner == "" {
		return base, 0, true, nil
	}
	length, err = strconv.Atoi(inner)
	if err != nil || length <= 0 {
		return "", 0, false, fmt.Errorf("invalid array length in %q", text)
	}
	return base, length, true, nil
}

func parseBaseType(pkg, base string) (FieldType, error) {
	if base == "" {
		return FieldType{}, fmt.Errorf("empty type")
	}
	if kind, ok := primitiveNames[base]; ok {
		return FieldType{Kind: kind}, nil
	}

	reference := base
	switch referencePackage, referenceName := SplitName(base); {
	case base == "Header":
		reference = HeaderReference
	case referencePackage == "":
		if pkg == "" {
			return FieldType{}, fmt.Errorf("unqualified type %q outside a package", base)
		}
		if err := ValidateTypeName(referenceName); err != nil {
			return FieldType{}, err
		}
		reference = pkg + "/" + referenceName
	default:
		if err := ValidatePackageName(referencePackage); err != nil {
			return FieldType{}, err
		}
		if err := ValidateTypeName(referenceName); err != nil {
			return FieldType{}, err
		}
	}
	return FieldType{Kind: KindMessage, Reference: reference}, nil
}

// ParseDefinition parses message definition text: one field or
// constant per line, "#" starting a comment. Fields are "TYPE NAME".
// Constants are "TYPE NAME=VALUE" where TYPE is a primitive; a string
// constant's value is the rest of the line verbatim, comments included.
func ParseDefinition(pkg, name, text string) (*Definition, error) {
	if err := ValidatePackageName(pkg); err != nil {
		return nil, err
	}
	if err := ValidateTypeName(name); err != nil {
		return nil, err
	}

	definition := &Definition{Package: pkg, Name: name}
	seen := make(map[string]bool)

	for lineNumber, line := range strings.Split(text, "\n") {
		constant, field, err := parseLine(pkg, line)
		if err != nil {
			return nil, fmt.Errorf("%s/%s line %d: %w", pkg, name, lineNumber+1, err)
		}

		var declared string
		switch {
		case constant != nil:
			declared = constant.Name
		case field != nil:
			declared = field.Name
		default:
			continue
		}
		if seen[declared] {
			return nil, fmt.Errorf("%s/%s line %d: duplicate name %q", pkg, name, lineNumber+1, declared)
		}
		seen[declared] = true

		if constant != nil {
			definition.Constants = append(definition.Constants, *constant)
		} else {
			definition.Fields = append(definition.Fields, *field)
		}
	}
	return definition, nil
}

// parseLine returns the constant or field declared on one line, or
// neither for blank and comment lines.
func parseLine(pkg, line string) (*Constant, *Field, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return nil, nil, nil
	}

	space := strings.IndexAny(trimmed, " \t")
	if space < 0 {
		return nil, nil, fmt.Errorf("expected \"TYPE NAME\", got %q", trimmed)
	}
	typeText := trimmed[:space]
	rest := strings.TrimLeft(trimmed[space:], " \t")

	equals := strings.IndexByte(rest, '=')
	comment := strings.IndexByte(rest, '#')
	if equals >= 0 && (comment < 0 || equals < comment) {
		constant, err := parseConstant(typeText, rest[:equals], rest[equals+1:])
		return constant, nil, err
	}

	fieldName := stripComment(rest)
	if !fieldNamePattern.MatchString(fieldName) {
		return nil, nil, fmt.Errorf("invalid field name %q", fieldName)
	}
	fieldType, err := ParseFieldType(pkg, typeText)
	if err != nil {
		return nil, nil, err
	}
	return nil, &Field{Name: fieldName, Type: fieldType}, nil
}

func parseConstant(typeText, nameText, valueText string) (*Constant, error) {
	kind, ok := primitiveNames[typeText]
	if !ok || !kind.isPrimitive() {
		return nil, fmt.Errorf("constant type %q is not a primitive", typeText)
	}
	name := strings.TrimSpace(nameText)
	if !fieldNamePattern.MatchString(name) {
		return nil, fmt.Errorf("invalid constant name %q", name)
	}

	var value string
	if kind == KindString {
		value = strings.TrimSpace(valueText)
	} else {
		value = stripComment(valueText)
		if err := checkConstantValue(kind, value); err != nil {
			return nil, fmt.Errorf("constant %s: %w", name, err)
		}
	}
	return &Constant{Name: name, Kind: kind, Value: value}, nil
}

func checkConstantValue(kind Kind, value string) error {
	var err error
	switch {
	case kind == KindBool:
		_, err = strconv.ParseBool(value)
	case kind.IsSigned():
		_, err = strconv.ParseInt(value, 0, kind.Bits())
	case kind.IsUnsigned():
		_, err = strconv.ParseUint(value, 0, kind.Bits())
	case kind.IsFloat():
		_, err = strconv.ParseFloat(value, kind.Bits())
	}
	if err != nil {
		return fmt.Errorf("invalid %s value %q", kind, value)
	}
	return nil
}

func stripComment(text string) string {
	if index := strings.IndexByte(text, '#'); index >= 0 {
		text = text[:index]
	}
	return strings.TrimSpace(text)
}
