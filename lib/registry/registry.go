// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package registry maps (module, type name) pairs to resolved record
// types.
//
// A [Registry] holds parsed message definitions keyed by their fully
// qualified name ("geometry_msgs/Pose") and resolves them on demand
// into immutable [schema.Type] values, following field references to
// other definitions. Definitions come from explicit registration
// ([Registry.Register], [Registry.RegisterText]), from YAML schema
// files ([Registry.LoadFile]), from ROS-style .msg trees
// ([Registry.LoadDir]), or from the builtin packages embedded in the
// binary ([Builtin]).
//
// Consumers depend on the [Resolver] interface so tests can substitute
// a fixed set of types.
//
// A Registry is built once at startup. It is not safe for concurrent
// registration; concurrent Resolve calls on a registry that is no
// longer being modified are also not safe, since resolution caches.
package registry

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/bureau-foundation/msgconv/lib/msgerr"
	"github.com/bureau-foundation/msgconv/lib/schema"
)

// Resolver looks up a record type by module and type name.
type Resolver interface {
	// Resolve returns the type named typeName in module. typeName may
	// be qualified ("std_msgs/Header"), in which case module may be
	// empty. Fails with an [msgerr.UnknownType] error when the module
	// or the type does not exist.
	Resolve(module, typeName string) (*schema.Type, error)
}

// Registry is a set of message definitions and the types resolved
// from them.
type Registry struct {
	definitions map[string]*schema.Definition
	packages    map[string]int
	resolved    map[string]*schema.Type
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		definitions: make(map[string]*schema.Definition),
		packages:    make(map[string]int),
		resolved:    make(map[string]*schema.Type),
	}
}

// Register adds a parsed definition. Registering a definition whose
// canonical text matches an existing one under the same name is a
// no-op; a conflicting definition is an error.
func (r *Registry) Register(definition *schema.Definition) error {
	fullName := definition.FullName()
	if existing, ok := r.definitions[fullName]; ok {
		if existing.Text() == definition.Text() {
			return nil
		}
		return fmt.Errorf("conflicting definitions of %s", fullName)
	}
	r.definitions[fullName] = definition
	r.packages[definition.Package]++
	clear(r.resolved)
	return nil
}

// RegisterText parses definition text and registers it as pkg/name.
func (r *Registry) RegisterText(pkg, name, text string) error {
	definition, err := schema.ParseDefinition(pkg, name, text)
	if err != nil {
		return err
	}
	return r.Register(definition)
}

// NormalizeModule maps the spellings of a module identifier to its
// package name: "std_msgs", "std_msgs.msg", and "std_msgs/msg" are all
// "std_msgs".
func NormalizeModule(module string) string {
	module = strings.TrimSpace(module)
	for _, suffix := range []string{".msg", "/msg"} {
		module = strings.TrimSuffix(module, suffix)
	}
	return module
}

// Resolve implements [Resolver].
func (r *Registry) Resolve(module, typeName string) (*schema.Type, error) {
	fullName, err := r.qualify(module, typeName)
	if err != nil {
		return nil, err
	}
	return r.resolve(fullName, nil)
}

// qualify turns a module and a possibly qualified type name into a
// registered full name.
func (r *Registry) qualify(module, typeName string) (string, error) {
	pkg := NormalizeModule(module)
	typePackage, name := schema.SplitName(strings.TrimSpace(typeName))
	if typePackage != "" {
		typePackage = NormalizeModule(typePackage)
		if pkg != "" && pkg != typePackage {
			return "", msgerr.UnknownTypef("type %q does not belong to module %q", typeName, module)
		}
		pkg = typePackage
	}
	if name == "" {
		return "", msgerr.UnknownTypef("empty type name")
	}
	if pkg == "" {
		return "", msgerr.UnknownTypef("no module given for type %q", typeName)
	}

	if r.packages[pkg] == 0 {
		return "", msgerr.UnknownTypef("unknown module %q%s", module, didYouMean(suggest(r.Packages(), pkg)))
	}
	fullName := pkg + "/" + name
	if _, ok := r.definitions[fullName]; !ok {
		return "", msgerr.UnknownTypef("unknown type %q in module %q%s", name, pkg, didYouMean(r.Suggest(fullName)))
	}
	return fullName, nil
}

func (r *Registry) resolve(fullName string, stack []string) (*schema.Type, error) {
	if resolved, ok := r.resolved[fullName]; ok {
		return resolved, nil
	}
	if slices.Contains(stack, fullName) {
		return nil, fmt.Errorf("recursive type: %s", strings.Join(append(stack, fullName), " -> "))
	}
	definition, ok := r.definitions[fullName]
	if !ok {
		return nil, msgerr.UnknownTypef("unknown type %q", fullName)
	}
	stack = append(stack, fullName)

	resolved := &schema.Type{
		Package:   definition.Package,
		Name:      definition.Name,
		Fields:    make([]schema.Field, len(definition.Fields)),
		Constants: slices.Clone(definition.Constants),
	}
	for index, field := range definition.Fields {
		fieldType, err := r.resolveFieldType(field.Type, stack)
		if err != nil {
			return nil, fmt.Errorf("%s field %s: %w", fullName, field.Name, err)
		}
		resolved.Fields[index] = schema.Field{Name: field.Name, Type: fieldType}
	}

	r.resolved[fullName] = resolved
	return resolved, nil
}

func (r *Registry) resolveFieldType(fieldType schema.FieldType, stack []string) (schema.FieldType, error) {
	switch fieldType.Kind {
	case schema.KindMessage:
		nested, err := r.resolve(fieldType.Reference, stack)
		if err != nil {
			return schema.FieldType{}, err
		}
		fieldType.Message = nested
	case schema.KindArray:
		element, err := r.resolveFieldType(*fieldType.Elem, stack)
		if err != nil {
			return schema.FieldType{}, err
		}
		fieldType.Elem = &element
	}
	return fieldType, nil
}

// Validate resolves every registered definition and returns every
// failure joined.
func (r *Registry) Validate() error {
	var problems []string
	for _, name := range r.Names() {
		if _, err := r.resolve(name, nil); err != nil {
			problems = append(problems, err.Error())
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid definitions:\n  %s", strings.Join(problems, "\n  "))
	}
	return nil
}

// Names returns the full names of every registered definition,
// sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.definitions))
	for name := range r.definitions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Packages returns the names of every package with at least one
// registered definition, sorted.
func (r *Registry) Packages() []string {
	packages := make([]string, 0, len(r.packages))
	for pkg := range r.packages {
		packages = append(packages, pkg)
	}
	sort.Strings(packages)
	return packages
}

// Len returns the number of registered definitions.
func (r *Registry) Len() int {
	return len(r.definitions)
}

func didYouMean(names []string) string {
	if len(names) == 0 {
		return ""
	}
	return " (did you mean " + strings.Join(names, ", ") + "?)"
}
