// Package schemadef describes the schema definitions consumed by the generator: classes with
// typed fields, enums with ordered variants, and functions with typed parameters and a return
// type. A Definition is loaded once per build and never mutated afterwards.
package schemadef

import (
	"context"
	"slices"
)

// UnknownSource is the provenance label used when a definition has no source file.
const UnknownSource = "unknown"

// TypeKind classifies a raw type descriptor.
type TypeKind string

const (
	KindPrimitive TypeKind = "primitive"
	KindOptional  TypeKind = "optional"
	KindList      TypeKind = "list"
	KindRef       TypeKind = "ref"
	KindOther     TypeKind = "other"
)

// TypeDesc is a raw type descriptor as written by the schema author.
// Tag holds the primitive name, the referenced type name, or the original text for KindOther.
// Elem is set for KindOptional and KindList.
type TypeDesc struct {
	Kind TypeKind
	Tag  string
	Elem *TypeDesc
}

// String returns the descriptor in the textual form accepted by ParseType.
func (d *TypeDesc) String() string {
	if d == nil {
		return ""
	}
	switch d.Kind {
	case KindOptional:
		return d.Elem.String() + "?"
	case KindList:
		return d.Elem.String() + "[]"
	default:
		return d.Tag
	}
}

// FieldDef is one declared class field.
type FieldDef struct {
	Name        string
	Type        *TypeDesc
	Optional    bool
	Description string
}

// ClassDef is a named class with fields in declaration order.
type ClassDef struct {
	Name        string
	Description string
	Fields      []FieldDef
}

// EnumDef is a named enum with variants in declaration order.
type EnumDef struct {
	Name        string
	Description string
	Values      []string
}

// ParamDef is one declared function parameter.
type ParamDef struct {
	Name        string
	Type        *TypeDesc
	Optional    bool
	Description string
}

// FunctionDef is a named function with parameters in declaration order.
type FunctionDef struct {
	Name        string
	Description string
	Params      []ParamDef
	Returns     *TypeDesc
}

// Definition is the full set of loaded definitions for one build.
type Definition struct {
	// Source labels the file the definition came from; empty means UnknownSource.
	Source    string
	Classes   map[string]*ClassDef
	Enums     map[string]*EnumDef
	Functions map[string]*FunctionDef
}

// Loader returns definitions for a source location. Implementations must not cache
// across builds.
type Loader interface {
	Load(ctx context.Context, location string) (*Definition, error)
}

// SourceLabel returns the provenance label, falling back to UnknownSource.
func (d *Definition) SourceLabel() string {
	if d == nil || d.Source == "" {
		return UnknownSource
	}
	return d.Source
}

// ClassNames returns class names sorted for deterministic iteration.
func (d *Definition) ClassNames() []string { return sortedKeys(d.Classes) }

// EnumNames returns enum names sorted for deterministic iteration.
func (d *Definition) EnumNames() []string { return sortedKeys(d.Enums) }

// FunctionNames returns function names sorted for deterministic iteration.
func (d *Definition) FunctionNames() []string { return sortedKeys(d.Functions) }

// IsClass reports whether name is a declared class.
func (d *Definition) IsClass(name string) bool {
	_, ok := d.Classes[name]
	return ok
}

// IsEnum reports whether name is a declared enum.
func (d *Definition) IsEnum(name string) bool {
	_, ok := d.Enums[name]
	return ok
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
