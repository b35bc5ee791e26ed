// Package emit renders generated Go declarations for schema classes and enums.
//
// Output is deterministic: fields and variants keep their declaration order, casing is a
// pure function of the schema name, and every unit is gofmt'd. Each unit carries a
// "Code generated ... DO NOT EDIT." header and a Source provenance line.
package emit

import (
	"github.com/skosovsky/toolgen/ir"
	"github.com/skosovsky/toolgen/schemadef"
)

// DefaultPackage is used when no target package is given.
const DefaultPackage = "generated"

// Kind is the shape of a generated module.
type Kind string

const (
	KindStruct Kind = "struct"
	KindEnum   Kind = "enum"
)

// Field is one struct member. Name is the schema-declared name.
type Field struct {
	Name        string
	Type        ir.FieldType
	Description string
}

// Variant is one enum member: Name is the canonical snake_case name, Original the
// schema-declared one.
type Variant struct {
	Name     string
	Original string
}

// Module is a generated struct or enum. It is built once and never modified.
type Module struct {
	Name        string // schema-declared name
	Package     string
	Kind        Kind
	Description string
	Fields      []Field
	Variants    []Variant
	Provenance  string
}

// TypeName returns the Go identifier of the module.
func (m *Module) TypeName() string { return ir.TypeName(m.Name) }

// QualifiedName returns package.TypeName.
func (m *Module) QualifiedName() string { return packageName(m.Package) + "." + m.TypeName() }

// FileName is the canonical-cased type name with a .go suffix.
func (m *Module) FileName() string { return FileName(m.Name) }

// FileName returns the output file name for a schema type name.
func FileName(name string) string { return ir.Snake(name) + ".go" }

// Declaration is a package-level Go identifier and the schema declaration it comes from.
type Declaration struct {
	Ident  string
	Origin string
}

// Declarations lists the package-level identifiers the module emits: the type, and for
// enums every variant constant and the Values helper.
func (m *Module) Declarations() []Declaration {
	typeName := m.TypeName()
	origin := "class " + m.Name
	if m.Kind == KindEnum {
		origin = "enum " + m.Name
	}
	out := []Declaration{{Ident: typeName, Origin: origin}}
	if m.Kind != KindEnum {
		return out
	}
	for _, v := range m.Variants {
		out = append(out, Declaration{Ident: constName(typeName, v), Origin: origin + " variant " + v.Original})
	}
	return append(out, Declaration{Ident: typeName + "Values", Origin: origin + " values helper"})
}

func constName(typeName string, v Variant) string { return typeName + ir.Pascal(v.Original) }

// Unit is one emitted file.
type Unit struct {
	FileName string
	Module   *Module
	Source   []byte
}

// NewVariants canonicalizes schema enum values in order.
func NewVariants(values []string) []Variant {
	out := make([]Variant, len(values))
	for i, v := range values {
		out[i] = Variant{Name: ir.Snake(v), Original: v}
	}
	return out
}

func packageName(pkg string) string {
	if pkg == "" {
		return DefaultPackage
	}
	return pkg
}

func provenance(p string) string {
	if p == "" {
		return schemadef.UnknownSource
	}
	return p
}
