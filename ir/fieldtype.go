// Package ir is the closed intermediate representation for schema field types and its
// renderings as Go type expressions.
//
// Every raw descriptor maps to exactly one FieldType and every FieldType renders to a
// non-empty Go expression. Classes and enums are referenced by name only; resolution to a
// generated identifier happens at render time through a Qualifier.
package ir

// PrimitiveKind names a scalar type.
type PrimitiveKind string

const (
	PrimString  PrimitiveKind = "string"
	PrimInt     PrimitiveKind = "int"
	PrimFloat   PrimitiveKind = "float"
	PrimBool    PrimitiveKind = "bool"
	PrimUnknown PrimitiveKind = "unknown"
)

// FieldType is one of Primitive, Optional, List, ClassRef, EnumRef or Unknown.
type FieldType interface {
	isFieldType()
	// String returns the human-readable description (see Describe).
	String() string
}

// Primitive is a scalar of the given kind.
type Primitive struct{ Kind PrimitiveKind }

// Optional is a nullable Inner.
type Optional struct{ Inner FieldType }

// List is an ordered array of Inner.
type List struct{ Inner FieldType }

// ClassRef references a schema class by its declared name.
type ClassRef struct{ Name string }

// EnumRef references a schema enum by its declared name.
type EnumRef struct{ Name string }

// Unknown is a descriptor the mapper could not classify; Tag keeps the original text.
type Unknown struct{ Tag string }

func (Primitive) isFieldType() {}
func (Optional) isFieldType()  {}
func (List) isFieldType()      {}
func (ClassRef) isFieldType()  {}
func (EnumRef) isFieldType()   {}
func (Unknown) isFieldType()   {}

func (t Primitive) String() string { return Describe(t) }
func (t Optional) String() string  { return Describe(t) }
func (t List) String() string      { return Describe(t) }
func (t ClassRef) String() string  { return Describe(t) }
func (t EnumRef) String() string   { return Describe(t) }
func (t Unknown) String() string   { return Describe(t) }

// IsNullable reports whether t is Optional at the top level.
func IsNullable(t FieldType) bool {
	_, ok := t.(Optional)
	return ok
}

// Walk calls visit for t and every nested FieldType, outermost first.
func Walk(t FieldType, visit func(FieldType)) {
	for t != nil {
		visit(t)
		switch v := t.(type) {
		case Optional:
			t = v.Inner
		case List:
			t = v.Inner
		default:
			return
		}
	}
}
