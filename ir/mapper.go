package ir

import (
	"fmt"

	"github.com/skosovsky/toolgen/schemadef"
)

var primitiveTags = map[string]PrimitiveKind{
	"string":  PrimString,
	"int":     PrimInt,
	"integer": PrimInt,
	"float":   PrimFloat,
	"number":  PrimFloat,
	"bool":    PrimBool,
	"boolean": PrimBool,
}

// Warning records a descriptor that degraded to a dynamically typed rendering.
// It is never fatal.
type Warning struct {
	Owner string // class or function name
	Field string // field or parameter name; empty for return types
	Tag   string // original descriptor text
}

func (w Warning) String() string {
	if w.Field == "" {
		return fmt.Sprintf("%s: type %q mapped to any", w.Owner, w.Tag)
	}
	return fmt.Sprintf("%s.%s: type %q mapped to any", w.Owner, w.Field, w.Tag)
}

// Mapper converts raw descriptors into FieldType using the definition's class and enum names.
type Mapper struct {
	def *schemadef.Definition
}

// NewMapper returns a Mapper resolving references against def. def may be nil, in which
// case every reference maps to Unknown.
func NewMapper(def *schemadef.Definition) *Mapper {
	return &Mapper{def: def}
}

// Map converts d to a FieldType. It is total: unrecognised input becomes Unknown or
// Primitive(unknown), never an error.
func (m *Mapper) Map(d *schemadef.TypeDesc) FieldType {
	if d == nil {
		return Primitive{Kind: PrimUnknown}
	}
	switch d.Kind {
	case schemadef.KindPrimitive:
		if k, ok := primitiveTags[d.Tag]; ok {
			return Primitive{Kind: k}
		}
		return Primitive{Kind: PrimUnknown}
	case schemadef.KindOptional:
		return Optional{Inner: m.Map(d.Elem)}
	case schemadef.KindList:
		return List{Inner: m.Map(d.Elem)}
	case schemadef.KindRef:
		switch {
		case m.def != nil && m.def.IsClass(d.Tag):
			return ClassRef{Name: d.Tag}
		case m.def != nil && m.def.IsEnum(d.Tag):
			return EnumRef{Name: d.Tag}
		}
	}
	return Unknown{Tag: d.String()}
}

// MapField maps a declared field or parameter. optional wraps the result in Optional unless
// it already is one. Degradations are returned as warnings.
func (m *Mapper) MapField(owner, field string, d *schemadef.TypeDesc, optional bool) (FieldType, []Warning) {
	t := m.Map(d)
	if optional && !IsNullable(t) {
		t = Optional{Inner: t}
	}
	return t, degradations(owner, field, d, t)
}

func degradations(owner, field string, d *schemadef.TypeDesc, t FieldType) []Warning {
	var out []Warning
	Walk(t, func(n FieldType) {
		switch v := n.(type) {
		case Unknown:
			out = append(out, Warning{Owner: owner, Field: field, Tag: v.Tag})
		case Primitive:
			if v.Kind == PrimUnknown {
				out = append(out, Warning{Owner: owner, Field: field, Tag: d.String()})
			}
		}
	})
	return out
}
