package actions

import (
	"github.com/goccy/go-json"
	"github.com/invopop/jsonschema"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/skosovsky/toolgen/ir"
	"github.com/skosovsky/toolgen/schemadef"
)

// defsPrefix is the reference prefix for class and enum definitions.
const defsPrefix = "#/$defs/"

type schemaBuilder struct {
	def  *schemadef.Definition
	m    *ir.Mapper
	defs jsonschema.Definitions
}

// ParamSchema returns the JSON Schema of an action's arguments: an object whose properties
// follow the declared parameter order. Nullable arguments are optional and accept null;
// referenced classes and enums are emitted under $defs. def may be nil, in which case
// references are left unconstrained.
func ParamSchema(args []Arg, description string, def *schemadef.Definition, m *ir.Mapper) *jsonschema.Schema {
	if m == nil {
		m = ir.NewMapper(def)
	}
	b := &schemaBuilder{def: def, m: m, defs: jsonschema.Definitions{}}
	var props *orderedmap.OrderedMap[string, *jsonschema.Schema] = jsonschema.NewProperties()
	required := []string{}
	for _, a := range args {
		s := b.schemaFor(a.Type)
		if a.Description != "" {
			s = withDescription(s, a.Description)
		}
		props.Set(a.Name, s)
		if !a.Nullable {
			required = append(required, a.Name)
		}
	}
	root := &jsonschema.Schema{
		Type:                 "object",
		Description:          description,
		Properties:           props,
		Required:             required,
		AdditionalProperties: jsonschema.FalseSchema,
	}
	if len(b.defs) > 0 {
		root.Definitions = b.defs
	}
	return root
}

// schemaMap converts s to the map form accepted by toolgen.NewDynamicTool.
func schemaMap(s *jsonschema.Schema) (map[string]any, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (b *schemaBuilder) schemaFor(t ir.FieldType) *jsonschema.Schema {
	switch v := t.(type) {
	case ir.Primitive:
		switch v.Kind {
		case ir.PrimString:
			return &jsonschema.Schema{Type: "string"}
		case ir.PrimInt:
			return &jsonschema.Schema{Type: "integer"}
		case ir.PrimFloat:
			return &jsonschema.Schema{Type: "number"}
		case ir.PrimBool:
			return &jsonschema.Schema{Type: "boolean"}
		}
	case ir.Optional:
		inner := b.schemaFor(v.Inner)
		if isAny(inner) {
			return inner
		}
		return &jsonschema.Schema{AnyOf: []*jsonschema.Schema{inner, {Type: "null"}}}
	case ir.List:
		return &jsonschema.Schema{Type: "array", Items: b.schemaFor(v.Inner)}
	case ir.ClassRef:
		if b.defineClass(v.Name) {
			return &jsonschema.Schema{Ref: defsPrefix + v.Name}
		}
	case ir.EnumRef:
		if b.defineEnum(v.Name) {
			return &jsonschema.Schema{Ref: defsPrefix + v.Name}
		}
	}
	return anySchema()
}

// defineClass adds the object schema of a class once. The placeholder is stored before the
// fields are visited so self-references terminate.
func (b *schemaBuilder) defineClass(name string) bool {
	if _, ok := b.defs[name]; ok {
		return true
	}
	if b.def == nil {
		return false
	}
	c, ok := b.def.Classes[name]
	if !ok {
		return false
	}
	s := &jsonschema.Schema{Type: "object", Description: c.Description, Properties: jsonschema.NewProperties()}
	b.defs[name] = s
	for _, f := range c.Fields {
		t, _ := b.m.MapField(name, f.Name, f.Type, f.Optional)
		fs := b.schemaFor(t)
		if f.Description != "" {
			fs = withDescription(fs, f.Description)
		}
		s.Properties.Set(f.Name, fs)
		if !ir.IsNullable(t) {
			s.Required = append(s.Required, f.Name)
		}
	}
	return true
}

// defineEnum adds a string schema listing the enum's original variant names.
func (b *schemaBuilder) defineEnum(name string) bool {
	if _, ok := b.defs[name]; ok {
		return true
	}
	if b.def == nil {
		return false
	}
	e, ok := b.def.Enums[name]
	if !ok {
		return false
	}
	values := make([]any, len(e.Values))
	for i, v := range e.Values {
		values[i] = v
	}
	b.defs[name] = &jsonschema.Schema{Type: "string", Description: e.Description, Enum: values}
	return true
}

// anySchema accepts every value.
func anySchema() *jsonschema.Schema { return &jsonschema.Schema{} }

func isAny(s *jsonschema.Schema) bool {
	return s.Type == "" && s.Ref == "" && s.AnyOf == nil && s.AllOf == nil && s.Items == nil &&
		s.Properties == nil && s.Enum == nil
}

// withDescription returns a copy of s carrying d; $ref schemas are wrapped so the
// reference stays intact.
func withDescription(s *jsonschema.Schema, d string) *jsonschema.Schema {
	if s.Ref != "" {
		return &jsonschema.Schema{AllOf: []*jsonschema.Schema{s}, Description: d}
	}
	c := *s
	c.Description = d
	return &c
}
