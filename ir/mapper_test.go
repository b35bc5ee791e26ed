package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skosovsky/toolgen/schemadef"
)

func testDefinition() *schemadef.Definition {
	return &schemadef.Definition{
		Classes: map[string]*schemadef.ClassDef{
			"Item": {Name: "Item"},
			"User": {Name: "User"},
		},
		Enums: map[string]*schemadef.EnumDef{
			"Priority": {Name: "Priority", Values: []string{"High"}},
		},
	}
}

func TestMapper_Map(t *testing.T) {
	m := NewMapper(testDefinition())
	tests := []struct {
		in   string
		want FieldType
	}{
		{"string", Primitive{Kind: PrimString}},
		{"int", Primitive{Kind: PrimInt}},
		{"float", Primitive{Kind: PrimFloat}},
		{"bool", Primitive{Kind: PrimBool}},
		{"image", Primitive{Kind: PrimUnknown}},
		{"", Primitive{Kind: PrimUnknown}},
		{"int?", Optional{Inner: Primitive{Kind: PrimInt}}},
		{"string[][]", List{Inner: List{Inner: Primitive{Kind: PrimString}}}},
		{"Item", ClassRef{Name: "Item"}},
		{"Priority", EnumRef{Name: "Priority"}},
		{"Missing", Unknown{Tag: "Missing"}},
		{"map<string, int>", Unknown{Tag: "map<string, int>"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, m.Map(schemadef.ParseType(tt.in)))
		})
	}
}

func TestMapper_StructuralRoundTrip(t *testing.T) {
	m := NewMapper(testDefinition())
	d := &schemadef.TypeDesc{
		Kind: schemadef.KindOptional,
		Elem: &schemadef.TypeDesc{
			Kind: schemadef.KindList,
			Elem: &schemadef.TypeDesc{Kind: schemadef.KindRef, Tag: "Item"},
		},
	}
	got := m.Map(d)
	assert.Equal(t, Optional{Inner: List{Inner: ClassRef{Name: "Item"}}}, got)
	assert.Equal(t, "nullable array of Item", Describe(got))
	assert.Equal(t, "nullable array of Item", got.String())
	assert.Equal(t, "*[]Item", GoType(got, Local))
	assert.Equal(t, "*[]types.Item", GoType(got, Qualified("types")))
}

func TestMapper_NilInputs(t *testing.T) {
	m := NewMapper(nil)
	assert.Equal(t, Primitive{Kind: PrimUnknown}, m.Map(nil))
	assert.Equal(t, List{Inner: Primitive{Kind: PrimUnknown}}, m.Map(&schemadef.TypeDesc{Kind: schemadef.KindList}))
	assert.Equal(t, Unknown{Tag: "Item"}, m.Map(schemadef.ParseType("Item")))
}

func TestMapper_MapField(t *testing.T) {
	m := NewMapper(testDefinition())

	ft, warns := m.MapField("User", "age", schemadef.ParseType("int"), true)
	assert.Equal(t, Optional{Inner: Primitive{Kind: PrimInt}}, ft)
	assert.Empty(t, warns)

	ft, _ = m.MapField("User", "age", schemadef.ParseType("int?"), true)
	assert.Equal(t, Optional{Inner: Primitive{Kind: PrimInt}}, ft, "optional must not double-wrap")

	ft, warns = m.MapField("User", "meta", schemadef.ParseType("map<string, int>[]"), false)
	assert.Equal(t, List{Inner: Unknown{Tag: "map<string, int>"}}, ft)
	require.Len(t, warns, 1)
	assert.Equal(t, Warning{Owner: "User", Field: "meta", Tag: "map<string, int>"}, warns[0])
	assert.Contains(t, warns[0].String(), "User.meta")
}

func TestRenderingsAreTotal(t *testing.T) {
	all := []FieldType{
		Primitive{Kind: PrimString}, Primitive{Kind: PrimInt}, Primitive{Kind: PrimFloat},
		Primitive{Kind: PrimBool}, Primitive{Kind: PrimUnknown}, Primitive{},
		Optional{}, List{}, ClassRef{}, EnumRef{}, Unknown{},
		Optional{Inner: Unknown{Tag: "x"}}, List{Inner: EnumRef{Name: "Priority"}},
	}
	for _, ft := range all {
		assert.NotEmpty(t, GoType(ft, nil), "%#v", ft)
		assert.NotEmpty(t, Describe(ft), "%#v", ft)
	}
	assert.Equal(t, "any", GoType(Optional{Inner: Unknown{Tag: "x"}}, nil))
	assert.Equal(t, "[]Priority", GoType(List{Inner: EnumRef{Name: "Priority"}}, nil))
}
