package actions

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skosovsky/toolgen/ir"
	"github.com/skosovsky/toolgen/schemadef"
)

func TestSynthesize_ImportIdempotence(t *testing.T) {
	def := loadFixture(t)
	specs := synthesize(t, def, Imports("SupportClient", "TestFunction", "TestFunction")...)
	require.Len(t, specs, 2)

	syncSpec, streamSpec := specs[0], specs[1]
	assert.Equal(t, "test_function", syncSpec.Name)
	assert.Equal(t, TagSync, syncSpec.Tag)
	assert.Equal(t, CallFunction, syncSpec.Binding.Kind)
	assert.Equal(t, "test_function_stream", streamSpec.Name)
	assert.Equal(t, TagStream, streamSpec.Tag)
	assert.Equal(t, CallFunctionStreaming, streamSpec.Binding.Kind)
	for _, s := range specs {
		assert.Equal(t, "TestFunction", s.Function)
		assert.Equal(t, "TestFunction", s.Binding.Function)
		assert.Equal(t, "SupportClient", s.Binding.Module)
	}
	assert.Equal(t, "types.Resume", syncSpec.Return.GoType)
	assert.False(t, syncSpec.Return.Stream)
	assert.Equal(t, "*stream.Handle[types.Resume]", streamSpec.Return.GoType)
	assert.True(t, streamSpec.Return.Stream)
	assert.Equal(t, ir.ClassRef{Name: "Resume"}, streamSpec.Return.Type)
}

func TestSynthesize_FirstImportWins(t *testing.T) {
	def := loadFixture(t)
	imports := []Import{
		{Function: "TestFunction", Module: "SupportClient", Options: Options{DisableTelemetry: true}},
		{Function: "Rank", Module: "SupportClient"},
		{Function: "TestFunction", Module: "BillingClient"},
	}
	specs := synthesize(t, def, imports...)
	require.Len(t, specs, 4)
	names := make([]string, len(specs))
	for i, s := range specs {
		names[i] = s.Name
	}
	assert.Equal(t, []string{"test_function", "test_function_stream", "rank", "rank_stream"}, names)
	assert.Equal(t, "SupportClient", specs[0].Binding.Module)
	assert.True(t, specs[1].Binding.Options.DisableTelemetry)
}

func TestSynthesize_ArgsPreserveOrderAndNullability(t *testing.T) {
	def := loadFixture(t)
	specs, warnings, err := Synthesize(def, Imports("SupportClient", "ExtractItems"), ir.NewMapper(def), ir.Qualified("types"))
	require.NoError(t, err)
	spec, ok := byName(specs, "extract_items")
	require.True(t, ok)
	assert.Equal(t, "Extracts items", spec.Description)

	require.Len(t, spec.Args, 3)
	assert.Equal(t, "text", spec.Args[0].Name)
	assert.Equal(t, "string", spec.Args[0].GoType)
	assert.False(t, spec.Args[0].Nullable)
	assert.Equal(t, "Source text", spec.Args[0].Description)
	assert.Equal(t, "limit", spec.Args[1].Name)
	assert.Equal(t, "*int64", spec.Args[1].GoType)
	assert.True(t, spec.Args[1].Nullable)
	assert.Equal(t, "mood", spec.Args[2].Name)
	assert.Equal(t, "any", spec.Args[2].GoType)
	assert.Equal(t, "[]types.Item", spec.Return.GoType)

	require.Len(t, warnings, 1)
	assert.Equal(t, ir.Warning{Owner: "ExtractItems", Field: "mood", Tag: "map<string,int>"}, warnings[0])

	streamSpec, ok := byName(specs, "extract_items_stream")
	require.True(t, ok)
	assert.Equal(t, spec.Args, streamSpec.Args)
	assert.Equal(t, "*stream.Handle[[]types.Item]", streamSpec.Return.GoType)
}

func TestSynthesize_UnknownFunction(t *testing.T) {
	def := loadFixture(t)
	_, _, err := Synthesize(def, Imports("SupportClient", "TestFunction", "Missing"), nil, nil)
	var ufe *UnknownFunctionError
	require.ErrorAs(t, err, &ufe)
	assert.Equal(t, "Missing", ufe.Function)
	assert.ErrorIs(t, err, ErrUnknownFunction)

	_, _, err = Synthesize(nil, Imports("SupportClient", "TestFunction"), nil, nil)
	assert.ErrorIs(t, err, ErrUnknownFunction)
}

func TestSynthesize_CanonicalNameCollision(t *testing.T) {
	def := &schemadef.Definition{Functions: map[string]*schemadef.FunctionDef{
		"FooBar":    {Name: "FooBar", Returns: schemadef.ParseType("string")},
		"fooBar":    {Name: "fooBar", Returns: schemadef.ParseType("string")},
		"Foo":       {Name: "Foo", Returns: schemadef.ParseType("string")},
		"FooStream": {Name: "FooStream", Returns: schemadef.ParseType("string")},
	}}
	tests := []struct {
		name    string
		imports []string
		action  string
	}{
		{"same snake name", []string{"FooBar", "fooBar"}, "foo_bar"},
		{"stream suffix", []string{"Foo", "FooStream"}, "foo_stream"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Synthesize(def, Imports("M", tt.imports...), nil, nil)
			var dae *DuplicateActionError
			require.ErrorAs(t, err, &dae)
			assert.Equal(t, tt.action, dae.Name)
			assert.Equal(t, tt.imports[0], dae.First)
			assert.Equal(t, tt.imports[1], dae.Second)
			assert.True(t, errors.Is(err, ErrDuplicateAction))
		})
	}
}

func TestSynthesize_NoImports(t *testing.T) {
	specs, warnings, err := Synthesize(loadFixture(t), nil, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, specs)
	assert.Empty(t, warnings)
}
