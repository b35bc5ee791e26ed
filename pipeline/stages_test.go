package pipeline

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skosovsky/toolgen"
	"github.com/skosovsky/toolgen/clientcfg"
	"github.com/skosovsky/toolgen/clientmod"
	"github.com/skosovsky/toolgen/ir"
	"github.com/skosovsky/toolgen/schemadef"
	"github.com/skosovsky/toolgen/testutil"
)

const schemaYAML = `
classes:
  User:
    fields:
      - {name: age, type: "int?"}
      - {name: name, type: string}
      - {name: extras, type: "map<string,string>"}
enums:
  Priority: [HighPriority, MediumPriority, LowPriority]
functions:
  TestFunction:
    params: [{name: text, type: string}]
    returns: User
  RankTasks:
    params: [{name: level, type: Priority}]
    returns: "Priority[]"
`

func buildInput(t *testing.T, project *clientcfg.Project) BuildContext {
	t.Helper()
	def, err := schemadef.Decode([]byte(schemaYAML), "schema.yaml")
	require.NoError(t, err)
	return BuildContext{Definition: def, Project: project}
}

func validProject() *clientcfg.Project {
	return &clientcfg.Project{
		Package: "models",
		Clients: clientcfg.ClientConfig{"support": {Path: "src/support"}},
		Resources: []clientcfg.Resource{
			{Name: "chat", Client: "support", Import: []string{"TestFunction", "TestFunction"}},
			{Name: "batch", Module: "BatchClient", Import: []string{"RankTasks", "TestFunction"}, DisableTelemetry: true, Timeout: 2 * time.Second},
		},
	}
}

func TestCanonical_Build(t *testing.T) {
	tools := toolgen.NewRegistry()
	in := buildInput(t, validProject())
	in.Tools = tools

	bc, err := New(Canonical(nil)).Run(context.Background(), in)
	require.NoError(t, err)

	require.Len(t, bc.Resolutions, 2)
	modules := bc.Modules.Modules()
	require.Len(t, modules, 2)
	assert.Equal(t, "SupportClient", modules[0].Name)
	assert.Equal(t, "src/support", modules[0].SourcePath)
	assert.Equal(t, "BatchClient", modules[1].Name)

	var files []string
	for _, u := range bc.Units {
		files = append(files, u.FileName)
		assert.True(t, strings.HasPrefix(string(u.Source), "// Code generated by toolgen. DO NOT EDIT.\n// Source: schema.yaml\n"))
		assert.Contains(t, string(u.Source), "package models")
	}
	assert.Equal(t, []string{"user.go", "priority.go"}, files)

	var actionNames []string
	for _, s := range bc.Actions {
		actionNames = append(actionNames, s.Name)
	}
	assert.Equal(t, []string{"test_function", "test_function_stream", "rank_tasks", "rank_tasks_stream"}, actionNames)
	assert.Equal(t, "SupportClient", bc.Actions[0].Binding.Module)
	assert.Equal(t, "models.User", bc.Actions[0].Return.GoType)
	assert.Equal(t, "BatchClient", bc.Actions[2].Binding.Module)
	assert.True(t, bc.Actions[2].Binding.Options.DisableTelemetry)
	assert.Equal(t, 2*time.Second, bc.Actions[2].Binding.Options.Timeout)
	assert.Zero(t, bc.Actions[0].Binding.Options.Timeout)
	assert.Equal(t, "*stream.Handle[[]models.Priority]", bc.Actions[3].Return.GoType)

	require.Len(t, bc.Warnings, 1)
	assert.Equal(t, ir.Warning{Owner: "User", Field: "extras", Tag: "map<string,string>"}, bc.Warnings[0])

	assert.Len(t, tools.Tools(), 4)
	rank, ok := tools.Lookup("rank_tasks")
	require.True(t, ok)
	md, ok := rank.(toolgen.ToolMetadata)
	require.True(t, ok)
	assert.Equal(t, 2*time.Second, md.Timeout())
}

func TestCanonical_Deterministic(t *testing.T) {
	first, err := New(Canonical(nil)).Run(context.Background(), buildInput(t, validProject()))
	require.NoError(t, err)
	second, err := New(Canonical(nil)).Run(context.Background(), buildInput(t, validProject()))
	require.NoError(t, err)
	require.Len(t, second.Units, len(first.Units))
	for i := range first.Units {
		assert.Equal(t, first.Units[i].Source, second.Units[i].Source)
	}
}

func TestCanonical_ConfigErrorsStopBeforeSynthesis(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *clientcfg.Project)
		wantErr error
	}{
		{"both mechanisms", func(p *clientcfg.Project) { p.Resources[0].Module = "Explicit" }, clientcfg.ErrConfig},
		{"neither mechanism", func(p *clientcfg.Project) { p.Resources[0].Client = "" }, clientcfg.ErrConfig},
		{"bad identifier", func(p *clientcfg.Project) { p.Clients["Main-Client"] = clientcfg.Entry{} }, clientcfg.ErrIdentifier},
		{"missing client", func(p *clientcfg.Project) { p.Resources[0].Client = "billing" }, clientcfg.ErrMissingClient},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProject()
			tt.mutate(p)
			in := buildInput(t, p)
			in.Modules = clientmod.NewRegistry(nil)

			bc, err := New(Canonical(nil)).Run(context.Background(), in)
			require.ErrorIs(t, err, tt.wantErr)
			out := OutcomeOf(bc, err)
			assert.Equal(t, StageValidateConfig, out.Stage)
			assert.Empty(t, in.Modules.Modules())
			assert.Empty(t, bc.Units)
		})
	}
}

func TestCanonical_UnknownImport(t *testing.T) {
	p := validProject()
	p.Resources[0].Import = append(p.Resources[0].Import, "Missing")
	bc, err := New(Canonical(nil)).Run(context.Background(), buildInput(t, p))
	require.Error(t, err)
	assert.Equal(t, StageSynthesizeActions, OutcomeOf(bc, err).Stage)
	assert.Empty(t, bc.Units)
}

func TestCanonical_ClassCycle(t *testing.T) {
	in := buildInput(t, validProject())
	in.Definition.Classes["A"] = &schemadef.ClassDef{Name: "A", Fields: []schemadef.FieldDef{{Name: "b", Type: schemadef.ParseType("B")}}}
	in.Definition.Classes["B"] = &schemadef.ClassDef{Name: "B", Fields: []schemadef.FieldDef{{Name: "a", Type: schemadef.ParseType("A")}}}
	_, err := New(Canonical(nil)).Run(context.Background(), in)
	require.ErrorIs(t, err, ir.ErrClassCycle)
	var se *StageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, StageGenerateTypes, se.Stage)
}

func TestValidateConfig_MissingInputs(t *testing.T) {
	_, err := ValidateConfig().Run(context.Background(), BuildContext{})
	require.ErrorIs(t, err, ErrNoProject)
	_, err = ValidateConfig().Run(context.Background(), BuildContext{Project: &clientcfg.Project{}})
	require.ErrorIs(t, err, ErrNoDefinition)
}

const greetSchema = `
classes:
  User:
    fields:
      - {name: firstName, type: string}
      - {name: lastName, type: "string?"}
functions:
  Greet:
    params: [{name: userInfo, type: User}]
    returns: User
`

func TestCanonical_NestedArgumentRoundTrip(t *testing.T) {
	def, err := schemadef.Decode([]byte(greetSchema), "greet.yaml")
	require.NoError(t, err)
	backend := &testutil.MockBackend{CallFn: func(_ context.Context, call clientmod.Call) (json.RawMessage, error) {
		var args struct {
			UserInfo json.RawMessage `json:"userInfo"`
		}
		if err := json.Unmarshal(call.Args, &args); err != nil {
			return nil, err
		}
		return args.UserInfo, nil
	}}
	project := &clientcfg.Project{
		Package:   "models",
		Clients:   clientcfg.ClientConfig{"greeter": {}},
		Resources: []clientcfg.Resource{{Name: "web", Client: "greeter", Import: []string{"Greet"}}},
	}
	tools := toolgen.NewRegistry()
	ctx := context.Background()

	bc, err := New(Canonical(backend.Factory())).Run(ctx, BuildContext{Definition: def, Project: project, Tools: tools})
	require.NoError(t, err)
	require.Len(t, bc.Units, 1)
	src := string(bc.Units[0].Source)
	assert.Contains(t, src, "`json:\"firstName\"`")
	assert.Contains(t, src, "`json:\"lastName,omitempty\"`")

	var out []byte
	err = tools.Execute(ctx, toolgen.ToolCall{ID: "1", ToolName: "greet", Args: []byte(`{"userInfo":{"firstName":"Ada"}}`)},
		func(c toolgen.Chunk) error {
			out = c.Data
			return nil
		})
	require.NoError(t, err)
	calls := backend.Calls()
	require.Len(t, calls, 1)
	assert.JSONEq(t, `{"userInfo":{"firstName":"Ada"}}`, string(calls[0].Args))

	var user struct {
		FirstName string  `json:"firstName"`
		LastName  *string `json:"lastName,omitempty"`
	}
	require.NoError(t, json.Unmarshal(out, &user))
	assert.Equal(t, "Ada", user.FirstName)
	assert.Nil(t, user.LastName)

	err = tools.Execute(ctx, toolgen.ToolCall{ID: "2", ToolName: "greet", Args: []byte(`{"userInfo":{"first_name":"Ada"}}`)},
		func(toolgen.Chunk) error { return nil })
	require.ErrorIs(t, err, toolgen.ErrValidation)
	assert.Len(t, backend.Calls(), 1)
}
