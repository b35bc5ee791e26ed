package schemadef

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
classes:
  User:
    description: A person
    fields:
      - {name: age, type: "int?"}
      - {name: name, type: string, description: Full name}
enums:
  Priority: [HighPriority, MediumPriority, LowPriority]
  Mood:
    description: How it feels
    values: [Happy, Sad]
functions:
  ExtractUser:
    description: Pull a user out of text
    params:
      - {name: text, type: string}
      - {name: hint, type: string, optional: true}
    returns: User
`

func TestDecode(t *testing.T) {
	def, err := Decode([]byte(sampleYAML), "schema.yaml")
	require.NoError(t, err)
	assert.Equal(t, "schema.yaml", def.SourceLabel())
	assert.Equal(t, []string{"User"}, def.ClassNames())
	assert.Equal(t, []string{"Mood", "Priority"}, def.EnumNames())

	user := def.Classes["User"]
	require.Len(t, user.Fields, 2)
	assert.Equal(t, "age", user.Fields[0].Name)
	assert.Equal(t, KindOptional, user.Fields[0].Type.Kind)
	assert.Equal(t, "Full name", user.Fields[1].Description)

	assert.Equal(t, []string{"HighPriority", "MediumPriority", "LowPriority"}, def.Enums["Priority"].Values)
	assert.Equal(t, "How it feels", def.Enums["Mood"].Description)

	fn := def.Functions["ExtractUser"]
	require.Len(t, fn.Params, 2)
	assert.True(t, fn.Params[1].Optional)
	assert.Equal(t, &TypeDesc{Kind: KindRef, Tag: "User"}, fn.Returns)
	assert.True(t, def.IsClass("User"))
	assert.True(t, def.IsEnum("Priority"))
	assert.False(t, def.IsEnum("User"))
}

func TestDecode_DuplicateField(t *testing.T) {
	_, err := Decode([]byte(`
classes:
  A:
    fields:
      - {name: x, type: int}
      - {name: x, type: string}
`), "dup.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate field "x"`)
}

func TestFileLoader_JSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schema.json")
	body := `{
  "classes": {"Item": {"fields": [{"name": "title", "type": "string"}]}},
  "enums": {"Color": ["Red", "Green"]},
  "functions": {"ListItems": {"params": [{"name": "q", "type": "string"}], "returns": "Item[]"}}
}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	def, err := FileLoader{}.Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, filepath.ToSlash(path), def.Source)
	assert.Equal(t, []string{"Red", "Green"}, def.Enums["Color"].Values)
	assert.Equal(t, KindList, def.Functions["ListItems"].Returns.Kind)
}

func TestFileLoader_Label(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.yaml")
	require.NoError(t, os.WriteFile(path, []byte("enums: {Color: [Red]}"), 0o600))

	loader := FileLoader{Label: func(string) string { return "schema.yaml" }}
	def, err := loader.Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "schema.yaml", def.Source)
}

func TestFileLoader_UnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schema.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))
	_, err := FileLoader{}.Load(context.Background(), path)
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestSourceLabel_Default(t *testing.T) {
	assert.Equal(t, UnknownSource, (&Definition{}).SourceLabel())
	var def *Definition
	assert.Equal(t, UnknownSource, def.SourceLabel())
}
