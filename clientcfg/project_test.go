package clientcfg

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_TOML(t *testing.T) {
	path := writeFile(t, "toolgen.toml", `
package = "models"
output = "gen"
schema = "schema.yaml"

[clients.support]
module = "SupportClient"
path = "baml_src/support"

[[resources]]
name = "chat"
client = "support"
import = ["TestFunction", "TestFunction"]
timeout = "45s"
`)
	p, err := Load(path)
	require.NoError(t, err)
	dir := filepath.Dir(path)
	assert.Equal(t, "models", p.Package)
	assert.Equal(t, filepath.Join(dir, "gen"), p.Output)
	assert.Equal(t, filepath.Join(dir, "schema.yaml"), p.Schema)
	assert.Equal(t, Entry{Module: "SupportClient", Path: "baml_src/support"}, p.Clients["support"])
	require.Len(t, p.Resources, 1)
	assert.Equal(t, []string{"TestFunction", "TestFunction"}, p.Imports())
	assert.Equal(t, 45*time.Second, p.Resources[0].Timeout)
	assert.NoError(t, p.Validate())
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "toolgen.yaml", `
package: models
schema: /abs/schema.yaml
clients:
  main_client: {module: MainClient, path: src/main}
resources:
  - {name: a, module: other.Module, import: [Foo], timeout: 1m30s}
`)
	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/abs/schema.yaml", p.Schema)
	assert.Equal(t, "MainClient", p.Clients["main_client"].Module)
	assert.Equal(t, "other.Module", p.Resources[0].Module)
	assert.Equal(t, 90*time.Second, p.Resources[0].Timeout)
	assert.NoError(t, p.Validate())
}

func TestProject_SourceLabel(t *testing.T) {
	path := writeFile(t, "toolgen.toml", `schema = "defs/schema.yaml"`)
	p, err := Load(path)
	require.NoError(t, err)
	dir := filepath.Dir(path)
	assert.True(t, filepath.IsAbs(p.Root))

	assert.Equal(t, "defs/schema.yaml", p.SourceLabel(p.Schema))
	assert.Equal(t, "other.yaml", p.SourceLabel(filepath.Join(dir, "other.yaml")))
	outside := filepath.Join(filepath.Dir(dir), "shared", "schema.yaml")
	assert.Equal(t, filepath.ToSlash(outside), p.SourceLabel(outside))
	assert.Equal(t, "x.yaml", (&Project{}).SourceLabel("x.yaml"))
}

func TestLoad_Unsupported(t *testing.T) {
	_, err := Load(writeFile(t, "toolgen.ini", "x=1"))
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestProject_Validate(t *testing.T) {
	tests := []struct {
		name    string
		project Project
		wantErr error
	}{
		{
			name: "BadIdentifierInClients",
			project: Project{Clients: ClientConfig{
				"good": {}, "Main-Client": {},
			}},
			wantErr: ErrIdentifier,
		},
		{
			name: "ResourceWithBoth",
			project: Project{
				Clients:   ClientConfig{"support": {}},
				Resources: []Resource{{Name: "r", Client: "support", Module: "m"}},
			},
			wantErr: ErrConfig,
		},
		{
			name: "ResourceWithMissingClient",
			project: Project{
				Clients:   ClientConfig{"support": {}},
				Resources: []Resource{{Name: "r", Client: "billing"}},
			},
			wantErr: ErrMissingClient,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.project.Validate(), tt.wantErr)
		})
	}
}

func TestProject_Resolutions(t *testing.T) {
	p := Project{
		Clients: ClientConfig{"support": {Path: "src/support"}},
		Resources: []Resource{
			{Name: "chat", Client: "support", Import: []string{"Summarize"}, DisableTelemetry: true},
			{Name: "batch", Module: "BatchClient"},
		},
	}
	res, err := p.Resolutions()
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, "SupportClient", res[0].Module)
	assert.False(t, res[0].Explicit())
	assert.Equal(t, "BatchClient", res[1].Module)
	assert.True(t, res[1].Explicit())

	p.Resources = append(p.Resources, Resource{Name: "broken"})
	_, err = p.Resolutions()
	var ce *ConfigError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "broken", ce.Resource)
}
