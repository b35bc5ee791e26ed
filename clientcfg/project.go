package clientcfg

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for project files that are neither TOML nor YAML.
var ErrUnsupportedFormat = errors.New("unsupported project file format")

// Project is the static build configuration read once at pipeline start.
type Project struct {
	Package   string       `toml:"package" yaml:"package"`
	Output    string       `toml:"output" yaml:"output"`
	Schema    string       `toml:"schema" yaml:"schema"`
	Clients   ClientConfig `toml:"clients" yaml:"clients"`
	Resources []Resource   `toml:"resources" yaml:"resources"`

	// Root is the absolute directory of the project file, set by Load.
	Root string `toml:"-" yaml:"-"`
}

// Load reads a project file (.toml, .yaml or .yml). Relative schema and output paths are
// resolved against the file's directory.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read project: %w", err)
	}
	var p Project
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		_, err = toml.Decode(string(data), &p)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &p)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return nil, fmt.Errorf("decode project %s: %w", path, err)
	}
	dir := filepath.Dir(path)
	if abs, err := filepath.Abs(dir); err == nil {
		p.Root = abs
	}
	if p.Schema != "" && !filepath.IsAbs(p.Schema) {
		p.Schema = filepath.Join(dir, p.Schema)
	}
	if p.Output != "" && !filepath.IsAbs(p.Output) {
		p.Output = filepath.Join(dir, p.Output)
	}
	return &p, nil
}

// SourceLabel returns path relative to the project directory, in slash form, so the
// provenance of generated code does not depend on where the checkout lives. Paths outside
// the project directory are returned as given.
func (p *Project) SourceLabel(path string) string {
	if p.Root != "" {
		if abs, err := filepath.Abs(path); err == nil {
			if rel, err := filepath.Rel(p.Root, abs); err == nil && filepath.IsLocal(rel) {
				return filepath.ToSlash(rel)
			}
		}
	}
	return filepath.ToSlash(path)
}

// Validate checks every configured identifier, then resolves every resource. It returns
// the first error in deterministic order: identifiers sorted, resources as declared.
func (p *Project) Validate() error {
	ids := make([]string, 0, len(p.Clients))
	for id := range p.Clients {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		if err := ValidateIdentifier(id); err != nil {
			return err
		}
	}
	_, err := p.Resolutions()
	return err
}

// Resolutions resolves every resource in declaration order.
func (p *Project) Resolutions() ([]Resolution, error) {
	out := make([]Resolution, 0, len(p.Resources))
	for _, res := range p.Resources {
		r, err := Resolve(res, p.Clients)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// Imports returns the imported function names of every resource in declaration order,
// duplicates included.
func (p *Project) Imports() []string {
	var out []string
	for _, res := range p.Resources {
		out = append(out, res.Import...)
	}
	return out
}
