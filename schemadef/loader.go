package schemadef

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for schema files that are neither YAML nor JSON.
var ErrUnsupportedFormat = errors.New("unsupported schema format")

// FileLoader loads definitions from YAML (.yaml, .yml) or JSON (.json) files.
type FileLoader struct {
	// Label, when set, maps the location to the provenance label.
	Label func(location string) string
}

var _ Loader = FileLoader{}

// Load reads and decodes the file at location. The provenance label is Label(location),
// or the location as given when Label is nil.
func (l FileLoader) Load(ctx context.Context, location string) (*Definition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(location)
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}
	var ff fileSchema
	switch strings.ToLower(filepath.Ext(location)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &ff)
	case ".json":
		err = json.Unmarshal(data, &ff)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, location)
	}
	if err != nil {
		return nil, fmt.Errorf("decode schema %s: %w", location, err)
	}
	label := filepath.ToSlash(location)
	if l.Label != nil {
		label = l.Label(location)
	}
	return ff.definition(label)
}

// Decode builds a Definition from YAML bytes. label is used as provenance.
func Decode(data []byte, label string) (*Definition, error) {
	var ff fileSchema
	if err := yaml.Unmarshal(data, &ff); err != nil {
		return nil, fmt.Errorf("decode schema: %w", err)
	}
	return ff.definition(label)
}

type fileSchema struct {
	Classes   map[string]fileClass    `yaml:"classes" json:"classes"`
	Enums     map[string]fileEnum     `yaml:"enums" json:"enums"`
	Functions map[string]fileFunction `yaml:"functions" json:"functions"`
}

type fileClass struct {
	Description string      `yaml:"description" json:"description"`
	Fields      []fileField `yaml:"fields" json:"fields"`
}

type fileField struct {
	Name        string `yaml:"name" json:"name"`
	Type        string `yaml:"type" json:"type"`
	Optional    bool   `yaml:"optional" json:"optional"`
	Description string `yaml:"description" json:"description"`
}

type fileFunction struct {
	Description string      `yaml:"description" json:"description"`
	Params      []fileField `yaml:"params" json:"params"`
	Returns     string      `yaml:"returns" json:"returns"`
}

// fileEnum accepts either a bare list of variants or {description, values}.
type fileEnum struct {
	Description string   `yaml:"description" json:"description"`
	Values      []string `yaml:"values" json:"values"`
}

func (e *fileEnum) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.SequenceNode {
		return node.Decode(&e.Values)
	}
	type plain fileEnum
	return node.Decode((*plain)(e))
}

func (e *fileEnum) UnmarshalJSON(data []byte) error {
	if trimmed := strings.TrimSpace(string(data)); strings.HasPrefix(trimmed, "[") {
		return json.Unmarshal(data, &e.Values)
	}
	type plain fileEnum
	return json.Unmarshal(data, (*plain)(e))
}

func (ff *fileSchema) definition(label string) (*Definition, error) {
	def := &Definition{
		Source:    label,
		Classes:   make(map[string]*ClassDef, len(ff.Classes)),
		Enums:     make(map[string]*EnumDef, len(ff.Enums)),
		Functions: make(map[string]*FunctionDef, len(ff.Functions)),
	}
	for name, fc := range ff.Classes {
		cd := &ClassDef{Name: name, Description: fc.Description}
		seen := make(map[string]bool, len(fc.Fields))
		for _, f := range fc.Fields {
			if f.Name == "" {
				return nil, fmt.Errorf("class %s: field without name", name)
			}
			if seen[f.Name] {
				return nil, fmt.Errorf("class %s: duplicate field %q", name, f.Name)
			}
			seen[f.Name] = true
			cd.Fields = append(cd.Fields, FieldDef{
				Name:        f.Name,
				Type:        ParseType(f.Type),
				Optional:    f.Optional,
				Description: f.Description,
			})
		}
		def.Classes[name] = cd
	}
	for name, fe := range ff.Enums {
		if _, clash := def.Classes[name]; clash {
			return nil, fmt.Errorf("enum %s: name already declared as a class", name)
		}
		def.Enums[name] = &EnumDef{Name: name, Description: fe.Description, Values: fe.Values}
	}
	for name, fn := range ff.Functions {
		fd := &FunctionDef{Name: name, Description: fn.Description, Returns: ParseType(fn.Returns)}
		for _, p := range fn.Params {
			if p.Name == "" {
				return nil, fmt.Errorf("function %s: parameter without name", name)
			}
			fd.Params = append(fd.Params, ParamDef{
				Name:        p.Name,
				Type:        ParseType(p.Type),
				Optional:    p.Optional,
				Description: p.Description,
			})
		}
		def.Functions[name] = fd
	}
	return def, nil
}
