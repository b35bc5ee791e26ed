package toolgen

import (
	"bytes"
	"net/url"

	"github.com/goccy/go-json"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

// schemaBaseURL prefixes the in-memory resource each tool schema is compiled under.
const schemaBaseURL = "https://toolgen.local/schemas/"

// prepareSchema deep-copies params, drops identifiers that would redirect reference
// resolution, and compiles the result.
func prepareSchema(name string, params map[string]any) (map[string]any, *jsonschema.Schema, error) {
	data, err := json.Marshal(params)
	if err != nil {
		return nil, nil, err
	}
	var schema map[string]any
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, nil, err
	}
	stripSchemaIDs(schema)
	validator, err := compileSchema(name, schema)
	if err != nil {
		return nil, nil, err
	}
	return schema, validator, nil
}

// stripSchemaIDs removes string-valued id and $id keys at every level. A property or
// definition named "id" is a schema object and stays.
func stripSchemaIDs(node any) {
	switch n := node.(type) {
	case map[string]any:
		for _, key := range []string{"id", "$id"} {
			if _, ok := n[key].(string); ok {
				delete(n, key)
			}
		}
		for _, v := range n {
			stripSchemaIDs(v)
		}
	case []any:
		for _, v := range n {
			stripSchemaIDs(v)
		}
	}
}

func compileSchema(name string, schema map[string]any) (*jsonschema.Schema, error) {
	data, err := json.Marshal(schema)
	if err != nil {
		return nil, err
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	loc := schemaBaseURL + url.PathEscape(name) + ".json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(loc, doc); err != nil {
		return nil, err
	}
	return c.Compile(loc)
}
