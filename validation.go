package toolgen

import (
	"bytes"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// validateArgs decodes args the way the validator expects (numbers as json.Number) and
// checks them against schema. Empty args are an empty object.
func validateArgs(schema *jsonschema.Schema, args []byte) error {
	if len(bytes.TrimSpace(args)) == 0 {
		args = []byte("{}")
	}
	v, err := jsonschema.UnmarshalJSON(bytes.NewReader(args))
	if err != nil {
		return &ClientError{Reason: "malformed JSON: " + err.Error()}
	}
	if err := schema.Validate(v); err != nil {
		return &ClientError{Reason: err.Error(), Err: ErrValidation}
	}
	return nil
}
