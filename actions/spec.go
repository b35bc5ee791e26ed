// Package actions derives callable operations from imported schema functions. Every
// function yields a sync action and a streaming action; both bind to the client module of
// the resource that imported it and can be registered as tools in a toolgen.Registry.
package actions

import (
	"time"

	"github.com/invopop/jsonschema"

	"github.com/skosovsky/toolgen/ir"
)

// StreamSuffix is appended to the sync action name to form the streaming action name.
const StreamSuffix = "_stream"

// Tag distinguishes the two actions produced per function.
type Tag string

const (
	TagSync   Tag = "sync"
	TagStream Tag = "stream"
)

// BindingKind selects the backend operation an action invokes.
type BindingKind string

const (
	CallFunction          BindingKind = "call-function"
	CallFunctionStreaming BindingKind = "call-function-streaming"
)

// Arg is one action argument, in the function's declared order.
type Arg struct {
	Name        string       `json:"name"`
	Type        ir.FieldType `json:"-"`
	GoType      string       `json:"go_type"`
	Nullable    bool         `json:"nullable"`
	Description string       `json:"description,omitempty"`
}

// Return is the action's result type. Stream returns are handles over the element type.
type Return struct {
	Type   ir.FieldType `json:"-"`
	GoType string       `json:"go_type"`
	Stream bool         `json:"stream"`
}

// Options are forwarded to the backend on every call. A positive Timeout overrides the
// registry's default deadline.
type Options struct {
	DisableTelemetry bool          `json:"disable_telemetry,omitempty"`
	Timeout          time.Duration `json:"timeout,omitempty"`
}

// Binding ties an action to a module operation.
type Binding struct {
	Kind     BindingKind `json:"kind"`
	Function string      `json:"function"`
	Module   string      `json:"module"`
	Options  Options     `json:"options"`
}

// Spec describes one synthesized action.
type Spec struct {
	Name        string  `json:"name"`
	Function    string  `json:"function"`
	Description string  `json:"description,omitempty"`
	Args        []Arg   `json:"args"`
	Return      Return  `json:"return"`
	Tag         Tag     `json:"tag"`
	Binding     Binding `json:"binding"`
	// Parameters is the JSON Schema of Args, shared by the sync and stream actions of one
	// function. Treat it as read-only.
	Parameters *jsonschema.Schema `json:"parameters,omitempty"`
}

// Import requests the actions of Function, bound to Module.
type Import struct {
	Function string
	Module   string
	Options  Options
}

// Imports builds one Import per function for module, preserving order and duplicates.
func Imports(module string, functions ...string) []Import {
	out := make([]Import, len(functions))
	for i, fn := range functions {
		out[i] = Import{Function: fn, Module: module}
	}
	return out
}
