package toolgen

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

var (
	errNilSchema  = errors.New("parameter schema must not be nil")
	errNilHandler = errors.New("tool handler must not be nil")
	errNoName     = errors.New("tool name must not be empty")
)

// Handler produces a tool's output. args have already passed schema validation.
type Handler func(ctx context.Context, args []byte, yield func(Chunk) error) error

// dynamicTool validates its arguments against a compiled JSON Schema before running its
// handler.
type dynamicTool struct {
	name        string
	description string
	params      map[string]any
	validator   *jsonschema.Schema
	handler     Handler
	cfg         toolConfig
}

// NewDynamicTool builds a tool from a JSON Schema in map form and a handler. Synthesized
// actions are built this way. params is copied, never mutated. Chunks without an Event
// are sent as EventResult; a failing yield stops the handler with ErrStreamAborted; other
// handler errors that are not ClientErrors become SystemErrors.
func NewDynamicTool(name, description string, params map[string]any, handler Handler, opts ...ToolOption) (Tool, error) {
	switch {
	case name == "":
		return nil, errNoName
	case params == nil:
		return nil, errNilSchema
	case handler == nil:
		return nil, errNilHandler
	}
	var cfg toolConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	schema, validator, err := prepareSchema(name, params)
	if err != nil {
		return nil, fmt.Errorf("parameters of %s: %w", name, err)
	}
	return &dynamicTool{
		name:        name,
		description: description,
		params:      schema,
		validator:   validator,
		handler:     handler,
		cfg:         cfg,
	}, nil
}

func (t *dynamicTool) Name() string        { return t.name }
func (t *dynamicTool) Description() string { return t.description }

// Parameters returns a shallow copy of the schema; nested maps are shared.
func (t *dynamicTool) Parameters() map[string]any { return maps.Clone(t.params) }

func (t *dynamicTool) Execute(ctx context.Context, args []byte, yield func(Chunk) error) error {
	if err := validateArgs(t.validator, args); err != nil {
		return err
	}
	return classify(t.handler(ctx, args, func(c Chunk) error {
		if c.Event == "" {
			c.Event = EventResult
		}
		if err := yield(c); err != nil {
			return aborted(err)
		}
		return nil
	}))
}

func (t *dynamicTool) Timeout() time.Duration  { return t.cfg.timeout }
func (t *dynamicTool) Tags() []string          { return slices.Clone(t.cfg.tags) }
func (t *dynamicTool) TelemetryDisabled() bool { return t.cfg.quiet }

var (
	_ Tool         = (*dynamicTool)(nil)
	_ ToolMetadata = (*dynamicTool)(nil)
)
