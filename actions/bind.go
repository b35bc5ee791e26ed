package actions

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/skosovsky/toolgen"
	"github.com/skosovsky/toolgen/clientmod"
	"github.com/skosovsky/toolgen/ir"
	"github.com/skosovsky/toolgen/stream"
)

// Caller invokes schema functions on a backend. *clientmod.Module implements it.
type Caller interface {
	CallFunction(ctx context.Context, call clientmod.Call) (json.RawMessage, error)
	StreamFunction(ctx context.Context, call clientmod.Call) (*stream.Handle[json.RawMessage], error)
}

// Bind turns spec into a tool that validates its arguments against spec.Parameters and
// calls c. Sync actions yield the backend result once. Stream actions yield one chunk per
// element and release the stream when the consumer stops early or the context ends.
func Bind(spec Spec, c Caller, opts ...toolgen.ToolOption) (toolgen.Tool, error) {
	if c == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnboundModule, spec.Binding.Module)
	}
	params := spec.Parameters
	if params == nil {
		params = ParamSchema(spec.Args, spec.Description, nil, nil)
	}
	schema, err := schemaMap(params)
	if err != nil {
		return nil, fmt.Errorf("parameters of %s: %w", spec.Name, err)
	}

	toolOpts := []toolgen.ToolOption{toolgen.WithTags(string(spec.Tag), spec.Binding.Module)}
	if spec.Binding.Options.DisableTelemetry {
		toolOpts = append(toolOpts, toolgen.WithTelemetryDisabled())
	}
	if spec.Binding.Options.Timeout > 0 {
		toolOpts = append(toolOpts, toolgen.WithTimeout(spec.Binding.Options.Timeout))
	}
	toolOpts = append(toolOpts, opts...)

	fn := callFunc(spec, c)
	if spec.Binding.Kind == CallFunctionStreaming {
		fn = streamFunc(spec, c)
	}
	return toolgen.NewDynamicTool(spec.Name, description(spec), schema, fn, toolOpts...)
}

func backendCall(spec Spec, args []byte) clientmod.Call {
	return clientmod.Call{
		Function: spec.Binding.Function,
		Args:     json.RawMessage(args),
		Options:  clientmod.CallOptions{DisableTelemetry: spec.Binding.Options.DisableTelemetry},
	}
}

func callFunc(spec Spec, c Caller) func(context.Context, []byte, func(toolgen.Chunk) error) error {
	return func(ctx context.Context, args []byte, yield func(toolgen.Chunk) error) error {
		out, err := c.CallFunction(ctx, backendCall(spec, args))
		if err != nil {
			return err
		}
		return yield(toolgen.Chunk{Event: toolgen.EventResult, Data: out})
	}
}

func streamFunc(spec Spec, c Caller) func(context.Context, []byte, func(toolgen.Chunk) error) error {
	return func(ctx context.Context, args []byte, yield func(toolgen.Chunk) error) error {
		h, err := c.StreamFunction(ctx, backendCall(spec, args))
		if err != nil {
			return err
		}
		defer h.Close()
		index := 0
		for v, err := range h.All(ctx) {
			if err != nil {
				return err
			}
			chunk := toolgen.Chunk{Event: toolgen.EventResult, Data: v, Metadata: map[string]any{"index": index}}
			if err := yield(chunk); err != nil {
				return err
			}
			index++
		}
		return nil
	}
}

func description(spec Spec) string {
	if spec.Description != "" {
		return spec.Description
	}
	if spec.Return.Stream {
		return fmt.Sprintf("Streams %s from %s.", ir.Describe(spec.Return.Type), spec.Function)
	}
	return fmt.Sprintf("Calls %s and returns %s.", spec.Function, ir.Describe(spec.Return.Type))
}
