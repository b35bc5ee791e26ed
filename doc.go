// Package toolgen turns an external schema of LLM functions, classes and enums into
// generated Go types and into callable operations registered for execution.
//
// # Overview
//
// Generation runs once per build as a pipeline of ordered stages (see package pipeline):
// validate the client configuration, synthesize the backend client modules, emit the Go
// declarations for every class and enum, and derive a synchronous and a streaming action
// for every imported function. Actions are bound to tools and registered in a Registry,
// the callable surface exposed to the surrounding execution framework.
//
// Pipeline: schema file → schemadef.Definition → ir.FieldType → emit.Unit (one file per
// type) and actions.Spec → Tool → Registry → Execute (validate, call backend, stream chunks).
//
// # Key concepts
//
//   - Single Source of Truth: the JSON Schema a tool advertises is derived from the same IR
//     the generated Go types come from, and incoming arguments are validated against it.
//   - Streaming: tools yield chunks; streaming actions yield one chunk per element pulled
//     from a stream.Handle and release it as soon as the consumer stops.
//   - Self-Correction: ClientError carries human-readable messages back to the LLM.
//
// See Tool, ToolCall, Chunk for the core types, and NewDynamicTool / NewRegistry for setup.
//
// # Example
//
//	schema := map[string]any{
//	    "type":       "object",
//	    "properties": map[string]any{"city": map[string]any{"type": "string"}},
//	    "required":   []any{"city"},
//	}
//	tool, err := toolgen.NewDynamicTool("weather", "Get weather", schema,
//	    func(_ context.Context, args []byte, yield func(toolgen.Chunk) error) error {
//	        return yield(toolgen.Chunk{Data: []byte(`{"temp":22.5}`)})
//	    })
//	if err != nil { ... }
//	reg := toolgen.NewRegistry()
//	reg.Register(tool)
//	err = reg.Execute(ctx, toolgen.ToolCall{ID: "1", ToolName: "weather", Args: []byte(`{"city":"Moscow"}`)},
//	    func(c toolgen.Chunk) error { fmt.Println(string(c.Data)); return nil })
package toolgen
