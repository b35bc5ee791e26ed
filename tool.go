package toolgen

import (
	"context"
	"time"

	"github.com/goccy/go-json"
)

// EventResult marks a chunk carrying a result or one stream element.
const EventResult = "result"

// Tool is an operation a model can call. Synthesized actions are tools; so is anything
// registered by hand. Parameters is the JSON Schema the arguments are validated against.
type Tool interface {
	Name() string
	Description() string
	Parameters() map[string]any
	// Execute runs the tool, handing each output chunk to yield. A sync action yields once,
	// a streaming action once per element. When yield fails Execute stops and returns an
	// error wrapping ErrStreamAborted.
	Execute(ctx context.Context, args []byte, yield func(Chunk) error) error
}

// ToolMetadata is the optional per-tool configuration the registry and middleware honour.
type ToolMetadata interface {
	// Timeout overrides the registry default when positive.
	Timeout() time.Duration
	Tags() []string
	// TelemetryDisabled excludes the tool from logging and chunk hooks.
	TelemetryDisabled() bool
}

type noMetadata struct{}

func (noMetadata) Timeout() time.Duration  { return 0 }
func (noMetadata) Tags() []string          { return nil }
func (noMetadata) TelemetryDisabled() bool { return false }

// metadata returns t's metadata, or zero settings when t has none.
func metadata(t Tool) ToolMetadata {
	if md, ok := t.(ToolMetadata); ok {
		return md
	}
	return noMetadata{}
}

// ToolCall asks the registry to run one tool.
type ToolCall struct {
	ID       string
	ToolName string
	Args     json.RawMessage
}

// Chunk is one piece of tool output. The registry fills CallID and ToolName.
type Chunk struct {
	CallID   string
	ToolName string
	Event    string
	Data     []byte
	Metadata map[string]any
}

// Report describes a finished call. It is handed to the WithOnAfterExecute hook whether
// the call succeeded or not.
type Report struct {
	Call     ToolCall
	Err      error
	Chunks   int   // chunks the consumer accepted
	Bytes    int64 // total Data size of those chunks
	Duration time.Duration
}
