package toolgen

import (
	"context"
	"time"
)

const (
	defaultTimeout     = 5 * time.Second
	defaultConcurrency = 10
)

type toolConfig struct {
	timeout time.Duration
	tags    []string
	quiet   bool
}

// ToolOption configures a tool built by NewDynamicTool.
type ToolOption func(*toolConfig)

// WithTimeout sets the tool's execution timeout, replacing the registry default.
func WithTimeout(d time.Duration) ToolOption {
	return func(c *toolConfig) { c.timeout = d }
}

// WithTags appends discovery tags. Synthesized actions carry their tag and module.
func WithTags(tags ...string) ToolOption {
	return func(c *toolConfig) { c.tags = append(c.tags, tags...) }
}

// WithTelemetryDisabled keeps the tool out of Logging and the chunk hook.
func WithTelemetryDisabled() ToolOption {
	return func(c *toolConfig) { c.quiet = true }
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithDefaultTimeout sets the timeout of tools that declare none. Zero disables it.
func WithDefaultTimeout(d time.Duration) RegistryOption {
	return func(r *Registry) { r.timeout = d }
}

// WithMaxConcurrency bounds the number of calls running at once. Zero or less means no bound.
func WithMaxConcurrency(n int) RegistryOption {
	return func(r *Registry) { r.concurrency = n }
}

// WithRecoverPanics turns panics inside tools into a SystemError. On by default.
func WithRecoverPanics(enable bool) RegistryOption {
	return func(r *Registry) { r.recoverPanics = enable }
}

// WithMiddleware wraps every tool at registration. The first middleware is the outermost.
func WithMiddleware(mw ...Middleware) RegistryOption {
	return func(r *Registry) { r.middleware = append(r.middleware, mw...) }
}

// WithOnBeforeExecute sets a hook run before each call.
func WithOnBeforeExecute(fn func(context.Context, ToolCall)) RegistryOption {
	return func(r *Registry) { r.onBefore = fn }
}

// WithOnAfterExecute sets a hook run after each call, failed ones included.
func WithOnAfterExecute(fn func(context.Context, Report)) RegistryOption {
	return func(r *Registry) { r.onAfter = fn }
}

// WithOnChunk sets a hook run for every chunk the consumer accepted, except for tools with
// telemetry disabled.
func WithOnChunk(fn func(context.Context, Chunk)) RegistryOption {
	return func(r *Registry) { r.onChunk = fn }
}
