package toolgen

import (
	"context"
	"log/slog"
	"time"
)

// Middleware decorates a tool. A Registry applies the middleware given with WithMiddleware
// to every tool it registers.
type Middleware func(Tool) Tool

// Logging logs each call of a tool: start at debug level, then the outcome with the
// delivered chunk count and duration. Tools with telemetry disabled are returned unwrapped.
func Logging(logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next Tool) Tool {
		md := metadata(next)
		if md.TelemetryDisabled() {
			return next
		}
		return &loggedTool{
			Tool:   next,
			md:     md,
			logger: logger.With("action", next.Name()),
		}
	}
}

// loggedTool keeps the wrapped tool's metadata visible to the registry.
type loggedTool struct {
	Tool
	md     ToolMetadata
	logger *slog.Logger
}

func (l *loggedTool) Timeout() time.Duration  { return l.md.Timeout() }
func (l *loggedTool) Tags() []string          { return l.md.Tags() }
func (l *loggedTool) TelemetryDisabled() bool { return false }

func (l *loggedTool) Execute(ctx context.Context, args []byte, yield func(Chunk) error) error {
	l.logger.DebugContext(ctx, "action started", "tags", l.md.Tags())
	start := time.Now()
	chunks := 0
	err := l.Tool.Execute(ctx, args, func(c Chunk) error {
		if err := yield(c); err != nil {
			return err
		}
		chunks++
		return nil
	})
	attrs := []any{"chunks", chunks, "duration", time.Since(start)}
	if err != nil {
		l.logger.ErrorContext(ctx, "action failed", append(attrs, "error", err)...)
		return err
	}
	l.logger.InfoContext(ctx, "action finished", attrs...)
	return nil
}

var _ ToolMetadata = (*loggedTool)(nil)
