package toolgen

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"
)

// Registry runs registered tools by name. Each call is bounded by the concurrency limit and
// a timeout, recovers panics, and is reported to the configured hooks. Safe for concurrent
// use.
type Registry struct {
	timeout       time.Duration
	concurrency   int
	recoverPanics bool
	middleware    []Middleware
	onBefore      func(context.Context, ToolCall)
	onAfter       func(context.Context, Report)
	onChunk       func(context.Context, Chunk)

	slots chan struct{} // nil when unbounded

	mu       sync.RWMutex
	tools    map[string]Tool
	closed   bool
	inflight sync.WaitGroup
}

// NewRegistry returns an empty Registry: 5s default timeout, at most 10 concurrent calls,
// panic recovery on.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		timeout:       defaultTimeout,
		concurrency:   defaultConcurrency,
		recoverPanics: true,
		tools:         make(map[string]Tool),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.concurrency > 0 {
		r.slots = make(chan struct{}, r.concurrency)
	}
	return r
}

// Register wraps t with the registry's middleware and stores it under its name, replacing
// any tool of the same name.
func (r *Registry) Register(t Tool) {
	name := t.Name()
	for i := len(r.middleware) - 1; i >= 0; i-- {
		t = r.middleware[i](t)
	}
	r.mu.Lock()
	r.tools[name] = t
	r.mu.Unlock()
}

// Tools returns the registered tools sorted by name.
func (r *Registry) Tools() []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.SortedFunc(maps.Values(r.tools), func(a, b Tool) int {
		return strings.Compare(a.Name(), b.Name())
	})
}

// Lookup returns the tool registered under name, as wrapped by middleware.
func (r *Registry) Lookup(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[name]
	return t, ok
}

// Execute runs one call, tagging every chunk with the call ID and tool name before handing
// it to yield. It returns the first error from the tool or from yield.
func (r *Registry) Execute(ctx context.Context, call ToolCall, yield func(Chunk) error) error {
	t, err := r.begin(call.ToolName)
	if err != nil {
		return err
	}
	defer r.inflight.Done()

	if err := r.acquire(ctx); err != nil {
		return err
	}
	defer r.release()

	ctx, cancel := r.deadline(ctx, t)
	defer cancel()
	return r.run(ctx, t, call, yield)
}

// begin looks the tool up and counts the call as in flight.
func (r *Registry) begin(name string) (Tool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return nil, ErrShutdown
	}
	t, ok := r.tools[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrToolNotFound, name)
	}
	r.inflight.Add(1)
	return t, nil
}

func (r *Registry) acquire(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return timedOut(err)
	}
	if r.slots == nil {
		return nil
	}
	select {
	case r.slots <- struct{}{}:
		return nil
	case <-ctx.Done():
		return timedOut(ctx.Err())
	}
}

func (r *Registry) release() {
	if r.slots != nil {
		<-r.slots
	}
}

// deadline applies the tool's timeout, or the registry default when the tool has none.
func (r *Registry) deadline(ctx context.Context, t Tool) (context.Context, context.CancelFunc) {
	d := r.timeout
	if td := metadata(t).Timeout(); td > 0 {
		d = td
	}
	if d <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}

func (r *Registry) run(ctx context.Context, t Tool, call ToolCall, yield func(Chunk) error) (err error) {
	report := Report{Call: call}
	observed := !metadata(t).TelemetryDisabled()
	start := time.Now()
	defer func() {
		if r.recoverPanics {
			if p := recover(); p != nil {
				err = &SystemError{Err: &panicError{value: p}}
			}
		}
		report.Err = err
		report.Duration = time.Since(start)
		if r.onAfter != nil {
			r.onAfter(ctx, report)
		}
	}()

	if r.onBefore != nil {
		r.onBefore(ctx, call)
	}
	err = t.Execute(ctx, call.Args, func(c Chunk) error {
		c.CallID = call.ID
		c.ToolName = call.ToolName
		if err := yield(c); err != nil {
			return err
		}
		report.Chunks++
		report.Bytes += int64(len(c.Data))
		if observed && r.onChunk != nil {
			r.onChunk(ctx, c)
		}
		return nil
	})
	if err != nil && !errors.Is(err, ErrStreamAborted) && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		err = fmt.Errorf("%w: %w", ErrTimeout, err)
	}
	return err
}

// timedOut marks deadline errors with ErrTimeout.
func timedOut(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}
	return err
}

// ExecuteBatchStream runs calls concurrently within the concurrency limit and forwards
// every chunk to yield, one at a time. The first failure, from a tool or from yield,
// cancels the remaining calls and is returned.
func (r *Registry) ExecuteBatchStream(ctx context.Context, calls []ToolCall, yield func(Chunk) error) error {
	if len(calls) == 0 {
		return nil
	}
	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	var mu sync.Mutex
	forward := func(c Chunk) error {
		mu.Lock()
		defer mu.Unlock()
		if ctx.Err() != nil {
			return ErrStreamAborted
		}
		return yield(c)
	}
	var wg sync.WaitGroup
	for _, call := range calls {
		wg.Go(func() {
			if err := r.Execute(ctx, call, forward); err != nil {
				cancel(err)
			}
		})
	}
	wg.Wait()
	return context.Cause(ctx)
}

// Shutdown rejects new calls with ErrShutdown and waits until in-flight calls finish or ctx
// ends. Calling it again is harmless.
func (r *Registry) Shutdown(ctx context.Context) error {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()

	idle := make(chan struct{})
	go func() {
		r.inflight.Wait()
		close(idle)
	}()
	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
