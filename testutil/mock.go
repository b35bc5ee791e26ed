// Package testutil provides test doubles for toolgen: a configurable Tool, a scripted
// model-client Backend and streams that report when their resource is released.
package testutil

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"

	"github.com/goccy/go-json"

	"github.com/skosovsky/toolgen"
	"github.com/skosovsky/toolgen/clientmod"
	"github.com/skosovsky/toolgen/stream"
)

// MockTool is a configurable Tool implementation for tests.
type MockTool struct {
	NameVal   string
	DescVal   string
	ParamsVal map[string]any
	ExecuteFn func(ctx context.Context, args []byte, yield func(toolgen.Chunk) error) error
}

// Name returns the tool name.
func (m *MockTool) Name() string {
	if m.NameVal != "" {
		return m.NameVal
	}
	return "mock"
}

// Description returns the tool description.
func (m *MockTool) Description() string {
	return m.DescVal
}

// Parameters returns the parameters schema (or empty map).
func (m *MockTool) Parameters() map[string]any {
	if m.ParamsVal != nil {
		return m.ParamsVal
	}
	return map[string]any{}
}

// Execute runs ExecuteFn if set, otherwise returns nil.
func (m *MockTool) Execute(ctx context.Context, args []byte, yield func(toolgen.Chunk) error) error {
	if m.ExecuteFn != nil {
		return m.ExecuteFn(ctx, args, yield)
	}
	return nil
}

// ErrNotScripted is returned by MockBackend for an operation without a scripted function.
var ErrNotScripted = errors.New("mock backend: operation not scripted")

// MockBackend is a clientmod.Backend whose responses are scripted per test. Every call is
// recorded before the scripted function runs.
type MockBackend struct {
	CallFn   func(ctx context.Context, call clientmod.Call) (json.RawMessage, error)
	StreamFn func(ctx context.Context, call clientmod.Call) (*stream.Handle[json.RawMessage], error)

	mu    sync.Mutex
	calls []clientmod.Call
}

// CallFunction records call and runs CallFn.
func (b *MockBackend) CallFunction(ctx context.Context, call clientmod.Call) (json.RawMessage, error) {
	b.record(call)
	if b.CallFn == nil {
		return nil, ErrNotScripted
	}
	return b.CallFn(ctx, call)
}

// StreamFunction records call and runs StreamFn.
func (b *MockBackend) StreamFunction(ctx context.Context, call clientmod.Call) (*stream.Handle[json.RawMessage], error) {
	b.record(call)
	if b.StreamFn == nil {
		return nil, ErrNotScripted
	}
	return b.StreamFn(ctx, call)
}

// Calls returns a copy of the recorded calls in arrival order.
func (b *MockBackend) Calls() []clientmod.Call {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]clientmod.Call(nil), b.calls...)
}

func (b *MockBackend) record(call clientmod.Call) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, call)
}

// Factory returns a clientmod.BackendFactory that hands b to every module.
func (b *MockBackend) Factory() clientmod.BackendFactory {
	return func(*clientmod.Module) (clientmod.Backend, error) { return b, nil }
}

// StreamProbe counts what happened to a tracked stream's resource.
type StreamProbe struct {
	opened   atomic.Int32
	released atomic.Int32
	pulled   atomic.Int32
}

// Opened reports how many times the resource was acquired.
func (p *StreamProbe) Opened() int { return int(p.opened.Load()) }

// Released reports how many times the resource was released.
func (p *StreamProbe) Released() int { return int(p.released.Load()) }

// Pulled reports how many elements were produced.
func (p *StreamProbe) Pulled() int { return int(p.pulled.Load()) }

// TrackedStream returns a Handle whose i-th element is next(i). next returning io.EOF ends
// the stream. A pull blocked on a canceled context returns the context error.
func TrackedStream(next func(i int) (json.RawMessage, error)) (*stream.Handle[json.RawMessage], *StreamProbe) {
	probe := &StreamProbe{}
	h := stream.New(func(context.Context) (stream.Source[json.RawMessage], error) {
		probe.opened.Add(1)
		i := 0
		return stream.Funcs[json.RawMessage]{
			NextFn: func(ctx context.Context) (json.RawMessage, error) {
				if err := ctx.Err(); err != nil {
					return nil, err
				}
				v, err := next(i)
				if err != nil {
					return nil, err
				}
				i++
				probe.pulled.Add(1)
				return v, nil
			},
			CloseFn: func() error {
				probe.released.Add(1)
				return nil
			},
		}, nil
	})
	return h, probe
}

// SliceStream is TrackedStream over a fixed list of elements.
func SliceStream(items ...json.RawMessage) (*stream.Handle[json.RawMessage], *StreamProbe) {
	return TrackedStream(func(i int) (json.RawMessage, error) {
		if i >= len(items) {
			return nil, io.EOF
		}
		return items[i], nil
	})
}

var (
	_ toolgen.Tool      = (*MockTool)(nil)
	_ clientmod.Backend = (*MockBackend)(nil)
)
