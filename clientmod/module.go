// Package clientmod synthesizes backend client modules from resolved client configuration.
// Modules live in an explicit Registry owned by one build; synthesis is idempotent per
// client identifier.
package clientmod

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/goccy/go-json"

	"github.com/skosovsky/toolgen/clientcfg"
	"github.com/skosovsky/toolgen/stream"
)

// ErrNoBackend is returned when a module without a backend is asked to call a function.
var ErrNoBackend = errors.New("client module has no backend")

// CallOptions are per-binding settings forwarded to the backend.
type CallOptions struct {
	DisableTelemetry bool
}

// Call is one backend invocation of a schema function.
type Call struct {
	Function string
	Args     json.RawMessage
	Options  CallOptions
}

// Backend is the model client capability. Retries and transport are its own concern.
type Backend interface {
	CallFunction(ctx context.Context, call Call) (json.RawMessage, error)
	StreamFunction(ctx context.Context, call Call) (*stream.Handle[json.RawMessage], error)
}

// BackendFactory builds the backend for a module. It receives the module's configured
// source path through m.
type BackendFactory func(m *Module) (Backend, error)

// Module binds a client's source path to a backend.
type Module struct {
	// Identifier is the client identifier; empty for explicit modules.
	Identifier string
	// Name is the canonical module identifier.
	Name       string
	SourcePath string
	Backend    Backend
}

// CallFunction forwards to the backend.
func (m *Module) CallFunction(ctx context.Context, call Call) (json.RawMessage, error) {
	if m.Backend == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoBackend, m.Name)
	}
	return m.Backend.CallFunction(ctx, call)
}

// StreamFunction forwards to the backend.
func (m *Module) StreamFunction(ctx context.Context, call Call) (*stream.Handle[json.RawMessage], error) {
	if m.Backend == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoBackend, m.Name)
	}
	return m.Backend.StreamFunction(ctx, call)
}

// Registry holds the modules synthesized during one build.
type Registry struct {
	factory BackendFactory

	mu      sync.Mutex
	modules map[string]*Module
	order   []string
}

// NewRegistry returns an empty Registry. A nil factory synthesizes modules without a
// backend, which is enough for code generation.
func NewRegistry(factory BackendFactory) *Registry {
	return &Registry{factory: factory, modules: make(map[string]*Module)}
}

// Synthesize returns the module for id, creating it on first request. Later requests for
// the same id return the same *Module. The identifier must already be valid.
func (r *Registry) Synthesize(id string, e clientcfg.Entry) (*Module, error) {
	return r.synthesize(id, clientcfg.ModuleName(id, e), e.Path)
}

// SynthesizeResolution synthesizes the module for a resolved resource. Explicit modules
// are keyed by module name.
func (r *Registry) SynthesizeResolution(res clientcfg.Resolution) (*Module, error) {
	if res.Explicit() {
		return r.synthesize("", res.Module, res.Entry.Path)
	}
	return r.Synthesize(res.Identifier, res.Entry)
}

// Resolve validates, resolves and synthesizes the module for id against clients.
func (r *Registry) Resolve(id string, clients clientcfg.ClientConfig) (*Module, error) {
	if err := clientcfg.ValidateIdentifier(id); err != nil {
		return nil, err
	}
	e, ok := clients[id]
	if !ok {
		return nil, &clientcfg.MissingClientError{Identifier: id}
	}
	return r.Synthesize(id, e)
}

func (r *Registry) synthesize(id, name, path string) (*Module, error) {
	key := id
	if key == "" {
		key = "module:" + name
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.modules[key]; ok {
		return m, nil
	}
	m := &Module{Identifier: id, Name: name, SourcePath: path}
	if r.factory != nil {
		b, err := r.factory(m)
		if err != nil {
			return nil, fmt.Errorf("synthesize client module %s: %w", name, err)
		}
		m.Backend = b
	}
	r.modules[key] = m
	r.order = append(r.order, key)
	return m, nil
}

// Lookup returns the module synthesized for id.
func (r *Registry) Lookup(id string) (*Module, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.modules[id]
	return m, ok
}

// LookupModule returns the module synthesized for an explicit module name.
func (r *Registry) LookupModule(name string) (*Module, bool) {
	return r.Lookup("module:" + name)
}

// Named returns the first module, in creation order, whose canonical name is name.
func (r *Registry) Named(name string) (*Module, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, key := range r.order {
		if m := r.modules[key]; m.Name == name {
			return m, true
		}
	}
	return nil, false
}

// Modules returns every synthesized module in creation order.
func (r *Registry) Modules() []*Module {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Module, len(r.order))
	for i, key := range r.order {
		out[i] = r.modules[key]
	}
	return out
}
