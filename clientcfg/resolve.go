// Package clientcfg validates client identifiers and resolves the backend client module a
// resource uses, from the static clients configuration.
package clientcfg

import (
	"regexp"
	"time"

	"github.com/skosovsky/toolgen/ir"
)

var identifierPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// Entry is the static configuration of one client.
type Entry struct {
	Module string `toml:"module" yaml:"module"`
	Path   string `toml:"path" yaml:"path"`
}

// ClientConfig maps client identifiers to their configuration.
type ClientConfig map[string]Entry

// Resource is a consumer of imported functions. It selects its backend either by client
// identifier or by explicit module, never both.
type Resource struct {
	Name   string   `toml:"name" yaml:"name"`
	Client string   `toml:"client" yaml:"client"`
	Module string   `toml:"module" yaml:"module"`
	Import []string `toml:"import" yaml:"import"`
	// DisableTelemetry is forwarded to the backend on every call of the imported functions.
	DisableTelemetry bool `toml:"disable_telemetry" yaml:"disable_telemetry"`
	// Timeout bounds every call of the imported functions, e.g. "30s". Zero keeps the
	// registry default.
	Timeout time.Duration `toml:"timeout" yaml:"timeout"`
}

// Resolution is the outcome of resolving a resource's client.
type Resolution struct {
	// Identifier is the client identifier; empty for explicit modules.
	Identifier string
	// Module is the canonical module identifier.
	Module string
	Entry  Entry
}

// Explicit reports whether the resource named its module directly.
func (r Resolution) Explicit() bool { return r.Identifier == "" }

// ValidateIdentifier returns an *IdentifierError unless id matches [a-z][a-z0-9_]*.
func ValidateIdentifier(id string) error {
	if !identifierPattern.MatchString(id) {
		return &IdentifierError{Identifier: id}
	}
	return nil
}

// ModuleName is the canonical module identifier for a client entry.
func ModuleName(id string, e Entry) string {
	if e.Module != "" {
		return e.Module
	}
	return ir.Pascal(id) + "Client"
}

// Resolve returns the module res uses.
func Resolve(res Resource, clients ClientConfig) (Resolution, error) {
	if res.Timeout < 0 {
		return Resolution{}, &TimeoutError{Resource: res.Name, Timeout: res.Timeout}
	}
	switch {
	case res.Client != "" && res.Module != "":
		return Resolution{}, &ConfigError{Resource: res.Name, Both: true}
	case res.Client == "" && res.Module == "":
		return Resolution{}, &ConfigError{Resource: res.Name}
	case res.Module != "":
		return Resolution{Module: res.Module, Entry: Entry{Module: res.Module}}, nil
	}
	if err := ValidateIdentifier(res.Client); err != nil {
		return Resolution{}, err
	}
	e, ok := clients[res.Client]
	if !ok {
		return Resolution{}, &MissingClientError{Identifier: res.Client}
	}
	return Resolution{Identifier: res.Client, Module: ModuleName(res.Client, e), Entry: e}, nil
}
