package clientcfg

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors. Use errors.Is to check.
var (
	ErrConfig        = errors.New("client configuration error")
	ErrIdentifier    = errors.New("invalid client identifier")
	ErrMissingClient = errors.New("client not configured")
)

// ConfigError reports a resource that declares both or neither client-selection mechanism.
type ConfigError struct {
	Resource string
	Both     bool
}

func (e *ConfigError) Error() string {
	if e.Both {
		return fmt.Sprintf("%s: resource %q declares both %q and %q; use exactly one: %q (a configured client identifier) or %q (an explicit module)",
			ErrConfig, e.Resource, "client", "module", "client", "module")
	}
	return fmt.Sprintf("%s: resource %q declares neither %q nor %q; set %q (a configured client identifier) or %q (an explicit module)",
		ErrConfig, e.Resource, "client", "module", "client", "module")
}

func (e *ConfigError) Unwrap() error { return ErrConfig }

// IdentifierError reports a client identifier that does not match [a-z][a-z0-9_]*.
type IdentifierError struct {
	Identifier string
}

func (e *IdentifierError) Error() string {
	return fmt.Sprintf("%s %q: must start with a lowercase letter and contain only lowercase letters, digits and underscores",
		ErrIdentifier, e.Identifier)
}

func (e *IdentifierError) Unwrap() error { return ErrIdentifier }

// MissingClientError reports an identifier absent from the clients configuration.
type MissingClientError struct {
	Identifier string
}

// Key is the configuration key that is missing.
func (e *MissingClientError) Key() string { return "clients." + e.Identifier }

func (e *MissingClientError) Error() string {
	return fmt.Sprintf("%s: missing configuration key %q", ErrMissingClient, e.Key())
}

func (e *MissingClientError) Unwrap() error { return ErrMissingClient }

// TimeoutError reports a resource with a negative call timeout.
type TimeoutError struct {
	Resource string
	Timeout  time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s: resource %q has negative timeout %s", ErrConfig, e.Resource, e.Timeout)
}

func (e *TimeoutError) Unwrap() error { return ErrConfig }
