package testutil

import (
	"time"

	"github.com/skosovsky/toolgen"
)

// NewTestRegistry returns a Registry with long timeout and panic recovery enabled,
// suitable for tests.
func NewTestRegistry(tools ...toolgen.Tool) *toolgen.Registry {
	reg := toolgen.NewRegistry(
		toolgen.WithDefaultTimeout(30*time.Second),
		toolgen.WithRecoverPanics(true),
	)
	for _, t := range tools {
		reg.Register(t)
	}
	return reg
}
