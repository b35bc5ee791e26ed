package pipeline

import (
	"fmt"

	nanoid "github.com/matoous/go-nanoid/v2"
)

const (
	buildIDPrefix   = "build-"
	buildIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	buildIDLength   = 10
)

// NewBuildID returns a short random identifier used to correlate the log lines of one
// build. It never appears in generated output.
func NewBuildID() (string, error) {
	id, err := nanoid.Generate(buildIDAlphabet, buildIDLength)
	if err != nil {
		return "", fmt.Errorf("build id: %w", err)
	}
	return buildIDPrefix + id, nil
}
