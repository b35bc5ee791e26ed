package emit

import (
	"errors"
	"fmt"
)

// ErrCollision is returned when two schema declarations generate the same file or Go
// identifier.
var ErrCollision = errors.New("generated name collision")

// CollisionError names the generated file or identifier and the two declarations that
// produce it.
type CollisionError struct {
	Name   string
	First  string
	Second string
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("%s: %s and %s both generate %s", ErrCollision, e.First, e.Second, e.Name)
}

func (e *CollisionError) Unwrap() error { return ErrCollision }
