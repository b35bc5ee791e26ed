package actions

import (
	"errors"
	"fmt"
)

// Sentinel errors for actions. Use errors.Is to check.
var (
	ErrUnknownFunction = errors.New("unknown function")
	ErrDuplicateAction = errors.New("duplicate action name")
	ErrUnboundModule   = errors.New("action module not synthesized")
)

// UnknownFunctionError names an imported function missing from the schema.
type UnknownFunctionError struct {
	Function string
}

func (e *UnknownFunctionError) Error() string {
	return fmt.Sprintf("imported function %q is not defined in the schema", e.Function)
}

func (e *UnknownFunctionError) Unwrap() error { return ErrUnknownFunction }

// DuplicateActionError reports two distinct functions whose canonical names collide.
type DuplicateActionError struct {
	Name   string
	First  string
	Second string
}

func (e *DuplicateActionError) Error() string {
	return fmt.Sprintf("functions %q and %q both map to action %q", e.First, e.Second, e.Name)
}

func (e *DuplicateActionError) Unwrap() error { return ErrDuplicateAction }
