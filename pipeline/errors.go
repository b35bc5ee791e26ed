package pipeline

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for pipeline. Use errors.Is to check.
var (
	ErrOrder          = errors.New("pipeline stages cannot be ordered")
	ErrDuplicateStage = errors.New("duplicate pipeline stage")
	ErrNoProject      = errors.New("build context has no project configuration")
	ErrNoDefinition   = errors.New("build context has no schema definition")
)

// OrderError reports stages whose before/after constraints form a cycle. Stages lists the
// cycle with its first stage repeated at the end.
type OrderError struct {
	Stages []string
}

func (e *OrderError) Error() string {
	return fmt.Sprintf("%v: cycle %s", ErrOrder, strings.Join(e.Stages, " -> "))
}

func (e *OrderError) Unwrap() error { return ErrOrder }

// DuplicateStageError reports two stages registered under one name.
type DuplicateStageError struct {
	Name string
}

func (e *DuplicateStageError) Error() string {
	return fmt.Sprintf("%v: %s", ErrDuplicateStage, e.Name)
}

func (e *DuplicateStageError) Unwrap() error { return ErrDuplicateStage }

// StageError is the terminal failure of one stage. No later stage ran.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// panicError wraps a value recovered from a panicking stage.
type panicError struct{ p any }

func (e *panicError) Error() string {
	return "panic: " + fmt.Sprint(e.p)
}
