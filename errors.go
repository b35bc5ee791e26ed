package toolgen

import (
	"errors"
	"fmt"
)

// Sentinel errors. Use errors.Is to check.
var (
	ErrToolNotFound  = errors.New("tool not found")
	ErrTimeout       = errors.New("tool execution timeout")
	ErrValidation    = errors.New("arguments do not match the parameter schema")
	ErrShutdown      = errors.New("registry is shut down")
	ErrStreamAborted = errors.New("stream aborted by consumer")
)

// ClientError is a problem with the arguments of a call. Its message is meant for the model,
// so it can correct the call; it never carries backend details.
type ClientError struct {
	Reason string
	Err    error // optional sentinel, usually ErrValidation
}

func (e *ClientError) Error() string { return "invalid arguments: " + e.Reason }

func (e *ClientError) Unwrap() error { return e.Err }

// SystemError is a backend or runtime failure. Error hides the cause; Unwrap exposes it.
type SystemError struct {
	Err error
}

func (e *SystemError) Error() string { return "action failed: internal error" }

func (e *SystemError) Unwrap() error { return e.Err }

// IsClientError reports whether err is or wraps a *ClientError.
func IsClientError(err error) bool {
	var ce *ClientError
	return errors.As(err, &ce)
}

// IsSystemError reports whether err is or wraps a *SystemError.
func IsSystemError(err error) bool {
	var se *SystemError
	return errors.As(err, &se)
}

// aborted marks an error returned by the consumer's yield, keeping the cause in the chain.
func aborted(err error) error {
	if errors.Is(err, ErrStreamAborted) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrStreamAborted, err)
}

// classify sorts a handler error: client errors and consumer aborts pass through, anything
// else is a SystemError.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case IsClientError(err), errors.Is(err, ErrStreamAborted):
		return err
	default:
		return &SystemError{Err: err}
	}
}

type panicError struct{ value any }

func (e *panicError) Error() string { return fmt.Sprintf("panic: %v", e.value) }
