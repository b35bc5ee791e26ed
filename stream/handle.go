// Package stream provides Handle, the value returned by streaming operations: a lazy,
// forward-only, non-restartable sequence whose underlying resource is acquired on the first
// pull and released exactly once, on Close, exhaustion, source failure, cancellation of the
// consumer's context, or an early break out of All.
package stream

import (
	"context"
	"errors"
	"io"
	"iter"
	"sync"
)

// Sentinel errors for stream. Use errors.Is to check.
var (
	ErrClosed   = errors.New("stream closed")
	ErrConsumed = errors.New("stream already consumed")
)

// Source produces elements from an open resource. Next returns io.EOF after the last
// element. Close may be called while Next is blocked and must make it return.
type Source[T any] interface {
	Next(ctx context.Context) (T, error)
	Close() error
}

// OpenFunc acquires the resource behind a stream. It is called at most once.
type OpenFunc[T any] func(ctx context.Context) (Source[T], error)

// Handle is a pull-driven sequence of T. A single consumer pulls from it; independent
// Handles share nothing.
type Handle[T any] struct {
	open OpenFunc[T]
	done chan struct{}

	// opening serializes acquisition; Close never takes it.
	opening sync.Mutex

	mu        sync.Mutex
	src       Source[T]
	stop      func() bool
	closed    bool
	exhausted bool
	ranged    bool
	closeErr  error
}

// New returns a Handle that opens its resource on the first pull.
func New[T any](open OpenFunc[T]) *Handle[T] {
	return &Handle[T]{open: open, done: make(chan struct{})}
}

// Next returns the next element. Once the sequence is exhausted every later call returns
// io.EOF; after any other close it returns ErrClosed. Any error releases the resource.
func (h *Handle[T]) Next(ctx context.Context) (T, error) {
	var zero T
	src, err := h.acquire(ctx)
	if err != nil {
		return zero, err
	}
	v, err := src.Next(ctx)
	if err != nil {
		h.mu.Lock()
		if errors.Is(err, io.EOF) && !h.closed {
			h.exhausted = true
		}
		h.closeLocked()
		h.mu.Unlock()
		return zero, err
	}
	return v, nil
}

// All ranges over the remaining elements. Breaking out of the loop closes the handle.
// Source errors are yielded once with a zero value; exhaustion ends the loop silently.
// Only the first call to All iterates; later calls yield ErrConsumed.
func (h *Handle[T]) All(ctx context.Context) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T
		h.mu.Lock()
		if h.ranged {
			h.mu.Unlock()
			yield(zero, ErrConsumed)
			return
		}
		h.ranged = true
		h.mu.Unlock()
		defer h.Close()

		for {
			v, err := h.Next(ctx)
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(zero, err)
				return
			}
			if !yield(v, nil) {
				return
			}
		}
	}
}

// Collect drains the handle into a slice.
func (h *Handle[T]) Collect(ctx context.Context) ([]T, error) {
	var out []T
	for v, err := range h.All(ctx) {
		if err != nil {
			return out, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Close releases the resource if it was acquired. It is idempotent and returns the error
// of the first release.
func (h *Handle[T]) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closeLocked()
	return h.closeErr
}

// Done is closed once the handle has been closed.
func (h *Handle[T]) Done() <-chan struct{} { return h.done }

func (h *Handle[T]) acquire(ctx context.Context) (Source[T], error) {
	h.opening.Lock()
	defer h.opening.Unlock()

	h.mu.Lock()
	if h.closed {
		err := h.closedErr()
		h.mu.Unlock()
		return nil, err
	}
	if h.src != nil {
		src := h.src
		h.mu.Unlock()
		return src, nil
	}
	if err := ctx.Err(); err != nil {
		h.closeLocked()
		h.mu.Unlock()
		return nil, err
	}
	h.mu.Unlock()

	// open may block; Close must stay callable meanwhile.
	src, err := h.open(ctx)

	h.mu.Lock()
	defer h.mu.Unlock()
	if err != nil {
		h.closeLocked()
		return nil, err
	}
	if h.closed {
		_ = src.Close()
		return nil, ErrClosed
	}
	h.src = src
	// Release the resource when the consumer's context ends, even if it never pulls again.
	h.stop = context.AfterFunc(ctx, func() { _ = h.Close() })
	return src, nil
}

func (h *Handle[T]) closedErr() error {
	if h.exhausted {
		return io.EOF
	}
	return ErrClosed
}

func (h *Handle[T]) closeLocked() {
	if h.closed {
		return
	}
	h.closed = true
	if h.stop != nil {
		h.stop()
	}
	if h.src != nil {
		h.closeErr = h.src.Close()
	}
	close(h.done)
}
