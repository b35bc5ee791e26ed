package stream

import (
	"context"
	"io"
)

// Funcs adapts plain functions to Source. A nil CloseFn is a no-op.
type Funcs[T any] struct {
	NextFn  func(ctx context.Context) (T, error)
	CloseFn func() error
}

func (f Funcs[T]) Next(ctx context.Context) (T, error) { return f.NextFn(ctx) }

func (f Funcs[T]) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}

// FromSlice returns a Handle over a copy of items.
func FromSlice[T any](items []T) *Handle[T] {
	items = append([]T(nil), items...)
	return New(func(context.Context) (Source[T], error) {
		i := 0
		return Funcs[T]{NextFn: func(ctx context.Context) (T, error) {
			var zero T
			if err := ctx.Err(); err != nil {
				return zero, err
			}
			if i >= len(items) {
				return zero, io.EOF
			}
			i++
			return items[i-1], nil
		}}, nil
	})
}

var _ Source[int] = Funcs[int]{}
