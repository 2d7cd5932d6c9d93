package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Iterator provides pull-based sequential access to a stream of values.
type Iterator[T any] interface {
	// Next returns the next value, or (zero, false, nil) when exhausted.
	Next(ctx context.Context) (T, bool, error)
	Close() error
}

// Stream is a lazy, pull-based sequence of stage results. Nothing runs
// until Collect pulls from it, and values are pulled one at a time, so
// a stage never sees item n+1 before item n has left the stream.
type Stream[T any] struct {
	create func(ctx context.Context) Iterator[T]
}

// FromSlice streams items in order. Context cancellation is checked before
// each item is handed out, never while a later stage works on one.
func FromSlice[T any](items []T) *Stream[T] {
	return &Stream[T]{
		create: func(context.Context) Iterator[T] {
			return &sliceIter[T]{items: items}
		},
	}
}

// Map transforms each value with fn.
func Map[I, O any](s *Stream[I], fn func(context.Context, I) (O, error)) *Stream[O] {
	return &Stream[O]{
		create: func(ctx context.Context) Iterator[O] {
			return &mapIter[I, O]{source: s.create(ctx), fn: fn}
		},
	}
}

// Tap calls fn for each value and passes the value on unchanged.
func Tap[T any](s *Stream[T], fn func(context.Context, T) error) *Stream[T] {
	return Map(s, func(ctx context.Context, v T) (T, error) {
		return v, fn(ctx, v)
	})
}

// FanOut applies every fn to each value concurrently and yields their
// results in fn order once all of them have returned.
func FanOut[I, O any](s *Stream[I], fns ...func(context.Context, I) (O, error)) *Stream[[]O] {
	return fanOut(s, true, fns)
}

// Serial is FanOut with the functions run one after another.
func Serial[I, O any](s *Stream[I], fns ...func(context.Context, I) (O, error)) *Stream[[]O] {
	return fanOut(s, false, fns)
}

func fanOut[I, O any](s *Stream[I], parallel bool, fns []func(context.Context, I) (O, error)) *Stream[[]O] {
	return &Stream[[]O]{
		create: func(ctx context.Context) Iterator[[]O] {
			return &fanOutIter[I, O]{source: s.create(ctx), fns: fns, parallel: parallel}
		},
	}
}

// Collect pulls every value. On error it returns what was collected so far.
func Collect[T any](ctx context.Context, s *Stream[T]) ([]T, error) {
	iter := s.create(ctx)
	defer iter.Close()
	var out []T
	for {
		v, ok, err := iter.Next(ctx)
		if err != nil || !ok {
			return out, err
		}
		out = append(out, v)
	}
}

type sliceIter[T any] struct {
	items []T
	index int
}

func (it *sliceIter[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, false, err
	}
	if it.index >= len(it.items) {
		return zero, false, nil
	}
	v := it.items[it.index]
	it.index++
	return v, true, nil
}

func (it *sliceIter[T]) Close() error { return nil }

type mapIter[I, O any] struct {
	source Iterator[I]
	fn     func(context.Context, I) (O, error)
}

func (it *mapIter[I, O]) Next(ctx context.Context) (O, bool, error) {
	var zero O
	v, ok, err := it.source.Next(ctx)
	if err != nil || !ok {
		return zero, false, err
	}
	out, err := it.fn(ctx, v)
	if err != nil {
		return zero, false, err
	}
	return out, true, nil
}

func (it *mapIter[I, O]) Close() error { return it.source.Close() }

type fanOutIter[I, O any] struct {
	source   Iterator[I]
	fns      []func(context.Context, I) (O, error)
	parallel bool
}

func (it *fanOutIter[I, O]) Next(ctx context.Context) ([]O, bool, error) {
	v, ok, err := it.source.Next(ctx)
	if err != nil || !ok {
		return nil, false, err
	}
	results := make([]O, len(it.fns))
	if !it.parallel {
		for i, fn := range it.fns {
			if results[i], err = fn(ctx, v); err != nil {
				return nil, false, err
			}
		}
		return results, true, nil
	}

	var g errgroup.Group
	for i, fn := range it.fns {
		g.Go(func() error {
			out, err := fn(ctx, v)
			results[i] = out
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, false, err
	}
	return results, true, nil
}

func (it *fanOutIter[I, O]) Close() error { return it.source.Close() }
