package concurrent

import (
	"golang.org/x/sync/errgroup"
)

// Each runs action for every element with at most limit goroutines at once.
// A limit of one or less runs the actions inline, in order.
func Each[T any](items []T, limit int, action func(T)) {
	_ = Concurrent(items, limit, func(v T) error {
		action(v)
		return nil
	})
}

// Concurrent runs action for every element with at most limit goroutines at
// once and returns the first error encountered. All actions run even when
// one fails.
func Concurrent[T any](items []T, limit int, action func(T) error) error {
	if limit <= 1 || len(items) < 2 {
		var first error
		for _, v := range items {
			if err := action(v); err != nil && first == nil {
				first = err
			}
		}
		return first
	}

	var g errgroup.Group
	g.SetLimit(limit)
	for _, v := range items {
		g.Go(func() error { return action(v) })
	}
	return g.Wait()
}

// Filter keeps the elements for which keep returns true, preserving order.
func Filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, v := range items {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}
