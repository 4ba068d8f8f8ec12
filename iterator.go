package limesurveyrc2api

import (
	"context"
	"iter"
)

// pageFunc fetches a single page of items T starting at the given offset.
type pageFunc[T any] func(ctx context.Context, start, limit int) ([]T, error)

// iterate returns an iterator that walks through all pages using the
// provided fetcher. Iteration stops when a page comes back short.
func iterate[T any](ctx context.Context, start, limit int, fetch pageFunc[T]) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for {
			items, err := fetch(ctx, start, limit)
			if err != nil {
				yield(*new(T), err)
				return
			}

			for _, item := range items {
				if !yield(item, nil) {
					return
				}
			}

			if len(items) < limit {
				return
			}
			start += limit
		}
	}
}
