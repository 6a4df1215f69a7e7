package contacts

import "context"

// pageFetcher returns the next page of items and whether another page
// follows.
type pageFetcher[T any] func(ctx context.Context) ([]T, bool, error)

// Iterator walks a paged collection lazily. It is single-pass and cannot be
// restarted. Once Next returns false, Err reports whether iteration ended on
// an error.
type Iterator[T any] struct {
	ctx   context.Context
	fetch pageFetcher[T]
	buf   []T
	cur   T
	more  bool
	err   error
}

func newIterator[T any](ctx context.Context, fetch pageFetcher[T]) *Iterator[T] {
	return &Iterator[T]{ctx: ctx, fetch: fetch, more: true}
}

// Next advances to the next item, fetching a page when the buffered one is
// exhausted.
func (it *Iterator[T]) Next() bool {
	for len(it.buf) == 0 {
		if !it.more || it.err != nil {
			var zero T
			it.cur = zero
			return false
		}
		items, more, err := it.fetch(it.ctx)
		if err != nil {
			it.err = err
			it.more = false
			continue
		}
		it.buf, it.more = items, more
	}
	it.cur, it.buf = it.buf[0], it.buf[1:]
	return true
}

// Value returns the current item.
func (it *Iterator[T]) Value() T {
	return it.cur
}

// Err returns the error that ended iteration, if any.
func (it *Iterator[T]) Err() error {
	return it.err
}

// Collect drains it. On error the items read before the failure are
// returned with it.
func Collect[T any](it *Iterator[T]) ([]T, error) {
	var items []T
	for it.Next() {
		items = append(items, it.Value())
	}
	return items, it.Err()
}
