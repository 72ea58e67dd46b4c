package stg

import "github.com/ClicksEnStock/FileInfos/pkg/types"

// SliceEnumerator enumerates a fixed slice.
type SliceEnumerator[T any] struct {
	items  []T
	next   int
	closed bool
}

// NewSliceEnumerator returns an enumerator over items.
func NewSliceEnumerator[T any](items []T) *SliceEnumerator[T] {
	return &SliceEnumerator[T]{items: items}
}

func (e *SliceEnumerator[T]) Next() (T, bool, error) {
	var zero T
	if e.closed {
		return zero, false, types.ErrClosed
	}
	if e.next >= len(e.items) {
		return zero, false, nil
	}
	item := e.items[e.next]
	e.next++
	return item, true, nil
}

func (e *SliceEnumerator[T]) Close() error {
	e.closed = true
	return nil
}

// Collect drains an enumerator and closes it.
func Collect[T any](e Enumerator[T]) ([]T, error) {
	defer e.Close()
	var out []T
	for {
		item, ok, err := e.Next()
		if err != nil {
			return out, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, item)
	}
}
