package query

import (
	"cmp"
	"slices"
)

// Set is an immutable sorted set. Operations that change membership return a
// new Set and never touch the receiver's backing array.
type Set[T cmp.Ordered] struct {
	items []T
}

func NewSet[T cmp.Ordered](items ...T) Set[T] {
	if len(items) == 0 {
		return Set[T]{}
	}
	sorted := slices.Clone(items)
	slices.Sort(sorted)
	return Set[T]{items: slices.Compact(sorted)}
}

func (s Set[T]) Has(v T) bool {
	_, found := slices.BinarySearch(s.items, v)
	return found
}

func (s Set[T]) Len() int {
	return len(s.items)
}

func (s Set[T]) IsEmpty() bool {
	return len(s.items) == 0
}

// Items returns the members in ascending order.
func (s Set[T]) Items() []T {
	return slices.Clone(s.items)
}

func (s Set[T]) Toggle(v T) Set[T] {
	i, found := slices.BinarySearch(s.items, v)
	if found {
		if len(s.items) == 1 {
			return Set[T]{}
		}
		return Set[T]{items: slices.Delete(slices.Clone(s.items), i, i+1)}
	}
	return Set[T]{items: slices.Insert(slices.Clone(s.items), i, v)}
}

func (s Set[T]) Equal(o Set[T]) bool {
	return slices.Equal(s.items, o.items)
}

// Any reports whether at least one member satisfies f.
func (s Set[T]) Any(f func(T) bool) bool {
	return slices.ContainsFunc(s.items, f)
}
