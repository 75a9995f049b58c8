package link

import (
	"iter"
	"slices"
)

// Collect builds a list from seq in a single pass, appending each
// value at the tail.
func Collect[T any](seq iter.Seq[T]) *Link[T] {
	l := New[T]()
	slot := &l.head // next link to fill
	for v := range seq {
		n := &node[T]{value: v}
		*slot = n
		slot = &n.next
		l.len++
	}
	return l
}

// CollectPtr builds a list from copies of the values seq points to.
func CollectPtr[T any](seq iter.Seq[*T]) *Link[T] {
	return Collect(func(yield func(T) bool) {
		for p := range seq {
			if !yield(*p) {
				return
			}
		}
	})
}

// FromSlice builds a list holding the elements of s in order.
func FromSlice[T any](s []T) *Link[T] {
	return Collect(slices.Values(s))
}

// Of builds a list from its arguments. Of[int]() is an empty list.
func Of[T any](vs ...T) *Link[T] {
	return FromSlice(vs)
}

// FromElem returns a list of n copies of v. It is empty if n <= 0.
func FromElem[T any](v T, n int) *Link[T] {
	l := New[T]()
	for range max(n, 0) {
		l.Push(v)
	}
	return l
}
