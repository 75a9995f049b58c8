package link

import "iter"

// Iter walks a list without modifying it.
//
// Changing the shape of the list (any insertion or removal) while an
// Iter is in flight makes its next call to Next panic with ErrModified.
// Replacing element values through Set or At is allowed.
type Iter[T any] struct {
	l       *Link[T]
	next    *node[T]
	version uint64
}

// Iter returns a read-only iterator positioned before the first element.
func (l *Link[T]) Iter() *Iter[T] {
	if l == nil {
		l = new(Link[T])
	}
	return &Iter[T]{l: l, next: l.head, version: l.version}
}

// Next returns the next element, or false once the list is exhausted.
func (it *Iter[T]) Next() (v T, ok bool) {
	if it.l.version != it.version {
		panic(ErrModified)
	}
	n := it.next
	if n == nil {
		return v, false
	}
	it.next = n.next
	return n.value, true
}

// IterMut walks a list yielding pointers to its elements. Its cursor
// is the node most recently returned by Next, and InsertNext,
// RemoveNext and PeekNext operate right after it in O(1).
//
// An open IterMut holds the list: any structural mutation made on the
// list itself panics with ErrMutating until the iterator is closed or
// exhausted. Always Close an IterMut that is abandoned early.
type IterMut[T any] struct {
	l       *Link[T]
	cur     *node[T]
	started bool
	done    bool
}

// IterMut returns a mutable iterator positioned before the first
// element. It panics with ErrMutating if another IterMut holds l.
// A nil l yields nothing.
func (l *Link[T]) IterMut() *IterMut[T] {
	if l == nil {
		l = new(Link[T])
	}
	l.checkGuard()
	it := &IterMut[T]{l: l}
	l.cursor = it
	return it
}

// Next advances the cursor and returns a pointer to its element.
// It returns false, and releases the list, once the list is exhausted.
func (it *IterMut[T]) Next() (*T, bool) {
	if it.done {
		return nil, false
	}
	var n *node[T]
	if !it.started {
		n = it.l.head
		it.started = true
	} else {
		n = it.cur.next
	}
	if n == nil {
		it.Close()
		return nil, false
	}
	it.cur = n
	return &n.value, true
}

// PeekNext returns a pointer to the element after the cursor without
// advancing. Before the first call to Next it peeks at the head.
func (it *IterMut[T]) PeekNext() (*T, bool) {
	if it.done {
		return nil, false
	}
	n := it.l.head
	if it.started {
		n = it.cur.next
	}
	if n == nil {
		return nil, false
	}
	return &n.value, true
}

// InsertNext inserts v right after the cursor. The inserted element is
// the one the following call to Next yields. It returns ErrNoCursor if
// the cursor addresses no node.
func (it *IterMut[T]) InsertNext(v T) error {
	if it.cur == nil {
		return ErrNoCursor
	}
	n := &node[T]{value: v}
	n.next = it.cur.splice(n)
	it.l.len++
	it.l.changed()
	return nil
}

// RemoveNext removes and returns the element right after the cursor.
// It reports false if the cursor addresses no node or has no successor.
func (it *IterMut[T]) RemoveNext() (v T, ok bool) {
	if it.cur == nil {
		return v, false
	}
	v, ok = it.cur.extractNext()
	if ok {
		it.l.len--
		it.l.changed()
	}
	return v, ok
}

// Close releases the list. It is safe to call more than once.
func (it *IterMut[T]) Close() {
	if it.l.cursor == it {
		it.l.cursor = nil
	}
	it.cur = nil
	it.done = true
}

// IntoIter yields the elements of a list it took ownership of,
// releasing each node as it goes.
type IntoIter[T any] struct {
	rest *Link[T]
}

// IntoIter moves the whole chain into a consuming iterator. l is empty
// as soon as IntoIter returns.
func (l *Link[T]) IntoIter() *IntoIter[T] {
	if l == nil {
		return &IntoIter[T]{rest: New[T]()}
	}
	return &IntoIter[T]{rest: l.Take()}
}

func (it *IntoIter[T]) Next() (T, bool) {
	return it.rest.Pop()
}

// Len returns the number of elements not yet yielded.
func (it *IntoIter[T]) Len() int {
	return it.rest.Len()
}

// All returns an iterator over index and element pairs.
func (l *Link[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		it := l.Iter()
		for i := 0; ; i++ {
			v, ok := it.Next()
			if !ok || !yield(i, v) {
				return
			}
		}
	}
}

// Values returns an iterator over the elements of l.
func (l *Link[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		it := l.Iter()
		for {
			v, ok := it.Next()
			if !ok || !yield(v) {
				return
			}
		}
	}
}

// Pointers returns an iterator over pointers to the elements of l.
// l is held by an IterMut for the duration of the loop.
func (l *Link[T]) Pointers() iter.Seq[*T] {
	return func(yield func(*T) bool) {
		it := l.IterMut()
		defer it.Close()
		for {
			p, ok := it.Next()
			if !ok || !yield(p) {
				return
			}
		}
	}
}

// Drain returns an iterator that consumes l. The list is emptied when
// the loop starts; elements left when the loop breaks are dropped.
func (l *Link[T]) Drain() iter.Seq[T] {
	return func(yield func(T) bool) {
		it := l.IntoIter()
		for {
			v, ok := it.Next()
			if !ok || !yield(v) {
				return
			}
		}
	}
}
