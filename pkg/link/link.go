// Package link implements a generic singly linked list.
//
// Every node exclusively owns the rest of the chain, so moving a list
// with Take, Concat or SplitOff transfers whole sub-chains in O(1)
// once the splice point is found. The length is cached.
//
// Lookups that may fail report absence with a bool or a nil pointer.
// Indexed access through Get, At and Set is the exception: an out of
// range index panics with an *IndexError, like slice indexing does.
//
// Methods that only read a list treat a nil *Link as empty. Methods
// that change it need a non-nil receiver.
//
// A Link is not safe for concurrent use.
package link

// Link is a singly linked list. The zero value is an empty list
// ready to use.
type Link[T any] struct {
	head *node[T]
	len  int

	// version changes on every structural mutation. Iter uses it
	// to detect that the chain it walks was reshaped.
	version uint64

	// cursor is the open IterMut, if any.
	cursor *IterMut[T]
}

// New returns an empty list.
func New[T any]() *Link[T] {
	return &Link[T]{}
}

// checkGuard panics if a mutable iterator holds l.
func (l *Link[T]) checkGuard() {
	if l.cursor != nil {
		panic(ErrMutating)
	}
}

func (l *Link[T]) changed() {
	l.version++
}

// Len returns the number of elements in l. A nil list is empty.
func (l *Link[T]) Len() int {
	if l == nil {
		return 0
	}
	return l.len
}

func (l *Link[T]) IsEmpty() bool {
	return l.Len() == 0
}

// Front returns the first element.
func (l *Link[T]) Front() (v T, ok bool) {
	if l.IsEmpty() {
		return v, false
	}
	return l.head.value, true
}

// FrontMut returns a pointer to the first element, or nil if l is empty.
func (l *Link[T]) FrontMut() *T {
	if l.IsEmpty() {
		return nil
	}
	return &l.head.value
}

// Back returns the last element. It walks the whole list.
func (l *Link[T]) Back() (v T, ok bool) {
	if l.IsEmpty() {
		return v, false
	}
	return lastNode(l.head).value, true
}

// BackMut returns a pointer to the last element, or nil if l is empty.
func (l *Link[T]) BackMut() *T {
	if l.IsEmpty() {
		return nil
	}
	return &lastNode(l.head).value
}

// Push inserts v at the front of l.
func (l *Link[T]) Push(v T) {
	l.checkGuard()
	l.head = &node[T]{value: v, next: l.head}
	l.len++
	l.changed()
}

// Pop removes and returns the first element.
func (l *Link[T]) Pop() (v T, ok bool) {
	l.checkGuard()
	n := l.head
	if n == nil {
		return v, false
	}
	l.head = n.splice(nil)
	l.len--
	l.changed()
	return n.value, true
}

// PushBack appends v at the back of l.
func (l *Link[T]) PushBack(v T) {
	l.checkGuard()
	n := &node[T]{value: v}
	if l.head == nil {
		l.head = n
	} else {
		lastNode(l.head).splice(n)
	}
	l.len++
	l.changed()
}

// PopBack removes and returns the last element.
func (l *Link[T]) PopBack() (v T, ok bool) {
	l.checkGuard()
	switch l.len {
	case 0:
		return v, false
	case 1:
		return l.Pop()
	}
	v, ok = nodeAt(l.head, l.len-2).extractNext()
	if ok {
		l.len--
		l.changed()
	}
	return v, ok
}

// Insert inserts v so that it ends up at index i and returns a pointer
// to the stored value. Insert(0, v) is Push(v). It returns nil and
// leaves l unchanged if i is negative or greater than Len.
func (l *Link[T]) Insert(i int, v T) *T {
	l.checkGuard()
	if i == 0 {
		l.Push(v)
		return &l.head.value
	}
	prev := nodeAt(l.head, i-1)
	if prev == nil {
		return nil
	}
	n := &node[T]{value: v}
	n.next = prev.splice(n)
	l.len++
	l.changed()
	return &n.value
}

// Delete removes and returns the element at index i. Delete(0) is Pop.
// It reports false and leaves l unchanged if i is out of range.
func (l *Link[T]) Delete(i int) (v T, ok bool) {
	l.checkGuard()
	if i == 0 {
		return l.Pop()
	}
	prev := nodeAt(l.head, i-1)
	if prev == nil {
		return v, false
	}
	v, ok = prev.extractNext()
	if ok {
		l.len--
		l.changed()
	}
	return v, ok
}

func (l *Link[T]) mustNodeAt(i int) *node[T] {
	var n *node[T]
	if l != nil {
		n = nodeAt(l.head, i)
	}
	if n == nil {
		panic(&IndexError{Index: i, Len: l.Len()})
	}
	return n
}

// Get returns the element at index i. It panics with an *IndexError
// if i is out of range.
func (l *Link[T]) Get(i int) T {
	return l.mustNodeAt(i).value
}

// At returns a pointer to the element at index i. It panics with an
// *IndexError if i is out of range.
func (l *Link[T]) At(i int) *T {
	return &l.mustNodeAt(i).value
}

// Set replaces the element at index i. It panics with an *IndexError
// if i is out of range.
func (l *Link[T]) Set(i int, v T) {
	l.mustNodeAt(i).value = v
}

// Concat moves every node of other to the back of l, leaving other
// empty. other may be nil. Concatenating a list to itself panics.
func (l *Link[T]) Concat(other *Link[T]) {
	l.checkGuard()
	if other == nil {
		return
	}
	if other == l {
		panic("link: concat a list to itself")
	}
	other.checkGuard()
	if other.head == nil {
		return
	}

	if l.head == nil {
		l.head = other.head
	} else {
		lastNode(l.head).splice(other.head)
	}
	l.len += other.len
	other.head = nil
	other.len = 0
	l.changed()
	other.changed()
}

// SplitOff splits l after the node at index at. l keeps the elements
// 0..at and the returned list holds the rest. If at is out of range
// an empty list is returned and l is left unchanged.
func (l *Link[T]) SplitOff(at int) *Link[T] {
	l.checkGuard()
	n := nodeAt(l.head, at)
	if n == nil {
		return New[T]()
	}
	rest := &Link[T]{head: n.splice(nil), len: l.len - at - 1}
	if rest.head != nil {
		l.len = at + 1
		l.changed()
	}
	return rest
}

// Take moves the whole chain into a new list. l becomes empty.
func (l *Link[T]) Take() *Link[T] {
	l.checkGuard()
	out := &Link[T]{head: l.head, len: l.len}
	l.head = nil
	l.len = 0
	l.changed()
	return out
}

// Add appends v and returns l, for chaining: l.Add(1).Add(2).
func (l *Link[T]) Add(v T) *Link[T] {
	l.PushBack(v)
	return l
}

// AddLink concatenates other to l and returns l.
func (l *Link[T]) AddLink(other *Link[T]) *Link[T] {
	l.Concat(other)
	return l
}

// Slice returns the elements of l in order.
func (l *Link[T]) Slice() []T {
	s := make([]T, 0, l.Len())
	for v := range l.Values() {
		s = append(s, v)
	}
	return s
}

// Clone returns a new list holding copies of the elements of l.
// Elements are copied by assignment.
func (l *Link[T]) Clone() *Link[T] {
	return Collect(l.Values())
}

// Equal reports whether a and b hold equal elements in the same order.
func Equal[T comparable](a, b *Link[T]) bool {
	return EqualFunc(a, b, func(x, y T) bool { return x == y })
}

// EqualFunc is like Equal but compares elements with eq.
// Lists of different length are never equal. nil lists are empty.
func EqualFunc[T1, T2 any](a *Link[T1], b *Link[T2], eq func(T1, T2) bool) bool {
	if a.Len() != b.Len() {
		return false
	}
	if a.Len() == 0 {
		return true
	}
	for x, y := a.head, b.head; x != nil && y != nil; x, y = x.next, y.next {
		if !eq(x.value, y.value) {
			return false
		}
	}
	return true
}
