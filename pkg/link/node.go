package link

// node owns its value and, exclusively, the rest of the chain.
type node[T any] struct {
	value T
	next  *node[T]
}

// lastNode returns the last node of the chain starting at n.
// n must not be nil.
func lastNode[T any](n *node[T]) *node[T] {
	for n.next != nil {
		n = n.next
	}
	return n
}

// nodeAt follows i links from n. It returns nil if the chain
// has fewer than i+1 nodes or i is negative.
func nodeAt[T any](n *node[T], i int) *node[T] {
	if i < 0 {
		return nil
	}
	for ; n != nil && i > 0; i-- {
		n = n.next
	}
	return n
}

// splice replaces the successor chain of n with chain and returns
// the chain n previously owned.
func (n *node[T]) splice(chain *node[T]) *node[T] {
	old := n.next
	n.next = chain
	return old
}

// extractNext unlinks the successor of n, puts the successor's own
// chain in its place and returns the value it carried.
func (n *node[T]) extractNext() (v T, ok bool) {
	d := n.next
	if d == nil {
		return v, false
	}
	n.next = d.splice(nil)
	return d.value, true
}
