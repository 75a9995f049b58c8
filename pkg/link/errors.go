package link

import (
	"errors"
	"fmt"
)

var (
	// ErrNoCursor is returned by cursor operations of an IterMut that
	// has not yielded a node yet, or that is exhausted or closed.
	ErrNoCursor = errors.New("link: cursor does not address a node")

	// ErrMutating is the panic value of a structural mutation attempted
	// while an IterMut holds the list.
	ErrMutating = errors.New("link: list is held by a mutable iterator")

	// ErrModified is the panic value of Iter.Next when the list changed
	// shape after the iterator was created.
	ErrModified = errors.New("link: list modified during iteration")
)

// IndexError is the panic value of out of range indexed access.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("index %d out of range for Link of length %d", e.Index, e.Len)
}
