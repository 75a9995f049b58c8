package link

import (
	"fmt"
	"io"
)

// Format implements fmt.Formatter. A list prints as [e0, e1, e2] and
// the verb and flags are applied to every element, so %q of a
// Link[string] prints ["a", "b"].
func (l *Link[T]) Format(f fmt.State, verb rune) {
	if l == nil {
		io.WriteString(f, "[]")
		return
	}
	elem := fmt.FormatString(f, verb)
	io.WriteString(f, "[")
	for n := l.head; n != nil; n = n.next {
		if n != l.head {
			io.WriteString(f, ", ")
		}
		fmt.Fprintf(f, elem, n.value)
	}
	io.WriteString(f, "]")
}

func (l *Link[T]) String() string {
	return fmt.Sprintf("%v", l)
}
