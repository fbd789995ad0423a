package util

// Stack is a LIFO of values. The zero value is ready to use.
type Stack[T any] []T

// Push puts v on top.
func (s *Stack[T]) Push(v T) {
	*s = append(*s, v)
}

// Pop takes the top value off. ok is false when the stack is empty.
func (s *Stack[T]) Pop() (v T, ok bool) {
	n := len(*s)
	if n == 0 {
		return v, false
	}
	v = (*s)[n-1]
	*s = (*s)[:n-1]
	return v, true
}

func (s Stack[T]) Len() int {
	return len(s)
}
