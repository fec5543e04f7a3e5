package internal

// Stack is a last-in first-out sequence.
type Stack[T any] struct {
	Data []T
}

func (s *Stack[T]) Push(values ...T) {
	s.Data = append(s.Data, values...)
}

// Load replaces the stack contents so that Pop yields values in order.
func (s *Stack[T]) Load(values []T) {
	s.Reset()
	for n := len(values) - 1; n >= 0; n-- {
		s.Push(values[n])
	}
}

func (s *Stack[T]) Pop() (value T, ok bool) {
	value, ok = s.Peek()
	if ok {
		s.Data = s.Data[:len(s.Data)-1]
	}
	return
}

func (s *Stack[T]) Peek() (value T, ok bool) {
	if s.Empty() {
		return
	}

	return s.Data[len(s.Data)-1], true
}

func (s *Stack[T]) Empty() bool {
	return len(s.Data) == 0
}

func (s *Stack[T]) Len() int {
	return len(s.Data)
}

func (s *Stack[T]) Reset() {
	if len(s.Data) > 0 {
		s.Data = s.Data[:0]
	}
}
