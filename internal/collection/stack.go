package collection

import "fmt"

// Stack is a bounded, array-backed LIFO stack. Push fails with
// ErrCapacityExceeded at capacity; Pop and Peek distinguish "empty" from a
// stored zero value through their ok result.
//
// Used for: the rollback operation history.
type Stack[T any] struct {
	items []T
	top   int // index of the top item, -1 when empty
}

// NewStack creates a Stack with the given fixed capacity.
func NewStack[T any](capacity int) *Stack[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &Stack[T]{items: make([]T, capacity), top: -1}
}

// Push places item on top of the stack. O(1).
func (s *Stack[T]) Push(item T) error {
	if s.top >= len(s.items)-1 {
		return fmt.Errorf("%w: stack full (capacity %d)", ErrCapacityExceeded, len(s.items))
	}
	s.top++
	s.items[s.top] = item
	return nil
}

// Pop removes and returns the top item. The second result is false when the
// stack is empty. O(1).
func (s *Stack[T]) Pop() (T, bool) {
	if s.top < 0 {
		var zero T
		return zero, false
	}
	item := s.items[s.top]
	var zero T
	s.items[s.top] = zero
	s.top--
	return item, true
}

// Peek returns the top item without removing it. O(1).
func (s *Stack[T]) Peek() (T, bool) {
	if s.top < 0 {
		var zero T
		return zero, false
	}
	return s.items[s.top], true
}

// GetRecent returns the top min(n, size) items, most recent first, without
// mutating the stack. O(n).
func (s *Stack[T]) GetRecent(n int) []T {
	if n <= 0 || s.top < 0 {
		return nil
	}
	count := n
	if count > s.top+1 {
		count = s.top + 1
	}
	out := make([]T, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, s.items[s.top-i])
	}
	return out
}

// Len reports the number of stored items.
func (s *Stack[T]) Len() int { return s.top + 1 }

// Cap reports the fixed capacity.
func (s *Stack[T]) Cap() int { return len(s.items) }
