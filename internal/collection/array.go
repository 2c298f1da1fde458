package collection

import "fmt"

// Array is a fixed-capacity array. The capacity is set at construction and
// never grows; Append fails with ErrCapacityExceeded once the array is full.
// Iteration via Items follows insertion order.
//
// Used for: parking slots inside an area.
type Array[T comparable] struct {
	items []T
	size  int
}

// NewArray creates an Array with the given fixed capacity. A negative
// capacity is treated as zero.
func NewArray[T comparable](capacity int) *Array[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &Array[T]{items: make([]T, capacity)}
}

// Append adds an item after the last occupied index. O(1).
func (a *Array[T]) Append(item T) error {
	if a.size >= len(a.items) {
		return fmt.Errorf("%w: array full (capacity %d)", ErrCapacityExceeded, len(a.items))
	}
	a.items[a.size] = item
	a.size++
	return nil
}

// Get returns the item at index i. O(1).
func (a *Array[T]) Get(i int) (T, error) {
	if i < 0 || i >= a.size {
		var zero T
		return zero, fmt.Errorf("%w: index %d (size %d)", ErrIndexOutOfRange, i, a.size)
	}
	return a.items[i], nil
}

// Set replaces the item at index i. The index must already be occupied. O(1).
func (a *Array[T]) Set(i int, item T) error {
	if i < 0 || i >= a.size {
		return fmt.Errorf("%w: index %d (size %d)", ErrIndexOutOfRange, i, a.size)
	}
	a.items[i] = item
	return nil
}

// Remove deletes the first occurrence of item, shifting every subsequent
// element one position left. Returns false when the item is absent. O(n).
func (a *Array[T]) Remove(item T) bool {
	i := a.Find(item)
	if i < 0 {
		return false
	}
	copy(a.items[i:a.size-1], a.items[i+1:a.size])
	var zero T
	a.items[a.size-1] = zero
	a.size--
	return true
}

// Find returns the index of the first occurrence of item, or -1. O(n).
func (a *Array[T]) Find(item T) int {
	for i := 0; i < a.size; i++ {
		if a.items[i] == item {
			return i
		}
	}
	return -1
}

// Items returns a copy of the occupied portion in insertion order. O(n).
func (a *Array[T]) Items() []T {
	out := make([]T, a.size)
	copy(out, a.items[:a.size])
	return out
}

// Len reports the number of stored items.
func (a *Array[T]) Len() int { return a.size }

// Cap reports the fixed capacity.
func (a *Array[T]) Cap() int { return len(a.items) }
