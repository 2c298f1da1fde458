package collection

import "fmt"

// Queue is a bounded FIFO queue over a circular array. Enqueue fails with
// ErrCapacityExceeded at capacity; Dequeue and Peek report emptiness through
// their ok result instead of returning an ambiguous zero value.
//
// Used for: pending parking request ids.
type Queue[T any] struct {
	items []T
	front int
	count int
}

// NewQueue creates a Queue with the given fixed capacity.
func NewQueue[T any](capacity int) *Queue[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &Queue[T]{items: make([]T, capacity)}
}

// Enqueue appends item at the rear. O(1).
func (q *Queue[T]) Enqueue(item T) error {
	if q.count >= len(q.items) {
		return fmt.Errorf("%w: queue full (capacity %d)", ErrCapacityExceeded, len(q.items))
	}
	rear := (q.front + q.count) % len(q.items)
	q.items[rear] = item
	q.count++
	return nil
}

// Dequeue removes and returns the front item. The second result is false
// when the queue is empty. O(1).
func (q *Queue[T]) Dequeue() (T, bool) {
	if q.count == 0 {
		var zero T
		return zero, false
	}
	item := q.items[q.front]
	var zero T
	q.items[q.front] = zero
	q.front = (q.front + 1) % len(q.items)
	q.count--
	return item, true
}

// Peek returns the front item without removing it. O(1).
func (q *Queue[T]) Peek() (T, bool) {
	if q.count == 0 {
		var zero T
		return zero, false
	}
	return q.items[q.front], true
}

// Items returns all elements front-to-rear without mutating the queue. O(n).
func (q *Queue[T]) Items() []T {
	out := make([]T, 0, q.count)
	for i := 0; i < q.count; i++ {
		out = append(out, q.items[(q.front+i)%len(q.items)])
	}
	return out
}

// Len reports the number of stored items.
func (q *Queue[T]) Len() int { return q.count }

// Cap reports the fixed capacity.
func (q *Queue[T]) Cap() int { return len(q.items) }
