// Package collection implements the hand-built data structures that back the
// parking core: a fixed-capacity array, a singly-linked list, a bounded LIFO
// stack, a bounded circular FIFO queue, a chained hash map and an adjacency
// list. Bounded structures fail fast on overflow instead of growing or
// silently dropping, and removal from an empty structure is reported through
// an explicit (value, ok) pair rather than a zero value a caller could
// mistake for real data.
package collection

import "errors"

// ErrCapacityExceeded is returned by inserts into a bounded structure that
// is already at capacity. Callers should translate this into an HTTP 409
// style response rather than treating it as fatal.
var ErrCapacityExceeded = errors.New("capacity exceeded")

// ErrIndexOutOfRange is returned by indexed access outside [0, size).
var ErrIndexOutOfRange = errors.New("index out of range")
