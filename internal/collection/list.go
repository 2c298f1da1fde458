package collection

// listNode is a link in a singly-linked list. Nodes are unexported so the
// list is the single owner of its links; nothing outside the package can
// splice or retain them.
type listNode[T comparable] struct {
	data T
	next *listNode[T]
}

// List is a singly-linked list without a capacity bound. Append walks to the
// tail (O(n)), Prepend is O(1), and iteration via Items follows link order.
//
// Used for: parking areas inside a zone.
type List[T comparable] struct {
	head *listNode[T]
	size int
}

// NewList creates an empty list.
func NewList[T comparable]() *List[T] { return &List[T]{} }

// Append adds data at the tail. O(n).
func (l *List[T]) Append(data T) {
	n := &listNode[T]{data: data}
	if l.head == nil {
		l.head = n
	} else {
		cur := l.head
		for cur.next != nil {
			cur = cur.next
		}
		cur.next = n
	}
	l.size++
}

// Prepend adds data at the head. O(1).
func (l *List[T]) Prepend(data T) {
	l.head = &listNode[T]{data: data, next: l.head}
	l.size++
}

// Delete removes the first occurrence of data and reports whether anything
// was removed. O(n).
func (l *List[T]) Delete(data T) bool {
	if l.head == nil {
		return false
	}
	if l.head.data == data {
		l.head = l.head.next
		l.size--
		return true
	}
	for cur := l.head; cur.next != nil; cur = cur.next {
		if cur.next.data == data {
			cur.next = cur.next.next
			l.size--
			return true
		}
	}
	return false
}

// Search reports whether data is present. O(n).
func (l *List[T]) Search(data T) bool {
	for cur := l.head; cur != nil; cur = cur.next {
		if cur.data == data {
			return true
		}
	}
	return false
}

// Items returns all elements in link order. O(n).
func (l *List[T]) Items() []T {
	out := make([]T, 0, l.size)
	for cur := l.head; cur != nil; cur = cur.next {
		out = append(out, cur.data)
	}
	return out
}

// Len reports the number of elements.
func (l *List[T]) Len() int { return l.size }
