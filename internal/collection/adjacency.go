package collection

// adjNode is a link in an adjacency chain, owned by its AdjacencyList.
type adjNode struct {
	id   string
	next *adjNode
}

// AdjacencyList holds the neighbor set of a single graph node as a linked
// chain of ids. Edges are directional: an entry here says nothing about the
// reverse direction, which the caller must insert explicitly. AddEdge is
// idempotent, and Neighbors preserves insertion order so traversals over the
// set are deterministic.
//
// Used for: the zone-to-zone proximity graph.
type AdjacencyList struct {
	head *adjNode
	tail *adjNode
	size int
}

// NewAdjacencyList creates an empty neighbor set.
func NewAdjacencyList() *AdjacencyList { return &AdjacencyList{} }

// AddEdge records id as a neighbor. Duplicate edges are ignored and reported
// with a false result. O(n).
func (a *AdjacencyList) AddEdge(id string) bool {
	if a.IsAdjacent(id) {
		return false
	}
	n := &adjNode{id: id}
	if a.tail == nil {
		a.head = n
	} else {
		a.tail.next = n
	}
	a.tail = n
	a.size++
	return true
}

// RemoveEdge deletes id from the neighbor set and reports whether it was
// present. O(n).
func (a *AdjacencyList) RemoveEdge(id string) bool {
	var prev *adjNode
	for cur := a.head; cur != nil; cur = cur.next {
		if cur.id == id {
			if prev == nil {
				a.head = cur.next
			} else {
				prev.next = cur.next
			}
			if a.tail == cur {
				a.tail = prev
			}
			a.size--
			return true
		}
		prev = cur
	}
	return false
}

// IsAdjacent reports whether id is a neighbor. O(n).
func (a *AdjacencyList) IsAdjacent(id string) bool {
	for cur := a.head; cur != nil; cur = cur.next {
		if cur.id == id {
			return true
		}
	}
	return false
}

// Neighbors returns all neighbor ids in insertion order. O(n).
func (a *AdjacencyList) Neighbors() []string {
	out := make([]string, 0, a.size)
	for cur := a.head; cur != nil; cur = cur.next {
		out = append(out, cur.id)
	}
	return out
}

// Len reports the number of neighbors.
func (a *AdjacencyList) Len() int { return a.size }
