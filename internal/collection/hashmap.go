package collection

// hashNode is a link in a bucket chain. The map owns every node; chains are
// never exposed to callers.
type hashNode[V any] struct {
	key   string
	value V
	next  *hashNode[V]
}

// Entry is a key/value pair as returned by Items.
type Entry[V any] struct {
	Key   string
	Value V
}

// HashMap is a chained hash map with string keys. The bucket count is fixed
// at construction; collisions are resolved by prepending to the bucket's
// chain. The hash is a deterministic function of the key bytes so lookups
// and iteration behave identically across runs.
//
// Used for: the zone, vehicle and request registries.
type HashMap[V any] struct {
	buckets []*hashNode[V]
	size    int
}

// NewHashMap creates a HashMap with the given bucket count. A count below
// one is raised to one so the modulo in hash is always defined.
func NewHashMap[V any](buckets int) *HashMap[V] {
	if buckets < 1 {
		buckets = 1
	}
	return &HashMap[V]{buckets: make([]*hashNode[V], buckets)}
}

// hash sums the key bytes and reduces modulo the bucket count.
func (m *HashMap[V]) hash(key string) int {
	sum := 0
	for i := 0; i < len(key); i++ {
		sum += int(key[i])
	}
	return sum % len(m.buckets)
}

// Insert stores value under key, replacing any existing value for the same
// key without changing the reported size. Average O(1).
func (m *HashMap[V]) Insert(key string, value V) {
	i := m.hash(key)
	for cur := m.buckets[i]; cur != nil; cur = cur.next {
		if cur.key == key {
			cur.value = value
			return
		}
	}
	m.buckets[i] = &hashNode[V]{key: key, value: value, next: m.buckets[i]}
	m.size++
}

// Get returns the value stored under key. The second result is false when
// the key is absent. Average O(1).
func (m *HashMap[V]) Get(key string) (V, bool) {
	for cur := m.buckets[m.hash(key)]; cur != nil; cur = cur.next {
		if cur.key == key {
			return cur.value, true
		}
	}
	var zero V
	return zero, false
}

// Contains reports whether key is present. Average O(1).
func (m *HashMap[V]) Contains(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Delete removes key and reports whether it was present. Average O(1).
func (m *HashMap[V]) Delete(key string) bool {
	i := m.hash(key)
	var prev *hashNode[V]
	for cur := m.buckets[i]; cur != nil; cur = cur.next {
		if cur.key == key {
			if prev == nil {
				m.buckets[i] = cur.next
			} else {
				prev.next = cur.next
			}
			m.size--
			return true
		}
		prev = cur
	}
	return false
}

// Keys returns every stored key. Bucket order, not insertion order. O(n).
func (m *HashMap[V]) Keys() []string {
	out := make([]string, 0, m.size)
	for _, b := range m.buckets {
		for cur := b; cur != nil; cur = cur.next {
			out = append(out, cur.key)
		}
	}
	return out
}

// Values returns every stored value. Bucket order, not insertion order. O(n).
func (m *HashMap[V]) Values() []V {
	out := make([]V, 0, m.size)
	for _, b := range m.buckets {
		for cur := b; cur != nil; cur = cur.next {
			out = append(out, cur.value)
		}
	}
	return out
}

// Items returns every key/value pair. Bucket order, not insertion order. O(n).
func (m *HashMap[V]) Items() []Entry[V] {
	out := make([]Entry[V], 0, m.size)
	for _, b := range m.buckets {
		for cur := b; cur != nil; cur = cur.next {
			out = append(out, Entry[V]{Key: cur.key, Value: cur.value})
		}
	}
	return out
}

// Len reports the number of stored keys.
func (m *HashMap[V]) Len() int { return m.size }
