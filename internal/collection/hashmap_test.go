package collection

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashMapInsertGet(t *testing.T) {
	m := NewHashMap[int](16)
	m.Insert("ZONE_A", 1)
	m.Insert("ZONE_B", 2)

	v, ok := m.Get("ZONE_A")
	require.True(t, ok)
	require.Equal(t, 1, v)

	_, ok = m.Get("ZONE_C")
	require.False(t, ok)
	require.True(t, m.Contains("ZONE_B"))
	require.Equal(t, 2, m.Len())
}

func TestHashMapUpsertKeepsSize(t *testing.T) {
	m := NewHashMap[string](8)
	m.Insert("k", "old")
	m.Insert("k", "new")

	v, ok := m.Get("k")
	require.True(t, ok)
	require.Equal(t, "new", v, "Get returns the most recently inserted value")
	require.Equal(t, 1, m.Len(), "re-inserting a key must not grow the map")
}

func TestHashMapCollisionChaining(t *testing.T) {
	// With a single bucket every key collides; chaining must still keep
	// the entries distinct.
	m := NewHashMap[int](1)
	for i := 0; i < 20; i++ {
		m.Insert(fmt.Sprintf("key-%02d", i), i)
	}
	require.Equal(t, 20, m.Len())
	for i := 0; i < 20; i++ {
		v, ok := m.Get(fmt.Sprintf("key-%02d", i))
		require.True(t, ok)
		require.Equal(t, i, v)
	}
}

func TestHashMapDelete(t *testing.T) {
	m := NewHashMap[int](4)
	m.Insert("a", 1)
	m.Insert("b", 2)

	require.True(t, m.Delete("a"))
	require.False(t, m.Contains("a"))
	require.False(t, m.Delete("a"), "second delete reports absence")
	require.Equal(t, 1, m.Len())
}

func TestHashMapEnumeration(t *testing.T) {
	m := NewHashMap[int](8)
	want := map[string]int{"x": 1, "y": 2, "z": 3}
	for k, v := range want {
		m.Insert(k, v)
	}

	require.ElementsMatch(t, []string{"x", "y", "z"}, m.Keys())
	require.ElementsMatch(t, []int{1, 2, 3}, m.Values())

	got := map[string]int{}
	for _, e := range m.Items() {
		got[e.Key] = e.Value
	}
	require.Equal(t, want, got)
}
