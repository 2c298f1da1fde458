package collection

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAdjacencyAddEdgeIdempotent(t *testing.T) {
	a := NewAdjacencyList()
	require.True(t, a.AddEdge("ZONE_B"))
	require.True(t, a.AddEdge("ZONE_C"))
	require.False(t, a.AddEdge("ZONE_B"), "duplicate edge is ignored")

	require.Equal(t, []string{"ZONE_B", "ZONE_C"}, a.Neighbors(), "insertion order preserved")
	require.Equal(t, 2, a.Len())
	require.True(t, a.IsAdjacent("ZONE_C"))
	require.False(t, a.IsAdjacent("ZONE_D"))
}

func TestAdjacencyRemoveEdge(t *testing.T) {
	a := NewAdjacencyList()
	a.AddEdge("b")
	a.AddEdge("c")
	a.AddEdge("d")

	require.True(t, a.RemoveEdge("c"))
	require.Equal(t, []string{"b", "d"}, a.Neighbors())

	require.True(t, a.RemoveEdge("d"), "tail removal keeps later appends consistent")
	a.AddEdge("e")
	require.Equal(t, []string{"b", "e"}, a.Neighbors())

	require.False(t, a.RemoveEdge("zz"))
}
