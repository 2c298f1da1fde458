package collection

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestArrayAppendAndCapacity(t *testing.T) {
	a := NewArray[string](3)
	require.NoError(t, a.Append("s1"))
	require.NoError(t, a.Append("s2"))
	require.NoError(t, a.Append("s3"))
	require.Equal(t, 3, a.Len())

	err := a.Append("s4")
	require.ErrorIs(t, err, ErrCapacityExceeded)
	require.Equal(t, 3, a.Len(), "failed append must not grow the array")
	require.Equal(t, []string{"s1", "s2", "s3"}, a.Items())
}

func TestArrayIndexedAccess(t *testing.T) {
	a := NewArray[int](4)
	require.NoError(t, a.Append(10))
	require.NoError(t, a.Append(20))

	v, err := a.Get(1)
	require.NoError(t, err)
	require.Equal(t, 20, v)

	_, err = a.Get(2)
	require.ErrorIs(t, err, ErrIndexOutOfRange, "index beyond size is invalid even below capacity")
	_, err = a.Get(-1)
	require.ErrorIs(t, err, ErrIndexOutOfRange)

	require.NoError(t, a.Set(0, 11))
	v, _ = a.Get(0)
	require.Equal(t, 11, v)
	require.ErrorIs(t, a.Set(2, 30), ErrIndexOutOfRange)
}

func TestArrayRemoveShiftsLeft(t *testing.T) {
	a := NewArray[string](5)
	for _, s := range []string{"a", "b", "c", "d"} {
		require.NoError(t, a.Append(s))
	}

	require.True(t, a.Remove("b"))
	require.Equal(t, []string{"a", "c", "d"}, a.Items())
	require.Equal(t, 3, a.Len())

	require.False(t, a.Remove("zz"))
	require.Equal(t, 3, a.Len())

	// Freed capacity is reusable.
	require.NoError(t, a.Append("e"))
	require.NoError(t, a.Append("f"))
	require.Equal(t, []string{"a", "c", "d", "e", "f"}, a.Items())
}
