package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func ts(sec int) time.Time {
	return time.Date(2025, 6, 1, 12, 0, sec, 0, time.UTC)
}

func TestRequestHappyPath(t *testing.T) {
	r := NewRequest("REQ_0001", "V1", "ZONE_A", ts(0))
	require.Equal(t, StateRequested, r.State)

	require.NoError(t, r.Allocate("S1", "ZONE_A", 50, ts(1)))
	require.Equal(t, StateAllocated, r.State)
	require.Equal(t, 0, r.CrossZonePenalty, "same-zone allocation carries no penalty")
	require.False(t, r.IsCrossZone())

	require.NoError(t, r.Occupy(ts(2)))
	require.NoError(t, r.Release(ts(61)))
	require.Equal(t, StateReleased, r.State)
	require.True(t, r.Completed())

	require.Equal(t,
		[]RequestState{StateRequested, StateAllocated, StateOccupied, StateReleased},
		r.StateHistory, "state history is a valid walk of the table")
	require.Equal(t, 60*time.Second, r.Duration())
}

func TestRequestCrossZonePenalty(t *testing.T) {
	r := NewRequest("REQ_0002", "V1", "ZONE_A", ts(0))
	require.NoError(t, r.Allocate("S9", "ZONE_B", 50, ts(1)))
	require.Equal(t, 50, r.CrossZonePenalty)
	require.True(t, r.IsCrossZone())
}

func TestRequestInvalidTransitions(t *testing.T) {
	r := NewRequest("REQ_0003", "V1", "ZONE_A", ts(0))

	// occupy straight from REQUESTED is rejected and changes nothing.
	require.ErrorIs(t, r.Occupy(ts(1)), ErrInvalidTransition)
	require.Equal(t, StateRequested, r.State)
	require.True(t, r.OccupiedAt.IsZero())

	require.ErrorIs(t, r.Release(ts(1)), ErrInvalidTransition)

	require.NoError(t, r.Allocate("S1", "ZONE_A", 50, ts(1)))
	require.ErrorIs(t, r.Allocate("S2", "ZONE_A", 50, ts(2)), ErrInvalidTransition,
		"double allocation is rejected")
	require.Equal(t, "S1", r.AllocatedSlot)

	require.NoError(t, r.Occupy(ts(2)))
	require.ErrorIs(t, r.Cancel(ts(3)), ErrInvalidTransition,
		"an occupied request can no longer be cancelled")

	require.NoError(t, r.Release(ts(4)))
	for _, err := range []error{r.Occupy(ts(5)), r.Release(ts(5)), r.Cancel(ts(5))} {
		require.ErrorIs(t, err, ErrInvalidTransition, "RELEASED is terminal")
	}
}

func TestRequestCancelPaths(t *testing.T) {
	r := NewRequest("REQ_0004", "V1", "ZONE_A", ts(0))
	require.NoError(t, r.Cancel(ts(1)), "cancel from REQUESTED")
	require.Equal(t, StateCancelled, r.State)

	r2 := NewRequest("REQ_0005", "V1", "ZONE_A", ts(0))
	require.NoError(t, r2.Allocate("S1", "ZONE_A", 50, ts(1)))
	require.NoError(t, r2.Cancel(ts(2)), "cancel from ALLOCATED")
	require.ErrorIs(t, r2.Allocate("S1", "ZONE_A", 50, ts(3)), ErrInvalidTransition,
		"CANCELLED is terminal")
}

func TestRequestSnapshotRestore(t *testing.T) {
	r := NewRequest("REQ_0006", "V1", "ZONE_A", ts(0))
	before := r.Snapshot()

	require.NoError(t, r.Allocate("S1", "ZONE_B", 50, ts(1)))
	require.NoError(t, r.Occupy(ts(2)))

	r.Restore(before)
	require.Equal(t, StateRequested, r.State)
	require.Equal(t, []RequestState{StateRequested}, r.StateHistory)
	require.Empty(t, r.AllocatedSlot)
	require.Empty(t, r.AllocatedZone)
	require.Zero(t, r.CrossZonePenalty)
	require.True(t, r.AllocatedAt.IsZero())
	require.True(t, r.OccupiedAt.IsZero())
}

func TestRequestDurationNeverNegative(t *testing.T) {
	r := NewRequest("REQ_0007", "V1", "ZONE_A", ts(0))
	require.NoError(t, r.Allocate("S1", "ZONE_A", 50, ts(30)))
	require.NoError(t, r.Occupy(ts(31)))
	// A clock that jumped backwards must not surface as a negative duration.
	require.NoError(t, r.Release(ts(10)))
	require.Equal(t, time.Duration(0), r.Duration())
}
