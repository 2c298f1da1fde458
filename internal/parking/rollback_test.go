package parking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iliyamo/smart-parking-system/internal/model"
)

// fixedClock advances the system clock by one second per call so every
// timestamp in a test is distinct and deterministic.
func fixedClock(sys *System) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	sys.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}
}

func TestRollbackOccupyRevertsStateOnly(t *testing.T) {
	sys := twoZoneSystem(t)
	fixedClock(sys)
	sys.RegisterVehicle("V1", "ZONE_A", "")

	req, res, err := sys.CreateRequest("V1", "ZONE_A", true) // create + allocate
	require.NoError(t, err)
	_, err = sys.Occupy(req.ID)
	require.NoError(t, err)
	require.Equal(t, 3, sys.RollbackHistorySize(), "create, allocate, occupy")

	undone, err := sys.Rollback(1)
	require.NoError(t, err)
	require.Len(t, undone, 1)
	require.Equal(t, model.OpOccupy, undone[0].Type)
	require.Equal(t, req.ID, undone[0].RequestID)

	require.Equal(t, model.StateAllocated, req.State)
	slot := sys.engine.FindSlotByID(res.SlotID)
	require.False(t, slot.Available, "undoing occupy keeps the slot held")
	require.Equal(t, 2, sys.RollbackHistorySize())
}

func TestRollbackAllocateFreesSlot(t *testing.T) {
	sys := twoZoneSystem(t)
	fixedClock(sys)
	sys.RegisterVehicle("V1", "ZONE_A", "")

	req, res, err := sys.CreateRequest("V1", "ZONE_A", true)
	require.NoError(t, err)
	slot := sys.engine.FindSlotByID(res.SlotID)
	require.False(t, slot.Available)

	undone, err := sys.Rollback(1)
	require.NoError(t, err)
	require.Equal(t, model.OpAllocate, undone[0].Type)

	require.Equal(t, model.StateRequested, req.State)
	require.Empty(t, req.AllocatedSlot)
	require.Empty(t, req.AllocatedZone)
	require.Zero(t, req.CrossZonePenalty)
	require.True(t, req.AllocatedAt.IsZero())
	require.True(t, slot.Available)
	require.Empty(t, slot.VehicleID)
	require.Empty(t, slot.RequestID)
}

func TestRollbackReleaseReconsumesSlot(t *testing.T) {
	sys := twoZoneSystem(t)
	fixedClock(sys)
	sys.RegisterVehicle("V1", "ZONE_A", "")

	req, res, _ := sys.CreateRequest("V1", "ZONE_A", true)
	sys.Occupy(req.ID)
	_, err := sys.Release(req.ID)
	require.NoError(t, err)

	slot := sys.engine.FindSlotByID(res.SlotID)
	require.False(t, slot.Available, "release does not free the slot")

	undone, err := sys.Rollback(1)
	require.NoError(t, err)
	require.Equal(t, model.OpRelease, undone[0].Type)
	require.Equal(t, model.StateOccupied, req.State)
	require.True(t, req.ReleasedAt.IsZero())
	require.False(t, slot.Available)
}

func TestRollbackCancelRestoresHeldSlot(t *testing.T) {
	sys := twoZoneSystem(t)
	fixedClock(sys)
	sys.RegisterVehicle("V1", "ZONE_A", "")

	req, res, _ := sys.CreateRequest("V1", "ZONE_A", true)
	slot := sys.engine.FindSlotByID(res.SlotID)

	_, err := sys.Cancel(req.ID)
	require.NoError(t, err)
	require.True(t, slot.Available, "cancelling an allocated request frees its slot")

	undone, err := sys.Rollback(1)
	require.NoError(t, err)
	require.Equal(t, model.OpCancel, undone[0].Type)
	require.Equal(t, model.StateAllocated, req.State)
	require.False(t, slot.Available, "undoing the cancel re-consumes the slot")
	require.Equal(t, "V1", slot.VehicleID)
}

func TestRollbackCreateRemovesRequest(t *testing.T) {
	sys := twoZoneSystem(t)
	fixedClock(sys)
	sys.RegisterVehicle("V1", "ZONE_A", "")

	req, _, err := sys.CreateRequest("V1", "ZONE_A", false)
	require.NoError(t, err)

	undone, err := sys.Rollback(1)
	require.NoError(t, err)
	require.Equal(t, model.OpCreate, undone[0].Type)

	_, err = sys.Request(req.ID)
	require.ErrorIs(t, err, ErrNotFound, "the request never existed before the create")
}

func TestRollbackFullRestoreAcrossOperations(t *testing.T) {
	sys := twoZoneSystem(t)
	fixedClock(sys)
	sys.RegisterVehicle("V1", "ZONE_A", "")
	sys.RegisterVehicle("V2", "ZONE_A", "")

	// Two independent requests, three mutations each on distinct slots.
	r1, res1, _ := sys.CreateRequest("V1", "ZONE_A", true)
	r2, res2, _ := sys.CreateRequest("V2", "ZONE_A", true) // spills to ZONE_B
	require.NotEqual(t, res1.SlotID, res2.SlotID)

	sys.Occupy(r1.ID)
	sys.Occupy(r2.ID)
	require.Equal(t, 6, sys.RollbackHistorySize())

	undone, err := sys.Rollback(6)
	require.NoError(t, err)
	require.Len(t, undone, 6)
	require.Equal(t, 0, sys.RollbackHistorySize())

	// Everything is back to the pre-create world.
	_, err = sys.Request(r1.ID)
	require.ErrorIs(t, err, ErrNotFound)
	_, err = sys.Request(r2.ID)
	require.ErrorIs(t, err, ErrNotFound)
	for _, slotID := range []string{res1.SlotID, res2.SlotID} {
		slot := sys.engine.FindSlotByID(slotID)
		require.True(t, slot.Available)
		require.Empty(t, slot.RequestID)
	}

	// Undone list is most recent first.
	require.Equal(t, model.OpOccupy, undone[0].Type)
	require.Equal(t, r2.ID, undone[0].RequestID)
	require.Equal(t, model.OpCreate, undone[5].Type)
	require.Equal(t, r1.ID, undone[5].RequestID)
}

func TestRollbackCountValidation(t *testing.T) {
	sys := twoZoneSystem(t)
	fixedClock(sys)
	sys.RegisterVehicle("V1", "ZONE_A", "")
	sys.CreateRequest("V1", "ZONE_A", true)

	_, err := sys.Rollback(-1)
	require.ErrorIs(t, err, ErrInvalidArgument)

	undone, err := sys.Rollback(0)
	require.NoError(t, err)
	require.Empty(t, undone)

	undone, err = sys.Rollback(99)
	require.NoError(t, err)
	require.Len(t, undone, 2, "clamped to the history size")
}

func TestRecentOperationsIsReadOnly(t *testing.T) {
	sys := twoZoneSystem(t)
	fixedClock(sys)
	sys.RegisterVehicle("V1", "ZONE_A", "")
	req, _, _ := sys.CreateRequest("V1", "ZONE_A", true)
	sys.Occupy(req.ID)

	ops := sys.RecentOperations(2)
	require.Len(t, ops, 2)
	require.Equal(t, model.OpOccupy, ops[0].Type, "most recent first")
	require.Equal(t, model.OpAllocate, ops[1].Type)
	require.Equal(t, 3, sys.RollbackHistorySize(), "peek must not pop")
}
