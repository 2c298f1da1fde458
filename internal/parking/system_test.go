package parking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iliyamo/smart-parking-system/internal/model"
)

func TestRegisterVehicleDuplicate(t *testing.T) {
	sys := NewSystem(DefaultCapacities())
	v, err := sys.RegisterVehicle("CAR-1", "ZONE_A", "")
	require.NoError(t, err)
	require.Equal(t, "Car", v.Type, "type defaults")

	_, err = sys.RegisterVehicle("CAR-1", "ZONE_B", "Truck")
	require.ErrorIs(t, err, ErrAlreadyExists)

	got, err := sys.Vehicle("CAR-1")
	require.NoError(t, err)
	require.Equal(t, "ZONE_A", got.PreferredZone, "duplicate registration never updates")
}

func TestCreateRequestValidation(t *testing.T) {
	sys := twoZoneSystem(t)
	sys.RegisterVehicle("V1", "ZONE_A", "")

	_, _, err := sys.CreateRequest("NOPE", "ZONE_A", true)
	require.ErrorIs(t, err, ErrNotFound)

	_, _, err = sys.CreateRequest("V1", "ZONE_Z", true)
	require.ErrorIs(t, err, ErrNotFound)

	// Failed validation must not consume a request id.
	req, _, err := sys.CreateRequest("V1", "ZONE_A", true)
	require.NoError(t, err)
	require.Equal(t, "REQ_0001", req.ID)
}

func TestPendingQueueIsFIFO(t *testing.T) {
	sys := twoZoneSystem(t)
	fixedClock(sys)
	sys.RegisterVehicle("V1", "ZONE_A", "")
	sys.RegisterVehicle("V2", "ZONE_A", "")

	r1, res, err := sys.CreateRequest("V1", "ZONE_A", false)
	require.NoError(t, err)
	require.Nil(t, res, "queued requests are not allocated yet")
	r2, _, err := sys.CreateRequest("V2", "ZONE_A", false)
	require.NoError(t, err)

	q := sys.Queue()
	require.Equal(t, 2, q.PendingCount)
	require.Equal(t, []string{r1.ID, r2.ID}, q.PendingRequests)

	first, err := sys.ProcessNextPending()
	require.NoError(t, err)
	require.Equal(t, r1.ID, first.RequestID, "oldest pending request first")
	require.Equal(t, "ZONE_A", first.ZoneID)

	second, err := sys.ProcessNextPending()
	require.NoError(t, err)
	require.Equal(t, r2.ID, second.RequestID)
	require.Equal(t, "ZONE_B", second.ZoneID, "second request spills over")

	_, err = sys.ProcessNextPending()
	require.ErrorIs(t, err, ErrNotFound)
}

func TestPendingQueueCapacity(t *testing.T) {
	caps := DefaultCapacities()
	caps.PendingQueue = 1
	sys := NewSystem(caps)
	sys.AddZone("ZONE_A", "A", nil)
	sys.AddArea("ZONE_A", "AREA_A1", "a", 5)
	fillSlots(t, sys, "AREA_A1", 5)
	sys.RegisterVehicle("V1", "ZONE_A", "")
	sys.RegisterVehicle("V2", "ZONE_A", "")

	_, _, err := sys.CreateRequest("V1", "ZONE_A", false)
	require.NoError(t, err)
	req, _, err := sys.CreateRequest("V2", "ZONE_A", false)
	require.ErrorIs(t, err, ErrCapacityExceeded)
	require.NotNil(t, req, "the request exists even though it could not be queued")
	require.Equal(t, 1, sys.PendingCount())
}

func TestCancelRequestedNeverTouchesSlots(t *testing.T) {
	sys := twoZoneSystem(t)
	fixedClock(sys)
	sys.RegisterVehicle("V1", "ZONE_A", "")

	req, _, err := sys.CreateRequest("V1", "ZONE_A", false)
	require.NoError(t, err)

	_, err = sys.Cancel(req.ID)
	require.NoError(t, err)
	require.Equal(t, model.StateCancelled, req.State)

	ops := sys.RecentOperations(1)
	require.Equal(t, model.OpCancel, ops[0].Type)
	require.Empty(t, ops[0].SlotID, "no slot was ever involved")
	require.Nil(t, ops[0].SlotBefore)

	slot := sys.engine.FindSlotByID("AREA_A1_SLOT_1")
	require.True(t, slot.Available)
}

func TestOccupyFromRequestedFailsCleanly(t *testing.T) {
	sys := twoZoneSystem(t)
	fixedClock(sys)
	sys.RegisterVehicle("V1", "ZONE_A", "")
	req, _, _ := sys.CreateRequest("V1", "ZONE_A", false)
	recorded := sys.RollbackHistorySize()

	_, err := sys.Occupy(req.ID)
	require.ErrorIs(t, err, ErrInvalidStateTransition)
	require.Equal(t, model.StateRequested, req.State, "request left unchanged")
	require.Equal(t, recorded, sys.RollbackHistorySize(), "no operation recorded")
}

func TestReleaseComputesDurationAndKeepsSlotConsumed(t *testing.T) {
	sys := twoZoneSystem(t)
	base := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	step := 0
	steps := []time.Duration{0, 0, 0, 10 * time.Second, 15 * time.Minute}
	sys.now = func() time.Time {
		d := steps[len(steps)-1]
		if step < len(steps) {
			d = steps[step]
			step++
		}
		return base.Add(d)
	}
	sys.RegisterVehicle("V1", "ZONE_A", "")

	req, alloc, err := sys.CreateRequest("V1", "ZONE_A", true)
	require.NoError(t, err)
	_, err = sys.Occupy(req.ID)
	require.NoError(t, err)

	res, err := sys.Release(req.ID)
	require.NoError(t, err)
	require.Equal(t, req.ReleasedAt.Sub(req.AllocatedAt).Seconds(), res.DurationSeconds)
	require.GreaterOrEqual(t, res.DurationSeconds, 0.0)

	slot := sys.engine.FindSlotByID(alloc.SlotID)
	require.False(t, slot.Available, "the slot stays consumed after release")

	// Releasing twice is invalid.
	_, err = sys.Release(req.ID)
	require.ErrorIs(t, err, ErrInvalidStateTransition)
}

func TestRecycleSlot(t *testing.T) {
	sys := twoZoneSystem(t)
	fixedClock(sys)
	sys.RegisterVehicle("V1", "ZONE_A", "")
	req, alloc, _ := sys.CreateRequest("V1", "ZONE_A", true)

	_, err := sys.RecycleSlot(alloc.SlotID)
	require.ErrorIs(t, err, ErrInvalidArgument, "slot held by an active request")

	sys.Occupy(req.ID)
	sys.Release(req.ID)

	slot, err := sys.RecycleSlot(alloc.SlotID)
	require.NoError(t, err)
	require.True(t, slot.Available)
	require.Empty(t, slot.RequestID)

	_, err = sys.RecycleSlot("AREA_Z_SLOT_9")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestTopologyValidation(t *testing.T) {
	sys := NewSystem(DefaultCapacities())
	_, err := sys.AddZone("", "noname", nil)
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = sys.AddZone("ZONE_A", "A", nil)
	require.NoError(t, err)
	_, err = sys.AddZone("ZONE_A", "again", nil)
	require.ErrorIs(t, err, ErrAlreadyExists)

	_, err = sys.AddArea("ZONE_Z", "AREA_1", "a", 2)
	require.ErrorIs(t, err, ErrNotFound)
	_, err = sys.AddArea("ZONE_A", "AREA_1", "a", 0)
	require.ErrorIs(t, err, ErrInvalidArgument)
	_, err = sys.AddArea("ZONE_A", "AREA_1", "a", 2)
	require.NoError(t, err)
	_, err = sys.AddArea("ZONE_A", "AREA_1", "again", 2)
	require.ErrorIs(t, err, ErrAlreadyExists)

	_, err = sys.AddSlot("AREA_9", "S1")
	require.ErrorIs(t, err, ErrNotFound)
	_, err = sys.AddSlot("AREA_1", "S1")
	require.NoError(t, err)
	_, err = sys.AddSlot("AREA_1", "S1")
	require.ErrorIs(t, err, ErrAlreadyExists)
	_, err = sys.AddSlot("AREA_1", "S2")
	require.NoError(t, err)
	_, err = sys.AddSlot("AREA_1", "S3")
	require.ErrorIs(t, err, ErrCapacityExceeded, "area capacity is fixed at creation")
}

func TestStatusAndAnalytics(t *testing.T) {
	sys := twoZoneSystem(t)
	fixedClock(sys)
	sys.RegisterVehicle("V1", "ZONE_A", "")
	sys.RegisterVehicle("V2", "ZONE_B", "")

	r1, _, _ := sys.CreateRequest("V1", "ZONE_A", true)
	sys.Occupy(r1.ID)
	sys.Release(r1.ID)

	r2, _, _ := sys.CreateRequest("V2", "ZONE_B", false)
	sys.Cancel(r2.ID)

	st := sys.Status()
	require.Equal(t, 2, st.TotalZones)
	require.Equal(t, 2, st.TotalVehicles)
	require.Equal(t, 2, st.TotalRequests)
	require.Equal(t, 0, st.ActiveRequests, "both requests are terminal")
	require.Len(t, st.Zones, 2)
	require.Equal(t, "ZONE_A", st.Zones[0].ZoneID, "zones reported in creation order")
	require.Equal(t, 100.0, st.Zones[0].UtilizationRate, "released slot still consumed")

	an := sys.GetAnalytics()
	require.Equal(t, 2, an.TotalTrips)
	require.Equal(t, 1, an.CompletedTrips)
	require.Equal(t, 1, an.CancelledTrips)
	require.Equal(t, 50.0, an.CompletionRate)
	require.Equal(t, 50.0, an.CancellationRate)
	require.Greater(t, an.AvgDurationSeconds, 0.0)
	require.Len(t, an.PeakZones, 2)
	require.Equal(t, "ZONE_A", an.PeakZones[0].ZoneID, "highest utilization first")
	require.Contains(t, an.ZoneUtilization, "ZONE_B")

	trips := sys.TripHistory()
	require.Len(t, trips, 2)
	require.Equal(t, model.StateReleased, trips[0].State)
	require.Equal(t, model.StateCancelled, trips[1].State)
}

func TestRequestStateWalkIsRecorded(t *testing.T) {
	sys := twoZoneSystem(t)
	fixedClock(sys)
	sys.RegisterVehicle("V1", "ZONE_A", "")

	req, _, _ := sys.CreateRequest("V1", "ZONE_A", true)
	sys.Occupy(req.ID)
	sys.Release(req.ID)

	require.Equal(t,
		[]model.RequestState{model.StateRequested, model.StateAllocated, model.StateOccupied, model.StateReleased},
		req.StateHistory)
}
