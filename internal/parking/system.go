package parking

import (
	"fmt"
	"log"
	"time"

	"github.com/iliyamo/smart-parking-system/internal/collection"
	"github.com/iliyamo/smart-parking-system/internal/model"
)

// Capacities bounds the registries and the bounded collections of a System.
type Capacities struct {
	ZoneBuckets     int // hash map buckets for the zone registry
	VehicleBuckets  int // hash map buckets for the vehicle registry
	RequestBuckets  int // hash map buckets for the request registry
	PendingQueue    int // pending request queue capacity
	RollbackHistory int // rollback stack capacity
}

// DefaultCapacities mirrors the sizing the system has always shipped with.
func DefaultCapacities() Capacities {
	return Capacities{
		ZoneBuckets:     100,
		VehicleBuckets:  500,
		RequestBuckets:  1000,
		PendingQueue:    100,
		RollbackHistory: 100,
	}
}

// System is the facade every external layer talks to. It owns the zone,
// vehicle and request registries, the pending queue, the allocation engine
// and the rollback manager, and orchestrates them; it carries no allocation
// logic of its own.
//
// A System is constructed once and passed around explicitly; there is no
// package-level instance. It is not internally thread-safe: the transport
// layer must serialize mutating calls.
type System struct {
	zones     *collection.HashMap[*model.Zone]
	zoneOrder *collection.List[string]
	areas     *collection.HashMap[*model.Area]
	vehicles  *collection.HashMap[*model.Vehicle]
	requests  *collection.HashMap[*model.Request]
	pending   *collection.Queue[string]

	engine   *AllocationEngine
	rollback *RollbackManager

	requestCounter int
	tripHistory    []TripRecord

	// now is the clock used for every timestamp; tests substitute it.
	now func() time.Time
}

// AllocationResult reports a successful slot assignment.
type AllocationResult struct {
	RequestID        string    `json:"request_id"`
	SlotID           string    `json:"slot_id"`
	ZoneID           string    `json:"zone_id"`
	IsCrossZone      bool      `json:"is_cross_zone"`
	CrossZonePenalty int       `json:"cross_zone_penalty"`
	AllocatedAt      time.Time `json:"allocated_at"`
}

// ReleaseResult reports a completed stay.
type ReleaseResult struct {
	RequestID       string    `json:"request_id"`
	SlotID          string    `json:"slot_id"`
	ReleasedAt      time.Time `json:"released_at"`
	DurationSeconds float64   `json:"duration_seconds"`
}

// NewSystem creates an empty System with the given bounds.
func NewSystem(c Capacities) *System {
	s := &System{
		zones:     collection.NewHashMap[*model.Zone](c.ZoneBuckets),
		zoneOrder: collection.NewList[string](),
		areas:     collection.NewHashMap[*model.Area](c.ZoneBuckets),
		vehicles:  collection.NewHashMap[*model.Vehicle](c.VehicleBuckets),
		requests:  collection.NewHashMap[*model.Request](c.RequestBuckets),
		pending:   collection.NewQueue[string](c.PendingQueue),
		rollback:  NewRollbackManager(c.RollbackHistory),
		now:       time.Now,
	}
	s.engine = NewAllocationEngine(s.zones, s.zoneOrder)
	return s
}

// ----- topology -----

// AddZone creates a zone and records its adjacency edges. For every declared
// neighbor that already exists the reverse edge is mirrored as well, so the
// graph is symmetric without relying on implicit bidirectionality; a
// neighbor declared before it exists gets its reverse edge when it is added
// later and declares this zone.
func (s *System) AddZone(id, name string, neighborIDs []string) (*model.Zone, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: zone id is required", ErrInvalidArgument)
	}
	if s.zones.Contains(id) {
		return nil, fmt.Errorf("%w: zone %s", ErrAlreadyExists, id)
	}

	zone := model.NewZone(id, name)
	s.zones.Insert(id, zone)
	s.zoneOrder.Append(id)

	for _, n := range neighborIDs {
		s.linkZones(zone, n)
	}
	return zone, nil
}

// linkZones records the edge zone->neighborID and mirrors the reverse edge
// when the neighbor exists. This is the single place edges are created.
func (s *System) linkZones(zone *model.Zone, neighborID string) {
	if neighborID == "" || neighborID == zone.ID {
		return
	}
	zone.Adjacent.AddEdge(neighborID)
	if neighbor, ok := s.zones.Get(neighborID); ok {
		neighbor.Adjacent.AddEdge(zone.ID)
	}
}

// AddArea creates an empty area with a fixed slot capacity inside a zone.
func (s *System) AddArea(zoneID, areaID, name string, capacity int) (*model.Area, error) {
	if areaID == "" {
		return nil, fmt.Errorf("%w: area id is required", ErrInvalidArgument)
	}
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: area capacity must be positive", ErrInvalidArgument)
	}
	zone, ok := s.zones.Get(zoneID)
	if !ok {
		return nil, fmt.Errorf("%w: zone %s", ErrNotFound, zoneID)
	}
	if s.areas.Contains(areaID) {
		return nil, fmt.Errorf("%w: area %s", ErrAlreadyExists, areaID)
	}

	area := model.NewArea(areaID, zoneID, name, capacity)
	zone.AddArea(area)
	s.areas.Insert(areaID, area)
	return area, nil
}

// AddSlot appends a slot to an area. Fails with ErrCapacityExceeded once the
// area's fixed array is full.
func (s *System) AddSlot(areaID, slotID string) (*model.Slot, error) {
	if slotID == "" {
		return nil, fmt.Errorf("%w: slot id is required", ErrInvalidArgument)
	}
	area, ok := s.areas.Get(areaID)
	if !ok {
		return nil, fmt.Errorf("%w: area %s", ErrNotFound, areaID)
	}
	if area.SlotByID(slotID) != nil {
		return nil, fmt.Errorf("%w: slot %s", ErrAlreadyExists, slotID)
	}

	slot := model.NewSlot(slotID, areaID, area.ZoneID)
	if err := area.AddSlot(slot); err != nil {
		return nil, err
	}
	return slot, nil
}

// Zone returns a zone by id.
func (s *System) Zone(id string) (*model.Zone, error) {
	zone, ok := s.zones.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: zone %s", ErrNotFound, id)
	}
	return zone, nil
}

// Zones returns every zone in creation order.
func (s *System) Zones() []*model.Zone {
	out := make([]*model.Zone, 0, s.zoneOrder.Len())
	for _, id := range s.zoneOrder.Items() {
		if z, ok := s.zones.Get(id); ok {
			out = append(out, z)
		}
	}
	return out
}

// ----- vehicles -----

// RegisterVehicle registers a vehicle once. A duplicate id is rejected, not
// updated.
func (s *System) RegisterVehicle(id, preferredZone, vehicleType string) (*model.Vehicle, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: vehicle id is required", ErrInvalidArgument)
	}
	if s.vehicles.Contains(id) {
		return nil, fmt.Errorf("%w: vehicle %s", ErrAlreadyExists, id)
	}

	v := model.NewVehicle(id, preferredZone, vehicleType)
	s.vehicles.Insert(id, v)
	return v, nil
}

// Vehicle returns a vehicle by id.
func (s *System) Vehicle(id string) (*model.Vehicle, error) {
	v, ok := s.vehicles.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: vehicle %s", ErrNotFound, id)
	}
	return v, nil
}

// ----- requests -----

// CreateRequest creates a REQUESTED request for a known vehicle and zone and
// records it for rollback. With autoAllocate the engine runs immediately and
// the allocation result is returned; otherwise the request id is enqueued
// for first-come-first-served processing.
//
// The returned request is non-nil whenever creation itself succeeded, even
// if the immediate allocation failed with ErrNoCapacity or the pending
// queue was full.
func (s *System) CreateRequest(vehicleID, zoneID string, autoAllocate bool) (*model.Request, *AllocationResult, error) {
	if _, ok := s.vehicles.Get(vehicleID); !ok {
		return nil, nil, fmt.Errorf("%w: vehicle %s", ErrNotFound, vehicleID)
	}
	if !s.zones.Contains(zoneID) {
		return nil, nil, fmt.Errorf("%w: zone %s", ErrNotFound, zoneID)
	}

	s.requestCounter++
	id := fmt.Sprintf("REQ_%04d", s.requestCounter)
	req := model.NewRequest(id, vehicleID, zoneID, s.now())
	s.requests.Insert(id, req)

	// The request did not exist before this call, so the before-image is
	// nil and the inverse removes it again.
	s.record(&model.Operation{
		Type:       model.OpCreate,
		RequestID:  id,
		VehicleID:  vehicleID,
		ZoneID:     zoneID,
		RecordedAt: s.now(),
	})

	if autoAllocate {
		res, err := s.Allocate(id)
		if err != nil {
			return req, nil, err
		}
		return req, res, nil
	}

	if err := s.pending.Enqueue(id); err != nil {
		return req, nil, err
	}
	return req, nil, nil
}

// Request returns a request by id.
func (s *System) Request(id string) (*model.Request, error) {
	req, ok := s.requests.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: request %s", ErrNotFound, id)
	}
	return req, nil
}

// Requests returns every request, including completed ones.
func (s *System) Requests() []*model.Request {
	return s.requests.Values()
}

// Allocate resolves a REQUESTED request to a concrete slot using the
// engine's same-zone / adjacent-zone / fallback search. On success the slot
// is consumed, the request moves to ALLOCATED and the operation is recorded
// with before-images; on ErrNoCapacity nothing is mutated or recorded.
func (s *System) Allocate(requestID string) (*AllocationResult, error) {
	req, ok := s.requests.Get(requestID)
	if !ok {
		return nil, fmt.Errorf("%w: request %s", ErrNotFound, requestID)
	}
	if req.State != model.StateRequested {
		return nil, fmt.Errorf("%w: cannot allocate from state %s", ErrInvalidStateTransition, req.State)
	}

	slot, zoneID, crossZone := s.engine.FindSlot(req.RequestedZone)
	if slot == nil {
		return nil, fmt.Errorf("%w: no slots available for zone %s", ErrNoCapacity, req.RequestedZone)
	}

	penalty := model.DefaultCrossZonePenalty
	if requested, ok := s.zones.Get(req.RequestedZone); ok {
		penalty = requested.CrossZonePenalty
	}

	slotBefore := slot.Snapshot()
	reqBefore := req.Snapshot()

	slot.Allocate(req.VehicleID, req.ID)
	if err := req.Allocate(slot.ID, zoneID, penalty, s.now()); err != nil {
		// State was checked above; restore the slot if the table ever
		// disagrees so no slot leaks.
		slot.Restore(slotBefore)
		return nil, err
	}

	s.record(&model.Operation{
		Type:          model.OpAllocate,
		RequestID:     req.ID,
		VehicleID:     req.VehicleID,
		SlotID:        slot.ID,
		ZoneID:        zoneID,
		RequestBefore: &reqBefore,
		SlotBefore:    &slotBefore,
		RecordedAt:    s.now(),
	})

	return &AllocationResult{
		RequestID:        req.ID,
		SlotID:           slot.ID,
		ZoneID:           zoneID,
		IsCrossZone:      crossZone,
		CrossZonePenalty: req.CrossZonePenalty,
		AllocatedAt:      req.AllocatedAt,
	}, nil
}

// Occupy marks an ALLOCATED request's vehicle as arrived.
func (s *System) Occupy(requestID string) (*model.Request, error) {
	req, ok := s.requests.Get(requestID)
	if !ok {
		return nil, fmt.Errorf("%w: request %s", ErrNotFound, requestID)
	}

	reqBefore := req.Snapshot()
	var slotBefore *model.SlotState
	slot := s.engine.FindSlotByID(req.AllocatedSlot)
	if slot != nil {
		st := slot.Snapshot()
		slotBefore = &st
	}

	if err := req.Occupy(s.now()); err != nil {
		return nil, fmt.Errorf("%w: cannot occupy from state %s", err, req.State)
	}

	s.record(&model.Operation{
		Type:          model.OpOccupy,
		RequestID:     req.ID,
		VehicleID:     req.VehicleID,
		SlotID:        req.AllocatedSlot,
		ZoneID:        req.AllocatedZone,
		RequestBefore: &reqBefore,
		SlotBefore:    slotBefore,
		RecordedAt:    s.now(),
	})
	return req, nil
}

// Release completes an OCCUPIED request. The slot is NOT freed: it stays
// consumed until an admin recycles it via RecycleSlot. The completed trip
// is appended to the in-memory history for analytics.
func (s *System) Release(requestID string) (*ReleaseResult, error) {
	req, ok := s.requests.Get(requestID)
	if !ok {
		return nil, fmt.Errorf("%w: request %s", ErrNotFound, requestID)
	}

	reqBefore := req.Snapshot()
	var slotBefore *model.SlotState
	slot := s.engine.FindSlotByID(req.AllocatedSlot)
	if slot != nil {
		st := slot.Snapshot()
		slotBefore = &st
	}

	if err := req.Release(s.now()); err != nil {
		return nil, fmt.Errorf("%w: cannot release from state %s", err, req.State)
	}

	s.record(&model.Operation{
		Type:          model.OpRelease,
		RequestID:     req.ID,
		VehicleID:     req.VehicleID,
		SlotID:        req.AllocatedSlot,
		ZoneID:        req.AllocatedZone,
		RequestBefore: &reqBefore,
		SlotBefore:    slotBefore,
		RecordedAt:    s.now(),
	})
	s.tripHistory = append(s.tripHistory, tripFromRequest(req))

	return &ReleaseResult{
		RequestID:       req.ID,
		SlotID:          req.AllocatedSlot,
		ReleasedAt:      req.ReleasedAt,
		DurationSeconds: req.Duration().Seconds(),
	}, nil
}

// Cancel aborts a REQUESTED or ALLOCATED request. A held slot is made
// available again.
func (s *System) Cancel(requestID string) (*model.Request, error) {
	req, ok := s.requests.Get(requestID)
	if !ok {
		return nil, fmt.Errorf("%w: request %s", ErrNotFound, requestID)
	}

	reqBefore := req.Snapshot()
	var slot *model.Slot
	var slotBefore *model.SlotState
	if req.State == model.StateAllocated && req.AllocatedSlot != "" {
		if slot = s.engine.FindSlotByID(req.AllocatedSlot); slot != nil {
			st := slot.Snapshot()
			slotBefore = &st
		}
	}

	if err := req.Cancel(s.now()); err != nil {
		return nil, fmt.Errorf("%w: cannot cancel from state %s", err, req.State)
	}
	if slot != nil {
		slot.Release()
	}

	s.record(&model.Operation{
		Type:          model.OpCancel,
		RequestID:     req.ID,
		VehicleID:     req.VehicleID,
		SlotID:        req.AllocatedSlot,
		ZoneID:        req.AllocatedZone,
		RequestBefore: &reqBefore,
		SlotBefore:    slotBefore,
		RecordedAt:    s.now(),
	})
	s.tripHistory = append(s.tripHistory, tripFromRequest(req))
	return req, nil
}

// RecycleSlot is the explicit admin action that returns a consumed slot to
// the pool after its request was released. A slot still held by an active
// request cannot be recycled.
func (s *System) RecycleSlot(slotID string) (*model.Slot, error) {
	slot := s.engine.FindSlotByID(slotID)
	if slot == nil {
		return nil, fmt.Errorf("%w: slot %s", ErrNotFound, slotID)
	}
	if slot.Available {
		return slot, nil
	}
	if req, ok := s.requests.Get(slot.RequestID); ok && !req.Completed() {
		return nil, fmt.Errorf("%w: slot %s is still held by request %s", ErrInvalidArgument, slotID, req.ID)
	}
	slot.Release()
	return slot, nil
}

// ----- pending queue -----

// ProcessNextPending dequeues the oldest pending request id and allocates
// it, enforcing first-come-first-served fairness among queued requests.
func (s *System) ProcessNextPending() (*AllocationResult, error) {
	id, ok := s.pending.Dequeue()
	if !ok {
		return nil, fmt.Errorf("%w: no pending requests", ErrNotFound)
	}
	return s.Allocate(id)
}

// PendingRequests returns the queued request ids front-to-rear.
func (s *System) PendingRequests() []string {
	return s.pending.Items()
}

// PendingCount reports the number of queued requests.
func (s *System) PendingCount() int {
	return s.pending.Len()
}

// ----- rollback -----

// Rollback undoes the last k mutating operations, most recent first.
func (s *System) Rollback(k int) ([]UndoneOperation, error) {
	return s.rollback.Rollback(k, s)
}

// RecentOperations returns the last n recorded operations without undoing
// them.
func (s *System) RecentOperations(n int) []*model.Operation {
	return s.rollback.RecentOperations(n)
}

// RollbackHistorySize reports the number of operations available to undo.
func (s *System) RollbackHistorySize() int {
	return s.rollback.HistorySize()
}

// record pushes an operation onto the rollback history. The mutation it
// describes has already happened, so a full history cannot fail the call;
// the dropped record is logged instead.
func (s *System) record(op *model.Operation) {
	if err := s.rollback.Record(op); err != nil {
		log.Printf("rollback history full, %s of %s not recorded: %v", op.Type, op.RequestID, err)
	}
}
