package model

// Slot represents a single allocatable parking unit. A slot belongs to
// exactly one area and is never destroyed after creation; only its
// availability and current occupant change.
//
// Fields:
//  ID        - unique slot identifier.
//  AreaID    - area this slot belongs to.
//  ZoneID    - zone of the owning area, denormalized for reporting.
//  Available - whether the slot can be handed to a new request.
//  VehicleID - vehicle currently holding the slot, empty when free.
//  RequestID - request currently holding the slot, empty when free.
type Slot struct {
	ID        string
	AreaID    string
	ZoneID    string
	Available bool
	VehicleID string
	RequestID string
}

// SlotState is a full before-image of a slot's mutable fields, captured for
// rollback. Restoring a SlotState is a pure overwrite, never a
// recomputation.
type SlotState struct {
	Available bool
	VehicleID string
	RequestID string
}

// NewSlot creates an available slot.
func NewSlot(id, areaID, zoneID string) *Slot {
	return &Slot{ID: id, AreaID: areaID, ZoneID: zoneID, Available: true}
}

// Allocate hands the slot to a vehicle/request pair. Returns false when the
// slot is already taken.
func (s *Slot) Allocate(vehicleID, requestID string) bool {
	if !s.Available {
		return false
	}
	s.Available = false
	s.VehicleID = vehicleID
	s.RequestID = requestID
	return true
}

// Release makes the slot available again and clears its occupant.
func (s *Slot) Release() {
	s.Available = true
	s.VehicleID = ""
	s.RequestID = ""
}

// Snapshot captures the mutable fields for rollback.
func (s *Slot) Snapshot() SlotState {
	return SlotState{Available: s.Available, VehicleID: s.VehicleID, RequestID: s.RequestID}
}

// Restore overwrites the mutable fields from a snapshot.
func (s *Slot) Restore(st SlotState) {
	s.Available = st.Available
	s.VehicleID = st.VehicleID
	s.RequestID = st.RequestID
}
