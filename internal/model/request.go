package model

import (
	"errors"
	"time"
)

// RequestState is a lifecycle state of a parking request.
type RequestState string

// Lifecycle states. REQUESTED is the initial state; RELEASED and CANCELLED
// are terminal. See validTransitions for the full walk.
const (
	StateRequested RequestState = "REQUESTED"
	StateAllocated RequestState = "ALLOCATED"
	StateOccupied  RequestState = "OCCUPIED"
	StateReleased  RequestState = "RELEASED"
	StateCancelled RequestState = "CANCELLED"
)

// ErrInvalidTransition is returned when an event is not valid for the
// request's current state. The request is left unchanged.
var ErrInvalidTransition = errors.New("invalid state transition")

// validTransitions is the exhaustive transition table:
//
//	REQUESTED -> ALLOCATED | CANCELLED
//	ALLOCATED -> OCCUPIED  | CANCELLED
//	OCCUPIED  -> RELEASED
//	RELEASED  -> (terminal)
//	CANCELLED -> (terminal)
var validTransitions = map[RequestState][]RequestState{
	StateRequested: {StateAllocated, StateCancelled},
	StateAllocated: {StateOccupied, StateCancelled},
	StateOccupied:  {StateReleased},
	StateReleased:  {},
	StateCancelled: {},
}

// Request tracks one parking request through its lifecycle. Once a request
// reaches a terminal state it is never mutated again, but it stays in the
// registry for analytics.
type Request struct {
	ID            string
	VehicleID     string
	RequestedZone string

	State        RequestState
	StateHistory []RequestState

	// Allocation details, set when the request reaches ALLOCATED.
	AllocatedZone    string
	AllocatedSlot    string
	CrossZonePenalty int

	CreatedAt   time.Time
	AllocatedAt time.Time
	OccupiedAt  time.Time
	ReleasedAt  time.Time
	CancelledAt time.Time
}

// RequestSnapshot is a full before-image of a request's mutable fields,
// captured before every mutation so rollback is a pure restore.
type RequestSnapshot struct {
	State            RequestState
	StateHistory     []RequestState
	AllocatedZone    string
	AllocatedSlot    string
	CrossZonePenalty int
	AllocatedAt      time.Time
	OccupiedAt       time.Time
	ReleasedAt       time.Time
	CancelledAt      time.Time
}

// NewRequest creates a request in the REQUESTED state.
func NewRequest(id, vehicleID, requestedZone string, now time.Time) *Request {
	return &Request{
		ID:            id,
		VehicleID:     vehicleID,
		RequestedZone: requestedZone,
		State:         StateRequested,
		StateHistory:  []RequestState{StateRequested},
		CreatedAt:     now,
	}
}

// CanTransition reports whether moving to next is allowed from the current
// state.
func (r *Request) CanTransition(next RequestState) bool {
	for _, s := range validTransitions[r.State] {
		if s == next {
			return true
		}
	}
	return false
}

// transition moves to next or fails with ErrInvalidTransition, leaving the
// request untouched.
func (r *Request) transition(next RequestState) error {
	if !r.CanTransition(next) {
		return ErrInvalidTransition
	}
	r.State = next
	r.StateHistory = append(r.StateHistory, next)
	return nil
}

// Allocate records the slot assignment. The penalty is applied only when the
// allocated zone differs from the requested one.
func (r *Request) Allocate(slotID, zoneID string, penalty int, now time.Time) error {
	if err := r.transition(StateAllocated); err != nil {
		return err
	}
	r.AllocatedSlot = slotID
	r.AllocatedZone = zoneID
	r.AllocatedAt = now
	if zoneID != r.RequestedZone {
		r.CrossZonePenalty = penalty
	}
	return nil
}

// Occupy marks the vehicle as arrived.
func (r *Request) Occupy(now time.Time) error {
	if err := r.transition(StateOccupied); err != nil {
		return err
	}
	r.OccupiedAt = now
	return nil
}

// Release marks the vehicle as departed. The slot is deliberately not freed
// here; it stays consumed until an admin recycles it.
func (r *Request) Release(now time.Time) error {
	if err := r.transition(StateReleased); err != nil {
		return err
	}
	r.ReleasedAt = now
	return nil
}

// Cancel aborts the request. Freeing a held slot is the registry's job.
func (r *Request) Cancel(now time.Time) error {
	if err := r.transition(StateCancelled); err != nil {
		return err
	}
	r.CancelledAt = now
	return nil
}

// IsCrossZone reports whether the request was satisfied outside its
// requested zone.
func (r *Request) IsCrossZone() bool {
	return r.AllocatedZone != "" && r.AllocatedZone != r.RequestedZone
}

// Completed reports whether the request is in a terminal state.
func (r *Request) Completed() bool {
	return r.State == StateReleased || r.State == StateCancelled
}

// Duration reports released_at - allocated_at. It is zero until the request
// is released and never negative.
func (r *Request) Duration() time.Duration {
	if r.ReleasedAt.IsZero() || r.AllocatedAt.IsZero() {
		return 0
	}
	d := r.ReleasedAt.Sub(r.AllocatedAt)
	if d < 0 {
		return 0
	}
	return d
}

// Snapshot captures the mutable fields for rollback.
func (r *Request) Snapshot() RequestSnapshot {
	hist := make([]RequestState, len(r.StateHistory))
	copy(hist, r.StateHistory)
	return RequestSnapshot{
		State:            r.State,
		StateHistory:     hist,
		AllocatedZone:    r.AllocatedZone,
		AllocatedSlot:    r.AllocatedSlot,
		CrossZonePenalty: r.CrossZonePenalty,
		AllocatedAt:      r.AllocatedAt,
		OccupiedAt:       r.OccupiedAt,
		ReleasedAt:       r.ReleasedAt,
		CancelledAt:      r.CancelledAt,
	}
}

// Restore overwrites the mutable fields from a snapshot.
func (r *Request) Restore(snap RequestSnapshot) {
	r.State = snap.State
	r.StateHistory = make([]RequestState, len(snap.StateHistory))
	copy(r.StateHistory, snap.StateHistory)
	r.AllocatedZone = snap.AllocatedZone
	r.AllocatedSlot = snap.AllocatedSlot
	r.CrossZonePenalty = snap.CrossZonePenalty
	r.AllocatedAt = snap.AllocatedAt
	r.OccupiedAt = snap.OccupiedAt
	r.ReleasedAt = snap.ReleasedAt
	r.CancelledAt = snap.CancelledAt
}
