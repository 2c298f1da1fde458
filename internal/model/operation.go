package model

import "time"

// OperationType names a mutating facade call recorded for rollback.
type OperationType string

const (
	OpCreate   OperationType = "create"
	OpAllocate OperationType = "allocate"
	OpOccupy   OperationType = "occupy"
	OpRelease  OperationType = "release"
	OpCancel   OperationType = "cancel"
)

// Operation is one rollback record. It carries full before-images of the
// affected request and, when a slot was touched, of that slot, so inverting
// the operation is a pure restore. An Operation is pushed on every
// successful mutating call, popped and consumed exactly once by rollback,
// and never mutated in place.
//
// RequestBefore is nil for OpCreate: the request did not exist before the
// call, so its inverse removes the request from the registry. SlotBefore is
// nil when the operation touched no slot.
type Operation struct {
	Type      OperationType
	RequestID string
	VehicleID string
	SlotID    string
	ZoneID    string

	RequestBefore *RequestSnapshot
	SlotBefore    *SlotState

	RecordedAt time.Time
}
