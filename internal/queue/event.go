// Package queue defines message payloads exchanged over the message broker.
package queue

// ParkingReleasedEvent is published when a vehicle releases its slot.  It
// contains enough information for downstream consumers (billing, gate
// displays, analytics) to act without querying the allocation system.
type ParkingReleasedEvent struct {
	RequestID        string  `json:"request_id"`
	VehicleID        string  `json:"vehicle_id"`
	SlotID           string  `json:"slot_id"`
	ZoneID           string  `json:"zone_id"`
	RequestedZone    string  `json:"requested_zone"`
	IsCrossZone      bool    `json:"is_cross_zone"`
	CrossZonePenalty int     `json:"cross_zone_penalty"`
	DurationSeconds  float64 `json:"duration_seconds"`
	AllocatedAt      string  `json:"allocated_at"`
	ReleasedAt       string  `json:"released_at"`
}
