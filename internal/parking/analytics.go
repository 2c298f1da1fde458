package parking

import (
	"sort"
	"time"

	"github.com/iliyamo/smart-parking-system/internal/collection"
	"github.com/iliyamo/smart-parking-system/internal/model"
)

// TripRecord is the immutable summary of a completed (released or
// cancelled) request, kept in a plain slice for analytics simplicity.
type TripRecord struct {
	RequestID        string             `json:"request_id"`
	VehicleID        string             `json:"vehicle_id"`
	RequestedZone    string             `json:"requested_zone"`
	AllocatedZone    string             `json:"allocated_zone,omitempty"`
	SlotID           string             `json:"slot_id,omitempty"`
	State            model.RequestState `json:"state"`
	IsCrossZone      bool               `json:"is_cross_zone"`
	CrossZonePenalty int                `json:"cross_zone_penalty"`
	DurationSeconds  float64            `json:"duration_seconds"`
	CreatedAt        time.Time          `json:"created_at"`
	EndedAt          time.Time          `json:"ended_at"`
}

func tripFromRequest(req *model.Request) TripRecord {
	ended := req.ReleasedAt
	if req.State == model.StateCancelled {
		ended = req.CancelledAt
	}
	return TripRecord{
		RequestID:        req.ID,
		VehicleID:        req.VehicleID,
		RequestedZone:    req.RequestedZone,
		AllocatedZone:    req.AllocatedZone,
		SlotID:           req.AllocatedSlot,
		State:            req.State,
		IsCrossZone:      req.IsCrossZone(),
		CrossZonePenalty: req.CrossZonePenalty,
		DurationSeconds:  req.Duration().Seconds(),
		CreatedAt:        req.CreatedAt,
		EndedAt:          ended,
	}
}

// ZoneStatus summarizes one zone for status and analytics responses.
type ZoneStatus struct {
	ZoneID           string   `json:"zone_id"`
	ZoneName         string   `json:"zone_name"`
	TotalSlots       int      `json:"total_slots"`
	AvailableSlots   int      `json:"available_slots"`
	OccupiedSlots    int      `json:"occupied_slots"`
	UtilizationRate  float64  `json:"utilization_rate"`
	AdjacentZones    []string `json:"adjacent_zones"`
	CrossZonePenalty int      `json:"cross_zone_penalty"`
	AreaCount        int      `json:"parking_areas_count"`
}

// SystemStatus is the raw counter view of the whole system.
type SystemStatus struct {
	TotalZones          int          `json:"total_zones"`
	TotalVehicles       int          `json:"total_vehicles"`
	TotalRequests       int          `json:"total_requests"`
	ActiveRequests      int          `json:"active_requests"`
	PendingQueueSize    int          `json:"pending_queue_size"`
	RollbackHistorySize int          `json:"rollback_history_size"`
	Zones               []ZoneStatus `json:"zones"`
}

// QueueStatus reports the pending queue contents front-to-rear.
type QueueStatus struct {
	PendingCount    int      `json:"pending_count"`
	PendingRequests []string `json:"pending_requests"`
}

// Analytics aggregates trip history and zone utilization.
type Analytics struct {
	TotalTrips         int                   `json:"total_trips"`
	CompletedTrips     int                   `json:"completed_trips"`
	CancelledTrips     int                   `json:"cancelled_trips"`
	ActiveRequests     int                   `json:"active_requests"`
	AvgDurationSeconds float64               `json:"average_parking_duration_seconds"`
	AvgDurationMinutes float64               `json:"average_parking_duration_minutes"`
	CompletionRate     float64               `json:"completion_rate"`
	CancellationRate   float64               `json:"cancellation_rate"`
	ZoneUtilization    map[string]ZoneStatus `json:"zone_utilization"`
	PeakZones          []ZoneStatus          `json:"peak_usage_zones"`
}

func (s *System) zoneStatus(z *model.Zone) ZoneStatus {
	return ZoneStatus{
		ZoneID:           z.ID,
		ZoneName:         z.Name,
		TotalSlots:       z.TotalSlots(),
		AvailableSlots:   len(z.AvailableSlots()),
		OccupiedSlots:    z.OccupiedSlots(),
		UtilizationRate:  z.UtilizationRate(),
		AdjacentZones:    z.AdjacentZones(),
		CrossZonePenalty: z.CrossZonePenalty,
		AreaCount:        z.Areas.Len(),
	}
}

// activeRequestCount counts requests in a non-terminal state.
func (s *System) activeRequestCount() int {
	n := 0
	for _, req := range s.requests.Values() {
		if !req.Completed() {
			n++
		}
	}
	return n
}

// Status returns the overall system status.
func (s *System) Status() SystemStatus {
	zones := s.Zones()
	statuses := make([]ZoneStatus, 0, len(zones))
	for _, z := range zones {
		statuses = append(statuses, s.zoneStatus(z))
	}
	return SystemStatus{
		TotalZones:          s.zones.Len(),
		TotalVehicles:       s.vehicles.Len(),
		TotalRequests:       s.requests.Len(),
		ActiveRequests:      s.activeRequestCount(),
		PendingQueueSize:    s.pending.Len(),
		RollbackHistorySize: s.rollback.HistorySize(),
		Zones:               statuses,
	}
}

// Queue returns the pending queue status.
func (s *System) Queue() QueueStatus {
	return QueueStatus{PendingCount: s.pending.Len(), PendingRequests: s.pending.Items()}
}

// GetAnalytics aggregates the trip history and current zone utilization.
func (s *System) GetAnalytics() Analytics {
	completed := 0
	cancelled := 0
	var durationSum float64
	durationCount := 0
	for _, trip := range s.tripHistory {
		switch trip.State {
		case model.StateReleased:
			completed++
			if trip.DurationSeconds > 0 {
				durationSum += trip.DurationSeconds
				durationCount++
			}
		case model.StateCancelled:
			cancelled++
		}
	}

	avg := 0.0
	if durationCount > 0 {
		avg = durationSum / float64(durationCount)
	}

	// Per-zone stats are built in the same hash map the registries use and
	// converted to a plain map only for the JSON response.
	stats := collection.NewHashMap[ZoneStatus](s.zones.Len() + 1)
	for _, z := range s.Zones() {
		stats.Insert(z.ID, s.zoneStatus(z))
	}

	peak := stats.Values()
	sort.Slice(peak, func(i, j int) bool {
		if peak[i].UtilizationRate != peak[j].UtilizationRate {
			return peak[i].UtilizationRate > peak[j].UtilizationRate
		}
		return peak[i].ZoneID < peak[j].ZoneID
	})
	if len(peak) > 3 {
		peak = peak[:3]
	}

	utilization := make(map[string]ZoneStatus, stats.Len())
	for _, e := range stats.Items() {
		utilization[e.Key] = e.Value
	}

	total := len(s.tripHistory)
	completionRate := 0.0
	cancellationRate := 0.0
	if total > 0 {
		completionRate = float64(completed) / float64(total) * 100
		cancellationRate = float64(cancelled) / float64(total) * 100
	}

	return Analytics{
		TotalTrips:         total,
		CompletedTrips:     completed,
		CancelledTrips:     cancelled,
		ActiveRequests:     s.activeRequestCount(),
		AvgDurationSeconds: avg,
		AvgDurationMinutes: avg / 60,
		CompletionRate:     completionRate,
		CancellationRate:   cancellationRate,
		ZoneUtilization:    utilization,
		PeakZones:          peak,
	}
}

// TripHistory returns the completed trip records, oldest first.
func (s *System) TripHistory() []TripRecord {
	out := make([]TripRecord, len(s.tripHistory))
	copy(out, s.tripHistory)
	return out
}
