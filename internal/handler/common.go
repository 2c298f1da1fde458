package handler // handler defines http handlers

import (
	"errors"   // errors provides Is() for sentinel matching
	"net/http" // net/http provides status codes
	"sync"     // sync guards the in-memory system
	"time"     // time formats response timestamps

	"github.com/labstack/echo/v4" // echo defines request context types

	"github.com/iliyamo/smart-parking-system/internal/model"
	"github.com/iliyamo/smart-parking-system/internal/parking"
	"github.com/iliyamo/smart-parking-system/internal/repository"
)

// ParkingHandler bundles the in-memory allocation system with its optional
// trip archive.  The system itself is not thread-safe, so every handler
// takes mu: RLock for reads, Lock for anything that mutates slots, requests
// or the rollback history.
type ParkingHandler struct {
	mu    sync.RWMutex
	Sys   *parking.System
	Trips *repository.TripRepo // nil when no database is configured
	Seed  func() *parking.System
}

// NewParkingHandler constructs a ParkingHandler and panics if the system is
// missing.  The seed function rebuilds a fresh system for the admin reset
// endpoint; trips may be nil.
func NewParkingHandler(sys *parking.System, trips *repository.TripRepo, seed func() *parking.System) *ParkingHandler {
	if sys == nil {
		panic("nil system passed to NewParkingHandler")
	}
	return &ParkingHandler{Sys: sys, Trips: trips, Seed: seed}
}

// writeError maps the system's sentinel errors onto HTTP status codes.
// Unknown errors become 500 without leaking internals.
func writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, parking.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, parking.ErrAlreadyExists):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, parking.ErrNoCapacity),
		errors.Is(err, parking.ErrCapacityExceeded),
		errors.Is(err, parking.ErrInvalidStateTransition):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, parking.ErrInvalidArgument):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}

// ----- shared response shapes -----

// requestResp is the JSON view of a request.  Zero timestamps are omitted so
// a REQUESTED request does not report allocated_at.
type requestResp struct {
	ID               string               `json:"request_id"`
	VehicleID        string               `json:"vehicle_id"`
	RequestedZone    string               `json:"requested_zone"`
	State            model.RequestState   `json:"state"`
	StateHistory     []model.RequestState `json:"state_history"`
	AllocatedZone    string               `json:"allocated_zone,omitempty"`
	AllocatedSlot    string               `json:"allocated_slot,omitempty"`
	IsCrossZone      bool                 `json:"is_cross_zone"`
	CrossZonePenalty int                  `json:"cross_zone_penalty"`
	CreatedAt        time.Time            `json:"created_at"`
	AllocatedAt      *time.Time           `json:"allocated_at,omitempty"`
	OccupiedAt       *time.Time           `json:"occupied_at,omitempty"`
	ReleasedAt       *time.Time           `json:"released_at,omitempty"`
	CancelledAt      *time.Time           `json:"cancelled_at,omitempty"`
}

// toRequestResp snapshots a request into its JSON view.  Handlers call it
// while holding the lock; the view must not alias the live request, so the
// state history is copied.
func toRequestResp(r *model.Request) requestResp {
	hist := make([]model.RequestState, len(r.StateHistory))
	copy(hist, r.StateHistory)
	resp := requestResp{
		ID:               r.ID,
		VehicleID:        r.VehicleID,
		RequestedZone:    r.RequestedZone,
		State:            r.State,
		StateHistory:     hist,
		AllocatedZone:    r.AllocatedZone,
		AllocatedSlot:    r.AllocatedSlot,
		IsCrossZone:      r.IsCrossZone(),
		CrossZonePenalty: r.CrossZonePenalty,
		CreatedAt:        r.CreatedAt,
	}
	resp.AllocatedAt = timePtr(r.AllocatedAt)
	resp.OccupiedAt = timePtr(r.OccupiedAt)
	resp.ReleasedAt = timePtr(r.ReleasedAt)
	resp.CancelledAt = timePtr(r.CancelledAt)
	return resp
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// vehicleResp is the JSON view of a registered vehicle.
type vehicleResp struct {
	ID            string `json:"vehicle_id"`
	PreferredZone string `json:"preferred_zone"`
	Type          string `json:"vehicle_type"`
}

func toVehicleResp(v *model.Vehicle) vehicleResp {
	return vehicleResp{ID: v.ID, PreferredZone: v.PreferredZone, Type: v.Type}
}

// slotResp is the JSON view of a slot.
type slotResp struct {
	ID        string `json:"slot_id"`
	AreaID    string `json:"area_id"`
	ZoneID    string `json:"zone_id"`
	Available bool   `json:"available"`
	VehicleID string `json:"vehicle_id,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func toSlotResp(s *model.Slot) slotResp {
	return slotResp{
		ID:        s.ID,
		AreaID:    s.AreaID,
		ZoneID:    s.ZoneID,
		Available: s.Available,
		VehicleID: s.VehicleID,
		RequestID: s.RequestID,
	}
}

// zoneResp is the JSON view of a zone with per-area detail.
type zoneResp struct {
	ID               string     `json:"zone_id"`
	Name             string     `json:"zone_name"`
	AdjacentZones    []string   `json:"adjacent_zones"`
	CrossZonePenalty int        `json:"cross_zone_penalty"`
	TotalSlots       int        `json:"total_slots"`
	AvailableSlots   int        `json:"available_slots"`
	OccupiedSlots    int        `json:"occupied_slots"`
	UtilizationRate  float64    `json:"utilization_rate"`
	Areas            []areaResp `json:"areas"`
}

type areaResp struct {
	ID             string `json:"area_id"`
	Name           string `json:"area_name"`
	Capacity       int    `json:"capacity"`
	TotalSlots     int    `json:"total_slots"`
	AvailableSlots int    `json:"available_slots"`
}

func toZoneResp(z *model.Zone) zoneResp {
	resp := zoneResp{
		ID:               z.ID,
		Name:             z.Name,
		AdjacentZones:    z.AdjacentZones(),
		CrossZonePenalty: z.CrossZonePenalty,
		TotalSlots:       z.TotalSlots(),
		AvailableSlots:   len(z.AvailableSlots()),
		OccupiedSlots:    z.OccupiedSlots(),
		UtilizationRate:  z.UtilizationRate(),
		Areas:            []areaResp{},
	}
	for _, a := range z.Areas.Items() {
		resp.Areas = append(resp.Areas, areaResp{
			ID:             a.ID,
			Name:           a.Name,
			Capacity:       a.Slots.Cap(),
			TotalSlots:     a.TotalSlots(),
			AvailableSlots: len(a.AvailableSlots()),
		})
	}
	return resp
}
