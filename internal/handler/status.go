package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
)

// SystemStatus returns the raw counter view of the whole system.
func (h *ParkingHandler) SystemStatus(c echo.Context) error {
	h.mu.RLock()
	st := h.Sys.Status()
	h.mu.RUnlock()
	return c.JSON(http.StatusOK, st)
}

// Analytics aggregates trip history and zone utilization.
func (h *ParkingHandler) Analytics(c echo.Context) error {
	h.mu.RLock()
	an := h.Sys.GetAnalytics()
	h.mu.RUnlock()
	return c.JSON(http.StatusOK, an)
}

// ListTrips lists completed trips.  By default it serves the in-memory
// history; with ?source=archive it reads the database archive instead, which
// survives restarts but requires a configured database.
func (h *ParkingHandler) ListTrips(c echo.Context) error {
	if c.QueryParam("source") == "archive" {
		if h.Trips == nil {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "trip archive not configured"})
		}
		limit := 50
		if raw := c.QueryParam("limit"); raw != "" {
			if v, err := strconv.Atoi(raw); err == nil && v > 0 {
				limit = v
			}
		}
		ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
		defer cancel()
		rows, err := h.Trips.ListRecent(ctx, limit)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "trip archive query failed"})
		}
		out := make([]echo.Map, 0, len(rows))
		for _, r := range rows {
			out = append(out, echo.Map{
				"request_id":         r.RequestID,
				"vehicle_id":         r.VehicleID,
				"requested_zone":     r.RequestedZone,
				"allocated_zone":     r.AllocatedZone.String,
				"slot_id":            r.SlotID.String,
				"state":              r.State,
				"cross_zone_penalty": r.CrossZonePenalty,
				"duration_seconds":   r.DurationSeconds,
				"created_at":         r.CreatedAt,
				"ended_at":           r.EndedAt,
			})
		}
		return c.JSON(http.StatusOK, echo.Map{"trips": out, "source": "archive"})
	}

	h.mu.RLock()
	trips := h.Sys.TripHistory()
	h.mu.RUnlock()
	return c.JSON(http.StatusOK, echo.Map{"trips": trips, "source": "memory"})
}

// Reset discards the whole in-memory system and rebuilds it through the seed
// function.  The trip archive is untouched; only live state is dropped.
func (h *ParkingHandler) Reset(c echo.Context) error {
	if h.Seed == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "reset not available"})
	}
	h.mu.Lock()
	h.Sys = h.Seed()
	st := h.Sys.Status()
	h.mu.Unlock()
	return c.JSON(http.StatusOK, st)
}
