package handler

import (
	"context"
	"database/sql"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/smart-parking-system/internal/model"
	q "github.com/iliyamo/smart-parking-system/internal/queue"
	"github.com/iliyamo/smart-parking-system/internal/repository"
	queue_publisher "github.com/iliyamo/smart-parking-system/internal/service"
)

// CreateRequest opens a parking request for a registered vehicle.  With
// auto_allocate (the default) the engine assigns a slot immediately;
// otherwise the request is queued for first-come-first-served processing.
// When the zone is omitted the vehicle's preferred zone is used.
func (h *ParkingHandler) CreateRequest(c echo.Context) error {
	var req struct {
		VehicleID    string `json:"vehicle_id"`
		ZoneID       string `json:"zone_id"`
		AutoAllocate *bool  `json:"auto_allocate"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.VehicleID = strings.TrimSpace(req.VehicleID)
	auto := req.AutoAllocate == nil || *req.AutoAllocate

	h.mu.Lock()
	zoneID := req.ZoneID
	if zoneID == "" {
		if v, verr := h.Sys.Vehicle(req.VehicleID); verr == nil {
			zoneID = v.PreferredZone
		}
	}
	pr, res, err := h.Sys.CreateRequest(req.VehicleID, zoneID, auto)
	h.mu.Unlock()

	if err != nil {
		if pr == nil {
			// Validation failed; nothing was created.
			return writeError(c, err)
		}
		// The request exists in REQUESTED state but could not be allocated
		// or queued.  Report the conflict together with the request so the
		// client can retry or cancel it.
		return c.JSON(http.StatusConflict, echo.Map{
			"error":   err.Error(),
			"request": toRequestResp(pr),
		})
	}

	body := echo.Map{"request": toRequestResp(pr)}
	if res != nil {
		body["allocation"] = res
	} else {
		body["queued"] = true
	}
	return c.JSON(http.StatusCreated, body)
}

// ListRequests returns every request, including completed ones, sorted by
// id (creation order, since ids are zero-padded).
func (h *ParkingHandler) ListRequests(c echo.Context) error {
	h.mu.RLock()
	reqs := h.Sys.Requests()
	out := make([]requestResp, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, toRequestResp(r))
	}
	h.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return c.JSON(http.StatusOK, echo.Map{"requests": out, "count": len(out)})
}

// GetRequest returns one request with its full state history.
func (h *ParkingHandler) GetRequest(c echo.Context) error {
	h.mu.RLock()
	pr, err := h.Sys.Request(c.Param("request_id"))
	var resp requestResp
	if err == nil {
		resp = toRequestResp(pr)
	}
	h.mu.RUnlock()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// AllocateRequest runs the engine for a REQUESTED request.
func (h *ParkingHandler) AllocateRequest(c echo.Context) error {
	h.mu.Lock()
	res, err := h.Sys.Allocate(c.Param("request_id"))
	h.mu.Unlock()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// OccupyRequest marks the vehicle as arrived at its allocated slot.
func (h *ParkingHandler) OccupyRequest(c echo.Context) error {
	h.mu.Lock()
	pr, err := h.Sys.Occupy(c.Param("request_id"))
	var resp requestResp
	if err == nil {
		resp = toRequestResp(pr)
	}
	h.mu.Unlock()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// ReleaseRequest completes an occupied stay.  The slot stays consumed until
// an admin recycles it.  The archive row and the parking.released event are
// both copied out of the request while the lock is still held, so a
// concurrent rollback restoring the request cannot overlap the reads;
// archiving and publishing then run on the copies and cannot fail the
// response.
func (h *ParkingHandler) ReleaseRequest(c echo.Context) error {
	h.mu.Lock()
	res, err := h.Sys.Release(c.Param("request_id"))
	var row *repository.TripRow
	var ev *q.ParkingReleasedEvent
	if err == nil {
		if pr, perr := h.Sys.Request(res.RequestID); perr == nil {
			row = h.tripRow(pr)
			ev = &q.ParkingReleasedEvent{
				RequestID:        pr.ID,
				VehicleID:        pr.VehicleID,
				SlotID:           pr.AllocatedSlot,
				ZoneID:           pr.AllocatedZone,
				RequestedZone:    pr.RequestedZone,
				IsCrossZone:      pr.IsCrossZone(),
				CrossZonePenalty: pr.CrossZonePenalty,
				DurationSeconds:  res.DurationSeconds,
				AllocatedAt:      pr.AllocatedAt.UTC().Format(time.RFC3339),
				ReleasedAt:       pr.ReleasedAt.UTC().Format(time.RFC3339),
			}
		}
	}
	h.mu.Unlock()
	if err != nil {
		return writeError(c, err)
	}

	h.archiveTrip(c, row)
	if ev != nil {
		event := *ev
		// Fire and forget: the release already happened in memory.
		go func() { _ = queue_publisher.PublishParkingReleased(context.Background(), event) }()
	}
	return c.JSON(http.StatusOK, res)
}

// CancelRequest aborts a REQUESTED or ALLOCATED request.  A held slot is
// freed immediately; cancelled trips are archived like released ones, with
// the row copied under the lock for the same reason as in ReleaseRequest.
func (h *ParkingHandler) CancelRequest(c echo.Context) error {
	h.mu.Lock()
	pr, err := h.Sys.Cancel(c.Param("request_id"))
	var resp requestResp
	var row *repository.TripRow
	if err == nil {
		resp = toRequestResp(pr)
		row = h.tripRow(pr)
	}
	h.mu.Unlock()
	if err != nil {
		return writeError(c, err)
	}
	h.archiveTrip(c, row)
	return c.JSON(http.StatusOK, resp)
}

// tripRow copies a terminal request into an archive row.  The caller must
// hold h.mu; the returned row shares no memory with the request.  Nil when
// no database is configured.
func (h *ParkingHandler) tripRow(pr *model.Request) *repository.TripRow {
	if h.Trips == nil || pr == nil {
		return nil
	}
	ended := pr.ReleasedAt
	if pr.State == model.StateCancelled {
		ended = pr.CancelledAt
	}
	return &repository.TripRow{
		RequestID:        pr.ID,
		VehicleID:        pr.VehicleID,
		RequestedZone:    pr.RequestedZone,
		AllocatedZone:    nullString(pr.AllocatedZone),
		SlotID:           nullString(pr.AllocatedSlot),
		State:            string(pr.State),
		CrossZonePenalty: pr.CrossZonePenalty,
		DurationSeconds:  pr.Duration().Seconds(),
		CreatedAt:        pr.CreatedAt.UTC(),
		EndedAt:          ended.UTC(),
	}
}

// archiveTrip inserts a prepared row into the trip archive.  Failures are
// logged and never surface to the client.
func (h *ParkingHandler) archiveTrip(c echo.Context, row *repository.TripRow) {
	if h.Trips == nil || row == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Trips.Insert(ctx, row); err != nil {
		c.Logger().Warnf("trip archive insert failed for %s: %v", row.RequestID, err)
	}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
