package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/smart-parking-system/internal/model"
)

// Rollback undoes the last count mutating operations, most recent first.
// The count is clamped to the available history; a negative count is a 400.
func (h *ParkingHandler) Rollback(c echo.Context) error {
	var req struct {
		Count int `json:"count"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	h.mu.Lock()
	undone, err := h.Sys.Rollback(req.Count)
	remaining := h.Sys.RollbackHistorySize()
	h.mu.Unlock()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"undone":            undone,
		"undone_count":      len(undone),
		"remaining_history": remaining,
	})
}

// operationResp is the JSON view of a recorded operation.  Before-images are
// internal to the rollback manager and never serialized.
type operationResp struct {
	Type       model.OperationType `json:"type"`
	RequestID  string              `json:"request_id"`
	VehicleID  string              `json:"vehicle_id,omitempty"`
	SlotID     string              `json:"slot_id,omitempty"`
	ZoneID     string              `json:"zone_id,omitempty"`
	RecordedAt time.Time           `json:"recorded_at"`
}

// RecentOperations lists the last n recorded operations without undoing
// them, most recent first.  Defaults to 10.
func (h *ParkingHandler) RecentOperations(c echo.Context) error {
	n := 10
	if raw := c.QueryParam("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid limit"})
		}
		n = v
	}

	h.mu.RLock()
	ops := h.Sys.RecentOperations(n)
	total := h.Sys.RollbackHistorySize()
	h.mu.RUnlock()

	out := make([]operationResp, 0, len(ops))
	for _, op := range ops {
		out = append(out, operationResp{
			Type:       op.Type,
			RequestID:  op.RequestID,
			VehicleID:  op.VehicleID,
			SlotID:     op.SlotID,
			ZoneID:     op.ZoneID,
			RecordedAt: op.RecordedAt,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"operations": out, "history_size": total})
}
