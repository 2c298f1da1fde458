package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// CreateZone registers a new zone together with its adjacency declarations.
// Edges to zones that already exist are mirrored immediately; an edge to a
// zone created later is completed when that zone declares this one back.
func (h *ParkingHandler) CreateZone(c echo.Context) error {
	var req struct {
		ZoneID        string   `json:"zone_id"`
		ZoneName      string   `json:"zone_name"`
		AdjacentZones []string `json:"adjacent_zones"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.ZoneID = strings.TrimSpace(req.ZoneID)

	h.mu.Lock()
	zone, err := h.Sys.AddZone(req.ZoneID, req.ZoneName, req.AdjacentZones)
	h.mu.Unlock()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, toZoneResp(zone))
}

// CreateArea adds a fixed-capacity parking area to an existing zone.
func (h *ParkingHandler) CreateArea(c echo.Context) error {
	var req struct {
		AreaID   string `json:"area_id"`
		AreaName string `json:"area_name"`
		Capacity int    `json:"capacity"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	zoneID := c.Param("zone_id")

	h.mu.Lock()
	area, err := h.Sys.AddArea(zoneID, strings.TrimSpace(req.AreaID), req.AreaName, req.Capacity)
	h.mu.Unlock()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"area_id":  area.ID,
		"zone_id":  area.ZoneID,
		"name":     area.Name,
		"capacity": area.Slots.Cap(),
	})
}

// CreateSlot adds one slot to an area.  The area's capacity is fixed at
// creation, so this fails with 409 once the area is full.
func (h *ParkingHandler) CreateSlot(c echo.Context) error {
	var req struct {
		SlotID string `json:"slot_id"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	areaID := c.Param("area_id")

	h.mu.Lock()
	slot, err := h.Sys.AddSlot(areaID, strings.TrimSpace(req.SlotID))
	h.mu.Unlock()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, toSlotResp(slot))
}

// ListZones returns every zone in creation order.
func (h *ParkingHandler) ListZones(c echo.Context) error {
	h.mu.RLock()
	zones := h.Sys.Zones()
	out := make([]zoneResp, 0, len(zones))
	for _, z := range zones {
		out = append(out, toZoneResp(z))
	}
	h.mu.RUnlock()
	return c.JSON(http.StatusOK, echo.Map{"zones": out})
}

// GetZone returns one zone with its areas and adjacency.
func (h *ParkingHandler) GetZone(c echo.Context) error {
	h.mu.RLock()
	zone, err := h.Sys.Zone(c.Param("zone_id"))
	var resp zoneResp
	if err == nil {
		resp = toZoneResp(zone)
	}
	h.mu.RUnlock()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// RecycleSlot returns a consumed slot to the pool after its request has been
// released.  Recycling a slot still held by an active request is rejected.
func (h *ParkingHandler) RecycleSlot(c echo.Context) error {
	h.mu.Lock()
	slot, err := h.Sys.RecycleSlot(c.Param("slot_id"))
	h.mu.Unlock()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toSlotResp(slot))
}
