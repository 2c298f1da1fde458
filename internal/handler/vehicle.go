package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// RegisterVehicle registers a vehicle once.  Re-registering the same id is a
// conflict, never an update; a driver changing their preferred zone simply
// requests a different zone per trip.
func (h *ParkingHandler) RegisterVehicle(c echo.Context) error {
	var req struct {
		VehicleID     string `json:"vehicle_id"`
		PreferredZone string `json:"preferred_zone"`
		VehicleType   string `json:"vehicle_type"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.VehicleID = strings.TrimSpace(req.VehicleID)

	h.mu.Lock()
	v, err := h.Sys.RegisterVehicle(req.VehicleID, req.PreferredZone, req.VehicleType)
	h.mu.Unlock()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, toVehicleResp(v))
}

// GetVehicle returns one registered vehicle.
func (h *ParkingHandler) GetVehicle(c echo.Context) error {
	h.mu.RLock()
	v, err := h.Sys.Vehicle(c.Param("vehicle_id"))
	h.mu.RUnlock()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toVehicleResp(v))
}
