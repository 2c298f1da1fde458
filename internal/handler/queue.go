package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// QueueStatus reports the pending request ids front-to-rear.
func (h *ParkingHandler) QueueStatus(c echo.Context) error {
	h.mu.RLock()
	st := h.Sys.Queue()
	h.mu.RUnlock()
	return c.JSON(http.StatusOK, st)
}

// ProcessNextPending dequeues the oldest pending request and allocates it.
// An empty queue is a 404; a dequeued request that cannot be satisfied
// (no capacity, or it was removed by a rollback) surfaces as 409 or 404
// respectively, and the id is consumed either way.
func (h *ParkingHandler) ProcessNextPending(c echo.Context) error {
	h.mu.Lock()
	res, err := h.Sys.ProcessNextPending()
	h.mu.Unlock()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}
