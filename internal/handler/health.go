package handler // declare the package name; contains HTTP handlers

import (
	"context"  // context bounds the database ping
	"net/http" // net/http provides status codes and response helpers
	"time"     // time sets the ping timeout

	"github.com/labstack/echo/v4" // echo is the web framework used for this project
	"go.uber.org/zap"             // zap reports an unreachable database
)

// Health is a simple health-check endpoint used by load balancers and
// monitoring systems.  It returns "ok" with 200 when the database answers
// and "unavailable" with 503 otherwise.
func (h *Handler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()
	if err := h.Venues.Ping(ctx); err != nil {
		h.Log.Warn("health check failed", zap.Error(err))
		return c.String(http.StatusServiceUnavailable, "unavailable")
	}
	return c.String(http.StatusOK, "ok") // write "ok" with a 200 OK status
}
