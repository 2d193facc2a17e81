package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/salimbeni/soundtouch-homeassistant-integration/pkg/api/types"
	"github.com/salimbeni/soundtouch-homeassistant-integration/pkg/conn"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	fleet *conn.Fleet
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(fleet *conn.Fleet) *HealthHandler {
	return &HealthHandler{fleet: fleet}
}

// Health handles GET /health
// @Summary      Health check
// @Description  Returns the health status and connected speaker count
// @Tags         health
// @Produce      json
// @Success      200  {object}  types.HealthResponse  "Service is healthy"
// @Failure      503  {object}  types.HealthResponse  "No speaker is reachable"
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	managers := h.fleet.List()

	connected := 0
	for _, m := range managers {
		if m.Client().IsConnected() {
			connected++
		}
	}

	status := "healthy"
	httpStatus := http.StatusOK
	if len(managers) > 0 && connected == 0 {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	c.JSON(httpStatus, types.HealthResponse{
		Status:    status,
		Speakers:  len(managers),
		Connected: connected,
		Timestamp: time.Now(),
	})
}
