package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/salimbeni/soundtouch-homeassistant-integration/pkg/api/types"
	"github.com/salimbeni/soundtouch-homeassistant-integration/pkg/conn"
	"github.com/salimbeni/soundtouch-homeassistant-integration/pkg/speaker"
)

// TelemetryHandler handles battery and network telemetry endpoints
type TelemetryHandler struct {
	fleet *conn.Fleet
}

// NewTelemetryHandler creates a new telemetry handler
func NewTelemetryHandler(fleet *conn.Fleet) *TelemetryHandler {
	return &TelemetryHandler{fleet: fleet}
}

// Telemetry handles GET /speakers/:id/telemetry
// @Summary      Speaker telemetry
// @Description  Returns battery (portable speakers only) and network readings
// @Tags         telemetry
// @Produce      json
// @Param        id   path      string  true  "Speaker GUID or name"
// @Success      200  {object}  types.TelemetryResponse
// @Failure      404  {object}  types.ErrorResponse  "Speaker not found"
// @Failure      504  {object}  types.ErrorResponse  "Request timed out"
// @Router       /speakers/{id}/telemetry [get]
func (h *TelemetryHandler) Telemetry(c *gin.Context) {
	m, ok := h.fleet.Lookup(c.Param("id"))
	if !ok {
		speakerNotFound(c)
		return
	}
	ctx := c.Request.Context()

	// Battery is absent on mains-powered speakers, not an error.
	if m.Client().HasCapability(speaker.ResourceBattery) {
		if err := m.Battery.Refresh(ctx); err != nil && !errors.Is(err, speaker.ErrUnsupported) {
			respondError(c, err)
			return
		}
	}
	if err := m.Network.Refresh(ctx); err != nil {
		respondError(c, err)
		return
	}

	resp := types.TelemetryResponse{
		Speaker:   m.Name(),
		Network:   m.Network.Snapshot(),
		Timestamp: time.Now(),
	}
	if battery := m.Battery.Snapshot(); len(battery) > 0 {
		resp.Battery = battery
	}

	c.JSON(http.StatusOK, resp)
}
