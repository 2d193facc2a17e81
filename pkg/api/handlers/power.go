package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/salimbeni/soundtouch-homeassistant-integration/pkg/api/types"
	"github.com/salimbeni/soundtouch-homeassistant-integration/pkg/conn"
)

// PowerHandler handles standby timeout and accessory toggle endpoints
type PowerHandler struct {
	fleet *conn.Fleet
}

// NewPowerHandler creates a new power settings handler
func NewPowerHandler(fleet *conn.Fleet) *PowerHandler {
	return &PowerHandler{fleet: fleet}
}

// GetSettings handles GET /speakers/:id/power
// @Summary      Power settings
// @Description  Returns the standby timeout and accessory toggles the device supports
// @Tags         power
// @Produce      json
// @Param        id   path      string  true  "Speaker GUID or name"
// @Success      200  {object}  types.PowerSettingsResponse
// @Failure      404  {object}  types.ErrorResponse  "Speaker not found"
// @Failure      503  {object}  types.ErrorResponse  "Speaker not connected"
// @Router       /speakers/{id}/power [get]
func (h *PowerHandler) GetSettings(c *gin.Context) {
	m, ok := h.fleet.Lookup(c.Param("id"))
	if !ok {
		speakerNotFound(c)
		return
	}

	if err := m.Power.Refresh(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.PowerSettingsResponse{
		Speaker:  m.Name(),
		Settings: m.Power.Snapshot(),
	})
}

// SetStandby handles PUT /speakers/:id/power/standby
// @Summary      Set standby timeout
// @Description  Enables or disables the no-audio standby timeout
// @Tags         power
// @Accept       json
// @Produce      json
// @Param        id       path      string               true  "Speaker GUID or name"
// @Param        request  body      types.ToggleRequest  true  "Desired state"
// @Success      200      {object}  types.StatusResponse
// @Failure      400      {object}  types.ErrorResponse  "Invalid request or unsupported"
// @Failure      404      {object}  types.ErrorResponse  "Speaker not found"
// @Router       /speakers/{id}/power/standby [put]
func (h *PowerHandler) SetStandby(c *gin.Context) {
	m, ok := h.fleet.Lookup(c.Param("id"))
	if !ok {
		speakerNotFound(c)
		return
	}

	var req types.ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "invalid_request",
			Message: "enabled is required",
		})
		return
	}

	if err := m.Power.SetStandbyTimeout(c.Request.Context(), *req.Enabled); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.StatusResponse{Status: "ok"})
}

// SetAccessory handles PUT /speakers/:id/power/accessories/:name
// @Summary      Toggle an accessory group
// @Description  Enables or disables the subwoofer ("subs") or rear speaker ("rears") group
// @Tags         power
// @Accept       json
// @Produce      json
// @Param        id       path      string               true  "Speaker GUID or name"
// @Param        name     path      string               true  "Accessory group: subs or rears"
// @Param        request  body      types.ToggleRequest  true  "Desired state"
// @Success      200      {object}  types.StatusResponse
// @Failure      400      {object}  types.ErrorResponse  "Unknown accessory or not controllable"
// @Failure      404      {object}  types.ErrorResponse  "Speaker not found"
// @Router       /speakers/{id}/power/accessories/{name} [put]
func (h *PowerHandler) SetAccessory(c *gin.Context) {
	m, ok := h.fleet.Lookup(c.Param("id"))
	if !ok {
		speakerNotFound(c)
		return
	}

	var req types.ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "invalid_request",
			Message: "enabled is required",
		})
		return
	}

	if err := m.Power.SetAccessory(c.Request.Context(), c.Param("name"), *req.Enabled); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.StatusResponse{Status: "ok"})
}
