package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/salimbeni/soundtouch-homeassistant-integration/pkg/api/types"
	"github.com/salimbeni/soundtouch-homeassistant-integration/pkg/conn"
)

// PresetsHandler handles hardware preset endpoints
type PresetsHandler struct {
	fleet *conn.Fleet
}

// NewPresetsHandler creates a new presets handler
func NewPresetsHandler(fleet *conn.Fleet) *PresetsHandler {
	return &PresetsHandler{fleet: fleet}
}

// ListPresets handles GET /speakers/:id/presets
// @Summary      List presets
// @Description  Returns the contents of the six hardware preset slots
// @Tags         presets
// @Produce      json
// @Param        id   path      string  true  "Speaker GUID or name"
// @Success      200  {object}  types.ListPresetsResponse
// @Failure      404  {object}  types.ErrorResponse  "Speaker not found"
// @Failure      504  {object}  types.ErrorResponse  "Request timed out"
// @Router       /speakers/{id}/presets [get]
func (h *PresetsHandler) ListPresets(c *gin.Context) {
	m, ok := h.fleet.Lookup(c.Param("id"))
	if !ok {
		speakerNotFound(c)
		return
	}

	if err := m.Presets.Refresh(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}

	presets := m.Presets.List()
	result := make([]types.PresetInfo, 0, len(presets))
	for _, p := range presets {
		slot, _ := strconv.Atoi(p.Slot)
		result = append(result, types.PresetInfo{
			Slot:     slot,
			Name:     p.Name,
			Source:   p.Source,
			Location: p.Location,
			ImageURL: p.ImageURL,
		})
	}

	c.JSON(http.StatusOK, types.ListPresetsResponse{
		Speaker: m.Name(),
		Presets: result,
	})
}

// PlayPreset handles POST /speakers/:id/presets/:slot/play
// @Summary      Play a preset
// @Description  Starts playback of the content stored in the given preset slot
// @Tags         presets
// @Produce      json
// @Param        id    path      string  true  "Speaker GUID or name"
// @Param        slot  path      int     true  "Preset slot (1-6)"
// @Success      200   {object}  types.StatusResponse
// @Failure      400   {object}  types.ErrorResponse  "Invalid slot"
// @Failure      404   {object}  types.ErrorResponse  "Speaker or preset not found"
// @Router       /speakers/{id}/presets/{slot}/play [post]
func (h *PresetsHandler) PlayPreset(c *gin.Context) {
	m, ok := h.fleet.Lookup(c.Param("id"))
	if !ok {
		speakerNotFound(c)
		return
	}

	slot, err := strconv.Atoi(c.Param("slot"))
	if err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "invalid_request",
			Message: "slot must be an integer",
		})
		return
	}

	if err := m.Presets.Press(c.Request.Context(), slot); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.StatusResponse{Status: "playing"})
}
