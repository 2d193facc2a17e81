package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"

	"github.com/salimbeni/soundtouch-homeassistant-integration/pkg/api/types"
	"github.com/salimbeni/soundtouch-homeassistant-integration/pkg/conn"
	"github.com/salimbeni/soundtouch-homeassistant-integration/pkg/speaker/schema"
)

// AudioHandler handles audio setting endpoints
type AudioHandler struct {
	fleet     *conn.Fleet
	validator *schema.Validator
}

// NewAudioHandler creates a new audio handler
func NewAudioHandler(fleet *conn.Fleet, validator *schema.Validator) *AudioHandler {
	return &AudioHandler{fleet: fleet, validator: validator}
}

// ListSettings handles GET /speakers/:id/audio
// @Summary      List audio settings
// @Description  Returns every audio option the speaker supports with its current value
// @Tags         audio
// @Produce      json
// @Param        id   path      string  true  "Speaker GUID or name"
// @Success      200  {object}  types.ListAudioSettingsResponse
// @Failure      404  {object}  types.ErrorResponse  "Speaker not found"
// @Failure      504  {object}  types.ErrorResponse  "Request timed out"
// @Router       /speakers/{id}/audio [get]
func (h *AudioHandler) ListSettings(c *gin.Context) {
	m, ok := h.fleet.Lookup(c.Param("id"))
	if !ok {
		speakerNotFound(c)
		return
	}

	if err := m.Audio.Refresh(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}

	options := m.Audio.Options()
	settings := make([]types.AudioSettingInfo, 0, len(options))
	for _, option := range options {
		setting, ok := m.Audio.Get(option)
		if !ok {
			continue
		}
		settings = append(settings, types.AudioSettingInfo{
			Option:    option,
			Value:     setting.Value,
			Min:       setting.Min,
			Max:       setting.Max,
			Step:      setting.Step,
			Selected:  setting.Selected,
			Supported: setting.Supported,
		})
	}

	c.JSON(http.StatusOK, types.ListAudioSettingsResponse{
		Speaker:  m.Name(),
		Settings: settings,
	})
}

// SetSetting handles PUT /speakers/:id/audio/:option
// @Summary      Set an audio setting
// @Description  Writes a slider value or selects a named mode for the given audio option
// @Tags         audio
// @Accept       json
// @Produce      json
// @Param        id       path      string                     true  "Speaker GUID or name"
// @Param        option   path      string                     true  "Audio option, e.g. bass"
// @Param        request  body      types.AudioSettingRequest  true  "Value or option to set"
// @Success      200      {object}  types.StatusResponse
// @Failure      400      {object}  types.ErrorResponse  "Invalid request or out of range"
// @Failure      404      {object}  types.ErrorResponse  "Speaker not found"
// @Router       /speakers/{id}/audio/{option} [put]
func (h *AudioHandler) SetSetting(c *gin.Context) {
	m, ok := h.fleet.Lookup(c.Param("id"))
	if !ok {
		speakerNotFound(c)
		return
	}
	option := c.Param("option")

	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
		return
	}

	if err := h.validator.ValidateAudioSetting(raw); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	ctx := c.Request.Context()
	var err error
	if v, ok := raw["value"]; ok {
		err = m.Audio.Set(ctx, option, cast.ToInt(v))
	} else {
		err = m.Audio.Select(ctx, option, cast.ToString(raw["option"]))
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.StatusResponse{Status: "updated"})
}
