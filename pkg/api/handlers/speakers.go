package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"

	"github.com/salimbeni/soundtouch-homeassistant-integration/pkg/api/types"
	"github.com/salimbeni/soundtouch-homeassistant-integration/pkg/conn"
	"github.com/salimbeni/soundtouch-homeassistant-integration/pkg/speaker"
	"github.com/salimbeni/soundtouch-homeassistant-integration/pkg/speaker/schema"
)

// SpeakersHandler handles speaker listing and state endpoints
type SpeakersHandler struct {
	fleet     *conn.Fleet
	validator *schema.Validator
}

// NewSpeakersHandler creates a new speakers handler
func NewSpeakersHandler(fleet *conn.Fleet, validator *schema.Validator) *SpeakersHandler {
	return &SpeakersHandler{fleet: fleet, validator: validator}
}

func speakerInfo(m *conn.Manager, withState bool) types.SpeakerInfo {
	si := types.SpeakerInfo{
		GUID:      m.GUID(),
		Name:      m.Name(),
		Product:   m.Info().ProductName,
		IP:        m.IP(),
		Connected: m.Client().IsConnected(),
	}
	if withState {
		si.State = m.State()
	}
	return si
}

// ListSpeakers handles GET /speakers
// @Summary      List all speakers
// @Description  Returns every configured speaker with its current state snapshot
// @Tags         speakers
// @Produce      json
// @Success      200  {object}  types.ListSpeakersResponse
// @Router       /speakers [get]
func (h *SpeakersHandler) ListSpeakers(c *gin.Context) {
	managers := h.fleet.List()

	result := make([]types.SpeakerInfo, 0, len(managers))
	for _, m := range managers {
		result = append(result, speakerInfo(m, true))
	}

	c.JSON(http.StatusOK, types.ListSpeakersResponse{
		Speakers: result,
		Count:    len(result),
	})
}

// GetSpeaker handles GET /speakers/:id
// @Summary      Get speaker details
// @Description  Returns details for a specific speaker by GUID or name
// @Tags         speakers
// @Produce      json
// @Param        id   path      string  true  "Speaker GUID or name"
// @Success      200  {object}  types.SpeakerResponse
// @Failure      404  {object}  types.ErrorResponse  "Speaker not found"
// @Router       /speakers/{id} [get]
func (h *SpeakersHandler) GetSpeaker(c *gin.Context) {
	m, ok := h.fleet.Lookup(c.Param("id"))
	if !ok {
		speakerNotFound(c)
		return
	}

	c.JSON(http.StatusOK, types.SpeakerResponse{
		Speaker: speakerInfo(m, true),
	})
}

// GetState handles GET /speakers/:id/state
// @Summary      Get speaker state
// @Description  Refreshes and returns the speaker's normalized state
// @Tags         speakers
// @Produce      json
// @Param        id   path      string  true  "Speaker GUID or name"
// @Success      200  {object}  types.StateResponse
// @Failure      404  {object}  types.ErrorResponse  "Speaker not found"
// @Failure      504  {object}  types.ErrorResponse  "Request timed out"
// @Failure      503  {object}  types.ErrorResponse  "Speaker not connected"
// @Router       /speakers/{id}/state [get]
func (h *SpeakersHandler) GetState(c *gin.Context) {
	m, ok := h.fleet.Lookup(c.Param("id"))
	if !ok {
		speakerNotFound(c)
		return
	}

	if err := m.Player.Refresh(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.StateResponse{
		Speaker:   m.Name(),
		State:     m.State(),
		Timestamp: time.Now(),
	})
}

// SetState handles POST /speakers/:id/state
// @Summary      Set speaker state
// @Description  Applies a state change (power, volume, muted, source) after schema validation
// @Tags         speakers
// @Accept       json
// @Produce      json
// @Param        id       path      string  true  "Speaker GUID or name"
// @Param        request  body      object  true  "State to set"
// @Success      200      {object}  types.StateResponse
// @Failure      400      {object}  types.ErrorResponse  "Invalid request"
// @Failure      404      {object}  types.ErrorResponse  "Speaker not found"
// @Failure      504      {object}  types.ErrorResponse  "Request timed out"
// @Router       /speakers/{id}/state [post]
func (h *SpeakersHandler) SetState(c *gin.Context) {
	m, ok := h.fleet.Lookup(c.Param("id"))
	if !ok {
		speakerNotFound(c)
		return
	}
	ctx := c.Request.Context()

	var req map[string]any
	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
		return
	}

	if err := h.validator.ValidateState(req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	if err := applyState(ctx, m, req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.StateResponse{
		Speaker:   m.Name(),
		State:     m.State(),
		Timestamp: time.Now(),
	})
}

// applyState executes the individual commands of a validated state
// request in a fixed order: power first so the rest land on an awake
// speaker.
func applyState(ctx context.Context, m *conn.Manager, req map[string]any) error {
	if v, ok := req["power"]; ok {
		switch cast.ToString(v) {
		case speaker.PowerOn:
			if err := m.Player.TurnOn(ctx); err != nil {
				return err
			}
		case speaker.PowerOff:
			if err := m.Player.TurnOff(ctx); err != nil {
				return err
			}
		}
	}
	if v, ok := req["volume"]; ok {
		if err := m.Player.SetVolume(ctx, cast.ToInt(v)); err != nil {
			return err
		}
	}
	if v, ok := req["muted"]; ok {
		if err := m.Player.SetMuted(ctx, cast.ToBool(v)); err != nil {
			return err
		}
	}
	if v, ok := req["source"]; ok {
		if err := m.Player.SelectSource(ctx, cast.ToString(v)); err != nil {
			return err
		}
	}
	return nil
}

// GetSources handles GET /speakers/:id/sources
// @Summary      List selectable sources
// @Description  Returns the sources currently selectable on the speaker
// @Tags         speakers
// @Produce      json
// @Param        id   path      string  true  "Speaker GUID or name"
// @Success      200  {object}  types.SourcesResponse
// @Failure      404  {object}  types.ErrorResponse  "Speaker not found"
// @Router       /speakers/{id}/sources [get]
func (h *SpeakersHandler) GetSources(c *gin.Context) {
	m, ok := h.fleet.Lookup(c.Param("id"))
	if !ok {
		speakerNotFound(c)
		return
	}

	c.JSON(http.StatusOK, types.SourcesResponse{
		Speaker: m.Name(),
		Sources: m.Player.SourceList(),
	})
}
