package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/salimbeni/soundtouch-homeassistant-integration/pkg/api/types"
	"github.com/salimbeni/soundtouch-homeassistant-integration/pkg/conn"
)

// PlaybackHandler handles transport control endpoints
type PlaybackHandler struct {
	fleet *conn.Fleet
}

// NewPlaybackHandler creates a new playback handler
func NewPlaybackHandler(fleet *conn.Fleet) *PlaybackHandler {
	return &PlaybackHandler{fleet: fleet}
}

// Command handles POST /speakers/:id/playback/:action
// @Summary      Playback command
// @Description  Executes a transport command (play, pause, stop, next, previous, seek)
// @Tags         playback
// @Produce      json
// @Param        id      path      string  true  "Speaker GUID or name"
// @Param        action  path      string  true  "One of play, pause, stop, next, previous"
// @Success      200     {object}  types.StatusResponse
// @Failure      400     {object}  types.ErrorResponse  "Unknown action"
// @Failure      404     {object}  types.ErrorResponse  "Speaker not found"
// @Failure      504     {object}  types.ErrorResponse  "Request timed out"
// @Router       /speakers/{id}/playback/{action} [post]
func (h *PlaybackHandler) Command(c *gin.Context) {
	m, ok := h.fleet.Lookup(c.Param("id"))
	if !ok {
		speakerNotFound(c)
		return
	}
	ctx := c.Request.Context()
	action := c.Param("action")

	var err error
	switch action {
	case "play":
		err = m.Player.Play(ctx)
	case "pause":
		err = m.Player.Pause(ctx)
	case "stop":
		err = m.Player.Stop(ctx)
	case "next":
		err = m.Player.Next(ctx)
	case "previous":
		err = m.Player.Previous(ctx)
	case "seek":
		h.seek(c, m)
		return
	default:
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "invalid_request",
			Message: "Unknown playback action: " + action,
		})
		return
	}

	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.StatusResponse{Status: action})
}

// seek moves the playback position; the target second comes from the
// request body.
func (h *PlaybackHandler) seek(c *gin.Context, m *conn.Manager) {
	var req types.SeekRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "invalid_request",
			Message: "position must be a non-negative integer",
		})
		return
	}

	if err := m.Player.Seek(c.Request.Context(), float64(req.Position)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.StatusResponse{Status: "seek"})
}
