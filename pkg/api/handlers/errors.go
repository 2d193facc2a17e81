package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/salimbeni/soundtouch-homeassistant-integration/pkg/api/types"
	"github.com/salimbeni/soundtouch-homeassistant-integration/pkg/speaker"
)

// respondError maps speaker sentinel errors onto HTTP responses. Every
// handler funnels command failures through here so the mapping stays in
// one place.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, speaker.ErrNotFound):
		c.JSON(http.StatusNotFound, types.ErrorResponse{
			Error:   "not_found",
			Message: err.Error(),
		})
	case errors.Is(err, speaker.ErrTimeout):
		c.JSON(http.StatusGatewayTimeout, types.ErrorResponse{
			Error:   "timeout",
			Message: "Request timed out waiting for speaker response",
		})
	case errors.Is(err, speaker.ErrNotConnected):
		c.JSON(http.StatusServiceUnavailable, types.ErrorResponse{
			Error:   "not_connected",
			Message: "Speaker is not connected",
		})
	case errors.Is(err, speaker.ErrValidation), errors.Is(err, speaker.ErrBadPayload):
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
	case errors.Is(err, speaker.ErrUnsupported):
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "unsupported",
			Message: err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Error:   "speaker_error",
			Message: err.Error(),
		})
	}
}

// speakerNotFound is the response for an unknown speaker id.
func speakerNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, types.ErrorResponse{
		Error:   "not_found",
		Message: "Speaker not found",
	})
}
