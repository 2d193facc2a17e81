package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/salimbeni/soundtouch-homeassistant-integration/pkg/api/types"
	"github.com/salimbeni/soundtouch-homeassistant-integration/pkg/conn"
)

// GroupingHandler handles multi-room group endpoints
type GroupingHandler struct {
	fleet *conn.Fleet
}

// NewGroupingHandler creates a new grouping handler
func NewGroupingHandler(fleet *conn.Fleet) *GroupingHandler {
	return &GroupingHandler{fleet: fleet}
}

// Join handles POST /speakers/:id/group
// @Summary      Group speakers
// @Description  Adds the named speakers to a group mastered by this speaker
// @Tags         grouping
// @Accept       json
// @Produce      json
// @Param        id       path      string              true  "Master speaker GUID or name"
// @Param        request  body      types.GroupRequest  true  "Member GUIDs or names"
// @Success      200      {object}  types.StatusResponse
// @Failure      400      {object}  types.ErrorResponse  "Invalid request"
// @Failure      404      {object}  types.ErrorResponse  "Speaker or member not found"
// @Router       /speakers/{id}/group [post]
func (h *GroupingHandler) Join(c *gin.Context) {
	m, ok := h.fleet.Lookup(c.Param("id"))
	if !ok {
		speakerNotFound(c)
		return
	}

	var req types.GroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "invalid_request",
			Message: "members is required and must not be empty",
		})
		return
	}

	// Accept names as well as GUIDs for members.
	guids := make([]string, 0, len(req.Members))
	for _, member := range req.Members {
		mm, ok := h.fleet.Lookup(member)
		if !ok {
			c.JSON(http.StatusNotFound, types.ErrorResponse{
				Error:   "not_found",
				Message: "Unknown group member: " + member,
			})
			return
		}
		guids = append(guids, mm.GUID())
	}

	if err := m.Player.Join(c.Request.Context(), guids); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.StatusResponse{Status: "grouped"})
}

// Leave handles DELETE /speakers/:id/group
// @Summary      Leave group
// @Description  Removes this speaker from its current group
// @Tags         grouping
// @Produce      json
// @Param        id   path      string  true  "Speaker GUID or name"
// @Success      200  {object}  types.StatusResponse
// @Failure      404  {object}  types.ErrorResponse  "Speaker not found"
// @Router       /speakers/{id}/group [delete]
func (h *GroupingHandler) Leave(c *gin.Context) {
	m, ok := h.fleet.Lookup(c.Param("id"))
	if !ok {
		speakerNotFound(c)
		return
	}

	if err := m.Player.Unjoin(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.StatusResponse{Status: "ungrouped"})
}
