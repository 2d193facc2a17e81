package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/salimbeni/soundtouch-homeassistant-integration/pkg/api/types"
	"github.com/salimbeni/soundtouch-homeassistant-integration/pkg/conn"
)

// BluetoothHandler handles Bluetooth pairing endpoints
type BluetoothHandler struct {
	fleet *conn.Fleet
}

// NewBluetoothHandler creates a new bluetooth handler
func NewBluetoothHandler(fleet *conn.Fleet) *BluetoothHandler {
	return &BluetoothHandler{fleet: fleet}
}

// Pair handles POST /speakers/:id/bluetooth/pair
// @Summary      Start Bluetooth pairing
// @Description  Puts the speaker into Bluetooth pairing mode
// @Tags         bluetooth
// @Produce      json
// @Param        id   path      string  true  "Speaker GUID or name"
// @Success      200  {object}  types.StatusResponse
// @Failure      404  {object}  types.ErrorResponse  "Speaker not found"
// @Failure      504  {object}  types.ErrorResponse  "Request timed out"
// @Router       /speakers/{id}/bluetooth/pair [post]
func (h *BluetoothHandler) Pair(c *gin.Context) {
	m, ok := h.fleet.Lookup(c.Param("id"))
	if !ok {
		speakerNotFound(c)
		return
	}

	if err := m.Bluetooth.Pair(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.StatusResponse{Status: "pairing"})
}

// Remove handles DELETE /speakers/:id/bluetooth/:mac
// @Summary      Remove a paired Bluetooth device
// @Description  Removes the Bluetooth device with the given MAC address from the speaker
// @Tags         bluetooth
// @Produce      json
// @Param        id   path   string  true  "Speaker GUID or name"
// @Param        mac  path   string  true  "Bluetooth device MAC address"
// @Success      204  "Device removed"
// @Failure      400  {object}  types.ErrorResponse  "Invalid MAC"
// @Failure      404  {object}  types.ErrorResponse  "Speaker not found"
// @Router       /speakers/{id}/bluetooth/{mac} [delete]
func (h *BluetoothHandler) Remove(c *gin.Context) {
	m, ok := h.fleet.Lookup(c.Param("id"))
	if !ok {
		speakerNotFound(c)
		return
	}

	if err := m.Bluetooth.Remove(c.Request.Context(), c.Param("mac")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
