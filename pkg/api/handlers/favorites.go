package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/salimbeni/soundtouch-homeassistant-integration/pkg/api/types"
	"github.com/salimbeni/soundtouch-homeassistant-integration/pkg/db"
)

// FavoritesHandler handles favorite storage endpoints
type FavoritesHandler struct {
	store db.FavoriteStore
}

// NewFavoritesHandler creates a new favorites handler
func NewFavoritesHandler(store db.FavoriteStore) *FavoritesHandler {
	return &FavoritesHandler{store: store}
}

func favoriteInfo(f *db.Favorite) types.FavoriteInfo {
	return types.FavoriteInfo{
		ID:            f.ID,
		Name:          f.Name,
		Source:        f.Source,
		SourceAccount: f.SourceAccount,
		ItemType:      f.ItemType,
		Location:      f.Location,
		ContainerArt:  f.ContainerArt,
		Presetable:    f.Presetable,
	}
}

// ListFavorites handles GET /favorites
// @Summary      List favorites
// @Description  Returns all stored favorites
// @Tags         favorites
// @Produce      json
// @Success      200  {object}  types.ListFavoritesResponse
// @Failure      500  {object}  types.ErrorResponse  "Storage error"
// @Router       /favorites [get]
func (h *FavoritesHandler) ListFavorites(c *gin.Context) {
	favorites, err := h.store.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Error:   "storage_error",
			Message: err.Error(),
		})
		return
	}

	result := make([]types.FavoriteInfo, 0, len(favorites))
	for _, f := range favorites {
		result = append(result, favoriteInfo(f))
	}

	c.JSON(http.StatusOK, types.ListFavoritesResponse{
		Favorites: result,
		Count:     len(result),
	})
}

// CreateFavorite handles POST /favorites
// @Summary      Create a favorite
// @Description  Stores a content item as a favorite; duplicates by source and location are rejected
// @Tags         favorites
// @Accept       json
// @Produce      json
// @Param        request  body      types.CreateFavoriteRequest  true  "Favorite to store"
// @Success      201      {object}  types.FavoriteInfo
// @Failure      400      {object}  types.ErrorResponse  "Invalid request"
// @Failure      409      {object}  types.ErrorResponse  "Favorite already exists"
// @Router       /favorites [post]
func (h *FavoritesHandler) CreateFavorite(c *gin.Context) {
	var req types.CreateFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "invalid_request",
			Message: "name, source and location are required",
		})
		return
	}

	favorite := &db.Favorite{
		Name:          req.Name,
		Source:        req.Source,
		SourceAccount: req.SourceAccount,
		ItemType:      req.ItemType,
		Location:      req.Location,
		ContainerArt:  req.ContainerArt,
		Presetable:    req.Presetable,
	}

	if err := h.store.Create(c.Request.Context(), favorite); err != nil {
		if errors.Is(err, db.ErrFavoriteExists) {
			c.JSON(http.StatusConflict, types.ErrorResponse{
				Error:   "already_exists",
				Message: "A favorite with this source and location already exists",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Error:   "storage_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, favoriteInfo(favorite))
}

// DeleteFavorite handles DELETE /favorites/:id
// @Summary      Delete a favorite
// @Description  Removes the favorite with the given id
// @Tags         favorites
// @Produce      json
// @Param        id   path   string  true  "Favorite id"
// @Success      204  "Favorite removed"
// @Failure      404  {object}  types.ErrorResponse  "Favorite not found"
// @Router       /favorites/{id} [delete]
func (h *FavoritesHandler) DeleteFavorite(c *gin.Context) {
	if err := h.store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, db.ErrFavoriteNotFound) {
			c.JSON(http.StatusNotFound, types.ErrorResponse{
				Error:   "not_found",
				Message: "Favorite not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Error:   "storage_error",
			Message: err.Error(),
		})
		return
	}

	c.Status(http.StatusNoContent)
}
