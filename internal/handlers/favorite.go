// internal/handlers/favorite.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/cappeLindo/webcars-api/internal/i18n"
	"github.com/cappeLindo/webcars-api/internal/services"
	"github.com/cappeLindo/webcars-api/internal/utils"
)

type FavoriteHandler struct {
	favoriteService *services.FavoriteService
}

func NewFavoriteHandler(favoriteService *services.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteService}
}

// GET /favorites
func (h *FavoriteHandler) GetFavorites(c *gin.Context) {
	clientID, ok := accountFromContext(c)
	if !ok {
		return
	}
	params := utils.GetPaginationParams(c)

	favorites, total, err := h.favoriteService.ListFavorites(c.Request.Context(), clientID, params)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	result := utils.CreatePaginationResult(favorites, total, params)
	utils.SetPaginationHeaders(c, result)
	utils.PaginatedResponse(c, result)
}

// POST /favorites/:carId
func (h *FavoriteHandler) AddFavorite(c *gin.Context) {
	clientID, ok := accountFromContext(c)
	if !ok {
		return
	}
	carID, ok := paramUint(c, "carId")
	if !ok {
		return
	}

	favorite, err := h.favoriteService.AddFavorite(c.Request.Context(), clientID, carID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.CreatedResponse(c, favorite)
}

// DELETE /favorites/:carId
func (h *FavoriteHandler) RemoveFavorite(c *gin.Context) {
	clientID, ok := accountFromContext(c)
	if !ok {
		return
	}
	carID, ok := paramUint(c, "carId")
	if !ok {
		return
	}

	if err := h.favoriteService.RemoveFavorite(c.Request.Context(), clientID, carID); err != nil {
		utils.RespondError(c, err)
		return
	}
	lang := utils.GetLangFromContext(c)
	utils.SuccessResponse(c, gin.H{"message": i18n.T(lang, i18n.KeyFavoriteRemoved)})
}

// GET /favorites/:carId
func (h *FavoriteHandler) CheckFavorite(c *gin.Context) {
	clientID, ok := accountFromContext(c)
	if !ok {
		return
	}
	carID, ok := paramUint(c, "carId")
	if !ok {
		return
	}

	isFavorite, err := h.favoriteService.IsFavorite(c.Request.Context(), clientID, carID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"is_favorite": isFavorite})
}
