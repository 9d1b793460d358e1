// internal/handlers/filter.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/cappeLindo/webcars-api/internal/i18n"
	"github.com/cappeLindo/webcars-api/internal/services"
	"github.com/cappeLindo/webcars-api/internal/utils"
)

type FilterHandler struct {
	filterService *services.AlertFilterService
}

func NewFilterHandler(filterService *services.AlertFilterService) *FilterHandler {
	return &FilterHandler{filterService: filterService}
}

func accountFromContext(c *gin.Context) (uint, bool) {
	clientID, ok := utils.GetAccountIDFromContext(c)
	if !ok {
		lang := utils.GetLangFromContext(c)
		utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthRequired))
		return 0, false
	}
	return clientID, true
}

// GET /alert-filters
func (h *FilterHandler) GetFilters(c *gin.Context) {
	clientID, ok := accountFromContext(c)
	if !ok {
		return
	}

	filters, err := h.filterService.ListFilters(c.Request.Context(), clientID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.SuccessResponse(c, filters)
}

// GET /alert-filters/:id
func (h *FilterHandler) GetFilter(c *gin.Context) {
	clientID, ok := accountFromContext(c)
	if !ok {
		return
	}
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	filter, err := h.filterService.GetFilter(c.Request.Context(), clientID, id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.SuccessResponse(c, filter)
}

// POST /alert-filters
func (h *FilterHandler) CreateFilter(c *gin.Context) {
	clientID, ok := accountFromContext(c)
	if !ok {
		return
	}

	var req services.AlertFilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body", nil)
		return
	}

	filter, err := h.filterService.CreateFilter(c.Request.Context(), clientID, &req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.CreatedResponse(c, filter)
}

// PUT /alert-filters/:id
func (h *FilterHandler) UpdateFilter(c *gin.Context) {
	clientID, ok := accountFromContext(c)
	if !ok {
		return
	}
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	var req services.AlertFilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body", nil)
		return
	}

	filter, err := h.filterService.UpdateFilter(c.Request.Context(), clientID, id, &req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.SuccessResponse(c, filter)
}

// DELETE /alert-filters/:id
func (h *FilterHandler) DeleteFilter(c *gin.Context) {
	clientID, ok := accountFromContext(c)
	if !ok {
		return
	}
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	if err := h.filterService.DeleteFilter(c.Request.Context(), clientID, id); err != nil {
		utils.RespondError(c, err)
		return
	}
	lang := utils.GetLangFromContext(c)
	utils.SuccessResponse(c, gin.H{"message": i18n.T(lang, i18n.KeyFilterDeleted)})
}

// GET /cars/:id/matching-filters
// Returns the caller's alert filters that the car satisfies.
func (h *FilterHandler) GetMatchingFilters(c *gin.Context) {
	clientID, ok := accountFromContext(c)
	if !ok {
		return
	}
	carID, ok := paramUint(c, "id")
	if !ok {
		return
	}

	matched, err := h.filterService.CompareCarAgainstFilters(c.Request.Context(), carID, &clientID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.SuccessResponse(c, matched)
}
