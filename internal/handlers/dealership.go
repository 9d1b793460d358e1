// internal/handlers/dealership.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/cappeLindo/webcars-api/internal/i18n"
	"github.com/cappeLindo/webcars-api/internal/services"
	"github.com/cappeLindo/webcars-api/internal/utils"
)

type DealershipHandler struct {
	dealershipService *services.DealershipService
}

func NewDealershipHandler(dealershipService *services.DealershipService) *DealershipHandler {
	return &DealershipHandler{dealershipService: dealershipService}
}

// POST /dealerships
func (h *DealershipHandler) Register(c *gin.Context) {
	var req services.RegisterDealershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body", nil)
		return
	}

	dealership, err := h.dealershipService.Register(c.Request.Context(), &req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.CreatedResponse(c, dealership)
}

// GET /dealerships
func (h *DealershipHandler) GetDealerships(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	dealerships, total, err := h.dealershipService.ListDealerships(c.Request.Context(), params)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	result := utils.CreatePaginationResult(dealerships, total, params)
	utils.SetPaginationHeaders(c, result)
	utils.PaginatedResponse(c, result)
}

// GET /dealerships/:id
func (h *DealershipHandler) GetDealership(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	dealership, err := h.dealershipService.GetDealership(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.SuccessResponse(c, dealership)
}

// PATCH /dealerships/me
func (h *DealershipHandler) UpdateProfile(c *gin.Context) {
	dealershipID, ok := accountFromContext(c)
	if !ok {
		return
	}

	var req services.UpdateDealershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body", nil)
		return
	}

	dealership, err := h.dealershipService.UpdateDealership(c.Request.Context(), dealershipID, &req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.SuccessResponse(c, dealership)
}

// PUT /dealerships/me/password
func (h *DealershipHandler) ChangePassword(c *gin.Context) {
	dealershipID, ok := accountFromContext(c)
	if !ok {
		return
	}

	var req services.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body", nil)
		return
	}

	if err := h.dealershipService.ChangePassword(c.Request.Context(), dealershipID, &req); err != nil {
		utils.RespondError(c, err)
		return
	}
	lang := utils.GetLangFromContext(c)
	utils.SuccessResponse(c, gin.H{"message": i18n.T(lang, i18n.KeyDealershipUpdated)})
}

// DELETE /dealerships/me
func (h *DealershipHandler) DeleteProfile(c *gin.Context) {
	dealershipID, ok := accountFromContext(c)
	if !ok {
		return
	}

	if err := h.dealershipService.DeleteDealership(c.Request.Context(), dealershipID); err != nil {
		utils.RespondError(c, err)
		return
	}
	lang := utils.GetLangFromContext(c)
	utils.SuccessResponse(c, gin.H{"message": i18n.T(lang, i18n.KeyDealershipDeleted)})
}
