// internal/handlers/client.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/cappeLindo/webcars-api/internal/i18n"
	"github.com/cappeLindo/webcars-api/internal/services"
	"github.com/cappeLindo/webcars-api/internal/utils"
)

type ClientHandler struct {
	clientService *services.ClientService
}

func NewClientHandler(clientService *services.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

// POST /clients
func (h *ClientHandler) Register(c *gin.Context) {
	var req services.RegisterClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body", nil)
		return
	}

	client, err := h.clientService.Register(c.Request.Context(), &req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.CreatedResponse(c, client)
}

// GET /clients/me
func (h *ClientHandler) GetProfile(c *gin.Context) {
	clientID, ok := accountFromContext(c)
	if !ok {
		return
	}

	client, err := h.clientService.GetClient(c.Request.Context(), clientID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.SuccessResponse(c, client)
}

// PATCH /clients/me
func (h *ClientHandler) UpdateProfile(c *gin.Context) {
	clientID, ok := accountFromContext(c)
	if !ok {
		return
	}

	var req services.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body", nil)
		return
	}

	client, err := h.clientService.UpdateClient(c.Request.Context(), clientID, &req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.SuccessResponse(c, client)
}

// PUT /clients/me/password
func (h *ClientHandler) ChangePassword(c *gin.Context) {
	clientID, ok := accountFromContext(c)
	if !ok {
		return
	}

	var req services.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body", nil)
		return
	}

	if err := h.clientService.ChangePassword(c.Request.Context(), clientID, &req); err != nil {
		utils.RespondError(c, err)
		return
	}
	lang := utils.GetLangFromContext(c)
	utils.SuccessResponse(c, gin.H{"message": i18n.T(lang, i18n.KeyClientUpdated)})
}

// DELETE /clients/me
func (h *ClientHandler) DeleteProfile(c *gin.Context) {
	clientID, ok := accountFromContext(c)
	if !ok {
		return
	}

	if err := h.clientService.DeleteClient(c.Request.Context(), clientID); err != nil {
		utils.RespondError(c, err)
		return
	}
	lang := utils.GetLangFromContext(c)
	utils.SuccessResponse(c, gin.H{"message": i18n.T(lang, i18n.KeyClientDeleted)})
}
