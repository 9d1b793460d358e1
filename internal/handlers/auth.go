// internal/handlers/auth.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cappeLindo/webcars-api/internal/config"
	"github.com/cappeLindo/webcars-api/internal/i18n"
	"github.com/cappeLindo/webcars-api/internal/middleware"
	"github.com/cappeLindo/webcars-api/internal/services"
	"github.com/cappeLindo/webcars-api/internal/utils"
)

type AuthHandler struct {
	authService *services.AuthService
	config      *config.Config
}

func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{authService: authService, config: cfg}
}

// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body", nil)
		return
	}

	response, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	h.setTokenCookie(c, response.AccessToken)
	utils.SuccessResponse(c, response)
}

// POST /auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req services.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body", nil)
		return
	}

	response, err := h.authService.Refresh(c.Request.Context(), &req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	h.setTokenCookie(c, response.AccessToken)
	utils.SuccessResponse(c, response)
}

// POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessTokenCookie, "", -1, "/", h.config.JWT.CookieDomain, h.config.JWT.CookieSecure, true)

	lang := utils.GetLangFromContext(c)
	utils.SuccessResponse(c, gin.H{"message": i18n.T(lang, i18n.KeyAuthLogoutSuccess)})
}

// GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	accountID, ok := utils.GetAccountIDFromContext(c)
	if !ok {
		lang := utils.GetLangFromContext(c)
		utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthRequired))
		return
	}
	accountType, _ := utils.GetAccountTypeFromContext(c)

	account, err := h.authService.CurrentAccount(c.Request.Context(), accountID, accountType)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"account_type": accountType,
		"account":      account,
	})
}

func (h *AuthHandler) setTokenCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	maxAge := h.config.JWT.AccessTokenTTL * 3600
	c.SetCookie(middleware.AccessTokenCookie, token, maxAge, "/", h.config.JWT.CookieDomain, h.config.JWT.CookieSecure, true)
}
