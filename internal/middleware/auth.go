// internal/middleware/auth.go
package middleware

import (
	"net/http"
	"strings"

	"github.com/cappeLindo/webcars-api/internal/i18n"
	"github.com/cappeLindo/webcars-api/internal/models"
	"github.com/cappeLindo/webcars-api/internal/utils"

	"github.com/gin-gonic/gin"
)

const AccessTokenCookie = "webcars_token"

// tokenFromRequest accepts a bearer header or the auth cookie.
func tokenFromRequest(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}

	if cookie, err := c.Cookie(AccessTokenCookie); err == nil {
		return cookie
	}

	return ""
}

func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := c.GetHeader("Accept-Language")
		if lang == "" {
			lang = "en"
		}

		token := tokenFromRequest(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": i18n.T(lang, i18n.KeyAuthRequired),
			})
			c.Abort()
			return
		}

		claims, err := utils.ValidateJWT(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": i18n.T(lang, i18n.KeyAuthTokenExpired),
			})
			c.Abort()
			return
		}

		// Set account info in context
		c.Set("account_id", claims.AccountID)
		c.Set("account_name", claims.AccountName)
		c.Set("account_type", claims.AccountType)
		c.Next()
	}
}

func ClientRequired() gin.HandlerFunc {
	return accountTypeRequired(models.AccountTypeClient)
}

func DealershipRequired() gin.HandlerFunc {
	return accountTypeRequired(models.AccountTypeDealership)
}

func accountTypeRequired(accountType models.AccountType) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := c.GetHeader("Accept-Language")
		if lang == "" {
			lang = "en"
		}

		current, exists := c.Get("account_type")
		if !exists || current != string(accountType) {
			c.JSON(http.StatusForbidden, gin.H{
				"error": i18n.T(lang, i18n.KeyAccessDenied),
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			c.Next()
			return
		}

		claims, err := utils.ValidateJWT(token)
		if err != nil {
			c.Next()
			return
		}

		// Set account info in context if token is valid
		c.Set("account_id", claims.AccountID)
		c.Set("account_name", claims.AccountName)
		c.Set("account_type", claims.AccountType)
		c.Next()
	}
}
