package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/lzamboni86/godrive-mobile-api/internal/middleware"
	"github.com/lzamboni86/godrive-mobile-api/internal/models"
)

// claimsFromContext never returns nil: a route registered without the
// JWT middleware yields empty claims, so callers can deref fields and
// fall through to not-found or forbidden instead of panicking.
func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if exists {
		if claims, ok := value.(*models.JWTClaims); ok && claims != nil {
			return claims
		}
	}
	return &models.JWTClaims{}
}

func tokenFromContext(c *gin.Context) string {
	value, exists := c.Get(middleware.ContextTokenKey)
	if !exists {
		return ""
	}
	token, ok := value.(string)
	if !ok {
		return ""
	}
	return token
}
