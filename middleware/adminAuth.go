package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"solecare/models"
	"solecare/utils"
)

// Context keys set by AdminAuthMiddleware.
const (
	CtxAdminID    = "adminID"
	CtxAdminEmail = "adminEmail"
	CtxAuthToken  = "authToken"
)

// AdminAuthMiddleware requires a valid admin JWT backed by a live auth
// session. A token whose session has been revoked or expired is rejected even
// if its signature and exp are still good.
func AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := utils.ExtractClaims(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		if claims.Role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin role required"})
			return
		}

		session, err := utils.GetAuthSession(utils.GetAuthCacheClient(), utils.HashToken(tokenString))
		if err != nil || session == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session expired, please log in again"})
			return
		}

		c.Set(CtxAdminID, session.AdminID)
		c.Set(CtxAdminEmail, session.Email)
		c.Set(CtxAuthToken, tokenString)
		c.Next()
	}
}
