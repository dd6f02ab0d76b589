package middleware

import (
	"github.com/gin-gonic/gin"
)

// AuthOptionalMiddleware sets user_id when a valid token is present and 0 otherwise
func AuthOptionalMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := bearerClaims(c); ok {
			c.Set(CtxUserID, claims.UserID)
			c.Set(CtxRoles, claims.Roles)
		} else {
			c.Set(CtxUserID, uint64(0))
		}
		c.Next()
	}
}
