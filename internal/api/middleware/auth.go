package middleware

import (
	"Bastion/internal/pkg/response"
	"Bastion/internal/pkg/security"
	"Bastion/internal/service"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	CtxUserID = "user_id"
	CtxRoles  = "roles"
)

// AuthMiddleware requires a valid bearer token and stores the identity on the gin context
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := bearerClaims(c)
		if !ok {
			response.Fail(c, response.Unauthorized, service.ErrAuthRequired.Error())
			c.Abort()
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxRoles, claims.Roles)
		c.Next()
	}
}

func bearerClaims(c *gin.Context) (*security.UserClaims, bool) {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return nil, false
	}
	claims, err := security.ValidateToken(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		return nil, false
	}
	return claims, true
}
