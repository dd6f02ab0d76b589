package middleware

import (
	"Bastion/internal/pkg/response"
	"Bastion/internal/service"
	"slices"

	"github.com/gin-gonic/gin"
)

// CheckRoles passes when the caller holds at least one of requiredRoles
func CheckRoles(requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roles := c.GetStringSlice(CtxRoles)

		for _, required := range requiredRoles {
			if slices.Contains(roles, required) {
				c.Next()
				return
			}
		}

		response.Fail(c, response.Forbidden, service.ErrForbidden.Error())
		c.Abort()
	}
}
