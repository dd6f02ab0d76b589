package security

import (
	"slices"

	"github.com/golang-jwt/jwt/v5"
)

// UserClaims identity carried by every bearer token
type UserClaims struct {
	UserID uint64   `json:"user_id"`
	Roles  []string `json:"roles"`
	jwt.RegisteredClaims
}

func (c *UserClaims) HasRole(role string) bool {
	return slices.Contains(c.Roles, role)
}
