package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "Bastion"

var (
	jwtSecret     = []byte("bastion-dev-secret")
	jwtExpiration = 24 * time.Hour
)

// Configure sets the signing secret and token lifetime; empty or zero values keep the defaults
func Configure(secret string, expireHours int) {
	if secret != "" {
		jwtSecret = []byte(secret)
	}
	if expireHours > 0 {
		jwtExpiration = time.Duration(expireHours) * time.Hour
	}
}

// GenerateToken signs a token for userID
func GenerateToken(userID uint64, roles []string) (string, error) {
	now := time.Now()
	claims := &UserClaims{
		UserID: userID,
		Roles:  roles,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(jwtExpiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
		},
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken verifies tokenString and returns its claims
func ValidateToken(tokenString string) (*UserClaims, error) {
	claims := &UserClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	if !token.Valid || claims.UserID == 0 {
		return nil, errors.New("token invalid or expired")
	}
	return claims, nil
}
