package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(42, []string{"user", "admin"})
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), claims.UserID)
	assert.True(t, claims.HasRole("admin"))
	assert.False(t, claims.HasRole("moderator"))
	assert.Equal(t, issuer, claims.Issuer)
}

func TestValidateTokenRejects(t *testing.T) {
	sign := func(c *UserClaims, secret []byte) string {
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(secret)
		require.NoError(t, err)
		return s
	}
	future := jwt.NewNumericDate(time.Now().Add(time.Hour))

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not.a.token"},
		{name: "anonymous user", token: sign(&UserClaims{RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: future}}, jwtSecret)},
		{name: "wrong secret", token: sign(&UserClaims{UserID: 1, RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: future}}, []byte("other"))},
		{name: "expired", token: sign(&UserClaims{UserID: 1, RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		}}, jwtSecret)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateToken(tt.token)
			assert.Error(t, err)
		})
	}
}
