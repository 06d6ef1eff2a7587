package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "unit-test-secret")

	raw, err := GenerateToken(42, "admin")
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	claims, status := ValidateToken(raw)
	require.Equal(t, TokenValid, status)
	assert.Equal(t, uint(42), claims.AdminID)
	assert.Equal(t, "admin", claims.Username)
	assert.WithinDuration(t, time.Now().Add(AccessTokenTTL), claims.ExpiresAt.Time, time.Minute)
}

func TestValidateTokenExpired(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "unit-test-secret")

	past := time.Now().Add(-time.Hour)
	claims := AdminClaims{
		AdminID:  1,
		Username: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(past.Add(-time.Hour)),
			ExpiresAt: jwt.NewNumericDate(past),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("unit-test-secret"))
	require.NoError(t, err)

	got, status := ValidateToken(raw)
	assert.Equal(t, TokenExpired, status)
	assert.Nil(t, got)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "unit-test-secret")

	raw, err := GenerateToken(1, "admin")
	require.NoError(t, err)

	t.Setenv("JWT_SECRET_KEY", "a-different-secret")
	got, status := ValidateToken(raw)
	assert.Equal(t, TokenMalformed, status)
	assert.Nil(t, got)
}

func TestValidateTokenGarbage(t *testing.T) {
	for _, raw := range []string{"", "garbage", "a.b.c"} {
		got, status := ValidateToken(raw)
		assert.Equal(t, TokenMalformed, status)
		assert.Nil(t, got)
	}
}
