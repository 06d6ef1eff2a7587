package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// AccessTokenTTL is the lifetime of issued bearer tokens.
	AccessTokenTTL = 24 * time.Hour
	// RefreshTokenTTL is reserved for a refresh flow that is not
	// implemented; only access tokens are ever issued.
	RefreshTokenTTL = 30 * 24 * time.Hour
)

// TokenStatus is the tagged outcome of ValidateToken. Callers collapse
// TokenExpired and TokenMalformed into the same generic 401 so the
// response leaks nothing about why validation failed.
type TokenStatus int

const (
	TokenValid TokenStatus = iota
	TokenExpired
	TokenMalformed
)

// AdminClaims carry the verified identity inside a signed token.
type AdminClaims struct {
	AdminID  uint   `json:"admin_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

func jwtSecret() []byte {
	return []byte(EnvOrDefault("JWT_SECRET_KEY", "jwt-secret-key-change-in-production"))
}

// GenerateToken signs an HS256 token for the given admin, valid for
// AccessTokenTTL from now.
func GenerateToken(adminID uint, username string) (string, error) {
	now := time.Now().UTC()
	claims := AdminClaims{
		AdminID:  adminID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(AccessTokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

// ValidateToken verifies signature and expiry of a raw token string.
func ValidateToken(raw string) (*AdminClaims, TokenStatus) {
	claims := &AdminClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecret(), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, TokenExpired
		}
		return nil, TokenMalformed
	}
	if !token.Valid {
		return nil, TokenMalformed
	}
	return claims, TokenValid
}
