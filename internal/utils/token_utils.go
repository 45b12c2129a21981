package utils

import (
	"time"

	"github.com/SscSPs/membership_ledger/internal/middleware"
	"github.com/golang-jwt/jwt/v5"
)

// GenerateJWT signs a token carrying the caller's user ID and role, in the shape
// middleware.AuthMiddleware expects.
func GenerateJWT(userID string, role middleware.Role, secret string, expiryDuration time.Duration, issuer string) (string, error) {
	now := time.Now()
	claims := middleware.Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiryDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
