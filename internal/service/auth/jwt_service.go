// Package auth issues and validates the bearer tokens that identify which
// city a caller acts for.
package auth

import (
	"context"
	"errors"
	"time"
)

// Token validation failures. All of them map to 401 at the HTTP edge.
var (
	ErrInvalidToken     = errors.New("invalid authentication token")
	ErrExpiredToken     = errors.New("authentication token has expired")
	ErrTokenNotYetValid = errors.New("authentication token not yet valid")
	ErrMissingToken     = errors.New("authentication token is missing")

	// ErrMissingCityClaim rejects a correctly signed token that names no city.
	ErrMissingCityClaim = errors.New("authentication token has no city claim")
)

// JWTService mints and checks HS256 bearer tokens carrying a city claim.
type JWTService interface {
	// GenerateToken signs a token for subject acting for city.
	GenerateToken(ctx context.Context, subject, city string) (string, error)

	// ValidateToken verifies signature, issuer and lifetime and returns the
	// claims. A token without a city is rejected with ErrMissingCityClaim.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the validated content of a bearer token.
type Claims struct {
	// City is the name of the city the bearer acts for.
	City string `json:"city,omitempty"`

	Subject   string    `json:"sub,omitempty"`
	Issuer    string    `json:"iss,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
