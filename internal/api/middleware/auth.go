// Package middleware provides the HTTP middleware guarding the API routes.
package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/cityinfo-api/internal/api/shared"
	"github.com/phrazzld/cityinfo-api/internal/platform/logger"
	"github.com/phrazzld/cityinfo-api/internal/service/auth"
)

var errMalformedAuthorization = errors.New("authorization header is not a bearer token")

// AuthMiddleware rejects requests without a valid bearer token and exposes
// the token's claims to the handlers behind it.
type AuthMiddleware struct {
	jwtService auth.JWTService
}

// NewAuthMiddleware creates an AuthMiddleware validating with jwtService.
func NewAuthMiddleware(jwtService auth.JWTService) *AuthMiddleware {
	if jwtService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("jwtService cannot be nil")
	}
	return &AuthMiddleware{jwtService: jwtService}
}

// Authenticate validates the bearer token and stores its claims in the
// request context. Authentication failures answer 401 with a
// WWW-Authenticate challenge.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := bearerToken(r)
		if err == nil {
			var claims *auth.Claims
			claims, err = m.jwtService.ValidateToken(r.Context(), token)
			if err == nil {
				logger.FromContext(r.Context()).Debug("request authenticated",
					slog.String("subject", claims.Subject),
					slog.String("city", claims.City))
				next.ServeHTTP(w, r.WithContext(shared.WithClaims(r.Context(), claims)))
				return
			}
		}

		message, ok := unauthorizedMessage(err)
		if !ok {
			shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Authentication error", err)
			return
		}
		w.Header().Set("WWW-Authenticate", `Bearer realm="cityinfo"`)
		shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, message, err)
	})
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
// The scheme is matched case-insensitively.
func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", auth.ErrMissingToken
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errMalformedAuthorization
	}
	return parts[1], nil
}

// unauthorizedMessage returns the client message for an authentication
// failure, or false when err is not one and should surface as a 500.
func unauthorizedMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, auth.ErrMissingToken):
		return "Authorization header required", true
	case errors.Is(err, errMalformedAuthorization):
		return "Invalid authorization format", true
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired", true
	case errors.Is(err, auth.ErrMissingCityClaim):
		return "Token has no city claim", true
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrTokenNotYetValid):
		return "Invalid token", true
	default:
		return "", false
	}
}

// GetClaims returns the claims Authenticate stored for r.
func GetClaims(r *http.Request) (*auth.Claims, bool) {
	return shared.GetClaims(r.Context())
}
