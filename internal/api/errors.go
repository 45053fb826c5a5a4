package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/cityinfo-api/internal/api/shared"
	"github.com/phrazzld/cityinfo-api/internal/domain"
	"github.com/phrazzld/cityinfo-api/internal/service"
	"github.com/phrazzld/cityinfo-api/internal/service/auth"
	"github.com/phrazzld/cityinfo-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrMissingCityClaim):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, service.ErrCityNotFound),
		errors.Is(err, service.ErrPointOfInterestNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidPatch),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"

	case errors.Is(err, auth.ErrMissingCityClaim):
		return "Token has no city claim"

	case errors.Is(err, auth.ErrMissingToken):
		return "Authorization header required"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid):
		return "Invalid token"

	case errors.Is(err, domain.ErrUnauthorized):
		return "Authentication required"

	case errors.Is(err, domain.ErrForbidden):
		return "You are not allowed to access this city"

	case errors.Is(err, service.ErrCityNotFound),
		errors.Is(err, store.ErrCityNotFound):
		return "City not found"

	case errors.Is(err, service.ErrPointOfInterestNotFound),
		errors.Is(err, store.ErrPointOfInterestNotFound):
		return "Point of interest not found"

	case errors.Is(err, store.ErrNotFound):
		return "Resource not found"

	case errors.Is(err, domain.ErrInvalidPatch):
		return "Invalid patch document"

	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid ID"

	case errors.Is(err, domain.ErrValidation):
		return "Validation failed"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError writes the error response for err. The status code and the
// message come from the central mapping; a non-empty message replaces the
// mapped one for server errors only, so client errors keep their specific text.
// Validation errors carry their field-level detail in the body.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, message string) {
	status := MapErrorToStatusCode(err)
	safeMessage := GetSafeErrorMessage(err)
	if message != "" && status == http.StatusInternalServerError {
		safeMessage = message
	}

	var opts []shared.ResponseOption
	var verrs *domain.ValidationErrors
	if errors.As(err, &verrs) && verrs.HasErrors() {
		opts = append(opts, shared.WithFields(verrs.Fields()))
	}
	if status == http.StatusForbidden {
		opts = append(opts, shared.WithElevatedLogLevel())
	}

	shared.RespondWithErrorAndLog(w, r, status, safeMessage, err, opts...)
}
