package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/cityinfo-api/internal/domain"
	"github.com/phrazzld/cityinfo-api/internal/service"
	"github.com/phrazzld/cityinfo-api/internal/service/auth"
	"github.com/phrazzld/cityinfo-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{
			name:           "nil error",
			err:            nil,
			expectedStatus: http.StatusInternalServerError, // Default to 500 for nil error
		},
		{
			name:           "authentication error",
			err:            auth.ErrInvalidToken,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrapped authentication error",
			err:            fmt.Errorf("failed to authenticate: %w", auth.ErrExpiredToken),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "authorization error",
			err:            domain.ErrForbidden,
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "service city not found",
			err:            service.NewServiceError("city", "get_city", "failed", store.ErrCityNotFound),
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "store not found",
			err:            store.ErrPointOfInterestNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "validation error",
			err:            domain.NewValidationError("name", "is required"),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid patch",
			err:            invalidPatch("patch[0].op", "bad"),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid id",
			err:            invalidID("cityId", "bad"),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unexpected error",
			err:            errors.New("connection refused"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedStatus, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "nil error", err: nil, expected: "An unexpected error occurred"},
		{name: "expired token", err: auth.ErrExpiredToken, expected: "Token expired"},
		{name: "forbidden", err: domain.ErrForbidden, expected: "You are not allowed to access this city"},
		{name: "city not found", err: service.ErrCityNotFound, expected: "City not found"},
		{name: "store point not found", err: store.ErrPointOfInterestNotFound, expected: "Point of interest not found"},
		{name: "validation", err: domain.NewValidationError("name", "is required"), expected: "Validation failed"},
		{name: "invalid patch", err: invalidPatch("patch", "bad"), expected: "Invalid patch document"},
		{
			name:     "internal details are hidden",
			err:      errors.New("pq: password authentication failed for user cityinfo"),
			expected: "An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetSafeErrorMessage(tt.err))
		})
	}
}

func TestHandleAPIError(t *testing.T) {
	t.Run("validation errors carry fields", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/", nil)

		errs := &domain.ValidationErrors{}
		errs.Add("name", "is required")
		errs.Add("description", "must be at most 200 characters")
		HandleAPIError(rr, req, errs, "ignored for client errors")

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		var body struct {
			Error  string              `json:"error"`
			Fields map[string][]string `json:"fields"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, "Validation failed", body.Error)
		assert.Equal(t, []string{"is required"}, body.Fields["name"])
		assert.Equal(t, []string{"must be at most 200 characters"}, body.Fields["description"])
	})

	t.Run("server errors use the caller message", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)

		HandleAPIError(rr, req, errors.New("dial tcp 10.0.0.5:5432: connection refused"), "Failed to list cities")

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.NotContains(t, rr.Body.String(), "10.0.0.5")
		assert.Contains(t, rr.Body.String(), "Failed to list cities")
	})

	t.Run("not found is never masked", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)

		HandleAPIError(rr, req, service.ErrPointOfInterestNotFound, "Failed to get point of interest")

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Contains(t, rr.Body.String(), "Point of interest not found")
	})
}
