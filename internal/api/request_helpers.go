package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/cityinfo-api/internal/domain"
)

// Route parameter names shared by the handlers and the router.
const (
	CityIDParam            = "cityId"
	PointOfInterestIDParam = "pointOfInterestId"
)

// getPathID extracts a positive integer identifier from the URL path parameters.
//
// Returns:
//   - (id, nil): The parsed identifier if valid
//   - (0, error): An error wrapping domain.ErrInvalidID if the parameter is missing or malformed
func getPathID(r *http.Request, paramName string) (int64, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return 0, invalidID(paramName, "is required")
	}

	id, err := strconv.ParseInt(pathParam, 10, 64)
	if err != nil || id < 1 {
		return 0, invalidID(paramName, "must be a positive integer")
	}

	return id, nil
}

// getCityAndPointIDs extracts both identifiers of a point-of-interest route.
func getCityAndPointIDs(r *http.Request) (int64, int64, error) {
	cityID, err := getPathID(r, CityIDParam)
	if err != nil {
		return 0, 0, err
	}
	pointID, err := getPathID(r, PointOfInterestIDParam)
	if err != nil {
		return 0, 0, err
	}
	return cityID, pointID, nil
}

// getQueryInt parses an optional integer query parameter, returning def when absent.
func getQueryInt(r *http.Request, name string, def int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.NewValidationError(name, "must be an integer")
	}
	return v, nil
}

// getQueryBool parses an optional boolean query parameter, returning def when absent.
func getQueryBool(r *http.Request, name string, def bool) (bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def, nil
	}

	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, domain.NewValidationError(name, "must be true or false")
	}
	return v, nil
}

func invalidID(field, message string) error {
	return fmt.Errorf("%w: %w", domain.ErrInvalidID, domain.NewValidationError(field, message))
}
