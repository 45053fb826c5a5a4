package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/phrazzld/cityinfo-api/internal/domain"
	"github.com/phrazzld/cityinfo-api/internal/platform/logger"
	"github.com/phrazzld/cityinfo-api/internal/redact"
	"github.com/phrazzld/cityinfo-api/internal/store"
)

// CityService provides city-related operations
type CityService interface {
	// ListCities returns one page of cities matching the query. Blank filters
	// are ignored and the page size is clamped to domain.MaxCitiesPageSize.
	// Returns a validation error if the page number or size is below 1.
	ListCities(ctx context.Context, query domain.CityQuery) ([]domain.City, domain.PaginationMetadata, error)

	// GetCity retrieves a city, with its points of interest when requested.
	// Returns ErrCityNotFound if the city does not exist.
	GetCity(ctx context.Context, id int64, includePointsOfInterest bool) (*domain.City, error)

	// CityExists reports whether the city exists.
	CityExists(ctx context.Context, id int64) (bool, error)

	// CityNameMatchesCityID reports whether the city with the given id is named name.
	CityNameMatchesCityID(ctx context.Context, name string, id int64) (bool, error)
}

// cityServiceImpl implements the CityService interface
type cityServiceImpl struct {
	cities store.CityStore
	logger *slog.Logger
}

// NewCityService creates a new CityService
// It returns an error if the store is nil.
func NewCityService(cities store.CityStore, logger *slog.Logger) (CityService, error) {
	if cities == nil {
		return nil, &ServiceError{
			Service:   "city",
			Operation: "create_service",
			Message:   "city store cannot be nil",
		}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &cityServiceImpl{
		cities: cities,
		logger: logger.With(slog.String("component", "city_service")),
	}, nil
}

// NormalizeCityQuery trims the filters and clamps the page size.
// The window is not validated here.
func NormalizeCityQuery(query domain.CityQuery) domain.CityQuery {
	query.Name = strings.TrimSpace(query.Name)
	query.SearchQuery = strings.TrimSpace(query.SearchQuery)
	if query.PageSize > domain.MaxCitiesPageSize {
		query.PageSize = domain.MaxCitiesPageSize
	}
	return query
}

// ListCities implements CityService.ListCities
func (s *cityServiceImpl) ListCities(
	ctx context.Context,
	query domain.CityQuery,
) ([]domain.City, domain.PaginationMetadata, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query = NormalizeCityQuery(query)
	if err := query.Validate(); err != nil {
		return nil, domain.PaginationMetadata{}, err
	}

	cities, metadata, err := s.cities.ListCities(ctx, query)
	if err != nil {
		log.Error("failed to list cities",
			slog.String("error", redact.Error(err)),
			slog.String("name", query.Name),
			slog.String("search_query", query.SearchQuery))
		return nil, domain.PaginationMetadata{}, NewServiceError("city", "list_cities", "failed to list cities", err)
	}

	return cities, metadata, nil
}

// GetCity implements CityService.GetCity
func (s *cityServiceImpl) GetCity(ctx context.Context, id int64, includePointsOfInterest bool) (*domain.City, error) {
	city, err := s.cities.GetCity(ctx, id, includePointsOfInterest)
	if err != nil {
		if !store.IsNotFoundError(err) {
			logger.FromContextOrDefault(ctx, s.logger).Error("failed to get city",
				slog.String("error", redact.Error(err)),
				slog.Int64("city_id", id))
		}
		return nil, NewServiceError("city", "get_city", "failed to get city", err)
	}
	return city, nil
}

// CityExists implements CityService.CityExists
func (s *cityServiceImpl) CityExists(ctx context.Context, id int64) (bool, error) {
	exists, err := s.cities.CityExists(ctx, id)
	if err != nil {
		return false, NewServiceError("city", "city_exists", "failed to check city", err)
	}
	return exists, nil
}

// CityNameMatchesCityID implements CityService.CityNameMatchesCityID
func (s *cityServiceImpl) CityNameMatchesCityID(ctx context.Context, name string, id int64) (bool, error) {
	matches, err := s.cities.CityNameMatchesCityID(ctx, name, id)
	if err != nil {
		return false, NewServiceError("city", "match_city_name", "failed to compare city name", err)
	}
	return matches, nil
}
