package mocks

import (
	"context"

	"github.com/phrazzld/cityinfo-api/internal/domain"
	"github.com/phrazzld/cityinfo-api/internal/service"
)

// MockCityService implements service.CityService for testing
type MockCityService struct {
	ListCitiesFn            func(ctx context.Context, query domain.CityQuery) ([]domain.City, domain.PaginationMetadata, error)
	GetCityFn               func(ctx context.Context, id int64, includePointsOfInterest bool) (*domain.City, error)
	CityExistsFn            func(ctx context.Context, id int64) (bool, error)
	CityNameMatchesCityIDFn func(ctx context.Context, name string, id int64) (bool, error)

	// LastQuery records the query passed to ListCities.
	LastQuery domain.CityQuery
}

var _ service.CityService = (*MockCityService)(nil)

// ListCities implements service.CityService
func (m *MockCityService) ListCities(
	ctx context.Context,
	query domain.CityQuery,
) ([]domain.City, domain.PaginationMetadata, error) {
	m.LastQuery = query
	if m.ListCitiesFn != nil {
		return m.ListCitiesFn(ctx, query)
	}
	return nil, domain.PaginationMetadata{}, nil
}

// GetCity implements service.CityService
func (m *MockCityService) GetCity(ctx context.Context, id int64, includePointsOfInterest bool) (*domain.City, error) {
	if m.GetCityFn != nil {
		return m.GetCityFn(ctx, id, includePointsOfInterest)
	}
	return nil, service.ErrCityNotFound
}

// CityExists implements service.CityService
func (m *MockCityService) CityExists(ctx context.Context, id int64) (bool, error) {
	if m.CityExistsFn != nil {
		return m.CityExistsFn(ctx, id)
	}
	return false, nil
}

// CityNameMatchesCityID implements service.CityService
func (m *MockCityService) CityNameMatchesCityID(ctx context.Context, name string, id int64) (bool, error) {
	if m.CityNameMatchesCityIDFn != nil {
		return m.CityNameMatchesCityIDFn(ctx, name, id)
	}
	return false, nil
}
