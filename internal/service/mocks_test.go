package service

import (
	"context"

	"github.com/phrazzld/cityinfo-api/internal/domain"
	"github.com/stretchr/testify/mock"
)

// MockCityStore mocks the store.CityStore interface
type MockCityStore struct {
	mock.Mock
}

func (m *MockCityStore) ListCities(
	ctx context.Context,
	query domain.CityQuery,
) ([]domain.City, domain.PaginationMetadata, error) {
	args := m.Called(ctx, query)
	cities, _ := args.Get(0).([]domain.City)
	return cities, args.Get(1).(domain.PaginationMetadata), args.Error(2)
}

func (m *MockCityStore) GetCity(ctx context.Context, id int64, includePointsOfInterest bool) (*domain.City, error) {
	args := m.Called(ctx, id, includePointsOfInterest)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.City), args.Error(1)
}

func (m *MockCityStore) CityExists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockCityStore) CityNameMatchesCityID(ctx context.Context, name string, id int64) (bool, error) {
	args := m.Called(ctx, name, id)
	return args.Bool(0), args.Error(1)
}

// MockPointOfInterestStore mocks the store.PointOfInterestStore interface
type MockPointOfInterestStore struct {
	mock.Mock
}

func (m *MockPointOfInterestStore) ListPointsOfInterest(
	ctx context.Context,
	cityID int64,
) ([]domain.PointOfInterest, error) {
	args := m.Called(ctx, cityID)
	points, _ := args.Get(0).([]domain.PointOfInterest)
	return points, args.Error(1)
}

func (m *MockPointOfInterestStore) GetPointOfInterest(
	ctx context.Context,
	cityID, pointOfInterestID int64,
) (*domain.PointOfInterest, error) {
	args := m.Called(ctx, cityID, pointOfInterestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PointOfInterest), args.Error(1)
}

func (m *MockPointOfInterestStore) CreatePointOfInterest(ctx context.Context, poi *domain.PointOfInterest) error {
	args := m.Called(ctx, poi)
	return args.Error(0)
}

func (m *MockPointOfInterestStore) UpdatePointOfInterest(ctx context.Context, poi *domain.PointOfInterest) error {
	args := m.Called(ctx, poi)
	return args.Error(0)
}

func (m *MockPointOfInterestStore) PatchPointOfInterest(
	ctx context.Context,
	cityID, pointOfInterestID int64,
	patch domain.PointOfInterestPatch,
) (*domain.PointOfInterest, error) {
	args := m.Called(ctx, cityID, pointOfInterestID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PointOfInterest), args.Error(1)
}

func (m *MockPointOfInterestStore) DeletePointOfInterest(
	ctx context.Context,
	cityID, pointOfInterestID int64,
) (*domain.PointOfInterest, error) {
	args := m.Called(ctx, cityID, pointOfInterestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PointOfInterest), args.Error(1)
}

// MockNotifier mocks the notify.Notifier interface
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Send(ctx context.Context, subject, message string) error {
	args := m.Called(ctx, subject, message)
	return args.Error(0)
}
