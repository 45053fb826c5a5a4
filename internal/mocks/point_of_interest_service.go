package mocks

import (
	"context"

	"github.com/phrazzld/cityinfo-api/internal/domain"
	"github.com/phrazzld/cityinfo-api/internal/service"
)

// MockPointOfInterestService implements service.PointOfInterestService for testing
type MockPointOfInterestService struct {
	ListPointsOfInterestFn  func(ctx context.Context, cityID int64) ([]domain.PointOfInterest, error)
	GetPointOfInterestFn    func(ctx context.Context, cityID, pointOfInterestID int64) (*domain.PointOfInterest, error)
	CreatePointOfInterestFn func(ctx context.Context, cityID int64, name, description string) (*domain.PointOfInterest, error)
	UpdatePointOfInterestFn func(ctx context.Context, cityID, pointOfInterestID int64, name, description string) error
	PatchPointOfInterestFn  func(
		ctx context.Context,
		cityID, pointOfInterestID int64,
		patch domain.PointOfInterestPatch,
	) (*domain.PointOfInterest, error)
	DeletePointOfInterestFn func(ctx context.Context, cityID, pointOfInterestID int64) error

	// Calls counts invocations by method name.
	Calls map[string]int
}

var _ service.PointOfInterestService = (*MockPointOfInterestService)(nil)

func (m *MockPointOfInterestService) record(method string) {
	if m.Calls == nil {
		m.Calls = make(map[string]int)
	}
	m.Calls[method]++
}

// ListPointsOfInterest implements service.PointOfInterestService
func (m *MockPointOfInterestService) ListPointsOfInterest(
	ctx context.Context,
	cityID int64,
) ([]domain.PointOfInterest, error) {
	m.record("ListPointsOfInterest")
	if m.ListPointsOfInterestFn != nil {
		return m.ListPointsOfInterestFn(ctx, cityID)
	}
	return nil, nil
}

// GetPointOfInterest implements service.PointOfInterestService
func (m *MockPointOfInterestService) GetPointOfInterest(
	ctx context.Context,
	cityID, pointOfInterestID int64,
) (*domain.PointOfInterest, error) {
	m.record("GetPointOfInterest")
	if m.GetPointOfInterestFn != nil {
		return m.GetPointOfInterestFn(ctx, cityID, pointOfInterestID)
	}
	return nil, service.ErrPointOfInterestNotFound
}

// CreatePointOfInterest implements service.PointOfInterestService
func (m *MockPointOfInterestService) CreatePointOfInterest(
	ctx context.Context,
	cityID int64,
	name, description string,
) (*domain.PointOfInterest, error) {
	m.record("CreatePointOfInterest")
	if m.CreatePointOfInterestFn != nil {
		return m.CreatePointOfInterestFn(ctx, cityID, name, description)
	}
	return &domain.PointOfInterest{ID: 1, CityID: cityID, Name: name, Description: description}, nil
}

// UpdatePointOfInterest implements service.PointOfInterestService
func (m *MockPointOfInterestService) UpdatePointOfInterest(
	ctx context.Context,
	cityID, pointOfInterestID int64,
	name, description string,
) error {
	m.record("UpdatePointOfInterest")
	if m.UpdatePointOfInterestFn != nil {
		return m.UpdatePointOfInterestFn(ctx, cityID, pointOfInterestID, name, description)
	}
	return nil
}

// PatchPointOfInterest implements service.PointOfInterestService
func (m *MockPointOfInterestService) PatchPointOfInterest(
	ctx context.Context,
	cityID, pointOfInterestID int64,
	patch domain.PointOfInterestPatch,
) (*domain.PointOfInterest, error) {
	m.record("PatchPointOfInterest")
	if m.PatchPointOfInterestFn != nil {
		return m.PatchPointOfInterestFn(ctx, cityID, pointOfInterestID, patch)
	}
	return &domain.PointOfInterest{ID: pointOfInterestID, CityID: cityID}, nil
}

// DeletePointOfInterest implements service.PointOfInterestService
func (m *MockPointOfInterestService) DeletePointOfInterest(
	ctx context.Context,
	cityID, pointOfInterestID int64,
) error {
	m.record("DeletePointOfInterest")
	if m.DeletePointOfInterestFn != nil {
		return m.DeletePointOfInterestFn(ctx, cityID, pointOfInterestID)
	}
	return nil
}
