package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/cityinfo-api/internal/domain"
	"github.com/phrazzld/cityinfo-api/internal/notify"
	"github.com/phrazzld/cityinfo-api/internal/platform/logger"
	"github.com/phrazzld/cityinfo-api/internal/redact"
	"github.com/phrazzld/cityinfo-api/internal/store"
)

// PointOfInterestDeletedSubject is the subject of the notification raised
// when a point of interest is deleted.
const PointOfInterestDeletedSubject = "Point of interest deleted."

// PointOfInterestService provides city-scoped point-of-interest operations.
// Every method reports ErrCityNotFound before ErrPointOfInterestNotFound.
type PointOfInterestService interface {
	// ListPointsOfInterest returns the city's points ordered by id.
	ListPointsOfInterest(ctx context.Context, cityID int64) ([]domain.PointOfInterest, error)

	// GetPointOfInterest returns a point only if it belongs to the city.
	GetPointOfInterest(ctx context.Context, cityID, pointOfInterestID int64) (*domain.PointOfInterest, error)

	// CreatePointOfInterest validates and stores a new point, returning it with its id.
	CreatePointOfInterest(ctx context.Context, cityID int64, name, description string) (*domain.PointOfInterest, error)

	// UpdatePointOfInterest fully replaces the point's name and description.
	UpdatePointOfInterest(ctx context.Context, cityID, pointOfInterestID int64, name, description string) error

	// PatchPointOfInterest applies only the supplied fields. On a validation
	// failure the stored point is left unchanged.
	PatchPointOfInterest(
		ctx context.Context,
		cityID, pointOfInterestID int64,
		patch domain.PointOfInterestPatch,
	) (*domain.PointOfInterest, error)

	// DeletePointOfInterest removes the point and then sends one notification.
	// Notification failures are logged and never returned.
	DeletePointOfInterest(ctx context.Context, cityID, pointOfInterestID int64) error
}

// pointOfInterestServiceImpl implements the PointOfInterestService interface
type pointOfInterestServiceImpl struct {
	points   store.PointOfInterestStore
	notifier notify.Notifier
	logger   *slog.Logger
}

// NewPointOfInterestService creates a new PointOfInterestService
// It returns an error if any of the required dependencies are nil.
func NewPointOfInterestService(
	points store.PointOfInterestStore,
	notifier notify.Notifier,
	logger *slog.Logger,
) (PointOfInterestService, error) {
	if points == nil {
		return nil, &ServiceError{
			Service:   "point_of_interest",
			Operation: "create_service",
			Message:   "point of interest store cannot be nil",
		}
	}
	if notifier == nil {
		return nil, &ServiceError{
			Service:   "point_of_interest",
			Operation: "create_service",
			Message:   "notifier cannot be nil",
		}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &pointOfInterestServiceImpl{
		points:   points,
		notifier: notifier,
		logger:   logger.With(slog.String("component", "point_of_interest_service")),
	}, nil
}

func (s *pointOfInterestServiceImpl) wrap(ctx context.Context, operation, message string, err error, attrs ...any) error {
	mapped := NewServiceError("point_of_interest", operation, message, err)
	if _, unexpected := mapped.(*ServiceError); unexpected {
		logger.FromContextOrDefault(ctx, s.logger).Error(message, append(attrs, slog.String("error", redact.Error(err)))...)
	}
	return mapped
}

// ListPointsOfInterest implements PointOfInterestService.ListPointsOfInterest
func (s *pointOfInterestServiceImpl) ListPointsOfInterest(
	ctx context.Context,
	cityID int64,
) ([]domain.PointOfInterest, error) {
	points, err := s.points.ListPointsOfInterest(ctx, cityID)
	if err != nil {
		return nil, s.wrap(ctx, "list_points_of_interest", "failed to list points of interest", err,
			slog.Int64("city_id", cityID))
	}
	return points, nil
}

// GetPointOfInterest implements PointOfInterestService.GetPointOfInterest
func (s *pointOfInterestServiceImpl) GetPointOfInterest(
	ctx context.Context,
	cityID, pointOfInterestID int64,
) (*domain.PointOfInterest, error) {
	poi, err := s.points.GetPointOfInterest(ctx, cityID, pointOfInterestID)
	if err != nil {
		return nil, s.wrap(ctx, "get_point_of_interest", "failed to get point of interest", err,
			slog.Int64("city_id", cityID),
			slog.Int64("point_of_interest_id", pointOfInterestID))
	}
	return poi, nil
}

// CreatePointOfInterest implements PointOfInterestService.CreatePointOfInterest
func (s *pointOfInterestServiceImpl) CreatePointOfInterest(
	ctx context.Context,
	cityID int64,
	name, description string,
) (*domain.PointOfInterest, error) {
	poi, err := domain.NewPointOfInterest(cityID, name, description)
	if err != nil {
		return nil, err
	}

	if err := s.points.CreatePointOfInterest(ctx, poi); err != nil {
		return nil, s.wrap(ctx, "create_point_of_interest", "failed to create point of interest", err,
			slog.Int64("city_id", cityID))
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("point of interest created",
		slog.Int64("city_id", cityID),
		slog.Int64("point_of_interest_id", poi.ID))
	return poi, nil
}

// UpdatePointOfInterest implements PointOfInterestService.UpdatePointOfInterest
func (s *pointOfInterestServiceImpl) UpdatePointOfInterest(
	ctx context.Context,
	cityID, pointOfInterestID int64,
	name, description string,
) error {
	poi := &domain.PointOfInterest{
		ID:          pointOfInterestID,
		CityID:      cityID,
		Name:        name,
		Description: description,
	}
	if err := poi.Validate(); err != nil {
		return err
	}

	if err := s.points.UpdatePointOfInterest(ctx, poi); err != nil {
		return s.wrap(ctx, "update_point_of_interest", "failed to update point of interest", err,
			slog.Int64("city_id", cityID),
			slog.Int64("point_of_interest_id", pointOfInterestID))
	}
	return nil
}

// PatchPointOfInterest implements PointOfInterestService.PatchPointOfInterest
func (s *pointOfInterestServiceImpl) PatchPointOfInterest(
	ctx context.Context,
	cityID, pointOfInterestID int64,
	patch domain.PointOfInterestPatch,
) (*domain.PointOfInterest, error) {
	poi, err := s.points.PatchPointOfInterest(ctx, cityID, pointOfInterestID, patch)
	if err != nil {
		return nil, s.wrap(ctx, "patch_point_of_interest", "failed to patch point of interest", err,
			slog.Int64("city_id", cityID),
			slog.Int64("point_of_interest_id", pointOfInterestID))
	}
	return poi, nil
}

// DeletePointOfInterest implements PointOfInterestService.DeletePointOfInterest
func (s *pointOfInterestServiceImpl) DeletePointOfInterest(
	ctx context.Context,
	cityID, pointOfInterestID int64,
) error {
	deleted, err := s.points.DeletePointOfInterest(ctx, cityID, pointOfInterestID)
	if err != nil {
		return s.wrap(ctx, "delete_point_of_interest", "failed to delete point of interest", err,
			slog.Int64("city_id", cityID),
			slog.Int64("point_of_interest_id", pointOfInterestID))
	}

	log := logger.FromContextOrDefault(ctx, s.logger)
	log.Info("point of interest deleted",
		slog.Int64("city_id", cityID),
		slog.Int64("point_of_interest_id", deleted.ID))

	// The delete is already committed; a cancelled request must not suppress the notification.
	message := fmt.Sprintf("Point of interest %s with id %d was deleted.", deleted.Name, deleted.ID)
	if err := s.notify(context.WithoutCancel(ctx), PointOfInterestDeletedSubject, message); err != nil {
		log.Warn("failed to send deletion notification",
			slog.String("error", redact.Error(err)),
			slog.Int64("point_of_interest_id", deleted.ID))
	}

	return nil
}

// notify delivers through the notifier, turning a notifier panic into an
// error so a committed change is never reported as failed.
func (s *pointOfInterestServiceImpl) notify(ctx context.Context, subject, message string) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("notifier panicked: %v", p)
		}
	}()
	return s.notifier.Send(ctx, subject, message)
}
