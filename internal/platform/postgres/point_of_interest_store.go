package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/phrazzld/cityinfo-api/internal/domain"
	"github.com/phrazzld/cityinfo-api/internal/platform/logger"
	"github.com/phrazzld/cityinfo-api/internal/redact"
	"github.com/phrazzld/cityinfo-api/internal/store"
)

const (
	listPointsOfInterestQuery = `SELECT id, city_id, name, description FROM points_of_interest WHERE city_id = $1 ORDER BY id`

	getPointOfInterestQuery = `SELECT id, city_id, name, description FROM points_of_interest WHERE id = $1 AND city_id = $2`

	lockPointOfInterestQuery = getPointOfInterestQuery + ` FOR UPDATE`

	insertPointOfInterestQuery = `INSERT INTO points_of_interest (city_id, name, description) VALUES ($1, $2, $3) RETURNING id`

	updatePointOfInterestQuery = `UPDATE points_of_interest SET name = $1, description = $2 WHERE id = $3 AND city_id = $4`

	deletePointOfInterestQuery = `DELETE FROM points_of_interest WHERE id = $1 AND city_id = $2 RETURNING id, city_id, name, description`
)

// PostgresPointOfInterestStore implements the store.PointOfInterestStore interface
// using a PostgreSQL database as the storage backend.
type PostgresPointOfInterestStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresPointOfInterestStore creates a new PostgreSQL implementation of the
// PointOfInterestStore interface. When db is already a transaction, multi-statement
// operations run inside it instead of opening their own.
// If logger is nil, a default logger will be used.
func NewPostgresPointOfInterestStore(db store.DBTX, logger *slog.Logger) *PostgresPointOfInterestStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresPointOfInterestStore{
		db:     db,
		logger: logger.With(slog.String("component", "point_of_interest_store")),
	}
}

// Ensure PostgresPointOfInterestStore implements store.PointOfInterestStore interface
var _ store.PointOfInterestStore = (*PostgresPointOfInterestStore)(nil)

// ListPointsOfInterest implements store.PointOfInterestStore.ListPointsOfInterest
func (s *PostgresPointOfInterestStore) ListPointsOfInterest(
	ctx context.Context,
	cityID int64,
) ([]domain.PointOfInterest, error) {
	exists, err := cityExists(ctx, s.db, cityID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, store.ErrCityNotFound
	}

	return queryPointsOfInterest(ctx, s.db, cityID)
}

// GetPointOfInterest implements store.PointOfInterestStore.GetPointOfInterest
func (s *PostgresPointOfInterestStore) GetPointOfInterest(
	ctx context.Context,
	cityID, pointOfInterestID int64,
) (*domain.PointOfInterest, error) {
	poi, err := scanPointOfInterest(s.db.QueryRowContext(ctx, getPointOfInterestQuery, pointOfInterestID, cityID))
	if err == nil {
		return poi, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get point of interest",
			slog.Int64("city_id", cityID),
			slog.Int64("point_of_interest_id", pointOfInterestID),
			slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError("point_of_interest", "get", "failed to query point of interest", MapError(err))
	}

	return nil, s.missingPointError(ctx, s.db, cityID)
}

// CreatePointOfInterest implements store.PointOfInterestStore.CreatePointOfInterest
func (s *PostgresPointOfInterestStore) CreatePointOfInterest(ctx context.Context, poi *domain.PointOfInterest) error {
	if err := poi.Validate(); err != nil {
		return err
	}

	var id int64
	err := s.db.QueryRowContext(ctx, insertPointOfInterestQuery, poi.CityID, poi.Name, poi.Description).Scan(&id)
	if err != nil {
		mapped := MapError(err)
		if errors.Is(mapped, store.ErrCityNotFound) {
			return store.ErrCityNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to insert point of interest",
			slog.Int64("city_id", poi.CityID),
			slog.String("error", redact.Error(err)))
		return store.NewStoreError("point_of_interest", "create", "failed to insert point of interest", mapped)
	}

	poi.ID = id
	return nil
}

// UpdatePointOfInterest implements store.PointOfInterestStore.UpdatePointOfInterest
func (s *PostgresPointOfInterestStore) UpdatePointOfInterest(ctx context.Context, poi *domain.PointOfInterest) error {
	if err := poi.Validate(); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, updatePointOfInterestQuery, poi.Name, poi.Description, poi.ID, poi.CityID)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to update point of interest",
			slog.Int64("point_of_interest_id", poi.ID),
			slog.String("error", redact.Error(err)))
		return store.NewStoreError("point_of_interest", "update", "failed to update point of interest", MapError(err))
	}

	if err := CheckRowsAffected(result, store.ErrPointOfInterestNotFound); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return s.missingPointError(ctx, s.db, poi.CityID)
		}
		return store.NewStoreError("point_of_interest", "update", "failed to check update", err)
	}
	return nil
}

// PatchPointOfInterest implements store.PointOfInterestStore.PatchPointOfInterest.
// The row is locked with SELECT ... FOR UPDATE so concurrent patches serialize,
// and only the columns named by the patch are written.
func (s *PostgresPointOfInterestStore) PatchPointOfInterest(
	ctx context.Context,
	cityID, pointOfInterestID int64,
	patch domain.PointOfInterestPatch,
) (*domain.PointOfInterest, error) {
	var patched domain.PointOfInterest

	apply := func(ctx context.Context, db store.DBTX) error {
		current, err := scanPointOfInterest(db.QueryRowContext(ctx, lockPointOfInterestQuery, pointOfInterestID, cityID))
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return s.missingPointError(ctx, db, cityID)
			}
			return store.NewStoreError("point_of_interest", "patch", "failed to load point of interest", MapError(err))
		}

		patched, err = patch.ApplyTo(*current)
		if err != nil {
			return err
		}
		if patch.IsEmpty() {
			return nil
		}

		update := psql.Update("points_of_interest").
			Where("id = ? AND city_id = ?", pointOfInterestID, cityID)
		if patch.Name != nil {
			update = update.Set("name", patched.Name)
		}
		if patch.Description != nil {
			update = update.Set("description", patched.Description)
		}

		query, args, err := update.ToSql()
		if err != nil {
			return store.NewStoreError("point_of_interest", "patch", "failed to build update", err)
		}
		if _, err := db.ExecContext(ctx, query, args...); err != nil {
			return store.NewStoreError("point_of_interest", "patch", "failed to update point of interest", MapError(err))
		}
		return nil
	}

	if err := store.RunInTransaction(ctx, s.db, apply); err != nil {
		return nil, err
	}

	return &patched, nil
}

// DeletePointOfInterest implements store.PointOfInterestStore.DeletePointOfInterest
func (s *PostgresPointOfInterestStore) DeletePointOfInterest(
	ctx context.Context,
	cityID, pointOfInterestID int64,
) (*domain.PointOfInterest, error) {
	poi, err := scanPointOfInterest(s.db.QueryRowContext(ctx, deletePointOfInterestQuery, pointOfInterestID, cityID))
	if err == nil {
		return poi, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to delete point of interest",
			slog.Int64("point_of_interest_id", pointOfInterestID),
			slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError("point_of_interest", "delete", "failed to delete point of interest", MapError(err))
	}

	return nil, s.missingPointError(ctx, s.db, cityID)
}

// missingPointError tells a missing city apart from a point that is absent
// from an existing city.
func (s *PostgresPointOfInterestStore) missingPointError(ctx context.Context, db store.DBTX, cityID int64) error {
	exists, err := cityExists(ctx, db, cityID)
	if err != nil {
		return err
	}
	if !exists {
		return store.ErrCityNotFound
	}
	return store.ErrPointOfInterestNotFound
}

func queryPointsOfInterest(ctx context.Context, db store.DBTX, cityID int64) ([]domain.PointOfInterest, error) {
	rows, err := db.QueryContext(ctx, listPointsOfInterestQuery, cityID)
	if err != nil {
		return nil, store.NewStoreError("point_of_interest", "list", "failed to query points of interest", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	points := []domain.PointOfInterest{}
	for rows.Next() {
		var p domain.PointOfInterest
		if err := rows.Scan(&p.ID, &p.CityID, &p.Name, &p.Description); err != nil {
			return nil, store.NewStoreError("point_of_interest", "list", "failed to scan point of interest", err)
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("point_of_interest", "list", "failed to iterate points of interest", err)
	}
	return points, nil
}

func scanPointOfInterest(row *sql.Row) (*domain.PointOfInterest, error) {
	var p domain.PointOfInterest
	if err := row.Scan(&p.ID, &p.CityID, &p.Name, &p.Description); err != nil {
		return nil, err
	}
	return &p, nil
}
