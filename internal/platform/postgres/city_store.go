package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/phrazzld/cityinfo-api/internal/domain"
	"github.com/phrazzld/cityinfo-api/internal/platform/logger"
	"github.com/phrazzld/cityinfo-api/internal/redact"
	"github.com/phrazzld/cityinfo-api/internal/store"
)

// psql builds statements with PostgreSQL's $n placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const (
	getCityQuery = `SELECT id, name, description FROM cities WHERE id = $1`

	cityExistsQuery = `SELECT EXISTS(SELECT 1 FROM cities WHERE id = $1)`

	cityNameMatchesQuery = `SELECT EXISTS(SELECT 1 FROM cities WHERE id = $1 AND name = $2)`
)

// PostgresCityStore implements the store.CityStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCityStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCityStore creates a new PostgreSQL implementation of the CityStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresCityStore(db store.DBTX, logger *slog.Logger) *PostgresCityStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCityStore{
		db:     db,
		logger: logger.With(slog.String("component", "city_store")),
	}
}

// Ensure PostgresCityStore implements store.CityStore interface
var _ store.CityStore = (*PostgresCityStore)(nil)

// buildCityFilter returns a SELECT over cities restricted by the query's
// non-blank filters. Columns are added by the caller.
func buildCityFilter(query domain.CityQuery) sq.SelectBuilder {
	builder := psql.Select().From("cities")

	if name := strings.TrimSpace(query.Name); name != "" {
		builder = builder.Where(sq.Eq{"name": name})
	}
	if search := strings.TrimSpace(query.SearchQuery); search != "" {
		// strpos keeps the match case-sensitive and treats % and _ literally.
		builder = builder.Where(sq.Or{
			sq.Expr("strpos(name, ?) > 0", search),
			sq.Expr("strpos(description, ?) > 0", search),
		})
	}

	return builder
}

// ListCities implements store.CityStore.ListCities.
// Names sort bytewise (COLLATE "C") whatever the database collation is.
// The count and the page are read with the same filter; the count is
// taken first so an empty page past the end still reports the total.
func (s *PostgresCityStore) ListCities(
	ctx context.Context,
	query domain.CityQuery,
) ([]domain.City, domain.PaginationMetadata, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	filter := buildCityFilter(query)

	countSQL, countArgs, err := filter.Columns("COUNT(*)").ToSql()
	if err != nil {
		return nil, domain.PaginationMetadata{}, store.NewStoreError("city", "list", "failed to build count query", err)
	}

	var total int
	if err := s.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		log.Error("failed to count cities", slog.String("error", redact.Error(err)))
		return nil, domain.PaginationMetadata{}, store.NewStoreError("city", "list", "failed to count cities", MapError(err))
	}

	metadata := domain.NewPaginationMetadata(total, query.PageSize, query.PageNumber)
	if query.PageSize < 1 || query.Offset() >= total {
		return []domain.City{}, metadata, nil
	}

	listSQL, listArgs, err := filter.
		Columns("id", "name", "description").
		OrderBy(`name COLLATE "C"`, "id").
		Suffix("LIMIT ? OFFSET ?", query.PageSize, query.Offset()).
		ToSql()
	if err != nil {
		return nil, domain.PaginationMetadata{}, store.NewStoreError("city", "list", "failed to build list query", err)
	}

	rows, err := s.db.QueryContext(ctx, listSQL, listArgs...)
	if err != nil {
		log.Error("failed to list cities", slog.String("error", redact.Error(err)))
		return nil, domain.PaginationMetadata{}, store.NewStoreError("city", "list", "failed to query cities", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	cities := make([]domain.City, 0, query.PageSize)
	for rows.Next() {
		var c domain.City
		if err := rows.Scan(&c.ID, &c.Name, &c.Description); err != nil {
			return nil, domain.PaginationMetadata{}, store.NewStoreError("city", "list", "failed to scan city", err)
		}
		cities = append(cities, c)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.PaginationMetadata{}, store.NewStoreError("city", "list", "failed to iterate cities", err)
	}

	log.Debug("listed cities",
		slog.Int("total", total),
		slog.Int("page_number", query.PageNumber),
		slog.Int("returned", len(cities)))

	return cities, metadata, nil
}

// GetCity implements store.CityStore.GetCity
func (s *PostgresCityStore) GetCity(ctx context.Context, id int64, includePointsOfInterest bool) (*domain.City, error) {
	var c domain.City
	err := s.db.QueryRowContext(ctx, getCityQuery, id).Scan(&c.ID, &c.Name, &c.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrCityNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get city",
			slog.Int64("city_id", id),
			slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError("city", "get", "failed to query city", MapError(err))
	}

	if includePointsOfInterest {
		points, err := queryPointsOfInterest(ctx, s.db, id)
		if err != nil {
			return nil, err
		}
		c.PointsOfInterest = points
	}

	return &c, nil
}

// CityExists implements store.CityStore.CityExists
func (s *PostgresCityStore) CityExists(ctx context.Context, id int64) (bool, error) {
	return cityExists(ctx, s.db, id)
}

// CityNameMatchesCityID implements store.CityStore.CityNameMatchesCityID
func (s *PostgresCityStore) CityNameMatchesCityID(ctx context.Context, name string, id int64) (bool, error) {
	var matches bool
	if err := s.db.QueryRowContext(ctx, cityNameMatchesQuery, id, name).Scan(&matches); err != nil {
		return false, store.NewStoreError("city", "match_name", "failed to compare city name", MapError(err))
	}
	return matches, nil
}

func cityExists(ctx context.Context, db store.DBTX, id int64) (bool, error) {
	var exists bool
	if err := db.QueryRowContext(ctx, cityExistsQuery, id).Scan(&exists); err != nil {
		return false, store.NewStoreError("city", "exists", "failed to check city", MapError(err))
	}
	return exists, nil
}
