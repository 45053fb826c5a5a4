package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/phrazzld/cityinfo-api/internal/store"
)

// Store combines the PostgreSQL city and point-of-interest stores into a
// single store.Store backed by one connection pool.
type Store struct {
	*PostgresCityStore
	*PostgresPointOfInterestStore
	db *sql.DB
}

// NewStore creates a store.Store over db.
// If logger is nil, a default logger will be used.
func NewStore(db *sql.DB, logger *slog.Logger) *Store {
	if db == nil {
		panic("db cannot be nil")
	}

	return &Store{
		PostgresCityStore:            NewPostgresCityStore(db, logger),
		PostgresPointOfInterestStore: NewPostgresPointOfInterestStore(db, logger),
		db:                           db,
	}
}

// Ensure Store implements store.Store interface
var _ store.Store = (*Store)(nil)

// Ping implements store.Store.Ping
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
