package postgres

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/cityinfo-api/internal/domain"
	"github.com/phrazzld/cityinfo-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var poiColumns = []string{"id", "city_id", "name", "description"}

func strPtr(s string) *string { return &s }

func TestNewPostgresPointOfInterestStore(t *testing.T) {
	assert.Panics(t, func() { NewPostgresPointOfInterestStore(nil, nil) })

	db, _ := newMockDB(t)
	s := NewPostgresPointOfInterestStore(db, nil)
	assert.NotNil(t, s.logger)
	assert.Same(t, db, s.db)
}

func TestPostgresPointOfInterestStore_List(t *testing.T) {
	ctx := context.Background()

	t.Run("city missing", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresPointOfInterestStore(db, nil)

		mock.ExpectQuery(regexp.QuoteMeta(cityExistsQuery)).WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		_, err := s.ListPointsOfInterest(ctx, 7)
		assert.ErrorIs(t, err, store.ErrCityNotFound)
	})

	t.Run("empty city yields empty slice", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresPointOfInterestStore(db, nil)

		mock.ExpectQuery(regexp.QuoteMeta(cityExistsQuery)).WithArgs(int64(2)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
		mock.ExpectQuery(regexp.QuoteMeta(listPointsOfInterestQuery)).WithArgs(int64(2)).
			WillReturnRows(sqlmock.NewRows(poiColumns))

		points, err := s.ListPointsOfInterest(ctx, 2)
		require.NoError(t, err)
		assert.NotNil(t, points)
		assert.Empty(t, points)
	})
}

func TestPostgresPointOfInterestStore_Get(t *testing.T) {
	ctx := context.Background()
	getSQL := regexp.QuoteMeta(getPointOfInterestQuery)

	t.Run("found", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresPointOfInterestStore(db, nil)

		mock.ExpectQuery(getSQL).WithArgs(int64(2), int64(1)).
			WillReturnRows(sqlmock.NewRows(poiColumns).AddRow(2, 1, "Place 2", ""))

		poi, err := s.GetPointOfInterest(ctx, 1, 2)
		require.NoError(t, err)
		assert.Equal(t, domain.PointOfInterest{ID: 2, CityID: 1, Name: "Place 2"}, *poi)
	})

	t.Run("point belongs to another city", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresPointOfInterestStore(db, nil)

		mock.ExpectQuery(getSQL).WithArgs(int64(2), int64(3)).WillReturnError(sql.ErrNoRows)
		mock.ExpectQuery(regexp.QuoteMeta(cityExistsQuery)).WithArgs(int64(3)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		_, err := s.GetPointOfInterest(ctx, 3, 2)
		assert.ErrorIs(t, err, store.ErrPointOfInterestNotFound)
	})

	t.Run("city missing", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresPointOfInterestStore(db, nil)

		mock.ExpectQuery(getSQL).WithArgs(int64(2), int64(9)).WillReturnError(sql.ErrNoRows)
		mock.ExpectQuery(regexp.QuoteMeta(cityExistsQuery)).WithArgs(int64(9)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		_, err := s.GetPointOfInterest(ctx, 9, 2)
		assert.ErrorIs(t, err, store.ErrCityNotFound)
	})
}

func TestPostgresPointOfInterestStore_Create(t *testing.T) {
	ctx := context.Background()
	insertSQL := regexp.QuoteMeta(insertPointOfInterestQuery)

	t.Run("assigns id", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresPointOfInterestStore(db, nil)

		mock.ExpectQuery(insertSQL).WithArgs(int64(3), "Big Ben", "Clock").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))

		poi := &domain.PointOfInterest{CityID: 3, Name: "Big Ben", Description: "Clock"}
		require.NoError(t, s.CreatePointOfInterest(ctx, poi))
		assert.Equal(t, int64(5), poi.ID)
	})

	t.Run("foreign key violation means the city is missing", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresPointOfInterestStore(db, nil)

		mock.ExpectQuery(insertSQL).
			WillReturnError(&pgconn.PgError{Code: foreignKeyViolationCode, ConstraintName: "points_of_interest_city_id_fkey"})

		err := s.CreatePointOfInterest(ctx, &domain.PointOfInterest{CityID: 99, Name: "x"})
		assert.ErrorIs(t, err, store.ErrCityNotFound)
	})

	t.Run("invalid point never reaches the database", func(t *testing.T) {
		db, _ := newMockDB(t)
		s := NewPostgresPointOfInterestStore(db, nil)

		err := s.CreatePointOfInterest(ctx, &domain.PointOfInterest{CityID: 1, Name: " "})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestPostgresPointOfInterestStore_Update(t *testing.T) {
	ctx := context.Background()
	updateSQL := regexp.QuoteMeta(updatePointOfInterestQuery)

	t.Run("updated", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresPointOfInterestStore(db, nil)

		mock.ExpectExec(updateSQL).WithArgs("New", "", int64(1), int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := s.UpdatePointOfInterest(ctx, &domain.PointOfInterest{ID: 1, CityID: 1, Name: "New"})
		assert.NoError(t, err)
	})

	t.Run("no rows affected", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresPointOfInterestStore(db, nil)

		mock.ExpectExec(updateSQL).WithArgs("New", "", int64(8), int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(regexp.QuoteMeta(cityExistsQuery)).WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		err := s.UpdatePointOfInterest(ctx, &domain.PointOfInterest{ID: 8, CityID: 1, Name: "New"})
		assert.ErrorIs(t, err, store.ErrPointOfInterestNotFound)
	})
}

func TestPostgresPointOfInterestStore_Patch(t *testing.T) {
	ctx := context.Background()
	lockSQL := regexp.QuoteMeta(lockPointOfInterestQuery)

	t.Run("writes only the patched column", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresPointOfInterestStore(db, nil)

		mock.ExpectBegin()
		mock.ExpectQuery(lockSQL).WithArgs(int64(1), int64(1)).
			WillReturnRows(sqlmock.NewRows(poiColumns).AddRow(1, 1, "Place 1", "Description 1"))
		mock.ExpectExec(regexp.QuoteMeta("UPDATE points_of_interest SET description = $1 WHERE id = $2 AND city_id = $3")).
			WithArgs("Updated", int64(1), int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		poi, err := s.PatchPointOfInterest(ctx, 1, 1, domain.PointOfInterestPatch{Description: strPtr("Updated")})
		require.NoError(t, err)
		assert.Equal(t, "Place 1", poi.Name)
		assert.Equal(t, "Updated", poi.Description)
	})

	t.Run("invalid result rolls back without writing", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresPointOfInterestStore(db, nil)

		mock.ExpectBegin()
		mock.ExpectQuery(lockSQL).WithArgs(int64(1), int64(1)).
			WillReturnRows(sqlmock.NewRows(poiColumns).AddRow(1, 1, "Place 1", "Description 1"))
		mock.ExpectRollback()

		_, err := s.PatchPointOfInterest(ctx, 1, 1, domain.PointOfInterestPatch{Name: strPtr("")})
		require.ErrorIs(t, err, domain.ErrValidation)

		var verrs *domain.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Contains(t, verrs.Fields(), "name")
	})

	t.Run("expectation is checked against the locked row", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresPointOfInterestStore(db, nil)

		mock.ExpectBegin()
		mock.ExpectQuery(lockSQL).WithArgs(int64(1), int64(1)).
			WillReturnRows(sqlmock.NewRows(poiColumns).AddRow(1, 1, "Changed meanwhile", "Description 1"))
		mock.ExpectRollback()

		_, err := s.PatchPointOfInterest(ctx, 1, 1, domain.PointOfInterestPatch{
			Description: strPtr("Updated"),
			ExpectName:  strPtr("Place 1"),
		})
		require.ErrorIs(t, err, domain.ErrInvalidPatch)
	})

	t.Run("missing point rolls back", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresPointOfInterestStore(db, nil)

		mock.ExpectBegin()
		mock.ExpectQuery(lockSQL).WithArgs(int64(4), int64(1)).WillReturnError(sql.ErrNoRows)
		mock.ExpectQuery(regexp.QuoteMeta(cityExistsQuery)).WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
		mock.ExpectRollback()

		_, err := s.PatchPointOfInterest(ctx, 1, 4, domain.PointOfInterestPatch{Name: strPtr("x")})
		assert.ErrorIs(t, err, store.ErrPointOfInterestNotFound)
	})
}

func TestPostgresPointOfInterestStore_Delete(t *testing.T) {
	ctx := context.Background()
	deleteSQL := regexp.QuoteMeta(deletePointOfInterestQuery)

	t.Run("returns deleted row", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresPointOfInterestStore(db, nil)

		mock.ExpectQuery(deleteSQL).WithArgs(int64(2), int64(1)).
			WillReturnRows(sqlmock.NewRows(poiColumns).AddRow(2, 1, "Place 2", "Description 2"))

		poi, err := s.DeletePointOfInterest(ctx, 1, 2)
		require.NoError(t, err)
		assert.Equal(t, "Place 2", poi.Name)
	})

	t.Run("already gone", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresPointOfInterestStore(db, nil)

		mock.ExpectQuery(deleteSQL).WithArgs(int64(2), int64(1)).WillReturnError(sql.ErrNoRows)
		mock.ExpectQuery(regexp.QuoteMeta(cityExistsQuery)).WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		_, err := s.DeletePointOfInterest(ctx, 1, 2)
		assert.ErrorIs(t, err, store.ErrPointOfInterestNotFound)
	})
}

func TestStore_Ping(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectPing()

	s := NewStore(db, nil)
	assert.NoError(t, s.Ping(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
