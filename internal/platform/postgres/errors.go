package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/cityinfo-api/internal/domain"
	"github.com/phrazzld/cityinfo-api/internal/store"
)

// SQLSTATE codes raised by the cities and points_of_interest constraints.
const (
	foreignKeyViolationCode = "23503"
	checkViolationCode      = "23514"
	notNullViolationCode    = "23502"
	stringTooLongCode       = "22001"
)

// MapError translates a database error into the store error taxonomy.
//
// A missing owning city (the points_of_interest.city_id foreign key) becomes
// store.ErrCityNotFound. Column constraint failures become
// store.ErrInvalidEntity joined with a field-level domain.ValidationErrors,
// so clients see which field the database rejected. Anything else is
// returned unchanged.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case foreignKeyViolationCode:
		if strings.Contains(pgErr.ConstraintName, "city_id") {
			return fmt.Errorf("%w: %v", store.ErrCityNotFound, err)
		}
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	case checkViolationCode:
		return invalidColumn(constraintColumn(pgErr.ConstraintName), "must not be blank")
	case notNullViolationCode:
		return invalidColumn(pgErr.ColumnName, "is required")
	case stringTooLongCode:
		// Postgres does not name the column for 22001.
		return fmt.Errorf("%w: value too long: %v", store.ErrInvalidEntity, err)
	}
	return err
}

func invalidColumn(column, message string) error {
	if column == "" {
		column = "entity"
	}
	return fmt.Errorf("%w: %w", store.ErrInvalidEntity, domain.NewValidationError(column, message))
}

// constraintColumn extracts the column from Postgres' default constraint
// names, e.g. "points_of_interest_name_check" yields "name".
func constraintColumn(constraint string) string {
	for _, table := range []string{"points_of_interest_", "cities_"} {
		if rest, ok := strings.CutPrefix(constraint, table); ok {
			return strings.TrimSuffix(rest, "_check")
		}
	}
	return ""
}

// CheckRowsAffected returns notFound when an UPDATE or DELETE touched no rows.
// A nil notFound defaults to store.ErrNotFound.
func CheckRowsAffected(result sql.Result, notFound error) error {
	if result == nil {
		return errors.New("nil result provided to CheckRowsAffected")
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n > 0 {
		return nil
	}
	if notFound == nil {
		return store.ErrNotFound
	}
	return notFound
}
