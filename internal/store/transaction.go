package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/cityinfo-api/internal/platform/logger"
	"github.com/phrazzld/cityinfo-api/internal/redact"
)

// DBTX is the query surface shared by *sql.DB and *sql.Tx. Stores are built
// on it so the same store code runs standalone or inside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// RunInTransaction runs fn against a transaction on db.
//
// When db is a *sql.DB a new transaction is opened and committed if fn
// returns nil. Any other DBTX (typically a caller's *sql.Tx) is handed to fn
// as is, so nested store calls join the outer transaction.
//
// Begin and commit failures wrap ErrTransactionFailed. Errors returned by fn
// pass through unchanged so callers can still match the store sentinels.
// A panic in fn rolls back and is re-raised.
func RunInTransaction(ctx context.Context, db DBTX, fn func(ctx context.Context, tx DBTX) error) (err error) {
	sqlDB, ok := db.(*sql.DB)
	if !ok {
		return fn(ctx, db)
	}

	log := logger.FromContext(ctx)

	tx, err := sqlDB.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", slog.String("error", redact.Error(err)))
		return fmt.Errorf("%w: begin: %v", ErrTransactionFailed, err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		p := recover()
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error("transaction rollback failed",
				slog.String("error", rbErr.Error()),
				slog.Any("panic", p))
			if p == nil && err != nil {
				err = fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
			}
		}
		if p != nil {
			// ALLOW-PANIC: re-raise after rollback
			panic(p)
		}
	}()

	if err = fn(ctx, tx); err != nil {
		log.Debug("rolling back transaction", slog.String("error", redact.Error(err)))
		return err
	}

	committed = true
	if err = tx.Commit(); err != nil {
		log.Error("failed to commit transaction", slog.String("error", redact.Error(err)))
		return fmt.Errorf("%w: commit: %v", ErrTransactionFailed, err)
	}
	return nil
}
