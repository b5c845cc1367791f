// Package repo contains all database access logic for the Talentrail API.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here, only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pkordes/talentrail/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test. Begin on a
// pgx.Tx opens a savepoint, so InTx nests cleanly inside a test transaction.
type db interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// InTx runs fn inside one transaction. The transaction commits when fn
// returns nil and rolls back when fn returns an error or panics. The
// connection is released in every case.
func InTx(ctx context.Context, conn db, fn func(tx pgx.Tx) error) error {
	return pgx.BeginFunc(ctx, conn, fn)
}

// Postgres SQLSTATE codes mapped by classify.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgNotNullViolation    = "23502"
)

// classify converts a driver error into the domain error taxonomy. Errors that
// already carry a domain sentinel pass through untouched; anything the
// taxonomy does not name becomes ErrStorage with the driver error kept in the
// chain for logging.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	for _, sentinel := range []error{
		domain.ErrNotFound, domain.ErrValidation, domain.ErrConflict, domain.ErrStorage,
	} {
		if errors.Is(err, sentinel) {
			return err
		}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s", domain.ErrConflict, describeConstraint(pgErr, "already exists"))
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: %s", domain.ErrConflict, describeConstraint(pgErr, "is still referenced"))
		case pgCheckViolation, pgNotNullViolation:
			return fmt.Errorf("%w: %s", domain.ErrValidation, describeConstraint(pgErr, "violates a constraint"))
		}
	}
	return fmt.Errorf("%w: %w", domain.ErrStorage, err)
}

// notFoundAs names the missing row in a not-found error so the id reaches
// the client message. Other errors are classified and prefixed with the row.
func notFoundAs(err error, kind string, id int64) error {
	err = classify(err)
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("%w: %s %d", domain.ErrNotFound, kind, id)
	}
	return fmt.Errorf("%s %d: %w", kind, id, err)
}

func describeConstraint(pgErr *pgconn.PgError, what string) string {
	if pgErr.TableName == "" {
		return "record " + what
	}
	if pgErr.ConstraintName == "" {
		return pgErr.TableName + " record " + what
	}
	return fmt.Sprintf("%s record %s (%s)", pgErr.TableName, what, pgErr.ConstraintName)
}

// requireID rejects identifiers the store can never have assigned.
func requireID(id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: id must be a positive integer", domain.ErrValidation)
	}
	return nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing the scan
// helpers to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}
