// Package testutil holds the database plumbing shared by the integration
// tests of the repo layer and the migration round-trip test. Every helper
// that needs Postgres reads TEST_DATABASE_URL and skips the test when it is
// unset, so `go test ./...` stays green on machines without a database.
package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
	"github.com/pressly/goose/v3"

	"github.com/pkordes/talentrail/migrations"
)

// Tables lists every table the migrations create, parents first.
var Tables = []string{"guides", "trips", "skills", "candidates", "candidate_skills", "users"}

// NewPool connects to TEST_DATABASE_URL and closes the pool on cleanup.
func NewPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	pool, err := pgxpool.New(context.Background(), requireDSN(t))
	if err != nil {
		t.Fatalf("testutil.NewPool: open pool: %v", err)
	}
	if err := pool.Ping(context.Background()); err != nil {
		pool.Close()
		t.Fatalf("testutil.NewPool: ping: %v", err)
	}

	t.Cleanup(pool.Close)
	return pool
}

// NewTx begins a transaction on a fresh pool and rolls it back on cleanup.
// Repos built on the returned tx see an isolated, migrated schema; their own
// transactions run as savepoints inside it.
func NewTx(t *testing.T) pgx.Tx {
	t.Helper()

	tx, err := NewPool(t).Begin(context.Background())
	if err != nil {
		t.Fatalf("testutil.NewTx: begin: %v", err)
	}
	t.Cleanup(func() {
		_ = tx.Rollback(context.Background())
	})
	return tx
}

// NewSQLDB opens a database/sql handle on TEST_DATABASE_URL for the goose
// provider used by the migration round-trip test.
func NewSQLDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := openSQLDB(requireDSN(t))
	if err != nil {
		t.Fatalf("testutil.NewSQLDB: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// NewProvider builds a goose provider over the embedded migrations.
func NewProvider(db *sql.DB) (*goose.Provider, error) {
	p, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return nil, fmt.Errorf("testutil.NewProvider: %w", err)
	}
	return p, nil
}

// MustMigrate applies every pending migration to dsn and panics on failure.
// It is meant for TestMain, where no *testing.T exists.
func MustMigrate(dsn string) {
	db, err := openSQLDB(dsn)
	if err != nil {
		panic("testutil.MustMigrate: " + err.Error())
	}
	defer db.Close()

	p, err := NewProvider(db)
	if err != nil {
		panic("testutil.MustMigrate: " + err.Error())
	}
	if _, err := p.Up(context.Background()); err != nil {
		panic("testutil.MustMigrate: up: " + err.Error())
	}
}

func openSQLDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return db, nil
}

func requireDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping integration test")
	}
	return dsn
}
