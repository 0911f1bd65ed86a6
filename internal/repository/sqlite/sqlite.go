// Package sqlite implements repository.UserRepository using SQLite as the
// storage backend.
//
// WHY SQLITE?
// SQLite is an embedded database — it lives inside the Go binary as a single
// file. No separate database server to install, configure, or manage.
//
// WHY modernc.org/sqlite INSTEAD OF github.com/mattn/go-sqlite3?
// mattn/go-sqlite3 uses CGo, which means you need a C compiler installed and
// cross-compilation becomes painful. modernc.org/sqlite is a pure Go
// translation of the SQLite C code — works everywhere Go works.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/rmaia/graphql-users/internal/repository/sqlite/migrations"

	// Side-effect import: registers the pure-Go driver with database/sql
	// under the name "sqlite".
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool and provides the user repository
// methods. It owns the pool's lifecycle: New opens it, Close releases it.
type DB struct {
	conn *sql.DB
}

// New opens the SQLite database at dbPath and applies any pending
// migrations.
//
// dbPath examples:
//   - "data/users.db"  → file-based database (persistent)
//   - ":memory:"       → in-memory database (great for tests, lost on close)
func New(dbPath string) (*DB, error) {
	// sql.Open does NOT actually connect — it just creates a pool manager.
	// Ping forces an immediate connection so a bad path or permissions
	// problem surfaces here, not on the first query.
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// An in-memory SQLite database exists per-connection: with the default
	// pool, migrations would run on one connection and queries would hit a
	// fresh, empty database on another. One connection keeps it coherent.
	if dbPath == ":memory:" {
		conn.SetMaxOpenConns(1)
	}

	// WAL mode allows concurrent reads while a write is in progress —
	// important for a web server where many requests hit the DB at once.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.applyMigrations(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the database connection pool. Wherever you call New(),
// defer Close() so the pool is released even if a panic occurs.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Ping verifies the database connection is still alive. The health endpoint
// uses it.
func (db *DB) Ping() error {
	return db.conn.Ping()
}

// applyMigrations runs all pending migrations from the embedded SQL files.
//
// golang-migrate tracks applied versions in a schema_migrations table, so
// running this on every startup is safe — an up-to-date database is a no-op
// (migrate.ErrNoChange, which we swallow).
func (db *DB) applyMigrations() error {
	driver, err := migratesqlite.WithInstance(db.conn, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("creating migration driver: %w", err)
	}

	src, err := iofs.New(migrations.Migrations, ".")
	if err != nil {
		return fmt.Errorf("loading embedded migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "", driver)
	if err != nil {
		return fmt.Errorf("creating migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("applying migrations: %w", err)
	}

	return nil
}
