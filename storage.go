package backoffice

import (
	"database/sql"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/fleetgrid/go-backoffice/internal/di"
)

// NewPostgresDB wraps an open postgres connection for use with WithDatabase.
func NewPostgresDB(sqldb *sql.DB) *bun.DB {
	return bun.NewDB(sqldb, pgdialect.New())
}

// NewSQLiteDB wraps an open sqlite connection for use with WithDatabase.
// Intended for embedded deployments and integration tests.
func NewSQLiteDB(sqldb *sql.DB) *bun.DB {
	return bun.NewDB(sqldb, sqlitedialect.New())
}

// WithDatabase switches the module onto database-backed repositories. Hosts
// own the connection lifecycle and run the embedded migrations themselves.
func WithDatabase(db *bun.DB) di.Option {
	return di.WithBunDB(db)
}
