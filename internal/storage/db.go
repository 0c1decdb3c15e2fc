// Package storage opens the bun database behind the page repository.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/schema"

	"github.com/goliatone/go-sitenav/internal/logging"
	"github.com/goliatone/go-sitenav/pkg/interfaces"
)

// ErrDriverUnsupported is returned for drivers without a bun dialect.
var ErrDriverUnsupported = errors.New("storage: unsupported driver")

// Config names the database/sql driver and its DSN. Postgres callers register
// their own driver under Driver.
type Config struct {
	Driver string
	DSN    string
}

// Open connects to the configured database, pings it and wraps it in bun.
func Open(ctx context.Context, cfg Config, logger interfaces.Logger) (*bun.DB, error) {
	if logger == nil {
		logger = logging.NoOp()
	}

	driver, dialect, err := resolveDialect(cfg.Driver)
	if err != nil {
		return nil, err
	}

	sqlDB, err := sql.Open(driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", driver, err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("storage: ping %s: %w", driver, err)
	}

	db := NewDB(sqlDB, dialect)
	if driver == "sqlite3" {
		db.SetMaxOpenConns(1)
	}

	logger.Debug("storage.open", "driver", driver, "dialect", dialect.Name().String())
	return db, nil
}

// NewDB wraps an existing connection pool.
func NewDB(sqlDB *sql.DB, dialect schema.Dialect) *bun.DB {
	return bun.NewDB(sqlDB, dialect)
}

func resolveDialect(driver string) (string, schema.Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", "sqlite", "sqlite3":
		return "sqlite3", sqlitedialect.New(), nil
	case "postgres", "postgresql":
		return "postgres", pgdialect.New(), nil
	case "pgx":
		return "pgx", pgdialect.New(), nil
	default:
		return "", nil, fmt.Errorf("%w: %q", ErrDriverUnsupported, driver)
	}
}
