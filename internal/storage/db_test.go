package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/uptrace/bun/dialect"

	"github.com/goliatone/go-sitenav/pkg/testsupport"
)

func TestResolveDialect(t *testing.T) {
	cases := map[string]dialect.Name{
		"":         dialect.SQLite,
		"sqlite3":  dialect.SQLite,
		"SQLite":   dialect.SQLite,
		"postgres": dialect.PG,
		"pgx":      dialect.PG,
	}
	for driver, want := range cases {
		_, d, err := resolveDialect(driver)
		if err != nil {
			t.Fatalf("resolveDialect(%q) error = %v", driver, err)
		}
		if d.Name() != want {
			t.Fatalf("resolveDialect(%q) = %s, want %s", driver, d.Name(), want)
		}
	}

	if _, _, err := resolveDialect("oracle"); !errors.Is(err, ErrDriverUnsupported) {
		t.Fatalf("expected ErrDriverUnsupported, got %v", err)
	}
}

func TestOpenSQLite(t *testing.T) {
	db, err := Open(context.Background(), Config{Driver: "sqlite3", DSN: testsupport.SQLiteMemoryDSN()}, nil)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	var one int
	if err := db.NewSelect().ColumnExpr("1").Scan(context.Background(), &one); err != nil {
		t.Fatalf("select: %v", err)
	}
	if one != 1 {
		t.Fatalf("expected 1, got %d", one)
	}
}
