package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/joestump/bookmarks-api/internal/db"
)

// NewTestDB opens a fresh file-backed SQLite DB through db.New, so tests run
// against the same connection settings and pool as serve, and applies all
// goose migrations.
func NewTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "bookmarks.db")
	conn, err := db.New("sqlite3", dsn)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	if _, err := db.Migrate(context.Background(), conn, "sqlite3"); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	return conn
}
