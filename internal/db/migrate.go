package db

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sync"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"

	"github.com/joestump/bookmarks-api/internal/db/migrations"
)

//go:embed migrations
var Migrations embed.FS

// goose keeps its dialect and base FS in package globals.
var gooseMu sync.Mutex

var gooseDialects = map[string]string{
	"sqlite3":  "sqlite3",
	"mysql":    "mysql",
	"postgres": "postgres",
}

// Migrate applies every pending embedded migration and returns the schema
// version afterwards. Call it before the server accepts requests.
func Migrate(ctx context.Context, db *sqlx.DB, driver string) (int64, error) {
	dialect, ok := gooseDialects[driver]
	if !ok {
		return 0, fmt.Errorf("unknown driver for goose dialect: %q", driver)
	}

	sub, err := fs.Sub(Migrations, "migrations")
	if err != nil {
		return 0, fmt.Errorf("sub migrations fs: %w", err)
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	if err := goose.SetDialect(dialect); err != nil {
		return 0, fmt.Errorf("set goose dialect: %w", err)
	}
	migrations.SetDialect(dialect)

	goose.SetBaseFS(sub)
	defer goose.SetBaseFS(nil)

	if err := goose.UpContext(ctx, db.DB, "."); err != nil {
		return 0, fmt.Errorf("run migrations: %w", err)
	}

	version, err := goose.GetDBVersionContext(ctx, db.DB)
	if err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return version, nil
}
