package migrations

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateBookmarks, downCreateBookmarks)
}

func upCreateBookmarks(ctx context.Context, tx *sql.Tx) error {
	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS bookmarks (
    %s,
    user_id     BIGINT NOT NULL REFERENCES users (id),
    title       TEXT NOT NULL,
    link        TEXT NOT NULL,
    description TEXT NULL,
    created_at  %s NOT NULL,
    updated_at  %s NOT NULL
)`, idColumn(), timestampType(), timestampType())
	if _, err := tx.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create bookmarks table: %w", err)
	}
	_, err := tx.ExecContext(ctx, `CREATE INDEX idx_bookmarks_user ON bookmarks (user_id)`)
	return err
}

func downCreateBookmarks(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS bookmarks`)
	return err
}
