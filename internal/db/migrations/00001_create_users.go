package migrations

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateUsers, downCreateUsers)
}

func upCreateUsers(ctx context.Context, tx *sql.Tx) error {
	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS users (
    %s,
    email         %s NOT NULL,
    password_hash TEXT NOT NULL,
    first_name    TEXT NULL,
    last_name     TEXT NULL,
    created_at    %s NOT NULL,
    updated_at    %s NOT NULL
)`, idColumn(), textType(), timestampType(), timestampType())
	if _, err := tx.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create users table: %w", err)
	}
	_, err := tx.ExecContext(ctx, `CREATE UNIQUE INDEX idx_users_email ON users (email)`)
	return err
}

func downCreateUsers(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS users`)
	return err
}
