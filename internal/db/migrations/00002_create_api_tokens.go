package migrations

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateAPITokens, downCreateAPITokens)
}

func upCreateAPITokens(ctx context.Context, tx *sql.Tx) error {
	ts := timestampType()
	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS api_tokens (
    id           %s NOT NULL PRIMARY KEY,
    user_id      BIGINT NOT NULL REFERENCES users (id),
    name         TEXT NOT NULL,
    token_hash   %s NOT NULL,
    last_used_at %s NULL,
    expires_at   %s NULL,
    created_at   %s NOT NULL,
    revoked_at   %s NULL
)`, textType(), textType(), ts, ts, ts, ts)
	if _, err := tx.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create api_tokens table: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `CREATE UNIQUE INDEX idx_api_tokens_hash ON api_tokens (token_hash)`); err != nil {
		return err
	}
	_, err := tx.ExecContext(ctx, `CREATE INDEX idx_api_tokens_user ON api_tokens (user_id)`)
	return err
}

func downCreateAPITokens(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS api_tokens`)
	return err
}
