package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrOwnershipDenied is returned by owner-checked mutations when the
	// record is missing or belongs to another user. The two cases are not
	// distinguished so callers cannot discover other users' records.
	ErrOwnershipDenied = errors.New("access to resources denied")

	// ErrEmailTaken is returned when a user record would duplicate an email.
	ErrEmailTaken = errors.New("email is already registered")
)

// BookmarkRepository exposes the owner-scoped bookmark operations.
// Every method takes the acting user's ID explicitly.
type BookmarkRepository interface {
	List(ctx context.Context, userID int64) ([]*Bookmark, error)
	GetByID(ctx context.Context, userID, id int64) (*Bookmark, error)
	Create(ctx context.Context, userID int64, in CreateBookmarkInput) (*Bookmark, error)
	EditByID(ctx context.Context, userID, id int64, patch BookmarkPatch) (*Bookmark, error)
	DeleteByID(ctx context.Context, userID, id int64) error
}

// insertReturningID runs an INSERT and returns the generated integer key.
// lib/pq does not implement LastInsertId, so PostgreSQL uses RETURNING.
func insertReturningID(ctx context.Context, q sqlx.ExtContext, query string, args ...any) (int64, error) {
	if q.DriverName() == "postgres" {
		var id int64
		if err := q.QueryRowxContext(ctx, q.Rebind(query+" RETURNING id"), args...).Scan(&id); err != nil {
			return 0, err
		}
		return id, nil
	}

	res, err := q.ExecContext(ctx, q.Rebind(query), args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// withTx runs fn inside a transaction, committing on success.
func withTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// isUniqueConstraintError checks whether err indicates a unique constraint violation.
// Works across SQLite, PostgreSQL, and MySQL.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || // SQLite & PostgreSQL
		strings.Contains(msg, "duplicate key") || // PostgreSQL
		strings.Contains(msg, "duplicate entry") // MySQL
}
