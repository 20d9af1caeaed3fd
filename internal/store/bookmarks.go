package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

// Bookmark represents a row in the bookmarks table.
type Bookmark struct {
	ID          int64     `db:"id"`
	UserID      int64     `db:"user_id"`
	Title       string    `db:"title"`
	Link        string    `db:"link"`
	Description *string   `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// CreateBookmarkInput carries the caller-supplied fields of a new bookmark.
type CreateBookmarkInput struct {
	Title       string
	Link        string
	Description *string
}

// BookmarkPatch is a partial update. Nil fields are left unchanged;
// ClearDescription sets the description to NULL.
type BookmarkPatch struct {
	Title            *string
	Link             *string
	Description      *string
	ClearDescription bool
}

const bookmarkColumns = `id, user_id, title, link, description, created_at, updated_at`

// BookmarkStore is the sqlx-backed implementation of BookmarkRepository.
type BookmarkStore struct {
	db *sqlx.DB
}

func NewBookmarkStore(db *sqlx.DB) *BookmarkStore {
	return &BookmarkStore{db: db}
}

var _ BookmarkRepository = (*BookmarkStore)(nil)

// List returns every bookmark owned by userID in id order.
// The result is never nil so it serializes as [] when empty.
func (s *BookmarkStore) List(ctx context.Context, userID int64) ([]*Bookmark, error) {
	bookmarks := []*Bookmark{}
	err := s.db.SelectContext(ctx, &bookmarks, s.db.Rebind(`
		SELECT `+bookmarkColumns+` FROM bookmarks WHERE user_id = ? ORDER BY id ASC
	`), userID)
	if err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	return bookmarks, nil
}

// GetByID returns the bookmark with id when it is owned by userID.
// A missing or foreign bookmark yields (nil, nil), never an error.
func (s *BookmarkStore) GetByID(ctx context.Context, userID, id int64) (*Bookmark, error) {
	var b Bookmark
	err := s.db.GetContext(ctx, &b, s.db.Rebind(`
		SELECT `+bookmarkColumns+` FROM bookmarks WHERE id = ? AND user_id = ?
	`), id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get bookmark %d: %w", id, err)
	}
	return &b, nil
}

// Create inserts a bookmark owned by userID and returns the stored record.
func (s *BookmarkStore) Create(ctx context.Context, userID int64, in CreateBookmarkInput) (*Bookmark, error) {
	now := time.Now().UTC()
	id, err := insertReturningID(ctx, s.db, `
		INSERT INTO bookmarks (user_id, title, link, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, userID, in.Title, in.Link, in.Description, now, now)
	if err != nil {
		return nil, fmt.Errorf("insert bookmark: %w", err)
	}

	b, err := findBookmark(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, fmt.Errorf("bookmark %d vanished after insert: %w", id, ErrNotFound)
	}
	return b, nil
}

// EditByID applies patch to the bookmark when userID owns it. A missing
// bookmark and a foreign one both return ErrOwnershipDenied. The ownership
// check and the update share one transaction.
func (s *BookmarkStore) EditByID(ctx context.Context, userID, id int64, patch BookmarkPatch) (*Bookmark, error) {
	var updated *Bookmark
	err := withTx(ctx, s.db, func(tx *sqlx.Tx) error {
		if err := checkOwner(ctx, tx, userID, id); err != nil {
			return err
		}

		sets := []string{"updated_at = ?"}
		args := []any{time.Now().UTC()}
		if patch.Title != nil {
			sets = append(sets, "title = ?")
			args = append(args, *patch.Title)
		}
		if patch.Link != nil {
			sets = append(sets, "link = ?")
			args = append(args, *patch.Link)
		}
		switch {
		case patch.Description != nil:
			sets = append(sets, "description = ?")
			args = append(args, *patch.Description)
		case patch.ClearDescription:
			sets = append(sets, "description = NULL")
		}
		args = append(args, id)

		query := `UPDATE bookmarks SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`
		if _, err := tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
			return fmt.Errorf("update bookmark %d: %w", id, err)
		}

		b, err := findBookmark(ctx, tx, id)
		if err != nil {
			return err
		}
		updated = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteByID permanently removes the bookmark when userID owns it, with the
// same ErrOwnershipDenied collapse as EditByID.
func (s *BookmarkStore) DeleteByID(ctx context.Context, userID, id int64) error {
	return withTx(ctx, s.db, func(tx *sqlx.Tx) error {
		if err := checkOwner(ctx, tx, userID, id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM bookmarks WHERE id = ?`), id); err != nil {
			return fmt.Errorf("delete bookmark %d: %w", id, err)
		}
		return nil
	})
}

// checkOwner fetches the bookmark by id alone and denies unless it exists
// and belongs to userID.
func checkOwner(ctx context.Context, q sqlx.ExtContext, userID, id int64) error {
	b, err := findBookmark(ctx, q, id)
	if err != nil {
		return err
	}
	if b == nil || b.UserID != userID {
		return ErrOwnershipDenied
	}
	return nil
}

// findBookmark is the unscoped lookup by primary key. Returns (nil, nil) when absent.
func findBookmark(ctx context.Context, q sqlx.ExtContext, id int64) (*Bookmark, error) {
	var b Bookmark
	err := sqlx.GetContext(ctx, q, &b, q.Rebind(`SELECT `+bookmarkColumns+` FROM bookmarks WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find bookmark %d: %w", id, err)
	}
	return &b, nil
}
