package auth_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/joestump/bookmarks-api/internal/auth"
	"github.com/joestump/bookmarks-api/internal/store"
	"github.com/joestump/bookmarks-api/internal/testutil"
)

func newTokenTestEnv(t *testing.T) (*auth.SQLTokenStore, *store.UserStore, int64) {
	t.Helper()
	db := testutil.NewTestDB(t)
	ts := auth.NewSQLTokenStore(db)
	us := store.NewUserStore(db)

	u, err := us.Create(context.Background(), "test@example.com", "hash")
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return ts, us, u.ID
}

func TestGenerateToken(t *testing.T) {
	plaintext, hash, err := auth.GenerateToken()
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if len(plaintext) < 10 {
		t.Errorf("plaintext too short: %q", plaintext)
	}
	if !strings.HasPrefix(plaintext, auth.TokenPrefix) {
		t.Errorf("plaintext %q lacks prefix %q", plaintext, auth.TokenPrefix)
	}
	if got := auth.HashToken(plaintext); got != hash {
		t.Errorf("HashToken = %q, want %q", got, hash)
	}

	other, _, err := auth.GenerateToken()
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if other == plaintext {
		t.Error("two generated tokens are identical")
	}
}

func TestTokenStore_CreateAndGetByHash(t *testing.T) {
	ts, _, userID := newTokenTestEnv(t)
	ctx := context.Background()

	_, hash, err := auth.GenerateToken()
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	rec, err := ts.Create(ctx, userID, "test-token", hash, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.UserID != userID {
		t.Errorf("UserID = %d, want %d", rec.UserID, userID)
	}
	if rec.Name != "test-token" {
		t.Errorf("Name = %q, want %q", rec.Name, "test-token")
	}
	if rec.ExpiresAt.Valid {
		t.Error("expected no expiry")
	}

	got, err := ts.GetByHash(ctx, hash)
	if err != nil {
		t.Fatalf("GetByHash: %v", err)
	}
	if got.ID != rec.ID {
		t.Errorf("ID = %q, want %q", got.ID, rec.ID)
	}
}

func TestTokenStore_GetByHash_NotFound(t *testing.T) {
	ts, _, _ := newTokenTestEnv(t)

	_, err := ts.GetByHash(context.Background(), "nonexistent-hash")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("GetByHash(nonexistent) = %v, want ErrNotFound", err)
	}
}

func TestTokenStore_Revoke(t *testing.T) {
	ts, _, userID := newTokenTestEnv(t)
	ctx := context.Background()

	_, hash, _ := auth.GenerateToken()
	rec, err := ts.Create(ctx, userID, "revoke-me", hash, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := ts.Revoke(ctx, rec.ID, userID); err != nil {
		t.Fatalf("Revoke: %v", err)
	}

	got, err := ts.GetByHash(ctx, hash)
	if err != nil {
		t.Fatalf("GetByHash after revoke: %v", err)
	}
	if !got.RevokedAt.Valid {
		t.Error("expected RevokedAt to be set after revoke")
	}
	if got.Usable(time.Now()) {
		t.Error("revoked token reported usable")
	}
}

func TestTokenStore_Revoke_OtherUser(t *testing.T) {
	ts, us, userID := newTokenTestEnv(t)
	ctx := context.Background()

	other, err := us.Create(ctx, "other@example.com", "hash")
	if err != nil {
		t.Fatalf("seed other: %v", err)
	}
	_, hash, _ := auth.GenerateToken()
	rec, err := ts.Create(ctx, userID, "mine", hash, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := ts.Revoke(ctx, rec.ID, other.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Revoke by other user = %v, want ErrNotFound", err)
	}
}

func TestTokenStore_UpdateLastUsed(t *testing.T) {
	ts, _, userID := newTokenTestEnv(t)
	ctx := context.Background()

	_, hash, _ := auth.GenerateToken()
	rec, err := ts.Create(ctx, userID, "used", hash, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.LastUsedAt.Valid {
		t.Fatal("new token already has last_used_at")
	}

	if err := ts.UpdateLastUsed(ctx, rec.ID); err != nil {
		t.Fatalf("UpdateLastUsed: %v", err)
	}
	got, err := ts.GetByHash(ctx, hash)
	if err != nil {
		t.Fatalf("GetByHash: %v", err)
	}
	if !got.LastUsedAt.Valid {
		t.Error("expected last_used_at to be set")
	}
}

func TestIssueToken(t *testing.T) {
	ts, _, userID := newTokenTestEnv(t)
	ctx := context.Background()

	plaintext, rec, err := auth.IssueToken(ctx, ts, userID, "signin", time.Hour)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	if !rec.ExpiresAt.Valid {
		t.Fatal("expected expiry for non-zero lifetime")
	}
	if rec.ExpiresAt.Time.Before(time.Now().Add(50 * time.Minute)) {
		t.Errorf("expires_at = %v, want about an hour from now", rec.ExpiresAt.Time)
	}

	got, err := ts.GetByHash(ctx, auth.HashToken(plaintext))
	if err != nil {
		t.Fatalf("GetByHash: %v", err)
	}
	if got.ID != rec.ID {
		t.Errorf("ID = %q, want %q", got.ID, rec.ID)
	}

	_, forever, err := auth.IssueToken(ctx, ts, userID, "cli", 0)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	if forever.ExpiresAt.Valid {
		t.Error("zero lifetime should not set expiry")
	}
}
