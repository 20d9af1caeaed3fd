package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/joestump/bookmarks-api/internal/api"
	"github.com/joestump/bookmarks-api/internal/auth"
	"github.com/joestump/bookmarks-api/internal/logger"
	"github.com/joestump/bookmarks-api/internal/store"
	"github.com/joestump/bookmarks-api/internal/testutil"
)

// testEnv holds all stores and helpers needed for API integration tests.
type testEnv struct {
	Router     http.Handler
	Bookmarks  *store.BookmarkStore
	UserStore  *store.UserStore
	TokenStore *auth.SQLTokenStore
}

// newTestEnv creates an in-memory SQLite test database, runs migrations,
// and wires up the full API router with real stores.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.NewTestDB(t)

	bs := store.NewBookmarkStore(db)
	us := store.NewUserStore(db)
	ts := auth.NewSQLTokenStore(db)
	log := logger.Nop()

	router := api.NewAPIRouter(api.Deps{
		BearerAuth:    auth.NewBearerTokenMiddleware(ts, us, log),
		Bookmarks:     bs,
		Users:         us,
		Tokens:        ts,
		TokenLifetime: time.Hour,
		Logger:        log,
	})
	return &testEnv{
		Router:     router,
		Bookmarks:  bs,
		UserStore:  us,
		TokenStore: ts,
	}
}

// seedUser creates a user with a throwaway password hash.
func seedUser(t *testing.T, env *testEnv, email string) *store.User {
	t.Helper()
	u, err := env.UserStore.Create(context.Background(), email, "not-a-real-hash")
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

// seedToken creates a real API token for a user and returns the plaintext Bearer value.
func seedToken(t *testing.T, env *testEnv, userID int64) string {
	t.Helper()
	plaintext, hash, err := auth.GenerateToken()
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	_, err = env.TokenStore.Create(context.Background(), userID, "test-token", hash, nil)
	if err != nil {
		t.Fatalf("create token: %v", err)
	}
	return plaintext
}

// seedBookmark stores a bookmark directly through the access layer.
func seedBookmark(t *testing.T, env *testEnv, userID int64, title, link string) *store.Bookmark {
	t.Helper()
	b, err := env.Bookmarks.Create(context.Background(), userID, store.CreateBookmarkInput{Title: title, Link: link})
	if err != nil {
		t.Fatalf("seed bookmark: %v", err)
	}
	return b
}

// authRequest adds a Bearer token to the request.
func authRequest(r *http.Request, token string) *http.Request {
	r.Header.Set("Authorization", "Bearer "+token)
	return r
}

// do sends a request with an optional JSON body and token through handler.
func do(t *testing.T, handler http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req = authRequest(req, token)
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

// decode unmarshals the recorder body into v.
func decode(t *testing.T, rr *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response %q: %v", rr.Body.String(), err)
	}
}

// errorResponse mirrors the JSON error body.
type errorResponse struct {
	Error  string `json:"error"`
	Code   string `json:"code"`
	Fields []struct {
		Field string `json:"field"`
		Error string `json:"error"`
	} `json:"fields"`
}

func itoa(id int64) string { return strconv.FormatInt(id, 10) }

func strPtr(s string) *string { return &s }
