package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/joestump/bookmarks-api/internal/logger"
	"github.com/joestump/bookmarks-api/internal/metrics"
	"github.com/joestump/bookmarks-api/internal/store"
)

// UserLookup loads the owner of a token.
type UserLookup interface {
	GetByID(ctx context.Context, id int64) (*store.User, error)
}

// BearerTokenMiddleware authenticates API requests via Bearer token.
type BearerTokenMiddleware struct {
	tokens TokenStore
	users  UserLookup
	log    logger.Logger
}

// NewBearerTokenMiddleware creates a new BearerTokenMiddleware.
func NewBearerTokenMiddleware(ts TokenStore, us UserLookup, log logger.Logger) *BearerTokenMiddleware {
	return &BearerTokenMiddleware{tokens: ts, users: us, log: log}
}

// Authenticate is an http.Handler middleware that extracts and validates a Bearer token.
// WHEN valid: injects the token owner's *store.User into context and fires an async last_used_at update.
// WHEN invalid/missing/expired/revoked: returns 401 with {"error": "unauthorized"}.
// WHEN the token or user lookup fails for any other reason: returns 500.
func (m *BearerTokenMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			m.reject(w, "missing bearer token")
			return
		}
		plaintext := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if plaintext == "" {
			m.reject(w, "empty bearer token")
			return
		}

		rec, err := m.tokens.GetByHash(r.Context(), HashToken(plaintext))
		if errors.Is(err, store.ErrNotFound) {
			m.reject(w, "unknown token")
			return
		}
		if err != nil {
			m.fail(w, "get token by hash", err)
			return
		}
		if !rec.Usable(time.Now()) {
			m.reject(w, "revoked or expired token")
			return
		}

		user, err := m.users.GetByID(r.Context(), rec.UserID)
		if errors.Is(err, store.ErrNotFound) {
			m.reject(w, "token owner not found")
			return
		}
		if err != nil {
			m.fail(w, "get token owner", err)
			return
		}

		// last_used_at is bookkeeping; don't hold the request for it.
		go func(id string) {
			if err := m.tokens.UpdateLastUsed(context.Background(), id); err != nil {
				m.log.Warn("update token last_used_at", logger.String("token_id", id), logger.Error(err))
			}
		}(rec.ID)

		ctx := context.WithValue(r.Context(), UserContextKey, user)
		ctx = context.WithValue(ctx, TokenContextKey, rec)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *BearerTokenMiddleware) reject(w http.ResponseWriter, reason string) {
	metrics.AuthFailuresTotal.WithLabelValues(reason).Inc()
	writeUnauthorized(w)
}

func (m *BearerTokenMiddleware) fail(w http.ResponseWriter, op string, err error) {
	m.log.Error("auth: "+op, logger.Error(err))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "internal error", "code": "INTERNAL_ERROR"})
}

// writeUnauthorized writes a 401 JSON response with {"error": "unauthorized"}.
func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized", "code": "UNAUTHORIZED"})
}
