package auth

import (
	"context"

	"github.com/joestump/bookmarks-api/internal/store"
)

type contextKey string

const (
	UserContextKey  contextKey = "user"
	TokenContextKey contextKey = "token"
)

// UserFromContext retrieves the authenticated user from the context.
func UserFromContext(ctx context.Context) *store.User {
	u, _ := ctx.Value(UserContextKey).(*store.User)
	return u
}

// TokenFromContext retrieves the API token that authenticated the request.
func TokenFromContext(ctx context.Context) *TokenRecord {
	t, _ := ctx.Value(TokenContextKey).(*TokenRecord)
	return t
}

// WithUser returns a copy of ctx carrying user. Exposed for handler tests
// that bypass token authentication.
func WithUser(ctx context.Context, user *store.User) context.Context {
	return context.WithValue(ctx, UserContextKey, user)
}
