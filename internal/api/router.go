package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/joestump/bookmarks-api/internal/auth"
	"github.com/joestump/bookmarks-api/internal/logger"
	"github.com/joestump/bookmarks-api/internal/store"
)

// Deps holds all dependencies required to build the API router.
type Deps struct {
	BearerAuth    *auth.BearerTokenMiddleware
	Bookmarks     store.BookmarkRepository
	Users         *store.UserStore
	Tokens        auth.TokenStore
	TokenLifetime time.Duration
	Logger        logger.Logger
}

// NewAPIRouter creates the chi router for the JSON API.
// /auth/signup and /auth/signin are public; everything else requires a Bearer token.
func NewAPIRouter(deps Deps) chi.Router {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()
	r.Use(jsonContentType)

	ah := &authAPIHandler{
		users:    deps.Users,
		tokens:   deps.Tokens,
		lifetime: deps.TokenLifetime,
		log:      log,
	}
	r.Post("/auth/signup", ah.Signup)
	r.Post("/auth/signin", ah.Signin)

	r.Group(func(r chi.Router) {
		r.Use(deps.BearerAuth.Authenticate)

		r.Post("/auth/signout", ah.Signout)
		registerUserRoutes(r, deps.Users, log)
		registerBookmarkRoutes(r, deps.Bookmarks, log)
	})

	return r
}

// jsonContentType sets Content-Type: application/json on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}
