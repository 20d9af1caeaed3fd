package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/joestump/bookmarks-api/internal/auth"
	"github.com/joestump/bookmarks-api/internal/logger"
	"github.com/joestump/bookmarks-api/internal/metrics"
	"github.com/joestump/bookmarks-api/internal/store"
)

// authAPIHandler exchanges email/password credentials for bearer tokens.
type authAPIHandler struct {
	users    *store.UserStore
	tokens   auth.TokenStore
	lifetime time.Duration
	log      logger.Logger
}

// Signup registers a new account and returns its first token.
// POST /auth/signup
func (h *authAPIHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req AuthRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.internalError(w, r, "hash password", err)
		return
	}

	user, err := h.users.Create(r.Context(), req.Email, hash)
	if errors.Is(err, store.ErrEmailTaken) {
		writeError(w, http.StatusConflict, store.ErrEmailTaken.Error(), "EMAIL_TAKEN")
		return
	}
	if err != nil {
		h.internalError(w, r, "create user", err)
		return
	}

	h.issue(w, r, user, "signup", http.StatusCreated)
}

// Signin verifies credentials and returns a new token. Unknown email and
// wrong password produce the same response.
// POST /auth/signin
func (h *authAPIHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var req AuthRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.users.GetByEmail(r.Context(), req.Email)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusForbidden, auth.ErrCredentialsIncorrect.Error(), "CREDENTIALS_INCORRECT")
		return
	}
	if err != nil {
		h.internalError(w, r, "get user", err)
		return
	}

	err = auth.CheckPassword(user.PasswordHash, req.Password)
	if errors.Is(err, auth.ErrCredentialsIncorrect) {
		writeError(w, http.StatusForbidden, auth.ErrCredentialsIncorrect.Error(), "CREDENTIALS_INCORRECT")
		return
	}
	if err != nil {
		h.internalError(w, r, "check password", err)
		return
	}

	h.issue(w, r, user, "signin", http.StatusOK)
}

// Signout revokes the token that authenticated the request.
// POST /auth/signout
func (h *authAPIHandler) Signout(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	tok := auth.TokenFromContext(r.Context())
	if user == nil || tok == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized", "UNAUTHORIZED")
		return
	}

	if err := h.tokens.Revoke(r.Context(), tok.ID, user.ID); err != nil {
		h.internalError(w, r, "revoke token", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *authAPIHandler) issue(w http.ResponseWriter, r *http.Request, user *store.User, source string, status int) {
	plaintext, rec, err := auth.IssueToken(r.Context(), h.tokens, user.ID, source, h.lifetime)
	if err != nil {
		h.internalError(w, r, "issue token", err)
		return
	}
	metrics.TokensIssuedTotal.WithLabelValues(source).Inc()

	resp := TokenResponse{AccessToken: plaintext}
	if rec.ExpiresAt.Valid {
		exp := rec.ExpiresAt.Time
		resp.ExpiresAt = &exp
	}
	writeJSON(w, status, resp)
}

func (h *authAPIHandler) internalError(w http.ResponseWriter, r *http.Request, op string, err error) {
	writeServerError(w, r, h.log, op, err)
}
