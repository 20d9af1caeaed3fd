package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/joestump/bookmarks-api/internal/auth"
	"github.com/joestump/bookmarks-api/internal/logger"
	"github.com/joestump/bookmarks-api/internal/store"
)

// usersAPIHandler provides REST handlers for the caller's own profile.
type usersAPIHandler struct {
	users *store.UserStore
	log   logger.Logger
}

// registerUserRoutes registers user routes on r.
func registerUserRoutes(r chi.Router, users *store.UserStore, log logger.Logger) {
	h := &usersAPIHandler{users: users, log: log}
	r.Get("/users/me", h.Me)
	r.Patch("/users", h.Edit)
	r.Patch("/users/", h.Edit)
}

// Me returns the authenticated caller's profile.
// GET /users/me
func (h *usersAPIHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized", "UNAUTHORIZED")
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

// Edit updates the caller's email or names.
// PATCH /users
func (h *usersAPIHandler) Edit(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized", "UNAUTHORIZED")
		return
	}

	var req EditUserRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	updated, err := h.users.Update(r.Context(), user.ID, store.UserPatch{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if errors.Is(err, store.ErrEmailTaken) {
		writeError(w, http.StatusConflict, store.ErrEmailTaken.Error(), "EMAIL_TAKEN")
		return
	}
	if err != nil {
		writeServerError(w, r, h.log, "update user", err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(updated))
}
