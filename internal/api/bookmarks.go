package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/joestump/bookmarks-api/internal/auth"
	"github.com/joestump/bookmarks-api/internal/logger"
	"github.com/joestump/bookmarks-api/internal/metrics"
	"github.com/joestump/bookmarks-api/internal/store"
)

// bookmarksAPIHandler provides REST handlers for bookmark management.
// Every call is scoped to the authenticated user's ID.
type bookmarksAPIHandler struct {
	bookmarks store.BookmarkRepository
	log       logger.Logger
}

// registerBookmarkRoutes registers bookmark routes on r.
func registerBookmarkRoutes(r chi.Router, bookmarks store.BookmarkRepository, log logger.Logger) {
	h := &bookmarksAPIHandler{bookmarks: bookmarks, log: log}
	r.Get("/bookmarks", h.List)
	r.Post("/bookmarks", h.Create)
	r.Get("/bookmarks/{id}", h.Get)
	r.Patch("/bookmarks/{id}", h.Edit)
	r.Delete("/bookmarks/{id}", h.Delete)
}

// List returns every bookmark owned by the caller.
// GET /bookmarks
func (h *bookmarksAPIHandler) List(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized", "UNAUTHORIZED")
		return
	}

	bookmarks, err := h.bookmarks.List(r.Context(), user.ID)
	if err != nil {
		h.internalError(w, r, "list bookmarks", err)
		return
	}

	resp := make([]*BookmarkResponse, 0, len(bookmarks))
	for _, b := range bookmarks {
		resp = append(resp, toBookmarkResponse(b))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get returns one of the caller's bookmarks. A bookmark that does not exist
// or belongs to someone else produces 200 with a null body, so the response
// never reveals whether another user's bookmark exists.
// GET /bookmarks/{id}
func (h *bookmarksAPIHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized", "UNAUTHORIZED")
		return
	}

	id, ok := parseID(w, r)
	if !ok {
		return
	}

	b, err := h.bookmarks.GetByID(r.Context(), user.ID, id)
	if err != nil {
		h.internalError(w, r, "get bookmark", err)
		return
	}

	writeJSON(w, http.StatusOK, toBookmarkResponse(b))
}

// Create stores a new bookmark owned by the caller.
// POST /bookmarks
func (h *bookmarksAPIHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized", "UNAUTHORIZED")
		return
	}

	var req CreateBookmarkRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	b, err := h.bookmarks.Create(r.Context(), user.ID, store.CreateBookmarkInput{
		Title:       req.Title,
		Link:        req.Link,
		Description: req.Description,
	})
	observe("create", err)
	if err != nil {
		h.internalError(w, r, "create bookmark", err)
		return
	}

	writeJSON(w, http.StatusCreated, toBookmarkResponse(b))
}

// Edit applies a partial update to one of the caller's bookmarks.
// PATCH /bookmarks/{id}
func (h *bookmarksAPIHandler) Edit(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized", "UNAUTHORIZED")
		return
	}

	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req EditBookmarkRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	b, err := h.bookmarks.EditByID(r.Context(), user.ID, id, store.BookmarkPatch{
		Title:            req.Title,
		Link:             req.Link,
		Description:      req.Description.Value,
		ClearDescription: req.Description.Present && req.Description.Value == nil,
	})
	observe("edit", err)
	if err != nil {
		if errors.Is(err, store.ErrOwnershipDenied) {
			writeError(w, http.StatusForbidden, store.ErrOwnershipDenied.Error(), "FORBIDDEN")
			return
		}
		h.internalError(w, r, "edit bookmark", err)
		return
	}

	writeJSON(w, http.StatusOK, toBookmarkResponse(b))
}

// Delete permanently removes one of the caller's bookmarks.
// DELETE /bookmarks/{id}
func (h *bookmarksAPIHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized", "UNAUTHORIZED")
		return
	}

	id, ok := parseID(w, r)
	if !ok {
		return
	}

	err := h.bookmarks.DeleteByID(r.Context(), user.ID, id)
	observe("delete", err)
	if err != nil {
		if errors.Is(err, store.ErrOwnershipDenied) {
			writeError(w, http.StatusForbidden, store.ErrOwnershipDenied.Error(), "FORBIDDEN")
			return
		}
		h.internalError(w, r, "delete bookmark", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *bookmarksAPIHandler) internalError(w http.ResponseWriter, r *http.Request, op string, err error) {
	writeServerError(w, r, h.log, op, err)
}

// parseID reads the {id} path parameter as a base-10 int64. On failure it
// writes a 400 and returns false.
func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "id must be an integer", "INVALID_ID")
		return 0, false
	}
	return id, true
}

// observe counts a mutating access layer call by outcome.
func observe(op string, err error) {
	outcome := "ok"
	switch {
	case errors.Is(err, store.ErrOwnershipDenied):
		outcome = "denied"
	case err != nil:
		outcome = "error"
	}
	metrics.BookmarkOperationsTotal.WithLabelValues(op, outcome).Inc()
}
