package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/joestump/bookmarks-api/internal/logger"
	"github.com/joestump/bookmarks-api/internal/validation"
)

type errorBody struct {
	Error  string                  `json:"error"`
	Code   string                  `json:"code"`
	Fields []validation.FieldError `json:"fields,omitempty"`
}

// writeError writes a JSON error response with the given HTTP status code.
func writeError(w http.ResponseWriter, status int, message, code string) {
	writeJSON(w, status, errorBody{Error: message, Code: code})
}

// writeValidationError writes a 400 listing every failing field.
func writeValidationError(w http.ResponseWriter, fields []validation.FieldError) {
	writeJSON(w, http.StatusBadRequest, errorBody{
		Error:  "validation failed",
		Code:   "VALIDATION_FAILED",
		Fields: fields,
	})
}

// writeJSON writes a JSON response with the given HTTP status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeAndValidate decodes the JSON body into req and validates it. On
// failure it writes the 400 response and returns false. Unknown fields are
// ignored, so a client can never smuggle in fields like userId.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, req any) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
		return false
	}
	if fields := validation.Struct(req); fields != nil {
		writeValidationError(w, fields)
		return false
	}
	return true
}

// writeServerError logs err with the request id and writes a 503 when the
// database is locked, otherwise a 500.
func writeServerError(w http.ResponseWriter, r *http.Request, log logger.Logger, op string, err error) {
	log.Error("api: "+op,
		logger.Error(err),
		logger.String("request_id", middleware.GetReqID(r.Context())),
	)
	if isDBLockError(err) {
		writeError(w, http.StatusServiceUnavailable, "server is busy, please retry", "DB_BUSY")
		return
	}
	writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
}

// isDBLockError reports whether err is SQLite giving up on a lock
// (SQLITE_BUSY or SQLITE_LOCKED) after busy_timeout.
func isDBLockError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "database table is locked") ||
		strings.Contains(msg, "sqlite_busy")
}
