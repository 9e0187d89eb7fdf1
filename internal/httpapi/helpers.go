package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"taskdeck.org/internal/auth"
	"taskdeck.org/internal/obs"
	"taskdeck.org/internal/todo"
)

const maxBodyBytes = 1 << 20 // 1 MiB

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		obs.Logger().Println(`{"level":"error","msg":"response encode failed"}`)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	body := map[string]any{"error": msg}
	if rid := requestIDFrom(r.Context()); rid != "" {
		body["request_id"] = rid
	}
	writeJSON(w, status, body)
}

func writeValidationError(w http.ResponseWriter, r *http.Request, verr *auth.ValidationError) {
	body := map[string]any{
		"error":  "validation failed",
		"fields": verr.Fields,
	}
	if rid := requestIDFrom(r.Context()); rid != "" {
		body["request_id"] = rid
	}
	writeJSON(w, http.StatusBadRequest, body)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
}

// handleTodoError maps domain errors onto HTTP statuses. Not-found covers both
// absent and foreign resources, so nothing leaks about other tenants.
func handleTodoError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, todo.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "resource not found")
	case errors.Is(err, todo.ErrInvalidInput):
		writeError(w, r, http.StatusBadRequest, "invalid input")
	default:
		obs.LogRequest(map[string]any{
			"level": "error",
			"msg":   "todo operation failed",
			"error": err.Error(),
			"path":  r.URL.Path,
		})
		writeError(w, r, http.StatusInternalServerError, "internal error")
	}
}
