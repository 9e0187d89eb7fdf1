package httpapi

import (
	"net/http"
	"strings"

	"taskdeck.org/internal/audit"
	"taskdeck.org/internal/auth"
	"taskdeck.org/internal/todo"
)

type listCreateRequest struct {
	Title string `json:"title"`
}

type listUpdateRequest struct {
	Title *string `json:"title"`
}

func (a *API) handleListsCollection(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "invalid or expired access token")
		return
	}
	switch r.Method {
	case http.MethodGet:
		lists, err := a.todo.Lists(r.Context(), userID)
		if err != nil {
			handleTodoError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, lists)
	case http.MethodPost:
		var req listCreateRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		list, err := a.todo.CreateList(r.Context(), userID, req.Title)
		if err != nil {
			handleTodoError(w, r, err)
			return
		}
		_ = audit.LogEvent(r.Context(), "list.create", map[string]any{"list_id": list.ID})
		writeJSON(w, http.StatusCreated, list)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
	}
}

// handleListSubtree dispatches /lists/{id} and the nested /lists/{id}/tasks
// routes by hand, the stdlib mux being prefix-based.
func (a *API) handleListSubtree(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/lists/"), "/")
	segments := strings.Split(rest, "/")

	switch {
	case len(segments) == 1 && segments[0] != "":
		a.handleListItem(w, r, segments[0])
	case len(segments) == 2 && segments[1] == "tasks":
		a.handleTasksCollection(w, r, segments[0])
	case len(segments) == 3 && segments[1] == "tasks" && segments[2] != "":
		a.handleTaskItem(w, r, segments[0], segments[2])
	default:
		writeError(w, r, http.StatusNotFound, "resource not found")
	}
}

func (a *API) handleListItem(w http.ResponseWriter, r *http.Request, listID string) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "invalid or expired access token")
		return
	}
	switch r.Method {
	case http.MethodGet:
		list, err := a.todo.List(r.Context(), userID, listID)
		if err != nil {
			handleTodoError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	case http.MethodPatch:
		var req listUpdateRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if err := a.todo.UpdateList(r.Context(), userID, listID, todo.ListUpdate{Title: req.Title}); err != nil {
			handleTodoError(w, r, err)
			return
		}
		_ = audit.LogEvent(r.Context(), "list.update", map[string]any{"list_id": listID})
		writeJSON(w, http.StatusOK, map[string]string{"message": "updated successfully"})
	case http.MethodDelete:
		removed, err := a.todo.DeleteList(r.Context(), userID, listID)
		if err != nil {
			handleTodoError(w, r, err)
			return
		}
		_ = audit.LogEvent(r.Context(), "list.delete", map[string]any{"list_id": listID})
		writeJSON(w, http.StatusOK, removed)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPatch, http.MethodDelete)
	}
}
