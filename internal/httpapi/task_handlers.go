package httpapi

import (
	"net/http"

	"taskdeck.org/internal/audit"
	"taskdeck.org/internal/auth"
	"taskdeck.org/internal/todo"
)

type taskCreateRequest struct {
	Title string `json:"title"`
}

type taskUpdateRequest struct {
	Title     *string `json:"title"`
	Completed *bool   `json:"completed"`
}

func (a *API) handleTasksCollection(w http.ResponseWriter, r *http.Request, listID string) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "invalid or expired access token")
		return
	}
	switch r.Method {
	case http.MethodGet:
		tasks, err := a.todo.Tasks(r.Context(), userID, listID)
		if err != nil {
			handleTodoError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, tasks)
	case http.MethodPost:
		var req taskCreateRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		task, err := a.todo.CreateTask(r.Context(), userID, listID, req.Title)
		if err != nil {
			handleTodoError(w, r, err)
			return
		}
		_ = audit.LogEvent(r.Context(), "task.create", map[string]any{"list_id": listID, "task_id": task.ID})
		writeJSON(w, http.StatusCreated, task)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
	}
}

func (a *API) handleTaskItem(w http.ResponseWriter, r *http.Request, listID, taskID string) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "invalid or expired access token")
		return
	}
	switch r.Method {
	case http.MethodGet:
		task, err := a.todo.Task(r.Context(), userID, listID, taskID)
		if err != nil {
			handleTodoError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, task)
	case http.MethodPatch:
		var req taskUpdateRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		update := todo.TaskUpdate{Title: req.Title, Completed: req.Completed}
		if err := a.todo.UpdateTask(r.Context(), userID, listID, taskID, update); err != nil {
			handleTodoError(w, r, err)
			return
		}
		_ = audit.LogEvent(r.Context(), "task.update", map[string]any{"list_id": listID, "task_id": taskID})
		writeJSON(w, http.StatusOK, map[string]string{"message": "updated successfully"})
	case http.MethodDelete:
		removed, err := a.todo.DeleteTask(r.Context(), userID, listID, taskID)
		if err != nil {
			handleTodoError(w, r, err)
			return
		}
		_ = audit.LogEvent(r.Context(), "task.delete", map[string]any{"list_id": listID, "task_id": taskID})
		writeJSON(w, http.StatusOK, removed)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPatch, http.MethodDelete)
	}
}
