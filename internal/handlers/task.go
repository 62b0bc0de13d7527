package handlers

import (
	"errors"
	"net/http"

	"github.com/crucial707/todo-api/internal/apperr"
	"github.com/crucial707/todo-api/internal/metrics"
	"github.com/crucial707/todo-api/internal/middleware"
	"github.com/crucial707/todo-api/internal/models"
	"github.com/crucial707/todo-api/internal/repo"
)

const msgTaskNotFound = "Task not found"

// TaskHandler serves the task CRUD endpoints. Every route sits behind
// middleware.Authenticate and every store call is scoped to the caller.
type TaskHandler struct {
	Repo *repo.TaskRepo
}

type createTaskInput struct {
	Title    *string `json:"task" validate:"required,min=1,max=100"`
	Priority *string `json:"priority" validate:"required,min=1,max=10"`
	Status   *string `json:"status" validate:"required,min=1,max=20"`
}

type updateTaskInput struct {
	Title    *string `json:"task" validate:"omitempty,min=1,max=100"`
	Priority *string `json:"priority" validate:"omitempty,min=1,max=10"`
	Status   *string `json:"status" validate:"omitempty,min=1,max=20"`
}

//
// ==========================
// Create Task
// ==========================
//

func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}

	var input createTaskInput
	empty, err := decodeJSONObject(r, &input)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	if empty {
		JSONError(w, "No data provided", http.StatusBadRequest)
		return
	}
	if input.Title == nil || input.Priority == nil || input.Status == nil {
		JSONError(w, "Missing required fields", http.StatusBadRequest)
		return
	}
	if fields := fieldErrors(input); fields != nil {
		JSONValidationError(w, "validation failed", fields, http.StatusBadRequest)
		return
	}

	task, err := h.Repo.Create(r.Context(), ownerID, *input.Title, *input.Priority, *input.Status)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	metrics.IncTaskMutations("create")

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Task created successfully",
		"task":    task,
	})
}

//
// ==========================
// List Tasks
// ==========================
//

func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}

	tasks, err := h.Repo.ListByOwner(r.Context(), ownerID)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tasks)
}

//
// ==========================
// Get Task
// ==========================
//

func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}
	id, ok := urlID(r, "id")
	if !ok {
		JSONError(w, msgTaskNotFound, http.StatusNotFound)
		return
	}

	task, err := h.Repo.GetForOwner(r.Context(), ownerID, id)
	if err != nil {
		WriteError(w, r, notFound(err))
		return
	}

	writeJSON(w, http.StatusOK, task)
}

//
// ==========================
// Update Task (partial: absent fields keep their value)
// ==========================
//

func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}
	id, ok := urlID(r, "id")
	if !ok {
		JSONError(w, msgTaskNotFound, http.StatusNotFound)
		return
	}

	// Ownership first: a foreign id answers 404 even when the body is empty.
	if _, err := h.Repo.GetForOwner(r.Context(), ownerID, id); err != nil {
		WriteError(w, r, notFound(err))
		return
	}

	var input updateTaskInput
	empty, err := decodeJSONObject(r, &input)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	if empty {
		JSONError(w, "No data provided", http.StatusBadRequest)
		return
	}
	if fields := fieldErrors(input); fields != nil {
		JSONValidationError(w, "validation failed", fields, http.StatusBadRequest)
		return
	}

	patch := models.TaskPatch{Title: input.Title, Priority: input.Priority, Status: input.Status}
	task, err := h.Repo.UpdateForOwner(r.Context(), ownerID, id, patch)
	if err != nil {
		WriteError(w, r, notFound(err))
		return
	}
	metrics.IncTaskMutations("update")

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Task updated successfully",
		"task":    task,
	})
}

//
// ==========================
// Delete Task
// ==========================
//

func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}
	id, ok := urlID(r, "id")
	if !ok {
		JSONError(w, msgTaskNotFound, http.StatusNotFound)
		return
	}

	if err := h.Repo.DeleteForOwner(r.Context(), ownerID, id); err != nil {
		WriteError(w, r, notFound(err))
		return
	}
	metrics.IncTaskMutations("delete")

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Task deleted successfully",
	})
}

// owner returns the authenticated caller. A missing id means the route was
// mounted without middleware.Authenticate.
func (h *TaskHandler) owner(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, ok := middleware.GetUserID(r.Context())
	if !ok {
		JSONError(w, "missing authorization header", http.StatusUnauthorized)
		return 0, false
	}
	return id, true
}

// notFound classifies repo.ErrNotFound as the caller-facing 404.
func notFound(err error) error {
	if errors.Is(err, repo.ErrNotFound) {
		return apperr.NotFound(msgTaskNotFound)
	}
	return err
}
