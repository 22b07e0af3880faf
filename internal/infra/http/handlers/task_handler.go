package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pipewise/pipewise/internal/entity"
	"github.com/pipewise/pipewise/internal/usecase"
)

type TaskService interface {
	CreateTask(ctx context.Context, input usecase.CreateTaskInput) (*entity.Task, error)
	CompleteTask(ctx context.Context, id string) (*entity.Task, error)
	OverdueTasks(ctx context.Context) ([]entity.Task, error)
}

type TaskHandler struct {
	Tasks TaskService
}

func NewTaskHandler(tasks TaskService) *TaskHandler {
	return &TaskHandler{Tasks: tasks}
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateTaskInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Code: "BAD_JSON", Message: "invalid JSON: " + err.Error()})
		return
	}
	input.LeadID = chi.URLParam(r, "id")

	task, err := h.Tasks.CreateTask(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

// Complete is idempotent; repeating the call returns 200 with the same task.
func (h *TaskHandler) Complete(w http.ResponseWriter, r *http.Request) {
	task, err := h.Tasks.CompleteTask(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) Overdue(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.Tasks.OverdueTasks(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}
