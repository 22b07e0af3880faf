package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pipewise/pipewise/internal/entity"
	"github.com/pipewise/pipewise/internal/usecase"
)

type ActivityRecorder interface {
	Execute(ctx context.Context, input usecase.RecordActivityInput) (*entity.Activity, error)
	ListByLead(ctx context.Context, leadID string) ([]entity.Activity, error)
}

type ActivityHandler struct {
	Activities ActivityRecorder
}

func NewActivityHandler(activities ActivityRecorder) *ActivityHandler {
	return &ActivityHandler{Activities: activities}
}

func (h *ActivityHandler) Record(w http.ResponseWriter, r *http.Request) {
	var input usecase.RecordActivityInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Code: "BAD_JSON", Message: "invalid JSON: " + err.Error()})
		return
	}
	input.LeadID = chi.URLParam(r, "id")

	activity, err := h.Activities.Execute(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, activity)
}

func (h *ActivityHandler) ListByLead(w http.ResponseWriter, r *http.Request) {
	activities, err := h.Activities.ListByLead(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, activities)
}
