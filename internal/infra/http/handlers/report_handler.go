package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pipewise/pipewise/internal/entity"
	"github.com/pipewise/pipewise/internal/infra/http/middleware"
	"github.com/pipewise/pipewise/internal/usecase"
)

type ReportService interface {
	Enqueue(ctx context.Context, input usecase.EnqueueReportInput) (*entity.Report, error)
	GetReport(ctx context.Context, id string) (*entity.Report, error)
}

type ReportHandler struct {
	Reports ReportService
}

func NewReportHandler(reports ReportService) *ReportHandler {
	return &ReportHandler{Reports: reports}
}

// Enqueue answers 202: the narrative is generated by the queue worker and
// clients poll Get until the status leaves PENDING.
func (h *ReportHandler) Enqueue(w http.ResponseWriter, r *http.Request) {
	var input usecase.EnqueueReportInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Code: "BAD_JSON", Message: "invalid JSON: " + err.Error()})
		return
	}

	report, err := h.Reports.Enqueue(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.RecordReportEnqueued()
	writeJSON(w, http.StatusAccepted, report)
}

func (h *ReportHandler) Get(w http.ResponseWriter, r *http.Request) {
	report, err := h.Reports.GetReport(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
