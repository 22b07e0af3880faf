package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/pipewise/pipewise/internal/usecase"
)

type Aggregator interface {
	Summary(ctx context.Context, window usecase.Window, filters usecase.Filters) (*usecase.PipelineSummary, error)
}

type DashboardHandler struct {
	Dashboard Aggregator
}

func NewDashboardHandler(dashboard Aggregator) *DashboardHandler {
	return &DashboardHandler{Dashboard: dashboard}
}

// Summary serves GET /dashboard/summary?from=&to=&source=&owner_id=&industry=.
// Dates accept YYYY-MM-DD or RFC3339; a missing window defaults to the last
// 30 days.
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	now := time.Now().UTC()
	window := usecase.Window{From: now.AddDate(0, 0, -30), To: now}

	if raw := q.Get("from"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Code: "BAD_DATE", Message: "from: " + err.Error()})
			return
		}
		window.From = t
	}
	if raw := q.Get("to"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Code: "BAD_DATE", Message: "to: " + err.Error()})
			return
		}
		window.To = t
	}

	filters := usecase.Filters{
		Source:   q.Get("source"),
		OwnerID:  q.Get("owner_id"),
		Industry: q.Get("industry"),
	}

	summary, err := h.Dashboard.Summary(r.Context(), window, filters)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
