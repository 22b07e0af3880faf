package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pipewise/pipewise/internal/entity"
	"github.com/pipewise/pipewise/internal/infra/http/middleware"
	"github.com/pipewise/pipewise/internal/usecase"
)

type LeadCreator interface {
	Execute(ctx context.Context, input usecase.CreateLeadInput) (*entity.Lead, error)
	GetLead(ctx context.Context, id string) (*entity.Lead, error)
	ListLeads(ctx context.Context, filter entity.LeadFilter) ([]entity.Lead, error)
}

type ActionApplier interface {
	Execute(ctx context.Context, input usecase.ApplyActionInput) (*entity.Lead, error)
}

type LeadHandler struct {
	Leads       LeadCreator
	Actions     ActionApplier
	rateLimiter *RateLimiter
}

func NewLeadHandler(leads LeadCreator, actions ActionApplier) *LeadHandler {
	return &LeadHandler{
		Leads:       leads,
		Actions:     actions,
		rateLimiter: NewRateLimiter(30, time.Minute), // 30 req/min per IP on intake
	}
}

func (h *LeadHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !h.rateLimiter.Allow(getClientIP(r)) {
		writeJSON(w, http.StatusTooManyRequests, errorResponse{
			Code:    "RATE_LIMITED",
			Message: "too many requests, try again later",
		})
		return
	}

	var input usecase.CreateLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Code: "BAD_JSON", Message: "invalid JSON: " + err.Error()})
		return
	}

	lead, err := h.Leads.Execute(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.RecordLeadCreated(lead.Source)
	writeJSON(w, http.StatusCreated, lead)
}

func (h *LeadHandler) Get(w http.ResponseWriter, r *http.Request) {
	lead, err := h.Leads.GetLead(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := entity.LeadFilter{
		Status:  r.URL.Query().Get("status"),
		Source:  r.URL.Query().Get("source"),
		OwnerID: r.URL.Query().Get("owner_id"),
	}

	leads, err := h.Leads.ListLeads(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, leads)
}

// ApplyAction is the only route that changes a lead's status.
func (h *LeadHandler) ApplyAction(w http.ResponseWriter, r *http.Request) {
	var input usecase.ApplyActionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Code: "BAD_JSON", Message: "invalid JSON: " + err.Error()})
		return
	}
	input.LeadID = chi.URLParam(r, "id")

	lead, err := h.Actions.Execute(r.Context(), input)
	if err != nil {
		if code := usecase.ErrorCode(err); code == usecase.CodeInvalidTransition || code == usecase.CodeConflict {
			middleware.RecordTransitionRejection(code)
		}
		writeError(w, err)
		return
	}

	middleware.RecordLeadTransition(input.Action, lead.Status)
	writeJSON(w, http.StatusOK, lead)
}

func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}

type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    int
	window   time.Duration
}

type visitor struct {
	count     int
	lastReset time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    limit,
		window:   window,
	}

	go rl.cleanup()
	return rl
}

func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[ip]
	now := time.Now()

	if !exists {
		rl.visitors[ip] = &visitor{count: 1, lastReset: now}
		return true
	}

	if now.Sub(v.lastReset) > rl.window {
		v.count = 1
		v.lastReset = now
		return true
	}

	v.count++
	return v.count <= rl.limit
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for ip, v := range rl.visitors {
			if now.Sub(v.lastReset) > rl.window*2 {
				delete(rl.visitors, ip)
			}
		}
		rl.mu.Unlock()
	}
}
