package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/pipewise/pipewise/internal/entity"
	"github.com/pipewise/pipewise/internal/infra/http/handlers"
	"github.com/pipewise/pipewise/internal/usecase"
)

type stubLeadService struct {
	lead    *entity.Lead
	leads   []entity.Lead
	execErr error
	getErr  error
}

func (s *stubLeadService) Execute(ctx context.Context, input usecase.CreateLeadInput) (*entity.Lead, error) {
	if s.execErr != nil {
		return nil, s.execErr
	}
	return s.lead, nil
}

func (s *stubLeadService) GetLead(ctx context.Context, id string) (*entity.Lead, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.lead, nil
}

func (s *stubLeadService) ListLeads(ctx context.Context, filter entity.LeadFilter) ([]entity.Lead, error) {
	return s.leads, nil
}

type stubActionService struct {
	lead *entity.Lead
	err  error
}

func (s *stubActionService) Execute(ctx context.Context, input usecase.ApplyActionInput) (*entity.Lead, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.lead, nil
}

func newRouter(h *handlers.LeadHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Post("/leads", h.Create)
	r.Get("/leads/{id}", h.Get)
	r.Post("/leads/{id}/actions", h.ApplyAction)
	return r
}

func TestCreateLeadHandlerReturns201(t *testing.T) {
	lead := &entity.Lead{ID: "lead-1", Status: entity.StatusNew, Source: entity.SourceWebsite}
	h := handlers.NewLeadHandler(&stubLeadService{lead: lead}, &stubActionService{})

	body := `{"company_name":"Acme","contact_person":"Jordan","source":"WEBSITE","owner_id":"rep-1"}`
	req := httptest.NewRequest(http.MethodPost, "/leads", strings.NewReader(body))
	rec := httptest.NewRecorder()

	newRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":"lead-1"`)
}

func TestCreateLeadHandlerBadJSON(t *testing.T) {
	h := handlers.NewLeadHandler(&stubLeadService{}, &stubActionService{})

	req := httptest.NewRequest(http.MethodPost, "/leads", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	newRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "BAD_JSON")
}

func TestCreateLeadHandlerValidationError(t *testing.T) {
	h := handlers.NewLeadHandler(&stubLeadService{
		execErr: &usecase.DomainError{Code: usecase.CodeValidation, Message: "validation failed: company_name (is required)"},
	}, &stubActionService{})

	req := httptest.NewRequest(http.MethodPost, "/leads", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	newRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), usecase.CodeValidation)
}

func TestGetLeadHandlerNotFound(t *testing.T) {
	h := handlers.NewLeadHandler(&stubLeadService{
		getErr: &usecase.DomainError{Code: usecase.CodeNotFound, Message: "lead not found"},
	}, &stubActionService{})

	req := httptest.NewRequest(http.MethodGet, "/leads/ghost", nil)
	rec := httptest.NewRecorder()

	newRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestApplyActionHandlerInvalidTransitionReturns409(t *testing.T) {
	h := handlers.NewLeadHandler(&stubLeadService{}, &stubActionService{
		err: &usecase.DomainError{Code: usecase.CodeInvalidTransition, Message: "action CONTACT is not allowed from status CONVERTED"},
	})

	req := httptest.NewRequest(http.MethodPost, "/leads/lead-1/actions",
		strings.NewReader(`{"action":"CONTACT","actor_id":"rep-1"}`))
	rec := httptest.NewRecorder()

	newRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), usecase.CodeInvalidTransition)
}

func TestApplyActionHandlerSuccess(t *testing.T) {
	h := handlers.NewLeadHandler(&stubLeadService{}, &stubActionService{
		lead: &entity.Lead{ID: "lead-1", Status: entity.StatusContacted},
	})

	req := httptest.NewRequest(http.MethodPost, "/leads/lead-1/actions",
		strings.NewReader(`{"action":"CONTACT","actor_id":"rep-1"}`))
	rec := httptest.NewRecorder()

	newRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), entity.StatusContacted)
}

func TestApplyActionHandlerDependencyDownReturns503(t *testing.T) {
	h := handlers.NewLeadHandler(&stubLeadService{}, &stubActionService{
		err: &usecase.TechnicalError{Code: usecase.CodeDependencyUnavailable, Message: "transition failed: db down"},
	})

	req := httptest.NewRequest(http.MethodPost, "/leads/lead-1/actions",
		strings.NewReader(`{"action":"CONTACT","actor_id":"rep-1"}`))
	rec := httptest.NewRecorder()

	newRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
