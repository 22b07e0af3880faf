package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/pipewise/pipewise/internal/entity"
)

type CreateLeadInput struct {
	CompanyName   string `json:"company_name"`
	ContactPerson string `json:"contact_person"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Source        string `json:"source"`
	Industry      string `json:"industry"`
	OwnerID       string `json:"owner_id"`
	BudgetCents   int64  `json:"budget_cents"`
}

type CreateLeadUseCase struct {
	Repo    entity.LeadRepositoryInterface
	RepRepo entity.SalesRepRepositoryInterface
	Now     func() time.Time
}

func NewCreateLeadUseCase(repo entity.LeadRepositoryInterface, repRepo entity.SalesRepRepositoryInterface) *CreateLeadUseCase {
	return &CreateLeadUseCase{Repo: repo, RepRepo: repRepo, Now: time.Now}
}

// Execute validates intake and persists a new lead in status NEW. A lead is
// never created without an owning rep.
func (uc *CreateLeadUseCase) Execute(ctx context.Context, input CreateLeadInput) (*entity.Lead, error) {
	if errs := ValidateCreateLeadInput(input); len(errs) > 0 {
		return nil, validationFailure(errs)
	}

	ok, err := uc.RepRepo.Exists(ctx, input.OwnerID)
	if err != nil {
		return nil, &TechnicalError{Code: CodeDependencyUnavailable, Message: "failed to resolve owner: " + err.Error()}
	}
	if !ok {
		return nil, &DomainError{Code: CodeValidation, Message: "owner_id does not reference a known sales rep"}
	}

	lead := entity.NewLead(
		strings.TrimSpace(input.CompanyName),
		strings.TrimSpace(input.ContactPerson),
		strings.TrimSpace(input.Email),
		strings.TrimSpace(input.Phone),
		strings.ToUpper(input.Source),
		strings.TrimSpace(input.Industry),
		input.OwnerID,
		input.BudgetCents,
		uc.Now().UTC(),
	)

	if err := uc.Repo.Create(ctx, lead); err != nil {
		if errors.Is(err, entity.ErrEmailAlreadyExists) {
			return nil, &DomainError{Code: CodeConflict, Message: err.Error()}
		}
		return nil, &TechnicalError{Code: CodeDependencyUnavailable, Message: "failed to persist lead: " + err.Error()}
	}

	return lead, nil
}

// GetLead resolves a lead by id for the read endpoints.
func (uc *CreateLeadUseCase) GetLead(ctx context.Context, id string) (*entity.Lead, error) {
	lead, err := uc.Repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return nil, &DomainError{Code: CodeNotFound, Message: err.Error()}
		}
		return nil, &TechnicalError{Code: CodeDependencyUnavailable, Message: err.Error()}
	}
	return lead, nil
}

func (uc *CreateLeadUseCase) ListLeads(ctx context.Context, filter entity.LeadFilter) ([]entity.Lead, error) {
	leads, err := uc.Repo.List(ctx, filter)
	if err != nil {
		return nil, &TechnicalError{Code: CodeDependencyUnavailable, Message: err.Error()}
	}
	return leads, nil
}
