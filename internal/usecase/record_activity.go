package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/pipewise/pipewise/internal/entity"
)

type RecordActivityInput struct {
	LeadID  string `json:"-"`
	Kind    string `json:"kind"`
	Body    string `json:"body"`
	ActorID string `json:"actor_id"`
}

type RecordActivityUseCase struct {
	Activities entity.ActivityRepositoryInterface
	Leads      entity.LeadRepositoryInterface
	Now        func() time.Time
}

func NewRecordActivityUseCase(activities entity.ActivityRepositoryInterface, leads entity.LeadRepositoryInterface) *RecordActivityUseCase {
	return &RecordActivityUseCase{Activities: activities, Leads: leads, Now: time.Now}
}

// Execute appends an interaction to the lead's log. The log is append-only;
// there is deliberately no update or delete counterpart.
func (uc *RecordActivityUseCase) Execute(ctx context.Context, input RecordActivityInput) (*entity.Activity, error) {
	if errs := ValidateRecordActivityInput(input); len(errs) > 0 {
		return nil, validationFailure(errs)
	}

	if _, err := uc.Leads.FindByID(ctx, input.LeadID); err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return nil, &DomainError{Code: CodeNotFound, Message: err.Error()}
		}
		return nil, &TechnicalError{Code: CodeDependencyUnavailable, Message: err.Error()}
	}

	activity := entity.NewActivity(
		input.LeadID,
		strings.ToUpper(input.Kind),
		strings.TrimSpace(input.Body),
		input.ActorID,
		uc.Now().UTC(),
	)

	if err := uc.Activities.Append(ctx, activity); err != nil {
		return nil, &TechnicalError{Code: CodeDependencyUnavailable, Message: "failed to append activity: " + err.Error()}
	}

	return activity, nil
}

func (uc *RecordActivityUseCase) ListByLead(ctx context.Context, leadID string) ([]entity.Activity, error) {
	if _, err := uc.Leads.FindByID(ctx, leadID); err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return nil, &DomainError{Code: CodeNotFound, Message: err.Error()}
		}
		return nil, &TechnicalError{Code: CodeDependencyUnavailable, Message: err.Error()}
	}

	activities, err := uc.Activities.ListByLead(ctx, leadID)
	if err != nil {
		return nil, &TechnicalError{Code: CodeDependencyUnavailable, Message: err.Error()}
	}
	return activities, nil
}
