package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pipewise/pipewise/internal/entity"
)

type ApplyActionInput struct {
	LeadID  string `json:"-"`
	Action  string `json:"action"`
	ActorID string `json:"actor_id"`
}

// ApplyActionUseCase is the workflow engine. It is the only code path that
// writes Lead.Status: the repository hands it the lead under an exclusive
// lock, the transition table decides the target, and the STATUS_CHANGE
// activity plus any side-effect task commit in the same transaction.
type ApplyActionUseCase struct {
	Workflow *entity.Workflow
	Repo     WorkflowRepositoryInterface
	Now      func() time.Time
}

func NewApplyActionUseCase(workflow *entity.Workflow, repo WorkflowRepositoryInterface) *ApplyActionUseCase {
	return &ApplyActionUseCase{Workflow: workflow, Repo: repo, Now: time.Now}
}

func (uc *ApplyActionUseCase) Execute(ctx context.Context, input ApplyActionInput) (*entity.Lead, error) {
	var validationErrors []ValidationError
	if strings.TrimSpace(input.LeadID) == "" {
		validationErrors = append(validationErrors, ValidationError{"lead_id", "is required"})
	}
	if strings.TrimSpace(input.Action) == "" {
		validationErrors = append(validationErrors, ValidationError{"action", "is required"})
	}
	if strings.TrimSpace(input.ActorID) == "" {
		validationErrors = append(validationErrors, ValidationError{"actor_id", "is required"})
	}
	if len(validationErrors) > 0 {
		return nil, validationFailure(validationErrors)
	}

	action := strings.ToUpper(input.Action)

	lead, err := uc.Repo.ApplyTransition(ctx, input.LeadID, func(lead *entity.Lead) (*TransitionResult, error) {
		transition, ok := uc.Workflow.Next(lead.Status, action)
		if !ok {
			return nil, &DomainError{
				Code:    CodeInvalidTransition,
				Message: fmt.Sprintf("action %s is not allowed from status %s", action, lead.Status),
			}
		}

		now := uc.Now().UTC()
		from := lead.Status
		lead.Status = transition.To
		lead.UpdatedAt = now
		if transition.To == entity.StatusConverted {
			lead.ConvertedAt = &now
		}

		result := &TransitionResult{
			Activity: entity.NewActivity(
				lead.ID,
				entity.ActivityStatusChange,
				fmt.Sprintf("status changed from %s to %s", from, transition.To),
				input.ActorID,
				now,
			),
		}

		if transition.SideEffect == entity.SideEffectCreateFollowUpTask {
			result.Task = entity.NewTask(
				lead.ID,
				"Follow up with "+lead.ContactPerson,
				fmt.Sprintf("Auto-created on entering %s", transition.To),
				now.Add(entity.FollowUpOffset),
				now,
			)
		}

		return result, nil
	})

	if err != nil {
		switch {
		case IsDomainError(err):
			return nil, err
		case errors.Is(err, entity.ErrLeadNotFound):
			return nil, &DomainError{Code: CodeNotFound, Message: err.Error()}
		case errors.Is(err, entity.ErrConcurrencyConflict):
			return nil, &DomainError{Code: CodeConflict, Message: err.Error()}
		default:
			return nil, &TechnicalError{Code: CodeDependencyUnavailable, Message: "transition failed: " + err.Error()}
		}
	}

	return lead, nil
}
