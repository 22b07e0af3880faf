package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/pipewise/pipewise/internal/entity"
)

type CreateTaskInput struct {
	LeadID      string    `json:"-"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueAt       time.Time `json:"due_at"`
}

type TaskUseCase struct {
	Tasks entity.TaskRepositoryInterface
	Leads entity.LeadRepositoryInterface
	Now   func() time.Time
}

func NewTaskUseCase(tasks entity.TaskRepositoryInterface, leads entity.LeadRepositoryInterface) *TaskUseCase {
	return &TaskUseCase{Tasks: tasks, Leads: leads, Now: time.Now}
}

func (uc *TaskUseCase) CreateTask(ctx context.Context, input CreateTaskInput) (*entity.Task, error) {
	if errs := ValidateCreateTaskInput(input); len(errs) > 0 {
		return nil, validationFailure(errs)
	}

	if _, err := uc.Leads.FindByID(ctx, input.LeadID); err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return nil, &DomainError{Code: CodeNotFound, Message: err.Error()}
		}
		return nil, &TechnicalError{Code: CodeDependencyUnavailable, Message: err.Error()}
	}

	task := entity.NewTask(
		input.LeadID,
		strings.TrimSpace(input.Title),
		strings.TrimSpace(input.Description),
		input.DueAt.UTC(),
		uc.Now().UTC(),
	)

	if err := uc.Tasks.Create(ctx, task); err != nil {
		return nil, &TechnicalError{Code: CodeDependencyUnavailable, Message: "failed to persist task: " + err.Error()}
	}

	return task, nil
}

// CompleteTask is idempotent: completing an already-completed task returns
// the task unchanged rather than an error.
func (uc *TaskUseCase) CompleteTask(ctx context.Context, id string) (*entity.Task, error) {
	task, err := uc.Tasks.Complete(ctx, id, uc.Now().UTC())
	if err != nil {
		if errors.Is(err, entity.ErrTaskNotFound) {
			return nil, &DomainError{Code: CodeNotFound, Message: err.Error()}
		}
		return nil, &TechnicalError{Code: CodeDependencyUnavailable, Message: err.Error()}
	}
	return task, nil
}

// OverdueTasks is a pure read: due before now and not completed. Reminders
// are computed at query time, no background timer participates.
func (uc *TaskUseCase) OverdueTasks(ctx context.Context) ([]entity.Task, error) {
	tasks, err := uc.Tasks.DueBefore(ctx, uc.Now().UTC())
	if err != nil {
		return nil, &TechnicalError{Code: CodeDependencyUnavailable, Message: err.Error()}
	}
	return tasks, nil
}
