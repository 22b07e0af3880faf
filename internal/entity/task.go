package entity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Task struct {
	ID          string     `json:"id"`
	LeadID      string     `json:"lead_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	DueAt       time.Time  `json:"due_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	RemindedAt  *time.Time `json:"reminded_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (t *Task) Completed() bool {
	return t.CompletedAt != nil
}

func (t *Task) Overdue(now time.Time) bool {
	return !t.Completed() && t.DueAt.Before(now)
}

type TaskRepositoryInterface interface {
	Create(ctx context.Context, task *Task) error
	FindByID(ctx context.Context, id string) (*Task, error)
	// Complete stamps completed_at if unset. Implementations return the task
	// as stored afterwards, so completing twice is observationally a no-op.
	Complete(ctx context.Context, id string, now time.Time) (*Task, error)
	DueBefore(ctx context.Context, now time.Time) ([]Task, error)
}

func NewTask(leadID, title, description string, dueAt, now time.Time) *Task {
	return &Task{
		ID:          uuid.New().String(),
		LeadID:      leadID,
		Title:       title,
		Description: description,
		DueAt:       dueAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
