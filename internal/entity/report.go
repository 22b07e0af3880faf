package entity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Report lifecycle: PENDING (row created, job queued) -> READY | FAILED.
const (
	ReportPending = "PENDING"
	ReportReady   = "READY"
	ReportFailed  = "FAILED"
)

// Report is an AI-generated narrative over an aggregate window. The heavy
// work happens in the queue worker; the HTTP layer only enqueues and polls.
type Report struct {
	ID          string     `json:"id"`
	RequestedBy string     `json:"requested_by"`
	WindowFrom  time.Time  `json:"window_from"`
	WindowTo    time.Time  `json:"window_to"`
	Source      string     `json:"source,omitempty"`
	OwnerID     string     `json:"owner_id,omitempty"`
	Status      string     `json:"status"`
	Narrative   string     `json:"narrative,omitempty"`
	FailReason  string     `json:"fail_reason,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type ReportRepositoryInterface interface {
	Create(ctx context.Context, report *Report) error
	FindByID(ctx context.Context, id string) (*Report, error)
	MarkReady(ctx context.Context, id, narrative string, now time.Time) error
	MarkFailed(ctx context.Context, id, reason string, now time.Time) error
}

func NewReport(requestedBy string, from, to time.Time, source, ownerID string, now time.Time) *Report {
	return &Report{
		ID:          uuid.New().String(),
		RequestedBy: requestedBy,
		WindowFrom:  from,
		WindowTo:    to,
		Source:      source,
		OwnerID:     ownerID,
		Status:      ReportPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
