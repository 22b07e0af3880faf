package usecase

import (
	"context"

	"github.com/pipewise/pipewise/internal/entity"
)

// TransitionResult carries everything the workflow engine wants persisted
// atomically with the status write: the mandatory STATUS_CHANGE activity and
// an optional side-effect task.
type TransitionResult struct {
	Activity *entity.Activity
	Task     *entity.Task
}

// TransitionFunc receives the lead under an exclusive row lock, mutates it in
// place and returns the rows to insert alongside. Returning an error aborts
// the whole transaction with no writes.
type TransitionFunc func(lead *entity.Lead) (*TransitionResult, error)

// WorkflowRepositoryInterface is the single writer of Lead.Status. The
// implementation must serialize ApplyTransition calls against the same lead
// and surface entity.ErrConcurrencyConflict when the row lock is taken.
type WorkflowRepositoryInterface interface {
	ApplyTransition(ctx context.Context, leadID string, fn TransitionFunc) (*entity.Lead, error)
}

// Summarizer is the capability interface over the external text-generation
// service. The workflow core has no compile-time knowledge of the provider.
type Summarizer interface {
	Summarize(ctx context.Context, summary PipelineSummary) (string, error)
}

// ReportJobPayload travels over the queue between Enqueue and Process.
type ReportJobPayload struct {
	ReportID string `json:"report_id"`
}

type QueueProducerInterface interface {
	PublishReportJob(ctx context.Context, payload ReportJobPayload) error
}

type EmailService interface {
	SendReportReady(to, name, reportID string) error
}
