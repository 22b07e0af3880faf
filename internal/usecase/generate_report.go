package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/pipewise/pipewise/internal/entity"
)

type EnqueueReportInput struct {
	RequestedBy string    `json:"requested_by"`
	From        time.Time `json:"from"`
	To          time.Time `json:"to"`
	Source      string    `json:"source"`
	OwnerID     string    `json:"owner_id"`
}

// GenerateReportUseCase covers both ends of the async report pipeline:
// Enqueue runs in the HTTP request, Process runs in the queue worker. The
// LLM is only ever touched from Process.
type GenerateReportUseCase struct {
	Reports    entity.ReportRepositoryInterface
	Reps       entity.SalesRepRepositoryInterface
	Dashboard  *DashboardUseCase
	Summarizer Summarizer
	Queue      QueueProducerInterface
	Email      EmailService
	Now        func() time.Time
}

func NewGenerateReportUseCase(
	reports entity.ReportRepositoryInterface,
	reps entity.SalesRepRepositoryInterface,
	dashboard *DashboardUseCase,
	summarizer Summarizer,
	queue QueueProducerInterface,
	email EmailService,
) *GenerateReportUseCase {
	return &GenerateReportUseCase{
		Reports:    reports,
		Reps:       reps,
		Dashboard:  dashboard,
		Summarizer: summarizer,
		Queue:      queue,
		Email:      email,
		Now:        time.Now,
	}
}

func (uc *GenerateReportUseCase) Enqueue(ctx context.Context, input EnqueueReportInput) (*entity.Report, error) {
	var validationErrors []ValidationError
	if strings.TrimSpace(input.RequestedBy) == "" {
		validationErrors = append(validationErrors, ValidationError{"requested_by", "is required"})
	}
	if input.From.IsZero() || input.To.IsZero() {
		validationErrors = append(validationErrors, ValidationError{"window", "from and to are required"})
	} else if !input.From.Before(input.To) {
		validationErrors = append(validationErrors, ValidationError{"window", "from must be before to"})
	}
	source := strings.ToUpper(strings.TrimSpace(input.Source))
	if source != "" && !entity.IsValidSource(source) {
		validationErrors = append(validationErrors, ValidationError{"source", "is not a known lead source"})
	}
	if len(validationErrors) > 0 {
		return nil, validationFailure(validationErrors)
	}

	ok, err := uc.Reps.Exists(ctx, input.RequestedBy)
	if err != nil {
		return nil, &TechnicalError{Code: CodeDependencyUnavailable, Message: err.Error()}
	}
	if !ok {
		return nil, &DomainError{Code: CodeValidation, Message: "requested_by does not reference a known sales rep"}
	}

	report := entity.NewReport(
		input.RequestedBy,
		input.From.UTC(),
		input.To.UTC(),
		source,
		input.OwnerID,
		uc.Now().UTC(),
	)

	if err := uc.Reports.Create(ctx, report); err != nil {
		return nil, &TechnicalError{Code: CodeDependencyUnavailable, Message: "failed to persist report: " + err.Error()}
	}

	if err := uc.Queue.PublishReportJob(ctx, ReportJobPayload{ReportID: report.ID}); err != nil {
		// The row exists but no worker will pick it up; fail it so the
		// client is not left polling a PENDING report forever.
		if markErr := uc.Reports.MarkFailed(ctx, report.ID, "queue unavailable", uc.Now().UTC()); markErr != nil {
			log.Printf("report %s: could not mark failed after publish error: %v", report.ID, markErr)
		}
		return nil, &TechnicalError{Code: CodeDependencyUnavailable, Message: "failed to enqueue report job: " + err.Error()}
	}

	return report, nil
}

func (uc *GenerateReportUseCase) GetReport(ctx context.Context, id string) (*entity.Report, error) {
	report, err := uc.Reports.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, entity.ErrReportNotFound) {
			return nil, &DomainError{Code: CodeNotFound, Message: err.Error()}
		}
		return nil, &TechnicalError{Code: CodeDependencyUnavailable, Message: err.Error()}
	}
	return report, nil
}

// Process is invoked by the queue worker. Redeliveries of an already
// processed report are acked without work.
func (uc *GenerateReportUseCase) Process(ctx context.Context, payload ReportJobPayload) error {
	report, err := uc.Reports.FindByID(ctx, payload.ReportID)
	if err != nil {
		if errors.Is(err, entity.ErrReportNotFound) {
			log.Printf("report job %s references a missing report, dropping", payload.ReportID)
			return nil
		}
		return &TechnicalError{Code: CodeDependencyUnavailable, Message: err.Error()}
	}
	if report.Status != entity.ReportPending {
		return nil
	}

	summary, err := uc.Dashboard.Summary(ctx, Window{From: report.WindowFrom, To: report.WindowTo}, Filters{
		Source:  report.Source,
		OwnerID: report.OwnerID,
	})
	if err != nil {
		return err
	}

	narrative, err := uc.Summarizer.Summarize(ctx, *summary)
	if err != nil {
		now := uc.Now().UTC()
		if markErr := uc.Reports.MarkFailed(ctx, report.ID, "text generation failed: "+err.Error(), now); markErr != nil {
			log.Printf("report %s: could not mark failed: %v", report.ID, markErr)
		}
		return &TechnicalError{Code: CodeDependencyUnavailable, Message: "text generation failed: " + err.Error()}
	}

	if err := uc.Reports.MarkReady(ctx, report.ID, narrative, uc.Now().UTC()); err != nil {
		return &TechnicalError{Code: CodeDependencyUnavailable, Message: "failed to store narrative: " + err.Error()}
	}

	uc.notifyRequester(ctx, report)
	return nil
}

// notifyRequester is best-effort: a lost email never fails the report.
func (uc *GenerateReportUseCase) notifyRequester(ctx context.Context, report *entity.Report) {
	if uc.Email == nil {
		return
	}
	rep, err := uc.Reps.FindByID(ctx, report.RequestedBy)
	if err != nil {
		log.Printf("report %s: could not resolve requester %s: %v", report.ID, report.RequestedBy, err)
		return
	}
	if err := uc.Email.SendReportReady(rep.Email, rep.Name, report.ID); err != nil {
		log.Printf("report %s: notification email failed: %v", report.ID, err)
	}
}
