package usecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/pipewise/pipewise/internal/entity"
	"github.com/pipewise/pipewise/internal/usecase"
)

// MockLeadRepository
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) List(ctx context.Context, filter entity.LeadFilter) ([]entity.Lead, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) CreatedBetween(ctx context.Context, from, to time.Time) ([]entity.Lead, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Lead), args.Error(1)
}

// MockSalesRepRepository
type MockSalesRepRepository struct {
	mock.Mock
}

func (m *MockSalesRepRepository) FindByID(ctx context.Context, id string) (*entity.SalesRep, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.SalesRep), args.Error(1)
}

func (m *MockSalesRepRepository) Exists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockActivityRepository
type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) Append(ctx context.Context, activity *entity.Activity) error {
	args := m.Called(ctx, activity)
	return args.Error(0)
}

func (m *MockActivityRepository) ListByLead(ctx context.Context, leadID string) ([]entity.Activity, error) {
	args := m.Called(ctx, leadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Activity), args.Error(1)
}

// MockTaskRepository
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) Create(ctx context.Context, task *entity.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) FindByID(ctx context.Context, id string) (*entity.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Task), args.Error(1)
}

func (m *MockTaskRepository) Complete(ctx context.Context, id string, now time.Time) (*entity.Task, error) {
	args := m.Called(ctx, id, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Task), args.Error(1)
}

func (m *MockTaskRepository) DueBefore(ctx context.Context, now time.Time) ([]entity.Task, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Task), args.Error(1)
}

// MockReportRepository
type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) Create(ctx context.Context, report *entity.Report) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockReportRepository) FindByID(ctx context.Context, id string) (*entity.Report, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Report), args.Error(1)
}

func (m *MockReportRepository) MarkReady(ctx context.Context, id, narrative string, now time.Time) error {
	args := m.Called(ctx, id, narrative, now)
	return args.Error(0)
}

func (m *MockReportRepository) MarkFailed(ctx context.Context, id, reason string, now time.Time) error {
	args := m.Called(ctx, id, reason, now)
	return args.Error(0)
}

// MockQueueProducer
type MockQueueProducer struct {
	mock.Mock
}

func (m *MockQueueProducer) PublishReportJob(ctx context.Context, payload usecase.ReportJobPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

// MockSummarizer
type MockSummarizer struct {
	mock.Mock
}

func (m *MockSummarizer) Summarize(ctx context.Context, summary usecase.PipelineSummary) (string, error) {
	args := m.Called(ctx, summary)
	return args.String(0), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendReportReady(to, name, reportID string) error {
	args := m.Called(to, name, reportID)
	return args.Error(0)
}

// fakeWorkflowRepo holds the lead in memory and mimics the transactional
// contract: if fn fails nothing changes, if it succeeds the lead and the
// returned rows are "committed" together.
type fakeWorkflowRepo struct {
	lead       *entity.Lead
	err        error
	activities []*entity.Activity
	tasks      []*entity.Task
}

func (f *fakeWorkflowRepo) ApplyTransition(ctx context.Context, leadID string, fn usecase.TransitionFunc) (*entity.Lead, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.lead == nil || f.lead.ID != leadID {
		return nil, entity.ErrLeadNotFound
	}

	working := *f.lead
	result, err := fn(&working)
	if err != nil {
		return nil, err
	}

	f.lead = &working
	if result.Activity != nil {
		f.activities = append(f.activities, result.Activity)
	}
	if result.Task != nil {
		f.tasks = append(f.tasks, result.Task)
	}
	return &working, nil
}
