package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Lead statuses form a closed set. Status is only ever mutated through the
// workflow engine (usecase.ApplyActionUseCase), never written directly.
const (
	StatusNew       = "NEW"
	StatusContacted = "CONTACTED"
	StatusQualified = "QUALIFIED"
	StatusConverted = "CONVERTED"
	StatusLost      = "LOST"
)

// Source channels accepted on intake.
const (
	SourceWebsite       = "WEBSITE"
	SourceReferral      = "REFERRAL"
	SourceColdCall      = "COLD_CALL"
	SourceAdvertisement = "ADVERTISEMENT"
	SourceEvent         = "EVENT"
)

var (
	ErrLeadNotFound        = errors.New("lead not found")
	ErrTaskNotFound        = errors.New("task not found")
	ErrReportNotFound      = errors.New("report not found")
	ErrRepNotFound         = errors.New("sales rep not found")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrConcurrencyConflict = errors.New("lead is locked by a concurrent update")
	ErrEmailAlreadyExists  = errors.New("a lead with this email already exists")
)

type Lead struct {
	ID            string     `json:"id"`
	CompanyName   string     `json:"company_name"`
	ContactPerson string     `json:"contact_person"`
	Email         string     `json:"email,omitempty"`
	Phone         string     `json:"phone,omitempty"`
	Source        string     `json:"source"`
	Industry      string     `json:"industry,omitempty"`
	BudgetCents   int64      `json:"budget_cents"`
	Status        string     `json:"status"`
	OwnerID       string     `json:"owner_id"`
	ConvertedAt   *time.Time `json:"converted_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type LeadFilter struct {
	Status  string
	Source  string
	OwnerID string
}

type LeadRepositoryInterface interface {
	Create(ctx context.Context, lead *Lead) error
	FindByID(ctx context.Context, id string) (*Lead, error)
	List(ctx context.Context, filter LeadFilter) ([]Lead, error)
	// CreatedBetween returns every lead created in [from, to), used by the
	// reporting aggregator to take a snapshot.
	CreatedBetween(ctx context.Context, from, to time.Time) ([]Lead, error)
}

func NewLead(companyName, contactPerson, email, phone, source, industry, ownerID string, budgetCents int64, now time.Time) *Lead {
	return &Lead{
		ID:            uuid.New().String(),
		CompanyName:   companyName,
		ContactPerson: contactPerson,
		Email:         email,
		Phone:         phone,
		Source:        source,
		Industry:      industry,
		BudgetCents:   budgetCents,
		Status:        StatusNew,
		OwnerID:       ownerID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func IsTerminalStatus(status string) bool {
	return status == StatusConverted || status == StatusLost
}

func IsValidSource(source string) bool {
	switch source {
	case SourceWebsite, SourceReferral, SourceColdCall, SourceAdvertisement, SourceEvent:
		return true
	}
	return false
}
