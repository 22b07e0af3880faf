package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/pipewise/pipewise/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

const leadColumns = `id, company_name, contact_person, email, phone, source, industry,
	budget_cents, status, owner_id, converted_at, created_at, updated_at`

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (` + leadColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.DB.ExecContext(ctx, query,
		lead.ID,
		lead.CompanyName,
		lead.ContactPerson,
		nullString(lead.Email),
		nullString(lead.Phone),
		lead.Source,
		nullString(lead.Industry),
		lead.BudgetCents,
		lead.Status,
		lead.OwnerID,
		lead.ConvertedAt,
		lead.CreatedAt,
		lead.UpdatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return entity.ErrEmailAlreadyExists
		}
		return err
	}

	return nil
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1`
	return scanLead(r.DB.QueryRowContext(ctx, query, id))
}

func (r *LeadRepository) List(ctx context.Context, filter entity.LeadFilter) ([]entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE 1=1`
	args := []interface{}{}

	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.Source != "" {
		args = append(args, filter.Source)
		query += fmt.Sprintf(" AND source = $%d", len(args))
	}
	if filter.OwnerID != "" {
		args = append(args, filter.OwnerID)
		query += fmt.Sprintf(" AND owner_id = $%d", len(args))
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectLeads(rows)
}

func (r *LeadRepository) CreatedBetween(ctx context.Context, from, to time.Time) ([]entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE created_at >= $1 AND created_at < $2 ORDER BY created_at`

	rows, err := r.DB.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectLeads(rows)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanLead(row rowScanner) (*entity.Lead, error) {
	var lead entity.Lead
	var email, phone, industry sql.NullString
	var convertedAt sql.NullTime

	err := row.Scan(
		&lead.ID,
		&lead.CompanyName,
		&lead.ContactPerson,
		&email,
		&phone,
		&lead.Source,
		&industry,
		&lead.BudgetCents,
		&lead.Status,
		&lead.OwnerID,
		&convertedAt,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrLeadNotFound
		}
		return nil, err
	}

	lead.Email = email.String
	lead.Phone = phone.String
	lead.Industry = industry.String
	if convertedAt.Valid {
		t := convertedAt.Time
		lead.ConvertedAt = &t
	}
	return &lead, nil
}

func collectLeads(rows *sql.Rows) ([]entity.Lead, error) {
	leads := []entity.Lead{}
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, *lead)
	}
	return leads, rows.Err()
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
