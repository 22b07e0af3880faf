package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/pipewise/pipewise/internal/entity"
)

type ReportRepository struct {
	DB *sql.DB
}

func NewReportRepository(db *sql.DB) *ReportRepository {
	return &ReportRepository{DB: db}
}

const reportColumns = `id, requested_by, window_from, window_to, source, owner_id,
	status, narrative, fail_reason, completed_at, created_at, updated_at`

func (r *ReportRepository) Create(ctx context.Context, report *entity.Report) error {
	query := `
		INSERT INTO reports (` + reportColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.DB.ExecContext(ctx, query,
		report.ID,
		report.RequestedBy,
		report.WindowFrom,
		report.WindowTo,
		nullString(report.Source),
		nullString(report.OwnerID),
		report.Status,
		nullString(report.Narrative),
		nullString(report.FailReason),
		report.CompletedAt,
		report.CreatedAt,
		report.UpdatedAt,
	)
	return err
}

func (r *ReportRepository) FindByID(ctx context.Context, id string) (*entity.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports WHERE id = $1`

	var report entity.Report
	var source, ownerID, narrative, failReason sql.NullString
	var completedAt sql.NullTime

	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&report.ID,
		&report.RequestedBy,
		&report.WindowFrom,
		&report.WindowTo,
		&source,
		&ownerID,
		&report.Status,
		&narrative,
		&failReason,
		&completedAt,
		&report.CreatedAt,
		&report.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrReportNotFound
		}
		return nil, err
	}

	report.Source = source.String
	report.OwnerID = ownerID.String
	report.Narrative = narrative.String
	report.FailReason = failReason.String
	if completedAt.Valid {
		t := completedAt.Time
		report.CompletedAt = &t
	}
	return &report, nil
}

func (r *ReportRepository) MarkReady(ctx context.Context, id, narrative string, now time.Time) error {
	return r.markDone(ctx, id, entity.ReportReady, narrative, "", now)
}

func (r *ReportRepository) MarkFailed(ctx context.Context, id, reason string, now time.Time) error {
	return r.markDone(ctx, id, entity.ReportFailed, "", reason, now)
}

func (r *ReportRepository) markDone(ctx context.Context, id, status, narrative, reason string, now time.Time) error {
	query := `
		UPDATE reports
		SET status = $2, narrative = $3, fail_reason = $4, completed_at = $5, updated_at = $5
		WHERE id = $1
	`
	result, err := r.DB.ExecContext(ctx, query, id, status, nullString(narrative), nullString(reason), now)
	if err != nil {
		return err
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return entity.ErrReportNotFound
	}
	return nil
}
