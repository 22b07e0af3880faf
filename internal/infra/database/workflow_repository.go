package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/pipewise/pipewise/internal/entity"
	"github.com/pipewise/pipewise/internal/usecase"
)

// WorkflowRepository owns the read-validate-write sequence for a lead's
// status. The row lock (FOR UPDATE NOWAIT) serializes concurrent actions
// against the same lead; a locked row surfaces as ErrConcurrencyConflict
// instead of blocking the request.
type WorkflowRepository struct {
	DB *sql.DB
}

func NewWorkflowRepository(db *sql.DB) *WorkflowRepository {
	return &WorkflowRepository{DB: db}
}

func (r *WorkflowRepository) ApplyTransition(ctx context.Context, leadID string, fn usecase.TransitionFunc) (*entity.Lead, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1 FOR UPDATE NOWAIT`
	lead, err := scanLead(tx.QueryRowContext(ctx, query, leadID))
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "55P03" {
			return nil, entity.ErrConcurrencyConflict
		}
		return nil, err
	}

	result, err := fn(lead)
	if err != nil {
		// Validation failed against the locked state: the deferred
		// rollback guarantees nothing was written.
		return nil, err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE leads SET status = $2, converted_at = $3, updated_at = $4 WHERE id = $1
	`, lead.ID, lead.Status, lead.ConvertedAt, lead.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if result.Activity != nil {
		if err := appendActivityTx(ctx, tx, result.Activity); err != nil {
			return nil, err
		}
	}

	if result.Task != nil {
		if err := createTaskTx(ctx, tx, result.Task); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return lead, nil
}
