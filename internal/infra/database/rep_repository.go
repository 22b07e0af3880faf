package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/pipewise/pipewise/internal/entity"
)

type SalesRepRepository struct {
	DB *sql.DB
}

func NewSalesRepRepository(db *sql.DB) *SalesRepRepository {
	return &SalesRepRepository{DB: db}
}

func (r *SalesRepRepository) FindByID(ctx context.Context, id string) (*entity.SalesRep, error) {
	query := `SELECT id, name, email, region, active FROM sales_reps WHERE id = $1`

	var rep entity.SalesRep
	var region sql.NullString
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&rep.ID, &rep.Name, &rep.Email, &region, &rep.Active)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrRepNotFound
		}
		return nil, err
	}
	rep.Region = region.String
	return &rep, nil
}

func (r *SalesRepRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM sales_reps WHERE id = $1 AND active)`, id).Scan(&exists)
	return exists, err
}
