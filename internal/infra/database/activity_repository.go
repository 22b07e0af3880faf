package database

import (
	"context"
	"database/sql"

	"github.com/pipewise/pipewise/internal/entity"
)

// ActivityRepository only knows how to insert and list. The activity log is
// append-only; no update or delete statement exists in this package.
type ActivityRepository struct {
	DB *sql.DB
}

func NewActivityRepository(db *sql.DB) *ActivityRepository {
	return &ActivityRepository{DB: db}
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

func appendActivityTx(ctx context.Context, db execer, activity *entity.Activity) error {
	query := `
		INSERT INTO activities (id, lead_id, kind, body, actor_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := db.ExecContext(ctx, query,
		activity.ID,
		activity.LeadID,
		activity.Kind,
		nullString(activity.Body),
		activity.ActorID,
		activity.CreatedAt,
	)
	return err
}

func (r *ActivityRepository) Append(ctx context.Context, activity *entity.Activity) error {
	return appendActivityTx(ctx, r.DB, activity)
}

func (r *ActivityRepository) ListByLead(ctx context.Context, leadID string) ([]entity.Activity, error) {
	query := `
		SELECT id, lead_id, kind, body, actor_id, created_at
		FROM activities
		WHERE lead_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.DB.QueryContext(ctx, query, leadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	activities := []entity.Activity{}
	for rows.Next() {
		var a entity.Activity
		var body sql.NullString
		if err := rows.Scan(&a.ID, &a.LeadID, &a.Kind, &body, &a.ActorID, &a.CreatedAt); err != nil {
			return nil, err
		}
		a.Body = body.String
		activities = append(activities, a)
	}
	return activities, rows.Err()
}
