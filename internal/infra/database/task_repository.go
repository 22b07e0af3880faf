package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/pipewise/pipewise/internal/entity"
)

type TaskRepository struct {
	DB *sql.DB
}

func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{DB: db}
}

const taskColumns = `id, lead_id, title, description, due_at, completed_at, reminded_at, created_at, updated_at`

func createTaskTx(ctx context.Context, db execer, task *entity.Task) error {
	query := `
		INSERT INTO tasks (` + taskColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := db.ExecContext(ctx, query,
		task.ID,
		task.LeadID,
		task.Title,
		nullString(task.Description),
		task.DueAt,
		task.CompletedAt,
		task.RemindedAt,
		task.CreatedAt,
		task.UpdatedAt,
	)
	return err
}

func (r *TaskRepository) Create(ctx context.Context, task *entity.Task) error {
	return createTaskTx(ctx, r.DB, task)
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*entity.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`
	return scanTask(r.DB.QueryRowContext(ctx, query, id))
}

// Complete stamps completed_at only when unset, so replays leave the first
// completion time untouched.
func (r *TaskRepository) Complete(ctx context.Context, id string, now time.Time) (*entity.Task, error) {
	query := `
		UPDATE tasks
		SET completed_at = COALESCE(completed_at, $2),
		    updated_at = CASE WHEN completed_at IS NULL THEN $2 ELSE updated_at END
		WHERE id = $1
		RETURNING ` + taskColumns

	return scanTask(r.DB.QueryRowContext(ctx, query, id, now))
}

func (r *TaskRepository) DueBefore(ctx context.Context, now time.Time) ([]entity.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE due_at < $1 AND completed_at IS NULL
		ORDER BY due_at
	`

	rows, err := r.DB.QueryContext(ctx, query, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []entity.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

func scanTask(row rowScanner) (*entity.Task, error) {
	var task entity.Task
	var description sql.NullString
	var completedAt, remindedAt sql.NullTime

	err := row.Scan(
		&task.ID,
		&task.LeadID,
		&task.Title,
		&description,
		&task.DueAt,
		&completedAt,
		&remindedAt,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrTaskNotFound
		}
		return nil, err
	}

	task.Description = description.String
	if completedAt.Valid {
		t := completedAt.Time
		task.CompletedAt = &t
	}
	if remindedAt.Valid {
		t := remindedAt.Time
		task.RemindedAt = &t
	}
	return &task, nil
}
