package worker

import (
	"context"
	"database/sql"
	"log"
	"time"
)

// ReminderSender is satisfied by mail.EmailSender.
type ReminderSender interface {
	SendTaskReminder(to, name, title, company, dueAt string) error
}

// TaskReminderWorker periodically emails reps about overdue tasks. Overdue
// detection itself is a pure query; this worker only adds the notification
// on top and stamps reminded_at so each task is reminded once.
type TaskReminderWorker struct {
	db           *sql.DB
	sender       ReminderSender
	tickInterval time.Duration
}

func NewTaskReminderWorker(db *sql.DB, sender ReminderSender) *TaskReminderWorker {
	return &TaskReminderWorker{
		db:           db,
		sender:       sender,
		tickInterval: 15 * time.Minute,
	}
}

func (w *TaskReminderWorker) Start(ctx context.Context) {
	log.Println("task reminder worker started")

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.remindOverdue(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("task reminder worker stopped")
			return
		case <-ticker.C:
			w.remindOverdue(ctx)
		}
	}
}

func (w *TaskReminderWorker) remindOverdue(ctx context.Context) {
	query := `
		SELECT t.id, t.title, t.due_at, l.company_name, r.name, r.email
		FROM tasks t
		JOIN leads l ON l.id = t.lead_id
		JOIN sales_reps r ON r.id = l.owner_id
		WHERE t.due_at < NOW()
		  AND t.completed_at IS NULL
		  AND t.reminded_at IS NULL
	`

	rows, err := w.db.QueryContext(ctx, query)
	if err != nil {
		log.Printf("reminder worker: query failed: %v", err)
		return
	}
	defer rows.Close()

	type reminder struct {
		taskID, title, company, repName, repEmail string
		dueAt                                     time.Time
	}

	var due []reminder
	for rows.Next() {
		var rem reminder
		if err := rows.Scan(&rem.taskID, &rem.title, &rem.dueAt, &rem.company, &rem.repName, &rem.repEmail); err != nil {
			log.Printf("reminder worker: scan failed: %v", err)
			return
		}
		due = append(due, rem)
	}
	if err := rows.Err(); err != nil {
		log.Printf("reminder worker: rows failed: %v", err)
		return
	}

	for _, rem := range due {
		if err := w.sender.SendTaskReminder(rem.repEmail, rem.repName, rem.title, rem.company, rem.dueAt.Format(time.RFC1123)); err != nil {
			// Leave reminded_at unset so the next tick retries.
			log.Printf("reminder worker: email for task %s failed: %v", rem.taskID, err)
			continue
		}

		if _, err := w.db.ExecContext(ctx, `UPDATE tasks SET reminded_at = NOW(), updated_at = NOW() WHERE id = $1`, rem.taskID); err != nil {
			log.Printf("reminder worker: could not stamp reminded_at for task %s: %v", rem.taskID, err)
		}
	}

	if len(due) > 0 {
		log.Printf("reminder worker: processed %d overdue tasks", len(due))
	}
}
