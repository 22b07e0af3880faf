package entity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Activity kinds. STATUS_CHANGE entries are written exclusively by the
// workflow engine; the rest come from user input.
const (
	ActivityCall         = "CALL"
	ActivityEmail        = "EMAIL"
	ActivityMeeting      = "MEETING"
	ActivityNote         = "NOTE"
	ActivityStatusChange = "STATUS_CHANGE"
)

// Activity is append-only: no update or delete exists anywhere in the
// system. Corrections are recorded as new entries.
type Activity struct {
	ID        string    `json:"id"`
	LeadID    string    `json:"lead_id"`
	Kind      string    `json:"kind"`
	Body      string    `json:"body,omitempty"`
	ActorID   string    `json:"actor_id"`
	CreatedAt time.Time `json:"created_at"`
}

type ActivityRepositoryInterface interface {
	Append(ctx context.Context, activity *Activity) error
	ListByLead(ctx context.Context, leadID string) ([]Activity, error)
}

func NewActivity(leadID, kind, body, actorID string, now time.Time) *Activity {
	return &Activity{
		ID:        uuid.New().String(),
		LeadID:    leadID,
		Kind:      kind,
		Body:      body,
		ActorID:   actorID,
		CreatedAt: now,
	}
}

func IsValidActivityKind(kind string) bool {
	switch kind {
	case ActivityCall, ActivityEmail, ActivityMeeting, ActivityNote:
		return true
	}
	// STATUS_CHANGE is reserved for the workflow engine.
	return false
}
