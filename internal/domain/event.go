package domain

import (
	"time"

	"github.com/google/uuid"
)

type PlanEventType string

const (
	PlanEventSaved   PlanEventType = "plan.saved"
	PlanEventDeleted PlanEventType = "plan.deleted"
)

// PlanEvent is emitted after a plan is written to or removed from the store.
type PlanEvent struct {
	Type       PlanEventType `json:"type"`
	PlanID     uuid.UUID     `json:"planId"`
	CoachID    uuid.UUID     `json:"coachId"` // uuid.Nil when no coach is known
	Filename   string        `json:"filename"`
	Name       string        `json:"name,omitempty"`
	ModifiedAt string        `json:"modifiedAt,omitempty"`
	OccurredAt time.Time     `json:"occurredAt"`
}
