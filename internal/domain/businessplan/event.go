package businessplan

import "time"

type EventType string

const (
	EventCreated EventType = "business_plan.created"
	EventUpdated EventType = "business_plan.updated"
	EventDeleted EventType = "business_plan.deleted"
)

// PlanEvent is published after a write commits. Score is zero for deletions.
type PlanEvent struct {
	Type       EventType `json:"type"`
	PlanID     string    `json:"planId"`
	OwnerID    string    `json:"ownerId"`
	Score      int       `json:"score"`
	OccurredAt time.Time `json:"occurredAt"`
	TraceID    string    `json:"traceId,omitempty"`
}
