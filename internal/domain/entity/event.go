package entity

import "time"

// UserEventType names an account lifecycle event.
type UserEventType string

const (
	UserEventRegistered UserEventType = "user.registered"
	UserEventCreated    UserEventType = "user.created"
	UserEventDeleted    UserEventType = "user.deleted"
)

// UserEvent is published after an account change has been persisted.
type UserEvent struct {
	Type       UserEventType `json:"type"`
	UserID     uint          `json:"user_id"`
	Email      string        `json:"email"`
	RequestID  string        `json:"request_id,omitempty"` // For distributed tracing
	OccurredAt time.Time     `json:"occurred_at"`
}
