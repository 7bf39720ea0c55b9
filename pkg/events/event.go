package events

import (
	"time"

	"github.com/google/uuid"
)

// Event type codes emitted by the routing service.
const (
	TypeQueryRouted       = "QUERY_ROUTED"
	TypeContextCacheReset = "CONTEXT_CACHE_RESET"
)

// Event defines the contract for all system events.
type Event interface {
	// EventID returns the unique id of this event instance, used for
	// downstream deduplication.
	EventID() string

	// EventType returns the unique code for this event (e.g. "QUERY_ROUTED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is a plain implementation of Event.
type BaseEvent struct {
	ID         string
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

// NewBaseEvent builds an event with a fresh id and the current time.
func NewBaseEvent(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
}

func (e BaseEvent) EventID() string {
	return e.ID
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}
