package events

import (
	"time"

	"github.com/google/uuid"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "POST_CONTENT_CHANGED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the plain implementation most publishers use directly.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
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

// PostContentChanged is emitted whenever a post's document changes:
// editor saves and legacy imports alike. The search indexer consumes it.
func PostContentChanged(postID uuid.UUID) BaseEvent {
	return BaseEvent{
		Type: "POST_CONTENT_CHANGED",
		Data: map[string]interface{}{
			"post_id": postID,
		},
		OccurredAt: time.Now(),
	}
}
