package events

import "time"

// Event types. Published on subject "events.<type>".
const (
	TypeJournalSummaryCreated = "summary.journal.created"
	TypeChatSummaryCreated    = "summary.chat.created"
	TypeProfileUpdated        = "profile.updated"
	TypeChatMessageSent       = "chat.message.sent"
	TypeInsightGenerated      = "insight.generated"
	TypeUserSignedUp          = "user.signed_up"
	TypeBackfillRequested     = "backfill.requested"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "profile.updated").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func New(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now().UTC(),
	}
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

// String reads a string field from the payload.
func String(e Event, key string) string {
	v, _ := e.Payload()[key].(string)
	return v
}
