package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g. "CHAT_SYNCED").
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

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

func NewChatSyncedEvent(userId string, upserted, deleted int) Event {
	return BaseEvent{
		Type: "CHAT_SYNCED",
		Data: map[string]interface{}{
			"user_id":  userId,
			"upserted": upserted,
			"deleted":  deleted,
		},
		OccurredAt: time.Now(),
	}
}

func NewChatDeletedEvent(userId, chatId string) Event {
	return BaseEvent{
		Type: "CHAT_DELETED",
		Data: map[string]interface{}{
			"user_id": userId,
			"chat_id": chatId,
		},
		OccurredAt: time.Now(),
	}
}
