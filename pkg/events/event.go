package events

import (
	"encoding/json"
	"time"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "DATA_CHANGED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// DataChanged announces that one persisted dataset was rewritten. Type names
// the dataset ("chats", "artifacts", ...), Data carries its new payload.
type DataChanged struct {
	Type       string          `json:"type"`
	Data       json.RawMessage `json:"data"`
	OccurredAt time.Time       `json:"occurred_at"`
}

func NewDataChanged(kind string, data []byte) DataChanged {
	return DataChanged{
		Type:       kind,
		Data:       data,
		OccurredAt: time.Now(),
	}
}

func (e DataChanged) EventType() string {
	return "DATA_CHANGED"
}

func (e DataChanged) Payload() map[string]interface{} {
	return map[string]interface{}{
		"type": e.Type,
		"data": e.Data,
	}
}

func (e DataChanged) Timestamp() time.Time {
	return e.OccurredAt
}
