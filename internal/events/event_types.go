package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventQuoteUpdated EventType = "quote.updated"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	QuoteID   string      `json:"quote_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// QuoteUpdatedPayload payload.
type QuoteUpdatedPayload struct {
	Fields []string `json:"fields"`
}

// NewEvent stamps a new event with an id and timestamp.
func NewEvent(eventType EventType, quoteID string, actor Actor, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		QuoteID:   quoteID,
		Actor:     actor,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}
