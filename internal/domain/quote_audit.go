package domain

import (
	"time"

	"github.com/google/uuid"
)

// QuoteAudit records who changed which fields of a quote.
type QuoteAudit struct {
	ID        uuid.UUID
	QuoteID   string
	ActorID   string
	ActorRole Role
	Fields    []string
	CreatedAt time.Time
}
