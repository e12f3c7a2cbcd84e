package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/quoteshare/quote-service/internal/config"
	"github.com/quoteshare/quote-service/internal/domain"
	"github.com/quoteshare/quote-service/internal/events"
	"github.com/quoteshare/quote-service/internal/repository"
)

// ErrFanOutQueueFull is returned when an event cannot be queued for fan-out.
var ErrFanOutQueueFull = errors.New("quote event fan-out queue full")

// EventPublisher is the subset of the redis client used for fan-out.
type EventPublisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// QuoteEventService records and fans out quote events. The audit row is
// written inside the request; fan-out is queued and published by Run so a
// slow or unreachable broker never holds up a response.
type QuoteEventService struct {
	dispatcher     events.Dispatcher
	audits         repository.QuoteAuditRepository
	publisher      EventPublisher
	channel        string
	publishTimeout time.Duration
	queue          chan events.Event
	logger         *zap.Logger
}

// NewQuoteEventService creates the service. audits and publisher may be nil,
// in which case the corresponding handler is not registered.
func NewQuoteEventService(dispatcher events.Dispatcher, audits repository.QuoteAuditRepository, publisher EventPublisher, cfg config.EventsConfig, logger *zap.Logger) *QuoteEventService {
	size := cfg.QueueSize
	if size <= 0 {
		size = 256
	}
	return &QuoteEventService{
		dispatcher:     dispatcher,
		audits:         audits,
		publisher:      publisher,
		channel:        cfg.RedisChannel,
		publishTimeout: cfg.PublishTimeout(),
		queue:          make(chan events.Event, size),
		logger:         logger,
	}
}

// RegisterHandlers subscribes to events.
func (n *QuoteEventService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	if n.audits != nil {
		n.dispatcher.Subscribe(events.EventQuoteUpdated, n.recordAudit)
	}
	if n.fanOutEnabled() {
		n.dispatcher.Subscribe(events.EventQuoteUpdated, n.enqueue)
	}
}

// Run publishes queued events until ctx is cancelled.
func (n *QuoteEventService) Run(ctx context.Context) {
	if !n.fanOutEnabled() {
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-n.queue:
			if err := n.publish(ctx, event); err != nil {
				n.logger.Warn("quote event fan-out failed", zap.String("event_id", event.ID), zap.Error(err))
			}
		}
	}
}

func (n *QuoteEventService) fanOutEnabled() bool {
	return n.publisher != nil && n.channel != ""
}

func (n *QuoteEventService) recordAudit(ctx context.Context, event events.Event) error {
	payload, _ := event.Payload.(events.QuoteUpdatedPayload)
	role, _ := domain.ParseRole(event.Actor.Role)
	entry := &domain.QuoteAudit{
		ID:        uuid.New(),
		QuoteID:   event.QuoteID,
		ActorID:   event.Actor.ID,
		ActorRole: role,
		Fields:    payload.Fields,
	}
	if err := n.audits.Create(ctx, entry); err != nil {
		return fmt.Errorf("record quote audit: %w", err)
	}
	n.logger.Debug("quote audit recorded", zap.String("quote_id", event.QuoteID), zap.Strings("fields", payload.Fields))
	return nil
}

// enqueue never blocks: a full queue drops the event and reports it.
func (n *QuoteEventService) enqueue(_ context.Context, event events.Event) error {
	select {
	case n.queue <- event:
		return nil
	default:
		return fmt.Errorf("%w: event %s", ErrFanOutQueueFull, event.ID)
	}
}

func (n *QuoteEventService) publish(ctx context.Context, event events.Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode quote event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, n.publishTimeout)
	defer cancel()
	if err := n.publisher.Publish(ctx, n.channel, body).Err(); err != nil {
		return fmt.Errorf("publish quote event: %w", err)
	}
	n.logger.Debug("quote event published", zap.String("channel", n.channel), zap.String("event_id", event.ID))
	return nil
}
