package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/quoteshare/quote-service/internal/auth"
	"github.com/quoteshare/quote-service/internal/domain"
	"github.com/quoteshare/quote-service/internal/events"
	"github.com/quoteshare/quote-service/internal/observability"
	"github.com/quoteshare/quote-service/internal/repository"
	"github.com/quoteshare/quote-service/internal/sanitize"
	apperrors "github.com/quoteshare/quote-service/pkg/util"
)

// QuoteService coordinates controlled quote mutations.
type QuoteService struct {
	quotes     repository.QuoteRepository
	sanitizer  sanitize.Sanitizer
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// QuoteDependencies bundles collaborators for the quote service.
type QuoteDependencies struct {
	QuoteRepo  repository.QuoteRepository
	Sanitizer  sanitize.Sanitizer
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
	Logger     *zap.Logger
}

// QuoteUpdateInput describes a decoded update request. Nil fields are absent.
type QuoteUpdateInput struct {
	ID        string
	Author    *string
	Quote     *string
	Bookmarks *int
	Shares    *int
	Flags     *int
}

// NewQuoteService builds the service.
func NewQuoteService(deps QuoteDependencies) *QuoteService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuoteService{
		quotes:     deps.QuoteRepo,
		sanitizer:  deps.Sanitizer,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		logger:     logger,
	}
}

// UpdateQuote resolves the target owner, authorizes the requester, sanitizes
// the payload and applies it as a partial update. Nothing is written unless
// every earlier step succeeds.
func (s *QuoteService) UpdateQuote(ctx context.Context, requester domain.Identity, input QuoteUpdateInput) error {
	quoteID, err := primitive.ObjectIDFromHex(input.ID)
	if err != nil {
		return apperrors.NewInvalidID("invalid object id")
	}

	update := domain.QuoteUpdate{
		ID:        quoteID,
		Author:    input.Author,
		Text:      input.Quote,
		Bookmarks: input.Bookmarks,
		Shares:    input.Shares,
		Flags:     input.Flags,
	}

	decision := auth.Authorize(requester.SubjectID, requester.Role, update.OwnerID())
	s.metrics.RecordAuthorization(decision.String())
	if decision != auth.Allow {
		return apperrors.NewUnauthorized("not authorized to update quotes")
	}

	clean, err := s.sanitizer.Sanitize(update)
	if err != nil {
		s.logger.Info("quote rejected by sanitizer", zap.String("quote_id", input.ID), zap.Error(err))
		return apperrors.NewValidationError("error when sanitizing quote", map[string]any{"reason": err.Error()})
	}

	updated, err := s.quotes.UpdateFields(ctx, clean)
	if err != nil {
		s.logger.Error("quote update failed", zap.String("quote_id", input.ID), zap.Error(err))
		return apperrors.NewConflict("error updating quote", nil)
	}
	if !updated {
		return apperrors.NewConflict("error updating quote, payload could be wrong or quote id is missing", nil)
	}

	s.publishUpdated(ctx, requester, clean)
	return nil
}

func (s *QuoteService) publishUpdated(ctx context.Context, requester domain.Identity, update domain.QuoteUpdate) {
	if s.dispatcher == nil {
		return
	}
	event := events.NewEvent(events.EventQuoteUpdated, update.ID.Hex(),
		events.Actor{ID: requester.SubjectID, Role: requester.Role.String()},
		events.QuoteUpdatedPayload{Fields: update.Fields()})
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("quote event handlers failed", zap.String("quote_id", event.QuoteID), zap.Error(err))
	}
}
