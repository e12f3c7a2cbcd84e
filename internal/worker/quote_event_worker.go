package worker

import (
	"context"

	"github.com/quoteshare/quote-service/internal/service"
)

// StartQuoteEventWorker registers the audit and fan-out handlers for quote
// events and starts publishing queued events until ctx is cancelled.
func StartQuoteEventWorker(ctx context.Context, eventService *service.QuoteEventService) {
	if eventService == nil {
		return
	}
	eventService.RegisterHandlers()
	go eventService.Run(ctx)
}
