package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/quoteshare/quote-service/internal/api/dto"
	"github.com/quoteshare/quote-service/internal/auth"
	"github.com/quoteshare/quote-service/internal/service"
	apperrors "github.com/quoteshare/quote-service/pkg/util"
)

// QuotesHandler exposes quote mutation endpoints.
type QuotesHandler struct {
	service *service.QuoteService
}

// NewQuotesHandler constructs handler.
func NewQuotesHandler(quoteService *service.QuoteService) *QuotesHandler {
	return &QuotesHandler{service: quoteService}
}

// Update PUT /update.
func (h *QuotesHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateQuoteRequest
	if err := c.App().Config().JSONDecoder(c.Body(), &req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}

	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("user not authorized to update quotes")
	}

	input := service.QuoteUpdateInput{
		ID:        req.ID,
		Author:    req.Author,
		Quote:     req.Quote,
		Bookmarks: req.Bookmarks,
		Shares:    req.Shares,
		Flags:     req.Flags,
	}
	if err := h.service.UpdateQuote(c.UserContext(), identity, input); err != nil {
		return err
	}
	return c.JSON(dto.UpdateQuoteResponse{Response: "200"})
}
