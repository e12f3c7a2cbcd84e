package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/quoteshare/quote-service/internal/domain"
)

const identityKey = "auth_identity"

// IdentityMiddleware reads bearer credentials and stores the verified identity.
// It never rejects a request: handlers decide what an absent identity means.
type IdentityMiddleware struct {
	tokens *TokenManager
	logger *zap.Logger
}

// NewIdentityMiddleware constructs middleware.
func NewIdentityMiddleware(tokens *TokenManager, logger *zap.Logger) *IdentityMiddleware {
	return &IdentityMiddleware{tokens: tokens, logger: logger}
}

// Handle extracts the identity, if any, and continues the chain.
func (m *IdentityMiddleware) Handle(c *fiber.Ctx) error {
	if identity, ok := m.Extract(c.Get(fiber.HeaderAuthorization)); ok {
		c.Locals(identityKey, identity)
	}
	return c.Next()
}

// Extract returns the identity carried by an Authorization header value.
func (m *IdentityMiddleware) Extract(authHeader string) (domain.Identity, bool) {
	if authHeader == "" {
		return domain.Identity{}, false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return domain.Identity{}, false
	}

	claims, err := m.tokens.ParseToken(strings.TrimSpace(parts[1]))
	if err != nil {
		m.logger.Debug("rejected credential", zap.Error(err))
		return domain.Identity{}, false
	}
	return claims.Identity()
}

// IdentityFromContext retrieves the authenticated requester.
func IdentityFromContext(c *fiber.Ctx) (domain.Identity, bool) {
	identity, ok := c.Locals(identityKey).(domain.Identity)
	return identity, ok
}
