package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/quoteshare/quote-service/internal/domain"
)

func newIdentityApp(t *testing.T, tm *TokenManager) *fiber.App {
	t.Helper()
	app := fiber.New()
	app.Use(NewIdentityMiddleware(tm, zap.NewNop()).Handle)
	app.Get("/whoami", func(c *fiber.Ctx) error {
		identity, ok := IdentityFromContext(c)
		if !ok {
			return c.SendStatus(http.StatusNoContent)
		}
		return c.JSON(fiber.Map{"sub": identity.SubjectID, "role": identity.Role.String()})
	})
	return app
}

func TestIdentityMiddleware(t *testing.T) {
	tm := newTestTokenManager(t)
	token, _, err := tm.GenerateToken(testAccountID, domain.RoleUser)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{name: "no header", header: "", status: http.StatusNoContent},
		{name: "basic scheme", header: "Basic dXNlcjpwYXNz", status: http.StatusNoContent},
		{name: "garbage token", header: "Bearer nope", status: http.StatusNoContent},
		{name: "valid bearer", header: "Bearer " + token, status: http.StatusOK},
		{name: "lower-case scheme", header: "bearer " + token, status: http.StatusOK},
	}
	app := newIdentityApp(t, tm)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.header != "" {
				req.Header.Set(fiber.HeaderAuthorization, tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestIdentityMiddleware_Extract(t *testing.T) {
	tm := newTestTokenManager(t)
	token, _, err := tm.GenerateToken(testAccountID, domain.RoleAdmin)
	require.NoError(t, err)

	m := NewIdentityMiddleware(tm, zap.NewNop())
	identity, ok := m.Extract("Bearer " + token)
	require.True(t, ok)
	assert.Equal(t, testAccountID, identity.SubjectID)
	assert.Equal(t, domain.RoleAdmin, identity.Role)

	_, ok = m.Extract("Bearer")
	assert.False(t, ok)
}
