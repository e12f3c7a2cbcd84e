package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/quoteshare/quote-service/internal/api/http/handlers"
	"github.com/quoteshare/quote-service/internal/auth"
	"github.com/quoteshare/quote-service/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health   *handlers.HealthHandler
	Quotes   *handlers.QuotesHandler
	Identity *auth.IdentityMiddleware
	Metrics  *observability.Metrics
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))
	}

	app.Put("/update", cfg.Identity.Handle, cfg.Quotes.Update)
}
