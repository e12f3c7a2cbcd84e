package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/quoteshare/quote-service/internal/api/http"
	"github.com/quoteshare/quote-service/internal/api/http/handlers"
	"github.com/quoteshare/quote-service/internal/auth"
	"github.com/quoteshare/quote-service/internal/config"
	"github.com/quoteshare/quote-service/internal/events"
	"github.com/quoteshare/quote-service/internal/observability"
	"github.com/quoteshare/quote-service/internal/persistence"
	"github.com/quoteshare/quote-service/internal/repository"
	"github.com/quoteshare/quote-service/internal/sanitize"
	"github.com/quoteshare/quote-service/internal/service"
	"github.com/quoteshare/quote-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	if cfg.Auth.JWTSecret == "" {
		logger.Fatal("AUTH_JWT_SECRET not provided")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mongoStore, err := persistence.NewMongo(ctx, cfg.Mongo, logger)
	if err != nil {
		logger.Fatal("failed to connect mongo", zap.Error(err))
	}
	defer mongoStore.Close(context.Background())

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if pg.Enabled() && cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.AccessTokenTTLMinutes)
	dispatcher := events.NewInMemoryDispatcher()

	var audits repository.QuoteAuditRepository
	if pg.Enabled() {
		audits = repository.NewQuoteAuditRepository(pg.PoolHandle())
	}
	worker.StartQuoteEventWorker(ctx, service.NewQuoteEventService(dispatcher, audits, redis, cfg.Events, logger))

	quoteService := service.NewQuoteService(service.QuoteDependencies{
		QuoteRepo:  repository.NewQuoteRepository(mongoStore.Collection(cfg.Mongo.QuotesCollection)),
		Sanitizer:  sanitize.NewQuoteSanitizer(cfg.Sanitizer),
		Dispatcher: dispatcher,
		Metrics:    metrics,
		Logger:     logger,
	})

	dependencies := map[string]handlers.Pinger{
		"mongo": mongoStore,
		"redis": redis,
	}
	if pg.Enabled() {
		dependencies["postgres"] = pg
	}

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:   handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, dependencies),
		Quotes:   handlers.NewQuotesHandler(quoteService),
		Identity: auth.NewIdentityMiddleware(tokens, logger),
		Metrics:  metrics,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
