// Command issuetoken signs a credential for an account that was already
// authenticated elsewhere and prints it as JSON.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/quoteshare/quote-service/internal/api/dto"
	"github.com/quoteshare/quote-service/internal/auth"
	"github.com/quoteshare/quote-service/internal/config"
	"github.com/quoteshare/quote-service/internal/observability"
	"github.com/quoteshare/quote-service/internal/persistence"
	"github.com/quoteshare/quote-service/internal/repository"
	"github.com/quoteshare/quote-service/internal/service"
	apperrors "github.com/quoteshare/quote-service/pkg/util"
)

func main() {
	accountID := flag.String("account", "", "account id to issue a credential for")
	flag.Parse()
	if *accountID == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// stdout carries the credential.
	cfg.Logger.Output = "stderr"
	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	mongoStore, err := persistence.NewMongo(ctx, cfg.Mongo, logger)
	if err != nil {
		logger.Fatal("failed to connect mongo", zap.Error(err))
	}
	defer mongoStore.Close(context.Background())

	credentials := service.NewCredentialService(
		repository.NewAccountRepository(mongoStore.Collection(cfg.Mongo.AccountsCollection)),
		auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.AccessTokenTTLMinutes),
		logger,
	)

	credential, err := credentials.Issue(ctx, *accountID)
	if errors.Is(err, apperrors.ErrConfigurationFault) {
		logger.Fatal("credential signing is misconfigured", zap.Error(err))
	}
	if err != nil {
		logger.Fatal("failed to issue credential", zap.String("account_id", *accountID), zap.Error(err))
	}

	enc := json.NewEncoder(os.Stdout)
	if err := enc.Encode(dto.CredentialResponse{
		Token:     credential.Token,
		Role:      credential.Role.String(),
		ExpiresAt: credential.ExpiresAt.UTC().Format(time.RFC3339),
	}); err != nil {
		logger.Fatal("failed to write credential", zap.Error(err))
	}
}
