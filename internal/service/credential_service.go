package service

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/quoteshare/quote-service/internal/auth"
	"github.com/quoteshare/quote-service/internal/domain"
	"github.com/quoteshare/quote-service/internal/repository"
	apperrors "github.com/quoteshare/quote-service/pkg/util"
)

// CredentialService mints role-bearing credentials for already-resolved accounts.
type CredentialService struct {
	accounts repository.AccountRepository
	tokens   *auth.TokenManager
	logger   *zap.Logger
}

// NewCredentialService builds the service.
func NewCredentialService(accounts repository.AccountRepository, tokens *auth.TokenManager, logger *zap.Logger) *CredentialService {
	return &CredentialService{accounts: accounts, tokens: tokens, logger: logger}
}

// Issue looks up the account's privilege flag and signs a credential whose
// subject is accountID exactly as given. Signing failures are configuration
// faults and match apperrors.ErrConfigurationFault.
func (s *CredentialService) Issue(ctx context.Context, accountID string) (*domain.Credential, error) {
	role, err := s.resolveRole(ctx, accountID)
	if err != nil {
		return nil, err
	}

	token, exp, err := s.tokens.GenerateToken(accountID, role)
	if err != nil {
		return nil, apperrors.NewConfigurationFault(err)
	}

	s.logger.Info("credential issued", zap.String("account_id", accountID), zap.Stringer("role", role))
	return &domain.Credential{Token: token, Role: role, ExpiresAt: exp}, nil
}

func (s *CredentialService) resolveRole(ctx context.Context, accountID string) (domain.Role, error) {
	id, err := primitive.ObjectIDFromHex(accountID)
	if err != nil {
		s.logger.Warn("malformed account id; treating as unknown account",
			zap.String("account_id", accountID), zap.Error(err))
		return domain.RoleForAccount(nil), nil
	}

	account, err := s.accounts.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.RoleForAccount(nil), nil
	}
	if err != nil {
		return 0, fmt.Errorf("lookup account %s: %w", accountID, err)
	}
	return domain.RoleForAccount(account), nil
}
