package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/quoteshare/quote-service/internal/auth"
	"github.com/quoteshare/quote-service/internal/domain"
	apperrors "github.com/quoteshare/quote-service/pkg/util"
)

func newCredentialService(repo *fakeAccountRepo, secret string) (*CredentialService, *auth.TokenManager) {
	tokens := auth.NewTokenManager(secret, "quote-service", 10)
	return NewCredentialService(repo, tokens, zap.NewNop()), tokens
}

func TestCredentialService_RoleFromPrivilegeFlag(t *testing.T) {
	adminID := primitive.NewObjectID()
	userID := primitive.NewObjectID()
	missingID := primitive.NewObjectID()
	repo := &fakeAccountRepo{accounts: map[primitive.ObjectID]*domain.Account{
		adminID: {ID: adminID, Admin: 1},
		userID:  {ID: userID, Admin: 0},
	}}
	svc, tokens := newCredentialService(repo, "secret")

	tests := []struct {
		name  string
		id    string
		group string
	}{
		{name: "admin flag", id: adminID.Hex(), group: "admin"},
		{name: "regular account", id: userID.Hex(), group: "user"},
		{name: "unknown account", id: missingID.Hex(), group: "user"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cred, err := svc.Issue(context.Background(), tt.id)
			require.NoError(t, err)

			claims, err := tokens.ParseToken(cred.Token)
			require.NoError(t, err)
			assert.Equal(t, tt.id, claims.Subject)
			assert.Equal(t, []string{tt.group}, claims.Groups)
			assert.Equal(t, tt.group, cred.Role.String())
		})
	}
}

func TestCredentialService_MalformedIDKeepsLiteralSubject(t *testing.T) {
	repo := &fakeAccountRepo{}
	svc, tokens := newCredentialService(repo, "secret")

	cred, err := svc.Issue(context.Background(), "not-an-id")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, cred.Role)
	assert.Zero(t, repo.lookups)

	claims, err := tokens.ParseToken(cred.Token)
	require.NoError(t, err)
	assert.Equal(t, "not-an-id", claims.Subject)
	assert.Equal(t, []string{"user"}, claims.Groups)
}

func TestCredentialService_SigningFailureIsConfigurationFault(t *testing.T) {
	svc, _ := newCredentialService(&fakeAccountRepo{}, "")

	_, err := svc.Issue(context.Background(), primitive.NewObjectID().Hex())
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConfigurationFault)
	assert.ErrorIs(t, err, auth.ErrSigningKeyMissing)
}

func TestCredentialService_StoreErrorPropagates(t *testing.T) {
	boom := errors.New("server selection timeout")
	svc, _ := newCredentialService(&fakeAccountRepo{err: boom}, "secret")

	_, err := svc.Issue(context.Background(), primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, apperrors.ErrConfigurationFault)
}
