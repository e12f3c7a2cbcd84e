package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/quoteshare/quote-service/internal/domain"
)

// ErrNotFound is returned when a lookup matches no document.
var ErrNotFound = errors.New("not found")

// AccountRepository defines read access to accounts.
type AccountRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Account, error)
}

type accountRepository struct {
	coll *mongo.Collection
}

// NewAccountRepository returns a Mongo-backed implementation.
func NewAccountRepository(coll *mongo.Collection) AccountRepository {
	return &accountRepository{coll: coll}
}

func (r *accountRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Account, error) {
	var account domain.Account
	if err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&account); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}
