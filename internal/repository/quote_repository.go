package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/quoteshare/quote-service/internal/domain"
)

// QuoteRepository encapsulates quote persistence.
type QuoteRepository interface {
	// UpdateFields applies the present fields of update to the quote with the
	// same id and reports whether a matching document was updated.
	UpdateFields(ctx context.Context, update domain.QuoteUpdate) (bool, error)
}

type quoteRepository struct {
	coll *mongo.Collection
}

// NewQuoteRepository returns a Mongo-backed implementation.
func NewQuoteRepository(coll *mongo.Collection) QuoteRepository {
	return &quoteRepository{coll: coll}
}

func (r *quoteRepository) UpdateFields(ctx context.Context, update domain.QuoteUpdate) (bool, error) {
	filter, change, ok := buildQuoteUpdate(update)
	if !ok {
		return false, nil
	}
	res, err := r.coll.UpdateOne(ctx, filter, change)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

// buildQuoteUpdate translates a partial update into a single-document
// conditional update. Counters only move by one: each present counter adds a
// filter clause requiring the stored value to be adjacent to the new one, so
// the check and the write happen atomically in the store.
func buildQuoteUpdate(update domain.QuoteUpdate) (bson.D, bson.D, bool) {
	if update.IsEmpty() {
		return nil, nil, false
	}

	filter := bson.D{{Key: "_id", Value: update.ID}}
	set := bson.D{}

	if update.Author != nil {
		set = append(set, bson.E{Key: "author", Value: *update.Author})
	}
	if update.Text != nil {
		set = append(set, bson.E{Key: "quote", Value: *update.Text})
	}
	counters := []struct {
		field string
		value *int
	}{
		{"bookmarks", update.Bookmarks},
		{"shares", update.Shares},
		{"flags", update.Flags},
	}
	for _, counter := range counters {
		if counter.value == nil {
			continue
		}
		v := *counter.value
		filter = append(filter, bson.E{Key: counter.field, Value: bson.D{{Key: "$in", Value: bson.A{v - 1, v + 1}}}})
		set = append(set, bson.E{Key: counter.field, Value: v})
	}

	return filter, bson.D{{Key: "$set", Value: set}}, true
}
