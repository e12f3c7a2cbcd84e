package service

import (
	"context"
	"sync"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/quoteshare/quote-service/internal/domain"
	"github.com/quoteshare/quote-service/internal/repository"
)

type fakeAccountRepo struct {
	accounts map[primitive.ObjectID]*domain.Account
	err      error
	lookups  int
}

func (f *fakeAccountRepo) FindByID(_ context.Context, id primitive.ObjectID) (*domain.Account, error) {
	f.lookups++
	if f.err != nil {
		return nil, f.err
	}
	account, ok := f.accounts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return account, nil
}

type fakeQuoteRepo struct {
	mu      sync.Mutex
	updated bool
	err     error
	calls   []domain.QuoteUpdate
}

func (f *fakeQuoteRepo) UpdateFields(_ context.Context, update domain.QuoteUpdate) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, update)
	if f.err != nil {
		return false, f.err
	}
	return f.updated, nil
}

type fakeSanitizer struct {
	err   error
	calls int
}

func (f *fakeSanitizer) Sanitize(update domain.QuoteUpdate) (domain.QuoteUpdate, error) {
	f.calls++
	if f.err != nil {
		return domain.QuoteUpdate{}, f.err
	}
	return update, nil
}

type fakeAuditRepo struct {
	entries []*domain.QuoteAudit
	err     error
}

func (f *fakeAuditRepo) Create(_ context.Context, entry *domain.QuoteAudit) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, entry)
	return nil
}

type fakePublisher struct {
	mu       sync.Mutex
	channel  string
	messages []interface{}
	err      error
	// block makes Publish wait for its context, like an unreachable broker.
	block     bool
	deadlines []bool
}

func (f *fakePublisher) Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx)
	_, hasDeadline := ctx.Deadline()
	if f.block {
		<-ctx.Done()
		cmd.SetErr(ctx.Err())
	} else if f.err != nil {
		cmd.SetErr(f.err)
	} else {
		cmd.SetVal(1)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.channel = channel
	f.messages = append(f.messages, message)
	f.deadlines = append(f.deadlines, hasDeadline)
	return cmd
}

func (f *fakePublisher) published() []interface{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]interface{}{}, f.messages...)
}

func strPtr(v string) *string { return &v }
func intPtr(v int) *int       { return &v }
