package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryDispatcher_PublishesToSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()
	var got []string
	d.Subscribe(EventQuoteUpdated, func(_ context.Context, e Event) error {
		got = append(got, "first:"+e.QuoteID)
		return nil
	})
	d.Subscribe(EventQuoteUpdated, func(_ context.Context, e Event) error {
		got = append(got, "second:"+e.QuoteID)
		return nil
	})

	event := NewEvent(EventQuoteUpdated, "q1", Actor{ID: "a1", Role: "user"}, QuoteUpdatedPayload{Fields: []string{"author"}})
	require.NoError(t, d.Publish(context.Background(), event))

	assert.Equal(t, []string{"first:q1", "second:q1"}, got)
	assert.NotEmpty(t, event.ID)
	assert.False(t, event.Timestamp.IsZero())
}

func TestInMemoryDispatcher_ContinuesAfterFailure(t *testing.T) {
	d := NewInMemoryDispatcher()
	boom := errors.New("boom")
	calls := 0
	d.Subscribe(EventQuoteUpdated, func(context.Context, Event) error {
		calls++
		return boom
	})
	d.Subscribe(EventQuoteUpdated, func(context.Context, Event) error {
		calls++
		return nil
	})

	err := d.Publish(context.Background(), NewEvent(EventQuoteUpdated, "q1", Actor{}, nil))
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, calls)
}

func TestInMemoryDispatcher_NoSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()
	assert.NoError(t, d.Publish(context.Background(), NewEvent(EventQuoteUpdated, "q1", Actor{}, nil)))
}
