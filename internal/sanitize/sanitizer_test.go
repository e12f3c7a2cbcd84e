package sanitize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/quoteshare/quote-service/internal/config"
	"github.com/quoteshare/quote-service/internal/domain"
)

func newTestSanitizer() *QuoteSanitizer {
	return NewQuoteSanitizer(config.SanitizerConfig{MaxAuthorLength: 20, MaxQuoteLength: 100})
}

func strPtr(v string) *string { return &v }
func intPtr(v int) *int       { return &v }

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "Be yourself", want: "Be yourself"},
		{name: "trims and collapses", in: "  Be \t\n  yourself  ", want: "Be yourself"},
		{name: "strips markup brackets", in: "<b>bold</b>", want: "bbold/b"},
		{name: "fullwidth brackets", in: "\uff1cscript\uff1e", want: "script"},
		{name: "zero width", in: "qu\u200bote", want: "quote"},
		{name: "control chars", in: "a\x00b\x07c", want: "abc"},
		{name: "composes after removal", in: "e<\u0301", want: "\u00e9"},
		{name: "non-breaking space", in: "a\u00a0b", want: "a b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CleanText(tt.in)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSanitize_Idempotent(t *testing.T) {
	s := newTestSanitizer()
	inputs := []domain.QuoteUpdate{
		{ID: primitive.NewObjectID(), Author: strPtr("  Oscar   Wilde "), Text: strPtr("Be <i>yourself</i>;\teveryone else is taken.")},
		{ID: primitive.NewObjectID(), Text: strPtr("e<\u0301\u200b  x")},
		{ID: primitive.NewObjectID(), Bookmarks: intPtr(6)},
		{ID: primitive.NewObjectID(), Author: strPtr("\uff21\uff22"), Shares: intPtr(0), Flags: intPtr(2)},
	}
	for _, in := range inputs {
		once, err := s.Sanitize(in)
		require.NoError(t, err)
		twice, err := s.Sanitize(once)
		require.NoError(t, err)
		assert.Equal(t, once, twice)
	}
}

func TestSanitize_DoesNotMutateInput(t *testing.T) {
	s := newTestSanitizer()
	author := "  spaced  "
	in := domain.QuoteUpdate{ID: primitive.NewObjectID(), Author: &author, Bookmarks: intPtr(3)}

	out, err := s.Sanitize(in)
	require.NoError(t, err)

	assert.Equal(t, "  spaced  ", *in.Author)
	assert.Equal(t, "spaced", *out.Author)
	assert.Equal(t, in.ID, out.ID)
	assert.NotSame(t, in.Bookmarks, out.Bookmarks)
	assert.Nil(t, out.Text)
	assert.Nil(t, out.Shares)
}

func TestSanitize_Rejects(t *testing.T) {
	s := newTestSanitizer()
	tests := []struct {
		name string
		in   domain.QuoteUpdate
	}{
		{name: "empty author after cleaning", in: domain.QuoteUpdate{Author: strPtr(" <> \u200b ")}},
		{name: "empty quote", in: domain.QuoteUpdate{Text: strPtr("")}},
		{name: "author too long", in: domain.QuoteUpdate{Author: strPtr(strings.Repeat("a", 21))}},
		{name: "quote too long", in: domain.QuoteUpdate{Text: strPtr(strings.Repeat("q", 101))}},
		{name: "negative bookmarks", in: domain.QuoteUpdate{Bookmarks: intPtr(-1)}},
		{name: "negative flags", in: domain.QuoteUpdate{Flags: intPtr(-3)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Sanitize(tt.in)
			assert.ErrorIs(t, err, ErrRejected)
		})
	}
}

func TestSanitize_LengthCountsRunes(t *testing.T) {
	s := newTestSanitizer()
	_, err := s.Sanitize(domain.QuoteUpdate{Author: strPtr(strings.Repeat("\u00e9", 20))})
	assert.NoError(t, err)
}
