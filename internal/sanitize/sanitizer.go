// Package sanitize cleans and bounds untrusted quote fields before they are
// persisted.
package sanitize

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/unicode/norm"

	"github.com/quoteshare/quote-service/internal/config"
	"github.com/quoteshare/quote-service/internal/domain"
)

// maxPasses bounds how often cleaning is repeated while looking for a fixed point.
const maxPasses = 4

// ErrRejected is returned when a payload cannot be made safe.
var ErrRejected = errors.New("quote rejected")

// Sanitizer normalizes the mutable fields of a quote update. Implementations
// must be idempotent and must leave the id untouched.
type Sanitizer interface {
	Sanitize(update domain.QuoteUpdate) (domain.QuoteUpdate, error)
}

// QuoteSanitizer is the default Sanitizer.
type QuoteSanitizer struct {
	validate  *validator.Validate
	authorTag string
	quoteTag  string
}

// NewQuoteSanitizer builds a sanitizer with the configured length bounds.
func NewQuoteSanitizer(cfg config.SanitizerConfig) *QuoteSanitizer {
	return &QuoteSanitizer{
		validate:  validator.New(),
		authorTag: fmt.Sprintf("required,max=%d", cfg.MaxAuthorLength),
		quoteTag:  fmt.Sprintf("required,max=%d", cfg.MaxQuoteLength),
	}
}

// Sanitize returns a cleaned copy of update. The input is never modified.
func (s *QuoteSanitizer) Sanitize(update domain.QuoteUpdate) (domain.QuoteUpdate, error) {
	out := domain.QuoteUpdate{ID: update.ID}

	var err error
	if out.Author, err = s.text("author", update.Author, s.authorTag); err != nil {
		return domain.QuoteUpdate{}, err
	}
	if out.Text, err = s.text("quote", update.Text, s.quoteTag); err != nil {
		return domain.QuoteUpdate{}, err
	}
	if out.Bookmarks, err = s.counter("bookmarks", update.Bookmarks); err != nil {
		return domain.QuoteUpdate{}, err
	}
	if out.Shares, err = s.counter("shares", update.Shares); err != nil {
		return domain.QuoteUpdate{}, err
	}
	if out.Flags, err = s.counter("flags", update.Flags); err != nil {
		return domain.QuoteUpdate{}, err
	}
	return out, nil
}

func (s *QuoteSanitizer) text(field string, value *string, tag string) (*string, error) {
	if value == nil {
		return nil, nil
	}
	cleaned, ok := CleanText(*value)
	if !ok {
		return nil, fmt.Errorf("%w: %s does not normalize", ErrRejected, field)
	}
	if err := s.validate.Var(cleaned, tag); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRejected, field, err)
	}
	return &cleaned, nil
}

func (s *QuoteSanitizer) counter(field string, value *int) (*int, error) {
	if value == nil {
		return nil, nil
	}
	if err := s.validate.Var(*value, "min=0"); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRejected, field, err)
	}
	v := *value
	return &v, nil
}

// CleanText applies NFKC normalization, drops markup brackets plus control and
// format characters, and collapses whitespace. Cleaning is repeated until the
// result is stable; ok is false if no fixed point is reached.
func CleanText(s string) (string, bool) {
	for i := 0; i < maxPasses; i++ {
		next := cleanOnce(s)
		if next == s {
			return s, true
		}
		s = next
	}
	return s, false
}

func cleanOnce(s string) string {
	s = norm.NFKC.String(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '<' || r == '>':
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		case r == utf8.RuneError, unicode.IsControl(r), unicode.Is(unicode.Cf, r):
		default:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
