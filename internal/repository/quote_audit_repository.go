package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/quoteshare/quote-service/internal/domain"
)

// QuoteAuditRepository stores audit entries for quote mutations.
type QuoteAuditRepository interface {
	Create(ctx context.Context, entry *domain.QuoteAudit) error
}

// RowQuerier is the subset of pgx used by the audit repository.
type RowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type quoteAuditRepository struct {
	db RowQuerier
}

// NewQuoteAuditRepository builds a Postgres-backed repository.
func NewQuoteAuditRepository(db RowQuerier) QuoteAuditRepository {
	return &quoteAuditRepository{db: db}
}

func (r *quoteAuditRepository) Create(ctx context.Context, entry *domain.QuoteAudit) error {
	const query = `
        INSERT INTO quote_audit (id, quote_id, actor_id, actor_role, fields)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING created_at`
	return r.db.QueryRow(ctx, query,
		entry.ID,
		entry.QuoteID,
		entry.ActorID,
		entry.ActorRole.String(),
		entry.Fields,
	).Scan(&entry.CreatedAt)
}
