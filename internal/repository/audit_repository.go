package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/owenj053/netone-backend/internal/domain"
)

// AuditRepository appends immutable audit entries. There is intentionally no
// update or delete surface.
type AuditRepository interface {
	Create(ctx context.Context, entry *domain.AuditEntry) error
}

type auditRepository struct {
	pool *pgxpool.Pool
}

// NewAuditRepository instantiates repository.
func NewAuditRepository(pool *pgxpool.Pool) AuditRepository {
	return &auditRepository{pool: pool}
}

func (r *auditRepository) Create(ctx context.Context, entry *domain.AuditEntry) error {
	const query = `
        INSERT INTO audit_logs (user_id, action, entity_type, entity_id, metadata)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING log_id, created_at`
	return r.pool.QueryRow(ctx, query,
		entry.UserID,
		entry.Action,
		entry.EntityType,
		entry.EntityID,
		entry.Metadata,
	).Scan(&entry.ID, &entry.CreatedAt)
}
