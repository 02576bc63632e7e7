package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/owenj053/netone-backend/internal/domain"
)

// PermitRepository encapsulates permit persistence.
type PermitRepository interface {
	Create(ctx context.Context, permit *domain.Permit) error
	Update(ctx context.Context, permit *domain.Permit) error
	GetByID(ctx context.Context, id int64) (*domain.Permit, error)
}

type permitRepository struct {
	pool *pgxpool.Pool
}

// NewPermitRepository instantiates repository.
func NewPermitRepository(pool *pgxpool.Pool) PermitRepository {
	return &permitRepository{pool: pool}
}

func (r *permitRepository) Create(ctx context.Context, permit *domain.Permit) error {
	const query = `
        INSERT INTO permits (ticket_id, permit_type, issued_by_id, status, safety_checklist)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING permit_id, issued_at`
	return r.pool.QueryRow(ctx, query,
		permit.TicketID,
		permit.PermitType,
		permit.IssuedByID,
		permit.Status,
		permit.SafetyChecklist,
	).Scan(&permit.ID, &permit.IssuedAt)
}

func (r *permitRepository) Update(ctx context.Context, permit *domain.Permit) error {
	const query = `
        UPDATE permits SET status=$1, acknowledged_by_id=$2, acknowledged_at=$3
        WHERE permit_id=$4`
	cmd, err := r.pool.Exec(ctx, query,
		permit.Status,
		permit.AcknowledgedByID,
		permit.AcknowledgedAt,
		permit.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *permitRepository) GetByID(ctx context.Context, id int64) (*domain.Permit, error) {
	const query = `
        SELECT permit_id, ticket_id, permit_type, issued_by_id, acknowledged_by_id,
               status, safety_checklist, issued_at, acknowledged_at
        FROM permits WHERE permit_id=$1`
	var permit domain.Permit
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&permit.ID,
		&permit.TicketID,
		&permit.PermitType,
		&permit.IssuedByID,
		&permit.AcknowledgedByID,
		&permit.Status,
		&permit.SafetyChecklist,
		&permit.IssuedAt,
		&permit.AcknowledgedAt,
	); err != nil {
		return nil, err
	}
	return &permit, nil
}
