package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/owenj053/netone-backend/internal/domain"
)

// ActivityLogRepository encapsulates the append-only activity log.
type ActivityLogRepository interface {
	Create(ctx context.Context, log *domain.ActivityLog) error
	ListByTicket(ctx context.Context, ticketID int64) ([]domain.ActivityLog, error)
}

type activityLogRepository struct {
	pool *pgxpool.Pool
}

// NewActivityLogRepository instantiates repository.
func NewActivityLogRepository(pool *pgxpool.Pool) ActivityLogRepository {
	return &activityLogRepository{pool: pool}
}

func (r *activityLogRepository) Create(ctx context.Context, log *domain.ActivityLog) error {
	const query = `
        INSERT INTO activity_logs (ticket_id, user_id, log_entry, parts_used)
        VALUES ($1,$2,$3,$4)
        RETURNING log_id, created_at`
	return r.pool.QueryRow(ctx, query,
		log.TicketID,
		log.UserID,
		log.LogEntry,
		log.PartsUsed,
	).Scan(&log.ID, &log.CreatedAt)
}

func (r *activityLogRepository) ListByTicket(ctx context.Context, ticketID int64) ([]domain.ActivityLog, error) {
	const query = `
        SELECT log_id, ticket_id, user_id, log_entry, parts_used, created_at
        FROM activity_logs WHERE ticket_id=$1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ActivityLog
	for rows.Next() {
		var log domain.ActivityLog
		if err := rows.Scan(
			&log.ID,
			&log.TicketID,
			&log.UserID,
			&log.LogEntry,
			&log.PartsUsed,
			&log.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, log)
	}
	return result, rows.Err()
}
