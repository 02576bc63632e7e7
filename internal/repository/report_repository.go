package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TeamSummary aggregates team-wide ticket statistics.
type TeamSummary struct {
	OpenTickets          int64
	ResolvedTickets      int64
	AvgResolutionSeconds *float64
}

// UserReport aggregates per-user ticket statistics.
type UserReport struct {
	TicketsCreated       int64
	TicketsResolved      int64
	AvgResolutionSeconds *float64
}

// ReportRepository serves read-only aggregate queries.
type ReportRepository interface {
	TeamSummary(ctx context.Context) (*TeamSummary, error)
	UserReport(ctx context.Context, userID int64) (*UserReport, error)
}

type reportRepository struct {
	pool *pgxpool.Pool
}

// NewReportRepository instantiates repository.
func NewReportRepository(pool *pgxpool.Pool) ReportRepository {
	return &reportRepository{pool: pool}
}

func (r *reportRepository) TeamSummary(ctx context.Context) (*TeamSummary, error) {
	const query = `
        SELECT
            (SELECT COUNT(*) FROM tickets WHERE LOWER(status) = 'open') AS open_tickets,
            (SELECT COUNT(*) FROM tickets WHERE LOWER(status) = 'resolved') AS resolved_tickets,
            AVG(EXTRACT(EPOCH FROM (resolved_at - created_at))) AS avg_resolution_seconds
        FROM tickets
        WHERE resolved_at IS NOT NULL`
	var summary TeamSummary
	if err := r.pool.QueryRow(ctx, query).Scan(
		&summary.OpenTickets,
		&summary.ResolvedTickets,
		&summary.AvgResolutionSeconds,
	); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (r *reportRepository) UserReport(ctx context.Context, userID int64) (*UserReport, error) {
	const query = `
        SELECT
            (SELECT COUNT(*) FROM tickets WHERE created_by_id = $1) AS tickets_created,
            (SELECT COUNT(*) FROM tickets WHERE assigned_to_id = $1 AND LOWER(status) = 'resolved') AS tickets_resolved,
            AVG(EXTRACT(EPOCH FROM (t.resolved_at - t.created_at))) AS avg_resolution_seconds
        FROM tickets t
        WHERE t.assigned_to_id = $1 AND t.resolved_at IS NOT NULL`
	var report UserReport
	if err := r.pool.QueryRow(ctx, query, userID).Scan(
		&report.TicketsCreated,
		&report.TicketsResolved,
		&report.AvgResolutionSeconds,
	); err != nil {
		return nil, err
	}
	return &report, nil
}
