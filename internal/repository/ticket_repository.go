package repository

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/owenj053/netone-backend/internal/domain"
)

// ErrVersionConflict is returned by Update when the row's version no longer
// matches the one the caller read. The caller re-reads and retries.
var ErrVersionConflict = errors.New("ticket version conflict")

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const ticketColumns = `ticket_id, asset_id, created_by_id, assigned_to_id, status, urgency,
       description, root_cause, resolution_summary, latitude, longitude, weather,
       version, created_at, resolved_at, closed_at, closed_by_id`

// TicketFilter captures ticket listing parameters.
type TicketFilter struct {
	AssignedToID *int64
	CreatedByID  *int64
	Statuses     []string
	Limit        int
	Offset       int
}

// TicketRepository encapsulates ticket persistence.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	Update(ctx context.Context, ticket *domain.Ticket) error
	UpdateWeather(ctx context.Context, id int64, snapshot *domain.WeatherSnapshot) error
	GetByID(ctx context.Context, id int64) (*domain.Ticket, error)
	List(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (asset_id, created_by_id, assigned_to_id, status, urgency, description,
            root_cause, resolution_summary, latitude, longitude)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING ticket_id, version, created_at`
	return r.pool.QueryRow(ctx, query,
		ticket.AssetID,
		ticket.CreatedByID,
		ticket.AssignedToID,
		ticket.Status,
		ticket.Urgency,
		ticket.Description,
		ticket.RootCause,
		ticket.ResolutionSummary,
		ticket.Latitude,
		ticket.Longitude,
	).Scan(&ticket.ID, &ticket.Version, &ticket.CreatedAt)
}

// Update writes the full row guarded by the version the caller read.
func (r *ticketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        UPDATE tickets SET assigned_to_id=$1, status=$2, urgency=$3, description=$4,
            root_cause=$5, resolution_summary=$6, latitude=$7, longitude=$8,
            resolved_at=$9, closed_at=$10, closed_by_id=$11, version=version+1
        WHERE ticket_id=$12 AND version=$13`
	cmd, err := r.pool.Exec(ctx, query,
		ticket.AssignedToID,
		ticket.Status,
		ticket.Urgency,
		ticket.Description,
		ticket.RootCause,
		ticket.ResolutionSummary,
		ticket.Latitude,
		ticket.Longitude,
		ticket.ResolvedAt,
		ticket.ClosedAt,
		ticket.ClosedByID,
		ticket.ID,
		ticket.Version,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrVersionConflict
	}
	ticket.Version++
	return nil
}

// UpdateWeather sets only the weather snapshot. It deliberately bypasses the
// version guard: enrichment must never contend with lifecycle transitions.
func (r *ticketRepository) UpdateWeather(ctx context.Context, id int64, snapshot *domain.WeatherSnapshot) error {
	const query = `UPDATE tickets SET weather=$1 WHERE ticket_id=$2`
	cmd, err := r.pool.Exec(ctx, query, snapshot, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE ticket_id=$1`
	var ticket domain.Ticket
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&ticket.ID,
		&ticket.AssetID,
		&ticket.CreatedByID,
		&ticket.AssignedToID,
		&ticket.Status,
		&ticket.Urgency,
		&ticket.Description,
		&ticket.RootCause,
		&ticket.ResolutionSummary,
		&ticket.Latitude,
		&ticket.Longitude,
		&ticket.Weather,
		&ticket.Version,
		&ticket.CreatedAt,
		&ticket.ResolvedAt,
		&ticket.ClosedAt,
		&ticket.ClosedByID,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) List(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error) {
	builder := psql.Select(ticketColumns).
		From("tickets").
		OrderBy("created_at DESC")

	if filter.AssignedToID != nil {
		builder = builder.Where(sq.Eq{"assigned_to_id": *filter.AssignedToID})
	}
	if filter.CreatedByID != nil {
		builder = builder.Where(sq.Eq{"created_by_id": *filter.CreatedByID})
	}
	if len(filter.Statuses) > 0 {
		builder = builder.Where(sq.Eq{"status": filter.Statuses})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		builder = builder.Offset(uint64(filter.Offset))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		if err := rows.Scan(
			&ticket.ID,
			&ticket.AssetID,
			&ticket.CreatedByID,
			&ticket.AssignedToID,
			&ticket.Status,
			&ticket.Urgency,
			&ticket.Description,
			&ticket.RootCause,
			&ticket.ResolutionSummary,
			&ticket.Latitude,
			&ticket.Longitude,
			&ticket.Weather,
			&ticket.Version,
			&ticket.CreatedAt,
			&ticket.ResolvedAt,
			&ticket.ClosedAt,
			&ticket.ClosedByID,
		); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}
