package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/owenj053/netone-backend/internal/domain"
)

// LocationRepository tracks the single current position per engineer and
// serves the dispatch candidate query.
type LocationRepository interface {
	Upsert(ctx context.Context, loc *domain.EngineerLocation) error
	DispatchCandidates(ctx context.Context) ([]domain.DispatchCandidate, error)
}

type locationRepository struct {
	pool *pgxpool.Pool
}

// NewLocationRepository instantiates repository.
func NewLocationRepository(pool *pgxpool.Pool) LocationRepository {
	return &locationRepository{pool: pool}
}

// Upsert overwrites the engineer's location in place. No history is kept.
func (r *locationRepository) Upsert(ctx context.Context, loc *domain.EngineerLocation) error {
	const query = `
        INSERT INTO engineer_locations (user_id, latitude, longitude, last_updated_at)
        VALUES ($1,$2,$3,NOW())
        ON CONFLICT (user_id) DO UPDATE SET
            latitude = EXCLUDED.latitude,
            longitude = EXCLUDED.longitude,
            last_updated_at = NOW()
        RETURNING last_updated_at`
	return r.pool.QueryRow(ctx, query, loc.UserID, loc.Latitude, loc.Longitude).
		Scan(&loc.LastUpdatedAt)
}

// DispatchCandidates returns every engineer joined with their latest location
// and current open-ticket count. Engineers without a location come back with
// nil coordinates; the ranker discards them.
func (r *locationRepository) DispatchCandidates(ctx context.Context) ([]domain.DispatchCandidate, error) {
	builder := psql.Select(
		"u.user_id",
		"u.engineer_id",
		"u.full_name",
		"loc.latitude",
		"loc.longitude",
		"(SELECT COUNT(*) FROM tickets t WHERE t.assigned_to_id = u.user_id AND LOWER(t.status) = 'open') AS open_tickets",
	).
		From("users u").
		LeftJoin("engineer_locations loc ON u.user_id = loc.user_id").
		Where(sq.Eq{"LOWER(u.role)": string(domain.RoleEngineer)})

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.DispatchCandidate
	for rows.Next() {
		var cand domain.DispatchCandidate
		if err := rows.Scan(
			&cand.UserID,
			&cand.EngineerID,
			&cand.FullName,
			&cand.Latitude,
			&cand.Longitude,
			&cand.OpenTickets,
		); err != nil {
			return nil, err
		}
		result = append(result, cand)
	}
	return result, rows.Err()
}
