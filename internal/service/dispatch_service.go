package service

import (
	"context"
	"errors"
	"math"
	"sort"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/owenj053/netone-backend/internal/domain"
	"github.com/owenj053/netone-backend/internal/repository"
	apperrors "github.com/owenj053/netone-backend/pkg/util"
)

// earthRadiusKm is the mean Earth radius used by the haversine formula.
const earthRadiusKm = 6371.0

// DispatchService ranks engineers by proximity to a ticket and records
// engineer location reports.
type DispatchService struct {
	tickets   repository.TicketRepository
	locations repository.LocationRepository
	audit     *AuditTrail
	logger    *zap.Logger
}

// DispatchDependencies bundles collaborators for the dispatch service.
type DispatchDependencies struct {
	TicketRepo   repository.TicketRepository
	LocationRepo repository.LocationRepository
	Audit        *AuditTrail
	Logger       *zap.Logger
}

// NewDispatchService constructs the service.
func NewDispatchService(deps DispatchDependencies) *DispatchService {
	return &DispatchService{
		tickets:   deps.TicketRepo,
		locations: deps.LocationRepo,
		audit:     deps.Audit,
		logger:    deps.Logger,
	}
}

// RankForTicket returns engineers ordered nearest-first relative to the
// ticket's coordinates. Engineers with no recorded location are discarded.
// Ties keep input order; the open-ticket count is returned for the caller to
// use as a secondary signal. Read-only and safe to call concurrently.
func (s *DispatchService) RankForTicket(ctx context.Context, ticketID int64) ([]domain.RankedEngineer, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}
	if ticket.Latitude == nil || ticket.Longitude == nil {
		return nil, apperrors.NewNotFound("ticket coordinates", map[string]any{"ticket_id": ticketID})
	}

	candidates, err := s.locations.DispatchCandidates(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	ranked := make([]domain.RankedEngineer, 0, len(candidates))
	for _, cand := range candidates {
		if cand.Latitude == nil || cand.Longitude == nil {
			continue
		}
		ranked = append(ranked, domain.RankedEngineer{
			UserID:      cand.UserID,
			EngineerID:  cand.EngineerID,
			FullName:    cand.FullName,
			Latitude:    *cand.Latitude,
			Longitude:   *cand.Longitude,
			OpenTickets: cand.OpenTickets,
			DistanceKm:  haversine(*ticket.Latitude, *ticket.Longitude, *cand.Latitude, *cand.Longitude),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].DistanceKm < ranked[j].DistanceKm
	})
	return ranked, nil
}

// ReportLocation upserts the engineer's current position, overwriting any
// prior value. No history is retained.
func (s *DispatchService) ReportLocation(ctx context.Context, engineerID int64, lat, lon float64) (*domain.EngineerLocation, error) {
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return nil, apperrors.NewValidationError("coordinates out of range", map[string]any{
			"latitude":  lat,
			"longitude": lon,
		})
	}
	loc := &domain.EngineerLocation{
		UserID:    engineerID,
		Latitude:  lat,
		Longitude: lon,
	}
	if err := s.locations.Upsert(ctx, loc); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.audit.Append(ctx, engineerID, domain.AuditReportLocation, "user", engineerID, map[string]any{
		"latitude":  lat,
		"longitude": lon,
	})
	return loc, nil
}

// haversine computes the great-circle distance in kilometers.
func haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * (math.Pi / 180)
	dLon := (lon2 - lon1) * (math.Pi / 180)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*(math.Pi/180))*math.Cos(lat2*(math.Pi/180))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}
