package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/owenj053/netone-backend/internal/observability"
	"github.com/owenj053/netone-backend/internal/repository"
	"github.com/owenj053/netone-backend/internal/weather"
)

// Enrichment outcomes reported to metrics.
const (
	EnrichmentOutcomeEnriched = "enriched"
	EnrichmentOutcomeSkipped  = "skipped"
	EnrichmentOutcomeFailed   = "failed"
	EnrichmentOutcomeDropped  = "dropped"
)

// EnrichmentService attaches a weather snapshot to a ticket after creation.
// Every failure path is terminal and non-fatal: the ticket is already
// committed and its creator already has their response.
type EnrichmentService struct {
	tickets  repository.TicketRepository
	assets   repository.AssetRepository
	provider weather.Provider
	logger   *zap.Logger
	metrics  *observability.Metrics
}

// EnrichmentDependencies bundles collaborators for the enrichment service.
type EnrichmentDependencies struct {
	TicketRepo repository.TicketRepository
	AssetRepo  repository.AssetRepository
	Provider   weather.Provider
	Logger     *zap.Logger
	Metrics    *observability.Metrics
}

// NewEnrichmentService constructs the service.
func NewEnrichmentService(deps EnrichmentDependencies) *EnrichmentService {
	return &EnrichmentService{
		tickets:  deps.TicketRepo,
		assets:   deps.AssetRepo,
		provider: deps.Provider,
		logger:   deps.Logger,
		metrics:  deps.Metrics,
	}
}

// EnrichTicket resolves coordinates (ticket first, then the asset's
// commissioned location), fetches current weather and stores the snapshot.
// Idempotent and safe to retry. The returned error is for the worker's
// logging only; it never reaches the ticket creator.
func (s *EnrichmentService) EnrichTicket(ctx context.Context, ticketID int64) error {
	if s.provider == nil {
		s.metrics.RecordEnrichment(EnrichmentOutcomeSkipped)
		return nil
	}

	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.metrics.RecordEnrichment(EnrichmentOutcomeSkipped)
			s.logger.Warn("enrichment skipped, ticket vanished", zap.Int64("ticket_id", ticketID))
			return nil
		}
		s.metrics.RecordEnrichment(EnrichmentOutcomeFailed)
		return err
	}

	lat, lon, ok := s.resolveCoordinates(ctx, ticket.AssetID, ticket.Latitude, ticket.Longitude)
	if !ok {
		s.metrics.RecordEnrichment(EnrichmentOutcomeSkipped)
		s.logger.Debug("enrichment skipped, no coordinates", zap.Int64("ticket_id", ticketID))
		return nil
	}

	snapshot, err := s.provider.Current(ctx, lat, lon)
	if err != nil {
		s.metrics.RecordEnrichment(EnrichmentOutcomeFailed)
		return err
	}

	if err := s.tickets.UpdateWeather(ctx, ticketID, snapshot); err != nil {
		s.metrics.RecordEnrichment(EnrichmentOutcomeFailed)
		return err
	}

	s.metrics.RecordEnrichment(EnrichmentOutcomeEnriched)
	s.logger.Info("ticket enriched with weather",
		zap.Int64("ticket_id", ticketID),
		zap.Float64("latitude", lat),
		zap.Float64("longitude", lon))
	return nil
}

func (s *EnrichmentService) resolveCoordinates(ctx context.Context, assetID int64, lat, lon *float64) (float64, float64, bool) {
	if lat != nil && lon != nil {
		return *lat, *lon, true
	}
	asset, err := s.assets.GetByID(ctx, assetID)
	if err != nil {
		return 0, 0, false
	}
	if asset.Latitude != nil && asset.Longitude != nil {
		return *asset.Latitude, *asset.Longitude, true
	}
	return 0, 0, false
}
