package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/owenj053/netone-backend/internal/domain"
	"github.com/owenj053/netone-backend/internal/observability"
	"github.com/owenj053/netone-backend/internal/repository"
)

// AuditTrail appends immutable action records. Appends are best-effort: the
// trail is diagnostic, not transactional, so a lost entry must never cascade
// into failing the operation it describes.
type AuditTrail struct {
	entries repository.AuditRepository
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewAuditTrail constructs the trail.
func NewAuditTrail(entries repository.AuditRepository, logger *zap.Logger, metrics *observability.Metrics) *AuditTrail {
	return &AuditTrail{entries: entries, logger: logger, metrics: metrics}
}

// Append records an action. Storage failures are logged and discarded; the
// call never returns an error and is always issued after the primary write
// has committed.
func (a *AuditTrail) Append(ctx context.Context, userID int64, action, entityType string, entityID int64, metadata map[string]any) {
	if a == nil || a.entries == nil {
		return
	}
	entry := &domain.AuditEntry{
		UserID:     userID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Metadata:   metadata,
	}
	if err := a.entries.Create(ctx, entry); err != nil {
		a.metrics.RecordAuditDrop()
		a.logger.Error("failed to write audit log",
			zap.String("action", action),
			zap.String("entity_type", entityType),
			zap.Int64("entity_id", entityID),
			zap.Error(err))
		return
	}
	a.logger.Debug("audit log written",
		zap.String("action", action),
		zap.Int64("user_id", userID),
		zap.String("entity_type", entityType),
		zap.Int64("entity_id", entityID))
}
