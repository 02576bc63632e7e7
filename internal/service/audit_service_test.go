package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/owenj053/netone-backend/internal/domain"
	"github.com/owenj053/netone-backend/internal/observability"
)

func TestAuditAppendRecordsEntry(t *testing.T) {
	repo := &fakeAuditRepo{}
	trail := NewAuditTrail(repo, zap.NewNop(), observability.NewMetrics())

	trail.Append(context.Background(), 7, domain.AuditCreateTicket, "ticket", 12, map[string]any{"urgency": "High"})

	require.Len(t, repo.entries, 1)
	entry := repo.entries[0]
	assert.Equal(t, int64(7), entry.UserID)
	assert.Equal(t, domain.AuditCreateTicket, entry.Action)
	assert.Equal(t, "ticket", entry.EntityType)
	assert.Equal(t, int64(12), entry.EntityID)
	assert.Equal(t, "High", entry.Metadata["urgency"])
}

func TestAuditAppendSwallowsStorageFailure(t *testing.T) {
	repo := &fakeAuditRepo{fail: true}
	trail := NewAuditTrail(repo, zap.NewNop(), observability.NewMetrics())

	// Must not panic or propagate anything.
	trail.Append(context.Background(), 7, domain.AuditCloseTicket, "ticket", 12, nil)
	assert.Empty(t, repo.entries)
}

func TestAuditAppendNilTrailIsNoop(t *testing.T) {
	var trail *AuditTrail
	trail.Append(context.Background(), 7, domain.AuditCreateTicket, "ticket", 12, nil)
}
