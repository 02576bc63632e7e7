package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/owenj053/netone-backend/internal/domain"
	"github.com/owenj053/netone-backend/internal/events"
	"github.com/owenj053/netone-backend/internal/observability"
)

type permitFixture struct {
	service    *PermitService
	permits    *fakePermitRepo
	tickets    *fakeTicketRepo
	audit      *fakeAuditRepo
	dispatcher *recordingDispatcher
}

func newPermitFixture(t *testing.T) (*permitFixture, *domain.Ticket) {
	t.Helper()
	permits := newFakePermitRepo()
	tickets := newFakeTicketRepo()
	audit := &fakeAuditRepo{}
	dispatcher := &recordingDispatcher{}
	svc := NewPermitService(PermitDependencies{
		PermitRepo: permits,
		TicketRepo: tickets,
		Audit:      NewAuditTrail(audit, zap.NewNop(), observability.NewMetrics()),
		Dispatcher: dispatcher,
		Logger:     zap.NewNop(),
	})

	assignee := int64(7)
	ticket := &domain.Ticket{
		AssetID:      1,
		CreatedByID:  assignee,
		AssignedToID: &assignee,
		Status:       domain.TicketStatusOpen,
		Urgency:      domain.TicketUrgencyMedium,
		Description:  "work at height",
	}
	require.NoError(t, tickets.Create(context.Background(), ticket))

	return &permitFixture{service: svc, permits: permits, tickets: tickets, audit: audit, dispatcher: dispatcher}, ticket
}

func TestIssuePermit(t *testing.T) {
	f, ticket := newPermitFixture(t)

	permit, err := f.service.Issue(context.Background(), ticket.ID, "Working at Height", map[string]any{"harness": true}, 3)
	require.NoError(t, err)

	assert.Equal(t, domain.PermitStatusIssued, permit.Status)
	assert.Equal(t, ticket.ID, permit.TicketID)
	assert.Equal(t, int64(3), permit.IssuedByID)
	assert.Nil(t, permit.AcknowledgedByID)
	assert.Nil(t, permit.AcknowledgedAt)
	assert.Equal(t, []string{domain.AuditIssuePermit}, f.audit.actions())
	assert.Equal(t, []events.EventType{events.EventPermitIssued}, f.dispatcher.types())
}

func TestIssuePermitRequiresType(t *testing.T) {
	f, ticket := newPermitFixture(t)

	_, err := f.service.Issue(context.Background(), ticket.ID, "  ", nil, 3)
	assertCode(t, err, "VALIDATION_FAILED")
}

func TestIssuePermitUnknownTicket(t *testing.T) {
	f, _ := newPermitFixture(t)

	_, err := f.service.Issue(context.Background(), 404, "Hot Work", nil, 3)
	assertCode(t, err, "NOT_FOUND")
}

func TestIssueSecondPermitConflicts(t *testing.T) {
	f, ticket := newPermitFixture(t)

	_, err := f.service.Issue(context.Background(), ticket.ID, "Hot Work", nil, 3)
	require.NoError(t, err)

	_, err = f.service.Issue(context.Background(), ticket.ID, "Confined Space", nil, 3)
	assertCode(t, err, "CONFLICT")
}

func TestAcknowledgePermit(t *testing.T) {
	f, ticket := newPermitFixture(t)

	permit, err := f.service.Issue(context.Background(), ticket.ID, "Hot Work", nil, 3)
	require.NoError(t, err)

	acked, err := f.service.Acknowledge(context.Background(), permit.ID, *ticket.AssignedToID)
	require.NoError(t, err)

	assert.Equal(t, domain.PermitStatusAcknowledged, acked.Status)
	require.NotNil(t, acked.AcknowledgedByID)
	assert.Equal(t, *ticket.AssignedToID, *acked.AcknowledgedByID)
	assert.NotNil(t, acked.AcknowledgedAt)
	assert.Contains(t, f.dispatcher.types(), events.EventPermitAcknowledged)
}

func TestAcknowledgeByWrongEngineerForbidden(t *testing.T) {
	f, ticket := newPermitFixture(t)

	permit, err := f.service.Issue(context.Background(), ticket.ID, "Hot Work", nil, 3)
	require.NoError(t, err)

	_, err = f.service.Acknowledge(context.Background(), permit.ID, 99)
	assertCode(t, err, "FORBIDDEN")
}

func TestAcknowledgeUnknownPermit(t *testing.T) {
	f, _ := newPermitFixture(t)

	_, err := f.service.Acknowledge(context.Background(), 404, 7)
	assertCode(t, err, "NOT_FOUND")
}
