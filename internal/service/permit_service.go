package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/owenj053/netone-backend/internal/domain"
	"github.com/owenj053/netone-backend/internal/events"
	"github.com/owenj053/netone-backend/internal/repository"
	apperrors "github.com/owenj053/netone-backend/pkg/util"
)

// PermitService runs the safety-permit workflow: a manager issues exactly one
// permit per ticket, and the assigned engineer acknowledges it.
type PermitService struct {
	permits    repository.PermitRepository
	tickets    repository.TicketRepository
	audit      *AuditTrail
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// PermitDependencies bundles collaborators for the permit service.
type PermitDependencies struct {
	PermitRepo repository.PermitRepository
	TicketRepo repository.TicketRepository
	Audit      *AuditTrail
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewPermitService constructs the service.
func NewPermitService(deps PermitDependencies) *PermitService {
	return &PermitService{
		permits:    deps.PermitRepo,
		tickets:    deps.TicketRepo,
		audit:      deps.Audit,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// Issue creates a permit in status Issued for a ticket. A second permit on
// the same ticket fails with Conflict.
func (s *PermitService) Issue(ctx context.Context, ticketID int64, permitType string, checklist map[string]any, issuerID int64) (*domain.Permit, error) {
	if strings.TrimSpace(permitType) == "" {
		return nil, apperrors.NewValidationError("permit_type required", nil)
	}
	if _, err := s.tickets.GetByID(ctx, ticketID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}

	permit := &domain.Permit{
		TicketID:        ticketID,
		PermitType:      strings.TrimSpace(permitType),
		IssuedByID:      issuerID,
		Status:          domain.PermitStatusIssued,
		SafetyChecklist: checklist,
	}
	if err := s.permits.Create(ctx, permit); err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("permit already issued for ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}

	s.audit.Append(ctx, issuerID, domain.AuditIssuePermit, "permit", permit.ID, map[string]any{
		"ticket_id":   ticketID,
		"permit_type": permit.PermitType,
	})
	s.publish(ctx, events.Event{
		Type:     events.EventPermitIssued,
		TicketID: ticketID,
		ActorID:  issuerID,
		Payload:  events.PermitPayload{PermitID: permit.ID, PermitType: permit.PermitType},
	})
	return permit, nil
}

// Acknowledge moves a permit from Issued to Acknowledged. The acknowledger
// must be the engineer currently assigned to the permit's ticket.
func (s *PermitService) Acknowledge(ctx context.Context, permitID, engineerID int64) (*domain.Permit, error) {
	permit, err := s.permits.GetByID(ctx, permitID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("permit", map[string]any{"permit_id": permitID})
		}
		return nil, apperrors.MapError(err)
	}

	ticket, err := s.tickets.GetByID(ctx, permit.TicketID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if ticket.AssignedToID == nil || *ticket.AssignedToID != engineerID {
		return nil, apperrors.NewForbidden("permit can only be acknowledged by the assigned engineer")
	}

	now := time.Now()
	permit.Status = domain.PermitStatusAcknowledged
	permit.AcknowledgedByID = &engineerID
	permit.AcknowledgedAt = &now
	if err := s.permits.Update(ctx, permit); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.audit.Append(ctx, engineerID, domain.AuditAcknowledgePermit, "permit", permit.ID, map[string]any{
		"status": domain.PermitStatusAcknowledged,
	})
	s.publish(ctx, events.Event{
		Type:     events.EventPermitAcknowledged,
		TicketID: permit.TicketID,
		ActorID:  engineerID,
		Payload:  events.PermitPayload{PermitID: permit.ID},
	})
	return permit, nil
}

func (s *PermitService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
