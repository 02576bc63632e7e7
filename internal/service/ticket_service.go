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

// maxTransitionAttempts bounds the optimistic retry loop on version conflicts.
const maxTransitionAttempts = 3

// Actor identifies the authenticated caller of a lifecycle operation.
type Actor struct {
	ID   int64
	Role domain.Role
}

// TicketService implements the ticket lifecycle and its role-gated
// transitions.
type TicketService struct {
	tickets    repository.TicketRepository
	assets     repository.AssetRepository
	logs       repository.ActivityLogRepository
	audit      *AuditTrail
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo      repository.TicketRepository
	AssetRepo       repository.AssetRepository
	ActivityLogRepo repository.ActivityLogRepository
	Audit           *AuditTrail
	Dispatcher      events.Dispatcher
	Logger          *zap.Logger
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	AssetID     int64
	Description string
	Urgency     domain.TicketUrgency
	Status      string
	Latitude    *float64
	Longitude   *float64
}

// TicketPatch is the optional-field update structure for the unified
// transition entry point. A nil field means "leave unchanged". A non-empty
// LogEntry turns the whole call into an activity-log append and no other
// field is touched.
type TicketPatch struct {
	AssignedToID      *int64
	Status            *string
	RootCause         *string
	ResolutionSummary *string
	LogEntry          *string
	PartsUsed         *string
}

// TransitionResult carries the outcome of a transition: the updated ticket,
// or the appended activity log on the log short-circuit path.
type TransitionResult struct {
	Ticket *domain.Ticket
	Log    *domain.ActivityLog
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		assets:     deps.AssetRepo,
		logs:       deps.ActivityLogRepo,
		audit:      deps.Audit,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// Create opens a new ticket on an asset, assigned to its creator.
func (s *TicketService) Create(ctx context.Context, actorID int64, input TicketCreateInput) (*domain.Ticket, error) {
	if strings.TrimSpace(input.Description) == "" {
		return nil, apperrors.NewValidationError("description required", nil)
	}
	if _, err := s.assets.GetByID(ctx, input.AssetID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewValidationError("asset does not exist", map[string]any{"asset_id": input.AssetID})
		}
		return nil, apperrors.MapError(err)
	}

	status := strings.TrimSpace(input.Status)
	if status == "" {
		status = domain.TicketStatusOpen
	}
	urgency := input.Urgency
	if urgency == "" {
		urgency = domain.TicketUrgencyMedium
	}

	assignee := actorID
	ticket := &domain.Ticket{
		AssetID:      input.AssetID,
		CreatedByID:  actorID,
		AssignedToID: &assignee,
		Status:       status,
		Urgency:      urgency,
		Description:  strings.TrimSpace(input.Description),
		Latitude:     input.Latitude,
		Longitude:    input.Longitude,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.audit.Append(ctx, actorID, domain.AuditCreateTicket, "ticket", ticket.ID, map[string]any{
		"asset_id": ticket.AssetID,
		"urgency":  ticket.Urgency,
		"status":   ticket.Status,
	})
	s.publish(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		ActorID:  actorID,
		Payload: events.TicketCreatedPayload{
			AssetID: ticket.AssetID,
			Urgency: string(ticket.Urgency),
			Status:  ticket.Status,
		},
	})
	return ticket, nil
}

// Transition applies a patch through the unified entry point: activity-log
// append, close request, or general merge update. The authorization rule is
// evaluated against the ticket as it was before the patch.
func (s *TicketService) Transition(ctx context.Context, ticketID int64, patch TicketPatch, actor Actor) (*TransitionResult, error) {
	for attempt := 0; attempt < maxTransitionAttempts; attempt++ {
		ticket, err := s.tickets.GetByID(ctx, ticketID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
			}
			return nil, apperrors.MapError(err)
		}

		if err := authorizeTransition(actor, ticket); err != nil {
			return nil, err
		}

		if patch.LogEntry != nil && strings.TrimSpace(*patch.LogEntry) != "" {
			return s.appendActivityLog(ctx, ticket, actor, *patch.LogEntry, patch.PartsUsed)
		}

		if patch.Status != nil && strings.EqualFold(*patch.Status, domain.TicketStatusClosed) {
			result, err := s.closeTicket(ctx, ticket, patch, actor)
			if errors.Is(err, repository.ErrVersionConflict) {
				continue
			}
			return result, err
		}

		result, err := s.applyUpdate(ctx, ticket, patch, actor)
		if errors.Is(err, repository.ErrVersionConflict) {
			continue
		}
		return result, err
	}
	return nil, apperrors.NewConflict("ticket was modified concurrently, retry", map[string]any{"ticket_id": ticketID})
}

// ListForActor returns the actor's tickets: all of them for a manager, only
// assigned ones for an engineer.
func (s *TicketService) ListForActor(ctx context.Context, actor Actor) ([]domain.Ticket, error) {
	filter := repository.TicketFilter{}
	if !actor.Role.Is(domain.RoleManager) {
		id := actor.ID
		filter.AssignedToID = &id
	}
	tickets, err := s.tickets.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tickets, nil
}

// Get fetches one ticket.
func (s *TicketService) Get(ctx context.Context, ticketID int64) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

// ListLogs returns a ticket's activity log entries, newest first.
func (s *TicketService) ListLogs(ctx context.Context, ticketID int64) ([]domain.ActivityLog, error) {
	if _, err := s.tickets.GetByID(ctx, ticketID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}
	logs, err := s.logs.ListByTicket(ctx, ticketID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return logs, nil
}

// authorizeTransition enforces the ownership rule: an engineer may only
// transition a ticket currently assigned to them; a manager may transition
// any ticket.
func authorizeTransition(actor Actor, ticket *domain.Ticket) error {
	if actor.Role.Is(domain.RoleManager) {
		return nil
	}
	if ticket.AssignedToID != nil && *ticket.AssignedToID == actor.ID {
		return nil
	}
	return apperrors.NewForbidden("ticket is not assigned to you")
}

func (s *TicketService) appendActivityLog(ctx context.Context, ticket *domain.Ticket, actor Actor, entry string, partsUsed *string) (*TransitionResult, error) {
	log := &domain.ActivityLog{
		TicketID:  ticket.ID,
		UserID:    actor.ID,
		LogEntry:  strings.TrimSpace(entry),
		PartsUsed: partsUsed,
	}
	if err := s.logs.Create(ctx, log); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.audit.Append(ctx, actor.ID, domain.AuditAddActivityLog, "ticket", ticket.ID, map[string]any{
		"log_entry":  log.LogEntry,
		"parts_used": partsUsed,
	})
	s.publish(ctx, events.Event{
		Type:     events.EventActivityLogged,
		TicketID: ticket.ID,
		ActorID:  actor.ID,
	})
	return &TransitionResult{Ticket: ticket, Log: log}, nil
}

// closeTicket handles a status=Closed patch: only a Resolved ticket may be
// closed, and a resolution summary is mandatory.
func (s *TicketService) closeTicket(ctx context.Context, ticket *domain.Ticket, patch TicketPatch, actor Actor) (*TransitionResult, error) {
	if patch.ResolutionSummary == nil || strings.TrimSpace(*patch.ResolutionSummary) == "" {
		return nil, apperrors.NewValidationError("resolution_summary required to close a ticket", nil)
	}
	if !ticket.StatusIs(domain.TicketStatusResolved) {
		return nil, apperrors.NewConflict("only a resolved ticket can be closed", map[string]any{
			"current_status": ticket.Status,
		})
	}

	now := time.Now()
	closedBy := actor.ID
	summary := strings.TrimSpace(*patch.ResolutionSummary)
	ticket.Status = domain.TicketStatusClosed
	ticket.ResolutionSummary = &summary
	ticket.ClosedAt = &now
	ticket.ClosedByID = &closedBy

	if err := s.tickets.Update(ctx, ticket); err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			return nil, err
		}
		return nil, apperrors.MapError(err)
	}

	s.audit.Append(ctx, actor.ID, domain.AuditCloseTicket, "ticket", ticket.ID, map[string]any{
		"resolution_summary": summary,
	})
	s.publish(ctx, events.Event{
		Type:     events.EventTicketClosed,
		TicketID: ticket.ID,
		ActorID:  actor.ID,
	})
	return &TransitionResult{Ticket: ticket}, nil
}

// applyUpdate merges the patch over the current row. Entering Resolved for
// the first time stamps resolved_at; it is never overwritten afterwards.
func (s *TicketService) applyUpdate(ctx context.Context, ticket *domain.Ticket, patch TicketPatch, actor Actor) (*TransitionResult, error) {
	oldStatus := ticket.Status
	changed := map[string]any{}

	if patch.AssignedToID != nil {
		ticket.AssignedToID = patch.AssignedToID
		changed["assigned_to_id"] = *patch.AssignedToID
	}
	if patch.Status != nil {
		newStatus := strings.TrimSpace(*patch.Status)
		if newStatus == "" {
			return nil, apperrors.NewValidationError("status cannot be empty", nil)
		}
		if strings.EqualFold(newStatus, domain.TicketStatusResolved) &&
			!ticket.StatusIs(domain.TicketStatusResolved) && ticket.ResolvedAt == nil {
			now := time.Now()
			ticket.ResolvedAt = &now
		}
		ticket.Status = newStatus
		changed["status"] = newStatus
	}
	if patch.RootCause != nil {
		ticket.RootCause = patch.RootCause
		changed["root_cause"] = *patch.RootCause
	}
	if patch.ResolutionSummary != nil {
		ticket.ResolutionSummary = patch.ResolutionSummary
		changed["resolution_summary"] = *patch.ResolutionSummary
	}
	if len(changed) == 0 {
		return &TransitionResult{Ticket: ticket}, nil
	}

	if err := s.tickets.Update(ctx, ticket); err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			return nil, err
		}
		return nil, apperrors.MapError(err)
	}

	s.audit.Append(ctx, actor.ID, domain.AuditUpdateTicket, "ticket", ticket.ID, changed)
	s.publish(ctx, events.Event{
		Type:     events.EventTicketUpdated,
		TicketID: ticket.ID,
		ActorID:  actor.ID,
		Payload: events.TicketUpdatedPayload{
			OldStatus: oldStatus,
			NewStatus: ticket.Status,
		},
	})
	return &TransitionResult{Ticket: ticket}, nil
}

func (s *TicketService) publish(ctx context.Context, event events.Event) {
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
