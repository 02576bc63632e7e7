package dto

import (
	"time"

	"github.com/owenj053/netone-backend/internal/domain"
	"github.com/owenj053/netone-backend/internal/service"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	AssetID     int64                `json:"asset_id" validate:"required"`
	Description string               `json:"description" validate:"required"`
	Urgency     domain.TicketUrgency `json:"urgency" validate:"omitempty,oneof=Low Medium High"`
	Status      string               `json:"status"`
	Latitude    *float64             `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude   *float64             `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
}

// ToInput maps the request onto the service input.
func (r CreateTicketRequest) ToInput() service.TicketCreateInput {
	return service.TicketCreateInput{
		AssetID:     r.AssetID,
		Description: r.Description,
		Urgency:     r.Urgency,
		Status:      r.Status,
		Latitude:    r.Latitude,
		Longitude:   r.Longitude,
	}
}

// UpdateTicketRequest is the unified update payload. All fields are optional;
// a present log_entry makes the call an activity-log append and everything
// else in the body is ignored.
type UpdateTicketRequest struct {
	AssignedToID      *int64  `json:"assigned_to_id"`
	Status            *string `json:"status"`
	RootCause         *string `json:"root_cause"`
	ResolutionSummary *string `json:"resolution_summary"`
	LogEntry          *string `json:"log_entry"`
	PartsUsed         *string `json:"parts_used"`
}

// ToPatch maps the request onto the service patch.
func (r UpdateTicketRequest) ToPatch() service.TicketPatch {
	return service.TicketPatch{
		AssignedToID:      r.AssignedToID,
		Status:            r.Status,
		RootCause:         r.RootCause,
		ResolutionSummary: r.ResolutionSummary,
		LogEntry:          r.LogEntry,
		PartsUsed:         r.PartsUsed,
	}
}

// TicketResponse provides full ticket info.
type TicketResponse struct {
	ID                int64                   `json:"ticket_id"`
	AssetID           int64                   `json:"asset_id"`
	CreatedByID       int64                   `json:"created_by_id"`
	AssignedToID      *int64                  `json:"assigned_to_id"`
	Status            string                  `json:"status"`
	Urgency           domain.TicketUrgency    `json:"urgency"`
	Description       string                  `json:"description"`
	RootCause         *string                 `json:"root_cause"`
	ResolutionSummary *string                 `json:"resolution_summary"`
	Latitude          *float64                `json:"latitude"`
	Longitude         *float64                `json:"longitude"`
	Weather           *domain.WeatherSnapshot `json:"weather"`
	CreatedAt         time.Time               `json:"created_at"`
	ResolvedAt        *time.Time              `json:"resolved_at"`
	ClosedAt          *time.Time              `json:"closed_at"`
	ClosedByID        *int64                  `json:"closed_by_id"`
}

// NewTicketResponse maps a domain ticket.
func NewTicketResponse(ticket *domain.Ticket) TicketResponse {
	return TicketResponse{
		ID:                ticket.ID,
		AssetID:           ticket.AssetID,
		CreatedByID:       ticket.CreatedByID,
		AssignedToID:      ticket.AssignedToID,
		Status:            ticket.Status,
		Urgency:           ticket.Urgency,
		Description:       ticket.Description,
		RootCause:         ticket.RootCause,
		ResolutionSummary: ticket.ResolutionSummary,
		Latitude:          ticket.Latitude,
		Longitude:         ticket.Longitude,
		Weather:           ticket.Weather,
		CreatedAt:         ticket.CreatedAt,
		ResolvedAt:        ticket.ResolvedAt,
		ClosedAt:          ticket.ClosedAt,
		ClosedByID:        ticket.ClosedByID,
	}
}

// NewTicketListResponse maps a slice of tickets.
func NewTicketListResponse(tickets []domain.Ticket) []TicketResponse {
	out := make([]TicketResponse, 0, len(tickets))
	for i := range tickets {
		out = append(out, NewTicketResponse(&tickets[i]))
	}
	return out
}

// ActivityLogResponse represents one log line.
type ActivityLogResponse struct {
	ID        int64     `json:"log_id"`
	TicketID  int64     `json:"ticket_id"`
	UserID    int64     `json:"user_id"`
	LogEntry  string    `json:"log_entry"`
	PartsUsed *string   `json:"parts_used"`
	CreatedAt time.Time `json:"created_at"`
}

// NewActivityLogResponse maps a domain activity log.
func NewActivityLogResponse(log *domain.ActivityLog) ActivityLogResponse {
	return ActivityLogResponse{
		ID:        log.ID,
		TicketID:  log.TicketID,
		UserID:    log.UserID,
		LogEntry:  log.LogEntry,
		PartsUsed: log.PartsUsed,
		CreatedAt: log.CreatedAt,
	}
}

// NewActivityLogListResponse maps a slice of logs.
func NewActivityLogListResponse(logs []domain.ActivityLog) []ActivityLogResponse {
	out := make([]ActivityLogResponse, 0, len(logs))
	for i := range logs {
		out = append(out, NewActivityLogResponse(&logs[i]))
	}
	return out
}
