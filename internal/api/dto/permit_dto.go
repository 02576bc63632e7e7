package dto

import (
	"time"

	"github.com/owenj053/netone-backend/internal/domain"
)

// IssuePermitRequest payload.
type IssuePermitRequest struct {
	PermitType      string         `json:"permit_type" validate:"required"`
	SafetyChecklist map[string]any `json:"safety_checklist"`
}

// PermitResponse provides full permit info.
type PermitResponse struct {
	ID               int64               `json:"permit_id"`
	TicketID         int64               `json:"ticket_id"`
	PermitType       string              `json:"permit_type"`
	IssuedByID       int64               `json:"issued_by_id"`
	AcknowledgedByID *int64              `json:"acknowledged_by_id"`
	Status           domain.PermitStatus `json:"status"`
	SafetyChecklist  map[string]any      `json:"safety_checklist"`
	IssuedAt         time.Time           `json:"issued_at"`
	AcknowledgedAt   *time.Time          `json:"acknowledged_at"`
}

// NewPermitResponse maps a domain permit.
func NewPermitResponse(permit *domain.Permit) PermitResponse {
	return PermitResponse{
		ID:               permit.ID,
		TicketID:         permit.TicketID,
		PermitType:       permit.PermitType,
		IssuedByID:       permit.IssuedByID,
		AcknowledgedByID: permit.AcknowledgedByID,
		Status:           permit.Status,
		SafetyChecklist:  permit.SafetyChecklist,
		IssuedAt:         permit.IssuedAt,
		AcknowledgedAt:   permit.AcknowledgedAt,
	}
}
