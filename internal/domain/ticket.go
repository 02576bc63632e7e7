package domain

import (
	"strings"
	"time"
)

// Ticket statuses with lifecycle semantics. Status is a free-form label and
// callers may set arbitrary intermediate values for in-progress tracking;
// only these three are interpreted by the lifecycle engine. Comparison is
// always case-insensitive.
const (
	TicketStatusOpen     = "Open"
	TicketStatusResolved = "Resolved"
	TicketStatusClosed   = "Closed"
)

// TicketUrgency enumerates urgency labels.
type TicketUrgency string

const (
	TicketUrgencyLow    TicketUrgency = "Low"
	TicketUrgencyMedium TicketUrgency = "Medium"
	TicketUrgencyHigh   TicketUrgency = "High"
)

// Ticket is the aggregate for one unit of maintenance work against an asset.
// Version backs optimistic concurrency on updates. Tickets are never deleted.
type Ticket struct {
	ID                int64
	AssetID           int64
	CreatedByID       int64
	AssignedToID      *int64
	Status            string
	Urgency           TicketUrgency
	Description       string
	RootCause         *string
	ResolutionSummary *string
	Latitude          *float64
	Longitude         *float64
	Weather           *WeatherSnapshot
	Version           int64
	CreatedAt         time.Time
	ResolvedAt        *time.Time
	ClosedAt          *time.Time
	ClosedByID        *int64
}

// StatusIs compares the ticket status against a label case-insensitively.
func (t *Ticket) StatusIs(status string) bool {
	return strings.EqualFold(t.Status, status)
}
