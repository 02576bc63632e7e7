package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated      EventType = "ticket_created"
	EventTicketUpdated      EventType = "ticket_updated"
	EventTicketClosed       EventType = "ticket_closed"
	EventActivityLogged     EventType = "activity_logged"
	EventPermitIssued       EventType = "permit_issued"
	EventPermitAcknowledged EventType = "permit_acknowledged"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  int64       `json:"ticket_id"`
	ActorID   int64       `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	AssetID int64  `json:"asset_id"`
	Urgency string `json:"urgency"`
	Status  string `json:"status"`
}

// TicketUpdatedPayload payload.
type TicketUpdatedPayload struct {
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
}

// PermitPayload payload for permit events.
type PermitPayload struct {
	PermitID   int64  `json:"permit_id"`
	PermitType string `json:"permit_type,omitempty"`
}
