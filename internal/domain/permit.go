package domain

import "time"

// PermitStatus enumerates the two permit states.
type PermitStatus string

const (
	PermitStatusIssued       PermitStatus = "Issued"
	PermitStatusAcknowledged PermitStatus = "Acknowledged"
)

// Permit is a safety authorization scoped to exactly one ticket. A permit in
// status Issued has no acknowledger or acknowledgment time; Acknowledged
// implies both are set.
type Permit struct {
	ID               int64
	TicketID         int64
	PermitType       string
	IssuedByID       int64
	AcknowledgedByID *int64
	Status           PermitStatus
	SafetyChecklist  map[string]any
	IssuedAt         time.Time
	AcknowledgedAt   *time.Time
}
