package domain

import "time"

// ActivityLog is an immutable record of work performed on a ticket.
// Append-only, ordered by creation time.
type ActivityLog struct {
	ID        int64
	TicketID  int64
	UserID    int64
	LogEntry  string
	PartsUsed *string
	CreatedAt time.Time
}
