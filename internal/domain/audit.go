package domain

import "time"

// Audit action tags for every state-changing operation.
const (
	AuditCreateTicket      = "CREATE_TICKET"
	AuditUpdateTicket      = "UPDATE_TICKET"
	AuditCloseTicket       = "CLOSE_TICKET"
	AuditAddActivityLog    = "ADD_ACTIVITY_LOG"
	AuditIssuePermit       = "ISSUE_PERMIT"
	AuditAcknowledgePermit = "ACKNOWLEDGE_PERMIT"
	AuditRegisterUser      = "REGISTER_USER"
	AuditLoginUser         = "LOGIN_USER"
	AuditUpdateUser        = "UPDATE_USER"
	AuditCreateAsset       = "CREATE_ASSET"
	AuditDeleteAsset       = "DELETE_ASSET"
	AuditReportLocation    = "REPORT_LOCATION"
)

// AuditEntry is an immutable record of a state-changing action. Its write is
// best-effort: losing an entry never fails the action it describes.
type AuditEntry struct {
	ID         int64
	UserID     int64
	Action     string
	EntityType string
	EntityID   int64
	Metadata   map[string]any
	CreatedAt  time.Time
}
