package dto

import "github.com/owenj053/netone-backend/internal/repository"

// TeamSummaryResponse aggregates team-wide ticket statistics.
type TeamSummaryResponse struct {
	OpenTickets          int64    `json:"open_tickets"`
	ResolvedTickets      int64    `json:"resolved_tickets"`
	AvgResolutionSeconds *float64 `json:"avg_resolution_seconds"`
}

// NewTeamSummaryResponse maps the aggregate.
func NewTeamSummaryResponse(summary *repository.TeamSummary) TeamSummaryResponse {
	return TeamSummaryResponse{
		OpenTickets:          summary.OpenTickets,
		ResolvedTickets:      summary.ResolvedTickets,
		AvgResolutionSeconds: summary.AvgResolutionSeconds,
	}
}

// UserReportResponse aggregates per-user ticket statistics.
type UserReportResponse struct {
	TicketsCreated       int64    `json:"tickets_created"`
	TicketsResolved      int64    `json:"tickets_resolved"`
	AvgResolutionSeconds *float64 `json:"avg_resolution_seconds"`
}

// NewUserReportResponse maps the aggregate.
func NewUserReportResponse(report *repository.UserReport) UserReportResponse {
	return UserReportResponse{
		TicketsCreated:       report.TicketsCreated,
		TicketsResolved:      report.TicketsResolved,
		AvgResolutionSeconds: report.AvgResolutionSeconds,
	}
}
