package service

import (
	"context"

	"github.com/owenj053/netone-backend/internal/repository"
	apperrors "github.com/owenj053/netone-backend/pkg/util"
)

// ReportService serves aggregate ticket statistics for managers.
type ReportService struct {
	reports repository.ReportRepository
}

// NewReportService constructs the service.
func NewReportService(reports repository.ReportRepository) *ReportService {
	return &ReportService{reports: reports}
}

// TeamSummary returns team-wide open/resolved counts and the average
// resolution time.
func (s *ReportService) TeamSummary(ctx context.Context) (*repository.TeamSummary, error) {
	summary, err := s.reports.TeamSummary(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return summary, nil
}

// UserReport returns one user's created/resolved counts and personal average
// resolution time.
func (s *ReportService) UserReport(ctx context.Context, userID int64) (*repository.UserReport, error) {
	report, err := s.reports.UserReport(ctx, userID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return report, nil
}
