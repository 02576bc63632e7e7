package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/owenj053/netone-backend/internal/api/dto"
	"github.com/owenj053/netone-backend/internal/service"
)

// ReportsHandler serves aggregate reporting endpoints.
type ReportsHandler struct {
	service *service.ReportService
}

// NewReportsHandler constructs handler.
func NewReportsHandler(reportService *service.ReportService) *ReportsHandler {
	return &ReportsHandler{service: reportService}
}

// TeamSummary GET /reports/summary. Manager only.
func (h *ReportsHandler) TeamSummary(c *fiber.Ctx) error {
	summary, err := h.service.TeamSummary(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTeamSummaryResponse(summary)})
}

// UserReport GET /reports/user/:user_id. Manager only.
func (h *ReportsHandler) UserReport(c *fiber.Ctx) error {
	userID, err := parseIDParam(c, "user_id")
	if err != nil {
		return err
	}
	report, err := h.service.UserReport(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserReportResponse(report)})
}
