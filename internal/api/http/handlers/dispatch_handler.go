package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/owenj053/netone-backend/internal/api/dto"
	"github.com/owenj053/netone-backend/internal/auth"
	"github.com/owenj053/netone-backend/internal/service"
	apperrors "github.com/owenj053/netone-backend/pkg/util"
)

// DispatchHandler manages engineer location reports and dispatch ranking.
type DispatchHandler struct {
	service *service.DispatchService
}

// NewDispatchHandler constructs handler.
func NewDispatchHandler(dispatchService *service.DispatchService) *DispatchHandler {
	return &DispatchHandler{service: dispatchService}
}

// ReportLocation POST /dispatch/location. Engineer only; overwrites the
// caller's previous position.
func (h *DispatchHandler) ReportLocation(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.ReportLocationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	location, err := h.service.ReportLocation(c.UserContext(), principal.ID(), req.Latitude, req.Longitude)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewLocationResponse(location)})
}

// RankEngineers GET /dispatch/ticket/:ticket_id. Manager only.
func (h *DispatchHandler) RankEngineers(c *fiber.Ctx) error {
	ticketID, err := parseIDParam(c, "ticket_id")
	if err != nil {
		return err
	}
	ranked, err := h.service.RankForTicket(c.UserContext(), ticketID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewRankedEngineerListResponse(ranked)})
}
