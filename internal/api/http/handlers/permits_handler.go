package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/owenj053/netone-backend/internal/api/dto"
	"github.com/owenj053/netone-backend/internal/auth"
	"github.com/owenj053/netone-backend/internal/service"
	apperrors "github.com/owenj053/netone-backend/pkg/util"
)

// PermitsHandler manages the safety permit workflow.
type PermitsHandler struct {
	service *service.PermitService
}

// NewPermitsHandler constructs handler.
func NewPermitsHandler(permitService *service.PermitService) *PermitsHandler {
	return &PermitsHandler{service: permitService}
}

// IssuePermit POST /permits/ticket/:ticket_id. Manager only.
func (h *PermitsHandler) IssuePermit(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	ticketID, err := parseIDParam(c, "ticket_id")
	if err != nil {
		return err
	}
	var req dto.IssuePermitRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	permit, err := h.service.Issue(c.UserContext(), ticketID, req.PermitType, req.SafetyChecklist, principal.ID())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewPermitResponse(permit)})
}

// AcknowledgePermit PUT /permits/:permit_id/acknowledge. Only the engineer
// assigned to the permit's ticket may acknowledge.
func (h *PermitsHandler) AcknowledgePermit(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	permitID, err := parseIDParam(c, "permit_id")
	if err != nil {
		return err
	}

	permit, err := h.service.Acknowledge(c.UserContext(), permitID, principal.ID())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPermitResponse(permit)})
}
