package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/owenj053/netone-backend/internal/api/dto"
	"github.com/owenj053/netone-backend/internal/auth"
	"github.com/owenj053/netone-backend/internal/service"
	apperrors "github.com/owenj053/netone-backend/pkg/util"
)

// TicketsHandler manages ticket lifecycle endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// CreateTicket POST /tickets.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	ticket, err := h.service.Create(c.UserContext(), principal.ID(), req.ToInput())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewTicketResponse(ticket)})
}

// ListTickets GET /tickets. Managers see everything; engineers only their
// assigned tickets.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	tickets, err := h.service.ListForActor(c.UserContext(), service.Actor{ID: principal.ID(), Role: principal.Role()})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketListResponse(tickets)})
}

// GetTicket GET /tickets/:id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	ticketID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	ticket, err := h.service.Get(c.UserContext(), ticketID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(ticket)})
}

// UpdateTicket PUT /tickets/:id. The unified transition endpoint: a present
// log_entry appends an activity log, a Closed status closes, anything else
// merges into the ticket.
func (h *TicketsHandler) UpdateTicket(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	ticketID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	result, err := h.service.Transition(c.UserContext(), ticketID, req.ToPatch(), service.Actor{ID: principal.ID(), Role: principal.Role()})
	if err != nil {
		return err
	}
	if result.Log != nil {
		return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewActivityLogResponse(result.Log)})
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(result.Ticket)})
}

// ListLogs GET /tickets/:id/logs.
func (h *TicketsHandler) ListLogs(c *fiber.Ctx) error {
	ticketID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	logs, err := h.service.ListLogs(c.UserContext(), ticketID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewActivityLogListResponse(logs)})
}
