package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/simrs-labs/complaint-service/internal/api/dto"
	"github.com/simrs-labs/complaint-service/internal/service"
	apperrors "github.com/simrs-labs/complaint-service/pkg/util/errorutil"
)

// ComplaintsHandler serves the public, unauthenticated complaint endpoints.
type ComplaintsHandler struct {
	service *service.TicketService
}

// NewComplaintsHandler constructs handler.
func NewComplaintsHandler(ticketService *service.TicketService) *ComplaintsHandler {
	return &ComplaintsHandler{service: ticketService}
}

// Create POST /complaints.
func (h *ComplaintsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateComplaintRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.UnitID == "" || req.CategoryID == "" {
		return apperrors.NewValidationError("unit_id and category_id required", nil)
	}

	ticket, err := h.service.CreateComplaint(c.Context(), service.ComplaintInput{
		ReporterName:    req.ReporterName,
		ReporterContact: req.ReporterContact,
		PatientTypeID:   req.PatientTypeID,
		UnitID:          req.UnitID,
		CategoryID:      req.CategoryID,
		Title:           req.Title,
		Description:     req.Description,
		Priority:        req.Priority,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.CreateComplaintResponse{
		ReferenceKey:     ticket.ReferenceKey,
		Status:           string(ticket.Status),
		ResponseDeadline: ticket.ResponseDeadline,
		SLADeadline:      ticket.SLADeadline,
	}})
}

// Track GET /complaints/:key.
func (h *ComplaintsHandler) Track(c *fiber.Ctx) error {
	ticket, msgs, effective, err := h.service.GetByReferenceKey(c.Context(), c.Params("key"))
	if err != nil {
		return err
	}
	response := dto.ComplaintTrackResponse{
		ReferenceKey:    ticket.ReferenceKey,
		Title:           ticket.Title,
		Status:          ticket.Status,
		EffectiveStatus: effective,
		Priority:        ticket.Priority,
		SLADeadline:     ticket.SLADeadline,
		CreatedAt:       ticket.CreatedAt,
		Messages:        make([]dto.TicketMessageResponse, 0, len(msgs)),
	}
	for i := range msgs {
		response.Messages = append(response.Messages, ticketMessageResponse(&msgs[i]))
	}
	return c.JSON(fiber.Map{"data": response})
}

// AddMessage POST /complaints/:key/messages.
func (h *ComplaintsHandler) AddMessage(c *fiber.Ctx) error {
	var req dto.CreateMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Body) == "" {
		return apperrors.NewValidationError("body required", nil)
	}
	msg, err := h.service.AddReporterMessage(c.Context(), c.Params("key"), req.Body)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": ticketMessageResponse(msg)})
}
