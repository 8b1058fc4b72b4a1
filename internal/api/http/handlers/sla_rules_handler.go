package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/simrs-labs/complaint-service/internal/api/dto"
	"github.com/simrs-labs/complaint-service/internal/domain"
	"github.com/simrs-labs/complaint-service/internal/service"
	apperrors "github.com/simrs-labs/complaint-service/pkg/util/errorutil"
)

// SLARulesHandler manages admin SLA rule endpoints.
type SLARulesHandler struct {
	service *service.SLAService
}

// NewSLARulesHandler constructs handler.
func NewSLARulesHandler(slaService *service.SLAService) *SLARulesHandler {
	return &SLARulesHandler{service: slaService}
}

// Create POST /sla-rules.
func (h *SLARulesHandler) Create(c *fiber.Ctx) error {
	var req dto.SLARuleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	rule, err := h.service.CreateRule(c.Context(), ruleInput(req))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": ruleResponse(rule)})
}

// Update PUT /sla-rules/:id.
func (h *SLARulesHandler) Update(c *fiber.Ctx) error {
	var req dto.SLARuleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	rule, err := h.service.UpdateRule(c.Context(), c.Params("id"), ruleInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ruleResponse(rule)})
}

// Delete DELETE /sla-rules/:id.
func (h *SLARulesHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.DeleteRule(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Get GET /sla-rules/:id.
func (h *SLARulesHandler) Get(c *fiber.Ctx) error {
	rule, err := h.service.GetRule(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ruleResponse(rule)})
}

// List GET /sla-rules.
func (h *SLARulesHandler) List(c *fiber.Ctx) error {
	rules, err := h.service.ListRules(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.SLARuleResponse, 0, len(rules))
	for i := range rules {
		items = append(items, ruleResponse(&rules[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Preview POST /sla-rules/preview.
func (h *SLARulesHandler) Preview(c *fiber.Ctx) error {
	var req dto.SLAPreviewRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.UnitID == "" || req.CategoryID == "" {
		return apperrors.NewValidationError("unit_id and category_id required", nil)
	}
	rule, deadlines, err := h.service.PreviewResolution(c.Context(), req.UnitID, req.CategoryID, req.PatientTypeID, req.Priority)
	if err != nil {
		return err
	}
	response := dto.SLAPreviewResponse{
		RuleName:           rule.Name,
		ResponseDeadline:   deadlines.Response,
		ResolutionDeadline: deadlines.Resolution,
		EscalationDeadline: deadlines.Escalation,
	}
	if rule.ID != "" {
		id := rule.ID
		response.RuleID = &id
	}
	return c.JSON(fiber.Map{"data": response})
}

// TicketStatus GET /tickets/:id/sla. Derives the breach overlay for one
// ticket without loading its thread.
func (h *SLARulesHandler) TicketStatus(c *fiber.Ctx) error {
	effective, err := h.service.EffectiveStatus(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"effective_status": effective}})
}

func ruleInput(req dto.SLARuleRequest) service.SLARuleInput {
	return service.SLARuleInput{
		Name:                req.Name,
		UnitTypeID:          req.UnitTypeID,
		ServiceCategoryID:   req.ServiceCategoryID,
		PatientTypeID:       req.PatientTypeID,
		PriorityLevel:       req.PriorityLevel,
		ResponseTimeHours:   req.ResponseTimeHours,
		ResolutionTimeHours: req.ResolutionTimeHours,
		EscalationTimeHours: req.EscalationTimeHours,
		BusinessHoursOnly:   req.BusinessHoursOnly,
		IsActive:            req.IsActive,
	}
}

func ruleResponse(rule *domain.SLARule) dto.SLARuleResponse {
	return dto.SLARuleResponse{
		ID:                  rule.ID,
		Name:                rule.Name,
		UnitTypeID:          rule.UnitTypeID,
		ServiceCategoryID:   rule.ServiceCategoryID,
		PatientTypeID:       rule.PatientTypeID,
		PriorityLevel:       rule.PriorityLevel,
		ResponseTimeHours:   rule.ResponseTimeHours,
		ResolutionTimeHours: rule.ResolutionTimeHours,
		EscalationTimeHours: rule.EscalationTimeHours,
		BusinessHoursOnly:   rule.BusinessHoursOnly,
		IsActive:            rule.IsActive,
		CreatedAt:           rule.CreatedAt,
		UpdatedAt:           rule.UpdatedAt,
	}
}
