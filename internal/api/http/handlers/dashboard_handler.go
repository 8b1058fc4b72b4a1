package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/simrs-labs/complaint-service/internal/auth"
	"github.com/simrs-labs/complaint-service/internal/domain"
	"github.com/simrs-labs/complaint-service/internal/service"
	apperrors "github.com/simrs-labs/complaint-service/pkg/util/errorutil"
)

// DashboardHandler serves aggregated complaint views.
type DashboardHandler struct {
	service *service.DashboardService
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: dashboardService}
}

// Summary GET /dashboard/summary. Unit-bound agents only see their unit.
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("staff required")
	}
	filter := service.DashboardFilter{
		UnitID:      optionalQuery(c, "unit_id"),
		CategoryID:  optionalQuery(c, "category_id"),
		CreatedFrom: parseTimeQuery(c, "from"),
		CreatedTo:   parseTimeQuery(c, "to"),
	}
	if principal.Role != domain.StaffRoleAdmin && principal.Staff.UnitID != nil {
		filter.UnitID = principal.Staff.UnitID
	}
	summary, err := h.service.Summary(c.Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": summary})
}
