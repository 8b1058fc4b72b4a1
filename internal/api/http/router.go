package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/simrs-labs/complaint-service/internal/api/http/handlers"
	"github.com/simrs-labs/complaint-service/internal/auth"
	"github.com/simrs-labs/complaint-service/internal/domain"
	"github.com/simrs-labs/complaint-service/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Complaints     *handlers.ComplaintsHandler
	Reference      *handlers.ReferenceHandler
	Tickets        *handlers.TicketsHandler
	SLARules       *handlers.SLARulesHandler
	Dashboard      *handlers.DashboardHandler
	Staff          *handlers.StaffHandler
	Notifications  *handlers.NotificationsHandler
	Metrics        *observability.Metrics
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", cfg.Metrics.Handler())

	// Public surface: patients and visitors file and track complaints
	// without an account.
	app.Post("/complaints", cfg.Complaints.Create)
	app.Get("/complaints/:key", cfg.Complaints.Track)
	app.Post("/complaints/:key/messages", cfg.Complaints.AddMessage)

	reference := app.Group("/reference")
	reference.Get("/units", cfg.Reference.ListUnits)
	reference.Get("/unit-types", cfg.Reference.ListUnitTypes)
	reference.Get("/categories", cfg.Reference.ListCategories)
	reference.Get("/patient-types", cfg.Reference.ListPatientTypes)

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Staff.Login)
	authGroup.Post("/password/reset/request", cfg.Staff.RequestPasswordReset)
	authGroup.Post("/password/reset/confirm", cfg.Staff.ConfirmPasswordReset)
	authGroup.Post("/password/change", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated(), cfg.Staff.ChangePassword)

	staffOnly := app.Group("", cfg.AuthMiddleware.Handle, auth.RequireStaffRole())

	tickets := staffOnly.Group("/tickets")
	tickets.Get("", cfg.Tickets.List)
	tickets.Get("/:id", cfg.Tickets.Get)
	tickets.Patch("/:id/status", cfg.Tickets.UpdateStatus)
	tickets.Patch("/:id/priority", cfg.Tickets.UpdatePriority)
	tickets.Patch("/:id/assignee", cfg.Tickets.Assign)
	tickets.Post("/:id/messages", cfg.Tickets.AddMessage)
	tickets.Get("/:id/history", cfg.Tickets.History)
	tickets.Get("/:id/sla", cfg.SLARules.TicketStatus)

	staffOnly.Get("/dashboard/summary", cfg.Dashboard.Summary)

	staffOnly.Get("/notifications", cfg.Notifications.List)
	staffOnly.Post("/notifications/:id/read", cfg.Notifications.MarkRead)

	adminOnly := app.Group("", cfg.AuthMiddleware.Handle, auth.RequireStaffRole(domain.StaffRoleAdmin))

	slaRules := adminOnly.Group("/sla-rules")
	slaRules.Post("", cfg.SLARules.Create)
	slaRules.Post("/preview", cfg.SLARules.Preview)
	slaRules.Get("", cfg.SLARules.List)
	slaRules.Get("/:id", cfg.SLARules.Get)
	slaRules.Put("/:id", cfg.SLARules.Update)
	slaRules.Delete("/:id", cfg.SLARules.Delete)

	referenceAdmin := adminOnly.Group("/reference")
	referenceAdmin.Post("/units", cfg.Reference.CreateUnit)
	referenceAdmin.Put("/units/:id", cfg.Reference.UpdateUnit)
	referenceAdmin.Post("/categories", cfg.Reference.CreateCategory)
	referenceAdmin.Put("/categories/:id", cfg.Reference.UpdateCategory)
	referenceAdmin.Post("/patient-types", cfg.Reference.CreatePatientType)
	referenceAdmin.Put("/patient-types/:id", cfg.Reference.UpdatePatientType)

	staffAdmin := adminOnly.Group("/staff")
	staffAdmin.Post("", cfg.Staff.Create)
	staffAdmin.Get("", cfg.Staff.List)
	staffAdmin.Get("/:id", cfg.Staff.Get)
	staffAdmin.Put("/:id", cfg.Staff.Update)
}
