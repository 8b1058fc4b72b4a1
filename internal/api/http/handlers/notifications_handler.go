package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/simrs-labs/complaint-service/internal/api/dto"
	"github.com/simrs-labs/complaint-service/internal/auth"
	"github.com/simrs-labs/complaint-service/internal/service"
	apperrors "github.com/simrs-labs/complaint-service/pkg/util/errorutil"
)

// NotificationsHandler serves staff console notifications.
type NotificationsHandler struct {
	service *service.NotificationService
}

// NewNotificationsHandler constructs handler.
func NewNotificationsHandler(notificationService *service.NotificationService) *NotificationsHandler {
	return &NotificationsHandler{service: notificationService}
}

// List GET /notifications.
func (h *NotificationsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("staff required")
	}
	limit, offset := parsePagination(c)
	unreadOnly := c.QueryBool("unread")
	notifications, err := h.service.ListForStaff(c.Context(), principal.Staff.ID, unreadOnly, limit, offset)
	if err != nil {
		return err
	}
	items := make([]dto.NotificationResponse, 0, len(notifications))
	for _, notification := range notifications {
		items = append(items, dto.NotificationResponse{
			ID:        notification.ID,
			TicketID:  notification.TicketID,
			Kind:      string(notification.Kind),
			Title:     notification.Title,
			Body:      notification.Body,
			ReadAt:    notification.ReadAt,
			CreatedAt: notification.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

// MarkRead POST /notifications/:id/read.
func (h *NotificationsHandler) MarkRead(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("staff required")
	}
	if err := h.service.MarkRead(c.Context(), c.Params("id"), principal.Staff.ID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
