package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/simrs-labs/complaint-service/internal/config"
	"github.com/simrs-labs/complaint-service/internal/domain"
	"github.com/simrs-labs/complaint-service/internal/events"
	"github.com/simrs-labs/complaint-service/internal/repository"
)

// NotificationService persists staff notifications for domain events and
// forwards them to the configured stub channels.
type NotificationService struct {
	dispatcher    events.Dispatcher
	notifications repository.NotificationRepository
	tickets       repository.TicketRepository
	staff         repository.StaffRepository
	logger        *zap.Logger
	cfg           config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(
	dispatcher events.Dispatcher,
	notifications repository.NotificationRepository,
	tickets repository.TicketRepository,
	staff repository.StaffRepository,
	logger *zap.Logger,
	cfg config.NotificationConfig,
) *NotificationService {
	return &NotificationService{
		dispatcher:    dispatcher,
		notifications: notifications,
		tickets:       tickets,
		staff:         staff,
		logger:        logger,
		cfg:           cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventTicketCreated, n.handleTicketCreated)
	n.dispatcher.Subscribe(events.EventTicketAssigned, n.handleTicketAssigned)
	n.dispatcher.Subscribe(events.EventTicketStatusChanged, n.handleTicketStatusChanged)
	n.dispatcher.Subscribe(events.EventTicketEscalated, n.handleTicketEscalated)
}

// ListForStaff returns notifications for the given recipient.
func (n *NotificationService) ListForStaff(ctx context.Context, staffID string, unreadOnly bool, limit, offset int) ([]domain.Notification, error) {
	return n.notifications.ListByRecipient(ctx, staffID, unreadOnly, limit, offset)
}

// MarkRead marks a notification as read for its recipient.
func (n *NotificationService) MarkRead(ctx context.Context, id, staffID string) error {
	return n.notifications.MarkRead(ctx, id, staffID)
}

func (n *NotificationService) handleTicketCreated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketCreatedPayload)
	if !ok {
		return nil
	}
	title := fmt.Sprintf("New complaint %s", payload.ReferenceKey)
	body := payload.Subject
	recipients, err := n.staff.ListActiveByUnit(ctx, payload.UnitID)
	if err != nil {
		return err
	}
	for _, member := range recipients {
		if err := n.persist(ctx, member.ID, event.TicketID, domain.NotificationTicketCreated, title, body); err != nil {
			return err
		}
	}
	n.sendEmailStub(event)
	n.sendWebhookStub(event)
	return nil
}

func (n *NotificationService) handleTicketAssigned(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketAssignedPayload)
	if !ok || payload.AssigneeStaffID == nil {
		return nil
	}
	err := n.persist(ctx, *payload.AssigneeStaffID, event.TicketID, domain.NotificationTicketAssigned,
		"Complaint assigned to you", "")
	if err != nil {
		return err
	}
	n.sendWebhookStub(event)
	return nil
}

func (n *NotificationService) handleTicketStatusChanged(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketStatusChangedPayload)
	if !ok {
		return nil
	}
	ticket, err := n.tickets.GetByID(ctx, event.TicketID)
	if err != nil {
		return err
	}
	if ticket.AssigneeStaffID == nil {
		return nil
	}
	title := fmt.Sprintf("Complaint %s is now %s", ticket.ReferenceKey, payload.NewStatus)
	if err := n.persist(ctx, *ticket.AssigneeStaffID, ticket.ID, domain.NotificationStatusChanged, title, payload.Comment); err != nil {
		return err
	}
	n.sendWebhookStub(event)
	return nil
}

func (n *NotificationService) handleTicketEscalated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketEscalatedPayload)
	if !ok {
		return nil
	}
	ticket, err := n.tickets.GetByID(ctx, event.TicketID)
	if err != nil {
		return err
	}
	title := fmt.Sprintf("Complaint %s escalated", payload.ReferenceKey)
	body := "Escalation deadline passed without resolution"

	recipients, err := n.staff.ListActiveByUnit(ctx, ticket.UnitID)
	if err != nil {
		return err
	}
	notified := map[string]struct{}{}
	for _, member := range recipients {
		notified[member.ID] = struct{}{}
		if err := n.persist(ctx, member.ID, ticket.ID, domain.NotificationTicketEscalated, title, body); err != nil {
			return err
		}
	}
	if ticket.AssigneeStaffID != nil {
		if _, seen := notified[*ticket.AssigneeStaffID]; !seen {
			if err := n.persist(ctx, *ticket.AssigneeStaffID, ticket.ID, domain.NotificationTicketEscalated, title, body); err != nil {
				return err
			}
		}
	}
	n.sendEmailStub(event)
	n.sendWebhookStub(event)
	return nil
}

func (n *NotificationService) persist(ctx context.Context, staffID, ticketID string, kind domain.NotificationKind, title, body string) error {
	notification := &domain.Notification{
		RecipientStaffID: staffID,
		TicketID:         ticketID,
		Kind:             kind,
		Title:            title,
		Body:             body,
	}
	return n.notifications.Create(ctx, notification)
}

func (n *NotificationService) sendEmailStub(event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("email notification",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("ticket_id", event.TicketID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookStub(event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("webhook notification",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("ticket_id", event.TicketID),
		zap.String("event_type", string(event.Type)))
}
