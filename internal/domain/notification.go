package domain

import "time"

// NotificationKind enumerates notification triggers.
type NotificationKind string

const (
	NotificationTicketCreated   NotificationKind = "ticket_created"
	NotificationTicketAssigned  NotificationKind = "ticket_assigned"
	NotificationStatusChanged   NotificationKind = "status_changed"
	NotificationTicketEscalated NotificationKind = "ticket_escalated"
)

// Notification is a persisted per-staff notification row. Delivery transport
// is out of scope; rows are read through the staff console.
type Notification struct {
	ID               string
	RecipientStaffID string
	TicketID         string
	Kind             NotificationKind
	Title            string
	Body             string
	ReadAt           *time.Time
	CreatedAt        time.Time
}
