package events

import (
	"time"

	"github.com/simrs-labs/complaint-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated         EventType = "ticket_created"
	EventTicketStatusChanged   EventType = "ticket_status_changed"
	EventTicketPriorityChanged EventType = "ticket_priority_changed"
	EventTicketAssigned        EventType = "ticket_assigned"
	EventTicketMessageAdded    EventType = "ticket_message_added"
	EventTicketEscalated       EventType = "ticket_escalated"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	Type    domain.MessageAuthorType `json:"type"`
	StaffID *string                  `json:"staff_id,omitempty"`
}

// SystemActor marks events produced by background processes.
func SystemActor() Actor {
	return Actor{Type: domain.AuthorTypeSystem}
}

// StaffActor marks events produced by an authenticated staff member.
func StaffActor(staffID string) Actor {
	return Actor{Type: domain.AuthorTypeStaff, StaffID: &staffID}
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	ReferenceKey string                `json:"reference_key"`
	UnitID       string                `json:"unit_id"`
	CategoryID   string                `json:"category_id"`
	Priority     domain.TicketPriority `json:"priority"`
	Subject      string                `json:"subject"`
	SLADeadline  time.Time             `json:"sla_deadline"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
	Comment   string              `json:"comment,omitempty"`
}

// TicketPriorityChangedPayload payload.
type TicketPriorityChangedPayload struct {
	OldPriority domain.TicketPriority `json:"old_priority"`
	NewPriority domain.TicketPriority `json:"new_priority"`
	SLADeadline time.Time             `json:"sla_deadline"`
}

// TicketAssignedPayload payload.
type TicketAssignedPayload struct {
	AssigneeStaffID *string `json:"assignee_staff_id,omitempty"`
}

// TicketMessageAddedPayload payload.
type TicketMessageAddedPayload struct {
	MessageID   string                   `json:"message_id"`
	MessageType domain.TicketMessageType `json:"message_type"`
	AuthorType  domain.MessageAuthorType `json:"author_type"`
	AuthorID    *string                  `json:"author_id,omitempty"`
	BodyPreview string                   `json:"body_preview"`
}

// TicketEscalatedPayload payload.
type TicketEscalatedPayload struct {
	ReferenceKey       string     `json:"reference_key"`
	EscalationDeadline *time.Time `json:"escalation_deadline,omitempty"`
	SLADeadline        time.Time  `json:"sla_deadline"`
}
