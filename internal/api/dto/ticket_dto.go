package dto

import (
	"time"

	"github.com/simrs-labs/complaint-service/internal/domain"
	"github.com/simrs-labs/complaint-service/internal/sla"
)

// TicketSummary is the staff list row.
type TicketSummary struct {
	ID              string                `json:"id"`
	ReferenceKey    string                `json:"reference_key"`
	UnitID          string                `json:"unit_id"`
	CategoryID      string                `json:"category_id"`
	AssigneeStaffID *string               `json:"assignee_staff_id"`
	Title           string                `json:"title"`
	Status          domain.TicketStatus   `json:"status"`
	Priority        domain.TicketPriority `json:"priority"`
	SLADeadline     time.Time             `json:"sla_deadline"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

// TicketDetailResponse provides full ticket info for staff.
type TicketDetailResponse struct {
	ID                 string                  `json:"id"`
	ReferenceKey       string                  `json:"reference_key"`
	ReporterName       string                  `json:"reporter_name"`
	ReporterContact    string                  `json:"reporter_contact"`
	PatientTypeID      *string                 `json:"patient_type_id"`
	UnitID             string                  `json:"unit_id"`
	CategoryID         string                  `json:"category_id"`
	AssigneeStaffID    *string                 `json:"assignee_staff_id"`
	Title              string                  `json:"title"`
	Description        string                  `json:"description"`
	Status             domain.TicketStatus     `json:"status"`
	EffectiveStatus    sla.EffectiveStatus     `json:"effective_status"`
	Priority           domain.TicketPriority   `json:"priority"`
	SLARuleID          *string                 `json:"sla_rule_id"`
	ResponseDeadline   time.Time               `json:"response_deadline"`
	SLADeadline        time.Time               `json:"sla_deadline"`
	EscalationDeadline *time.Time              `json:"escalation_deadline"`
	FirstResponseAt    *time.Time              `json:"first_response_at"`
	ResolvedAt         *time.Time              `json:"resolved_at"`
	ClosedAt           *time.Time              `json:"closed_at"`
	CreatedAt          time.Time               `json:"created_at"`
	UpdatedAt          time.Time               `json:"updated_at"`
	Messages           []TicketMessageResponse `json:"messages"`
}

// TicketMessageResponse represents a thread message.
type TicketMessageResponse struct {
	ID          string                   `json:"id"`
	MessageType domain.TicketMessageType `json:"message_type"`
	AuthorType  domain.MessageAuthorType `json:"author_type"`
	AuthorID    *string                  `json:"author_id"`
	Body        string                   `json:"body"`
	CreatedAt   time.Time                `json:"created_at"`
}

// TicketHistoryResponse is an audit trail entry.
type TicketHistoryResponse struct {
	ID            string         `json:"id"`
	ChangedByType string         `json:"changed_by_type"`
	ChangedByID   *string        `json:"changed_by_id"`
	ChangeType    string         `json:"change_type"`
	OldValue      map[string]any `json:"old_value"`
	NewValue      map[string]any `json:"new_value"`
	CreatedAt     time.Time      `json:"created_at"`
}

// UpdateStatusRequest payload.
type UpdateStatusRequest struct {
	Status  domain.TicketStatus `json:"status"`
	Comment string              `json:"comment"`
}

// UpdatePriorityRequest payload.
type UpdatePriorityRequest struct {
	Priority domain.TicketPriority `json:"priority"`
}

// AssignTicketRequest payload. Null assignee clears the assignment.
type AssignTicketRequest struct {
	AssigneeStaffID *string `json:"assignee_staff_id"`
}
