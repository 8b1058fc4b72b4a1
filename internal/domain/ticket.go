package domain

import "time"

// TicketStatus enumerates lifecycle states for complaint tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusEscalated  TicketStatus = "escalated"
	TicketStatusResolved   TicketStatus = "resolved"
	TicketStatusClosed     TicketStatus = "closed"
	TicketStatusCancelled  TicketStatus = "cancelled"
)

// IsTerminal reports whether no further transition is expected.
func (s TicketStatus) IsTerminal() bool {
	switch s {
	case TicketStatusResolved, TicketStatusClosed, TicketStatusCancelled:
		return true
	}
	return false
}

// TicketPriority enumerates SLA urgency.
type TicketPriority string

const (
	TicketPriorityLow      TicketPriority = "low"
	TicketPriorityMedium   TicketPriority = "medium"
	TicketPriorityHigh     TicketPriority = "high"
	TicketPriorityCritical TicketPriority = "critical"
)

// KnownPriority reports whether the value is one of the configured levels.
func KnownPriority(p TicketPriority) bool {
	switch p {
	case TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh, TicketPriorityCritical:
		return true
	}
	return false
}

// Ticket is the aggregate for citizen complaints.
//
// ResponseDeadline, SLADeadline and EscalationDeadline are stamped once at
// creation from the matched SLA rule and are only re-stamped on an explicit
// priority change. The over_sla label is derived at read time and never stored.
type Ticket struct {
	ID                 string
	ReferenceKey       string
	ReporterName       string
	ReporterContact    string
	PatientTypeID      *string
	UnitID             string
	CategoryID         string
	AssigneeStaffID    *string
	Title              string
	Description        string
	Status             TicketStatus
	Priority           TicketPriority
	SLARuleID          *string
	ResponseDeadline   time.Time
	SLADeadline        time.Time
	EscalationDeadline *time.Time
	FirstResponseAt    *time.Time
	ResolvedAt         *time.Time
	ClosedAt           *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
