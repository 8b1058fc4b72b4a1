package dto

import (
	"time"

	"github.com/simrs-labs/complaint-service/internal/domain"
)

// SLARuleRequest is the create/update payload for SLA rules.
type SLARuleRequest struct {
	Name                string                `json:"name"`
	UnitTypeID          *string               `json:"unit_type_id"`
	ServiceCategoryID   *string               `json:"service_category_id"`
	PatientTypeID       *string               `json:"patient_type_id"`
	PriorityLevel       domain.TicketPriority `json:"priority_level"`
	ResponseTimeHours   int                   `json:"response_time_hours"`
	ResolutionTimeHours int                   `json:"resolution_time_hours"`
	EscalationTimeHours *int                  `json:"escalation_time_hours"`
	BusinessHoursOnly   bool                  `json:"business_hours_only"`
	IsActive            bool                  `json:"is_active"`
}

// SLARuleResponse mirrors a stored rule.
type SLARuleResponse struct {
	ID                  string                `json:"id"`
	Name                string                `json:"name"`
	UnitTypeID          *string               `json:"unit_type_id"`
	ServiceCategoryID   *string               `json:"service_category_id"`
	PatientTypeID       *string               `json:"patient_type_id"`
	PriorityLevel       domain.TicketPriority `json:"priority_level"`
	ResponseTimeHours   int                   `json:"response_time_hours"`
	ResolutionTimeHours int                   `json:"resolution_time_hours"`
	EscalationTimeHours *int                  `json:"escalation_time_hours"`
	BusinessHoursOnly   bool                  `json:"business_hours_only"`
	IsActive            bool                  `json:"is_active"`
	CreatedAt           time.Time             `json:"created_at"`
	UpdatedAt           time.Time             `json:"updated_at"`
}

// SLAPreviewRequest asks which rule a hypothetical complaint would match.
type SLAPreviewRequest struct {
	UnitID        string                `json:"unit_id"`
	CategoryID    string                `json:"category_id"`
	PatientTypeID *string               `json:"patient_type_id"`
	Priority      domain.TicketPriority `json:"priority"`
}

// SLAPreviewResponse reports the matched rule and resulting deadlines.
type SLAPreviewResponse struct {
	RuleID             *string    `json:"rule_id"`
	RuleName           string     `json:"rule_name"`
	ResponseDeadline   time.Time  `json:"response_deadline"`
	ResolutionDeadline time.Time  `json:"resolution_deadline"`
	EscalationDeadline *time.Time `json:"escalation_deadline"`
}
