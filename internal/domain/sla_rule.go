package domain

import "time"

// SLARule is a configured deadline policy. The three dimension matchers are
// true optionals: nil means the rule applies to any value of that dimension.
// PriorityLevel is mandatory equality, never a wildcard.
type SLARule struct {
	ID                  string
	Name                string
	UnitTypeID          *string
	ServiceCategoryID   *string
	PatientTypeID       *string
	PriorityLevel       TicketPriority
	ResponseTimeHours   int
	ResolutionTimeHours int
	EscalationTimeHours *int
	BusinessHoursOnly   bool
	IsActive            bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
