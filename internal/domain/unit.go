package domain

import "time"

// Unit represents a hospital work unit (ward, polyclinic, pharmacy, ...).
type Unit struct {
	ID          string
	UnitTypeID  string
	Name        string
	Description string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// UnitType groups units for SLA rule matching (inpatient, outpatient, support).
type UnitType struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
