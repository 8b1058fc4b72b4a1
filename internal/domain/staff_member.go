package domain

import "time"

// StaffRole enumerates internal operator roles.
type StaffRole string

const (
	StaffRoleAgent StaffRole = "agent"
	StaffRoleAdmin StaffRole = "admin"
)

// StaffMember models a complaint handler or administrator.
type StaffMember struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         StaffRole
	UnitID       *string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
