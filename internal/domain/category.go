package domain

import "time"

// Category is a service complaint category (facility, staff conduct, billing, ...).
type Category struct {
	ID          string
	Name        string
	Description string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
