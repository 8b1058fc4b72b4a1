package domain

import "time"

// PatientType classifies the reporting patient (general, insurance, corporate).
type PatientType struct {
	ID        string
	Name      string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
