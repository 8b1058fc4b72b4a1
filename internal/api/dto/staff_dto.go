package dto

import (
	"time"

	"github.com/simrs-labs/complaint-service/internal/domain"
)

// LoginRequest payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse returns the issued token.
type LoginResponse struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
	Staff     StaffResponse `json:"staff"`
}

// StaffRequest is the admin create/update payload.
type StaffRequest struct {
	Name     string           `json:"name"`
	Email    string           `json:"email"`
	Password string           `json:"password,omitempty"`
	Role     domain.StaffRole `json:"role"`
	UnitID   *string          `json:"unit_id"`
	Active   bool             `json:"active"`
}

// StaffResponse mirrors a staff account without credentials.
type StaffResponse struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Email     string           `json:"email"`
	Role      domain.StaffRole `json:"role"`
	UnitID    *string          `json:"unit_id"`
	Active    bool             `json:"active"`
	CreatedAt time.Time        `json:"created_at"`
}

// PasswordResetRequest payload.
type PasswordResetRequest struct {
	Email string `json:"email"`
}

// PasswordResetConfirmRequest payload.
type PasswordResetConfirmRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// ChangePasswordRequest payload.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// NotificationResponse is a staff console notification row.
type NotificationResponse struct {
	ID        string     `json:"id"`
	TicketID  string     `json:"ticket_id"`
	Kind      string     `json:"kind"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	ReadAt    *time.Time `json:"read_at"`
	CreatedAt time.Time  `json:"created_at"`
}
