package dto

import (
	"time"

	"github.com/simrs-labs/complaint-service/internal/domain"
	"github.com/simrs-labs/complaint-service/internal/sla"
)

// CreateComplaintRequest is the public submission payload.
type CreateComplaintRequest struct {
	ReporterName    string                `json:"reporter_name"`
	ReporterContact string                `json:"reporter_contact"`
	PatientTypeID   *string               `json:"patient_type_id"`
	UnitID          string                `json:"unit_id"`
	CategoryID      string                `json:"category_id"`
	Title           string                `json:"title"`
	Description     string                `json:"description"`
	Priority        domain.TicketPriority `json:"priority"`
}

// CreateComplaintResponse returns the reference key used for tracking.
type CreateComplaintResponse struct {
	ReferenceKey     string    `json:"reference_key"`
	Status           string    `json:"status"`
	ResponseDeadline time.Time `json:"response_deadline"`
	SLADeadline      time.Time `json:"sla_deadline"`
}

// ComplaintTrackResponse is the public view of a complaint.
type ComplaintTrackResponse struct {
	ReferenceKey    string                  `json:"reference_key"`
	Title           string                  `json:"title"`
	Status          domain.TicketStatus     `json:"status"`
	EffectiveStatus sla.EffectiveStatus     `json:"effective_status"`
	Priority        domain.TicketPriority   `json:"priority"`
	SLADeadline     time.Time               `json:"sla_deadline"`
	CreatedAt       time.Time               `json:"created_at"`
	Messages        []TicketMessageResponse `json:"messages"`
}

// CreateMessageRequest payload for thread replies.
type CreateMessageRequest struct {
	Body        string                    `json:"body"`
	MessageType *domain.TicketMessageType `json:"message_type,omitempty"`
}
