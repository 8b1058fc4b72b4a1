package domain

import "time"

// MessageAuthorType indicates who authored a message.
type MessageAuthorType string

const (
	AuthorTypeReporter MessageAuthorType = "reporter"
	AuthorTypeStaff    MessageAuthorType = "staff"
	AuthorTypeSystem   MessageAuthorType = "system"
)

// TicketMessageType differentiates between replies and notes.
type TicketMessageType string

const (
	MessageTypePublicReply  TicketMessageType = "public_reply"
	MessageTypeInternalNote TicketMessageType = "internal_note"
	MessageTypeSystemEvent  TicketMessageType = "system_event"
)

// TicketMessage captures communications in a complaint thread. The first
// public reply by staff stamps the ticket's FirstResponseAt.
type TicketMessage struct {
	ID          string
	TicketID    string
	AuthorType  MessageAuthorType
	AuthorID    *string
	MessageType TicketMessageType
	Body        string
	CreatedAt   time.Time
}
