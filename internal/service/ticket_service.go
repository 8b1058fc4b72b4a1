package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/simrs-labs/complaint-service/internal/domain"
	"github.com/simrs-labs/complaint-service/internal/events"
	"github.com/simrs-labs/complaint-service/internal/observability"
	"github.com/simrs-labs/complaint-service/internal/repository"
	"github.com/simrs-labs/complaint-service/internal/sla"
	apperrors "github.com/simrs-labs/complaint-service/pkg/util/errorutil"
)

// TicketService coordinates complaint workflows.
type TicketService struct {
	tickets      repository.TicketRepository
	messages     repository.TicketMessageRepository
	history      repository.TicketHistoryRepository
	units        repository.UnitRepository
	categories   repository.CategoryRepository
	patientTypes repository.PatientTypeRepository
	staff        repository.StaffRepository
	rules        repository.SLARuleRepository
	calendar     *sla.Calendar
	dispatcher   events.Dispatcher
	metrics      *observability.Metrics
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo      repository.TicketRepository
	MessageRepo     repository.TicketMessageRepository
	HistoryRepo     repository.TicketHistoryRepository
	UnitRepo        repository.UnitRepository
	CategoryRepo    repository.CategoryRepository
	PatientTypeRepo repository.PatientTypeRepository
	StaffRepo       repository.StaffRepository
	SLARuleRepo     repository.SLARuleRepository
	Calendar        *sla.Calendar
	Dispatcher      events.Dispatcher
	Metrics         *observability.Metrics
}

// ComplaintInput describes the public complaint submission payload.
type ComplaintInput struct {
	ReporterName    string
	ReporterContact string
	PatientTypeID   *string
	UnitID          string
	CategoryID      string
	Title           string
	Description     string
	Priority        domain.TicketPriority
}

// TicketStaffFilter describes staff listing filters.
type TicketStaffFilter struct {
	UnitID        *string
	CategoryID    *string
	PatientTypeID *string
	AssigneeID    *string
	Statuses      []domain.TicketStatus
	Priorities    []domain.TicketPriority
	SearchTerm    *string
	CreatedFrom   *time.Time
	CreatedTo     *time.Time
	Limit         int
	Offset        int
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:      deps.TicketRepo,
		messages:     deps.MessageRepo,
		history:      deps.HistoryRepo,
		units:        deps.UnitRepo,
		categories:   deps.CategoryRepo,
		patientTypes: deps.PatientTypeRepo,
		staff:        deps.StaffRepo,
		rules:        deps.SLARuleRepo,
		calendar:     deps.Calendar,
		dispatcher:   deps.Dispatcher,
		metrics:      deps.Metrics,
	}
}

// CreateComplaint registers a new complaint, resolves the applicable SLA rule
// and stamps all deadlines from the creation instant.
func (s *TicketService) CreateComplaint(ctx context.Context, input ComplaintInput) (*domain.Ticket, error) {
	if input.Priority == "" {
		input.Priority = domain.TicketPriorityMedium
	}
	if !domain.KnownPriority(input.Priority) {
		return nil, apperrors.NewValidationError("unknown priority", map[string]any{"priority": input.Priority})
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, apperrors.NewValidationError("title is required", nil)
	}
	if strings.TrimSpace(input.ReporterName) == "" {
		return nil, apperrors.NewValidationError("reporter_name is required", nil)
	}

	unit, err := s.units.GetByID(ctx, input.UnitID)
	if err != nil {
		return nil, err
	}
	if !unit.IsActive {
		return nil, apperrors.NewValidationError("unit inactive", map[string]any{"unit_id": unit.ID})
	}
	category, err := s.categories.GetByID(ctx, input.CategoryID)
	if err != nil {
		return nil, err
	}
	if !category.IsActive {
		return nil, apperrors.NewValidationError("category inactive", map[string]any{"category_id": category.ID})
	}
	if input.PatientTypeID != nil {
		patientType, err := s.patientTypes.GetByID(ctx, *input.PatientTypeID)
		if err != nil {
			return nil, err
		}
		if !patientType.IsActive {
			return nil, apperrors.NewValidationError("patient type inactive", map[string]any{"patient_type_id": patientType.ID})
		}
	}

	now := time.Now()
	rule, deadlines, err := s.resolveDeadlines(ctx, unit.UnitTypeID, input.CategoryID, input.PatientTypeID, input.Priority, now)
	if err != nil {
		return nil, err
	}

	ticket := &domain.Ticket{
		ReferenceKey:       generateReferenceKey(),
		ReporterName:       strings.TrimSpace(input.ReporterName),
		ReporterContact:    strings.TrimSpace(input.ReporterContact),
		PatientTypeID:      input.PatientTypeID,
		UnitID:             input.UnitID,
		CategoryID:         input.CategoryID,
		Title:              strings.TrimSpace(input.Title),
		Description:        strings.TrimSpace(input.Description),
		Status:             domain.TicketStatusOpen,
		Priority:           input.Priority,
		ResponseDeadline:   deadlines.Response,
		SLADeadline:        deadlines.Resolution,
		EscalationDeadline: deadlines.Escalation,
	}
	if rule.ID != "" {
		ticket.SLARuleID = &rule.ID
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}
	s.metrics.RecordTicketCreated(string(ticket.Priority))
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Actor:    events.Actor{Type: domain.AuthorTypeReporter},
		Payload: events.TicketCreatedPayload{
			ReferenceKey: ticket.ReferenceKey,
			UnitID:       ticket.UnitID,
			CategoryID:   ticket.CategoryID,
			Priority:     ticket.Priority,
			Subject:      ticket.Title,
			SLADeadline:  ticket.SLADeadline,
		},
	})
	return ticket, nil
}

// GetByReferenceKey returns a ticket with its public thread and the derived
// breach label. Internal notes are never exposed on this path.
func (s *TicketService) GetByReferenceKey(ctx context.Context, key string) (*domain.Ticket, []domain.TicketMessage, sla.EffectiveStatus, error) {
	ticket, err := s.tickets.GetByReferenceKey(ctx, strings.TrimSpace(key))
	if err != nil {
		return nil, nil, "", err
	}
	msgs, err := s.messages.ListByTicket(ctx, ticket.ID)
	if err != nil {
		return nil, nil, "", err
	}
	public := make([]domain.TicketMessage, 0, len(msgs))
	for _, msg := range msgs {
		if msg.MessageType == domain.MessageTypeInternalNote {
			continue
		}
		public = append(public, msg)
	}
	effective, err := sla.EvaluateBreach(time.Now(), *ticket)
	if err != nil {
		return nil, nil, "", err
	}
	return ticket, public, effective, nil
}

// AddReporterMessage appends a public follow-up from the original reporter,
// addressed by reference key.
func (s *TicketService) AddReporterMessage(ctx context.Context, key, body string) (*domain.TicketMessage, error) {
	ticket, err := s.tickets.GetByReferenceKey(ctx, strings.TrimSpace(key))
	if err != nil {
		return nil, err
	}
	if ticket.Status == domain.TicketStatusClosed || ticket.Status == domain.TicketStatusCancelled {
		return nil, apperrors.NewConflict("complaint is closed", nil)
	}
	msg := &domain.TicketMessage{
		TicketID:    ticket.ID,
		AuthorType:  domain.AuthorTypeReporter,
		MessageType: domain.MessageTypePublicReply,
		Body:        strings.TrimSpace(body),
	}
	if msg.Body == "" {
		return nil, apperrors.NewValidationError("message body is required", nil)
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketMessageAdded,
		TicketID: ticket.ID,
		Actor:    events.Actor{Type: domain.AuthorTypeReporter},
		Payload: events.TicketMessageAddedPayload{
			MessageID:   msg.ID,
			MessageType: msg.MessageType,
			AuthorType:  msg.AuthorType,
			BodyPreview: stringPreview(msg.Body, 120),
		},
	})
	return msg, nil
}

// ListTickets returns tickets visible to the staff member. Agents bound to a
// unit only see that unit's complaints.
func (s *TicketService) ListTickets(ctx context.Context, staff *domain.StaffMember, filter TicketStaffFilter) ([]domain.Ticket, error) {
	repoFilter := repository.TicketFilter{
		UnitID:          filter.UnitID,
		CategoryID:      filter.CategoryID,
		PatientTypeID:   filter.PatientTypeID,
		AssigneeStaffID: filter.AssigneeID,
		Statuses:        filter.Statuses,
		Priorities:      filter.Priorities,
		SearchTerm:      filter.SearchTerm,
		CreatedFrom:     filter.CreatedFrom,
		CreatedTo:       filter.CreatedTo,
		Limit:           filter.Limit,
		Offset:          filter.Offset,
	}
	s.applyStaffScope(&repoFilter, staff)
	return s.tickets.ListWithFilter(ctx, repoFilter)
}

// GetTicket fetches a ticket with full thread for staff, including the
// derived breach label.
func (s *TicketService) GetTicket(ctx context.Context, staff *domain.StaffMember, ticketID string) (*domain.Ticket, []domain.TicketMessage, sla.EffectiveStatus, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, nil, "", err
	}
	if !s.staffCanAccessTicket(staff, ticket) {
		return nil, nil, "", apperrors.NewForbidden("access denied")
	}
	msgs, err := s.messages.ListByTicket(ctx, ticket.ID)
	if err != nil {
		return nil, nil, "", err
	}
	effective, err := sla.EvaluateBreach(time.Now(), *ticket)
	if err != nil {
		return nil, nil, "", err
	}
	return ticket, msgs, effective, nil
}

// AddStaffMessage appends a reply or internal note. The first public staff
// reply stamps the ticket's first response time.
func (s *TicketService) AddStaffMessage(ctx context.Context, staff *domain.StaffMember, ticketID string, messageType domain.TicketMessageType, body string) (*domain.TicketMessage, error) {
	if staff == nil {
		return nil, apperrors.NewForbidden("staff context required")
	}
	if messageType != domain.MessageTypePublicReply && messageType != domain.MessageTypeInternalNote {
		return nil, apperrors.NewValidationError("invalid message type", map[string]any{"message_type": messageType})
	}
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !s.staffCanAccessTicket(staff, ticket) {
		return nil, apperrors.NewForbidden("access denied")
	}

	msg := &domain.TicketMessage{
		TicketID:    ticket.ID,
		AuthorType:  domain.AuthorTypeStaff,
		AuthorID:    &staff.ID,
		MessageType: messageType,
		Body:        strings.TrimSpace(body),
	}
	if msg.Body == "" {
		return nil, apperrors.NewValidationError("message body is required", nil)
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, err
	}

	if messageType == domain.MessageTypePublicReply && ticket.FirstResponseAt == nil {
		now := time.Now()
		ticket.FirstResponseAt = &now
		if err := s.tickets.Update(ctx, ticket); err != nil {
			return nil, err
		}
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketMessageAdded,
		TicketID: ticket.ID,
		Actor:    events.StaffActor(staff.ID),
		Payload: events.TicketMessageAddedPayload{
			MessageID:   msg.ID,
			MessageType: msg.MessageType,
			AuthorType:  msg.AuthorType,
			AuthorID:    msg.AuthorID,
			BodyPreview: stringPreview(msg.Body, 120),
		},
	})
	return msg, nil
}

// UpdateStatus moves a ticket through its lifecycle.
func (s *TicketService) UpdateStatus(ctx context.Context, staff *domain.StaffMember, ticketID string, newStatus domain.TicketStatus, comment string) (*domain.Ticket, error) {
	if staff == nil {
		return nil, apperrors.NewForbidden("staff context required")
	}
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !s.staffCanAccessTicket(staff, ticket) {
		return nil, apperrors.NewForbidden("access denied")
	}
	if !isValidTransition(ticket.Status, newStatus) {
		return nil, apperrors.NewConflict("invalid status transition", map[string]any{
			"from": ticket.Status,
			"to":   newStatus,
		})
	}

	now := time.Now()
	oldStatus := ticket.Status
	ticket.Status = newStatus
	switch newStatus {
	case domain.TicketStatusResolved:
		ticket.ResolvedAt = &now
	case domain.TicketStatusClosed:
		ticket.ClosedAt = &now
	case domain.TicketStatusInProgress, domain.TicketStatusOpen:
		ticket.ResolvedAt = nil
		ticket.ClosedAt = nil
	}

	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}
	if err := s.recordStatusChange(ctx, domain.AuthorTypeStaff, &staff.ID, ticket.ID, oldStatus, newStatus, comment); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: ticket.ID,
		Actor:    events.StaffActor(staff.ID),
		Payload: events.TicketStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: newStatus,
			Comment:   comment,
		},
	})
	return ticket, nil
}

// UpdatePriority changes priority and re-resolves the SLA rule. Deadlines are
// recomputed from the original creation time, not from now.
func (s *TicketService) UpdatePriority(ctx context.Context, staff *domain.StaffMember, ticketID string, newPriority domain.TicketPriority) (*domain.Ticket, error) {
	if staff == nil {
		return nil, apperrors.NewForbidden("staff context required")
	}
	if !domain.KnownPriority(newPriority) {
		return nil, apperrors.NewValidationError("unknown priority", map[string]any{"priority": newPriority})
	}
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !s.staffCanAccessTicket(staff, ticket) {
		return nil, apperrors.NewForbidden("access denied")
	}
	if ticket.Status.IsTerminal() {
		return nil, apperrors.NewConflict("ticket is terminal", map[string]any{"status": ticket.Status})
	}
	if ticket.Priority == newPriority {
		return ticket, nil
	}

	unit, err := s.units.GetByID(ctx, ticket.UnitID)
	if err != nil {
		return nil, err
	}
	rule, deadlines, err := s.resolveDeadlines(ctx, unit.UnitTypeID, ticket.CategoryID, ticket.PatientTypeID, newPriority, ticket.CreatedAt)
	if err != nil {
		return nil, err
	}

	oldPriority := ticket.Priority
	oldDeadline := ticket.SLADeadline
	ticket.Priority = newPriority
	ticket.ResponseDeadline = deadlines.Response
	ticket.SLADeadline = deadlines.Resolution
	ticket.EscalationDeadline = deadlines.Escalation
	ticket.SLARuleID = nil
	if rule.ID != "" {
		ticket.SLARuleID = &rule.ID
	}

	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}
	if err := s.recordPriorityChange(ctx, &staff.ID, ticket.ID, oldPriority, newPriority, oldDeadline, ticket.SLADeadline); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketPriorityChanged,
		TicketID: ticket.ID,
		Actor:    events.StaffActor(staff.ID),
		Payload: events.TicketPriorityChangedPayload{
			OldPriority: oldPriority,
			NewPriority: newPriority,
			SLADeadline: ticket.SLADeadline,
		},
	})
	return ticket, nil
}

// AssignTicket sets or clears the assignee.
func (s *TicketService) AssignTicket(ctx context.Context, staff *domain.StaffMember, ticketID string, assigneeID *string) (*domain.Ticket, error) {
	if staff == nil {
		return nil, apperrors.NewForbidden("staff context required")
	}
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !s.staffCanAccessTicket(staff, ticket) {
		return nil, apperrors.NewForbidden("access denied")
	}
	if ticket.Status.IsTerminal() {
		return nil, apperrors.NewConflict("ticket is terminal", map[string]any{"status": ticket.Status})
	}
	if assigneeID != nil {
		assignee, err := s.staff.GetByID(ctx, *assigneeID)
		if err != nil {
			return nil, err
		}
		if !assignee.Active {
			return nil, apperrors.NewValidationError("assignee inactive", map[string]any{"staff_id": assignee.ID})
		}
	}

	oldAssignee := ticket.AssigneeStaffID
	ticket.AssigneeStaffID = assigneeID
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}
	if s.history != nil {
		entry := &domain.TicketHistory{
			TicketID:      ticket.ID,
			ChangedByType: domain.AuthorTypeStaff,
			ChangedByID:   &staff.ID,
			ChangeType:    domain.ChangeTypeAssignee,
			OldValue:      map[string]any{"assignee_staff_id": oldAssignee},
			NewValue:      map[string]any{"assignee_staff_id": assigneeID},
		}
		if err := s.history.Create(ctx, entry); err != nil {
			return nil, err
		}
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketAssigned,
		TicketID: ticket.ID,
		Actor:    events.StaffActor(staff.ID),
		Payload:  events.TicketAssignedPayload{AssigneeStaffID: assigneeID},
	})
	return ticket, nil
}

// MarkEscalated is invoked by the breach scanner when a ticket passes its
// escalation deadline without reaching a terminal state.
func (s *TicketService) MarkEscalated(ctx context.Context, ticket *domain.Ticket) error {
	if ticket.Status != domain.TicketStatusOpen && ticket.Status != domain.TicketStatusInProgress {
		return nil
	}
	oldStatus := ticket.Status
	ticket.Status = domain.TicketStatusEscalated
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return err
	}
	if err := s.recordStatusChange(ctx, domain.AuthorTypeSystem, nil, ticket.ID, oldStatus, ticket.Status, "escalation deadline passed"); err != nil {
		return err
	}
	s.metrics.RecordEscalation()
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketEscalated,
		TicketID: ticket.ID,
		Actor:    events.SystemActor(),
		Payload: events.TicketEscalatedPayload{
			ReferenceKey:       ticket.ReferenceKey,
			EscalationDeadline: ticket.EscalationDeadline,
			SLADeadline:        ticket.SLADeadline,
		},
	})
	return nil
}

// ListHistory returns audit entries for staff.
func (s *TicketService) ListHistory(ctx context.Context, staff *domain.StaffMember, ticketID string) ([]domain.TicketHistory, error) {
	if staff == nil {
		return nil, apperrors.NewForbidden("staff context required")
	}
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !s.staffCanAccessTicket(staff, ticket) {
		return nil, apperrors.NewForbidden("access denied")
	}
	return s.history.ListByTicket(ctx, ticket.ID)
}

func (s *TicketService) resolveDeadlines(ctx context.Context, unitTypeID, categoryID string, patientTypeID *string, priority domain.TicketPriority, from time.Time) (domain.SLARule, sla.Deadlines, error) {
	active, err := s.rules.ListActive(ctx)
	if err != nil {
		return domain.SLARule{}, sla.Deadlines{}, err
	}
	rule := sla.Resolve(sla.Dimensions{
		UnitTypeID:    &unitTypeID,
		CategoryID:    &categoryID,
		PatientTypeID: patientTypeID,
		Priority:      priority,
	}, active)
	clock := sla.PolicyFor(rule, s.calendar)
	deadlines, err := sla.ComputeDeadlines(from, rule, clock)
	if err != nil {
		return domain.SLARule{}, sla.Deadlines{}, err
	}
	return rule, deadlines, nil
}

func (s *TicketService) applyStaffScope(filter *repository.TicketFilter, staff *domain.StaffMember) {
	if staff == nil || staff.Role == domain.StaffRoleAdmin {
		return
	}
	if staff.UnitID != nil {
		filter.UnitID = staff.UnitID
	}
}

func (s *TicketService) staffCanAccessTicket(staff *domain.StaffMember, ticket *domain.Ticket) bool {
	if staff == nil {
		return false
	}
	if staff.Role == domain.StaffRoleAdmin {
		return true
	}
	if staff.UnitID == nil {
		return true
	}
	return *staff.UnitID == ticket.UnitID
}

func generateReferenceKey() string {
	return "CMP-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func stringPreview(body string, max int) string {
	body = strings.TrimSpace(body)
	if len(body) <= max {
		return body
	}
	if max <= 3 {
		return body[:max]
	}
	return body[:max-3] + "..."
}

var allowedTransitions = map[domain.TicketStatus][]domain.TicketStatus{
	domain.TicketStatusOpen:       {domain.TicketStatusInProgress, domain.TicketStatusResolved, domain.TicketStatusCancelled},
	domain.TicketStatusInProgress: {domain.TicketStatusOpen, domain.TicketStatusResolved, domain.TicketStatusCancelled},
	domain.TicketStatusEscalated:  {domain.TicketStatusInProgress, domain.TicketStatusResolved, domain.TicketStatusCancelled},
	domain.TicketStatusResolved:   {domain.TicketStatusClosed, domain.TicketStatusInProgress},
	domain.TicketStatusClosed:     {},
	domain.TicketStatusCancelled:  {},
}

func isValidTransition(current, next domain.TicketStatus) bool {
	for _, candidate := range allowedTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}

func (s *TicketService) recordStatusChange(ctx context.Context, actorType domain.MessageAuthorType, actorID *string, ticketID string, oldStatus, newStatus domain.TicketStatus, comment string) error {
	if s.history == nil {
		return nil
	}
	entry := &domain.TicketHistory{
		TicketID:      ticketID,
		ChangedByType: actorType,
		ChangedByID:   actorID,
		ChangeType:    domain.ChangeTypeStatus,
		OldValue:      map[string]any{"status": oldStatus},
		NewValue:      map[string]any{"status": newStatus, "comment": comment},
	}
	return s.history.Create(ctx, entry)
}

func (s *TicketService) recordPriorityChange(ctx context.Context, actorID *string, ticketID string, oldPriority, newPriority domain.TicketPriority, oldDeadline, newDeadline time.Time) error {
	if s.history == nil {
		return nil
	}
	entry := &domain.TicketHistory{
		TicketID:      ticketID,
		ChangedByType: domain.AuthorTypeStaff,
		ChangedByID:   actorID,
		ChangeType:    domain.ChangeTypePriority,
		OldValue:      map[string]any{"priority": oldPriority, "sla_deadline": oldDeadline},
		NewValue:      map[string]any{"priority": newPriority, "sla_deadline": newDeadline},
	}
	return s.history.Create(ctx, entry)
}
