package service

import (
	"context"
	"strings"
	"time"

	"github.com/simrs-labs/complaint-service/internal/domain"
	"github.com/simrs-labs/complaint-service/internal/repository"
	"github.com/simrs-labs/complaint-service/internal/sla"
	apperrors "github.com/simrs-labs/complaint-service/pkg/util/errorutil"
)

// SLAService manages SLA rule configuration.
type SLAService struct {
	rules    repository.SLARuleRepository
	tickets  repository.TicketRepository
	units    repository.UnitRepository
	calendar *sla.Calendar
}

// NewSLAService constructs the service.
func NewSLAService(rules repository.SLARuleRepository, tickets repository.TicketRepository, units repository.UnitRepository, calendar *sla.Calendar) *SLAService {
	return &SLAService{rules: rules, tickets: tickets, units: units, calendar: calendar}
}

// SLARuleInput describes rule create/update payloads.
type SLARuleInput struct {
	Name                string
	UnitTypeID          *string
	ServiceCategoryID   *string
	PatientTypeID       *string
	PriorityLevel       domain.TicketPriority
	ResponseTimeHours   int
	ResolutionTimeHours int
	EscalationTimeHours *int
	BusinessHoursOnly   bool
	IsActive            bool
}

// CreateRule validates and persists a new SLA rule.
func (s *SLAService) CreateRule(ctx context.Context, input SLARuleInput) (*domain.SLARule, error) {
	if err := validateRuleInput(input); err != nil {
		return nil, err
	}
	rule := &domain.SLARule{
		Name:                strings.TrimSpace(input.Name),
		UnitTypeID:          input.UnitTypeID,
		ServiceCategoryID:   input.ServiceCategoryID,
		PatientTypeID:       input.PatientTypeID,
		PriorityLevel:       input.PriorityLevel,
		ResponseTimeHours:   input.ResponseTimeHours,
		ResolutionTimeHours: input.ResolutionTimeHours,
		EscalationTimeHours: input.EscalationTimeHours,
		BusinessHoursOnly:   input.BusinessHoursOnly,
		IsActive:            input.IsActive,
	}
	if err := s.rules.Create(ctx, rule); err != nil {
		return nil, err
	}
	return rule, nil
}

// UpdateRule validates and updates an existing rule. Tickets already stamped
// keep their deadlines; only future resolutions see the change.
func (s *SLAService) UpdateRule(ctx context.Context, id string, input SLARuleInput) (*domain.SLARule, error) {
	if err := validateRuleInput(input); err != nil {
		return nil, err
	}
	rule, err := s.rules.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	rule.Name = strings.TrimSpace(input.Name)
	rule.UnitTypeID = input.UnitTypeID
	rule.ServiceCategoryID = input.ServiceCategoryID
	rule.PatientTypeID = input.PatientTypeID
	rule.PriorityLevel = input.PriorityLevel
	rule.ResponseTimeHours = input.ResponseTimeHours
	rule.ResolutionTimeHours = input.ResolutionTimeHours
	rule.EscalationTimeHours = input.EscalationTimeHours
	rule.BusinessHoursOnly = input.BusinessHoursOnly
	rule.IsActive = input.IsActive
	if err := s.rules.Update(ctx, rule); err != nil {
		return nil, err
	}
	return rule, nil
}

// DeleteRule removes a rule permanently.
func (s *SLAService) DeleteRule(ctx context.Context, id string) error {
	return s.rules.Delete(ctx, id)
}

// GetRule fetches a single rule.
func (s *SLAService) GetRule(ctx context.Context, id string) (*domain.SLARule, error) {
	return s.rules.GetByID(ctx, id)
}

// ListRules returns all configured rules.
func (s *SLAService) ListRules(ctx context.Context) ([]domain.SLARule, error) {
	return s.rules.List(ctx)
}

// PreviewResolution reports which rule would match a hypothetical complaint
// and the deadlines it would produce if filed now.
func (s *SLAService) PreviewResolution(ctx context.Context, unitID, categoryID string, patientTypeID *string, priority domain.TicketPriority) (domain.SLARule, sla.Deadlines, error) {
	if !domain.KnownPriority(priority) {
		return domain.SLARule{}, sla.Deadlines{}, apperrors.NewValidationError("unknown priority", map[string]any{"priority": priority})
	}
	unit, err := s.units.GetByID(ctx, unitID)
	if err != nil {
		return domain.SLARule{}, sla.Deadlines{}, err
	}
	active, err := s.rules.ListActive(ctx)
	if err != nil {
		return domain.SLARule{}, sla.Deadlines{}, err
	}
	rule := sla.Resolve(sla.Dimensions{
		UnitTypeID:    &unit.UnitTypeID,
		CategoryID:    &categoryID,
		PatientTypeID: patientTypeID,
		Priority:      priority,
	}, active)
	deadlines, err := sla.ComputeDeadlines(time.Now(), rule, sla.PolicyFor(rule, s.calendar))
	if err != nil {
		return domain.SLARule{}, sla.Deadlines{}, err
	}
	return rule, deadlines, nil
}

// EffectiveStatus derives the breach overlay for a single ticket.
func (s *SLAService) EffectiveStatus(ctx context.Context, ticketID string) (sla.EffectiveStatus, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return "", err
	}
	return sla.EvaluateBreach(time.Now(), *ticket)
}

func validateRuleInput(input SLARuleInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return apperrors.NewValidationError("name is required", nil)
	}
	if !domain.KnownPriority(input.PriorityLevel) {
		return apperrors.NewValidationError("unknown priority", map[string]any{"priority": input.PriorityLevel})
	}
	if input.ResponseTimeHours <= 0 {
		return apperrors.NewValidationError("response_time_hours must be positive", nil)
	}
	if input.ResolutionTimeHours <= 0 {
		return apperrors.NewValidationError("resolution_time_hours must be positive", nil)
	}
	if input.ResponseTimeHours > input.ResolutionTimeHours {
		return apperrors.NewValidationError("response deadline cannot exceed resolution deadline", nil)
	}
	if input.EscalationTimeHours != nil && *input.EscalationTimeHours <= 0 {
		return apperrors.NewValidationError("escalation_time_hours must be positive", nil)
	}
	return nil
}
