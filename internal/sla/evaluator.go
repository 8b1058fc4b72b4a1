package sla

import (
	"time"

	"github.com/simrs-labs/complaint-service/internal/domain"
)

// EffectiveStatus is the display-time status overlay. It is either a raw
// ticket status, over_sla, or breached_but_resolved. Never persisted.
type EffectiveStatus string

const (
	StatusOverSLA             EffectiveStatus = "over_sla"
	StatusBreachedButResolved EffectiveStatus = "breached_but_resolved"
)

// Deadlines holds the timestamps derived from a ticket's SLA rule.
type Deadlines struct {
	Response   time.Time
	Resolution time.Time
	Escalation *time.Time
}

// ComputeDeadlines adds the rule's hour budgets to createdAt using the given
// clock policy. A nil clock means wall-clock arithmetic.
func ComputeDeadlines(createdAt time.Time, rule domain.SLARule, clock ClockPolicy) (Deadlines, error) {
	if createdAt.IsZero() {
		return Deadlines{}, &ValidationError{Field: "created_at", Reason: "missing"}
	}
	if rule.ResponseTimeHours <= 0 {
		return Deadlines{}, &ValidationError{Field: "response_time_hours", Reason: "must be positive"}
	}
	if rule.ResolutionTimeHours <= 0 {
		return Deadlines{}, &ValidationError{Field: "resolution_time_hours", Reason: "must be positive"}
	}
	if clock == nil {
		clock = WallClock{}
	}

	deadlines := Deadlines{
		Response:   clock.Add(createdAt, rule.ResponseTimeHours),
		Resolution: clock.Add(createdAt, rule.ResolutionTimeHours),
	}
	if rule.EscalationTimeHours != nil {
		if *rule.EscalationTimeHours <= 0 {
			return Deadlines{}, &ValidationError{Field: "escalation_time_hours", Reason: "must be positive"}
		}
		escalation := clock.Add(createdAt, *rule.EscalationTimeHours)
		deadlines.Escalation = &escalation
	}
	return deadlines, nil
}

// EvaluateBreach derives the effective status of a ticket at the given
// instant. Terminal tickets keep their raw status except when resolved after
// the deadline; non-terminal tickets past the resolution deadline report
// over_sla. The stored status field is never modified.
func EvaluateBreach(now time.Time, ticket domain.Ticket) (EffectiveStatus, error) {
	if ticket.CreatedAt.IsZero() {
		return "", &ValidationError{Field: "created_at", Reason: "missing"}
	}
	if ticket.SLADeadline.IsZero() {
		return "", &ValidationError{Field: "sla_deadline", Reason: "missing"}
	}

	if ticket.Status.IsTerminal() {
		if ticket.Status == domain.TicketStatusResolved &&
			ticket.ResolvedAt != nil && ticket.ResolvedAt.After(ticket.SLADeadline) {
			return StatusBreachedButResolved, nil
		}
		return EffectiveStatus(ticket.Status), nil
	}

	if now.After(ticket.SLADeadline) {
		return StatusOverSLA, nil
	}
	return EffectiveStatus(ticket.Status), nil
}

// AggregateByEffectiveStatus counts tickets by effective status at the given
// instant. Linear in ticket count and does not mutate the input.
func AggregateByEffectiveStatus(now time.Time, tickets []domain.Ticket) (map[EffectiveStatus]int, error) {
	counts := make(map[EffectiveStatus]int)
	for i := range tickets {
		status, err := EvaluateBreach(now, tickets[i])
		if err != nil {
			return nil, err
		}
		counts[status]++
	}
	return counts, nil
}
