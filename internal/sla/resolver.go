package sla

import (
	"github.com/simrs-labs/complaint-service/internal/domain"
)

// Default deadline values applied when no configured rule matches a ticket.
const (
	DefaultResponseHours   = 4
	DefaultResolutionHours = 24
)

// Dimensions is the ticket dimension tuple used for rule matching. The three
// ID fields are optional; Priority is mandatory.
type Dimensions struct {
	UnitTypeID    *string
	CategoryID    *string
	PatientTypeID *string
	Priority      domain.TicketPriority
}

// DefaultRule returns the catch-all rule for the given priority. A ticket must
// always receive a deadline, so the absence of a match is not an error.
func DefaultRule(priority domain.TicketPriority) domain.SLARule {
	return domain.SLARule{
		Name:                "default",
		PriorityLevel:       priority,
		ResponseTimeHours:   DefaultResponseHours,
		ResolutionTimeHours: DefaultResolutionHours,
		BusinessHoursOnly:   false,
		IsActive:            true,
	}
}

// Resolve returns the single best-matching active rule for the dimensions, or
// DefaultRule when none match. A rule matches when every dimension it
// constrains equals the ticket's value and its priority level is equal;
// unset dimensions always match. The rule with the most non-nil constraints
// wins; equal specificity breaks lexicographically by rule ID. Pure function.
func Resolve(dims Dimensions, rules []domain.SLARule) domain.SLARule {
	var best *domain.SLARule
	bestSpecificity := -1

	for i := range rules {
		rule := &rules[i]
		if !rule.IsActive || rule.PriorityLevel != dims.Priority {
			continue
		}
		if !dimensionMatches(rule.UnitTypeID, dims.UnitTypeID) ||
			!dimensionMatches(rule.ServiceCategoryID, dims.CategoryID) ||
			!dimensionMatches(rule.PatientTypeID, dims.PatientTypeID) {
			continue
		}

		spec := specificity(rule)
		if spec < bestSpecificity {
			continue
		}
		if spec == bestSpecificity && best != nil && rule.ID >= best.ID {
			continue
		}
		best = rule
		bestSpecificity = spec
	}

	if best == nil {
		return DefaultRule(dims.Priority)
	}
	return *best
}

// dimensionMatches applies a single optional constraint. A nil constraint
// matches anything; a set constraint requires the ticket value to be present
// and equal.
func dimensionMatches(constraint, value *string) bool {
	if constraint == nil {
		return true
	}
	if value == nil {
		return false
	}
	return *constraint == *value
}

// specificity counts the non-nil dimension constraints a rule declares.
func specificity(rule *domain.SLARule) int {
	count := 0
	if rule.UnitTypeID != nil {
		count++
	}
	if rule.ServiceCategoryID != nil {
		count++
	}
	if rule.PatientTypeID != nil {
		count++
	}
	return count
}
