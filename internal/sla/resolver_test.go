package sla

import (
	"testing"

	"github.com/simrs-labs/complaint-service/internal/domain"
)

func strPtr(s string) *string {
	return &s
}

func TestResolvePrefersMoreSpecificRule(t *testing.T) {
	rules := []domain.SLARule{
		{
			ID:                  "rule-generic",
			Name:                "high catch-all",
			PriorityLevel:       domain.TicketPriorityHigh,
			ResponseTimeHours:   4,
			ResolutionTimeHours: 24,
			IsActive:            true,
		},
		{
			ID:                  "rule-unit",
			Name:                "high inpatient",
			UnitTypeID:          strPtr("unit-type-a"),
			PriorityLevel:       domain.TicketPriorityHigh,
			ResponseTimeHours:   1,
			ResolutionTimeHours: 8,
			IsActive:            true,
		},
	}

	dims := Dimensions{
		UnitTypeID: strPtr("unit-type-a"),
		Priority:   domain.TicketPriorityHigh,
	}

	got := Resolve(dims, rules)
	if got.ID != "rule-unit" {
		t.Errorf("expected rule-unit, got %q", got.ID)
	}
	if got.ResolutionTimeHours != 8 {
		t.Errorf("expected resolution 8h, got %d", got.ResolutionTimeHours)
	}
}

func TestResolveSpecificityOrdering(t *testing.T) {
	unitType := strPtr("ut-1")
	category := strPtr("cat-1")
	patientType := strPtr("pt-1")

	rules := []domain.SLARule{
		{ID: "r0", PriorityLevel: domain.TicketPriorityMedium, ResponseTimeHours: 4, ResolutionTimeHours: 48, IsActive: true},
		{ID: "r1", UnitTypeID: unitType, PriorityLevel: domain.TicketPriorityMedium, ResponseTimeHours: 4, ResolutionTimeHours: 36, IsActive: true},
		{ID: "r2", UnitTypeID: unitType, ServiceCategoryID: category, PriorityLevel: domain.TicketPriorityMedium, ResponseTimeHours: 4, ResolutionTimeHours: 24, IsActive: true},
		{ID: "r3", UnitTypeID: unitType, ServiceCategoryID: category, PatientTypeID: patientType, PriorityLevel: domain.TicketPriorityMedium, ResponseTimeHours: 4, ResolutionTimeHours: 12, IsActive: true},
	}

	tests := []struct {
		name string
		dims Dimensions
		want string
	}{
		{
			name: "all three dimensions set picks triple constraint",
			dims: Dimensions{UnitTypeID: unitType, CategoryID: category, PatientTypeID: patientType, Priority: domain.TicketPriorityMedium},
			want: "r3",
		},
		{
			name: "two dimensions set picks double constraint",
			dims: Dimensions{UnitTypeID: unitType, CategoryID: category, Priority: domain.TicketPriorityMedium},
			want: "r2",
		},
		{
			name: "one dimension set picks single constraint",
			dims: Dimensions{UnitTypeID: unitType, Priority: domain.TicketPriorityMedium},
			want: "r1",
		},
		{
			name: "no dimensions set falls through to catch-all",
			dims: Dimensions{Priority: domain.TicketPriorityMedium},
			want: "r0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.dims, rules)
			if got.ID != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got.ID)
			}
		})
	}
}

func TestResolvePriorityIsMandatoryEquality(t *testing.T) {
	rules := []domain.SLARule{
		{ID: "r-high", PriorityLevel: domain.TicketPriorityHigh, ResponseTimeHours: 1, ResolutionTimeHours: 8, IsActive: true},
	}

	got := Resolve(Dimensions{Priority: domain.TicketPriorityLow}, rules)
	if got.ID != "" || got.Name != "default" {
		t.Errorf("priority mismatch must fall back to default, got %q", got.ID)
	}
}

func TestResolveSkipsInactiveRules(t *testing.T) {
	rules := []domain.SLARule{
		{ID: "r-inactive", PriorityLevel: domain.TicketPriorityHigh, ResponseTimeHours: 1, ResolutionTimeHours: 4, IsActive: false},
	}

	got := Resolve(Dimensions{Priority: domain.TicketPriorityHigh}, rules)
	if got.Name != "default" {
		t.Errorf("inactive rules must never match, got %q", got.ID)
	}
}

func TestResolveRuleConstraintUnmetByNilDimension(t *testing.T) {
	rules := []domain.SLARule{
		{ID: "r-unit", UnitTypeID: strPtr("ut-1"), PriorityLevel: domain.TicketPriorityHigh, ResponseTimeHours: 1, ResolutionTimeHours: 4, IsActive: true},
	}

	// Ticket with no unit type cannot satisfy a rule that constrains it.
	got := Resolve(Dimensions{Priority: domain.TicketPriorityHigh}, rules)
	if got.Name != "default" {
		t.Errorf("expected default fallback, got %q", got.ID)
	}
}

func TestResolveDefaultFallbackValues(t *testing.T) {
	got := Resolve(Dimensions{Priority: domain.TicketPriorityCritical}, nil)
	if got.ResponseTimeHours != 4 {
		t.Errorf("expected default response 4h, got %d", got.ResponseTimeHours)
	}
	if got.ResolutionTimeHours != 24 {
		t.Errorf("expected default resolution 24h, got %d", got.ResolutionTimeHours)
	}
	if got.BusinessHoursOnly {
		t.Error("default rule must use wall clock")
	}
	if got.PriorityLevel != domain.TicketPriorityCritical {
		t.Errorf("default rule must carry the ticket priority, got %q", got.PriorityLevel)
	}
}

func TestResolveEqualSpecificityDeterministicTieBreak(t *testing.T) {
	unitType := strPtr("ut-1")
	category := strPtr("cat-1")

	rules := []domain.SLARule{
		{ID: "rule-b", UnitTypeID: unitType, PriorityLevel: domain.TicketPriorityHigh, ResponseTimeHours: 2, ResolutionTimeHours: 12, IsActive: true},
		{ID: "rule-a", ServiceCategoryID: category, PriorityLevel: domain.TicketPriorityHigh, ResponseTimeHours: 2, ResolutionTimeHours: 16, IsActive: true},
	}
	dims := Dimensions{UnitTypeID: unitType, CategoryID: category, Priority: domain.TicketPriorityHigh}

	first := Resolve(dims, rules)
	if first.ID != "rule-a" {
		t.Errorf("tie must break by lowest rule ID, got %q", first.ID)
	}

	// Same input, shuffled rule order: same winner every time.
	shuffled := []domain.SLARule{rules[1], rules[0]}
	for i := 0; i < 10; i++ {
		if got := Resolve(dims, shuffled); got.ID != first.ID {
			t.Fatalf("non-deterministic tie-break: got %q then %q", first.ID, got.ID)
		}
	}
}
