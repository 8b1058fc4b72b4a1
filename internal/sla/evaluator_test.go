package sla

import (
	"testing"
	"time"

	"github.com/simrs-labs/complaint-service/internal/domain"
)

func timePtr(t time.Time) *time.Time {
	return &t
}

func intPtr(v int) *int {
	return &v
}

func TestComputeDeadlinesAdditivity(t *testing.T) {
	createdAt := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rule := domain.SLARule{
		PriorityLevel:       domain.TicketPriorityMedium,
		ResponseTimeHours:   4,
		ResolutionTimeHours: 24,
	}

	got, err := ComputeDeadlines(createdAt, rule, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := time.Date(2025, 1, 1, 4, 0, 0, 0, time.UTC); !got.Response.Equal(want) {
		t.Errorf("response deadline: expected %v, got %v", want, got.Response)
	}
	if want := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC); !got.Resolution.Equal(want) {
		t.Errorf("resolution deadline: expected %v, got %v", want, got.Resolution)
	}
	if got.Escalation != nil {
		t.Error("escalation deadline must be absent when the rule has no escalation budget")
	}
}

func TestComputeDeadlinesTimezoneIndependent(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*3600)
	createdUTC := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	createdWIB := createdUTC.In(jakarta)
	rule := domain.SLARule{ResponseTimeHours: 4, ResolutionTimeHours: 24}

	fromUTC, err := ComputeDeadlines(createdUTC, rule, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fromWIB, err := ComputeDeadlines(createdWIB, rule, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !fromUTC.Resolution.Equal(fromWIB.Resolution) {
		t.Errorf("deadline must be the same instant regardless of zone: %v vs %v",
			fromUTC.Resolution, fromWIB.Resolution)
	}
}

func TestComputeDeadlinesEscalation(t *testing.T) {
	createdAt := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rule := domain.SLARule{
		ResponseTimeHours:   2,
		ResolutionTimeHours: 24,
		EscalationTimeHours: intPtr(12),
	}

	got, err := ComputeDeadlines(createdAt, rule, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Escalation == nil {
		t.Fatal("expected escalation deadline")
	}
	if want := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC); !got.Escalation.Equal(want) {
		t.Errorf("escalation deadline: expected %v, got %v", want, *got.Escalation)
	}
}

func TestComputeDeadlinesValidation(t *testing.T) {
	createdAt := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		createdAt time.Time
		rule      domain.SLARule
	}{
		{"zero created_at", time.Time{}, domain.SLARule{ResponseTimeHours: 4, ResolutionTimeHours: 24}},
		{"zero resolution hours", createdAt, domain.SLARule{ResponseTimeHours: 4}},
		{"negative response hours", createdAt, domain.SLARule{ResponseTimeHours: -1, ResolutionTimeHours: 24}},
		{"negative escalation hours", createdAt, domain.SLARule{ResponseTimeHours: 4, ResolutionTimeHours: 24, EscalationTimeHours: intPtr(-2)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ComputeDeadlines(tt.createdAt, tt.rule, nil); !IsValidationError(err) {
				t.Errorf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestEvaluateBreach(t *testing.T) {
	createdAt := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	deadline := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)

	baseTicket := domain.Ticket{
		ID:          "t-1",
		Status:      domain.TicketStatusOpen,
		Priority:    domain.TicketPriorityMedium,
		SLADeadline: deadline,
		CreatedAt:   createdAt,
	}

	tests := []struct {
		name   string
		now    time.Time
		mutate func(*domain.Ticket)
		want   EffectiveStatus
	}{
		{
			name: "open before deadline keeps raw status",
			now:  deadline.Add(-time.Hour),
			want: EffectiveStatus(domain.TicketStatusOpen),
		},
		{
			name: "open exactly at deadline keeps raw status",
			now:  deadline,
			want: EffectiveStatus(domain.TicketStatusOpen),
		},
		{
			name: "open past deadline is over_sla",
			now:  deadline.Add(time.Hour),
			want: StatusOverSLA,
		},
		{
			name:   "in_progress past deadline is over_sla",
			now:    deadline.Add(time.Minute),
			mutate: func(tk *domain.Ticket) { tk.Status = domain.TicketStatusInProgress },
			want:   StatusOverSLA,
		},
		{
			name:   "escalated past deadline is over_sla",
			now:    deadline.Add(time.Minute),
			mutate: func(tk *domain.Ticket) { tk.Status = domain.TicketStatusEscalated },
			want:   StatusOverSLA,
		},
		{
			name: "resolved before deadline stays resolved",
			now:  deadline.Add(48 * time.Hour),
			mutate: func(tk *domain.Ticket) {
				tk.Status = domain.TicketStatusResolved
				tk.ResolvedAt = timePtr(deadline.Add(-4 * time.Hour))
			},
			want: EffectiveStatus(domain.TicketStatusResolved),
		},
		{
			name: "resolved after deadline is breached_but_resolved",
			now:  deadline.Add(48 * time.Hour),
			mutate: func(tk *domain.Ticket) {
				tk.Status = domain.TicketStatusResolved
				tk.ResolvedAt = timePtr(deadline.Add(2 * time.Hour))
			},
			want: StatusBreachedButResolved,
		},
		{
			name: "closed past deadline passes through unchanged",
			now:  deadline.Add(time.Hour),
			mutate: func(tk *domain.Ticket) {
				tk.Status = domain.TicketStatusClosed
				tk.ClosedAt = timePtr(deadline.Add(time.Hour))
			},
			want: EffectiveStatus(domain.TicketStatusClosed),
		},
		{
			name:   "cancelled past deadline passes through unchanged",
			now:    deadline.Add(time.Hour),
			mutate: func(tk *domain.Ticket) { tk.Status = domain.TicketStatusCancelled },
			want:   EffectiveStatus(domain.TicketStatusCancelled),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ticket := baseTicket
			if tt.mutate != nil {
				tt.mutate(&ticket)
			}
			got, err := EvaluateBreach(tt.now, ticket)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestEvaluateBreachMonotonicity(t *testing.T) {
	deadline := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	ticket := domain.Ticket{
		Status:      domain.TicketStatusOpen,
		SLADeadline: deadline,
		CreatedAt:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	// Sweep across the deadline: exactly two outcomes, split at the deadline.
	for offset := -6 * time.Hour; offset <= 6*time.Hour; offset += 30 * time.Minute {
		now := deadline.Add(offset)
		got, err := EvaluateBreach(now, ticket)
		if err != nil {
			t.Fatalf("unexpected error at offset %v: %v", offset, err)
		}
		if now.After(deadline) {
			if got != StatusOverSLA {
				t.Errorf("offset %v: expected over_sla, got %q", offset, got)
			}
		} else if got != EffectiveStatus(domain.TicketStatusOpen) {
			t.Errorf("offset %v: expected open, got %q", offset, got)
		}
	}
}

func TestEvaluateBreachValidation(t *testing.T) {
	now := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		ticket domain.Ticket
	}{
		{"missing created_at", domain.Ticket{Status: domain.TicketStatusOpen, SLADeadline: now}},
		{"missing sla_deadline", domain.Ticket{Status: domain.TicketStatusOpen, CreatedAt: now}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := EvaluateBreach(now, tt.ticket); !IsValidationError(err) {
				t.Errorf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestAggregateByEffectiveStatus(t *testing.T) {
	createdAt := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	deadline := createdAt.Add(24 * time.Hour)
	now := deadline.Add(time.Hour)

	tickets := []domain.Ticket{
		{ID: "t-1", Status: domain.TicketStatusOpen, SLADeadline: deadline, CreatedAt: createdAt},
		{ID: "t-2", Status: domain.TicketStatusInProgress, SLADeadline: deadline, CreatedAt: createdAt},
		{ID: "t-3", Status: domain.TicketStatusOpen, SLADeadline: deadline.Add(4 * time.Hour), CreatedAt: createdAt},
		{ID: "t-4", Status: domain.TicketStatusResolved, ResolvedAt: timePtr(deadline.Add(time.Hour)), SLADeadline: deadline, CreatedAt: createdAt},
		{ID: "t-5", Status: domain.TicketStatusResolved, ResolvedAt: timePtr(deadline.Add(-time.Hour)), SLADeadline: deadline, CreatedAt: createdAt},
		{ID: "t-6", Status: domain.TicketStatusClosed, SLADeadline: deadline, CreatedAt: createdAt},
	}

	counts, err := AggregateByEffectiveStatus(now, tickets)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[EffectiveStatus]int{
		StatusOverSLA:                              2,
		EffectiveStatus(domain.TicketStatusOpen):   1,
		StatusBreachedButResolved:                  1,
		EffectiveStatus(domain.TicketStatusResolved): 1,
		EffectiveStatus(domain.TicketStatusClosed):   1,
	}
	if len(counts) != len(want) {
		t.Fatalf("expected %d buckets, got %d: %v", len(want), len(counts), counts)
	}
	for status, n := range want {
		if counts[status] != n {
			t.Errorf("bucket %q: expected %d, got %d", status, n, counts[status])
		}
	}
}

func TestAggregateOrderIndependentAndNonMutating(t *testing.T) {
	createdAt := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	deadline := createdAt.Add(24 * time.Hour)
	now := deadline.Add(time.Hour)

	tickets := []domain.Ticket{
		{ID: "t-1", Status: domain.TicketStatusOpen, SLADeadline: deadline, CreatedAt: createdAt},
		{ID: "t-2", Status: domain.TicketStatusInProgress, SLADeadline: deadline.Add(2 * time.Hour), CreatedAt: createdAt},
		{ID: "t-3", Status: domain.TicketStatusCancelled, SLADeadline: deadline, CreatedAt: createdAt},
	}
	reversed := []domain.Ticket{tickets[2], tickets[1], tickets[0]}

	forward, err := AggregateByEffectiveStatus(now, tickets)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	backward, err := AggregateByEffectiveStatus(now, reversed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(forward) != len(backward) {
		t.Fatalf("bucket count differs: %v vs %v", forward, backward)
	}
	for status, n := range forward {
		if backward[status] != n {
			t.Errorf("bucket %q: %d vs %d", status, n, backward[status])
		}
	}

	if tickets[0].Status != domain.TicketStatusOpen || tickets[2].Status != domain.TicketStatusCancelled {
		t.Error("aggregation must not mutate input tickets")
	}
}
