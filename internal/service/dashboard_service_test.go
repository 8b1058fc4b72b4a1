package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/simrs-labs/complaint-service/internal/domain"
	"github.com/simrs-labs/complaint-service/internal/sla"
)

func TestDashboardSummaryCounts(t *testing.T) {
	repo := newFakeTicketRepo()
	now := time.Now()
	resolvedLate := now.Add(-time.Hour)
	seed := []domain.Ticket{
		{Status: domain.TicketStatusOpen, Priority: domain.TicketPriorityHigh,
			SLADeadline: now.Add(2 * time.Hour)},
		{Status: domain.TicketStatusInProgress, Priority: domain.TicketPriorityMedium,
			SLADeadline: now.Add(-time.Hour)},
		{Status: domain.TicketStatusResolved, Priority: domain.TicketPriorityMedium,
			SLADeadline: now.Add(-2 * time.Hour), ResolvedAt: &resolvedLate},
	}
	for i := range seed {
		seed[i].UnitID = "unit-icu"
		seed[i].CategoryID = "cat-facility"
		seed[i].ResponseDeadline = now
		if err := repo.Create(context.Background(), &seed[i]); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	svc := NewDashboardService(repo, nil, zap.NewNop())
	summary, err := svc.Summary(context.Background(), DashboardFilter{})
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}

	if summary.Total != 3 {
		t.Errorf("total = %d, want 3", summary.Total)
	}
	if got := summary.ByEffectiveStatus[sla.EffectiveStatus(domain.TicketStatusOpen)]; got != 1 {
		t.Errorf("open count = %d, want 1", got)
	}
	if got := summary.ByEffectiveStatus[sla.StatusOverSLA]; got != 1 {
		t.Errorf("over_sla count = %d, want 1", got)
	}
	if got := summary.ByEffectiveStatus[sla.StatusBreachedButResolved]; got != 1 {
		t.Errorf("breached_but_resolved count = %d, want 1", got)
	}
	if got := summary.ByPriority[domain.TicketPriorityMedium]; got != 2 {
		t.Errorf("medium count = %d, want 2", got)
	}
}

func TestDashboardFilterCacheKey(t *testing.T) {
	unitID := "unit-icu"
	base := DashboardFilter{}.cacheKey()
	scoped := DashboardFilter{UnitID: &unitID}.cacheKey()
	if base == scoped {
		t.Error("unit-scoped summary must not share a cache key with the global one")
	}
}
