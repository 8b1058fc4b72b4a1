package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/simrs-labs/complaint-service/internal/cache"
	"github.com/simrs-labs/complaint-service/internal/domain"
	"github.com/simrs-labs/complaint-service/internal/repository"
	"github.com/simrs-labs/complaint-service/internal/sla"
)

const dashboardCacheKey = "dashboard:summary"

// dashboardScanLimit bounds how many tickets a single summary pass loads.
const dashboardScanLimit = 5000

// DashboardSummary aggregates live complaint state for the overview screen.
type DashboardSummary struct {
	Total             int                           `json:"total"`
	ByEffectiveStatus map[sla.EffectiveStatus]int   `json:"by_effective_status"`
	ByPriority        map[domain.TicketPriority]int `json:"by_priority"`
	GeneratedAt       time.Time                     `json:"generated_at"`
}

// DashboardService computes aggregate views over tickets.
type DashboardService struct {
	tickets repository.TicketRepository
	cache   *cache.DashboardCache
	logger  *zap.Logger
}

// NewDashboardService constructs the service.
func NewDashboardService(tickets repository.TicketRepository, dashCache *cache.DashboardCache, logger *zap.Logger) *DashboardService {
	return &DashboardService{tickets: tickets, cache: dashCache, logger: logger}
}

// DashboardFilter narrows the summary window.
type DashboardFilter struct {
	UnitID      *string
	CategoryID  *string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

func (f DashboardFilter) cacheKey() string {
	key := dashboardCacheKey
	if f.UnitID != nil {
		key += ":unit:" + *f.UnitID
	}
	if f.CategoryID != nil {
		key += ":category:" + *f.CategoryID
	}
	if f.CreatedFrom != nil {
		key += ":from:" + f.CreatedFrom.UTC().Format(time.RFC3339)
	}
	if f.CreatedTo != nil {
		key += ":to:" + f.CreatedTo.UTC().Format(time.RFC3339)
	}
	return key
}

// Summary returns complaint counts grouped by effective status and priority.
// Results are cached briefly; the cache is best effort and failures only log.
func (s *DashboardService) Summary(ctx context.Context, filter DashboardFilter) (*DashboardSummary, error) {
	cacheKey := filter.cacheKey()

	var cached DashboardSummary
	if hit, err := s.cache.Get(ctx, cacheKey, &cached); err != nil {
		s.logger.Warn("dashboard cache read failed", zap.Error(err))
	} else if hit {
		return &cached, nil
	}

	tickets, err := s.tickets.ListWithFilter(ctx, repository.TicketFilter{
		UnitID:      filter.UnitID,
		CategoryID:  filter.CategoryID,
		CreatedFrom: filter.CreatedFrom,
		CreatedTo:   filter.CreatedTo,
		Limit:       dashboardScanLimit,
	})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	byStatus, err := sla.AggregateByEffectiveStatus(now, tickets)
	if err != nil {
		return nil, err
	}
	byPriority := make(map[domain.TicketPriority]int)
	for _, ticket := range tickets {
		byPriority[ticket.Priority]++
	}

	summary := &DashboardSummary{
		Total:             len(tickets),
		ByEffectiveStatus: byStatus,
		ByPriority:        byPriority,
		GeneratedAt:       now,
	}
	if err := s.cache.Set(ctx, cacheKey, summary); err != nil {
		s.logger.Warn("dashboard cache write failed", zap.Error(err))
	}
	return summary, nil
}
