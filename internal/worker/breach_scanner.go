package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/simrs-labs/complaint-service/internal/observability"
	"github.com/simrs-labs/complaint-service/internal/repository"
	"github.com/simrs-labs/complaint-service/internal/service"
)

// BreachScanner periodically escalates tickets whose escalation deadline has
// passed while they are still open or in progress.
type BreachScanner struct {
	tickets   repository.TicketRepository
	service   *service.TicketService
	metrics   *observability.Metrics
	logger    *zap.Logger
	interval  time.Duration
	batchSize int
}

// NewBreachScanner builds the scanner.
func NewBreachScanner(
	tickets repository.TicketRepository,
	ticketService *service.TicketService,
	metrics *observability.Metrics,
	logger *zap.Logger,
	interval time.Duration,
	batchSize int,
) *BreachScanner {
	if interval <= 0 {
		interval = time.Minute
	}
	if batchSize <= 0 {
		batchSize = 200
	}
	return &BreachScanner{
		tickets:   tickets,
		service:   ticketService,
		metrics:   metrics,
		logger:    logger,
		interval:  interval,
		batchSize: batchSize,
	}
}

// Run blocks, scanning on a fixed interval until the context is cancelled.
func (s *BreachScanner) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("breach scanner started",
		zap.Duration("interval", s.interval),
		zap.Int("batch_size", s.batchSize))

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("breach scanner stopped")
			return
		case <-ticker.C:
			if err := s.scanOnce(ctx); err != nil {
				s.logger.Error("breach scan failed", zap.Error(err))
			}
		}
	}
}

func (s *BreachScanner) scanOnce(ctx context.Context) error {
	now := time.Now()
	candidates, err := s.tickets.ListEscalatable(ctx, now, s.batchSize)
	if err != nil {
		return err
	}
	if len(candidates) == 0 {
		return nil
	}

	escalated := 0
	for i := range candidates {
		ticket := &candidates[i]
		if now.After(ticket.SLADeadline) {
			s.metrics.RecordBreachDetected()
		}
		if err := s.service.MarkEscalated(ctx, ticket); err != nil {
			s.logger.Error("escalation failed",
				zap.String("ticket_id", ticket.ID),
				zap.String("reference_key", ticket.ReferenceKey),
				zap.Error(err))
			continue
		}
		escalated++
	}

	s.logger.Info("breach scan complete",
		zap.Int("candidates", len(candidates)),
		zap.Int("escalated", escalated))
	return nil
}
