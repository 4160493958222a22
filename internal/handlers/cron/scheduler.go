package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/leanttro/billing-service/internal/services/ports"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// SweepScheduler runs the invoice sweep in-process on a cron schedule
type SweepScheduler struct {
	cron           *cron.Cron
	billingService ports.BillingService
	logger         *zap.Logger
	batchSize      int
}

// NewSweepScheduler parses schedule (standard five-field cron spec or a
// descriptor such as "@daily") and registers the sweep job.
func NewSweepScheduler(billingService ports.BillingService, schedule string, batchSize int, logger *zap.Logger) (*SweepScheduler, error) {
	s := &SweepScheduler{
		cron:           cron.New(cron.WithLocation(time.UTC)),
		billingService: billingService,
		logger:         logger,
		batchSize:      batchSize,
	}

	// overlapping runs would only contend on the same rows
	job := cron.NewChain(cron.SkipIfStillRunning(cron.DiscardLogger)).Then(cron.FuncJob(s.run))
	if _, err := s.cron.AddJob(schedule, job); err != nil {
		return nil, fmt.Errorf("invalid sweep schedule %q: %w", schedule, err)
	}
	return s, nil
}

// Start begins running the schedule in the background
func (s *SweepScheduler) Start() {
	s.cron.Start()
	s.logger.Info("Invoice sweep scheduler started",
		zap.Time("next_run", s.NextRun()),
	)
}

// NextRun returns when the sweep fires next; zero before Start
func (s *SweepScheduler) NextRun() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

// Shutdown stops the schedule and waits for a running sweep to finish
func (s *SweepScheduler) Shutdown(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *SweepScheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	result, err := s.billingService.SweepFutureInvoices(ctx, s.batchSize)
	if err != nil {
		s.logger.Error("Scheduled invoice sweep aborted", zap.Error(err))
		return
	}
	if result.Failed > 0 {
		s.logger.Warn("Scheduled invoice sweep had failures",
			zap.Int("processed", result.Processed),
			zap.Int("failed", result.Failed),
		)
	}
}
