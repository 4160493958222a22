package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/leanttro/billing-service/internal/domain"
	"github.com/leanttro/billing-service/internal/domain/ports"
	"github.com/leanttro/billing-service/pkg/observability"
)

const (
	// DefaultSweepBatchSize is the page size used when the caller passes none
	DefaultSweepBatchSize = 100
	// MaxSweepBatchSize bounds the page size; larger values are clamped
	MaxSweepBatchSize = 1000
)

// SweepFutureInvoices tops up the invoice window of every subscriber that
// has placed an order. Subscribers are processed one transaction each, so a
// failing subscriber is reported without affecting the others.
func (s *Service) SweepFutureInvoices(ctx context.Context, batchSize int) (*domain.SweepResult, error) {
	switch {
	case batchSize <= 0:
		batchSize = DefaultSweepBatchSize
	case batchSize > MaxSweepBatchSize:
		batchSize = MaxSweepBatchSize
	}

	start := time.Now()
	result := &domain.SweepResult{Failures: []domain.SweepFailure{}}
	after := uuid.Nil

	for {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		var ids []uuid.UUID
		err := s.db.WithReadOnlyTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
			var err error
			ids, err = s.provider.ListBillableSubscriberIDs(ctx, tx, after, int32(batchSize))
			if err != nil {
				return domain.DataAccessError("list_billable_subscribers", err)
			}
			return nil
		})
		if err != nil {
			recordFailure(err)
			s.logger.Error("Failed to list billable subscribers",
				ports.Int("processed", result.Processed),
				ports.Err(err),
			)
			return result, err
		}

		for _, id := range ids {
			run, err := s.GenerateFutureInvoices(ctx, id.String())
			result.Processed++
			if err != nil {
				result.Failed++
				result.Failures = append(result.Failures, domain.SweepFailure{
					SubscriberID: id.String(),
					Error:        err.Error(),
				})
				continue
			}
			if len(run.Created) > 0 {
				result.Generated++
				result.InvoicesCreated += len(run.Created)
			}
		}

		if len(ids) < batchSize {
			break
		}
		after = ids[len(ids)-1]
	}

	elapsed := time.Since(start)
	observability.ObserveSweep(elapsed.Seconds())
	s.logger.Info("Invoice window sweep completed",
		ports.Int("processed", result.Processed),
		ports.Int("generated", result.Generated),
		ports.Int("invoices_created", result.InvoicesCreated),
		ports.Int("failed", result.Failed),
		ports.Duration("duration", elapsed),
	)

	return result, nil
}
