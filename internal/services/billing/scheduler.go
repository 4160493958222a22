package billing

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/leanttro/billing-service/internal/domain"
	"github.com/leanttro/billing-service/internal/domain/models"
	"github.com/leanttro/billing-service/internal/domain/ports"
	"github.com/leanttro/billing-service/pkg/observability"
	"github.com/shopspring/decimal"
)

// EnsureFutureInvoices tops up the subscriber's window of pending invoices.
// It never fails: store errors roll the run back and are reported in the
// result with outcome failed.
func (s *Service) EnsureFutureInvoices(ctx context.Context, subscriberID string) *domain.EnsureResult {
	result, _ := s.GenerateFutureInvoices(ctx, subscriberID)
	return result
}

// GenerateFutureInvoices tops up the window and returns store failures.
// All invoices of one run are written in a single transaction.
func (s *Service) GenerateFutureInvoices(ctx context.Context, subscriberID string) (*domain.EnsureResult, error) {
	result := &domain.EnsureResult{SubscriberID: subscriberID}

	subID, ok := parseID(subscriberID)
	if !ok {
		result.Outcome = domain.EnsureOutcomeUnknownSubscriber
		s.finish(result)
		return result, nil
	}

	err := s.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return s.topUp(ctx, tx, subID, result)
	})
	if err != nil {
		if !domain.IsDomainError(err, domain.ErrorCodeDataAccess) {
			err = domain.DataAccessError("transaction", err)
		}
		result.Outcome = domain.EnsureOutcomeFailed
		result.Created = nil
		result.Skipped = 0
		result.Err = err
		recordFailure(err)
		s.finish(result)
		return result, err
	}

	s.finish(result)
	return result, nil
}

// topUp fills result; any error it returns aborts the transaction
func (s *Service) topUp(ctx context.Context, tx ports.DBTX, subID uuid.UUID, result *domain.EnsureResult) error {
	subscriber, err := s.provider.GetSubscriber(ctx, tx, subID)
	if errors.Is(err, domain.ErrNotFound) {
		result.Outcome = domain.EnsureOutcomeUnknownSubscriber
		return nil
	}
	if err != nil {
		return domain.DataAccessError("get_subscriber", err)
	}

	basis, ok, err := s.resolvePrice(ctx, tx, subID, subscriber)
	if err != nil {
		return err
	}
	if !ok {
		result.Outcome = domain.EnsureOutcomeNoPrice
		return nil
	}

	pending, err := s.invoices.CountBySubscriberAndStatus(ctx, tx, subID, models.InvoiceStatusPending)
	if err != nil {
		return domain.DataAccessError("count_pending_invoices", err)
	}
	result.PendingBefore = pending

	needed := s.rules.WindowSize - pending
	if needed <= 0 {
		result.Outcome = domain.EnsureOutcomeWindowFull
		return nil
	}

	latest, err := s.invoices.LatestDueDate(ctx, tx, subID)
	if err != nil {
		return domain.DataAccessError("latest_due_date", err)
	}

	anchor := domain.ScheduleAnchor(latest, basis.FirstOrderDate, s.rules)
	now := s.clock().UTC()

	for _, due := range domain.NextDueDates(anchor, needed, s.rules) {
		_, err := s.invoices.GetBySubscriberAndDueDate(ctx, tx, subID, due)
		if err == nil {
			result.Skipped++
			continue
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return domain.DataAccessError("find_invoice_by_due_date", err)
		}

		invoice := &models.Invoice{
			ID:           uuid.New().String(),
			SubscriberID: subID.String(),
			Amount:       basis.MonthlyAmount,
			DueDate:      due,
			Status:       models.InvoiceStatusPending,
			CreatedAt:    now,
		}
		inserted, err := s.invoices.Create(ctx, tx, invoice)
		if err != nil {
			return domain.DataAccessError("create_invoice", err)
		}
		if !inserted {
			// lost a race with a concurrent run for the same subscriber
			result.Skipped++
			continue
		}
		result.Created = append(result.Created, invoice)
	}

	result.Outcome = domain.EnsureOutcomeGenerated
	return nil
}

// resolvePrice determines the monthly amount, querying the active-product
// fallback only when no order carries a price
func (s *Service) resolvePrice(ctx context.Context, tx ports.DBTX, subID uuid.UUID, subscriber *models.Subscriber) (domain.PriceBasis, bool, error) {
	orders, err := s.provider.ListOrderPricing(ctx, tx, subID)
	if err != nil {
		return domain.PriceBasis{}, false, domain.DataAccessError("list_order_pricing", err)
	}

	if basis, ok := domain.ResolveMonthlyAmount(orders, decimal.Zero, subscriber.CreatedAt); ok {
		return basis, true, nil
	}

	fallback, err := s.provider.FallbackRecurringPrice(ctx, tx)
	if err != nil {
		return domain.PriceBasis{}, false, domain.DataAccessError("fallback_recurring_price", err)
	}

	basis, ok := domain.ResolveMonthlyAmount(orders, fallback, subscriber.CreatedAt)
	return basis, ok, nil
}

// finish logs the run and records its metrics
func (s *Service) finish(result *domain.EnsureResult) {
	observability.RecordEnsureRun(string(result.Outcome), len(result.Created), result.Skipped)

	switch result.Outcome {
	case domain.EnsureOutcomeFailed:
		s.logger.Error("Failed to ensure future invoices",
			ports.String("subscriber_id", result.SubscriberID),
			ports.Err(result.Err),
		)
	case domain.EnsureOutcomeUnknownSubscriber:
		s.logger.Warn("Ensure requested for unknown subscriber",
			ports.String("subscriber_id", result.SubscriberID),
		)
	case domain.EnsureOutcomeGenerated:
		s.logger.Info("Future invoices generated",
			ports.String("subscriber_id", result.SubscriberID),
			ports.Int("pending_before", result.PendingBefore),
			ports.Int("created", len(result.Created)),
			ports.Int("skipped", result.Skipped),
		)
	default:
		s.logger.Debug("Invoice window unchanged",
			ports.String("subscriber_id", result.SubscriberID),
			ports.String("outcome", string(result.Outcome)),
		)
	}
}
