package billing

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/leanttro/billing-service/internal/domain"
	"github.com/leanttro/billing-service/internal/domain/models"
	"github.com/leanttro/billing-service/internal/domain/ports"
	"github.com/leanttro/billing-service/pkg/observability"
)

// GetFinancialDashboard tops up the invoice window, then classifies the
// subscriber's pending invoices against today. It fails open: when the
// invoices cannot be read the empty dashboard is returned with Degraded set,
// so an outage can hide an overdue account.
func (s *Service) GetFinancialDashboard(ctx context.Context, subscriberID string) *domain.Dashboard {
	today := s.today()

	// failures are logged by the scheduler and must not block the read
	s.EnsureFutureInvoices(ctx, subscriberID)

	subID, ok := parseID(subscriberID)
	if !ok {
		d := domain.EmptyDashboard(subscriberID, today)
		observability.RecordDashboardView(string(d.StatusGlobal), false)
		return d
	}

	var pending []*models.Invoice
	err := s.db.WithReadOnlyTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var err error
		pending, err = s.invoices.ListPendingBySubscriber(ctx, tx, subID)
		if err != nil {
			return domain.DataAccessError("list_pending_invoices", err)
		}
		return nil
	})
	if err != nil {
		recordFailure(err)
		s.logger.Error("Failed to load financial dashboard, serving defaults",
			ports.String("subscriber_id", subscriberID),
			ports.Err(err),
		)

		d := domain.EmptyDashboard(subscriberID, today)
		d.Degraded = true
		observability.RecordDashboardView(string(d.StatusGlobal), true)
		return d
	}

	d := domain.BuildDashboard(subscriberID, pending, today, s.rules)
	observability.RecordDashboardView(string(d.StatusGlobal), false)

	if d.Blocked() {
		s.logger.Info("Subscriber has an overdue invoice",
			ports.String("subscriber_id", subscriberID),
			ports.Amount("total_pending", d.TotalPending),
		)
	}
	return d
}

// ListInvoices returns every invoice of a subscriber ordered by due date
func (s *Service) ListInvoices(ctx context.Context, subscriberID string) ([]*models.Invoice, error) {
	subID, ok := parseID(subscriberID)
	if !ok {
		return nil, domain.ErrSubscriberNotFound
	}

	var invoices []*models.Invoice
	err := s.db.WithReadOnlyTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := s.provider.GetSubscriber(ctx, tx, subID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrSubscriberNotFound
			}
			return domain.DataAccessError("get_subscriber", err)
		}

		var err error
		invoices, err = s.invoices.ListBySubscriber(ctx, tx, subID)
		if err != nil {
			return domain.DataAccessError("list_invoices", err)
		}
		return nil
	})
	if err != nil {
		if domain.IsDataAccessError(err) {
			recordFailure(err)
			s.logger.Error("Failed to list invoices",
				ports.String("subscriber_id", subscriberID),
				ports.Err(err),
			)
		}
		return nil, err
	}
	return invoices, nil
}
