package billing

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/leanttro/billing-service/internal/domain"
	"github.com/leanttro/billing-service/internal/domain/models"
	"github.com/leanttro/billing-service/internal/domain/ports"
	"github.com/leanttro/billing-service/pkg/observability"
)

// ConfirmPayment settles a pending invoice. It is idempotent: confirming an
// already paid invoice returns it unchanged. A zero paidAt means now.
func (s *Service) ConfirmPayment(ctx context.Context, invoiceID string, paidAt time.Time) (*models.Invoice, error) {
	id, ok := parseID(invoiceID)
	if !ok {
		observability.RecordPaymentConfirmation("not_found")
		return nil, domain.ErrInvoiceNotFound
	}
	if paidAt.IsZero() {
		paidAt = s.clock()
	}
	paidAt = paidAt.UTC()

	var (
		invoice     *models.Invoice
		alreadyPaid bool
	)
	err := s.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		paid, err := s.invoices.MarkPaid(ctx, tx, id, paidAt)
		if err == nil {
			invoice = paid
			return nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return domain.DataAccessError("mark_invoice_paid", err)
		}

		// nothing pending under that id: either unknown or settled earlier
		existing, err := s.invoices.GetByID(ctx, tx, id)
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrInvoiceNotFound
		}
		if err != nil {
			return domain.DataAccessError("get_invoice", err)
		}
		invoice = existing
		alreadyPaid = existing.IsPaid()
		return nil
	})

	switch {
	case err == nil && alreadyPaid:
		observability.RecordPaymentConfirmation("already_paid")
		s.logger.Info("Invoice already paid",
			ports.String("invoice_id", invoiceID),
		)
		return invoice, nil
	case err == nil:
		observability.RecordPaymentConfirmation("paid")
		s.logger.Info("Invoice paid",
			ports.String("invoice_id", invoiceID),
			ports.String("subscriber_id", invoice.SubscriberID),
			ports.Date("due_date", invoice.DueDate),
		)
		return invoice, nil
	case errors.Is(err, domain.ErrInvoiceNotFound):
		observability.RecordPaymentConfirmation("not_found")
		return nil, err
	default:
		observability.RecordPaymentConfirmation("failed")
		if domain.IsDataAccessError(err) {
			recordFailure(err)
		}
		s.logger.Error("Failed to confirm payment",
			ports.String("invoice_id", invoiceID),
			ports.Err(err),
		)
		return nil, err
	}
}
