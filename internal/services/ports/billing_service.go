package ports

import (
	"context"
	"time"

	"github.com/leanttro/billing-service/internal/domain"
	"github.com/leanttro/billing-service/internal/domain/models"
)

// BillingService defines the recurring invoice operations exposed to handlers and the CLI
type BillingService interface {
	// EnsureFutureInvoices tops up the subscriber's pending invoice window.
	// Failures are logged and reported in the result, never returned.
	EnsureFutureInvoices(ctx context.Context, subscriberID string) *domain.EnsureResult

	// GenerateFutureInvoices is EnsureFutureInvoices for callers that need the error
	GenerateFutureInvoices(ctx context.Context, subscriberID string) (*domain.EnsureResult, error)

	// GetFinancialDashboard ensures the window, then classifies pending invoices.
	// A read failure yields the empty dashboard flagged as degraded.
	GetFinancialDashboard(ctx context.Context, subscriberID string) *domain.Dashboard

	// ListInvoices lists every invoice of a subscriber by due date
	ListInvoices(ctx context.Context, subscriberID string) ([]*models.Invoice, error)

	// ConfirmPayment marks a pending invoice paid. Confirming a paid invoice is a no-op.
	ConfirmPayment(ctx context.Context, invoiceID string, paidAt time.Time) (*models.Invoice, error)

	// SweepFutureInvoices tops up the window of every billable subscriber
	SweepFutureInvoices(ctx context.Context, batchSize int) (*domain.SweepResult, error)
}
