package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/leanttro/billing-service/internal/domain/models"
)

// InvoiceRepository defines the interface for invoice persistence.
// Lookups that find nothing return domain.ErrNotFound.
type InvoiceRepository interface {
	// Create inserts a new invoice. It returns false without error when an
	// invoice already exists for the same subscriber and due date.
	Create(ctx context.Context, tx DBTX, invoice *models.Invoice) (bool, error)

	// GetByID retrieves an invoice by its ID
	GetByID(ctx context.Context, db DBTX, id uuid.UUID) (*models.Invoice, error)

	// CountBySubscriberAndStatus counts a subscriber's invoices in one status
	CountBySubscriberAndStatus(ctx context.Context, db DBTX, subscriberID uuid.UUID, status models.InvoiceStatus) (int, error)

	// LatestDueDate returns the latest due date of any of the subscriber's invoices, nil if none
	LatestDueDate(ctx context.Context, db DBTX, subscriberID uuid.UUID) (*time.Time, error)

	// GetBySubscriberAndDueDate finds the invoice due on an exact date
	GetBySubscriberAndDueDate(ctx context.Context, db DBTX, subscriberID uuid.UUID, dueDate time.Time) (*models.Invoice, error)

	// ListPendingBySubscriber lists pending invoices ordered by due date ascending
	ListPendingBySubscriber(ctx context.Context, db DBTX, subscriberID uuid.UUID) ([]*models.Invoice, error)

	// ListBySubscriber lists every invoice of a subscriber ordered by due date ascending
	ListBySubscriber(ctx context.Context, db DBTX, subscriberID uuid.UUID) ([]*models.Invoice, error)

	// MarkPaid moves a pending invoice to paid. Returns domain.ErrNotFound
	// when no pending invoice has that ID.
	MarkPaid(ctx context.Context, tx DBTX, id uuid.UUID, paidAt time.Time) (*models.Invoice, error)
}
