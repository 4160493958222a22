package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/leanttro/billing-service/internal/db/sqlc"
	"github.com/leanttro/billing-service/internal/domain"
	"github.com/leanttro/billing-service/internal/domain/models"
	"github.com/leanttro/billing-service/internal/domain/ports"
)

// InvoiceRepository implements ports.InvoiceRepository using SQLC
type InvoiceRepository struct {
	queries *sqlc.Queries
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db ports.DBPort) *InvoiceRepository {
	return &InvoiceRepository{
		queries: sqlc.New(db.Querier()),
	}
}

// Create inserts a pending invoice. A row already holding the same
// subscriber and due date leaves the table unchanged and returns false.
func (r *InvoiceRepository) Create(ctx context.Context, tx ports.DBTX, invoice *models.Invoice) (bool, error) {
	q := queriesFor(tx, r.queries)

	invoiceID, err := uuid.Parse(invoice.ID)
	if err != nil {
		return false, fmt.Errorf("invalid invoice ID: %w", err)
	}
	subscriberID, err := uuid.Parse(invoice.SubscriberID)
	if err != nil {
		return false, fmt.Errorf("invalid subscriber ID: %w", err)
	}

	amount, err := decimalToPgNumeric(invoice.Amount)
	if err != nil {
		return false, err
	}

	rows, err := q.CreateInvoice(ctx, sqlc.CreateInvoiceParams{
		ID:           invoiceID,
		SubscriberID: subscriberID,
		Amount:       amount,
		DueDate:      pgDate(invoice.DueDate),
		Status:       string(invoice.Status),
	})
	if err != nil {
		return false, fmt.Errorf("create invoice: %w", err)
	}

	return rows == 1, nil
}

// GetByID retrieves an invoice by its ID
func (r *InvoiceRepository) GetByID(ctx context.Context, db ports.DBTX, id uuid.UUID) (*models.Invoice, error) {
	row, err := queriesFor(db, r.queries).GetInvoiceByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get invoice by id: %w", notFound(err))
	}
	return toInvoiceModel(row)
}

// CountBySubscriberAndStatus counts a subscriber's invoices in one status
func (r *InvoiceRepository) CountBySubscriberAndStatus(ctx context.Context, db ports.DBTX, subscriberID uuid.UUID, status models.InvoiceStatus) (int, error) {
	count, err := queriesFor(db, r.queries).CountInvoicesBySubscriberAndStatus(ctx, sqlc.CountInvoicesBySubscriberAndStatusParams{
		SubscriberID: subscriberID,
		Status:       string(status),
	})
	if err != nil {
		return 0, fmt.Errorf("count invoices: %w", err)
	}
	return int(count), nil
}

// LatestDueDate returns the latest due date across all statuses, nil without invoices
func (r *InvoiceRepository) LatestDueDate(ctx context.Context, db ports.DBTX, subscriberID uuid.UUID) (*time.Time, error) {
	latest, err := queriesFor(db, r.queries).GetLatestInvoiceDueDate(ctx, subscriberID)
	if err != nil {
		return nil, fmt.Errorf("get latest due date: %w", err)
	}
	if !latest.Valid {
		return nil, nil
	}
	due := latest.Time.UTC()
	return &due, nil
}

// GetBySubscriberAndDueDate finds the invoice due on an exact date
func (r *InvoiceRepository) GetBySubscriberAndDueDate(ctx context.Context, db ports.DBTX, subscriberID uuid.UUID, dueDate time.Time) (*models.Invoice, error) {
	row, err := queriesFor(db, r.queries).GetInvoiceBySubscriberAndDueDate(ctx, sqlc.GetInvoiceBySubscriberAndDueDateParams{
		SubscriberID: subscriberID,
		DueDate:      pgDate(dueDate),
	})
	if err != nil {
		return nil, fmt.Errorf("get invoice by due date: %w", notFound(err))
	}
	return toInvoiceModel(row)
}

// ListPendingBySubscriber lists pending invoices, earliest due date first
func (r *InvoiceRepository) ListPendingBySubscriber(ctx context.Context, db ports.DBTX, subscriberID uuid.UUID) ([]*models.Invoice, error) {
	rows, err := queriesFor(db, r.queries).ListPendingInvoicesBySubscriber(ctx, subscriberID)
	if err != nil {
		return nil, fmt.Errorf("list pending invoices: %w", err)
	}
	return toInvoiceModels(rows)
}

// ListBySubscriber lists every invoice of a subscriber, earliest due date first
func (r *InvoiceRepository) ListBySubscriber(ctx context.Context, db ports.DBTX, subscriberID uuid.UUID) ([]*models.Invoice, error) {
	rows, err := queriesFor(db, r.queries).ListInvoicesBySubscriber(ctx, subscriberID)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	return toInvoiceModels(rows)
}

// MarkPaid settles a pending invoice
func (r *InvoiceRepository) MarkPaid(ctx context.Context, tx ports.DBTX, id uuid.UUID, paidAt time.Time) (*models.Invoice, error) {
	row, err := queriesFor(tx, r.queries).MarkInvoicePaid(ctx, sqlc.MarkInvoicePaidParams{
		ID:     id,
		PaidAt: pgTimestamptz(paidAt),
	})
	if err != nil {
		return nil, fmt.Errorf("mark invoice paid: %w", notFound(err))
	}
	return toInvoiceModel(row)
}

// notFound maps pgx.ErrNoRows to domain.ErrNotFound
func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}

func toInvoiceModels(rows []sqlc.Invoice) ([]*models.Invoice, error) {
	invoices := make([]*models.Invoice, 0, len(rows))
	for _, row := range rows {
		inv, err := toInvoiceModel(row)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, nil
}

func toInvoiceModel(row sqlc.Invoice) (*models.Invoice, error) {
	amount, err := pgNumericToDecimal(row.Amount)
	if err != nil {
		return nil, fmt.Errorf("convert invoice amount: %w", err)
	}

	return &models.Invoice{
		ID:           row.ID.String(),
		SubscriberID: row.SubscriberID.String(),
		Amount:       amount,
		DueDate:      row.DueDate.Time.UTC(),
		Status:       models.InvoiceStatus(row.Status),
		CreatedAt:    row.CreatedAt.Time,
		PaidAt:       timePtr(row.PaidAt),
	}, nil
}
