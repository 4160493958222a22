// Package mocks provides shared testify mocks of the domain ports.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/leanttro/billing-service/internal/domain/models"
	"github.com/leanttro/billing-service/internal/domain/ports"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockDBPort mocks the database port. Transactions run fn with a nil tx
// unless an error is configured for them.
type MockDBPort struct {
	mock.Mock
}

func (m *MockDBPort) Querier() ports.DBTX {
	return nil
}

func (m *MockDBPort) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDBPort) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error {
	args := m.Called(ctx, fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(ctx, nil)
}

func (m *MockDBPort) WithReadOnlyTransaction(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error {
	args := m.Called(ctx, fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(ctx, nil)
}

// MockInvoiceRepository mocks ports.InvoiceRepository
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) Create(ctx context.Context, tx ports.DBTX, invoice *models.Invoice) (bool, error) {
	args := m.Called(ctx, tx, invoice)
	return args.Bool(0), args.Error(1)
}

func (m *MockInvoiceRepository) GetByID(ctx context.Context, db ports.DBTX, id uuid.UUID) (*models.Invoice, error) {
	args := m.Called(ctx, db, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) CountBySubscriberAndStatus(ctx context.Context, db ports.DBTX, subscriberID uuid.UUID, status models.InvoiceStatus) (int, error) {
	args := m.Called(ctx, db, subscriberID, status)
	return args.Int(0), args.Error(1)
}

func (m *MockInvoiceRepository) LatestDueDate(ctx context.Context, db ports.DBTX, subscriberID uuid.UUID) (*time.Time, error) {
	args := m.Called(ctx, db, subscriberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*time.Time), args.Error(1)
}

func (m *MockInvoiceRepository) GetBySubscriberAndDueDate(ctx context.Context, db ports.DBTX, subscriberID uuid.UUID, dueDate time.Time) (*models.Invoice, error) {
	args := m.Called(ctx, db, subscriberID, dueDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListPendingBySubscriber(ctx context.Context, db ports.DBTX, subscriberID uuid.UUID) ([]*models.Invoice, error) {
	args := m.Called(ctx, db, subscriberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListBySubscriber(ctx context.Context, db ports.DBTX, subscriberID uuid.UUID) ([]*models.Invoice, error) {
	args := m.Called(ctx, db, subscriberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) MarkPaid(ctx context.Context, tx ports.DBTX, id uuid.UUID, paidAt time.Time) (*models.Invoice, error) {
	args := m.Called(ctx, tx, id, paidAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Invoice), args.Error(1)
}

// MockSubscriptionProvider mocks ports.SubscriptionProvider
type MockSubscriptionProvider struct {
	mock.Mock
}

func (m *MockSubscriptionProvider) GetSubscriber(ctx context.Context, db ports.DBTX, id uuid.UUID) (*models.Subscriber, error) {
	args := m.Called(ctx, db, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subscriber), args.Error(1)
}

func (m *MockSubscriptionProvider) ListOrderPricing(ctx context.Context, db ports.DBTX, subscriberID uuid.UUID) ([]models.OrderPricing, error) {
	args := m.Called(ctx, db, subscriberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.OrderPricing), args.Error(1)
}

func (m *MockSubscriptionProvider) FallbackRecurringPrice(ctx context.Context, db ports.DBTX) (decimal.Decimal, error) {
	args := m.Called(ctx, db)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockSubscriptionProvider) ListBillableSubscriberIDs(ctx context.Context, db ports.DBTX, afterID uuid.UUID, limit int32) ([]uuid.UUID, error) {
	args := m.Called(ctx, db, afterID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}
