package mocks

import (
	"context"
	"time"

	"github.com/leanttro/billing-service/internal/domain"
	"github.com/leanttro/billing-service/internal/domain/models"
	"github.com/stretchr/testify/mock"
)

// MockBillingService mocks services/ports.BillingService
type MockBillingService struct {
	mock.Mock
}

func (m *MockBillingService) EnsureFutureInvoices(ctx context.Context, subscriberID string) *domain.EnsureResult {
	args := m.Called(ctx, subscriberID)
	return args.Get(0).(*domain.EnsureResult)
}

func (m *MockBillingService) GenerateFutureInvoices(ctx context.Context, subscriberID string) (*domain.EnsureResult, error) {
	args := m.Called(ctx, subscriberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EnsureResult), args.Error(1)
}

func (m *MockBillingService) GetFinancialDashboard(ctx context.Context, subscriberID string) *domain.Dashboard {
	args := m.Called(ctx, subscriberID)
	return args.Get(0).(*domain.Dashboard)
}

func (m *MockBillingService) ListInvoices(ctx context.Context, subscriberID string) ([]*models.Invoice, error) {
	args := m.Called(ctx, subscriberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Invoice), args.Error(1)
}

func (m *MockBillingService) ConfirmPayment(ctx context.Context, invoiceID string, paidAt time.Time) (*models.Invoice, error) {
	args := m.Called(ctx, invoiceID, paidAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Invoice), args.Error(1)
}

func (m *MockBillingService) SweepFutureInvoices(ctx context.Context, batchSize int) (*domain.SweepResult, error) {
	args := m.Called(ctx, batchSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SweepResult), args.Error(1)
}
