package billing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/leanttro/billing-service/internal/domain"
	"github.com/leanttro/billing-service/internal/domain/models"
	"github.com/leanttro/billing-service/internal/testutil/fixtures"
	"github.com/leanttro/billing-service/internal/testutil/mocks"
	testmocks "github.com/leanttro/billing-service/test/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestConfirmPayment(t *testing.T) {
	now := time.Date(2024, 3, 9, 15, 4, 5, 0, time.UTC)
	svc, store, _ := setupService(t, now)
	invoice := fixtures.NewInvoice().Build()
	store.Insert(invoice)
	ctx := context.Background()

	t.Run("marks pending invoice paid", func(t *testing.T) {
		paid, err := svc.ConfirmPayment(ctx, invoice.ID, time.Time{})
		require.NoError(t, err)

		assert.Equal(t, models.InvoiceStatusPaid, paid.Status)
		require.NotNil(t, paid.PaidAt)
		assert.Equal(t, now, *paid.PaidAt, "zero paidAt defaults to now")
	})

	t.Run("confirming twice is a no-op", func(t *testing.T) {
		again, err := svc.ConfirmPayment(ctx, invoice.ID, now.Add(time.Hour))
		require.NoError(t, err)

		assert.Equal(t, models.InvoiceStatusPaid, again.Status)
		assert.Equal(t, now, *again.PaidAt, "original payment time is kept")
	})

	t.Run("unknown invoice", func(t *testing.T) {
		_, err := svc.ConfirmPayment(ctx, uuid.New().String(), now)
		assert.ErrorIs(t, err, domain.ErrInvoiceNotFound)
		assert.True(t, domain.IsNotFoundError(err))
	})

	t.Run("malformed invoice id", func(t *testing.T) {
		_, err := svc.ConfirmPayment(ctx, "inv-123", now)
		assert.ErrorIs(t, err, domain.ErrInvoiceNotFound)
	})
}

func TestConfirmPayment_StoreFailure(t *testing.T) {
	db := new(mocks.MockDBPort)
	repo := new(mocks.MockInvoiceRepository)
	logger := testmocks.NewMockLogger()
	invoiceID := uuid.New()
	paidAt := time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC)

	db.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
	repo.On("MarkPaid", mock.Anything, mock.Anything, invoiceID, paidAt).Return(nil, errors.New("deadlock detected"))

	svc := NewService(db, repo, new(mocks.MockSubscriptionProvider), domain.DefaultBillingRules(), logger)

	_, err := svc.ConfirmPayment(context.Background(), invoiceID.String(), paidAt)

	require.Error(t, err)
	assert.True(t, domain.IsDataAccessError(err))
	assert.Len(t, logger.Errors(), 1)
	repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything, mock.Anything)
}
