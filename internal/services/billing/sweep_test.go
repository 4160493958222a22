package billing

import (
	"context"
	"testing"

	"github.com/leanttro/billing-service/internal/domain"
	"github.com/leanttro/billing-service/internal/domain/models"
	"github.com/leanttro/billing-service/internal/testutil/fakes"
	"github.com/leanttro/billing-service/internal/testutil/fixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweepFutureInvoices(t *testing.T) {
	svc, store, _ := setupService(t, date(2024, 2, 1))
	ctx := context.Background()

	healthy := []string{
		addSubscriber(store, "100.00", date(2024, 1, 15)),
		addSubscriber(store, "49.90", date(2024, 1, 20)),
		addSubscriber(store, "79.00", date(2023, 12, 2)),
	}
	broken := addSubscriber(store, "100.00", date(2024, 1, 15))
	unpriced := fixtures.NewSubscriber().Build()
	store.AddSubscriber(unpriced, models.OrderPricing{CreatedAt: date(2024, 1, 2)})

	store.CreateErr = func(inv *models.Invoice) error {
		if inv.SubscriberID == broken {
			return fakes.ErrInjected
		}
		return nil
	}

	// a page size of 2 forces several pages
	result, err := svc.SweepFutureInvoices(ctx, 2)
	require.NoError(t, err)

	assert.Equal(t, 5, result.Processed)
	assert.Equal(t, 3, result.Generated)
	assert.Equal(t, 36, result.InvoicesCreated)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, broken, result.Failures[0].SubscriberID)

	for _, id := range healthy {
		assert.Len(t, store.Invoices(id), 12)
	}
	assert.Empty(t, store.Invoices(broken))
	assert.Empty(t, store.Invoices(unpriced.ID))

	// a second sweep finds every window full
	store.CreateErr = nil
	again, err := svc.SweepFutureInvoices(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 5, again.Processed)
	assert.Equal(t, 1, again.Generated, "only the previously failing subscriber is filled")
	assert.Equal(t, 12, again.InvoicesCreated)
	assert.Zero(t, again.Failed)
}

func TestSweepFutureInvoices_ListingFailure(t *testing.T) {
	svc, store, logger := setupService(t, date(2024, 2, 1))
	store.ListBillableErr = fakes.ErrInjected

	result, err := svc.SweepFutureInvoices(context.Background(), 10)

	require.Error(t, err)
	assert.True(t, domain.IsDataAccessError(err))
	assert.Zero(t, result.Processed)
	assert.Len(t, logger.Errors(), 1)
}

func TestSweepFutureInvoices_StopsOnCancelledContext(t *testing.T) {
	svc, store, _ := setupService(t, date(2024, 2, 1))
	addSubscriber(store, "100.00", date(2024, 1, 15))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := svc.SweepFutureInvoices(ctx, 10)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, result.Processed)
}

func TestSweepFutureInvoices_PageSize(t *testing.T) {
	tests := []struct {
		name      string
		batchSize int
		expected  int32
	}{
		{"zero uses the default", 0, DefaultSweepBatchSize},
		{"negative uses the default", -5, DefaultSweepBatchSize},
		{"in range is kept", 25, 25},
		{"above the maximum is clamped", MaxSweepBatchSize + 1, MaxSweepBatchSize},
		{"beyond int32 is clamped", 1 << 40, MaxSweepBatchSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store, _ := setupService(t, date(2024, 2, 1))
			addSubscriber(store, "100.00", date(2024, 1, 15))

			result, err := svc.SweepFutureInvoices(context.Background(), tt.batchSize)
			require.NoError(t, err)
			assert.Equal(t, 1, result.Processed)
			require.NotEmpty(t, store.ListLimits)
			for _, limit := range store.ListLimits {
				assert.Equal(t, tt.expected, limit)
			}
		})
	}
}
