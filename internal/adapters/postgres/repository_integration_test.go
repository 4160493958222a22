//go:build integration

package postgres_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/leanttro/billing-service/internal/adapters/postgres"
	"github.com/leanttro/billing-service/internal/domain"
	"github.com/leanttro/billing-service/internal/domain/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newInvoice(subscriberID uuid.UUID, due time.Time, amount string) *models.Invoice {
	return &models.Invoice{
		ID:           uuid.New().String(),
		SubscriberID: subscriberID.String(),
		Amount:       decimal.RequireFromString(amount),
		DueDate:      due,
		Status:       models.InvoiceStatusPending,
	}
}

func TestInvoiceRepository(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	db := postgres.NewDBExecutor(pool)
	repo := postgres.NewInvoiceRepository(db)
	fx := newSeed(t, pool)

	subID := fx.subscriber(date(2024, 1, 1))

	t.Run("create and read back", func(t *testing.T) {
		inv := newInvoice(subID, date(2024, 3, 10), "149.90")

		inserted, err := repo.Create(ctx, nil, inv)
		require.NoError(t, err)
		assert.True(t, inserted)

		got, err := repo.GetByID(ctx, nil, uuid.MustParse(inv.ID))
		require.NoError(t, err)
		assert.Equal(t, "149.9", got.Amount.String())
		assert.Equal(t, date(2024, 3, 10), got.DueDate)
		assert.Equal(t, models.InvoiceStatusPending, got.Status)
		assert.Nil(t, got.PaidAt)
	})

	t.Run("duplicate due date is skipped", func(t *testing.T) {
		inserted, err := repo.Create(ctx, nil, newInvoice(subID, date(2024, 3, 10), "149.90"))
		require.NoError(t, err)
		assert.False(t, inserted)

		count, err := repo.CountBySubscriberAndStatus(ctx, nil, subID, models.InvoiceStatusPending)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("latest due date and exact lookup", func(t *testing.T) {
		_, err := repo.Create(ctx, nil, newInvoice(subID, date(2024, 5, 10), "149.90"))
		require.NoError(t, err)
		_, err = repo.Create(ctx, nil, newInvoice(subID, date(2024, 4, 10), "149.90"))
		require.NoError(t, err)

		latest, err := repo.LatestDueDate(ctx, nil, subID)
		require.NoError(t, err)
		require.NotNil(t, latest)
		assert.Equal(t, date(2024, 5, 10), *latest)

		found, err := repo.GetBySubscriberAndDueDate(ctx, nil, subID, date(2024, 4, 10))
		require.NoError(t, err)
		assert.Equal(t, date(2024, 4, 10), found.DueDate)

		_, err = repo.GetBySubscriberAndDueDate(ctx, nil, subID, date(2024, 6, 10))
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("pending list is ordered by due date", func(t *testing.T) {
		pending, err := repo.ListPendingBySubscriber(ctx, nil, subID)
		require.NoError(t, err)
		require.Len(t, pending, 3)
		assert.Equal(t, date(2024, 3, 10), pending[0].DueDate)
		assert.Equal(t, date(2024, 4, 10), pending[1].DueDate)
		assert.Equal(t, date(2024, 5, 10), pending[2].DueDate)
	})

	t.Run("mark paid only once", func(t *testing.T) {
		pending, err := repo.ListPendingBySubscriber(ctx, nil, subID)
		require.NoError(t, err)
		id := uuid.MustParse(pending[0].ID)
		paidAt := time.Date(2024, 3, 9, 14, 30, 0, 0, time.UTC)

		paid, err := repo.MarkPaid(ctx, nil, id, paidAt)
		require.NoError(t, err)
		assert.Equal(t, models.InvoiceStatusPaid, paid.Status)
		require.NotNil(t, paid.PaidAt)
		assert.True(t, paidAt.Equal(*paid.PaidAt))

		_, err = repo.MarkPaid(ctx, nil, id, paidAt)
		assert.ErrorIs(t, err, domain.ErrNotFound)

		count, err := repo.CountBySubscriberAndStatus(ctx, nil, subID, models.InvoiceStatusPending)
		require.NoError(t, err)
		assert.Equal(t, 2, count)

		all, err := repo.ListBySubscriber(ctx, nil, subID)
		require.NoError(t, err)
		assert.Len(t, all, 3)

		latest, err := repo.LatestDueDate(ctx, nil, subID)
		require.NoError(t, err)
		assert.Equal(t, date(2024, 5, 10), *latest, "paid invoices still anchor the sequence")
	})

	t.Run("no invoices means no latest due date", func(t *testing.T) {
		latest, err := repo.LatestDueDate(ctx, nil, fx.subscriber(date(2024, 1, 1)))
		require.NoError(t, err)
		assert.Nil(t, latest)
	})

	t.Run("rolled back transaction leaves no rows", func(t *testing.T) {
		other := fx.subscriber(date(2024, 1, 1))

		errAbort := errors.New("abort")
		err := db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
			_, err := repo.Create(ctx, tx, newInvoice(other, date(2024, 3, 10), "10.00"))
			require.NoError(t, err)
			return errAbort
		})
		require.ErrorIs(t, err, errAbort)

		count, err := repo.CountBySubscriberAndStatus(ctx, nil, other, models.InvoiceStatusPending)
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}

func TestInvoiceRepository_ConcurrentCreateIsBenign(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repo := postgres.NewInvoiceRepository(postgres.NewDBExecutor(pool))
	subID := newSeed(t, pool).subscriber(date(2024, 1, 1))

	const writers = 8
	var wg sync.WaitGroup
	results := make(chan bool, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			inserted, err := repo.Create(ctx, nil, newInvoice(subID, date(2024, 7, 10), "50.00"))
			assert.NoError(t, err)
			results <- inserted
		}()
	}
	wg.Wait()
	close(results)

	wins := 0
	for inserted := range results {
		if inserted {
			wins++
		}
	}
	assert.Equal(t, 1, wins)
}

func TestSubscriptionProvider(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	provider := postgres.NewSubscriptionProvider(postgres.NewDBExecutor(pool))
	fx := newSeed(t, pool)

	t.Run("unknown subscriber", func(t *testing.T) {
		_, err := provider.GetSubscriber(ctx, nil, uuid.New())
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("no active product means no fallback", func(t *testing.T) {
		fx.product("0", true)
		fx.product("99.00", false)

		price, err := provider.FallbackRecurringPrice(ctx, nil)
		require.NoError(t, err)
		assert.True(t, price.IsZero())
	})

	t.Run("order pricing with linked products", func(t *testing.T) {
		plan := fx.product("79.90", true)
		subID := fx.subscriber(date(2024, 1, 1))
		fx.order(subID, &plan, "", date(2024, 1, 20))
		fx.order(subID, nil, "120.00", date(2024, 1, 15))

		orders, err := provider.ListOrderPricing(ctx, nil, subID)
		require.NoError(t, err)
		require.Len(t, orders, 2)

		assert.Equal(t, "120", orders[0].RecurringAmount.String())
		assert.True(t, orders[0].ProductRecurringPrice.IsZero())
		assert.Equal(t, date(2024, 1, 15), orders[0].CreatedAt)

		assert.True(t, orders[1].RecurringAmount.IsZero())
		assert.Equal(t, "79.9", orders[1].ProductRecurringPrice.String())

		price, err := provider.FallbackRecurringPrice(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, "79.9", price.String())
	})

	t.Run("billable subscribers are paged by id", func(t *testing.T) {
		withoutOrders := fx.subscriber(date(2024, 1, 1))

		var seen []uuid.UUID
		after := uuid.Nil
		for {
			page, err := provider.ListBillableSubscriberIDs(ctx, nil, after, 1)
			require.NoError(t, err)
			if len(page) == 0 {
				break
			}
			seen = append(seen, page...)
			after = page[len(page)-1]
		}

		assert.Len(t, seen, 1)
		assert.NotContains(t, seen, withoutOrders)
	})
}
