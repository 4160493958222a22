package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/leanttro/billing-service/internal/db/sqlc"
	"github.com/leanttro/billing-service/internal/domain/models"
	"github.com/leanttro/billing-service/internal/domain/ports"
	"github.com/shopspring/decimal"
)

// SubscriptionProvider implements ports.SubscriptionProvider over the
// subscribers, orders and products tables
type SubscriptionProvider struct {
	queries *sqlc.Queries
}

// NewSubscriptionProvider creates a new subscription provider
func NewSubscriptionProvider(db ports.DBPort) *SubscriptionProvider {
	return &SubscriptionProvider{
		queries: sqlc.New(db.Querier()),
	}
}

// GetSubscriber resolves a subscriber by ID
func (p *SubscriptionProvider) GetSubscriber(ctx context.Context, db ports.DBTX, id uuid.UUID) (*models.Subscriber, error) {
	row, err := queriesFor(db, p.queries).GetSubscriberByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get subscriber: %w", notFound(err))
	}

	return &models.Subscriber{
		ID:        row.ID.String(),
		Name:      row.Name,
		Email:     row.Email,
		CreatedAt: row.CreatedAt.Time.UTC(),
	}, nil
}

// ListOrderPricing lists the subscriber's orders with their recurring prices, oldest first.
// Missing amounts come back as zero.
func (p *SubscriptionProvider) ListOrderPricing(ctx context.Context, db ports.DBTX, subscriberID uuid.UUID) ([]models.OrderPricing, error) {
	rows, err := queriesFor(db, p.queries).ListOrderPricingBySubscriber(ctx, subscriberID)
	if err != nil {
		return nil, fmt.Errorf("list order pricing: %w", err)
	}

	orders := make([]models.OrderPricing, 0, len(rows))
	for _, row := range rows {
		amount, err := pgNumericToDecimal(row.RecurringAmount)
		if err != nil {
			return nil, fmt.Errorf("convert order recurring amount: %w", err)
		}
		productPrice, err := pgNumericToDecimal(row.ProductRecurringPrice)
		if err != nil {
			return nil, fmt.Errorf("convert product recurring price: %w", err)
		}

		orders = append(orders, models.OrderPricing{
			OrderID:               row.ID.String(),
			RecurringAmount:       amount,
			ProductRecurringPrice: productPrice,
			CreatedAt:             row.CreatedAt.Time.UTC(),
		})
	}
	return orders, nil
}

// FallbackRecurringPrice returns the oldest active product's positive recurring price
func (p *SubscriptionProvider) FallbackRecurringPrice(ctx context.Context, db ports.DBTX) (decimal.Decimal, error) {
	price, err := queriesFor(db, p.queries).GetFallbackRecurringPrice(ctx)
	if errors.Is(err, pgx.ErrNoRows) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("get fallback recurring price: %w", err)
	}
	return pgNumericToDecimal(price)
}

// ListBillableSubscriberIDs pages through subscribers with at least one order
func (p *SubscriptionProvider) ListBillableSubscriberIDs(ctx context.Context, db ports.DBTX, afterID uuid.UUID, limit int32) ([]uuid.UUID, error) {
	ids, err := queriesFor(db, p.queries).ListBillableSubscriberIDs(ctx, sqlc.ListBillableSubscriberIDsParams{
		AfterID:  afterID,
		RowLimit: limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list billable subscribers: %w", err)
	}
	return ids, nil
}
