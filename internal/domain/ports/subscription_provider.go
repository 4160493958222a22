package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/leanttro/billing-service/internal/domain/models"
	"github.com/shopspring/decimal"
)

// SubscriptionProvider reads the order and product data recurring prices derive from.
// It never writes.
type SubscriptionProvider interface {
	// GetSubscriber resolves a subscriber, domain.ErrNotFound if unknown
	GetSubscriber(ctx context.Context, db DBTX, id uuid.UUID) (*models.Subscriber, error)

	// ListOrderPricing lists the subscriber's orders by creation ascending
	ListOrderPricing(ctx context.Context, db DBTX, subscriberID uuid.UUID) ([]models.OrderPricing, error)

	// FallbackRecurringPrice returns a positive recurring price of any active
	// product, or zero when there is none
	FallbackRecurringPrice(ctx context.Context, db DBTX) (decimal.Decimal, error)

	// ListBillableSubscriberIDs pages through subscribers that have placed an
	// order, ordered by ID, starting after afterID
	ListBillableSubscriberIDs(ctx context.Context, db DBTX, afterID uuid.UUID, limit int32) ([]uuid.UUID, error)
}
