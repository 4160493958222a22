package domain

import (
	"time"

	"github.com/leanttro/billing-service/internal/domain/models"
	"github.com/shopspring/decimal"
)

// PriceSource records where a subscriber's monthly amount came from
type PriceSource string

const (
	PriceSourceOrder         PriceSource = "order"
	PriceSourceLinkedProduct PriceSource = "linked_product"
	PriceSourceFallback      PriceSource = "active_product"
)

// PriceBasis is the monthly amount invoices are generated with
type PriceBasis struct {
	MonthlyAmount  decimal.Decimal
	FirstOrderDate time.Time
	Source         PriceSource
}

// ResolveMonthlyAmount picks the recurring amount for a subscriber.
//
// Orders must be sorted by creation ascending. The first order with a positive
// recurring amount wins, then the first whose linked product has a positive
// recurring price. Failing both, fallback (any active product's price) is used
// if positive, dated from the earliest order or subscriberSince when there are
// no orders. ok is false when no positive amount exists.
func ResolveMonthlyAmount(orders []models.OrderPricing, fallback decimal.Decimal, subscriberSince time.Time) (PriceBasis, bool) {
	for _, order := range orders {
		if order.RecurringAmount.IsPositive() {
			return PriceBasis{
				MonthlyAmount:  order.RecurringAmount,
				FirstOrderDate: order.CreatedAt,
				Source:         PriceSourceOrder,
			}, true
		}
		if order.ProductRecurringPrice.IsPositive() {
			return PriceBasis{
				MonthlyAmount:  order.ProductRecurringPrice,
				FirstOrderDate: order.CreatedAt,
				Source:         PriceSourceLinkedProduct,
			}, true
		}
	}

	if !fallback.IsPositive() {
		return PriceBasis{}, false
	}

	since := subscriberSince
	if len(orders) > 0 {
		since = orders[0].CreatedAt
	}
	return PriceBasis{
		MonthlyAmount:  fallback,
		FirstOrderDate: since,
		Source:         PriceSourceFallback,
	}, true
}
