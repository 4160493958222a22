package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Subscriber is a client with a recurring billing relationship
type Subscriber struct {
	ID        string
	Name      string
	Email     string
	CreatedAt time.Time
}

// OrderPricing is the slice of an order the scheduler needs to price a subscription.
// ProductRecurringPrice is zero when the order has no linked product.
type OrderPricing struct {
	OrderID               string
	RecurringAmount       decimal.Decimal
	ProductRecurringPrice decimal.Decimal
	CreatedAt             time.Time
}
