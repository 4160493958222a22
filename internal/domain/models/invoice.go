package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the payment state of an invoice
type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusPaid    InvoiceStatus = "paid" // terminal
)

// Invoice is one monthly charge owed by a subscriber.
// DueDate carries no time component; it is always midnight UTC.
type Invoice struct {
	ID           string
	SubscriberID string
	Amount       decimal.Decimal
	DueDate      time.Time
	Status       InvoiceStatus
	CreatedAt    time.Time
	PaidAt       *time.Time
}

// IsPending returns true if the invoice still awaits payment
func (i *Invoice) IsPending() bool {
	return i.Status == InvoiceStatusPending
}

// IsPaid returns true if the invoice has been settled
func (i *Invoice) IsPaid() bool {
	return i.Status == InvoiceStatusPaid
}
