package fixtures

import (
	"time"

	"github.com/google/uuid"
	"github.com/leanttro/billing-service/internal/domain/models"
	"github.com/shopspring/decimal"
)

// Date returns midnight UTC of the given calendar day
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// InvoiceBuilder provides fluent API for building test invoices.
type InvoiceBuilder struct {
	invoice *models.Invoice
}

// NewInvoice creates a pending 100.00 invoice due 2024-03-10.
func NewInvoice() *InvoiceBuilder {
	return &InvoiceBuilder{
		invoice: &models.Invoice{
			ID:           uuid.New().String(),
			SubscriberID: uuid.New().String(),
			Amount:       decimal.NewFromInt(100),
			DueDate:      Date(2024, 3, 10),
			Status:       models.InvoiceStatusPending,
			CreatedAt:    Date(2024, 1, 15),
		},
	}
}

func (b *InvoiceBuilder) WithID(id string) *InvoiceBuilder {
	b.invoice.ID = id
	return b
}

func (b *InvoiceBuilder) WithSubscriberID(id string) *InvoiceBuilder {
	b.invoice.SubscriberID = id
	return b
}

func (b *InvoiceBuilder) WithAmount(amount string) *InvoiceBuilder {
	b.invoice.Amount = decimal.RequireFromString(amount)
	return b
}

func (b *InvoiceBuilder) WithDueDate(due time.Time) *InvoiceBuilder {
	b.invoice.DueDate = due
	return b
}

// Paid marks the invoice paid at the given instant
func (b *InvoiceBuilder) Paid(at time.Time) *InvoiceBuilder {
	b.invoice.Status = models.InvoiceStatusPaid
	b.invoice.PaidAt = &at
	return b
}

func (b *InvoiceBuilder) Build() *models.Invoice {
	inv := *b.invoice
	return &inv
}

// SubscriberBuilder provides fluent API for building test subscribers.
type SubscriberBuilder struct {
	subscriber *models.Subscriber
}

// NewSubscriber creates a subscriber registered on 2024-01-01.
func NewSubscriber() *SubscriberBuilder {
	id := uuid.New().String()
	return &SubscriberBuilder{
		subscriber: &models.Subscriber{
			ID:        id,
			Name:      "Test Subscriber",
			Email:     id[:8] + "@example.com",
			CreatedAt: Date(2024, 1, 1),
		},
	}
}

func (b *SubscriberBuilder) WithID(id string) *SubscriberBuilder {
	b.subscriber.ID = id
	return b
}

func (b *SubscriberBuilder) WithCreatedAt(t time.Time) *SubscriberBuilder {
	b.subscriber.CreatedAt = t
	return b
}

func (b *SubscriberBuilder) Build() *models.Subscriber {
	sub := *b.subscriber
	return &sub
}

// Order returns order pricing with the given recurring amount and no linked product price
func Order(amount string, createdAt time.Time) models.OrderPricing {
	return models.OrderPricing{
		OrderID:               uuid.New().String(),
		RecurringAmount:       decimal.RequireFromString(amount),
		ProductRecurringPrice: decimal.Zero,
		CreatedAt:             createdAt,
	}
}
