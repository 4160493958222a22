// Package fakes provides an in-memory billing store with transaction
// semantics, for tests that need real state across calls.
package fakes

import (
	"bytes"
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/leanttro/billing-service/internal/domain"
	"github.com/leanttro/billing-service/internal/domain/models"
	"github.com/leanttro/billing-service/internal/domain/ports"
	"github.com/shopspring/decimal"
)

// Store implements ports.DBPort, ports.InvoiceRepository and
// ports.SubscriptionProvider in memory. A write transaction that returns an
// error restores the invoices as they were when it began.
type Store struct {
	mu          sync.Mutex
	subscribers map[uuid.UUID]*models.Subscriber
	orders      map[uuid.UUID][]models.OrderPricing
	fallback    decimal.Decimal
	invoices    []*models.Invoice

	// CreateErr, when set, is consulted before every insert
	CreateErr func(invoice *models.Invoice) error
	// BeforeCreate runs before every insert, outside the store lock
	BeforeCreate func(invoice *models.Invoice)
	// ListPendingErr fails ListPendingBySubscriber
	ListPendingErr error
	// ListBillableErr fails ListBillableSubscriberIDs
	ListBillableErr error
	// ListLimits records the page size of every ListBillableSubscriberIDs call
	ListLimits []int32
}

var (
	_ ports.DBPort               = (*Store)(nil)
	_ ports.InvoiceRepository    = (*Store)(nil)
	_ ports.SubscriptionProvider = (*Store)(nil)
)

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		subscribers: make(map[uuid.UUID]*models.Subscriber),
		orders:      make(map[uuid.UUID][]models.OrderPricing),
	}
}

// AddSubscriber registers a subscriber with its orders, oldest first
func (s *Store) AddSubscriber(sub *models.Subscriber, orders ...models.OrderPricing) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.MustParse(sub.ID)
	s.subscribers[id] = sub
	s.orders[id] = append(s.orders[id], orders...)
}

// SetFallbackPrice sets the price of the oldest active product
func (s *Store) SetFallbackPrice(price decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fallback = price
}

// Insert stores an invoice directly, bypassing hooks
func (s *Store) Insert(invoice *models.Invoice) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertLocked(invoice)
}

// Invoices returns a copy of a subscriber's invoices ordered by due date
func (s *Store) Invoices(subscriberID string) []*models.Invoice {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filterLocked(subscriberID, func(*models.Invoice) bool { return true })
}

// Querier has no pool behind it; the fake repositories ignore their DBTX
func (s *Store) Querier() ports.DBTX { return nil }

func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error {
	snapshot := s.snapshot()
	if err := fn(ctx, nil); err != nil {
		s.restore(snapshot)
		return err
	}
	return nil
}

func (s *Store) WithReadOnlyTransaction(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error {
	return fn(ctx, nil)
}

func (s *Store) Create(_ context.Context, _ ports.DBTX, invoice *models.Invoice) (bool, error) {
	if s.BeforeCreate != nil {
		s.BeforeCreate(invoice)
	}
	if s.CreateErr != nil {
		if err := s.CreateErr(invoice); err != nil {
			return false, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertLocked(invoice), nil
}

func (s *Store) GetByID(_ context.Context, _ ports.DBTX, id uuid.UUID) (*models.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, inv := range s.invoices {
		if inv.ID == id.String() {
			return clone(inv), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *Store) CountBySubscriberAndStatus(_ context.Context, _ ports.DBTX, subscriberID uuid.UUID, status models.InvoiceStatus) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.filterLocked(subscriberID.String(), func(inv *models.Invoice) bool { return inv.Status == status })), nil
}

func (s *Store) LatestDueDate(_ context.Context, _ ports.DBTX, subscriberID uuid.UUID) (*time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := s.filterLocked(subscriberID.String(), func(*models.Invoice) bool { return true })
	if len(all) == 0 {
		return nil, nil
	}
	latest := all[len(all)-1].DueDate
	return &latest, nil
}

func (s *Store) GetBySubscriberAndDueDate(_ context.Context, _ ports.DBTX, subscriberID uuid.UUID, dueDate time.Time) (*models.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, inv := range s.invoices {
		if inv.SubscriberID == subscriberID.String() && inv.DueDate.Equal(dueDate) {
			return clone(inv), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *Store) ListPendingBySubscriber(_ context.Context, _ ports.DBTX, subscriberID uuid.UUID) ([]*models.Invoice, error) {
	if s.ListPendingErr != nil {
		return nil, s.ListPendingErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filterLocked(subscriberID.String(), (*models.Invoice).IsPending), nil
}

func (s *Store) ListBySubscriber(_ context.Context, _ ports.DBTX, subscriberID uuid.UUID) ([]*models.Invoice, error) {
	return s.Invoices(subscriberID.String()), nil
}

func (s *Store) MarkPaid(_ context.Context, _ ports.DBTX, id uuid.UUID, paidAt time.Time) (*models.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, inv := range s.invoices {
		if inv.ID == id.String() && inv.IsPending() {
			inv.Status = models.InvoiceStatusPaid
			at := paidAt
			inv.PaidAt = &at
			return clone(inv), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *Store) GetSubscriber(_ context.Context, _ ports.DBTX, id uuid.UUID) (*models.Subscriber, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub, ok := s.subscribers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *sub
	return &copied, nil
}

func (s *Store) ListOrderPricing(_ context.Context, _ ports.DBTX, subscriberID uuid.UUID) ([]models.OrderPricing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.OrderPricing(nil), s.orders[subscriberID]...), nil
}

func (s *Store) FallbackRecurringPrice(context.Context, ports.DBTX) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fallback, nil
}

func (s *Store) ListBillableSubscriberIDs(_ context.Context, _ ports.DBTX, afterID uuid.UUID, limit int32) ([]uuid.UUID, error) {
	if s.ListBillableErr != nil {
		return nil, s.ListBillableErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ListLimits = append(s.ListLimits, limit)

	ids := make([]uuid.UUID, 0, len(s.orders))
	for id, orders := range s.orders {
		if len(orders) > 0 && bytes.Compare(id[:], afterID[:]) > 0 {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return bytes.Compare(ids[i][:], ids[j][:]) < 0 })
	if len(ids) > int(limit) {
		ids = ids[:limit]
	}
	return ids, nil
}

// ErrInjected is a convenient failure for hooks
var ErrInjected = errors.New("injected store failure")

func (s *Store) insertLocked(invoice *models.Invoice) bool {
	for _, inv := range s.invoices {
		if inv.SubscriberID == invoice.SubscriberID && inv.DueDate.Equal(invoice.DueDate) {
			return false
		}
	}
	s.invoices = append(s.invoices, clone(invoice))
	return true
}

func (s *Store) filterLocked(subscriberID string, keep func(*models.Invoice) bool) []*models.Invoice {
	out := make([]*models.Invoice, 0)
	for _, inv := range s.invoices {
		if inv.SubscriberID == subscriberID && keep(inv) {
			out = append(out, clone(inv))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueDate.Before(out[j].DueDate) })
	return out
}

func (s *Store) snapshot() []*models.Invoice {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := make([]*models.Invoice, len(s.invoices))
	for i, inv := range s.invoices {
		copied[i] = clone(inv)
	}
	return copied
}

func (s *Store) restore(invoices []*models.Invoice) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invoices = invoices
}

func clone(inv *models.Invoice) *models.Invoice {
	copied := *inv
	if inv.PaidAt != nil {
		at := *inv.PaidAt
		copied.PaidAt = &at
	}
	return &copied
}
