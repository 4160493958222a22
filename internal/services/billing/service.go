package billing

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/leanttro/billing-service/internal/domain"
	"github.com/leanttro/billing-service/internal/domain/ports"
	"github.com/leanttro/billing-service/pkg/observability"
	"github.com/leanttro/billing-service/pkg/timeutil"
)

// Service implements ports.BillingService
type Service struct {
	db       ports.DBPort
	invoices ports.InvoiceRepository
	provider ports.SubscriptionProvider
	rules    domain.BillingRules
	clock    timeutil.Clock
	logger   ports.Logger
}

// Option configures a Service
type Option func(*Service)

// WithClock overrides the wall clock, mainly for tests
func WithClock(clock timeutil.Clock) Option {
	return func(s *Service) {
		s.clock = clock
	}
}

// NewService creates a new billing service
func NewService(
	db ports.DBPort,
	invoices ports.InvoiceRepository,
	provider ports.SubscriptionProvider,
	rules domain.BillingRules,
	logger ports.Logger,
	opts ...Option,
) *Service {
	s := &Service{
		db:       db,
		invoices: invoices,
		provider: provider,
		rules:    rules,
		clock:    timeutil.Now,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Rules returns the billing rules the service runs with
func (s *Service) Rules() domain.BillingRules {
	return s.rules
}

// today is the current calendar date in the billing timezone
func (s *Service) today() time.Time {
	return timeutil.DateIn(s.clock(), s.rules.Location())
}

// parseID parses an identifier, reporting false for anything that is not a UUID
func parseID(id string) (uuid.UUID, bool) {
	parsed, err := uuid.Parse(id)
	if err != nil || parsed == uuid.Nil {
		return uuid.Nil, false
	}
	return parsed, true
}

// recordFailure counts a data-access failure under its operation
func recordFailure(err error) {
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) && domainErr.Code == domain.ErrorCodeDataAccess {
		if op, ok := domainErr.Details["operation"].(string); ok {
			observability.RecordDataAccessFailure(op)
			return
		}
	}
	observability.RecordDataAccessFailure("unknown")
}
