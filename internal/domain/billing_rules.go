package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const (
	DefaultWindowSize            = 12
	DefaultGracePeriodDays       = 30
	DefaultDueDay                = 10
	DefaultOverdueToleranceDays  = 3
	DefaultUpcomingNoticeDays    = 0
	DefaultAnnualDiscountPercent = 10
	DefaultTimezone              = "UTC"

	// MaxDueDay keeps every month able to hold the due day.
	MaxDueDay = 28
)

// BillingRules holds the business constants of recurring invoicing
type BillingRules struct {
	WindowSize           int
	GracePeriodDays      int
	DueDay               int
	OverdueToleranceDays int
	// UpcomingNoticeDays labels future invoices due within this many days
	// UPCOMING instead of OPEN_FUTURE. Zero turns the notice window off.
	UpcomingNoticeDays    int
	AnnualDiscountPercent decimal.Decimal
	Timezone              string
}

// DefaultBillingRules returns the rules the agency bills with today
func DefaultBillingRules() BillingRules {
	return BillingRules{
		WindowSize:            DefaultWindowSize,
		GracePeriodDays:       DefaultGracePeriodDays,
		DueDay:                DefaultDueDay,
		OverdueToleranceDays:  DefaultOverdueToleranceDays,
		UpcomingNoticeDays:    DefaultUpcomingNoticeDays,
		AnnualDiscountPercent: decimal.NewFromInt(DefaultAnnualDiscountPercent),
		Timezone:              DefaultTimezone,
	}
}

// Validate checks the rules can drive the scheduler
func (r BillingRules) Validate() error {
	if r.WindowSize < 1 {
		return validationError("window_size", "must be at least 1")
	}
	if r.DueDay < 1 || r.DueDay > MaxDueDay {
		return validationError("due_day", fmt.Sprintf("must be between 1 and %d", MaxDueDay))
	}
	if r.GracePeriodDays < 0 {
		return validationError("grace_period_days", "must not be negative")
	}
	if r.OverdueToleranceDays < 0 {
		return validationError("overdue_tolerance_days", "must not be negative")
	}
	if r.UpcomingNoticeDays < 0 {
		return validationError("upcoming_notice_days", "must not be negative")
	}
	if r.AnnualDiscountPercent.IsNegative() || r.AnnualDiscountPercent.GreaterThanOrEqual(decimal.NewFromInt(100)) {
		return validationError("annual_discount_percent", "must be in [0, 100)")
	}
	if _, err := time.LoadLocation(r.Timezone); err != nil {
		return validationError("timezone", err.Error())
	}
	return nil
}

// Location returns the time zone "today" is evaluated in. Falls back to UTC.
func (r BillingRules) Location() *time.Location {
	loc, err := time.LoadLocation(r.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// DiscountFactor returns the multiplier applied to the annual payoff quote (0.90 for 10%)
func (r BillingRules) DiscountFactor() decimal.Decimal {
	return decimal.NewFromInt(1).Sub(r.AnnualDiscountPercent.Div(decimal.NewFromInt(100)))
}

func validationError(field, message string) error {
	return NewDomainError(ErrorCodeValidationFailed, fmt.Sprintf("invalid billing rules: %s %s", field, message)).
		WithDetail("field", field)
}
