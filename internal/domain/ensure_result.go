package domain

import (
	"time"

	"github.com/leanttro/billing-service/internal/domain/models"
)

// EnsureOutcome describes how an invoice window top-up ended
type EnsureOutcome string

const (
	EnsureOutcomeGenerated         EnsureOutcome = "generated"
	EnsureOutcomeWindowFull        EnsureOutcome = "window_full"
	EnsureOutcomeNoPrice           EnsureOutcome = "no_price"
	EnsureOutcomeUnknownSubscriber EnsureOutcome = "unknown_subscriber"
	EnsureOutcomeFailed            EnsureOutcome = "failed"
)

// EnsureResult reports what one run of the scheduler did for a subscriber.
// Err is only set when Outcome is EnsureOutcomeFailed; nothing was committed then.
type EnsureResult struct {
	SubscriberID  string
	Outcome       EnsureOutcome
	PendingBefore int
	Created       []*models.Invoice
	// Skipped counts due dates that already had an invoice
	Skipped int
	Err     error
}

// Failed reports whether the run was rolled back
func (r *EnsureResult) Failed() bool {
	return r.Outcome == EnsureOutcomeFailed
}

// CreatedDueDates lists the due dates of the invoices written by this run
func (r *EnsureResult) CreatedDueDates() []time.Time {
	dates := make([]time.Time, len(r.Created))
	for i, inv := range r.Created {
		dates[i] = inv.DueDate
	}
	return dates
}

// SweepResult aggregates a top-up pass over many subscribers
type SweepResult struct {
	Processed       int            `json:"processed"`
	Generated       int            `json:"generated"`
	InvoicesCreated int            `json:"invoices_created"`
	Failed          int            `json:"failed"`
	Failures        []SweepFailure `json:"failures,omitempty"`
}

// SweepFailure identifies a subscriber whose top-up was rolled back
type SweepFailure struct {
	SubscriberID string `json:"subscriber_id"`
	Error        string `json:"error"`
}
