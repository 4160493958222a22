package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/leanttro/billing-service/internal/domain/models"
	"github.com/leanttro/billing-service/pkg/timeutil"
	"github.com/shopspring/decimal"
)

// AccountStatus summarizes a subscriber's payment health
type AccountStatus string

const (
	AccountStatusOK      AccountStatus = "ok"
	AccountStatusWarning AccountStatus = "warning"
	AccountStatusOverdue AccountStatus = "overdue"
)

// InvoiceLabel classifies a pending invoice by due-date proximity
type InvoiceLabel string

const (
	InvoiceLabelUpcoming   InvoiceLabel = "UPCOMING"
	InvoiceLabelDueToday   InvoiceLabel = "DUE_TODAY"
	InvoiceLabelOverdue    InvoiceLabel = "OVERDUE"
	InvoiceLabelOpenFuture InvoiceLabel = "OPEN_FUTURE"
)

// Severity drives how a client renders an invoice row
type Severity string

const (
	SeverityDanger  Severity = "danger"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
	SeverityMuted   Severity = "muted"
)

// Dashboard messages
const (
	MessageCurrent  = "CURRENT"
	MessageDueToday = "DUE TODAY"
	MessageBlocked  = "BLOCKED (OVERDUE INVOICE)"
)

// DashboardInvoice is a pending invoice annotated for display
type DashboardInvoice struct {
	ID          string
	DueDate     time.Time
	Amount      decimal.Decimal
	StatusLabel InvoiceLabel
	Severity    Severity
	DisplayText string
	// DaysPastDue is today minus the due date; negative for future invoices
	DaysPastDue int
}

// Dashboard is the read model of a subscriber's payment health
type Dashboard struct {
	SubscriberID          string
	AsOf                  time.Time
	StatusGlobal          AccountStatus
	Message               string
	Invoices              []DashboardInvoice
	TotalPending          decimal.Decimal
	TotalAnnualDiscounted decimal.Decimal
	AnnualSavings         decimal.Decimal
	// Degraded is set when the dashboard could not be read and shows defaults
	Degraded bool
}

// Blocked reports whether gated capabilities must be refused
func (d *Dashboard) Blocked() bool {
	return d.StatusGlobal == AccountStatusOverdue
}

// EmptyDashboard returns the "nothing owed" dashboard
func EmptyDashboard(subscriberID string, asOf time.Time) *Dashboard {
	return &Dashboard{
		SubscriberID:          subscriberID,
		AsOf:                  asOf,
		StatusGlobal:          AccountStatusOK,
		Message:               MessageCurrent,
		Invoices:              []DashboardInvoice{},
		TotalPending:          decimal.Zero,
		TotalAnnualDiscounted: decimal.Zero,
		AnnualSavings:         decimal.Zero,
	}
}

// BuildDashboard classifies pending invoices against today and totals them.
// Non-pending invoices are ignored. Overdue takes precedence over warning and
// is never downgraded by later invoices.
func BuildDashboard(subscriberID string, invoices []*models.Invoice, today time.Time, rules BillingRules) *Dashboard {
	today = timeutil.DateOf(today)
	d := EmptyDashboard(subscriberID, today)

	pending := make([]*models.Invoice, 0, len(invoices))
	for _, inv := range invoices {
		if inv != nil && inv.IsPending() {
			pending = append(pending, inv)
		}
	}
	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].DueDate.Before(pending[j].DueDate)
	})

	total := decimal.Zero
	for _, inv := range pending {
		delta := DaysBetween(inv.DueDate, today)
		row := classify(delta, rules)
		row.ID = inv.ID
		row.DueDate = timeutil.DateOf(inv.DueDate)
		row.Amount = inv.Amount

		switch row.StatusLabel {
		case InvoiceLabelOverdue:
			d.StatusGlobal = AccountStatusOverdue
			d.Message = MessageBlocked
		case InvoiceLabelDueToday:
			if d.StatusGlobal != AccountStatusOverdue {
				d.StatusGlobal = AccountStatusWarning
				d.Message = MessageDueToday
			}
		}

		d.Invoices = append(d.Invoices, row)
		total = total.Add(inv.Amount)
	}

	d.TotalPending = total
	d.TotalAnnualDiscounted = AnnualPayoff(total, rules)
	d.AnnualSavings = total.Sub(d.TotalAnnualDiscounted)
	return d
}

// AnnualPayoff returns the discounted lump sum for settling total at once, rounded to cents
func AnnualPayoff(total decimal.Decimal, rules BillingRules) decimal.Decimal {
	return total.Mul(rules.DiscountFactor()).Round(2)
}

// classify labels an invoice from delta = today - due date, in days
func classify(delta int, rules BillingRules) DashboardInvoice {
	row := DashboardInvoice{DaysPastDue: delta}

	switch {
	case delta > rules.OverdueToleranceDays:
		row.StatusLabel = InvoiceLabelOverdue
		row.Severity = SeverityDanger
		row.DisplayText = fmt.Sprintf("Overdue by %d days", delta)
	case delta >= 0:
		row.StatusLabel = InvoiceLabelDueToday
		row.Severity = SeverityWarning
		switch delta {
		case 0:
			row.DisplayText = "Due today"
		case 1:
			row.DisplayText = "Due 1 day ago"
		default:
			row.DisplayText = fmt.Sprintf("Due %d days ago", delta)
		}
	case -delta <= rules.UpcomingNoticeDays:
		row.StatusLabel = InvoiceLabelUpcoming
		row.Severity = SeverityInfo
		row.DisplayText = dueIn(-delta)
	default:
		row.StatusLabel = InvoiceLabelOpenFuture
		row.Severity = SeverityMuted
		row.DisplayText = dueIn(-delta)
	}
	return row
}

func dueIn(days int) string {
	if days == 1 {
		return "Due tomorrow"
	}
	return fmt.Sprintf("Due in %d days", days)
}
