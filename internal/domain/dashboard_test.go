package domain

import (
	"testing"
	"time"

	"github.com/leanttro/billing-service/internal/domain/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingInvoice(id string, due time.Time, amount string) *models.Invoice {
	return &models.Invoice{
		ID:           id,
		SubscriberID: "sub-1",
		Amount:       decimal.RequireFromString(amount),
		DueDate:      due,
		Status:       models.InvoiceStatusPending,
	}
}

// TestBuildDashboard_Classification tests single-invoice status outcomes
func TestBuildDashboard_Classification(t *testing.T) {
	tests := []struct {
		name          string
		due           time.Time
		today         time.Time
		noticeDays    int
		expectStatus  AccountStatus
		expectMessage string
		expectLabel   InvoiceLabel
		expectText    string
	}{
		{
			name:          "four days late is overdue",
			due:           date(2024, 3, 10),
			today:         date(2024, 3, 14),
			expectStatus:  AccountStatusOverdue,
			expectMessage: MessageBlocked,
			expectLabel:   InvoiceLabelOverdue,
			expectText:    "Overdue by 4 days",
		},
		{
			name:          "two days late is a warning",
			due:           date(2024, 3, 10),
			today:         date(2024, 3, 12),
			expectStatus:  AccountStatusWarning,
			expectMessage: MessageDueToday,
			expectLabel:   InvoiceLabelDueToday,
			expectText:    "Due 2 days ago",
		},
		{
			name:          "three days late is still within tolerance",
			due:           date(2024, 3, 10),
			today:         date(2024, 3, 13),
			expectStatus:  AccountStatusWarning,
			expectMessage: MessageDueToday,
			expectLabel:   InvoiceLabelDueToday,
			expectText:    "Due 3 days ago",
		},
		{
			name:          "due today",
			due:           date(2024, 3, 10),
			today:         date(2024, 3, 10),
			expectStatus:  AccountStatusWarning,
			expectMessage: MessageDueToday,
			expectLabel:   InvoiceLabelDueToday,
			expectText:    "Due today",
		},
		{
			name:          "far future invoice does not affect status",
			due:           date(2024, 4, 1),
			today:         date(2024, 3, 12),
			expectStatus:  AccountStatusOK,
			expectMessage: MessageCurrent,
			expectLabel:   InvoiceLabelOpenFuture,
			expectText:    "Due in 20 days",
		},
		{
			name:          "future invoice is open by default",
			due:           date(2024, 3, 15),
			today:         date(2024, 3, 12),
			expectStatus:  AccountStatusOK,
			expectMessage: MessageCurrent,
			expectLabel:   InvoiceLabelOpenFuture,
			expectText:    "Due in 3 days",
		},
		{
			name:          "invoice inside the notice window is upcoming",
			due:           date(2024, 3, 15),
			today:         date(2024, 3, 12),
			noticeDays:    7,
			expectStatus:  AccountStatusOK,
			expectMessage: MessageCurrent,
			expectLabel:   InvoiceLabelUpcoming,
			expectText:    "Due in 3 days",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules := DefaultBillingRules()
			rules.UpcomingNoticeDays = tt.noticeDays

			d := BuildDashboard("sub-1", []*models.Invoice{pendingInvoice("inv-1", tt.due, "100.00")}, tt.today, rules)

			assert.Equal(t, tt.expectStatus, d.StatusGlobal)
			assert.Equal(t, tt.expectMessage, d.Message)
			require.Len(t, d.Invoices, 1)
			assert.Equal(t, tt.expectLabel, d.Invoices[0].StatusLabel)
			assert.Equal(t, tt.expectText, d.Invoices[0].DisplayText)
		})
	}
}

func TestBuildDashboard_OverdueIsNeverDowngraded(t *testing.T) {
	today := date(2024, 3, 14)
	invoices := []*models.Invoice{
		pendingInvoice("inv-3", date(2024, 4, 10), "100"),
		pendingInvoice("inv-2", date(2024, 3, 12), "100"), // due 2 days ago
		pendingInvoice("inv-1", date(2024, 2, 10), "100"), // overdue
	}

	d := BuildDashboard("sub-1", invoices, today, DefaultBillingRules())

	assert.Equal(t, AccountStatusOverdue, d.StatusGlobal)
	assert.Equal(t, MessageBlocked, d.Message)
	assert.True(t, d.Blocked())

	require.Len(t, d.Invoices, 3)
	assert.Equal(t, "inv-1", d.Invoices[0].ID, "invoices are ordered by due date")
	assert.Equal(t, InvoiceLabelOverdue, d.Invoices[0].StatusLabel)
	assert.Equal(t, InvoiceLabelDueToday, d.Invoices[1].StatusLabel)
	assert.Equal(t, InvoiceLabelOpenFuture, d.Invoices[2].StatusLabel)
	assert.Equal(t, SeverityDanger, d.Invoices[0].Severity)
}

func TestBuildDashboard_DiscountMath(t *testing.T) {
	invoices := make([]*models.Invoice, 0, 10)
	for i := 0; i < 10; i++ {
		invoices = append(invoices, pendingInvoice("inv", date(2024, 4, 10).AddDate(0, i, 0), "100.00"))
	}

	d := BuildDashboard("sub-1", invoices, date(2024, 3, 1), DefaultBillingRules())

	assert.Equal(t, "1000.00", d.TotalPending.StringFixed(2))
	assert.Equal(t, "900.00", d.TotalAnnualDiscounted.StringFixed(2))
	assert.Equal(t, "100.00", d.AnnualSavings.StringFixed(2))
}

func TestAnnualPayoff_RoundsToCents(t *testing.T) {
	rules := DefaultBillingRules()

	payoff := AnnualPayoff(decimal.RequireFromString("99.99"), rules)
	assert.Equal(t, "89.99", payoff.StringFixed(2))

	rules.AnnualDiscountPercent = decimal.NewFromInt(15)
	assert.Equal(t, "850.00", AnnualPayoff(decimal.NewFromInt(1000), rules).StringFixed(2))
}

func TestBuildDashboard_NoPendingInvoices(t *testing.T) {
	paidAt := date(2024, 3, 9)
	paid := &models.Invoice{
		ID:      "inv-paid",
		Amount:  decimal.NewFromInt(100),
		DueDate: date(2024, 1, 10),
		Status:  models.InvoiceStatusPaid,
		PaidAt:  &paidAt,
	}

	d := BuildDashboard("sub-1", []*models.Invoice{paid}, date(2024, 3, 14), DefaultBillingRules())

	assert.Equal(t, AccountStatusOK, d.StatusGlobal)
	assert.Equal(t, MessageCurrent, d.Message)
	assert.Empty(t, d.Invoices)
	assert.True(t, d.TotalPending.IsZero())
	assert.True(t, d.TotalAnnualDiscounted.IsZero())
	assert.True(t, d.AnnualSavings.IsZero())
	assert.False(t, d.Blocked())
}

func TestBuildDashboard_DefaultRulesNeverEmitUpcoming(t *testing.T) {
	today := date(2024, 3, 12)
	invoices := make([]*models.Invoice, 0, 7)
	for days := 1; days <= 7; days++ {
		invoices = append(invoices, pendingInvoice("inv", today.AddDate(0, 0, days), "10"))
	}

	d := BuildDashboard("sub-1", invoices, today, DefaultBillingRules())

	assert.Equal(t, AccountStatusOK, d.StatusGlobal)
	for _, row := range d.Invoices {
		assert.Equal(t, InvoiceLabelOpenFuture, row.StatusLabel, "due %s", row.DueDate)
		assert.Equal(t, SeverityMuted, row.Severity)
	}
}

func TestBuildDashboard_CustomTolerance(t *testing.T) {
	rules := DefaultBillingRules()
	rules.OverdueToleranceDays = 0

	d := BuildDashboard("sub-1", []*models.Invoice{pendingInvoice("inv-1", date(2024, 3, 10), "50")}, date(2024, 3, 11), rules)

	assert.Equal(t, AccountStatusOverdue, d.StatusGlobal)
}

func TestEmptyDashboard(t *testing.T) {
	d := EmptyDashboard("sub-1", date(2024, 3, 14))

	assert.Equal(t, AccountStatusOK, d.StatusGlobal)
	assert.Equal(t, MessageCurrent, d.Message)
	assert.NotNil(t, d.Invoices)
	assert.False(t, d.Degraded)
}
