package billing

import (
	"time"

	"github.com/leanttro/billing-service/internal/domain"
	"github.com/leanttro/billing-service/internal/domain/models"
	"github.com/leanttro/billing-service/pkg/timeutil"
)

// InvoiceResponse is the wire form of an invoice
type InvoiceResponse struct {
	ID           string  `json:"id"`
	SubscriberID string  `json:"subscriber_id"`
	Amount       string  `json:"amount"`
	DueDate      string  `json:"due_date"`
	Status       string  `json:"status"`
	PaidAt       *string `json:"paid_at,omitempty"`
}

// DashboardInvoiceResponse is a pending invoice row of the dashboard
type DashboardInvoiceResponse struct {
	ID          string `json:"id"`
	DueDate     string `json:"due_date"`
	Amount      string `json:"amount"`
	StatusLabel string `json:"status_label"`
	Severity    string `json:"severity"`
	DisplayText string `json:"display_text"`
	DaysPastDue int    `json:"days_past_due"`
}

// DashboardResponse is the wire form of the financial dashboard
type DashboardResponse struct {
	SubscriberID          string                     `json:"subscriber_id"`
	AsOf                  string                     `json:"as_of"`
	StatusGlobal          string                     `json:"status_global"`
	Message               string                     `json:"message"`
	Blocked               bool                       `json:"blocked"`
	Degraded              bool                       `json:"degraded,omitempty"`
	Invoices              []DashboardInvoiceResponse `json:"invoices"`
	TotalPending          string                     `json:"total_pending"`
	TotalAnnualDiscounted string                     `json:"total_annual_discounted"`
	AnnualSavings         string                     `json:"annual_savings"`
}

// EnsureResponse reports a window top-up
type EnsureResponse struct {
	SubscriberID  string   `json:"subscriber_id"`
	Outcome       string   `json:"outcome"`
	PendingBefore int      `json:"pending_before"`
	Created       []string `json:"created_due_dates"`
	Skipped       int      `json:"skipped"`
}

// ConfirmPaymentRequest is the optional body of the payment webhook
type ConfirmPaymentRequest struct {
	PaidAt *time.Time `json:"paid_at"`
}

// ToInvoiceResponse converts an invoice to its wire form
func ToInvoiceResponse(inv *models.Invoice) InvoiceResponse {
	resp := InvoiceResponse{
		ID:           inv.ID,
		SubscriberID: inv.SubscriberID,
		Amount:       inv.Amount.StringFixed(2),
		DueDate:      timeutil.FormatDate(inv.DueDate),
		Status:       string(inv.Status),
	}
	if inv.PaidAt != nil {
		paidAt := inv.PaidAt.UTC().Format(time.RFC3339)
		resp.PaidAt = &paidAt
	}
	return resp
}

// ToDashboardResponse converts a dashboard to its wire form
func ToDashboardResponse(d *domain.Dashboard) DashboardResponse {
	rows := make([]DashboardInvoiceResponse, len(d.Invoices))
	for i, inv := range d.Invoices {
		rows[i] = DashboardInvoiceResponse{
			ID:          inv.ID,
			DueDate:     timeutil.FormatDate(inv.DueDate),
			Amount:      inv.Amount.StringFixed(2),
			StatusLabel: string(inv.StatusLabel),
			Severity:    string(inv.Severity),
			DisplayText: inv.DisplayText,
			DaysPastDue: inv.DaysPastDue,
		}
	}

	return DashboardResponse{
		SubscriberID:          d.SubscriberID,
		AsOf:                  timeutil.FormatDate(d.AsOf),
		StatusGlobal:          string(d.StatusGlobal),
		Message:               d.Message,
		Blocked:               d.Blocked(),
		Degraded:              d.Degraded,
		Invoices:              rows,
		TotalPending:          d.TotalPending.StringFixed(2),
		TotalAnnualDiscounted: d.TotalAnnualDiscounted.StringFixed(2),
		AnnualSavings:         d.AnnualSavings.StringFixed(2),
	}
}

// ToEnsureResponse converts a top-up result to its wire form
func ToEnsureResponse(r *domain.EnsureResult) EnsureResponse {
	created := make([]string, len(r.Created))
	for i, due := range r.CreatedDueDates() {
		created[i] = timeutil.FormatDate(due)
	}
	return EnsureResponse{
		SubscriberID:  r.SubscriberID,
		Outcome:       string(r.Outcome),
		PendingBefore: r.PendingBefore,
		Created:       created,
		Skipped:       r.Skipped,
	}
}
