package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/leanttro/billing-service/internal/domain"
	billinghandler "github.com/leanttro/billing-service/internal/handlers/billing"
	"github.com/leanttro/billing-service/internal/services/billing"
	"github.com/leanttro/billing-service/internal/services/ports"
	"github.com/leanttro/billing-service/pkg/timeutil"
	"github.com/spf13/cobra"
)

func newEnsureCmd(open ServiceFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "ensure <subscriber-id>",
		Short: "Top up a subscriber's window of pending invoices",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, open, func(ctx context.Context, svc ports.BillingService) error {
				result, err := svc.GenerateFutureInvoices(ctx, args[0])
				if err != nil {
					return fmt.Errorf("ensure failed: %w", err)
				}
				if result.Outcome == domain.EnsureOutcomeUnknownSubscriber {
					return fmt.Errorf("subscriber %s not found", args[0])
				}
				return printJSON(cmd.OutOrStdout(), billinghandler.ToEnsureResponse(result))
			})
		},
	}
}

func newDashboardCmd(open ServiceFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard <subscriber-id>",
		Short: "Show a subscriber's financial dashboard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, open, func(ctx context.Context, svc ports.BillingService) error {
				return printJSON(cmd.OutOrStdout(), billinghandler.ToDashboardResponse(svc.GetFinancialDashboard(ctx, args[0])))
			})
		},
	}
}

func newInvoicesCmd(open ServiceFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "invoices <subscriber-id>",
		Short: "List every invoice of a subscriber",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, open, func(ctx context.Context, svc ports.BillingService) error {
				invoices, err := svc.ListInvoices(ctx, args[0])
				if err != nil {
					return err
				}
				resp := make([]billinghandler.InvoiceResponse, len(invoices))
				for i, inv := range invoices {
					resp[i] = billinghandler.ToInvoiceResponse(inv)
				}
				return printJSON(cmd.OutOrStdout(), resp)
			})
		},
	}
}

func newSweepCmd(open ServiceFactory) *cobra.Command {
	var batchSize int

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Top up the invoice window of every billable subscriber",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if batchSize < 1 || batchSize > billing.MaxSweepBatchSize {
				return fmt.Errorf("invalid --batch-size %d: must be between 1 and %d", batchSize, billing.MaxSweepBatchSize)
			}

			return withService(cmd, open, func(ctx context.Context, svc ports.BillingService) error {
				result, err := svc.SweepFutureInvoices(ctx, batchSize)
				if err != nil {
					return fmt.Errorf("sweep aborted: %w", err)
				}
				if err := printJSON(cmd.OutOrStdout(), result); err != nil {
					return err
				}
				if result.Failed > 0 {
					return fmt.Errorf("sweep finished with %d failed subscriber(s)", result.Failed)
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&batchSize, "batch-size", billing.DefaultSweepBatchSize, fmt.Sprintf("subscribers per page, 1 to %d", billing.MaxSweepBatchSize))
	return cmd
}

func newPayCmd(open ServiceFactory) *cobra.Command {
	var paidAt string

	cmd := &cobra.Command{
		Use:   "pay <invoice-id>",
		Short: "Record the payment of an invoice",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			at, err := parsePaidAt(paidAt)
			if err != nil {
				return err
			}

			return withService(cmd, open, func(ctx context.Context, svc ports.BillingService) error {
				invoice, err := svc.ConfirmPayment(ctx, args[0], at)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), billinghandler.ToInvoiceResponse(invoice))
			})
		},
	}
	cmd.Flags().StringVar(&paidAt, "paid-at", "", "payment time in RFC 3339 or YYYY-MM-DD, defaults to now")
	return cmd
}

// parsePaidAt accepts a full timestamp or a bare date. Empty means now.
func parsePaidAt(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if at, err := time.Parse(time.RFC3339, value); err == nil {
		return at, nil
	}
	at, err := timeutil.ParseDate(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --paid-at %q: want RFC 3339 or YYYY-MM-DD", value)
	}
	return at, nil
}
