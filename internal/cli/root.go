// Package cli implements the billing admin command line.
package cli

import (
	"context"
	"encoding/json"
	"io"

	"github.com/leanttro/billing-service/internal/services/ports"
	"github.com/spf13/cobra"
)

// ServiceFactory opens the billing service; the returned func releases it
type ServiceFactory func(ctx context.Context) (ports.BillingService, func(), error)

// NewRootCmd builds the admin command tree
func NewRootCmd(open ServiceFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "billing-admin",
		Short:         "Operate the recurring invoice scheduler",
		Long:          "billing-admin tops up invoice windows, shows financial dashboards and records payments against the billing database.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newEnsureCmd(open))
	cmd.AddCommand(newDashboardCmd(open))
	cmd.AddCommand(newInvoicesCmd(open))
	cmd.AddCommand(newSweepCmd(open))
	cmd.AddCommand(newPayCmd(open))
	return cmd
}

// withService opens the service for the duration of one command
func withService(cmd *cobra.Command, open ServiceFactory, fn func(ctx context.Context, svc ports.BillingService) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	svc, release, err := open(ctx)
	if err != nil {
		return err
	}
	defer release()
	return fn(ctx, svc)
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
