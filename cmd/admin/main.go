package main

import (
	"context"
	"fmt"
	"os"

	_ "time/tzdata"

	"github.com/leanttro/billing-service/internal/app"
	"github.com/leanttro/billing-service/internal/cli"
	"github.com/leanttro/billing-service/internal/config"
	"github.com/leanttro/billing-service/internal/services/ports"
	"github.com/leanttro/billing-service/pkg/logging"
)

func main() {
	if err := cli.NewRootCmd(openService).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// openService wires the billing service exactly as the server does
func openService(ctx context.Context) (ports.BillingService, func(), error) {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.Logger.Development, cfg.Logger.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("initialize logger: %w", err)
	}

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	release := func() {
		application.Close()
		_ = logger.Sync()
	}
	return application.Billing, release, nil
}
