// Package app wires configuration, storage and the billing service for the
// server and admin binaries.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/leanttro/billing-service/internal/adapters/database"
	"github.com/leanttro/billing-service/internal/adapters/postgres"
	"github.com/leanttro/billing-service/internal/config"
	"github.com/leanttro/billing-service/internal/services/billing"
	"github.com/leanttro/billing-service/pkg/logging"
	"github.com/leanttro/billing-service/pkg/resilience"
	"go.uber.org/zap"
)

// connectAttempts bounds how long startup waits for the database
const connectAttempts = 5

// App holds the long-lived dependencies shared by every entrypoint
type App struct {
	Config  *config.Config
	Logger  *zap.Logger
	DB      *database.PostgreSQLAdapter
	Billing *billing.Service
}

// New connects to the database and builds the billing service
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	db, err := OpenDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	executor := postgres.NewDBExecutor(db.Pool())
	svc := billing.NewService(
		executor,
		postgres.NewInvoiceRepository(executor),
		postgres.NewSubscriptionProvider(executor),
		cfg.Billing.Rules,
		logging.NewZapLogger(logger),
	)

	logger.Info("Billing service initialized",
		zap.Int("window_size", cfg.Billing.Rules.WindowSize),
		zap.Int("due_day", cfg.Billing.Rules.DueDay),
		zap.String("timezone", cfg.Billing.Rules.Timezone),
	)

	return &App{
		Config:  cfg,
		Logger:  logger,
		DB:      db,
		Billing: svc,
	}, nil
}

// OpenDatabase resolves the database password and opens the connection pool
func OpenDatabase(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*database.PostgreSQLAdapter, error) {
	if err := resolveDBPassword(ctx, cfg, logger); err != nil {
		return nil, err
	}

	dbCfg := database.DefaultPostgreSQLConfig(
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Database,
	)
	dbCfg.SSLMode = cfg.Database.SSLMode
	dbCfg.MaxConns = cfg.Database.MaxConns
	dbCfg.MinConns = cfg.Database.MinConns

	var db *database.PostgreSQLAdapter
	err := resilience.Retry(ctx, connectAttempts, resilience.ConnectBackoff(),
		func(attempt int, err error, delay time.Duration) {
			logger.Warn("Database not reachable, retrying",
				zap.Int("attempt", attempt),
				zap.Duration("delay", delay),
				zap.Error(err),
			)
		},
		func(ctx context.Context) error {
			var err error
			db, err = database.NewPostgreSQLAdapter(ctx, dbCfg, logger)
			return err
		})
	if err != nil {
		return nil, fmt.Errorf("initialize database: %w", err)
	}
	return db, nil
}

// Close releases the database pool
func (a *App) Close() {
	a.DB.Close()
}
