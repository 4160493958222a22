package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	_ "time/tzdata"

	"go.uber.org/zap"

	"github.com/leanttro/billing-service/internal/app"
	"github.com/leanttro/billing-service/internal/config"
	cronHandler "github.com/leanttro/billing-service/internal/handlers/cron"
	"github.com/leanttro/billing-service/pkg/logging"
	"github.com/leanttro/billing-service/pkg/middleware"
	"github.com/leanttro/billing-service/pkg/shutdown"
)

const (
	version             = "0.1.0"
	poolMonitorInterval = 30 * time.Second
	apiRequestTimeout   = 30 * time.Second
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "billing-service: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.Logger.Development, cfg.Logger.Level)
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	logger.Info("Starting billing service",
		zap.String("version", version),
		zap.Int("port", cfg.Server.Port),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	application.DB.StartPoolMonitoring(ctx, poolMonitorInterval)

	shutdownMgr := shutdown.NewManager(logger, cfg.Server.ShutdownTimeout)
	// Components stop in reverse registration order: the pool closes last.
	shutdownMgr.RegisterNoErr("database", application.Close)

	var limiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		limiter = middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
		shutdownMgr.RegisterNoErr("rate-limiter", limiter.Shutdown)
		logger.Info("Rate limiting enabled",
			zap.Float64("requests_per_second", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
	}

	router := app.NewRouter(application.Billing, app.RouterConfig{
		CronSecret:     cfg.Security.CronSecret,
		WebhookSecret:  cfg.Security.WebhookSecret,
		SweepBatchSize: cfg.Billing.SweepBatchSize,
		RateLimiter:    limiter,
		Health:         application.DB.Pool(),
		RequestTimeout: apiRequestTimeout,
		Development:    cfg.Logger.Development,
	}, logger)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	shutdownMgr.RegisterHTTPServer("http-server", server)

	if cfg.Billing.SweepSchedule != "" {
		scheduler, err := cronHandler.NewSweepScheduler(application.Billing, cfg.Billing.SweepSchedule, cfg.Billing.SweepBatchSize, logger)
		if err != nil {
			application.Close()
			return err
		}
		scheduler.Start()
		shutdownMgr.Register("sweep-scheduler", scheduler.Shutdown)
		logger.Info("Invoice sweep scheduled",
			zap.String("schedule", cfg.Billing.SweepSchedule),
			zap.Time("next_run", scheduler.NextRun()),
		)
	}

	// A listener failure triggers the same graceful shutdown as a signal.
	waitCtx, stopWaiting := context.WithCancelCause(ctx)
	defer stopWaiting(nil)
	go func() {
		logger.Info("HTTP server listening", zap.String("address", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server failed", zap.Error(err))
			stopWaiting(fmt.Errorf("http server: %w", err))
		}
	}()

	shutdownErr := shutdownMgr.WaitForShutdown(waitCtx)
	if cause := context.Cause(waitCtx); cause != nil && !errors.Is(cause, context.Canceled) {
		return errors.Join(cause, shutdownErr)
	}
	if shutdownErr != nil {
		return shutdownErr
	}
	logger.Info("Billing service stopped")
	return nil
}
