package app

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	billinghandler "github.com/leanttro/billing-service/internal/handlers/billing"
	cronhandler "github.com/leanttro/billing-service/internal/handlers/cron"
	"github.com/leanttro/billing-service/internal/services/ports"
	"github.com/leanttro/billing-service/pkg/middleware"
	"github.com/leanttro/billing-service/pkg/observability"
	"go.uber.org/zap"
)

// RouterConfig carries what the HTTP surface needs besides the service
type RouterConfig struct {
	CronSecret     string
	WebhookSecret  string
	SweepBatchSize int
	RateLimiter    *middleware.RateLimiter // nil disables rate limiting
	Health         observability.Pinger
	RequestTimeout time.Duration
	Development    bool
}

// NewRouter builds the chi router serving the billing API, the cron
// endpoint and the operational endpoints.
func NewRouter(svc ports.BillingService, cfg RouterConfig, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(observability.HTTPMetrics)
	r.Use(middleware.SecurityHeaders(cfg.Development))

	observability.MountOperational(r, observability.NewHealthChecker(cfg.Health))

	cron := cronhandler.NewBillingHandler(svc, logger, cfg.CronSecret, cfg.SweepBatchSize)
	r.Route("/cron", func(r chi.Router) {
		r.Post("/ensure-invoices", cron.EnsureInvoices)
		r.Get("/health", cron.HealthCheck)
	})

	r.Group(func(r chi.Router) {
		if cfg.RateLimiter != nil {
			r.Use(cfg.RateLimiter.Middleware)
		}
		if cfg.RequestTimeout > 0 {
			r.Use(chimiddleware.Timeout(cfg.RequestTimeout))
		}
		billinghandler.NewHandler(svc, logger, cfg.WebhookSecret).Routes(r)
	})

	return r
}
