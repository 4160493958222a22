package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ensureRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "billing_ensure_runs_total",
		Help: "Invoice window top-ups by outcome",
	}, []string{
		"outcome", // generated, window_full, no_price, unknown_subscriber, failed
	})

	invoicesGeneratedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "billing_invoices_generated_total",
		Help: "Invoices written by the scheduler",
	})

	invoicesSkippedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "billing_invoices_skipped_total",
		Help: "Due dates skipped because an invoice already existed",
	})

	dashboardViewsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "billing_dashboard_views_total",
		Help: "Financial dashboards served by global status",
	}, []string{
		"status", // ok, warning, overdue, degraded
	})

	dataAccessFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "billing_data_access_failures_total",
		Help: "Store failures swallowed or surfaced by the billing service",
	}, []string{
		"operation",
	})

	paymentsConfirmedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "billing_payments_confirmed_total",
		Help: "Payment confirmations by result",
	}, []string{
		"result", // paid, already_paid, not_found, failed
	})

	sweepDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "billing_sweep_duration_seconds",
		Help:    "Duration of a full invoice window sweep",
		Buckets: []float64{0.1, 0.5, 1, 5, 15, 30, 60, 300},
	})

	dbPoolConnections = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "billing_db_pool_connections",
		Help: "Database pool connections by state",
	}, []string{
		"state", // acquired, idle, max
	})
)

// RecordEnsureRun records one invoice window top-up
func RecordEnsureRun(outcome string, created, skipped int) {
	ensureRunsTotal.WithLabelValues(outcome).Inc()
	if created > 0 {
		invoicesGeneratedTotal.Add(float64(created))
	}
	if skipped > 0 {
		invoicesSkippedTotal.Add(float64(skipped))
	}
}

// RecordDashboardView records a served dashboard. Degraded views are
// counted under their own label since their status is a default.
func RecordDashboardView(status string, degraded bool) {
	if degraded {
		status = "degraded"
	}
	dashboardViewsTotal.WithLabelValues(status).Inc()
}

// RecordDataAccessFailure records a failed store operation
func RecordDataAccessFailure(operation string) {
	dataAccessFailuresTotal.WithLabelValues(operation).Inc()
}

// RecordPaymentConfirmation records a payment confirmation attempt
func RecordPaymentConfirmation(result string) {
	paymentsConfirmedTotal.WithLabelValues(result).Inc()
}

// ObserveSweep records how long a sweep took
func ObserveSweep(seconds float64) {
	sweepDuration.Observe(seconds)
}

// UpdateDBPoolStats publishes pool utilization
func UpdateDBPoolStats(acquired, idle, max int32) {
	dbPoolConnections.WithLabelValues("acquired").Set(float64(acquired))
	dbPoolConnections.WithLabelValues("idle").Set(float64(idle))
	dbPoolConnections.WithLabelValues("max").Set(float64(max))
}
