package observability

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MountOperational registers /metrics, /health and /ready on a router
func MountOperational(r chi.Router, healthChecker *HealthChecker) {
	r.Handle("/metrics", promhttp.Handler())

	if healthChecker != nil {
		r.Get("/health", healthChecker.HealthHandler())
	}

	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})
}
