package observability

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
	probeTimeout    = 2 * time.Second
)

// Pinger is anything whose reachability can be probed, such as the database pool
type Pinger interface {
	Ping(ctx context.Context) error
}

// ProbeResult is the outcome of a single dependency probe
type ProbeResult struct {
	Status    string `json:"status"`
	LatencyMS int64  `json:"latency_ms"`
	Error     string `json:"error,omitempty"`
}

// HealthStatus is the body served on /health
type HealthStatus struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Probes    map[string]ProbeResult `json:"probes"`
}

// HealthChecker probes the invoice store. A nil pinger is reported as
// healthy so the process can run without a database in tests.
type HealthChecker struct {
	probes map[string]Pinger
}

func NewHealthChecker(db Pinger) *HealthChecker {
	h := &HealthChecker{probes: map[string]Pinger{}}
	if db != nil {
		h.probes["database"] = db
	}
	return h
}

func (h *HealthChecker) Check(ctx context.Context) HealthStatus {
	out := HealthStatus{
		Status:    statusHealthy,
		Timestamp: time.Now().UTC(),
		Probes:    make(map[string]ProbeResult, len(h.probes)),
	}

	for name, p := range h.probes {
		res := probe(ctx, p)
		if res.Status != statusHealthy {
			out.Status = statusUnhealthy
		}
		out.Probes[name] = res
	}
	return out
}

func probe(ctx context.Context, p Pinger) ProbeResult {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	started := time.Now()
	err := p.Ping(ctx)
	res := ProbeResult{Status: statusHealthy, LatencyMS: time.Since(started).Milliseconds()}
	if err != nil {
		res.Status = statusUnhealthy
		res.Error = err.Error()
	}
	return res
}

// HealthHandler answers 503 when any probe fails
func (h *HealthChecker) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := h.Check(r.Context())

		code := http.StatusOK
		if status.Status != statusHealthy {
			code = http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(status)
	}
}
