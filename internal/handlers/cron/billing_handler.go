package cron

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/leanttro/billing-service/internal/services/billing"
	"github.com/leanttro/billing-service/internal/services/ports"
	"go.uber.org/zap"
)

const defaultTimeout = 10 * time.Minute

// BillingHandler handles cron job endpoints for invoice window top-ups
type BillingHandler struct {
	billingService ports.BillingService
	logger         *zap.Logger
	cronSecret     string // Secret token for authenticating cron requests
	batchSize      int
}

// NewBillingHandler creates a new billing cron handler
func NewBillingHandler(
	billingService ports.BillingService,
	logger *zap.Logger,
	cronSecret string,
	batchSize int,
) *BillingHandler {
	return &BillingHandler{
		billingService: billingService,
		logger:         logger,
		cronSecret:     cronSecret,
		batchSize:      batchSize,
	}
}

// EnsureInvoicesRequest represents the optional request body of a sweep
type EnsureInvoicesRequest struct {
	BatchSize *int `json:"batch_size"`
}

// EnsureInvoicesResponse represents the outcome of a sweep
type EnsureInvoicesResponse struct {
	Success         bool     `json:"success"`
	Processed       int      `json:"processed"`
	Generated       int      `json:"generated"`
	InvoicesCreated int      `json:"invoices_created"`
	FailureCount    int      `json:"failure_count"`
	Errors          []string `json:"errors,omitempty"`
	ProcessedAt     string   `json:"processed_at"`
}

// EnsureInvoices handles the POST /cron/ensure-invoices endpoint.
// It tops up the invoice window of every billable subscriber.
func (h *BillingHandler) EnsureInvoices(w http.ResponseWriter, r *http.Request) {
	h.logger.Info("Invoice sweep triggered",
		zap.String("remote_addr", r.RemoteAddr),
		zap.String("user_agent", r.UserAgent()),
	)

	if !h.authenticateRequest(r) {
		h.logger.Warn("Unauthorized cron request",
			zap.String("remote_addr", r.RemoteAddr),
		)
		h.respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req EnsureInvoicesRequest
	if r.Body != nil && r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	batchSize := h.batchSize
	if req.BatchSize != nil {
		if *req.BatchSize < 1 || *req.BatchSize > billing.MaxSweepBatchSize {
			h.respondError(w, http.StatusBadRequest, fmt.Sprintf("batch_size must be between 1 and %d", billing.MaxSweepBatchSize))
			return
		}
		batchSize = *req.BatchSize
	}

	// detached from the request so a dropped scheduler connection does not abort the sweep
	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), defaultTimeout)
	defer cancel()

	result, err := h.billingService.SweepFutureInvoices(ctx, batchSize)
	if err != nil {
		h.logger.Error("Invoice sweep aborted", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "sweep aborted")
		return
	}

	resp := EnsureInvoicesResponse{
		Success:         result.Failed == 0,
		Processed:       result.Processed,
		Generated:       result.Generated,
		InvoicesCreated: result.InvoicesCreated,
		FailureCount:    result.Failed,
		ProcessedAt:     time.Now().UTC().Format(time.RFC3339),
	}
	for _, f := range result.Failures {
		resp.Errors = append(resp.Errors, f.SubscriberID+": "+f.Error)
	}

	status := http.StatusOK
	if !resp.Success {
		status = http.StatusPartialContent
	}
	h.respondJSON(w, status, resp)
}

// HealthCheck handles GET /cron/health for monitoring
func (h *BillingHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// authenticateRequest accepts the X-Cron-Secret header or a bearer token
func (h *BillingHandler) authenticateRequest(r *http.Request) bool {
	if h.cronSecret == "" {
		return false
	}
	if secretEqual(r.Header.Get("X-Cron-Secret"), h.cronSecret) {
		return true
	}
	return secretEqual(r.Header.Get("Authorization"), "Bearer "+h.cronSecret)
}

func secretEqual(got, want string) bool {
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}

func (h *BillingHandler) respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

// respondError sends an error response
func (h *BillingHandler) respondError(w http.ResponseWriter, statusCode int, message string) {
	h.respondJSON(w, statusCode, map[string]interface{}{
		"success": false,
		"error":   message,
	})
}
