package billing

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/leanttro/billing-service/internal/domain"
	"github.com/leanttro/billing-service/internal/services/ports"
	"go.uber.org/zap"
)

// Handler serves the subscriber billing API
type Handler struct {
	service       ports.BillingService
	logger        *zap.Logger
	webhookSecret string
}

// NewHandler creates a billing API handler. Payment confirmations are
// refused unless webhookSecret is set.
func NewHandler(service ports.BillingService, logger *zap.Logger, webhookSecret string) *Handler {
	return &Handler{
		service:       service,
		logger:        logger,
		webhookSecret: webhookSecret,
	}
}

// Routes registers the API under r
func (h *Handler) Routes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/subscribers/{subscriberID}", func(r chi.Router) {
			r.Get("/dashboard", h.GetDashboard)
			r.Get("/invoices", h.ListInvoices)
			r.Post("/invoices/ensure", h.EnsureInvoices)
		})
		r.Post("/invoices/{invoiceID}/paid", h.ConfirmPayment)
	})
}

// GetDashboard handles GET /api/v1/subscribers/{subscriberID}/dashboard.
// It always answers 200; a degraded dashboard is flagged in the body.
func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	subscriberID := chi.URLParam(r, "subscriberID")

	dashboard := h.service.GetFinancialDashboard(r.Context(), subscriberID)
	if dashboard.Degraded {
		h.logger.Warn("Serving degraded dashboard",
			zap.String("subscriber_id", subscriberID),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	}

	h.respondJSON(w, http.StatusOK, ToDashboardResponse(dashboard))
}

// EnsureInvoices handles POST /api/v1/subscribers/{subscriberID}/invoices/ensure
func (h *Handler) EnsureInvoices(w http.ResponseWriter, r *http.Request) {
	subscriberID := chi.URLParam(r, "subscriberID")

	result, err := h.service.GenerateFutureInvoices(r.Context(), subscriberID)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	if result.Outcome == domain.EnsureOutcomeUnknownSubscriber {
		h.respondError(w, http.StatusNotFound, "subscriber not found")
		return
	}

	status := http.StatusOK
	if len(result.Created) > 0 {
		status = http.StatusCreated
	}
	h.respondJSON(w, status, ToEnsureResponse(result))
}

// ListInvoices handles GET /api/v1/subscribers/{subscriberID}/invoices
func (h *Handler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.service.ListInvoices(r.Context(), chi.URLParam(r, "subscriberID"))
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	resp := make([]InvoiceResponse, len(invoices))
	for i, inv := range invoices {
		resp[i] = ToInvoiceResponse(inv)
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{"invoices": resp})
}

// ConfirmPayment handles POST /api/v1/invoices/{invoiceID}/paid
func (h *Handler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	if !h.authenticateWebhook(r) {
		h.logger.Warn("Unauthorized payment webhook",
			zap.String("remote_addr", r.RemoteAddr),
		)
		h.respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req ConfirmPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var paidAt time.Time
	if req.PaidAt != nil {
		paidAt = *req.PaidAt
	}

	invoice, err := h.service.ConfirmPayment(r.Context(), chi.URLParam(r, "invoiceID"), paidAt)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, ToInvoiceResponse(invoice))
}

func (h *Handler) authenticateWebhook(r *http.Request) bool {
	if h.webhookSecret == "" {
		return false
	}
	got := r.Header.Get("X-Webhook-Secret")
	return subtle.ConstantTimeCompare([]byte(got), []byte(h.webhookSecret)) == 1
}

// respondServiceError maps domain errors to HTTP status codes
func (h *Handler) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case domain.IsNotFoundError(err):
		h.respondError(w, http.StatusNotFound, err.Error())
	case domain.IsDomainError(err, domain.ErrorCodeValidationFailed):
		h.respondError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("Billing request failed",
			zap.String("path", r.URL.Path),
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.Error(err),
		)
		h.respondError(w, http.StatusInternalServerError, "internal error")
	}
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

func (h *Handler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]interface{}{
		"success": false,
		"error":   message,
	})
}
