package cron

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/leanttro/billing-service/internal/domain"
	"github.com/leanttro/billing-service/internal/testutil/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const testSecret = "cron-secret"

func newTestHandler(t *testing.T) (*BillingHandler, *mocks.MockBillingService) {
	t.Helper()
	svc := new(mocks.MockBillingService)
	return NewBillingHandler(svc, zaptest.NewLogger(t), testSecret, 100), svc
}

func TestEnsureInvoices_Authentication(t *testing.T) {
	tests := []struct {
		name         string
		header       string
		value        string
		expectStatus int
	}{
		{"cron secret header", "X-Cron-Secret", testSecret, http.StatusOK},
		{"bearer token", "Authorization", "Bearer " + testSecret, http.StatusOK},
		{"wrong secret", "X-Cron-Secret", "nope", http.StatusUnauthorized},
		{"no credentials", "", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, svc := newTestHandler(t)
			svc.On("SweepFutureInvoices", mock.Anything, 100).Return(&domain.SweepResult{}, nil).Maybe()

			req := httptest.NewRequest(http.MethodPost, "/cron/ensure-invoices", nil)
			if tt.header != "" {
				req.Header.Set(tt.header, tt.value)
			}
			rec := httptest.NewRecorder()
			h.EnsureInvoices(rec, req)

			assert.Equal(t, tt.expectStatus, rec.Code)
		})
	}
}

func TestEnsureInvoices_EmptySecretRejectsEverything(t *testing.T) {
	svc := new(mocks.MockBillingService)
	h := NewBillingHandler(svc, zaptest.NewLogger(t), "", 100)

	req := httptest.NewRequest(http.MethodPost, "/cron/ensure-invoices", nil)
	req.Header.Set("Authorization", "Bearer ")
	rec := httptest.NewRecorder()
	h.EnsureInvoices(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	svc.AssertNotCalled(t, "SweepFutureInvoices", mock.Anything, mock.Anything)
}

func TestEnsureInvoices_PartialFailure(t *testing.T) {
	h, svc := newTestHandler(t)
	svc.On("SweepFutureInvoices", mock.Anything, 25).Return(&domain.SweepResult{
		Processed:       3,
		Generated:       2,
		InvoicesCreated: 24,
		Failed:          1,
		Failures:        []domain.SweepFailure{{SubscriberID: "sub-3", Error: "connection reset"}},
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/cron/ensure-invoices", strings.NewReader(`{"batch_size":25}`))
	req.Header.Set("X-Cron-Secret", testSecret)
	rec := httptest.NewRecorder()
	h.EnsureInvoices(rec, req)

	assert.Equal(t, http.StatusPartialContent, rec.Code)

	var resp EnsureInvoicesResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.False(t, resp.Success)
	assert.Equal(t, 3, resp.Processed)
	assert.Equal(t, 2, resp.Generated)
	assert.Equal(t, 24, resp.InvoicesCreated)
	assert.Equal(t, 1, resp.FailureCount)
	assert.Equal(t, []string{"sub-3: connection reset"}, resp.Errors)
	svc.AssertExpectations(t)
}

func TestEnsureInvoices_BatchSizeValidation(t *testing.T) {
	for _, body := range []string{`{"batch_size":0}`, `{"batch_size":5000}`, `{"batch_size":`} {
		h, svc := newTestHandler(t)

		req := httptest.NewRequest(http.MethodPost, "/cron/ensure-invoices", strings.NewReader(body))
		req.Header.Set("X-Cron-Secret", testSecret)
		rec := httptest.NewRecorder()
		h.EnsureInvoices(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		svc.AssertNotCalled(t, "SweepFutureInvoices", mock.Anything, mock.Anything)
	}
}

func TestEnsureInvoices_SweepAborted(t *testing.T) {
	h, svc := newTestHandler(t)
	svc.On("SweepFutureInvoices", mock.Anything, 100).
		Return(&domain.SweepResult{}, domain.DataAccessError("list_billable_subscribers", errors.New("down")))

	req := httptest.NewRequest(http.MethodPost, "/cron/ensure-invoices", nil)
	req.Header.Set("X-Cron-Secret", testSecret)
	rec := httptest.NewRecorder()
	h.EnsureInvoices(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "down")
}

func TestHealthCheck(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.HealthCheck(rec, httptest.NewRequest(http.MethodGet, "/cron/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}
