package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/leanttro/billing-service/internal/adapters/secrets"
	"github.com/leanttro/billing-service/internal/config"
	"github.com/leanttro/billing-service/internal/domain"
	"github.com/leanttro/billing-service/internal/testutil/fixtures"
	"github.com/leanttro/billing-service/internal/testutil/mocks"
	"github.com/leanttro/billing-service/pkg/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

func TestNewRouter_Routes(t *testing.T) {
	svc := new(mocks.MockBillingService)
	svc.On("GetFinancialDashboard", mock.Anything, "sub-1").
		Return(domain.EmptyDashboard("sub-1", fixtures.Date(2024, 3, 14)))

	router := NewRouter(svc, RouterConfig{CronSecret: "c", WebhookSecret: "w", SweepBatchSize: 100}, zaptest.NewLogger(t))

	tests := []struct {
		method string
		path   string
		expect int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/ready", http.StatusOK},
		{http.MethodGet, "/metrics", http.StatusOK},
		{http.MethodGet, "/cron/health", http.StatusOK},
		{http.MethodPost, "/cron/ensure-invoices", http.StatusUnauthorized},
		{http.MethodGet, "/api/v1/subscribers/sub-1/dashboard", http.StatusOK},
		{http.MethodPost, "/api/v1/invoices/inv-1/paid", http.StatusUnauthorized},
		{http.MethodGet, "/api/v1/unknown", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.expect, rec.Code)
			assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
		})
	}
}

func TestNewRouter_RateLimitsOnlyTheAPI(t *testing.T) {
	svc := new(mocks.MockBillingService)
	svc.On("GetFinancialDashboard", mock.Anything, "sub-1").
		Return(domain.EmptyDashboard("sub-1", fixtures.Date(2024, 3, 14)))

	limiter := middleware.NewRateLimiter(0.001, 1)
	defer limiter.Shutdown()
	router := NewRouter(svc, RouterConfig{RateLimiter: limiter, SweepBatchSize: 100}, zaptest.NewLogger(t))

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/subscribers/sub-1/dashboard", nil))
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests}, codes)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProviderConfig(t *testing.T) {
	pc := providerConfig(config.SecretsConfig{Backend: "aws", AWSRegion: "sa-east-1", AWSEndpoint: "http://localstack:4566"})
	require.NotNil(t, pc.AWS)
	assert.Equal(t, "sa-east-1", pc.AWS.Region)
	assert.Equal(t, "http://localstack:4566", pc.AWS.Endpoint)
	assert.Nil(t, pc.Vault)

	pc = providerConfig(config.SecretsConfig{Backend: "vault", VaultAddress: "https://vault:8200", VaultToken: "t", VaultMountPath: "kv"})
	require.NotNil(t, pc.Vault)
	assert.Equal(t, "kv", pc.Vault.MountPath)
	assert.Equal(t, "t", pc.Vault.Token)
}

func TestResolveDBPassword(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "db-password"), []byte("from-file\n"), 0o600))

	t.Run("no secret configured keeps the env password", func(t *testing.T) {
		cfg := &config.Config{Database: config.DatabaseConfig{Password: "env"}}
		require.NoError(t, resolveDBPassword(context.Background(), cfg, zap.NewNop()))
		assert.Equal(t, "env", cfg.Database.Password)
	})

	t.Run("file backend", func(t *testing.T) {
		cfg := &config.Config{Secrets: config.SecretsConfig{
			Backend:          secrets.BackendFile,
			FileBase:         dir,
			DBPasswordSecret: "db-password",
		}}
		require.NoError(t, resolveDBPassword(context.Background(), cfg, zap.NewNop()))
		assert.Equal(t, "from-file", cfg.Database.Password)
	})

	t.Run("missing secret", func(t *testing.T) {
		cfg := &config.Config{Secrets: config.SecretsConfig{
			Backend:          secrets.BackendFile,
			FileBase:         dir,
			DBPasswordSecret: "nope",
		}}
		assert.Error(t, resolveDBPassword(context.Background(), cfg, zap.NewNop()))
	})
}
