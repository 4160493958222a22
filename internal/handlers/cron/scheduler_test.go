package cron

import (
	"context"
	"testing"
	"time"

	"github.com/leanttro/billing-service/internal/domain"
	"github.com/leanttro/billing-service/internal/testutil/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestNewSweepScheduler_RejectsBadSchedule(t *testing.T) {
	_, err := NewSweepScheduler(new(mocks.MockBillingService), "every tuesday", 100, zaptest.NewLogger(t))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "every tuesday")
}

func TestSweepScheduler_Lifecycle(t *testing.T) {
	svc := new(mocks.MockBillingService)
	s, err := NewSweepScheduler(svc, "@daily", 50, zaptest.NewLogger(t))
	require.NoError(t, err)

	s.Start()
	next := s.NextRun()
	assert.False(t, next.IsZero())
	assert.True(t, next.After(time.Now()))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, s.Shutdown(ctx))
	svc.AssertNotCalled(t, "SweepFutureInvoices", mock.Anything, mock.Anything)
}

func TestSweepScheduler_RunUsesBatchSize(t *testing.T) {
	svc := new(mocks.MockBillingService)
	svc.On("SweepFutureInvoices", mock.Anything, 50).Return(&domain.SweepResult{Processed: 2, Failed: 1}, nil).Once()

	s, err := NewSweepScheduler(svc, "@hourly", 50, zaptest.NewLogger(t))
	require.NoError(t, err)

	s.run()

	svc.AssertExpectations(t)
}
