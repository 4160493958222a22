package shutdown

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestManager_ShutsDownInReverseOrder(t *testing.T) {
	m := NewManager(zaptest.NewLogger(t), time.Second)
	var order []string

	m.RegisterNoErr("database", func() { order = append(order, "database") })
	m.Register("http", func(context.Context) error {
		order = append(order, "http")
		return nil
	})
	m.RegisterNoErr("scheduler", func() { order = append(order, "scheduler") })

	require.NoError(t, m.Shutdown())
	assert.Equal(t, []string{"scheduler", "http", "database"}, order)
}

func TestManager_JoinsErrorsAndKeepsGoing(t *testing.T) {
	m := NewManager(zaptest.NewLogger(t), time.Second)
	boom := errors.New("boom")
	closed := false

	m.RegisterNoErr("database", func() { closed = true })
	m.Register("http", func(context.Context) error { return boom })

	err := m.Shutdown()

	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "http")
	assert.True(t, closed, "later components still shut down")
}

func TestManager_ShutdownRunsOnce(t *testing.T) {
	m := NewManager(zaptest.NewLogger(t), time.Second)
	calls := 0
	m.RegisterNoErr("x", func() { calls++ })

	_ = m.Shutdown()
	_ = m.Shutdown()

	assert.Equal(t, 1, calls)
}

func TestManager_SharedDeadline(t *testing.T) {
	m := NewManager(zaptest.NewLogger(t), 20*time.Millisecond)
	m.Register("slow", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	assert.ErrorIs(t, m.Shutdown(), context.DeadlineExceeded)
}

func TestManager_WaitForShutdownOnContext(t *testing.T) {
	m := NewManager(zaptest.NewLogger(t), time.Second)
	done := false
	m.RegisterNoErr("x", func() { done = true })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, m.WaitForShutdown(ctx))
	assert.True(t, done)
}
