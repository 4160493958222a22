// Package resilience retries transient startup failures with jittered backoff.
package resilience

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"
)

// ExponentialBackoff grows the delay by Multiplier per attempt up to MaxDelay,
// spread by ±Jitter of the delay
type ExponentialBackoff struct {
	BaseDelay  time.Duration
	MaxDelay   time.Duration
	Multiplier float64
	Jitter     float64
}

// ConnectBackoff suits waiting for a database that is still starting:
// ~500ms, 1s, 2s, 4s, then 8s per attempt
func ConnectBackoff() *ExponentialBackoff {
	return &ExponentialBackoff{
		BaseDelay:  500 * time.Millisecond,
		MaxDelay:   8 * time.Second,
		Multiplier: 2.0,
		Jitter:     0.1,
	}
}

// NextDelay returns the delay before retry number attempt (0-indexed)
func (eb *ExponentialBackoff) NextDelay(attempt int) time.Duration {
	if attempt < 0 {
		return eb.BaseDelay
	}

	delay := float64(eb.BaseDelay) * math.Pow(eb.Multiplier, float64(attempt))
	if delay > float64(eb.MaxDelay) {
		delay = float64(eb.MaxDelay)
	}

	jitter := (rand.Float64()*2 - 1) * delay * eb.Jitter
	final := time.Duration(delay + jitter)
	if final < 0 {
		return eb.BaseDelay
	}
	return final
}

// Retry calls fn up to attempts times, sleeping between failures.
// onRetry, when set, is told about each failure that will be retried.
func Retry(ctx context.Context, attempts int, backoff *ExponentialBackoff, onRetry func(attempt int, err error, delay time.Duration), fn func(ctx context.Context) error) error {
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		if err = fn(ctx); err == nil {
			return nil
		}
		if attempt == attempts-1 {
			break
		}

		delay := backoff.NextDelay(attempt)
		if onRetry != nil {
			onRetry(attempt+1, err, delay)
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("%w (last error: %v)", ctx.Err(), err)
		case <-timer.C:
		}
	}
	return fmt.Errorf("gave up after %d attempts: %w", attempts, err)
}
