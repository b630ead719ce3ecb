package webhook

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"

	"github.com/phy132/kirchhoff/internal/store"
)

// RetryRecorder is a decorator that retries transient failures with
// exponential backoff and jitter.
type RetryRecorder struct {
	inner  store.AttemptRecorder
	config RetryConfig
}

// WithRetry wraps a recorder with retry logic.
func WithRetry(r store.AttemptRecorder, cfg RetryConfig) store.AttemptRecorder {
	return &RetryRecorder{inner: r, config: cfg}
}

func (r *RetryRecorder) AppendEquationAttempt(ctx context.Context, data store.EquationAttemptData) error {
	return r.do(ctx, func() error { return r.inner.AppendEquationAttempt(ctx, data) })
}

func (r *RetryRecorder) AppendCurrentAttempt(ctx context.Context, data store.CurrentAttemptData) error {
	return r.do(ctx, func() error { return r.inner.AppendCurrentAttempt(ctx, data) })
}

func (r *RetryRecorder) do(ctx context.Context, fn func() error) error {
	attempts := max(r.config.MaxAttempts, 1)
	var lastErr error
	for attempt := range attempts {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		if !shouldRetry(err) {
			return err
		}

		// No sleep after the final attempt.
		if attempt == attempts-1 {
			break
		}

		timer := time.NewTimer(r.backoff(attempt, err))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return lastErr
}

// shouldRetry determines if an error is retryable.
func shouldRetry(err error) bool {
	// Context errors are never retried.
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var se *StatusError
	if errors.As(err, &se) {
		return se.Temporary()
	}

	var unavail *UnavailableError
	return errors.As(err, &unavail)
}

// backoff computes the wait duration for the given attempt.
func (r *RetryRecorder) backoff(attempt int, err error) time.Duration {
	// Respect Retry-After from the endpoint.
	var se *StatusError
	if errors.As(err, &se) && se.RetryAfter > 0 {
		return se.RetryAfter
	}

	wait := float64(r.config.InitialWait) * math.Pow(r.config.Multiplier, float64(attempt))
	if wait > float64(r.config.MaxWait) {
		wait = float64(r.config.MaxWait)
	}

	// Add ±20% jitter.
	jitter := wait * 0.2 * (2*rand.Float64() - 1)
	wait += jitter

	if wait < 0 {
		wait = 0
	}
	return time.Duration(wait)
}
