// Package backoff implements the exponential backoff with jitter used by the
// retry engine and connection recovery.
package backoff

import (
	"context"
	"math/rand"
	"time"
)

// Delay computes the backoff delay for the given attempt (1-based):
// min(base * 2^(attempt-1), max) scaled by a jitter factor in [0.5, 1.5).
func Delay(base, max time.Duration, attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}

	delay := base
	for i := 1; i < attempt; i++ {
		delay *= 2
		if delay >= max {
			delay = max
			break
		}
	}
	if delay > max {
		delay = max
	}

	jitter := 0.5 + rand.Float64()
	return time.Duration(float64(delay) * jitter)
}

// Wait sleeps for the computed delay, returning early with the context error
// if the context is cancelled.
func Wait(ctx context.Context, base, max time.Duration, attempt int) error {
	timer := time.NewTimer(Delay(base, max, attempt))
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
