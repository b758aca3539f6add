package recovery

import (
	"context"
	"time"

	hclog "github.com/hashicorp/go-hclog"
	metrics "github.com/hashicorp/go-metrics"

	"github.com/wildosvpn/fleet/helper/backoff"
)

const (
	defaultBaseDelay   = time.Second
	defaultMaxDelay    = 60 * time.Second
	defaultMaxAttempts = 3

	// Category multipliers shade the backoff: network faults get extra slack
	// for routes to settle, timeouts retry a little sooner since the wait
	// itself already consumed time.
	networkDelayFactor = 1.5
	timeoutDelayFactor = 0.8
)

// Retrier retries an operation according to error classification.
type Retrier struct {
	logger      hclog.Logger
	nodeID      int64
	baseDelay   time.Duration
	maxDelay    time.Duration
	maxAttempts int
}

// NewRetrier builds a Retrier with the default schedule.
func NewRetrier(logger hclog.Logger, nodeID int64) *Retrier {
	return &Retrier{
		logger:      logger.Named("retry"),
		nodeID:      nodeID,
		baseDelay:   defaultBaseDelay,
		maxDelay:    defaultMaxDelay,
		maxAttempts: defaultMaxAttempts,
	}
}

func (r *Retrier) delayFor(class Classification, attempt int) time.Duration {
	delay := backoff.Delay(r.baseDelay, r.maxDelay, attempt)
	switch class.Category {
	case CategoryNetwork:
		delay = time.Duration(float64(delay) * networkDelayFactor)
	case CategoryTimeout:
		delay = time.Duration(float64(delay) * timeoutDelayFactor)
	}
	if delay > r.maxDelay {
		delay = r.maxDelay
	}
	return delay
}

// Do runs fn up to the attempt budget. Non-retryable errors return
// immediately; retryable ones wait a classified backoff between attempts.
// The returned error is the last attempt's ErrorContext.
func (r *Retrier) Do(ctx context.Context, operation string, fn func(context.Context) error) error {
	var last *ErrorContext

	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		err := fn(ctx)
		if err == nil {
			if attempt > 1 {
				metrics.IncrCounter([]string{"fleet", "retry", "recovered"}, 1)
			}
			return nil
		}

		last = NewErrorContext(r.nodeID, operation, attempt, err)
		r.logger.Warn("operation failed",
			"operation", operation, "attempt", attempt,
			"category", last.Category, "strategy", last.Strategy,
			"error_id", last.ID, "error", err)

		if !last.Retryable || attempt == r.maxAttempts {
			break
		}

		delay := r.delayFor(last.Classification, attempt)
		select {
		case <-ctx.Done():
			return NewErrorContext(r.nodeID, operation, attempt, ctx.Err())
		case <-time.After(delay):
		}
	}

	metrics.IncrCounter([]string{"fleet", "retry", "exhausted"}, 1)
	return last
}
