// Package recovery gives node RPC failures a shape the panel can act on:
// every error is classified into a category with a severity and a handling
// strategy, retries follow the classification, and repeated failures walk a
// node through degraded operating modes instead of hammering it.
package recovery

import (
	"time"

	uuid "github.com/hashicorp/go-uuid"
)

// Category groups errors by root cause.
type Category string

const (
	// CategoryNetwork: the connection itself failed or is unstable.
	CategoryNetwork Category = "network"

	// CategoryService: the node answered but its service is failing, shed
	// load or sits behind an open breaker.
	CategoryService Category = "service"

	// CategoryTimeout: an operation, stream or health check ran out of time.
	CategoryTimeout Category = "timeout"

	// CategoryAuth: TLS handshakes, certificates and token credentials.
	CategoryAuth Category = "auth"

	// CategoryConfiguration: the request or referenced entity is invalid.
	CategoryConfiguration Category = "configuration"

	// CategoryResource: the node is out of memory, disk or CPU headroom.
	CategoryResource Category = "resource"

	// CategoryProtocol: gRPC-level faults and version mismatches.
	CategoryProtocol Category = "protocol"

	CategoryUnknown Category = "unknown"
)

// Severity grades how bad an error is for the node relationship. Locally
// recoverable errors stay at or below SeverityHigh; SeverityCritical needs
// an operator.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Strategy is the recommended handling for a classified error.
type Strategy string

const (
	// StrategyRetry retries the same call with backoff.
	StrategyRetry Strategy = "retry"

	// StrategyReconnect tears the connection down before retrying.
	StrategyReconnect Strategy = "reconnect"

	// StrategyFallback serves cached data instead of retrying.
	StrategyFallback Strategy = "fallback"

	// StrategyFailFast propagates the error immediately.
	StrategyFailFast Strategy = "fail_fast"

	// StrategyDegrade sheds non-essential load before trying again.
	StrategyDegrade Strategy = "degrade"

	// StrategyEscalate surfaces the error for operator attention.
	StrategyEscalate Strategy = "escalate"

	// StrategyCircuitBreak defers to the breaker: no immediate retry, the
	// breaker's half-open probe decides when traffic resumes.
	StrategyCircuitBreak Strategy = "circuit_break"
)

// Classification is the panel's verdict on one error.
type Classification struct {
	Category  Category
	Severity  Severity
	Strategy  Strategy
	Retryable bool
}

// ErrorContext carries one classified failure through logs and recovery
// decisions. The ID correlates retries of the same originating call.
type ErrorContext struct {
	ID         string
	NodeID     int64
	Operation  string
	Attempt    int
	OccurredAt time.Time
	Err        error
	Classification
}

// NewErrorContext wraps err with classification and a correlation id.
func NewErrorContext(nodeID int64, operation string, attempt int, err error) *ErrorContext {
	id, genErr := uuid.GenerateUUID()
	if genErr != nil {
		id = "unknown"
	}
	return &ErrorContext{
		ID:             id,
		NodeID:         nodeID,
		Operation:      operation,
		Attempt:        attempt,
		OccurredAt:     time.Now(),
		Err:            err,
		Classification: Classify(err),
	}
}

func (e *ErrorContext) Error() string {
	return e.Err.Error()
}

func (e *ErrorContext) Unwrap() error {
	return e.Err
}
