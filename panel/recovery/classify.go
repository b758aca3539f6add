package recovery

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"net"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/wildosvpn/fleet/panel/breaker"
)

// Classify maps an error to its handling classification. Unrecognized errors
// come back retryable so a novel failure mode degrades to retry-with-backoff
// rather than silently dropping work.
func Classify(err error) Classification {
	if err == nil {
		return Classification{Category: CategoryUnknown, Severity: SeverityLow, Strategy: StrategyRetry, Retryable: false}
	}

	// Breaker rejections already represent a failing node; the breaker's
	// half-open probe decides when traffic resumes, not the caller.
	if errors.Is(err, breaker.ErrOpen) || errors.Is(err, breaker.ErrTooManyProbes) {
		return Classification{Category: CategoryService, Severity: SeverityHigh, Strategy: StrategyCircuitBreak, Retryable: false}
	}

	if errors.Is(err, context.Canceled) {
		return Classification{Category: CategoryTimeout, Severity: SeverityLow, Strategy: StrategyFailFast, Retryable: false}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return Classification{Category: CategoryTimeout, Severity: SeverityLow, Strategy: StrategyRetry, Retryable: true}
	}

	// TLS and certificate failures never fix themselves; the operator has
	// to rotate or re-pin material.
	var unknownAuthority x509.UnknownAuthorityError
	var certInvalid x509.CertificateInvalidError
	var hostnameErr x509.HostnameError
	var recordHeader tls.RecordHeaderError
	if errors.As(err, &unknownAuthority) || errors.As(err, &certInvalid) ||
		errors.As(err, &hostnameErr) || errors.As(err, &recordHeader) {
		return Classification{Category: CategoryAuth, Severity: SeverityCritical, Strategy: StrategyEscalate, Retryable: false}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return Classification{Category: CategoryTimeout, Severity: SeverityLow, Strategy: StrategyRetry, Retryable: true}
		}
		return Classification{Category: CategoryNetwork, Severity: SeverityMedium, Strategy: StrategyReconnect, Retryable: true}
	}

	if s, ok := status.FromError(err); ok {
		switch s.Code() {
		case codes.Unavailable:
			return Classification{Category: CategoryNetwork, Severity: SeverityMedium, Strategy: StrategyReconnect, Retryable: true}
		case codes.DeadlineExceeded:
			return Classification{Category: CategoryTimeout, Severity: SeverityLow, Strategy: StrategyRetry, Retryable: true}
		case codes.Unauthenticated, codes.PermissionDenied:
			return Classification{Category: CategoryAuth, Severity: SeverityHigh, Strategy: StrategyFailFast, Retryable: false}
		case codes.ResourceExhausted:
			return Classification{Category: CategoryResource, Severity: SeverityMedium, Strategy: StrategyDegrade, Retryable: true}
		case codes.NotFound, codes.InvalidArgument, codes.FailedPrecondition:
			return Classification{Category: CategoryConfiguration, Severity: SeverityLow, Strategy: StrategyFailFast, Retryable: false}
		case codes.Unimplemented:
			// Version skew between panel and node.
			return Classification{Category: CategoryProtocol, Severity: SeverityHigh, Strategy: StrategyFailFast, Retryable: false}
		case codes.Aborted:
			return Classification{Category: CategoryService, Severity: SeverityMedium, Strategy: StrategyRetry, Retryable: true}
		case codes.Internal, codes.Unknown:
			return Classification{Category: CategoryProtocol, Severity: SeverityMedium, Strategy: StrategyRetry, Retryable: true}
		case codes.Canceled:
			return Classification{Category: CategoryTimeout, Severity: SeverityLow, Strategy: StrategyFailFast, Retryable: false}
		}
	}

	return Classification{Category: CategoryUnknown, Severity: SeverityMedium, Strategy: StrategyRetry, Retryable: true}
}
