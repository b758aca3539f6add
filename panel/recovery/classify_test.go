package recovery

import (
	"context"
	"crypto/x509"
	"errors"
	"net"
	"testing"

	"github.com/shoenig/test/must"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/wildosvpn/fleet/panel/breaker"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestClassify_GRPCCodes(t *testing.T) {
	cases := []struct {
		code      codes.Code
		category  Category
		retryable bool
		strategy  Strategy
	}{
		{codes.Unavailable, CategoryNetwork, true, StrategyReconnect},
		{codes.DeadlineExceeded, CategoryTimeout, true, StrategyRetry},
		{codes.Unauthenticated, CategoryAuth, false, StrategyFailFast},
		{codes.PermissionDenied, CategoryAuth, false, StrategyFailFast},
		{codes.ResourceExhausted, CategoryResource, true, StrategyDegrade},
		{codes.NotFound, CategoryConfiguration, false, StrategyFailFast},
		{codes.InvalidArgument, CategoryConfiguration, false, StrategyFailFast},
		{codes.FailedPrecondition, CategoryConfiguration, false, StrategyFailFast},
		{codes.Unimplemented, CategoryProtocol, false, StrategyFailFast},
		{codes.Aborted, CategoryService, true, StrategyRetry},
		{codes.Internal, CategoryProtocol, true, StrategyRetry},
		{codes.Unknown, CategoryProtocol, true, StrategyRetry},
	}

	for _, tc := range cases {
		t.Run(tc.code.String(), func(t *testing.T) {
			c := Classify(status.Error(tc.code, "rpc failed"))
			require.Equal(t, tc.category, c.Category)
			require.Equal(t, tc.retryable, c.Retryable)
			require.Equal(t, tc.strategy, c.Strategy)
		})
	}
}

func TestClassify_NetErrors(t *testing.T) {
	c := Classify(timeoutErr{})
	must.Eq(t, CategoryTimeout, c.Category)
	must.True(t, c.Retryable)

	opErr := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}
	c = Classify(opErr)
	must.Eq(t, CategoryNetwork, c.Category)
	must.Eq(t, StrategyReconnect, c.Strategy)
	must.True(t, c.Retryable)
}

func TestClassify_TLS(t *testing.T) {
	c := Classify(x509.UnknownAuthorityError{})
	must.Eq(t, CategoryAuth, c.Category)
	must.Eq(t, SeverityCritical, c.Severity)
	must.Eq(t, StrategyEscalate, c.Strategy)
	must.False(t, c.Retryable)
}

func TestClassify_Context(t *testing.T) {
	c := Classify(context.Canceled)
	must.Eq(t, StrategyFailFast, c.Strategy)
	must.False(t, c.Retryable)

	c = Classify(context.DeadlineExceeded)
	must.Eq(t, CategoryTimeout, c.Category)
	must.True(t, c.Retryable)
}

func TestClassify_BreakerOpen(t *testing.T) {
	c := Classify(breaker.ErrOpen)
	must.Eq(t, CategoryService, c.Category)
	must.Eq(t, StrategyCircuitBreak, c.Strategy)
	must.False(t, c.Retryable)
}

func TestClassify_Unknown(t *testing.T) {
	c := Classify(errors.New("something odd"))
	must.Eq(t, CategoryUnknown, c.Category)
	must.True(t, c.Retryable)
}

func TestErrorContext(t *testing.T) {
	base := status.Error(codes.Unavailable, "node down")
	ec := NewErrorContext(9, "FetchBackends", 2, base)

	must.Eq(t, int64(9), ec.NodeID)
	must.Eq(t, 2, ec.Attempt)
	must.Eq(t, CategoryNetwork, ec.Category)
	must.NotEq(t, "", ec.ID)

	// The context unwraps to the original status error.
	must.Eq(t, codes.Unavailable, status.Code(errors.Unwrap(ec)))
}
