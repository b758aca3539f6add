package node

import (
	"context"
	"testing"

	"github.com/shoenig/test/must"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/wildosvpn/fleet/helper/testlog"
)

const testToken = "dGVzdC10b2tlbi1mb3ItYXV0aC10ZXN0cw"

func TestTokenValidator_Validate(t *testing.T) {
	v := NewTokenValidator(testlog.HCLogger(t), testToken)

	must.NoError(t, v.Validate(testToken))

	// Cached second validation.
	must.NoError(t, v.Validate(testToken))

	err := v.Validate("dGVzdC13cm9uZy10b2tlbi1ub3QtdmFsaWQ")
	must.Error(t, err)
	must.Eq(t, codes.Unauthenticated, status.Code(err))
}

func TestTokenValidator_Format(t *testing.T) {
	v := NewTokenValidator(testlog.HCLogger(t), testToken)

	cases := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"too short", "abc"},
		{"bad characters", "token with spaces and $ymbols!!"},
		{"too long", string(make([]byte, 100))},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Validate(tc.token)
			must.Error(t, err)
			must.Eq(t, codes.Unauthenticated, status.Code(err))
		})
	}
}

func ctxWithToken(token string) context.Context {
	md := metadata.Pairs("authorization", "Bearer "+token)
	return metadata.NewIncomingContext(context.Background(), md)
}

func TestTokenValidator_UnaryInterceptor(t *testing.T) {
	v := NewTokenValidator(testlog.HCLogger(t), testToken)
	interceptor := v.UnaryInterceptor()

	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return "ok", nil
	}

	// Authenticated call passes through.
	info := &grpc.UnaryServerInfo{FullMethod: "/fleet.NodeService/FetchBackends"}
	resp, err := interceptor(ctxWithToken(testToken), nil, info, handler)
	must.NoError(t, err)
	must.Eq(t, "ok", resp.(string))

	// Missing metadata is rejected.
	_, err = interceptor(context.Background(), nil, info, handler)
	must.Eq(t, codes.Unauthenticated, status.Code(err))

	// Non-bearer authorization is rejected.
	md := metadata.Pairs("authorization", "Basic dXNlcjpwYXNz")
	_, err = interceptor(metadata.NewIncomingContext(context.Background(), md), nil, info, handler)
	must.Eq(t, codes.Unauthenticated, status.Code(err))

	// Ping bypasses auth entirely.
	ping := &grpc.UnaryServerInfo{FullMethod: "/fleet.NodeService/Ping"}
	resp, err = interceptor(context.Background(), nil, ping, handler)
	must.NoError(t, err)
	must.Eq(t, "ok", resp.(string))
}

type fakeServerStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (s *fakeServerStream) Context() context.Context { return s.ctx }

func TestTokenValidator_StreamInterceptor(t *testing.T) {
	v := NewTokenValidator(testlog.HCLogger(t), testToken)
	interceptor := v.StreamInterceptor()

	called := false
	handler := func(srv interface{}, ss grpc.ServerStream) error {
		called = true
		return nil
	}
	info := &grpc.StreamServerInfo{FullMethod: "/fleet.NodeService/StreamBackendLogs"}

	err := interceptor(nil, &fakeServerStream{ctx: ctxWithToken(testToken)}, info, handler)
	must.NoError(t, err)
	must.True(t, called)

	called = false
	err = interceptor(nil, &fakeServerStream{ctx: context.Background()}, info, handler)
	must.Eq(t, codes.Unauthenticated, status.Code(err))
	must.False(t, called)
}
