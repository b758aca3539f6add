package node

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"strings"
	"time"

	hclog "github.com/hashicorp/go-hclog"
	metrics "github.com/hashicorp/go-metrics"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const (
	// pingMethod is reachable without credentials so the panel can probe
	// liveness before it has exchanged a token.
	pingMethod = "/fleet.NodeService/Ping"

	// authCacheSize and authCacheTTL bound the validated-token cache. A
	// revoked token keeps working for at most the TTL.
	authCacheSize = 128
	authCacheTTL  = 5 * time.Minute

	// Token format bounds: 32 random bytes base64url-encode to 43 chars,
	// but older panels issued shorter tokens, so validation is permissive.
	tokenMinLen = 22
	tokenMaxLen = 86
)

// TokenValidator checks the Bearer token on incoming panel calls against the
// node's provisioned credential. Only the sha256 of the credential is kept in
// memory; the plaintext never leaves the caller.
type TokenValidator struct {
	logger hclog.Logger
	hash   [sha256.Size]byte
	cache  *expirable.LRU[string, bool]
}

// NewTokenValidator builds a validator for the provisioned token.
func NewTokenValidator(logger hclog.Logger, token string) *TokenValidator {
	return &TokenValidator{
		logger: logger.Named("auth"),
		hash:   sha256.Sum256([]byte(token)),
		cache:  expirable.NewLRU[string, bool](authCacheSize, nil, authCacheTTL),
	}
}

func validTokenFormat(token string) bool {
	if len(token) < tokenMinLen || len(token) > tokenMaxLen {
		return false
	}
	for i := 0; i < len(token); i++ {
		c := token[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '-' || c == '_':
		default:
			return false
		}
	}
	return true
}

// Validate returns nil when the token matches the provisioned credential.
func (v *TokenValidator) Validate(token string) error {
	if !validTokenFormat(token) {
		return status.Error(codes.Unauthenticated, "malformed token")
	}

	sum := sha256.Sum256([]byte(token))
	cacheKey := string(sum[:])
	if ok, hit := v.cache.Get(cacheKey); hit && ok {
		return nil
	}

	if subtle.ConstantTimeCompare(sum[:], v.hash[:]) != 1 {
		metrics.IncrCounter([]string{"fleet", "node", "auth", "rejected"}, 1)
		return status.Error(codes.Unauthenticated, "invalid token")
	}

	v.cache.Add(cacheKey, true)
	return nil
}

// authorize extracts and validates the Bearer token from incoming metadata.
func (v *TokenValidator) authorize(ctx context.Context) error {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return status.Error(codes.Unauthenticated, "missing metadata")
	}
	values := md.Get("authorization")
	if len(values) == 0 {
		return status.Error(codes.Unauthenticated, "missing authorization header")
	}
	token, found := strings.CutPrefix(values[0], "Bearer ")
	if !found {
		return status.Error(codes.Unauthenticated, "authorization header is not a bearer token")
	}
	return v.Validate(token)
}

// UnaryInterceptor enforces token auth on unary calls, except Ping.
func (v *TokenValidator) UnaryInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		if info.FullMethod != pingMethod {
			if err := v.authorize(ctx); err != nil {
				v.logger.Warn("rejected call", "method", info.FullMethod, "error", err)
				return nil, err
			}
		}
		return handler(ctx, req)
	}
}

// StreamInterceptor enforces token auth on streaming calls.
func (v *TokenValidator) StreamInterceptor() grpc.StreamServerInterceptor {
	return func(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		if err := v.authorize(ss.Context()); err != nil {
			v.logger.Warn("rejected stream", "method", info.FullMethod, "error", err)
			return err
		}
		return handler(srv, ss)
	}
}
