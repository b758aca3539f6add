package tokens

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shoenig/test/must"

	"github.com/wildosvpn/fleet/helper/testlog"
	"github.com/wildosvpn/fleet/panel/store"
	"github.com/wildosvpn/fleet/structs"
)

func testManager(t *testing.T) (*Manager, *store.Store, int64) {
	t.Helper()
	s, err := store.Open(testlog.HCLogger(t), filepath.Join(t.TempDir(), "panel.db"))
	must.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	node, err := s.CreateNode(context.Background(), &structs.Node{Address: "10.0.0.1", Port: 62050})
	must.NoError(t, err)

	return NewManager(testlog.HCLogger(t), s), s, node.ID
}

func TestManager_IssueAndValidate(t *testing.T) {
	m, _, nodeID := testManager(t)
	ctx := context.Background()

	raw, err := m.Issue(ctx, nodeID)
	must.NoError(t, err)
	// 32 random bytes, base64url without padding.
	must.Eq(t, 43, len(raw))

	token, err := m.Validate(ctx, raw)
	must.NoError(t, err)
	must.Eq(t, nodeID, token.NodeID)

	// Second validation is served from cache.
	token, err = m.Validate(ctx, raw)
	must.NoError(t, err)
	must.Eq(t, nodeID, token.NodeID)

	_, err = m.Validate(ctx, "bm90LWEtcmVhbC10b2tlbi1hdC1hbGwtc29ycnk")
	must.ErrorIs(t, err, ErrInvalidToken)
}

func TestManager_RevokeInvalidatesCache(t *testing.T) {
	m, _, nodeID := testManager(t)
	ctx := context.Background()

	raw, err := m.Issue(ctx, nodeID)
	must.NoError(t, err)

	// Warm the cache.
	_, err = m.Validate(ctx, raw)
	must.NoError(t, err)

	revoked, err := m.Revoke(ctx, nodeID)
	must.NoError(t, err)
	must.Eq(t, int64(1), revoked)

	_, err = m.Validate(ctx, raw)
	must.ErrorIs(t, err, ErrInvalidToken)
}

func TestManager_Expiry(t *testing.T) {
	m, _, nodeID := testManager(t)
	m.ttl = -time.Hour
	ctx := context.Background()

	raw, err := m.Issue(ctx, nodeID)
	must.NoError(t, err)

	_, err = m.Validate(ctx, raw)
	must.ErrorIs(t, err, ErrInvalidToken)
}

func TestManager_Lockout(t *testing.T) {
	m, s, nodeID := testManager(t)
	ctx := context.Background()

	raw, err := m.Issue(ctx, nodeID)
	must.NoError(t, err)

	// Five recorded failures inside the window lock the node out.
	now := time.Now()
	for i := 0; i < 5; i++ {
		must.NoError(t, s.RecordFailedAuth(ctx, &structs.FailedAuthAttempt{
			NodeID:      nodeID,
			AttemptedAt: now,
			Reason:      "invalid token",
		}))
	}

	_, err = m.Validate(ctx, raw)
	must.ErrorIs(t, err, ErrLockedOut)

	// Once the attempts age out of the window the token works again.
	_, err = s.PruneFailedAuth(ctx, now.Add(time.Minute))
	must.NoError(t, err)

	token, err := m.Validate(ctx, raw)
	must.NoError(t, err)
	must.Eq(t, nodeID, token.NodeID)
}

func TestManager_LockoutBeatsCache(t *testing.T) {
	m, s, nodeID := testManager(t)
	ctx := context.Background()

	raw, err := m.Issue(ctx, nodeID)
	must.NoError(t, err)

	// Warm the cache with a successful validation.
	_, err = m.Validate(ctx, raw)
	must.NoError(t, err)

	now := time.Now()
	for i := 0; i < 5; i++ {
		must.NoError(t, s.RecordFailedAuth(ctx, &structs.FailedAuthAttempt{
			NodeID:      nodeID,
			AttemptedAt: now,
			Reason:      "invalid token",
		}))
	}

	// The cached entry does not bypass the lockout.
	_, err = m.Validate(ctx, raw)
	must.ErrorIs(t, err, ErrLockedOut)
}

func TestManager_SuccessClearsFailures(t *testing.T) {
	m, s, nodeID := testManager(t)
	ctx := context.Background()

	raw, err := m.Issue(ctx, nodeID)
	must.NoError(t, err)

	// Four failures leave the node one short of the lockout.
	now := time.Now()
	for i := 0; i < 4; i++ {
		must.NoError(t, s.RecordFailedAuth(ctx, &structs.FailedAuthAttempt{
			NodeID:      nodeID,
			AttemptedAt: now,
			Reason:      "invalid token",
		}))
	}

	_, err = m.Validate(ctx, raw)
	must.NoError(t, err)

	// The success closed the window; stale failures no longer accumulate
	// toward the next lockout.
	n, err := s.CountFailedAuthSince(ctx, nodeID, now.Add(-time.Hour))
	must.NoError(t, err)
	must.Eq(t, 0, n)
}

func TestManager_Cleanup(t *testing.T) {
	m, s, nodeID := testManager(t)
	ctx := context.Background()

	m.ttl = -time.Hour
	_, err := m.Issue(ctx, nodeID)
	must.NoError(t, err)

	must.NoError(t, s.RecordFailedAuth(ctx, &structs.FailedAuthAttempt{
		NodeID:      nodeID,
		AttemptedAt: time.Now().Add(-2 * time.Hour),
		Reason:      "invalid token",
	}))

	must.NoError(t, m.Cleanup(ctx))

	tokens, err := s.ActiveTokens(ctx, nodeID)
	must.NoError(t, err)
	must.Len(t, 0, tokens)
	n, err := s.CountFailedAuthSince(ctx, nodeID, time.Now().Add(-24*time.Hour))
	must.NoError(t, err)
	must.Eq(t, 0, n)
}

func TestManager_UsageBatching(t *testing.T) {
	m, s, nodeID := testManager(t)
	ctx := context.Background()

	raw, err := m.Issue(ctx, nodeID)
	must.NoError(t, err)

	for i := 0; i < 4; i++ {
		_, err = m.Validate(ctx, raw)
		must.NoError(t, err)
	}

	// Nothing hits the store until a flush.
	token, err := s.GetTokenByHash(ctx, hashToken(raw))
	must.NoError(t, err)
	must.Eq(t, int64(0), token.UsageCount)

	must.NoError(t, m.FlushUsage(ctx))
	token, err = s.GetTokenByHash(ctx, hashToken(raw))
	must.NoError(t, err)
	must.Eq(t, int64(4), token.UsageCount)

	// An empty flush is a no-op.
	must.NoError(t, m.FlushUsage(ctx))
}
