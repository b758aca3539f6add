package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shoenig/test/must"

	"github.com/wildosvpn/fleet/helper/testlog"
	"github.com/wildosvpn/fleet/structs"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(testlog.HCLogger(t), filepath.Join(t.TempDir(), "panel.db"))
	must.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_Nodes(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	node, err := s.CreateNode(ctx, &structs.Node{Address: "10.0.0.1", Port: 62050})
	must.NoError(t, err)
	must.Positive(t, node.ID)
	must.Eq(t, structs.NodeStatusHealthy, node.Status)
	must.Eq(t, 1.0, node.UsageCoefficient)

	got, err := s.GetNode(ctx, node.ID)
	must.NoError(t, err)
	must.Eq(t, "10.0.0.1:62050", got.Addr())

	must.NoError(t, s.UpdateNodeStatus(ctx, node.ID, structs.NodeStatusUnhealthy, "connect timeout"))
	got, err = s.GetNode(ctx, node.ID)
	must.NoError(t, err)
	must.Eq(t, structs.NodeStatusUnhealthy, got.Status)
	must.Eq(t, "connect timeout", got.Message)

	nodes, err := s.ListNodes(ctx)
	must.NoError(t, err)
	must.Len(t, 1, nodes)

	must.NoError(t, s.DeleteNode(ctx, node.ID))
	gone, err := s.GetNode(ctx, node.ID)
	must.NoError(t, err)
	must.Nil(t, gone)
}

func TestStore_Tokens(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	node, err := s.CreateNode(ctx, &structs.Node{Address: "10.0.0.1", Port: 62050})
	must.NoError(t, err)

	now := time.Now().Truncate(time.Millisecond)
	id, err := s.CreateToken(ctx, &structs.NodeToken{
		NodeID:    node.ID,
		TokenHash: "hash-1",
		CreatedAt: now,
		ExpiresAt: now.Add(7 * 24 * time.Hour),
	})
	must.NoError(t, err)
	must.Positive(t, id)

	token, err := s.GetTokenByHash(ctx, "hash-1")
	must.NoError(t, err)
	must.NotNil(t, token)
	must.True(t, token.IsActive)
	must.Eq(t, node.ID, token.NodeID)
	must.False(t, token.Expired(now))
	must.True(t, token.Expired(now.Add(8*24*time.Hour)))

	missing, err := s.GetTokenByHash(ctx, "no-such-hash")
	must.NoError(t, err)
	must.Nil(t, missing)

	// Usage batches fold into the row.
	must.NoError(t, s.RecordTokenUsage(ctx, map[int64]int64{id: 5}, now))
	must.NoError(t, s.RecordTokenUsage(ctx, map[int64]int64{id: 3}, now))
	token, err = s.GetTokenByHash(ctx, "hash-1")
	must.NoError(t, err)
	must.Eq(t, int64(8), token.UsageCount)

	revoked, err := s.DeactivateTokens(ctx, node.ID)
	must.NoError(t, err)
	must.Eq(t, int64(1), revoked)

	token, err = s.GetTokenByHash(ctx, "hash-1")
	must.NoError(t, err)
	must.False(t, token.IsActive)
}

func TestStore_FailedAuth(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	now := time.Now()

	for i := 0; i < 3; i++ {
		must.NoError(t, s.RecordFailedAuth(ctx, &structs.FailedAuthAttempt{
			NodeID:      1,
			AttemptedAt: now.Add(-time.Duration(i) * time.Minute),
			Reason:      "invalid token",
		}))
	}
	must.NoError(t, s.RecordFailedAuth(ctx, &structs.FailedAuthAttempt{
		NodeID:      1,
		AttemptedAt: now.Add(-2 * time.Hour),
		Reason:      "invalid token",
	}))

	n, err := s.CountFailedAuthSince(ctx, 1, now.Add(-30*time.Minute))
	must.NoError(t, err)
	must.Eq(t, 3, n)

	pruned, err := s.PruneFailedAuth(ctx, now.Add(-time.Hour))
	must.NoError(t, err)
	must.Eq(t, int64(1), pruned)

	must.NoError(t, s.ClearFailedAuth(ctx, 1))
	n, err = s.CountFailedAuthSince(ctx, 1, now.Add(-24*time.Hour))
	must.NoError(t, err)
	must.Eq(t, 0, n)
}

func TestStore_PruneExpiredTokens(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	node, err := s.CreateNode(ctx, &structs.Node{Address: "10.0.0.1", Port: 62050})
	must.NoError(t, err)

	now := time.Now()
	_, err = s.CreateToken(ctx, &structs.NodeToken{
		NodeID: node.ID, TokenHash: "live", CreatedAt: now, ExpiresAt: now.Add(time.Hour),
	})
	must.NoError(t, err)
	_, err = s.CreateToken(ctx, &structs.NodeToken{
		NodeID: node.ID, TokenHash: "stale", CreatedAt: now.Add(-48 * time.Hour), ExpiresAt: now.Add(-time.Hour),
	})
	must.NoError(t, err)

	pruned, err := s.PruneExpiredTokens(ctx, now)
	must.NoError(t, err)
	must.Eq(t, int64(1), pruned)

	gone, err := s.GetTokenByHash(ctx, "stale")
	must.NoError(t, err)
	must.Nil(t, gone)
	live, err := s.GetTokenByHash(ctx, "live")
	must.NoError(t, err)
	must.NotNil(t, live)
}

func TestStore_PeakEvents(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	start := structs.PeakEvent{
		NodeID:      1,
		Category:    structs.PeakCategoryCPU,
		Metric:      "cpu_percent",
		Level:       structs.PeakLevelWarning,
		Value:       82,
		Threshold:   75,
		DedupeKey:   structs.PeakDedupeKey(1, structs.PeakCategoryCPU, "cpu_percent"),
		StartedAtMs: 1000,
		Seq:         1,
	}
	must.NoError(t, s.UpsertPeakEvent(ctx, &start))

	// Replayed start events are idempotent.
	must.NoError(t, s.UpsertPeakEvent(ctx, &start))
	events, err := s.ListPeakEvents(ctx, PeakEventFilter{NodeID: 1})
	must.NoError(t, err)
	must.Len(t, 1, events)

	// An upgrade carries a fresh seq but folds into the same interval row.
	upgrade := start
	upgrade.Seq = 2
	upgrade.Level = structs.PeakLevelCritical
	upgrade.Value = 96
	must.NoError(t, s.UpsertPeakEvent(ctx, &upgrade))

	events, err = s.ListPeakEvents(ctx, PeakEventFilter{NodeID: 1})
	must.NoError(t, err)
	must.Len(t, 1, events)
	must.Eq(t, structs.PeakLevelCritical, events[0].Level)
	must.Eq(t, uint64(2), events[0].Seq)

	// A replayed stale start never downgrades the row.
	must.NoError(t, s.UpsertPeakEvent(ctx, &start))
	events, err = s.ListPeakEvents(ctx, PeakEventFilter{NodeID: 1})
	must.NoError(t, err)
	must.Eq(t, structs.PeakLevelCritical, events[0].Level)

	// The resolve event, again with a fresh seq, closes the interval.
	resolve := upgrade
	resolve.Seq = 3
	resolve.Value = 55
	resolve.ResolvedAtMs = 40000
	must.NoError(t, s.UpsertPeakEvent(ctx, &resolve))

	events, err = s.ListPeakEvents(ctx, PeakEventFilter{NodeID: 1})
	must.NoError(t, err)
	must.Len(t, 1, events)
	must.Eq(t, int64(40000), events[0].ResolvedAtMs)
	must.Eq(t, structs.PeakLevelCritical, events[0].Level)

	// A later interval is a separate row.
	next := start
	next.Seq = 4
	next.StartedAtMs = 90000
	must.NoError(t, s.UpsertPeakEvent(ctx, &next))

	events, err = s.ListPeakEvents(ctx, PeakEventFilter{NodeID: 1})
	must.NoError(t, err)
	must.Len(t, 2, events)
	// Newest first.
	must.Eq(t, uint64(4), events[0].Seq)

	open, err := s.ListPeakEvents(ctx, PeakEventFilter{NodeID: 1, OpenOnly: true})
	must.NoError(t, err)
	must.Len(t, 1, open)
	must.Eq(t, uint64(4), open[0].Seq)

	filtered, err := s.ListPeakEvents(ctx, PeakEventFilter{NodeID: 1, Category: structs.PeakCategoryMemory})
	must.NoError(t, err)
	must.Len(t, 0, filtered)
}

func TestStore_NodeBackends(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	node, err := s.CreateNode(ctx, &structs.Node{Address: "10.0.0.1", Port: 62050})
	must.NoError(t, err)

	must.NoError(t, s.ReplaceNodeBackends(ctx, node.ID, []structs.Backend{
		{
			Name: "xray", Type: structs.BackendTypeXray, Version: "1.8.4", Running: true,
			Inbounds: []structs.Inbound{
				{Tag: "vless-in", Protocol: "vless", Port: 443},
				{Tag: "trojan-in", Protocol: "trojan", Port: 8443},
			},
		},
		{Name: "hy2", Type: structs.BackendTypeHysteria, Running: false},
	}))

	backends, err := s.ListNodeBackends(ctx, node.ID)
	must.NoError(t, err)
	must.Len(t, 2, backends)
	must.Eq(t, "hy2", backends[0].Name)
	must.False(t, backends[0].Running)
	must.Eq(t, "xray", backends[1].Name)
	must.Len(t, 2, backends[1].Inbounds)
	must.Eq(t, 8443, backends[1].Inbounds[0].Port)

	// A later report replaces the inventory wholesale.
	must.NoError(t, s.ReplaceNodeBackends(ctx, node.ID, []structs.Backend{
		{Name: "xray", Type: structs.BackendTypeXray, Version: "1.8.5", Running: true},
	}))
	backends, err = s.ListNodeBackends(ctx, node.ID)
	must.NoError(t, err)
	must.Len(t, 1, backends)
	must.Eq(t, "1.8.5", backends[0].Version)
	must.Len(t, 0, backends[0].Inbounds)
}

func TestStore_UserUsage(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	must.NoError(t, s.AddUserUsage(ctx, map[int64]uint64{1: 100, 2: 50}))
	must.NoError(t, s.AddUserUsage(ctx, map[int64]uint64{1: 25}))

	n, err := s.UserUsage(ctx, 1)
	must.NoError(t, err)
	must.Eq(t, uint64(125), n)

	n, err = s.UserUsage(ctx, 3)
	must.NoError(t, err)
	must.Eq(t, uint64(0), n)
}
