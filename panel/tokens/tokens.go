// Package tokens issues and validates node auth tokens for the panel. Raw
// tokens exist only in the moment of issuance; the panel stores and compares
// SHA-256 digests.
package tokens

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	hclog "github.com/hashicorp/go-hclog"
	metrics "github.com/hashicorp/go-metrics"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/wildosvpn/fleet/panel/store"
	"github.com/wildosvpn/fleet/structs"
)

const (
	tokenBytes = 32

	// DefaultTTL is how long an issued token stays valid.
	DefaultTTL = 7 * 24 * time.Hour

	cacheSize = 1024
	cacheTTL  = 5 * time.Minute

	// lockoutThreshold failed validations within lockoutWindow lock a node
	// out of token auth until the window slides past.
	lockoutThreshold = 5
	lockoutWindow    = 30 * time.Minute

	usageFlushInterval = 30 * time.Second
	cleanupInterval    = time.Hour
)

var (
	// ErrInvalidToken covers unknown, revoked and expired tokens. One error
	// for all three so responses don't leak which case was hit.
	ErrInvalidToken = errors.New("invalid token")

	// ErrLockedOut rejects validation while a node is over the failed
	// attempt threshold.
	ErrLockedOut = errors.New("node locked out after repeated auth failures")
)

// Manager issues, validates and revokes node tokens.
type Manager struct {
	logger hclog.Logger
	store  *store.Store
	ttl    time.Duration

	// cache holds recently validated tokens keyed by hash so the hot path
	// skips the database. Revocation purges entries; expiry bounds how long
	// a stale entry can live.
	cache *expirable.LRU[string, *structs.NodeToken]

	// usageMu guards the pending usage counts flushed in batches.
	usageMu  sync.Mutex
	pending  map[int64]int64
	lastUsed time.Time
}

// NewManager builds a token manager over the panel store.
func NewManager(logger hclog.Logger, s *store.Store) *Manager {
	return &Manager{
		logger:  logger.Named("tokens"),
		store:   s,
		ttl:     DefaultTTL,
		cache:   expirable.NewLRU[string, *structs.NodeToken](cacheSize, nil, cacheTTL),
		pending: make(map[int64]int64),
	}
}

func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// Issue mints a token for a node. The returned string is the only copy of
// the raw token; hand it to the node operator and forget it.
func (m *Manager) Issue(ctx context.Context, nodeID int64) (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	raw := base64.RawURLEncoding.EncodeToString(buf)

	now := time.Now()
	_, err := m.store.CreateToken(ctx, &structs.NodeToken{
		NodeID:    nodeID,
		TokenHash: hashToken(raw),
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	})
	if err != nil {
		return "", fmt.Errorf("failed to persist token: %w", err)
	}

	m.logger.Info("issued node token", "node_id", nodeID, "expires_at", now.Add(m.ttl))
	return raw, nil
}

// Validate checks a raw token and returns its record. Failures are recorded
// toward the owning node's lockout window; validations while locked out fail
// even with a valid, cached token. A successful validation closes the
// window by clearing the node's recorded failures.
func (m *Manager) Validate(ctx context.Context, raw string) (*structs.NodeToken, error) {
	hash := hashToken(raw)
	now := time.Now()

	// The cache skips the token row lookup, never the lockout check: a node
	// over the failure threshold stays locked out even while its token is
	// still cached.
	if token, ok := m.cache.Get(hash); ok {
		if token.Expired(now) {
			m.cache.Remove(hash)
		} else {
			if err := m.admit(ctx, token.NodeID, now); err != nil {
				return nil, err
			}
			m.recordUse(token.ID, now)
			return token, nil
		}
	}

	token, err := m.store.GetTokenByHash(ctx, hash)
	if err != nil {
		return nil, err
	}
	if token == nil {
		m.recordFailure(ctx, 0, "unknown token", now)
		return nil, ErrInvalidToken
	}

	if !token.IsActive {
		m.recordFailure(ctx, token.NodeID, "revoked token", now)
		return nil, ErrInvalidToken
	}
	if token.Expired(now) {
		m.recordFailure(ctx, token.NodeID, "expired token", now)
		return nil, ErrInvalidToken
	}

	if err := m.admit(ctx, token.NodeID, now); err != nil {
		return nil, err
	}

	m.cache.Add(hash, token)
	m.recordUse(token.ID, now)
	return token, nil
}

// admit enforces the lockout window for a node and, when the node is under
// the threshold, clears any stale failures so they do not count toward a
// later window.
func (m *Manager) admit(ctx context.Context, nodeID int64, now time.Time) error {
	failures, err := m.store.CountFailedAuthSince(ctx, nodeID, now.Add(-lockoutWindow))
	if err != nil {
		return err
	}
	if failures >= lockoutThreshold {
		metrics.IncrCounter([]string{"fleet", "tokens", "lockout"}, 1)
		return ErrLockedOut
	}
	if failures > 0 {
		if err := m.store.ClearFailedAuth(ctx, nodeID); err != nil {
			m.logger.Error("failed to clear auth failures", "node_id", nodeID, "error", err)
		}
	}
	return nil
}

func (m *Manager) recordFailure(ctx context.Context, nodeID int64, reason string, now time.Time) {
	metrics.IncrCounter([]string{"fleet", "tokens", "rejected"}, 1)
	err := m.store.RecordFailedAuth(ctx, &structs.FailedAuthAttempt{
		NodeID:      nodeID,
		AttemptedAt: now,
		Reason:      reason,
	})
	if err != nil {
		m.logger.Error("failed to record auth failure", "error", err)
	}
}

// Revoke deactivates every token of a node and purges them from the cache,
// so revocation takes effect on the next validation.
func (m *Manager) Revoke(ctx context.Context, nodeID int64) (int64, error) {
	active, err := m.store.ActiveTokens(ctx, nodeID)
	if err != nil {
		return 0, err
	}

	revoked, err := m.store.DeactivateTokens(ctx, nodeID)
	if err != nil {
		return 0, err
	}

	for _, token := range active {
		m.cache.Remove(token.TokenHash)
	}

	m.logger.Info("revoked node tokens", "node_id", nodeID, "count", revoked)
	return revoked, nil
}

// recordUse queues a usage increment for the next flush. Validation is on
// the panel's hot path; batching keeps it off the database.
func (m *Manager) recordUse(tokenID int64, now time.Time) {
	m.usageMu.Lock()
	m.pending[tokenID]++
	m.lastUsed = now
	m.usageMu.Unlock()
}

// FlushUsage writes pending usage counts to the store.
func (m *Manager) FlushUsage(ctx context.Context) error {
	m.usageMu.Lock()
	pending := m.pending
	lastUsed := m.lastUsed
	m.pending = make(map[int64]int64)
	m.usageMu.Unlock()

	if len(pending) == 0 {
		return nil
	}
	if err := m.store.RecordTokenUsage(ctx, pending, lastUsed); err != nil {
		// Put the counts back so the next flush retries them.
		m.usageMu.Lock()
		for id, n := range pending {
			m.pending[id] += n
		}
		m.usageMu.Unlock()
		return err
	}
	return nil
}

// Cleanup prunes tokens past their expiry and failed auth attempts that
// have aged out of the lockout window.
func (m *Manager) Cleanup(ctx context.Context) error {
	now := time.Now()
	tokens, err := m.store.PruneExpiredTokens(ctx, now)
	if err != nil {
		return fmt.Errorf("failed to prune expired tokens: %w", err)
	}
	attempts, err := m.store.PruneFailedAuth(ctx, now.Add(-lockoutWindow))
	if err != nil {
		return fmt.Errorf("failed to prune auth failures: %w", err)
	}
	if tokens > 0 || attempts > 0 {
		m.logger.Info("pruned auth records", "tokens", tokens, "failed_attempts", attempts)
	}
	return nil
}

// RunCleanup prunes stale auth records on a fixed cadence until the context
// is cancelled.
func (m *Manager) RunCleanup(ctx context.Context) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := m.Cleanup(ctx); err != nil {
				m.logger.Error("auth cleanup failed", "error", err)
			}
		}
	}
}

// RunUsageFlusher flushes usage batches until the context is cancelled, with
// a final flush on shutdown.
func (m *Manager) RunUsageFlusher(ctx context.Context) {
	ticker := time.NewTicker(usageFlushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if err := m.FlushUsage(context.Background()); err != nil {
				m.logger.Error("final usage flush failed", "error", err)
			}
			return
		case <-ticker.C:
			if err := m.FlushUsage(ctx); err != nil {
				m.logger.Error("usage flush failed", "error", err)
			}
		}
	}
}
