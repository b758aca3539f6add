// Package registry owns the panel's fleet view: one node client per
// registered node, user-update fan-out across them, and the background
// usage poller that turns node traffic counters into billing records.
package registry

import (
	"context"
	"fmt"
	"sync"
	"time"

	hclog "github.com/hashicorp/go-hclog"
	metrics "github.com/hashicorp/go-metrics"
	multierror "github.com/hashicorp/go-multierror"

	"github.com/wildosvpn/fleet/helper/tlsutil"
	"github.com/wildosvpn/fleet/panel/nodeclient"
	"github.com/wildosvpn/fleet/panel/pool"
	"github.com/wildosvpn/fleet/panel/store"
	"github.com/wildosvpn/fleet/panel/tokens"
	"github.com/wildosvpn/fleet/structs"
)

const (
	defaultUsageInterval = time.Minute

	// probeTimeout bounds the reachability probe performed when a node is
	// added. Probe failure is not fatal; the node is just marked degraded.
	probeTimeout = 10 * time.Second

	// persistTimeout bounds the store writes done from client callbacks.
	persistTimeout = 5 * time.Second

	// fanoutTimeout bounds how long one fan-out delivery may wait for a
	// node's sync slot before the update is abandoned to the next full sync.
	fanoutTimeout = 30 * time.Second
)

// Config configures a Registry.
type Config struct {
	Logger hclog.Logger
	Store  *store.Store
	Tokens *tokens.Manager

	// UsageInterval is the cadence of the usage poller.
	UsageInterval time.Duration

	// HealthInterval overrides the per-client ping cadence, for tests.
	HealthInterval time.Duration

	// UserProvider supplies the authoritative user list for a node, used to
	// repopulate it during a full sync. Nil skips the repopulation step.
	UserProvider func(ctx context.Context, nodeID int64) ([]structs.UserUpdate, error)

	// Pool is the per-client pool template; Addr, TLS and Logger are filled
	// in per node. Mainly for tests.
	Pool pool.Config

	// AllowInsecure skips certificate validation on Add, for tests.
	AllowInsecure bool
}

// entry pairs a client with what the registry knew about the node when the
// client was built.
type entry struct {
	node   *structs.Node
	client *nodeclient.Client

	// lastUsage holds the node's previous cumulative traffic counters, so
	// the poller can record deltas.
	lastUsage map[int64]uint64
}

// Registry maps node ids to running clients.
type Registry struct {
	logger hclog.Logger
	cfg    Config

	mu      sync.RWMutex
	entries map[int64]*entry
}

// New builds an empty registry.
func New(cfg Config) (*Registry, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if cfg.Tokens == nil {
		return nil, fmt.Errorf("token manager is required")
	}
	if cfg.UsageInterval == 0 {
		cfg.UsageInterval = defaultUsageInterval
	}
	return &Registry{
		logger:  cfg.Logger.Named("registry"),
		cfg:     cfg,
		entries: make(map[int64]*entry),
	}, nil
}

// Add registers a node: any previous client for the id is stopped, a fresh
// auth token is issued, and a client is built and started. The node is then
// probed once; an unreachable node stays registered but is marked degraded.
func (r *Registry) Add(ctx context.Context, node *structs.Node, certs *tlsutil.Config) error {
	if !r.cfg.AllowInsecure {
		if certs == nil || certs.CAFile == "" || certs.CertFile == "" || certs.KeyFile == "" {
			return fmt.Errorf("node %d: certificate material is missing", node.ID)
		}
	}

	r.Remove(node.ID)

	token, err := r.cfg.Tokens.Issue(ctx, node.ID)
	if err != nil {
		return fmt.Errorf("failed to issue token for node %d: %w", node.ID, err)
	}

	var users func(context.Context) ([]structs.UserUpdate, error)
	if r.cfg.UserProvider != nil {
		nodeID := node.ID
		users = func(ctx context.Context) ([]structs.UserUpdate, error) {
			return r.cfg.UserProvider(ctx, nodeID)
		}
	}

	client, err := nodeclient.New(nodeclient.Config{
		Logger:         r.cfg.Logger,
		Node:           node,
		Token:          token,
		TLS:            certs,
		OnPeakEvent:    r.peakHandler(node.ID),
		OnStatusChange: r.statusHandler(),
		OnBackends:     r.backendsHandler(),
		Users:          users,
		Pool:           r.cfg.Pool,
		HealthInterval: r.cfg.HealthInterval,
	})
	if err != nil {
		return fmt.Errorf("failed to build client for node %d: %w", node.ID, err)
	}
	if err := client.Start(); err != nil {
		client.Stop()
		return fmt.Errorf("failed to start client for node %d: %w", node.ID, err)
	}

	r.mu.Lock()
	r.entries[node.ID] = &entry{node: node, client: client, lastUsage: make(map[int64]uint64)}
	r.mu.Unlock()

	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()
	if err := client.Ping(probeCtx); err != nil {
		r.logger.Warn("node added but unreachable", "node_id", node.ID, "error", err)
		r.setStatus(node.ID, structs.NodeStatusDegraded, err.Error())
		return nil
	}

	r.logger.Info("node registered", "node_id", node.ID, "addr", node.Addr())
	r.setStatus(node.ID, structs.NodeStatusHealthy, "")
	return nil
}

// Remove stops and forgets the node's client. Removing an unknown node is a
// no-op.
func (r *Registry) Remove(nodeID int64) {
	r.mu.Lock()
	e, ok := r.entries[nodeID]
	delete(r.entries, nodeID)
	r.mu.Unlock()

	if ok {
		e.client.Stop()
		r.logger.Info("node removed", "node_id", nodeID)
	}
}

// Reconnect tears the node's client down and rebuilds it with the latest
// certificate material.
func (r *Registry) Reconnect(ctx context.Context, nodeID int64, certs *tlsutil.Config) error {
	node, err := r.cfg.Store.GetNode(ctx, nodeID)
	if err != nil {
		return err
	}
	if node == nil {
		return fmt.Errorf("node %d is not known", nodeID)
	}
	return r.Add(ctx, node, certs)
}

// Client returns the running client for a node, if any.
func (r *Registry) Client(nodeID int64) (*nodeclient.Client, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[nodeID]
	if !ok {
		return nil, false
	}
	return e.client, true
}

// Len reports how many nodes have clients.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Stop stops every client. The registry is unusable afterwards.
func (r *Registry) Stop() {
	r.mu.Lock()
	entries := r.entries
	r.entries = make(map[int64]*entry)
	r.mu.Unlock()

	for _, e := range entries {
		e.client.Stop()
	}
}

// SyncUser fans a user change out to every node the user touches, before or
// after the change. Each node receives the user's new tag set for that node;
// a node present only in the old snapshot receives a removal. Delivery is
// fire-and-forget: failures surface through each client's own retry and
// health machinery, never through the caller.
func (r *Registry) SyncUser(user structs.User, oldInbounds, newInbounds []structs.Inbound) {
	newTags := make(map[int64][]string)
	for _, inbound := range newInbounds {
		newTags[inbound.NodeID] = append(newTags[inbound.NodeID], inbound.Tag)
	}

	touched := make(map[int64]struct{}, len(newTags))
	for _, inbound := range oldInbounds {
		touched[inbound.NodeID] = struct{}{}
	}
	for nodeID := range newTags {
		touched[nodeID] = struct{}{}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	for nodeID := range touched {
		e, ok := r.entries[nodeID]
		if !ok {
			r.logger.Debug("skipping fan-out to unregistered node",
				"node_id", nodeID, "user_id", user.ID)
			metrics.IncrCounter([]string{"fleet", "registry", "fanout_skipped"}, 1)
			continue
		}
		go r.deliver(e.client, nodeID, structs.UserUpdate{User: user, Inbounds: newTags[nodeID]})
		metrics.IncrCounter([]string{"fleet", "registry", "fanout"}, 1)
	}
}

// deliver hands one update to a node's sync slot. The slot blocks while a
// delivery is in flight; an update that cannot be handed over within the
// timeout is dropped and left to the next full sync to reconcile.
func (r *Registry) deliver(client *nodeclient.Client, nodeID int64, update structs.UserUpdate) {
	ctx, cancel := context.WithTimeout(context.Background(), fanoutTimeout)
	defer cancel()
	if err := client.Sync(ctx, []structs.UserUpdate{update}); err != nil {
		r.logger.Warn("fan-out delivery not accepted",
			"node_id", nodeID, "user_id", update.User.ID, "error", err)
		metrics.IncrCounter([]string{"fleet", "registry", "fanout_dropped"}, 1)
	}
}

// RemoveUser enqueues a removal on every node the user's inbounds reference.
func (r *Registry) RemoveUser(user structs.User, inbounds []structs.Inbound) {
	r.SyncUser(user, inbounds, nil)
}

// RepopulateNode pushes the authoritative full user list to one node,
// replacing whatever state it holds.
func (r *Registry) RepopulateNode(ctx context.Context, nodeID int64, updates []structs.UserUpdate) error {
	client, ok := r.Client(nodeID)
	if !ok {
		return fmt.Errorf("node %d is not registered", nodeID)
	}
	return client.RepopulateUsers(ctx, updates)
}

// RunUsagePoller records node traffic counters on a cadence until ctx is
// cancelled.
func (r *Registry) RunUsagePoller(ctx context.Context) {
	ticker := time.NewTicker(r.cfg.UsageInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := r.pollUsage(ctx); err != nil {
				r.logger.Error("usage poll failed", "error", err)
			}
		}
	}
}

// pollUsage reads every node's cumulative per-user counters, converts them to
// deltas, applies the node's usage coefficient and persists the result.
func (r *Registry) pollUsage(ctx context.Context) error {
	r.mu.RLock()
	entries := make([]*entry, 0, len(r.entries))
	for _, e := range r.entries {
		entries = append(entries, e)
	}
	r.mu.RUnlock()

	var mErr *multierror.Error
	for _, e := range entries {
		if err := r.pollNodeUsage(ctx, e); err != nil {
			mErr = multierror.Append(mErr, fmt.Errorf("node %d: %w", e.node.ID, err))
		}
	}
	return mErr.ErrorOrNil()
}

func (r *Registry) pollNodeUsage(ctx context.Context, e *entry) error {
	stats, stale, err := e.client.FetchUsersStats(ctx)
	if err != nil {
		return err
	}
	if stale {
		// A cached response would double-count on the next fresh read.
		return nil
	}

	coefficient := e.node.UsageCoefficient
	if coefficient <= 0 {
		coefficient = 1.0
	}

	deltas := make(map[int64]uint64)
	for userID, total := range stats {
		last := e.lastUsage[userID]
		delta := total
		if total >= last {
			delta = total - last
		}
		// A counter below its last value means the node restarted and the
		// whole reading is new usage.
		e.lastUsage[userID] = total

		if delta > 0 {
			deltas[userID] = uint64(float64(delta) * coefficient)
		}
	}
	if len(deltas) == 0 {
		return nil
	}

	metrics.IncrCounter([]string{"fleet", "registry", "usage_recorded"}, 1)
	return r.cfg.Store.AddUserUsage(ctx, deltas)
}

// backendsHandler persists a node's back-end inventory, replacing the
// previous snapshot wholesale.
func (r *Registry) backendsHandler() func(int64, []structs.Backend) {
	return func(nodeID int64, backends []structs.Backend) {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		if err := r.cfg.Store.ReplaceNodeBackends(ctx, nodeID, backends); err != nil {
			r.logger.Error("failed to persist node backends",
				"node_id", nodeID, "error", err)
		}
	}
}

// peakHandler persists peak events as they arrive from a node's stream. Rows
// are keyed by the interval identity (node, dedupe_key, started_at), with a
// sequence guard, so replays after a reconnect are harmless no-ops.
func (r *Registry) peakHandler(nodeID int64) func(structs.PeakEvent) {
	return func(event structs.PeakEvent) {
		event.NodeID = nodeID
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		if err := r.cfg.Store.UpsertPeakEvent(ctx, &event); err != nil {
			r.logger.Error("failed to persist peak event",
				"node_id", nodeID, "dedupe_key", event.DedupeKey, "seq", event.Seq, "error", err)
		}
	}
}

// statusHandler records node health flips reported by clients.
func (r *Registry) statusHandler() func(int64, structs.NodeStatus, string) {
	return func(nodeID int64, status structs.NodeStatus, message string) {
		r.setStatus(nodeID, status, message)
	}
}

func (r *Registry) setStatus(nodeID int64, status structs.NodeStatus, message string) {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	if err := r.cfg.Store.UpdateNodeStatus(ctx, nodeID, status, message); err != nil {
		r.logger.Error("failed to record node status",
			"node_id", nodeID, "status", status, "error", err)
	}
}
