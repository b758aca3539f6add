// Package nodeclient is the panel's per-node client: a pooled, authenticated
// gRPC surface with circuit breaking, classified retries and background loops
// for health probing, user sync and peak event intake.
package nodeclient

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	hclog "github.com/hashicorp/go-hclog"
	metrics "github.com/hashicorp/go-metrics"
	"google.golang.org/grpc/metadata"

	"github.com/wildosvpn/fleet/helper/backoff"
	"github.com/wildosvpn/fleet/helper/tlsutil"
	"github.com/wildosvpn/fleet/panel/breaker"
	"github.com/wildosvpn/fleet/panel/pool"
	"github.com/wildosvpn/fleet/panel/recovery"
	"github.com/wildosvpn/fleet/proto"
	"github.com/wildosvpn/fleet/structs"
)

// Per-operation deadlines. Streams get an establishment deadline only; the
// stream body runs on the client's lifetime context.
const (
	fastTimeout   = 15 * time.Second
	slowTimeout   = 60 * time.Second
	streamTimeout = 30 * time.Second
	portTimeout   = 20 * time.Second

	healthInterval = 30 * time.Second

	// Health escalation ladder, in consecutive ping failures.
	refreshPoolAfter   = 2
	markUnhealthyAfter = 5

	peakStreamRetryBase = time.Second
	peakStreamRetryMax  = 30 * time.Second
)

// Config configures a node client.
type Config struct {
	Logger hclog.Logger
	Node   *structs.Node

	// Token authenticates the panel to the node; sent as a Bearer token on
	// every call.
	Token string

	// TLS carries CA, client pair and the pinned node certificate.
	TLS *tlsutil.Config

	// OnPeakEvent receives peak events from the node's stream, in arrival
	// order. Required if peak intake is wanted; nil disables the loop.
	OnPeakEvent func(structs.PeakEvent)

	// OnStatusChange is told when the client's view of node health flips.
	OnStatusChange func(nodeID int64, status structs.NodeStatus, message string)

	// OnBackends receives the node's back-end inventory after each full
	// sync, for persistence. Optional.
	OnBackends func(nodeID int64, backends []structs.Backend)

	// Users supplies the authoritative user list pushed to the node during
	// a full sync. Nil skips the repopulation step.
	Users func(ctx context.Context) ([]structs.UserUpdate, error)

	// Pool overrides pool tuning; Addr, TLS and Logger are set by the
	// client. Mainly for tests.
	Pool pool.Config

	// HealthInterval overrides the ping cadence, for tests.
	HealthInterval time.Duration
}

// Client manages the panel's relationship with one node.
type Client struct {
	logger hclog.Logger
	cfg    Config
	node   *structs.Node

	pool     *pool.Pool
	breakers *breaker.Set
	retrier  *recovery.Retrier
	recovery *recovery.Manager
	fallback *recovery.FallbackCache

	// syncCh is a single-slot queue: at most one pending batch of user
	// updates. Producers block while the slot is occupied, so a slow node
	// exerts backpressure instead of dropping or reordering intents.
	syncCh chan []structs.UserUpdate

	// synced is true once the node holds the authoritative state: back-end
	// inventory fetched and the full user list pushed. Connection loss
	// clears it; the health loop re-establishes it.
	synced atomic.Bool

	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	stopOnce sync.Once

	mu        sync.Mutex
	unhealthy bool
}

// New builds a client for one node. Start begins the background loops.
func New(cfg Config) (*Client, error) {
	if cfg.Node == nil {
		return nil, fmt.Errorf("node is required")
	}
	logger := cfg.Logger.Named("nodeclient").With("node_id", cfg.Node.ID, "addr", cfg.Node.Addr())

	poolCfg := cfg.Pool
	poolCfg.Logger = cfg.Logger
	poolCfg.Addr = cfg.Node.Addr()
	poolCfg.TLS = cfg.TLS
	p, err := pool.New(poolCfg)
	if err != nil {
		return nil, err
	}

	if cfg.HealthInterval == 0 {
		cfg.HealthInterval = healthInterval
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Client{
		logger:   logger,
		cfg:      cfg,
		node:     cfg.Node,
		pool:     p,
		breakers: breaker.NewSet(cfg.Logger, cfg.Node.Addr(), breaker.Config{}),
		retrier:  recovery.NewRetrier(cfg.Logger, cfg.Node.ID),
		recovery: recovery.NewManager(cfg.Logger, cfg.Node.ID),
		fallback: recovery.NewFallbackCache(),
		syncCh:   make(chan []structs.UserUpdate, 1),
		ctx:      ctx,
		cancel:   cancel,
	}, nil
}

// Start probes the node once and, when reachable, runs the initial full
// sync. A failed probe or sync is not fatal; the health loop keeps trying.
func (c *Client) Start() error {
	if err := c.Ping(c.ctx); err != nil {
		c.logger.Warn("initial node probe failed", "error", err)
	} else {
		c.logger.Info("node is reachable")
		if err := c.resync(c.ctx); err != nil {
			c.logger.Warn("initial node sync failed", "error", err)
		}
	}

	c.wg.Add(2)
	go c.syncLoop()
	go c.healthLoop()

	if c.cfg.OnPeakEvent != nil {
		c.wg.Add(1)
		go c.peakLoop()
	}
	return nil
}

// Stop shuts the loops down, resets the breakers, closes the pool and drops
// the credential material, so a stopped client can neither reach the node
// nor carry stale breaker state into a successor. The node is reported
// unhealthy with a shutdown message as the final status.
func (c *Client) Stop() {
	c.stopOnce.Do(func() {
		c.cancel()
		c.wg.Wait()
		c.breakers.Reset()
		c.pool.Close()
		c.synced.Store(false)
		c.cfg.Token = ""
		c.cfg.TLS = nil
		c.notifyStatus(structs.NodeStatusUnhealthy, "shutdown")
	})
}

// Synced reports whether the node currently holds the authoritative state.
func (c *Client) Synced() bool {
	return c.synced.Load()
}

// resync re-establishes the node's authoritative state: fetch the back-end
// inventory, hand it over for persistence, then push the full user list.
// Only after all of that does the node count as synced.
func (c *Client) resync(ctx context.Context) error {
	backends, err := c.FetchBackends(ctx)
	if err != nil {
		return err
	}
	if c.cfg.OnBackends != nil {
		c.cfg.OnBackends(c.node.ID, backends)
	}

	if c.cfg.Users != nil {
		users, err := c.cfg.Users(ctx)
		if err != nil {
			return fmt.Errorf("failed to load user list: %w", err)
		}
		if err := c.RepopulateUsers(ctx, users); err != nil {
			return err
		}
	}

	c.synced.Store(true)
	c.logger.Info("node synced", "backends", len(backends))
	return nil
}

// Mode exposes the node's recovery mode.
func (c *Client) Mode() recovery.Mode {
	return c.recovery.Mode()
}

// BreakerState exposes a class breaker's state.
func (c *Client) BreakerState(class breaker.Class) breaker.State {
	return c.breakers.State(class)
}

// authContext attaches the Bearer token and a deadline.
func (c *Client) authContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx = metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+c.cfg.Token)
	if timeout > 0 {
		return context.WithTimeout(ctx, timeout)
	}
	return context.WithCancel(ctx)
}

// invoke runs one unary RPC through the full stack: breaker admission,
// classified retries, pool checkout, auth metadata and deadline, restart
// detection, and recovery bookkeeping.
func (c *Client) invoke(ctx context.Context, class breaker.Class, operation string, timeout time.Duration,
	fn func(ctx context.Context, client proto.NodeServiceClient) error) error {

	err := c.breakers.Do(class, func() error {
		return c.retrier.Do(ctx, operation, func(ctx context.Context) error {
			return c.call(ctx, timeout, fn)
		})
	})

	if err != nil {
		c.recovery.RecordFailure()
		metrics.IncrCounterWithLabels([]string{"fleet", "nodeclient", "error"}, 1,
			[]metrics.Label{{Name: "operation", Value: operation}})
		return err
	}
	c.recovery.RecordSuccess()
	return nil
}

// call performs a single attempt against a pooled connection.
func (c *Client) call(ctx context.Context, timeout time.Duration,
	fn func(ctx context.Context, client proto.NodeServiceClient) error) error {

	conn, err := c.pool.Acquire(ctx)
	if err != nil {
		return err
	}

	callCtx, cancel := c.authContext(ctx, timeout)
	err = fn(callCtx, proto.NewNodeServiceClient(conn.ClientConn()))
	cancel()

	if pool.LooksLikeRestart(err) {
		// The process behind the pool is gone; every sibling connection is
		// as dead as this one, and whatever state the node held is too.
		c.synced.Store(false)
		c.pool.Release(conn, false)
		c.pool.Drain()
		return err
	}
	c.pool.Release(conn, err == nil || recovery.Classify(err).Category != recovery.CategoryNetwork)
	return err
}

// syncLoop delivers queued user snapshots. Delivery failures push the
// snapshot back into the slot unless a newer one has taken it.
func (c *Client) syncLoop() {
	defer c.wg.Done()

	for {
		select {
		case <-c.ctx.Done():
			return
		case updates := <-c.syncCh:
			if err := c.sendUsers(c.ctx, updates); err != nil {
				c.logger.Error("user sync failed", "updates", len(updates), "error", err)
				// Requeue the failed batch. A batch that raced in while
				// we were sending is newer, so its intents win the merge.
				select {
				case pending := <-c.syncCh:
					updates = mergeUpdates(updates, pending)
				default:
				}
				select {
				case c.syncCh <- updates:
				default:
				}
				// Back off before redelivering so a down node is not
				// hammered by the requeue.
				backoff.Wait(c.ctx, time.Second, 10*time.Second, 1)
			}
		}
	}
}

// healthLoop pings on a cadence and walks the escalation ladder as failures
// accumulate.
func (c *Client) healthLoop() {
	defer c.wg.Done()
	ticker := time.NewTicker(c.cfg.HealthInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.ctx.Done():
			return
		case <-ticker.C:
			c.checkHealth()
		}
	}
}

func (c *Client) checkHealth() {
	if err := c.Ping(c.ctx); err != nil {
		// Ping bypasses the breakers, so the probe outcome has to feed the
		// recovery state itself.
		c.recovery.RecordFailure()
		c.escalate(err)
		return
	}
	c.recovery.RecordSuccess()

	if !c.synced.Load() {
		if err := c.resync(c.ctx); err != nil {
			c.logger.Warn("node sync failed", "error", err)
			return
		}
	}

	c.mu.Lock()
	wasUnhealthy := c.unhealthy
	c.unhealthy = false
	c.mu.Unlock()

	if wasUnhealthy {
		c.logger.Info("node is healthy again")
		c.notifyStatus(structs.NodeStatusHealthy, "")
	}
}

// escalate reacts to a failed health probe according to how long the streak
// has run: log, refresh the pool, attempt a full recover, then give up and
// mark the node unhealthy.
func (c *Client) escalate(err error) {
	failures := c.recovery.ConsecutiveFailures()

	switch {
	case failures <= 1:
		c.logger.Warn("health probe failed", "error", err)

	case failures <= refreshPoolAfter+1:
		c.logger.Warn("health probe failing, refreshing connection pool",
			"consecutive", failures, "error", err)
		c.synced.Store(false)
		c.pool.Drain()

	case failures <= markUnhealthyAfter:
		c.logger.Warn("health probe still failing, attempting full recovery",
			"consecutive", failures, "error", err)
		c.recover()

	default:
		c.mu.Lock()
		already := c.unhealthy
		c.unhealthy = true
		c.mu.Unlock()
		if !already {
			c.logger.Error("node marked unhealthy", "consecutive", failures, "error", err)
			c.notifyStatus(structs.NodeStatusUnhealthy, err.Error())
		}
	}
}

// recover drains the pool and probes once, respecting the recovery rate
// limit.
func (c *Client) recover() {
	allowed, wait := c.recovery.TryRecovery()
	if !allowed {
		c.logger.Debug("recovery attempt rate limited", "retry_in", wait)
		return
	}

	c.synced.Store(false)
	c.pool.Drain()
	if err := c.Ping(c.ctx); err != nil {
		c.logger.Warn("recovery probe failed", "error", err)
		return
	}
	if err := c.resync(c.ctx); err != nil {
		c.logger.Warn("node sync after recovery failed", "error", err)
		return
	}
	c.logger.Info("node recovered")
}

func (c *Client) notifyStatus(status structs.NodeStatus, message string) {
	if c.cfg.OnStatusChange != nil {
		c.cfg.OnStatusChange(c.node.ID, status, message)
	}
}

// peakLoop keeps a peak event stream open, reconnecting with backoff and
// replaying missed events after each reconnect.
func (c *Client) peakLoop() {
	defer c.wg.Done()

	var lastSeenSeq uint64
	attempt := 1

	for {
		if c.ctx.Err() != nil {
			return
		}

		err := c.consumePeaks(&lastSeenSeq)
		if c.ctx.Err() != nil {
			return
		}
		if err != nil {
			c.logger.Debug("peak stream interrupted", "error", err)
		}

		if err := backoff.Wait(c.ctx, peakStreamRetryBase, peakStreamRetryMax, attempt); err != nil {
			return
		}
		attempt++
	}
}

// consumePeaks replays missed events, then follows the live stream until it
// breaks.
func (c *Client) consumePeaks(lastSeenSeq *uint64) error {
	// Gap replay first, so a reconnect does not lose events emitted while
	// the stream was down. The cursor is the last seen sequence number, not
	// a timestamp: sequence numbers stay strictly monotonic across node
	// restarts while wall clocks do not.
	if *lastSeenSeq > 0 {
		events, err := c.FetchPeakEvents(c.ctx, *lastSeenSeq, "")
		if err != nil {
			return err
		}
		for _, event := range events {
			c.deliverPeak(event, lastSeenSeq)
		}
	}

	conn, err := c.pool.Acquire(c.ctx)
	if err != nil {
		return err
	}

	streamCtx, cancel := c.authContext(c.ctx, 0)
	defer cancel()

	stream, err := proto.NewNodeServiceClient(conn.ClientConn()).StreamPeakEvents(streamCtx, &proto.Empty{})
	if err != nil {
		c.pool.Release(conn, false)
		return err
	}

	for {
		event, err := stream.Recv()
		if err != nil {
			c.pool.Release(conn, !pool.LooksLikeRestart(err))
			return err
		}
		c.deliverPeak(proto.PeakEventFromProto(event), lastSeenSeq)
	}
}

func (c *Client) deliverPeak(event structs.PeakEvent, lastSeenSeq *uint64) {
	if event.Seq > *lastSeenSeq {
		*lastSeenSeq = event.Seq
	}
	metrics.IncrCounter([]string{"fleet", "nodeclient", "peak_events"}, 1)
	c.cfg.OnPeakEvent(event)
}
