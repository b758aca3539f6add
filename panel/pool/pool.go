// Package pool maintains the panel's gRPC connections to a single node.
// Connections are pooled between a floor and a ceiling, recycled on age and
// idleness, and torn down wholesale when the node looks like it restarted.
package pool

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	hclog "github.com/hashicorp/go-hclog"
	metrics "github.com/hashicorp/go-metrics"
	"google.golang.org/grpc"
	"google.golang.org/grpc/connectivity"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/wildosvpn/fleet/helper/tlsutil"
)

const (
	defaultMinConns       = 5
	defaultMaxConns       = 10
	defaultMaxLifetime    = time.Hour
	defaultIdleTimeout    = 5 * time.Minute
	defaultAcquireTimeout = 5 * time.Second
	defaultHealthInterval = 60 * time.Second

	// instabilityLimit is how many broken connections we tolerate before
	// shrinking the pool back to its floor.
	instabilityLimit = 3
)

// ErrAcquireTimeout is returned when no connection frees up in time.
var ErrAcquireTimeout = errors.New("timed out waiting for a pooled connection")

// ErrPoolClosed is returned after Close.
var ErrPoolClosed = errors.New("connection pool is closed")

// restartPatterns are error strings a node restart typically produces. Any
// of them appearing in an RPC error is grounds for draining the pool rather
// than retiring connections one by one.
var restartPatterns = []string{
	"connection refused",
	"connection reset by peer",
	"transport is closing",
	"error reading from server: EOF",
}

// LooksLikeRestart reports whether an error suggests the node process went
// away, taking every pooled connection with it.
func LooksLikeRestart(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, pattern := range restartPatterns {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}

// Config configures a Pool. Zero fields take the defaults above.
type Config struct {
	Logger hclog.Logger
	Addr   string

	// TLS is required outside tests; it carries the CA, the client pair and
	// the pinned node certificate.
	TLS *tlsutil.Config

	MinConns       int
	MaxConns       int
	MaxLifetime    time.Duration
	IdleTimeout    time.Duration
	AcquireTimeout time.Duration
	HealthInterval time.Duration

	// Dial overrides the gRPC dial, for tests.
	Dial func(ctx context.Context, addr string) (*grpc.ClientConn, error)
}

func (c Config) withDefaults() Config {
	if c.MinConns == 0 {
		c.MinConns = defaultMinConns
	}
	if c.MaxConns == 0 {
		c.MaxConns = defaultMaxConns
	}
	if c.MaxLifetime == 0 {
		c.MaxLifetime = defaultMaxLifetime
	}
	if c.IdleTimeout == 0 {
		c.IdleTimeout = defaultIdleTimeout
	}
	if c.AcquireTimeout == 0 {
		c.AcquireTimeout = defaultAcquireTimeout
	}
	if c.HealthInterval == 0 {
		c.HealthInterval = defaultHealthInterval
	}
	return c
}

// Conn is a pooled connection checked out by one caller at a time.
type Conn struct {
	cc        *grpc.ClientConn
	createdAt time.Time
	lastUsed  time.Time
	inUse     bool
}

// ClientConn exposes the underlying gRPC connection.
func (c *Conn) ClientConn() *grpc.ClientConn {
	return c.cc
}

// Pool is a bounded connection pool for one node.
type Pool struct {
	logger hclog.Logger
	cfg    Config

	mu          sync.Mutex
	conns       []*Conn
	instability int
	closed      bool

	// released wakes one Acquire waiter after a connection frees up.
	released chan struct{}

	stopHealth context.CancelFunc
	healthDone chan struct{}
}

// New builds a pool and starts its health loop. Connections are dialed
// lazily; the health loop tops the pool up to its floor.
func New(cfg Config) (*Pool, error) {
	cfg = cfg.withDefaults()
	if cfg.Dial == nil {
		dial, err := grpcDialer(cfg.TLS)
		if err != nil {
			return nil, err
		}
		cfg.Dial = dial
	}

	p := &Pool{
		logger:     cfg.Logger.Named("pool").With("node", cfg.Addr),
		cfg:        cfg,
		released:   make(chan struct{}, 1),
		healthDone: make(chan struct{}),
	}

	ctx, cancel := context.WithCancel(context.Background())
	p.stopHealth = cancel
	go p.healthLoop(ctx)

	return p, nil
}

// grpcDialer builds the real dial function: TLS 1.2+, CA verification and
// byte-exact pinning of the node's leaf certificate.
func grpcDialer(tlsCfg *tlsutil.Config) (func(ctx context.Context, addr string) (*grpc.ClientConn, error), error) {
	var creds credentials.TransportCredentials
	if tlsCfg != nil {
		config, err := tlsCfg.OutgoingTLSConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to build client TLS config: %w", err)
		}
		creds = credentials.NewTLS(config)
	} else {
		creds = insecure.NewCredentials()
	}

	return func(ctx context.Context, addr string) (*grpc.ClientConn, error) {
		return grpc.DialContext(ctx, addr, grpc.WithTransportCredentials(creds))
	}, nil
}

// Acquire checks out a connection, dialing a new one when the pool is below
// its ceiling and everything else is busy.
func (p *Pool) Acquire(ctx context.Context) (*Conn, error) {
	ctx, cancel := context.WithTimeout(ctx, p.cfg.AcquireTimeout)
	defer cancel()

	for {
		p.mu.Lock()
		if p.closed {
			p.mu.Unlock()
			return nil, ErrPoolClosed
		}

		if conn := p.idleLocked(time.Now()); conn != nil {
			conn.inUse = true
			conn.lastUsed = time.Now()
			p.mu.Unlock()
			return conn, nil
		}

		if len(p.conns) < p.cfg.MaxConns {
			// Reserve the slot with a placeholder so concurrent acquires
			// cannot overshoot the ceiling while we dial.
			placeholder := &Conn{inUse: true, createdAt: time.Now()}
			p.conns = append(p.conns, placeholder)
			p.mu.Unlock()

			cc, err := p.cfg.Dial(ctx, p.cfg.Addr)

			p.mu.Lock()
			if err != nil {
				p.removeLocked(placeholder)
				p.instability++
				p.mu.Unlock()
				return nil, fmt.Errorf("failed to dial %s: %w", p.cfg.Addr, err)
			}
			placeholder.cc = cc
			placeholder.lastUsed = time.Now()
			p.mu.Unlock()
			metrics.IncrCounter([]string{"fleet", "pool", "dialed"}, 1)
			return placeholder, nil
		}
		p.mu.Unlock()

		select {
		case <-ctx.Done():
			metrics.IncrCounter([]string{"fleet", "pool", "acquire_timeout"}, 1)
			return nil, ErrAcquireTimeout
		case <-p.released:
		}
	}
}

// idleLocked returns a usable idle connection, retiring expired ones along
// the way. The caller holds p.mu.
func (p *Pool) idleLocked(now time.Time) *Conn {
	for _, conn := range p.conns {
		if conn.inUse || conn.cc == nil {
			continue
		}
		if now.Sub(conn.createdAt) >= p.cfg.MaxLifetime {
			p.closeLocked(conn)
			continue
		}
		if s := conn.cc.GetState(); s == connectivity.TransientFailure || s == connectivity.Shutdown {
			p.closeLocked(conn)
			p.instability++
			continue
		}
		return conn
	}
	return nil
}

// Release returns a connection. Unhealthy connections are retired and count
// toward the instability limit; crossing it shrinks the pool to its floor.
func (p *Pool) Release(conn *Conn, healthy bool) {
	p.mu.Lock()
	conn.inUse = false
	conn.lastUsed = time.Now()

	if !healthy {
		p.closeLocked(conn)
		p.instability++
		if p.instability > instabilityLimit {
			p.shrinkLocked()
			p.instability = 0
		}
	}
	p.mu.Unlock()

	select {
	case p.released <- struct{}{}:
	default:
	}
}

// Drain closes every connection, for when the node evidently restarted. The
// next Acquire dials fresh.
func (p *Pool) Drain() {
	p.mu.Lock()
	n := len(p.conns)
	for _, conn := range p.conns {
		if conn.cc != nil {
			conn.cc.Close()
		}
	}
	p.conns = nil
	p.instability = 0
	p.mu.Unlock()

	if n > 0 {
		p.logger.Info("drained connection pool", "closed", n)
		metrics.IncrCounter([]string{"fleet", "pool", "drained"}, 1)
	}
}

// shrinkLocked retires idle connections beyond the floor. The caller holds
// p.mu.
func (p *Pool) shrinkLocked() {
	var closed int
	for _, conn := range append([]*Conn(nil), p.conns...) {
		if len(p.conns) <= p.cfg.MinConns {
			break
		}
		if !conn.inUse && conn.cc != nil {
			p.closeLocked(conn)
			closed++
		}
	}
	if closed > 0 {
		p.logger.Warn("shrank unstable pool", "closed", closed, "remaining", len(p.conns))
	}
}

// closeLocked closes and removes one connection. The caller holds p.mu.
func (p *Pool) closeLocked(conn *Conn) {
	if conn.cc != nil {
		conn.cc.Close()
	}
	p.removeLocked(conn)
}

func (p *Pool) removeLocked(conn *Conn) {
	for i, c := range p.conns {
		if c == conn {
			p.conns = append(p.conns[:i], p.conns[i+1:]...)
			return
		}
	}
}

// healthLoop retires idle and aged connections and keeps the pool at its
// floor.
func (p *Pool) healthLoop(ctx context.Context) {
	defer close(p.healthDone)
	ticker := time.NewTicker(p.cfg.HealthInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.sweep()
			p.topUp(ctx)
		}
	}
}

// sweep retires connections past their lifetime and idle ones beyond the
// floor.
func (p *Pool) sweep() {
	now := time.Now()

	p.mu.Lock()
	for _, conn := range append([]*Conn(nil), p.conns...) {
		if conn.inUse || conn.cc == nil {
			continue
		}
		if now.Sub(conn.createdAt) >= p.cfg.MaxLifetime {
			p.closeLocked(conn)
			continue
		}
		if len(p.conns) > p.cfg.MinConns && now.Sub(conn.lastUsed) >= p.cfg.IdleTimeout {
			p.closeLocked(conn)
		}
	}
	p.mu.Unlock()
}

// topUp dials until the pool holds at least its floor.
func (p *Pool) topUp(ctx context.Context) {
	for {
		p.mu.Lock()
		if p.closed || len(p.conns) >= p.cfg.MinConns {
			p.mu.Unlock()
			return
		}
		placeholder := &Conn{inUse: true, createdAt: time.Now()}
		p.conns = append(p.conns, placeholder)
		p.mu.Unlock()

		dialCtx, cancel := context.WithTimeout(ctx, p.cfg.AcquireTimeout)
		cc, err := p.cfg.Dial(dialCtx, p.cfg.Addr)
		cancel()

		p.mu.Lock()
		if err != nil {
			p.removeLocked(placeholder)
			p.mu.Unlock()
			p.logger.Debug("pool top-up dial failed", "error", err)
			return
		}
		placeholder.cc = cc
		placeholder.inUse = false
		placeholder.lastUsed = time.Now()
		p.mu.Unlock()
	}
}

// Stats reports pool occupancy.
func (p *Pool) Stats() (total, busy int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, conn := range p.conns {
		if conn.inUse {
			busy++
		}
	}
	return len(p.conns), busy
}

// Close drains the pool and stops the health loop.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.mu.Unlock()

	p.stopHealth()
	<-p.healthDone
	p.Drain()
}
