package pool

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shoenig/test/must"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/wildosvpn/fleet/helper/testlog"
)

// lazyDial returns real (but unconnected) client connections; gRPC only
// dials on first RPC, so no listener is needed.
func lazyDial(ctx context.Context, addr string) (*grpc.ClientConn, error) {
	return grpc.NewClient("passthrough:///"+addr,
		grpc.WithTransportCredentials(insecure.NewCredentials()))
}

func testPool(t *testing.T, cfg Config) *Pool {
	t.Helper()
	cfg.Logger = testlog.HCLogger(t)
	cfg.Addr = "10.0.0.1:62050"
	if cfg.Dial == nil {
		cfg.Dial = lazyDial
	}
	p, err := New(cfg)
	must.NoError(t, err)
	t.Cleanup(p.Close)
	return p
}

func TestPool_AcquireRelease(t *testing.T) {
	p := testPool(t, Config{MaxConns: 2})
	ctx := context.Background()

	conn, err := p.Acquire(ctx)
	must.NoError(t, err)
	must.NotNil(t, conn.ClientConn())

	total, busy := p.Stats()
	must.Eq(t, 1, total)
	must.Eq(t, 1, busy)

	p.Release(conn, true)
	_, busy = p.Stats()
	must.Eq(t, 0, busy)

	// The released connection is reused instead of dialing another.
	again, err := p.Acquire(ctx)
	must.NoError(t, err)
	must.Eq(t, conn, again)
	p.Release(again, true)
}

func TestPool_CeilingAndTimeout(t *testing.T) {
	p := testPool(t, Config{MaxConns: 3, AcquireTimeout: 50 * time.Millisecond})
	ctx := context.Background()

	var conns []*Conn
	for i := 0; i < 3; i++ {
		conn, err := p.Acquire(ctx)
		must.NoError(t, err)
		conns = append(conns, conn)
	}

	total, busy := p.Stats()
	must.Eq(t, 3, total)
	must.Eq(t, 3, busy)

	// Everything is busy and the pool is at its ceiling.
	_, err := p.Acquire(ctx)
	must.ErrorIs(t, err, ErrAcquireTimeout)

	// A release unblocks a waiter.
	done := make(chan error, 1)
	go func() {
		conn, err := p.Acquire(ctx)
		if err == nil {
			p.Release(conn, true)
		}
		done <- err
	}()
	time.Sleep(10 * time.Millisecond)
	p.Release(conns[0], true)
	must.NoError(t, <-done)

	for _, conn := range conns[1:] {
		p.Release(conn, true)
	}
}

func TestPool_UnhealthyReleaseRetires(t *testing.T) {
	p := testPool(t, Config{MaxConns: 4})
	ctx := context.Background()

	conn, err := p.Acquire(ctx)
	must.NoError(t, err)

	p.Release(conn, false)
	total, _ := p.Stats()
	must.Eq(t, 0, total)
}

func TestPool_InstabilityShrinks(t *testing.T) {
	p := testPool(t, Config{MinConns: 1, MaxConns: 8})
	ctx := context.Background()

	// Build up some idle connections.
	var conns []*Conn
	for i := 0; i < 6; i++ {
		conn, err := p.Acquire(ctx)
		must.NoError(t, err)
		conns = append(conns, conn)
	}
	for _, conn := range conns[:5] {
		p.Release(conn, true)
	}

	// Four unhealthy releases cross the instability limit.
	for i := 0; i < 3; i++ {
		conn, err := p.Acquire(ctx)
		must.NoError(t, err)
		p.Release(conn, false)
	}
	p.Release(conns[5], false)

	total, _ := p.Stats()
	must.LessEq(t, 1, total)
}

func TestPool_Drain(t *testing.T) {
	p := testPool(t, Config{MaxConns: 4})
	ctx := context.Background()

	conn, err := p.Acquire(ctx)
	must.NoError(t, err)
	p.Release(conn, true)

	p.Drain()
	total, _ := p.Stats()
	must.Eq(t, 0, total)

	// The pool keeps working after a drain.
	conn, err = p.Acquire(ctx)
	must.NoError(t, err)
	p.Release(conn, true)
}

func TestPool_ClosedRejectsAcquire(t *testing.T) {
	p := testPool(t, Config{MaxConns: 2})
	p.Close()

	_, err := p.Acquire(context.Background())
	must.ErrorIs(t, err, ErrPoolClosed)
}

func TestPool_DialFailure(t *testing.T) {
	dialErr := errors.New("connect: connection refused")
	p := testPool(t, Config{
		MaxConns: 2,
		Dial: func(ctx context.Context, addr string) (*grpc.ClientConn, error) {
			return nil, dialErr
		},
	})

	_, err := p.Acquire(context.Background())
	must.ErrorIs(t, err, dialErr)

	// The reserved slot was returned on failure.
	total, _ := p.Stats()
	must.Eq(t, 0, total)
}

func TestLooksLikeRestart(t *testing.T) {
	must.False(t, LooksLikeRestart(nil))
	must.False(t, LooksLikeRestart(errors.New("deadline exceeded")))
	must.True(t, LooksLikeRestart(errors.New("dial tcp 10.0.0.1:62050: connect: connection refused")))
	must.True(t, LooksLikeRestart(errors.New("rpc error: code = Unavailable desc = transport is closing")))
	must.True(t, LooksLikeRestart(errors.New("read tcp: connection reset by peer")))
}
