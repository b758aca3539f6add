package breaker

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shoenig/test/must"

	"github.com/wildosvpn/fleet/helper/testlog"
)

var errBoom = errors.New("boom")

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func testSet(t *testing.T) (*Set, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Unix(1700000000, 0)}
	s := NewSet(testlog.HCLogger(t), "10.0.0.1:62050", Config{})
	s.now = clock.Now
	return s, clock
}

func fail(s *Set, class Class) error {
	return s.Do(class, func() error { return errBoom })
}

func succeed(s *Set, class Class) error {
	return s.Do(class, func() error { return nil })
}

func TestSet_OpensOnConsecutiveFailures(t *testing.T) {
	s, _ := testSet(t)

	for i := 0; i < 5; i++ {
		must.Eq(t, StateClosed, s.State(ClassUserStats))
		must.ErrorIs(t, fail(s, ClassUserStats), errBoom)
	}
	must.Eq(t, StateOpen, s.State(ClassUserStats))

	// Open rejects without running the function.
	ran := false
	err := s.Do(ClassUserStats, func() error { ran = true; return nil })
	must.ErrorIs(t, err, ErrOpen)
	must.False(t, ran)
}

func TestSet_SuccessResetsConsecutive(t *testing.T) {
	s, _ := testSet(t)

	must.Error(t, fail(s, ClassUserSync))
	must.Error(t, fail(s, ClassUserSync))
	must.NoError(t, succeed(s, ClassUserSync))
	must.Error(t, fail(s, ClassUserSync))
	must.Error(t, fail(s, ClassUserSync))
	must.Eq(t, StateClosed, s.State(ClassUserSync))
}

func TestSet_OpensOnErrorRate(t *testing.T) {
	s, _ := testSet(t)

	// Never five consecutive failures, but the window accumulates five
	// failures at a rate past the threshold.
	for i := 0; i < 3; i++ {
		must.Error(t, fail(s, ClassBackendOps))
	}
	must.NoError(t, succeed(s, ClassBackendOps))
	must.Error(t, fail(s, ClassBackendOps))
	must.Error(t, fail(s, ClassBackendOps))
	must.Eq(t, StateOpen, s.State(ClassBackendOps))
}

func TestSet_WindowSlides(t *testing.T) {
	s, clock := testSet(t)

	// Old failures age out of the window, so spread-out failures with
	// interleaved successes never trip the rate check.
	for i := 0; i < 8; i++ {
		must.Error(t, fail(s, ClassLogsStreaming))
		must.NoError(t, succeed(s, ClassLogsStreaming))
		clock.Advance(90 * time.Second)
	}
	must.Eq(t, StateClosed, s.State(ClassLogsStreaming))
}

func TestSet_HalfOpenRecovery(t *testing.T) {
	s, clock := testSet(t)

	for i := 0; i < 5; i++ {
		must.Error(t, fail(s, ClassUserStats))
	}
	must.Eq(t, StateOpen, s.State(ClassUserStats))

	// After the recovery timeout the breaker admits probes again.
	clock.Advance(30 * time.Second)
	must.Eq(t, StateHalfOpen, s.State(ClassUserStats))

	// Three successful probes close it.
	for i := 0; i < 3; i++ {
		must.NoError(t, succeed(s, ClassUserStats))
	}
	must.Eq(t, StateClosed, s.State(ClassUserStats))
}

func TestSet_HalfOpenFailureReopens(t *testing.T) {
	s, clock := testSet(t)

	for i := 0; i < 5; i++ {
		must.Error(t, fail(s, ClassUserStats))
	}
	clock.Advance(30 * time.Second)
	must.Eq(t, StateHalfOpen, s.State(ClassUserStats))

	must.Error(t, fail(s, ClassUserStats))
	must.Eq(t, StateOpen, s.State(ClassUserStats))

	// The reopened breaker waits a full recovery timeout again.
	clock.Advance(10 * time.Second)
	must.ErrorIs(t, succeed(s, ClassUserStats), ErrOpen)
}

func TestSet_HalfOpenProbeBudget(t *testing.T) {
	s, clock := testSet(t)

	for i := 0; i < 5; i++ {
		must.Error(t, fail(s, ClassUserStats))
	}
	clock.Advance(30 * time.Second)

	// Three concurrent probes occupy the budget; a fourth is rejected.
	release := make(chan struct{})
	started := make(chan struct{}, 3)
	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Do(ClassUserStats, func() error {
				started <- struct{}{}
				<-release
				return nil
			})
		}()
	}
	for i := 0; i < 3; i++ {
		<-started
	}

	err := s.Do(ClassUserStats, func() error { return nil })
	must.ErrorIs(t, err, ErrTooManyProbes)

	close(release)
	wg.Wait()
	must.Eq(t, StateClosed, s.State(ClassUserStats))
}

func TestSet_ClassesAreIndependent(t *testing.T) {
	s, _ := testSet(t)

	for i := 0; i < 5; i++ {
		must.Error(t, fail(s, ClassUserStats))
	}
	must.Eq(t, StateOpen, s.State(ClassUserStats))
	must.Eq(t, StateClosed, s.State(ClassUserSync))
	must.NoError(t, succeed(s, ClassUserSync))
}
