// Package breaker implements per-operation-class circuit breaking for node
// RPCs. Each node client carries one Set; an unhealthy operation class trips
// its own breaker without taking unrelated classes down with it.
package breaker

import (
	"errors"
	"sync"
	"time"

	hclog "github.com/hashicorp/go-hclog"
	metrics "github.com/hashicorp/go-metrics"
)

// Class buckets node RPCs by failure domain.
type Class string

const (
	ClassUserStats        Class = "user_stats"
	ClassUserSync         Class = "user_sync"
	ClassBackendOps       Class = "backend_operations"
	ClassLogsStreaming    Class = "logs_streaming"
	ClassSystemMonitoring Class = "system_monitoring"
)

// Classes lists every operation class.
var Classes = []Class{
	ClassUserStats,
	ClassUserSync,
	ClassBackendOps,
	ClassLogsStreaming,
	ClassSystemMonitoring,
}

// State is the breaker state for one class.
type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "closed"
	}
}

var (
	// ErrOpen rejects calls while a class breaker is open.
	ErrOpen = errors.New("circuit breaker is open")

	// ErrTooManyProbes rejects calls beyond the half-open probe budget.
	ErrTooManyProbes = errors.New("circuit breaker is probing")
)

// Config tunes a Set. The zero value takes the defaults.
type Config struct {
	// FailureThreshold consecutive failures open the breaker.
	FailureThreshold int

	// ErrorRate over Window also opens it, once at least FailureThreshold
	// samples have been seen in the window.
	ErrorRate float64
	Window    time.Duration

	// RecoveryTimeout is how long an open breaker waits before probing.
	RecoveryTimeout time.Duration

	// HalfOpenMaxCalls caps concurrent probes while half-open.
	HalfOpenMaxCalls int
}

func (c Config) withDefaults() Config {
	if c.FailureThreshold == 0 {
		c.FailureThreshold = 5
	}
	if c.ErrorRate == 0 {
		c.ErrorRate = 0.5
	}
	if c.Window == 0 {
		c.Window = time.Minute
	}
	if c.RecoveryTimeout == 0 {
		c.RecoveryTimeout = 30 * time.Second
	}
	if c.HalfOpenMaxCalls == 0 {
		c.HalfOpenMaxCalls = 3
	}
	return c
}

type sample struct {
	at time.Time
	ok bool
}

type classBreaker struct {
	mu sync.Mutex

	state        State
	consecutive  int
	samples      []sample
	openedAt     time.Time
	probesActive int
	probesOK     int
}

// Set holds one breaker per operation class.
type Set struct {
	logger hclog.Logger
	config Config
	node   string

	mu       sync.Mutex
	breakers map[Class]*classBreaker

	// now is swappable for tests.
	now func() time.Time
}

// NewSet builds a breaker set for one node.
func NewSet(logger hclog.Logger, node string, config Config) *Set {
	return &Set{
		logger:   logger.Named("breaker").With("node", node),
		config:   config.withDefaults(),
		node:     node,
		breakers: make(map[Class]*classBreaker),
		now:      time.Now,
	}
}

func (s *Set) breaker(class Class) *classBreaker {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.breakers[class]
	if !ok {
		b = &classBreaker{}
		s.breakers[class] = b
	}
	return b
}

// Reset forces every class breaker back to closed and drops the recorded
// samples, as if the set were freshly built.
func (s *Set) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.breakers {
		b.mu.Lock()
		b.state = StateClosed
		b.consecutive = 0
		b.samples = nil
		b.probesActive = 0
		b.probesOK = 0
		b.mu.Unlock()
	}
}

// State reports the current state of a class breaker.
func (s *Set) State(class Class) State {
	b := s.breaker(class)
	b.mu.Lock()
	defer b.mu.Unlock()
	return s.effectiveState(b)
}

// effectiveState folds the recovery timeout into the reported state. The
// caller holds b.mu.
func (s *Set) effectiveState(b *classBreaker) State {
	if b.state == StateOpen && s.now().Sub(b.openedAt) >= s.config.RecoveryTimeout {
		b.state = StateHalfOpen
		b.probesActive = 0
		b.probesOK = 0
	}
	return b.state
}

// Do runs fn under the class breaker. The function executes outside the
// breaker lock, so a slow call never blocks state inspection or other
// callers' admission decisions.
func (s *Set) Do(class Class, fn func() error) error {
	b := s.breaker(class)

	b.mu.Lock()
	switch s.effectiveState(b) {
	case StateOpen:
		b.mu.Unlock()
		metrics.IncrCounterWithLabels([]string{"fleet", "breaker", "rejected"}, 1,
			[]metrics.Label{{Name: "class", Value: string(class)}})
		return ErrOpen
	case StateHalfOpen:
		if b.probesActive >= s.config.HalfOpenMaxCalls {
			b.mu.Unlock()
			return ErrTooManyProbes
		}
		b.probesActive++
	}
	b.mu.Unlock()

	err := fn()

	b.mu.Lock()
	defer b.mu.Unlock()
	s.record(class, b, err == nil)
	return err
}

// record applies a call outcome. The caller holds b.mu.
func (s *Set) record(class Class, b *classBreaker, ok bool) {
	now := s.now()

	switch b.state {
	case StateHalfOpen:
		b.probesActive--
		if !ok {
			s.transition(class, b, StateOpen, now)
			return
		}
		b.probesOK++
		if b.probesOK >= s.config.HalfOpenMaxCalls {
			s.transition(class, b, StateClosed, now)
		}
		return

	case StateOpen:
		// A call admitted before the breaker opened finished late; its
		// outcome no longer matters.
		return
	}

	b.samples = append(b.samples, sample{at: now, ok: ok})
	s.prune(b, now)

	if ok {
		b.consecutive = 0
		return
	}

	b.consecutive++
	if b.consecutive >= s.config.FailureThreshold || s.windowTripped(b) {
		s.transition(class, b, StateOpen, now)
	}
}

func (s *Set) prune(b *classBreaker, now time.Time) {
	cutoff := now.Add(-s.config.Window)
	keep := b.samples[:0]
	for _, smp := range b.samples {
		if smp.at.After(cutoff) {
			keep = append(keep, smp)
		}
	}
	b.samples = keep
}

// windowTripped reports whether the rolling window holds enough failures at
// a high enough rate to open the breaker.
func (s *Set) windowTripped(b *classBreaker) bool {
	var failures int
	for _, smp := range b.samples {
		if !smp.ok {
			failures++
		}
	}
	if failures < s.config.FailureThreshold {
		return false
	}
	return float64(failures)/float64(len(b.samples)) >= s.config.ErrorRate
}

// transition moves a class breaker to a new state. The caller holds b.mu.
func (s *Set) transition(class Class, b *classBreaker, to State, now time.Time) {
	from := b.state
	if from == to {
		return
	}
	b.state = to
	b.consecutive = 0
	b.probesActive = 0
	b.probesOK = 0
	if to == StateOpen {
		b.openedAt = now
	}
	if to == StateClosed {
		b.samples = nil
	}

	s.logger.Info("circuit breaker state change",
		"class", class, "from", from.String(), "to", to.String())
	metrics.IncrCounterWithLabels([]string{"fleet", "breaker", "transition"}, 1,
		[]metrics.Label{
			{Name: "class", Value: string(class)},
			{Name: "to", Value: to.String()},
		})
}
