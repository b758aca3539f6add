package recovery

import (
	"math"
	"sync"
	"time"

	hclog "github.com/hashicorp/go-hclog"
	metrics "github.com/hashicorp/go-metrics"
)

// Mode is a node's recovery operating mode. Modes escalate with consecutive
// failures and step back down only after a run of consecutive successes: a
// struggling node earns degraded first and full operation later, rather than
// flapping to normal on a single lucky probe.
type Mode string

const (
	// ModeNormal: full operation.
	ModeNormal Mode = "normal"

	// ModeDegraded: non-essential operations pause, reads prefer fallback.
	ModeDegraded Mode = "degraded"

	// ModeEmergency: only liveness checks and recovery attempts run.
	ModeEmergency Mode = "emergency"

	// ModeOffline: the node is written off until an operator or a very
	// patient recovery loop brings it back.
	ModeOffline Mode = "offline"
)

const (
	degradedAfter  = 3
	emergencyAfter = 5
	offlineAfter   = 10

	// improvingAfter consecutive successes step a node down to degraded;
	// recoveredAfter restore full operation.
	improvingAfter = 3
	recoveredAfter = 5

	maxRecoveryWait = 60 * time.Second
)

var modeRank = map[Mode]int{
	ModeNormal:    0,
	ModeDegraded:  1,
	ModeEmergency: 2,
	ModeOffline:   3,
}

// Manager tracks one node's failure and success streaks and gates recovery
// attempts.
type Manager struct {
	logger hclog.Logger
	nodeID int64

	mu          sync.Mutex
	mode        Mode
	consecutive int
	successes   int
	attempts    int
	lastAttempt time.Time

	now func() time.Time
}

// NewManager builds a recovery manager for one node.
func NewManager(logger hclog.Logger, nodeID int64) *Manager {
	return &Manager{
		logger: logger.Named("recovery").With("node_id", nodeID),
		nodeID: nodeID,
		mode:   ModeNormal,
		now:    time.Now,
	}
}

// Mode returns the current operating mode.
func (m *Manager) Mode() Mode {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mode
}

func modeForFailures(n int) Mode {
	switch {
	case n >= offlineAfter:
		return ModeOffline
	case n >= emergencyAfter:
		return ModeEmergency
	case n >= degradedAfter:
		return ModeDegraded
	default:
		return ModeNormal
	}
}

// RecordSuccess extends the success streak. Three consecutive successes step
// an emergency or offline node down to degraded; five restore normal
// operation. A single success never un-escalates the mode.
func (m *Manager) RecordSuccess() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.consecutive = 0
	if m.mode == ModeNormal {
		m.successes = 0
		return
	}

	m.successes++
	switch {
	case m.successes >= recoveredAfter:
		m.logger.Info("node recovered", "previous_mode", m.mode, "successes", m.successes)
		m.mode = ModeNormal
		m.successes = 0
		m.attempts = 0
	case m.successes >= improvingAfter && modeRank[m.mode] > modeRank[ModeDegraded]:
		m.logger.Info("node improving", "from", m.mode, "to", ModeDegraded, "successes", m.successes)
		m.mode = ModeDegraded
	}
}

// RecordFailure extends the failure streak and returns the resulting mode.
// The mode only ratchets upward here; stepping down is earned through
// RecordSuccess.
func (m *Manager) RecordFailure() Mode {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.successes = 0
	m.consecutive++

	if after := modeForFailures(m.consecutive); modeRank[after] > modeRank[m.mode] {
		m.logger.Warn("node mode escalated",
			"from", m.mode, "to", after, "consecutive_failures", m.consecutive)
		metrics.IncrCounterWithLabels([]string{"fleet", "recovery", "escalation"}, 1,
			[]metrics.Label{{Name: "mode", Value: string(after)}})
		m.mode = after
	}
	return m.mode
}

// ConsecutiveFailures returns the current streak length.
func (m *Manager) ConsecutiveFailures() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.consecutive
}

// recoveryWait is the minimum spacing before recovery attempt n (1-based):
// 2^n seconds capped at a minute.
func recoveryWait(attempts int) time.Duration {
	if attempts <= 0 {
		return 0
	}
	wait := time.Duration(math.Pow(2, float64(attempts))) * time.Second
	if wait > maxRecoveryWait {
		wait = maxRecoveryWait
	}
	return wait
}

// TryRecovery reports whether a recovery attempt is allowed now, and when to
// ask again if not. Allowed attempts are recorded, so callers must follow an
// allowed TryRecovery with an actual attempt.
func (m *Manager) TryRecovery() (bool, time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.mode == ModeNormal {
		return true, 0
	}

	now := m.now()
	wait := recoveryWait(m.attempts)
	if elapsed := now.Sub(m.lastAttempt); elapsed < wait {
		return false, wait - elapsed
	}

	m.attempts++
	m.lastAttempt = now
	return true, 0
}
