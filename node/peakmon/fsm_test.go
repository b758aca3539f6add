package peakmon

import (
	"testing"
	"time"

	"github.com/shoenig/test/must"

	"github.com/wildosvpn/fleet/structs"
)

func testSeq() func() (uint64, error) {
	var n uint64
	return func() (uint64, error) {
		n++
		return n, nil
	}
}

func TestTracker_Lifecycle(t *testing.T) {
	tr := newTracker(7, structs.PeakCategoryCPU, "cpu_percent", Thresholds{Warning: 75, Critical: 90})
	nextSeq := testSeq()
	now := time.Unix(1700000000, 0)
	step := func(d time.Duration) time.Time {
		now = now.Add(d)
		return now
	}

	// Below threshold: nothing happens.
	must.Len(t, 0, tr.observe(now, 50, nextSeq))

	// First crossing opens the peak at warning.
	events := tr.observe(step(5*time.Second), 80, nextSeq)
	must.Len(t, 1, events)
	start := events[0]
	must.Eq(t, structs.PeakLevelWarning, start.Level)
	must.Eq(t, uint64(1), start.Seq)
	must.Eq(t, float64(75), start.Threshold)
	must.False(t, start.Resolved())
	must.Eq(t, structs.PeakDedupeKey(7, structs.PeakCategoryCPU, "cpu_percent"), start.DedupeKey)

	// Confirmation sample emits nothing new.
	must.Len(t, 0, tr.observe(step(5*time.Second), 82, nextSeq))

	// Escalation to critical stays in the same interval but draws a fresh
	// sequence number, so the upgrade orders after the start.
	events = tr.observe(step(5*time.Second), 95, nextSeq)
	must.Len(t, 1, events)
	upgrade := events[0]
	must.Eq(t, structs.PeakLevelCritical, upgrade.Level)
	must.Eq(t, uint64(2), upgrade.Seq)
	must.Eq(t, start.DedupeKey, upgrade.DedupeKey)
	must.Eq(t, start.StartedAtMs, upgrade.StartedAtMs)

	// Severity never downgrades while open.
	must.Len(t, 0, tr.observe(step(5*time.Second), 80, nextSeq))

	// Three settled samples, but still inside the minimum duration at the
	// first of them; the peak resolves once both conditions hold.
	must.Len(t, 0, tr.observe(step(5*time.Second), 60, nextSeq))
	must.Len(t, 0, tr.observe(step(5*time.Second), 58, nextSeq))
	events = tr.observe(step(5*time.Second), 55, nextSeq)
	must.Len(t, 1, events)
	resolve := events[0]
	must.True(t, resolve.Resolved())
	must.Eq(t, uint64(3), resolve.Seq)
	must.Eq(t, start.StartedAtMs, resolve.StartedAtMs)
	must.Eq(t, structs.PeakLevelCritical, resolve.Level)

	// A later crossing opens a fresh interval, continuing the sequence.
	events = tr.observe(step(5*time.Second), 91, nextSeq)
	must.Len(t, 1, events)
	must.Eq(t, uint64(4), events[0].Seq)
	must.NotEq(t, start.StartedAtMs, events[0].StartedAtMs)
	must.Eq(t, structs.PeakLevelCritical, events[0].Level)
}

func TestTracker_HysteresisNoFlap(t *testing.T) {
	tr := newTracker(1, structs.PeakCategoryMemory, "memory_percent", Thresholds{Warning: 80, Critical: 95})
	nextSeq := testSeq()
	now := time.Unix(1700000000, 0)

	must.Len(t, 1, tr.observe(now, 85, nextSeq))
	must.Len(t, 0, tr.observe(now.Add(5*time.Second), 85, nextSeq))

	// Oscillating between the warning line and the hysteresis exit line
	// (80 * 0.95 = 76) keeps the peak open without new events.
	for i := 0; i < 10; i++ {
		now = now.Add(5 * time.Second)
		value := 78.0
		if i%2 == 0 {
			value = 81.0
		}
		must.Len(t, 0, tr.observe(now, value, nextSeq))
	}
	must.Eq(t, statePeak, tr.state)
}

func TestTracker_CoolingReentry(t *testing.T) {
	tr := newTracker(1, structs.PeakCategoryCPU, "cpu_percent", Thresholds{Warning: 75, Critical: 90})
	nextSeq := testSeq()
	now := time.Unix(1700000000, 0)

	must.Len(t, 1, tr.observe(now, 80, nextSeq))
	must.Len(t, 0, tr.observe(now.Add(5*time.Second), 80, nextSeq))

	// Two settled samples, then the metric spikes again: the same interval
	// continues and the below counter resets.
	must.Len(t, 0, tr.observe(now.Add(10*time.Second), 40, nextSeq))
	must.Len(t, 0, tr.observe(now.Add(15*time.Second), 40, nextSeq))
	must.Len(t, 0, tr.observe(now.Add(20*time.Second), 85, nextSeq))
	must.Eq(t, statePeak, tr.state)

	// The earlier settled samples no longer count toward resolution.
	must.Len(t, 0, tr.observe(now.Add(40*time.Second), 40, nextSeq))
	must.Len(t, 0, tr.observe(now.Add(45*time.Second), 40, nextSeq))
	events := tr.observe(now.Add(50*time.Second), 40, nextSeq)
	must.Len(t, 1, events)
	must.True(t, events[0].Resolved())
}

func TestTracker_ShortBlipNeverConfirms(t *testing.T) {
	tr := newTracker(1, structs.PeakCategoryCPU, "cpu_percent", Thresholds{Warning: 75, Critical: 90})
	nextSeq := testSeq()
	now := time.Unix(1700000000, 0)

	// One hot sample opens the interval, then the metric drops straight
	// back. The interval still needs the settle count and minimum duration
	// before it resolves.
	must.Len(t, 1, tr.observe(now, 92, nextSeq))
	must.Len(t, 0, tr.observe(now.Add(5*time.Second), 10, nextSeq))
	must.Eq(t, stateCooling, tr.state)

	must.Len(t, 0, tr.observe(now.Add(10*time.Second), 10, nextSeq))
	must.Len(t, 0, tr.observe(now.Add(15*time.Second), 10, nextSeq))

	events := tr.observe(now.Add(35*time.Second), 10, nextSeq)
	must.Len(t, 1, events)
	must.True(t, events[0].Resolved())
}
