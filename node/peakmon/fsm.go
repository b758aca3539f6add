package peakmon

import (
	"time"

	"github.com/wildosvpn/fleet/structs"
)

// Thresholds are the warning and critical lines for one metric, in the
// metric's own unit (percent for host metrics).
type Thresholds struct {
	Warning  float64
	Critical float64
}

type trackerState int

const (
	stateIdle trackerState = iota
	stateRising
	statePeak
	stateCooling
)

const (
	// hysteresisFraction widens the exit line below the warning threshold so
	// a metric oscillating right at the threshold does not flap.
	hysteresisFraction = 0.05

	// minPeakDuration is the shortest interval a peak may close after.
	minPeakDuration = 30 * time.Second

	// belowSamplesToResolve is how many consecutive sub-threshold samples
	// are needed before a peak resolves.
	belowSamplesToResolve = 3
)

// tracker runs the peak state machine for a single (category, metric) pair.
// It emits a start event when a crossing is first observed, an upgrade event
// when an open peak escalates from warning to critical, and a resolve event
// when the metric has settled. Severity never downgrades while a peak is
// open. Every emitted event draws a fresh sequence number, so upgrades and
// resolves order strictly after the start they belong to; events of one
// interval correlate through the dedupe key and start timestamp instead.
type tracker struct {
	nodeID     int64
	category   structs.PeakCategory
	metric     string
	thresholds Thresholds

	state      trackerState
	level      structs.PeakLevel
	startedAt  time.Time
	belowCount int
}

func newTracker(nodeID int64, category structs.PeakCategory, metric string, th Thresholds) *tracker {
	return &tracker{
		nodeID:     nodeID,
		category:   category,
		metric:     metric,
		thresholds: th,
	}
}

func (t *tracker) levelFor(value float64) structs.PeakLevel {
	if value >= t.thresholds.Critical {
		return structs.PeakLevelCritical
	}
	return structs.PeakLevelWarning
}

func (t *tracker) thresholdFor(level structs.PeakLevel) float64 {
	if level == structs.PeakLevelCritical {
		return t.thresholds.Critical
	}
	return t.thresholds.Warning
}

func (t *tracker) exitLine() float64 {
	return t.thresholds.Warning * (1 - hysteresisFraction)
}

func (t *tracker) event(now time.Time, value float64, seq uint64, resolved bool) structs.PeakEvent {
	e := structs.PeakEvent{
		NodeID:      t.nodeID,
		Category:    t.category,
		Metric:      t.metric,
		Level:       t.level,
		Value:       value,
		Threshold:   t.thresholdFor(t.level),
		DedupeKey:   structs.PeakDedupeKey(t.nodeID, t.category, t.metric),
		StartedAtMs: t.startedAt.UnixMilli(),
		Seq:         seq,
	}
	if resolved {
		e.ResolvedAtMs = now.UnixMilli()
	}
	return e
}

// observe feeds one sample through the state machine. nextSeq allocates a
// durable sequence number per emitted event; allocation failure suppresses
// the transition so it is retried on the next tick.
func (t *tracker) observe(now time.Time, value float64, nextSeq func() (uint64, error)) []structs.PeakEvent {
	var events []structs.PeakEvent

	switch t.state {
	case stateIdle:
		if value >= t.thresholds.Warning {
			seq, err := nextSeq()
			if err != nil {
				return nil
			}
			t.state = stateRising
			t.level = t.levelFor(value)
			t.startedAt = now
			t.belowCount = 0
			events = append(events, t.event(now, value, seq, false))
		}

	case stateRising:
		switch {
		case value >= t.thresholds.Warning:
			t.state = statePeak
			if upgraded := t.maybeUpgrade(now, value, nextSeq); upgraded != nil {
				events = append(events, *upgraded)
			}
		case value < t.exitLine():
			t.state = stateCooling
			t.belowCount = 1
		}

	case statePeak:
		switch {
		case value >= t.thresholds.Warning:
			if upgraded := t.maybeUpgrade(now, value, nextSeq); upgraded != nil {
				events = append(events, *upgraded)
			}
		case value < t.exitLine():
			t.state = stateCooling
			t.belowCount = 1
		}

	case stateCooling:
		if value >= t.exitLine() {
			t.state = statePeak
			t.belowCount = 0
			if upgraded := t.maybeUpgrade(now, value, nextSeq); upgraded != nil {
				events = append(events, *upgraded)
			}
			break
		}
		t.belowCount++
		if t.belowCount >= belowSamplesToResolve && now.Sub(t.startedAt) >= minPeakDuration {
			seq, err := nextSeq()
			if err != nil {
				break
			}
			events = append(events, t.event(now, value, seq, true))
			t.state = stateIdle
			t.level = ""
			t.belowCount = 0
		}
	}

	return events
}

// maybeUpgrade escalates an open peak to critical. Returns the upgrade event,
// or nil when the level is unchanged or no sequence number could be drawn.
func (t *tracker) maybeUpgrade(now time.Time, value float64, nextSeq func() (uint64, error)) *structs.PeakEvent {
	if t.level == structs.PeakLevelCritical || t.levelFor(value) != structs.PeakLevelCritical {
		return nil
	}
	seq, err := nextSeq()
	if err != nil {
		return nil
	}
	t.level = structs.PeakLevelCritical
	e := t.event(now, value, seq, false)
	return &e
}
