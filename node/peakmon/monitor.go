// Package peakmon watches host resource usage on a node and turns sustained
// threshold crossings into peak events the panel can persist and alert on.
// Detection is deliberately conservative: a crossing must be confirmed by a
// second sample before a peak is considered real, and a peak only resolves
// after the metric has settled below the threshold for several samples.
package peakmon

import (
	"context"
	"sync"
	"time"

	hclog "github.com/hashicorp/go-hclog"
	metrics "github.com/hashicorp/go-metrics"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
	gopsnet "github.com/shirou/gopsutil/v3/net"

	"github.com/wildosvpn/fleet/structs"
)

const (
	defaultInterval   = 5 * time.Second
	subscriberBuffer  = 512
	defaultRetainSize = 1024

	defaultNetworkCapacityMbps = 1000
)

// DefaultThresholds are the stock per-category thresholds, in percent.
var DefaultThresholds = map[structs.PeakCategory]Thresholds{
	structs.PeakCategoryCPU:     {Warning: 75, Critical: 90},
	structs.PeakCategoryMemory:  {Warning: 80, Critical: 95},
	structs.PeakCategoryDisk:    {Warning: 85, Critical: 95},
	structs.PeakCategoryNetwork: {Warning: 80, Critical: 95},
}

// Config configures a Monitor.
type Config struct {
	NodeID  int64
	Logger  hclog.Logger
	SeqFile *SeqFile

	// Interval between samples. Defaults to 5s.
	Interval time.Duration

	// Thresholds overrides DefaultThresholds per category.
	Thresholds map[structs.PeakCategory]Thresholds

	// RetainSize bounds the in-memory event history served to reconnecting
	// panels. Defaults to 1024.
	RetainSize int

	// BackendProbe reports per-backend liveness. A backend observed down
	// opens a critical peak on the backend category. Optional.
	BackendProbe func() map[string]bool

	// NetworkCapacityMbps is the NIC line rate used to turn measured
	// throughput into a utilization percentage. Defaults to 1000.
	NetworkCapacityMbps float64
}

// Monitor samples host metrics on a fixed cadence and publishes peak events
// to subscribers. Events are also retained in a bounded ring so a panel that
// reconnects can replay what it missed.
type Monitor struct {
	cfg    Config
	logger hclog.Logger

	mu       sync.Mutex
	trackers map[string]*tracker
	retained []structs.PeakEvent
	subs     map[chan structs.PeakEvent]struct{}

	// Previous NIC counter reading, for rate computation between ticks.
	lastNetAt   time.Time
	lastNetSent uint64
	lastNetRecv uint64
}

// New creates a Monitor. Call Run to start sampling.
func New(cfg Config) *Monitor {
	if cfg.Interval <= 0 {
		cfg.Interval = defaultInterval
	}
	if cfg.RetainSize <= 0 {
		cfg.RetainSize = defaultRetainSize
	}
	if cfg.Thresholds == nil {
		cfg.Thresholds = DefaultThresholds
	}
	if cfg.NetworkCapacityMbps <= 0 {
		cfg.NetworkCapacityMbps = defaultNetworkCapacityMbps
	}
	return &Monitor{
		cfg:      cfg,
		logger:   cfg.Logger.Named("peakmon"),
		trackers: make(map[string]*tracker),
		subs:     make(map[chan structs.PeakEvent]struct{}),
	}
}

// Run samples until the context is cancelled.
func (m *Monitor) Run(ctx context.Context) {
	ticker := time.NewTicker(m.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.sample(ctx)
		}
	}
}

func (m *Monitor) thresholds(category structs.PeakCategory) Thresholds {
	if th, ok := m.cfg.Thresholds[category]; ok {
		return th
	}
	return DefaultThresholds[category]
}

// Observe feeds one named sample through the detector. Exposed so callers
// with their own metric sources (backend probes, tests) can share the state
// machine.
func (m *Monitor) Observe(category structs.PeakCategory, metric string, value float64) {
	now := time.Now()

	m.mu.Lock()
	key := string(category) + "/" + metric
	tr, ok := m.trackers[key]
	if !ok {
		tr = newTracker(m.cfg.NodeID, category, metric, m.thresholds(category))
		m.trackers[key] = tr
	}
	events := tr.observe(now, value, m.cfg.SeqFile.Next)
	m.mu.Unlock()

	for _, event := range events {
		m.publish(event)
	}
}

func (m *Monitor) sample(ctx context.Context) {
	if percents, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(percents) > 0 {
		m.Observe(structs.PeakCategoryCPU, "cpu_percent", percents[0])
	}
	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		m.Observe(structs.PeakCategoryMemory, "memory_percent", vm.UsedPercent)
	}
	if du, err := disk.UsageWithContext(ctx, "/"); err == nil {
		m.Observe(structs.PeakCategoryDisk, "disk_percent", du.UsedPercent)
	}
	if avg, err := load.AvgWithContext(ctx); err == nil {
		if cores, err := cpu.CountsWithContext(ctx, true); err == nil && cores > 0 {
			m.Observe(structs.PeakCategoryCPU, "load_1", avg.Load1/float64(cores)*100)
		}
	}
	m.sampleNetwork(ctx)

	if m.cfg.BackendProbe != nil {
		for name, running := range m.cfg.BackendProbe() {
			value := 0.0
			if !running {
				value = 100.0
			}
			m.Observe(structs.PeakCategoryBackend, name, value)
		}
	}
}

// sampleNetwork turns the delta between consecutive NIC counter readings
// into a utilization percentage of the configured line rate.
func (m *Monitor) sampleNetwork(ctx context.Context) {
	counters, err := gopsnet.IOCountersWithContext(ctx, false)
	if err != nil || len(counters) == 0 {
		return
	}
	now := time.Now()
	sent, recv := counters[0].BytesSent, counters[0].BytesRecv

	m.mu.Lock()
	lastAt, lastSent, lastRecv := m.lastNetAt, m.lastNetSent, m.lastNetRecv
	m.lastNetAt, m.lastNetSent, m.lastNetRecv = now, sent, recv
	m.mu.Unlock()

	// The first reading only seeds the counters, and a counter reset (NIC
	// re-enumeration, host reboot) skips one cycle.
	if lastAt.IsZero() || sent < lastSent || recv < lastRecv {
		return
	}
	elapsed := now.Sub(lastAt).Seconds()
	if elapsed <= 0 {
		return
	}
	delta := float64((sent - lastSent) + (recv - lastRecv))
	m.Observe(structs.PeakCategoryNetwork, "throughput_percent",
		networkRatePercent(delta, elapsed, m.cfg.NetworkCapacityMbps))
}

// networkRatePercent converts a byte delta over a duration into percent of a
// line rate given in megabits per second.
func networkRatePercent(deltaBytes, elapsedSeconds, capacityMbps float64) float64 {
	mbps := deltaBytes * 8 / 1e6 / elapsedSeconds
	return mbps / capacityMbps * 100
}

// publish fans the event out to subscribers and the retained ring. A full
// subscriber queue drops the event for that subscriber rather than stalling
// the sampler.
func (m *Monitor) publish(event structs.PeakEvent) {
	m.logger.Info("peak event",
		"category", event.Category, "metric", event.Metric,
		"level", event.Level, "value", event.Value,
		"seq", event.Seq, "resolved", event.Resolved())

	m.mu.Lock()
	m.retained = append(m.retained, event)
	if over := len(m.retained) - m.cfg.RetainSize; over > 0 {
		m.retained = append(m.retained[:0], m.retained[over:]...)
	}
	for ch := range m.subs {
		select {
		case ch <- event:
		default:
			metrics.IncrCounter([]string{"fleet", "peakmon", "dropped"}, 1)
		}
	}
	m.mu.Unlock()
}

// Subscribe returns a channel of future peak events and a cancel function.
func (m *Monitor) Subscribe() (<-chan structs.PeakEvent, func()) {
	ch := make(chan structs.PeakEvent, subscriberBuffer)

	m.mu.Lock()
	m.subs[ch] = struct{}{}
	m.mu.Unlock()

	cancel := func() {
		m.mu.Lock()
		if _, ok := m.subs[ch]; ok {
			delete(m.subs, ch)
			close(ch)
		}
		m.mu.Unlock()
	}
	return ch, cancel
}

// EventsSince returns retained events with a sequence number beyond sinceSeq,
// in emission order.
func (m *Monitor) EventsSince(sinceSeq uint64) []structs.PeakEvent {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []structs.PeakEvent
	for _, event := range m.retained {
		if event.Seq > sinceSeq {
			out = append(out, event)
		}
	}
	return out
}
