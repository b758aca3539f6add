package peakmon

import (
	"path/filepath"
	"testing"

	"github.com/shoenig/test/must"

	"github.com/wildosvpn/fleet/helper/testlog"
	"github.com/wildosvpn/fleet/structs"
)

func testMonitor(t *testing.T) *Monitor {
	t.Helper()
	seq, err := OpenSeqFile(filepath.Join(t.TempDir(), "peak_seq"))
	must.NoError(t, err)
	return New(Config{
		NodeID:  42,
		Logger:  testlog.HCLogger(t),
		SeqFile: seq,
	})
}

func TestMonitor_ObservePublishes(t *testing.T) {
	m := testMonitor(t)

	ch, cancel := m.Subscribe()
	defer cancel()

	m.Observe(structs.PeakCategoryCPU, "cpu_percent", 50)
	m.Observe(structs.PeakCategoryCPU, "cpu_percent", 95)

	event := <-ch
	must.Eq(t, int64(42), event.NodeID)
	must.Eq(t, structs.PeakCategoryCPU, event.Category)
	must.Eq(t, structs.PeakLevelCritical, event.Level)
	must.Eq(t, uint64(1), event.Seq)
	must.False(t, event.Resolved())
}

func TestMonitor_IndependentMetrics(t *testing.T) {
	m := testMonitor(t)

	m.Observe(structs.PeakCategoryCPU, "cpu_percent", 95)
	m.Observe(structs.PeakCategoryMemory, "memory_percent", 96)

	events := m.EventsSince(0)
	must.Len(t, 2, events)
	must.Eq(t, uint64(1), events[0].Seq)
	must.Eq(t, uint64(2), events[1].Seq)
	must.NotEq(t, events[0].DedupeKey, events[1].DedupeKey)
}

func TestMonitor_EventsSince(t *testing.T) {
	m := testMonitor(t)

	m.Observe(structs.PeakCategoryCPU, "cpu_percent", 95)
	m.Observe(structs.PeakCategoryMemory, "memory_percent", 96)
	m.Observe(structs.PeakCategoryDisk, "disk_percent", 97)

	events := m.EventsSince(2)
	must.Len(t, 1, events)
	must.Eq(t, structs.PeakCategoryDisk, events[0].Category)
}

func TestNetworkRatePercent(t *testing.T) {
	// 125 MB over 1s is 1000 Mbps, the full line rate of a gigabit NIC.
	must.Eq(t, 100.0, networkRatePercent(125e6, 1, 1000))
	must.Eq(t, 50.0, networkRatePercent(125e6, 2, 1000))
	must.Eq(t, 10.0, networkRatePercent(12.5e6, 1, 1000))
}

func TestMonitor_NetworkPeaks(t *testing.T) {
	m := testMonitor(t)

	// Network utilization flows through the same detector as the other
	// categories, with its own stock thresholds.
	_, ok := DefaultThresholds[structs.PeakCategoryNetwork]
	must.True(t, ok)

	m.Observe(structs.PeakCategoryNetwork, "throughput_percent", 96)
	m.Observe(structs.PeakCategoryNetwork, "throughput_percent", 97)

	events := m.EventsSince(0)
	must.Len(t, 1, events)
	must.Eq(t, structs.PeakCategoryNetwork, events[0].Category)
	must.Eq(t, structs.PeakLevelCritical, events[0].Level)
}

func TestMonitor_BackendDown(t *testing.T) {
	m := testMonitor(t)

	// Backend liveness maps to a binary metric with both thresholds at 50,
	// so a down backend opens a critical peak immediately.
	m.cfg.Thresholds = map[structs.PeakCategory]Thresholds{
		structs.PeakCategoryBackend: {Warning: 50, Critical: 50},
	}

	m.Observe(structs.PeakCategoryBackend, "xray", 0)
	must.Len(t, 0, m.EventsSince(0))

	m.Observe(structs.PeakCategoryBackend, "xray", 100)
	events := m.EventsSince(0)
	must.Len(t, 1, events)
	must.Eq(t, structs.PeakLevelCritical, events[0].Level)
	must.Eq(t, "xray", events[0].Metric)
}
