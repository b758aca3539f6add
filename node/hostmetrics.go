package node

import (
	"context"

	multierror "github.com/hashicorp/go-multierror"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
	gopsnet "github.com/shirou/gopsutil/v3/net"

	"github.com/wildosvpn/fleet/structs"
)

// CollectHostMetrics takes a point-in-time snapshot of the host. Individual
// probe failures zero their fields rather than failing the snapshot, so a
// host with no disk stats still reports CPU and memory.
func CollectHostMetrics(ctx context.Context) (*structs.HostMetrics, error) {
	var mErr multierror.Error
	out := &structs.HostMetrics{}

	if percents, err := cpu.PercentWithContext(ctx, 0, false); err != nil {
		mErr.Errors = append(mErr.Errors, err)
	} else if len(percents) > 0 {
		out.CPUPercent = percents[0]
	}
	if cores, err := cpu.CountsWithContext(ctx, true); err == nil {
		out.CPUCores = cores
	}

	if avg, err := load.AvgWithContext(ctx); err != nil {
		mErr.Errors = append(mErr.Errors, err)
	} else {
		out.Load1 = avg.Load1
		out.Load5 = avg.Load5
		out.Load15 = avg.Load15
	}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err != nil {
		mErr.Errors = append(mErr.Errors, err)
	} else {
		out.MemoryTotal = vm.Total
		out.MemoryUsed = vm.Used
		out.MemoryPercent = vm.UsedPercent
	}

	if du, err := disk.UsageWithContext(ctx, "/"); err != nil {
		mErr.Errors = append(mErr.Errors, err)
	} else {
		out.DiskTotal = du.Total
		out.DiskUsed = du.Used
		out.DiskPercent = du.UsedPercent
	}

	if counters, err := gopsnet.IOCountersWithContext(ctx, false); err != nil {
		mErr.Errors = append(mErr.Errors, err)
	} else if len(counters) > 0 {
		out.NetBytesSent = counters[0].BytesSent
		out.NetBytesRecv = counters[0].BytesRecv
	}

	if uptime, err := host.UptimeWithContext(ctx); err == nil {
		out.UptimeSeconds = uptime
	}

	// A snapshot with every probe failed is useless; surface the errors then.
	if len(mErr.Errors) >= 5 {
		return nil, mErr.ErrorOrNil()
	}
	return out, nil
}
