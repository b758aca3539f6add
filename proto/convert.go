package proto

import (
	"github.com/wildosvpn/fleet/structs"
)

// Conversions between wire messages and the shared model types. Both sides
// of the connection use these, so enum mappings live in exactly one place.

var categoryToProto = map[structs.PeakCategory]PeakCategory{
	structs.PeakCategoryCPU:     PeakCategory_CPU,
	structs.PeakCategoryMemory:  PeakCategory_MEMORY,
	structs.PeakCategoryDisk:    PeakCategory_DISK,
	structs.PeakCategoryNetwork: PeakCategory_NETWORK,
	structs.PeakCategoryBackend: PeakCategory_BACKEND,
}

var categoryFromProto = map[PeakCategory]structs.PeakCategory{
	PeakCategory_CPU:     structs.PeakCategoryCPU,
	PeakCategory_MEMORY:  structs.PeakCategoryMemory,
	PeakCategory_DISK:    structs.PeakCategoryDisk,
	PeakCategory_NETWORK: structs.PeakCategoryNetwork,
	PeakCategory_BACKEND: structs.PeakCategoryBackend,
}

// CategoryToProto maps a model category to its wire enum.
func CategoryToProto(c structs.PeakCategory) PeakCategory {
	return categoryToProto[c]
}

// CategoryFromProto maps a wire enum to the model category. Unknown values
// map to the empty category.
func CategoryFromProto(c PeakCategory) structs.PeakCategory {
	return categoryFromProto[c]
}

// LevelToProto maps a model peak level to its wire enum.
func LevelToProto(l structs.PeakLevel) PeakLevel {
	switch l {
	case structs.PeakLevelWarning:
		return PeakLevel_WARNING
	case structs.PeakLevelCritical:
		return PeakLevel_CRITICAL
	default:
		return PeakLevel_PEAK_LEVEL_UNSPECIFIED
	}
}

// LevelFromProto maps a wire enum to the model peak level.
func LevelFromProto(l PeakLevel) structs.PeakLevel {
	switch l {
	case PeakLevel_WARNING:
		return structs.PeakLevelWarning
	case PeakLevel_CRITICAL:
		return structs.PeakLevelCritical
	default:
		return ""
	}
}

// FormatToProto maps a model config format to its wire enum.
func FormatToProto(f structs.ConfigFormat) ConfigFormat {
	switch f {
	case structs.ConfigFormatJSON:
		return ConfigFormat_JSON
	case structs.ConfigFormatYAML:
		return ConfigFormat_YAML
	default:
		return ConfigFormat_PLAIN
	}
}

// FormatFromProto maps a wire enum to the model config format.
func FormatFromProto(f ConfigFormat) structs.ConfigFormat {
	switch f {
	case ConfigFormat_JSON:
		return structs.ConfigFormatJSON
	case ConfigFormat_YAML:
		return structs.ConfigFormatYAML
	default:
		return structs.ConfigFormatPlain
	}
}

// PeakEventToProto converts a model peak event to its wire form.
func PeakEventToProto(e *structs.PeakEvent) *PeakEvent {
	return &PeakEvent{
		NodeId:       e.NodeID,
		Category:     CategoryToProto(e.Category),
		Metric:       e.Metric,
		Level:        LevelToProto(e.Level),
		Value:        e.Value,
		Threshold:    e.Threshold,
		DedupeKey:    e.DedupeKey,
		ContextJson:  e.ContextJSON,
		StartedAtMs:  e.StartedAtMs,
		ResolvedAtMs: e.ResolvedAtMs,
		Seq:          e.Seq,
	}
}

// PeakEventFromProto converts a wire peak event to its model form.
func PeakEventFromProto(e *PeakEvent) structs.PeakEvent {
	return structs.PeakEvent{
		NodeID:       e.GetNodeId(),
		Category:     CategoryFromProto(e.GetCategory()),
		Metric:       e.GetMetric(),
		Level:        LevelFromProto(e.GetLevel()),
		Value:        e.GetValue(),
		Threshold:    e.GetThreshold(),
		DedupeKey:    e.GetDedupeKey(),
		ContextJSON:  e.GetContextJson(),
		StartedAtMs:  e.GetStartedAtMs(),
		ResolvedAtMs: e.GetResolvedAtMs(),
		Seq:          e.GetSeq(),
	}
}

// UserUpdateToProto converts a model user update to its wire form.
func UserUpdateToProto(u *structs.UserUpdate) *UserUpdate {
	out := &UserUpdate{
		User: &User{
			Id:       u.User.ID,
			Username: u.User.Username,
			Key:      u.User.Key,
		},
	}
	for _, tag := range u.Inbounds {
		out.Inbounds = append(out.Inbounds, &Inbound{Tag: tag})
	}
	return out
}

// UserUpdateFromProto converts a wire user update to its model form.
func UserUpdateFromProto(u *UserUpdate) structs.UserUpdate {
	out := structs.UserUpdate{
		User: structs.User{
			ID:       u.GetUser().GetId(),
			Username: u.GetUser().GetUsername(),
			Key:      u.GetUser().GetKey(),
		},
	}
	for _, inbound := range u.GetInbounds() {
		out.Inbounds = append(out.Inbounds, inbound.GetTag())
	}
	return out
}

// HostMetricsFromProto converts wire host metrics to the model form.
func HostMetricsFromProto(m *HostMetrics) structs.HostMetrics {
	return structs.HostMetrics{
		CPUPercent:    m.GetCpuPercent(),
		CPUCores:      int(m.GetCpuCores()),
		Load1:         m.GetLoad_1(),
		Load5:         m.GetLoad_5(),
		Load15:        m.GetLoad_15(),
		MemoryTotal:   m.GetMemoryTotal(),
		MemoryUsed:    m.GetMemoryUsed(),
		MemoryPercent: m.GetMemoryPercent(),
		DiskTotal:     m.GetDiskTotal(),
		DiskUsed:      m.GetDiskUsed(),
		DiskPercent:   m.GetDiskPercent(),
		NetBytesSent:  m.GetNetBytesSent(),
		NetBytesRecv:  m.GetNetBytesRecv(),
		UptimeSeconds: m.GetUptimeSeconds(),
	}
}

// HostMetricsToProto converts model host metrics to the wire form.
func HostMetricsToProto(m *structs.HostMetrics) *HostMetrics {
	return &HostMetrics{
		CpuPercent:    m.CPUPercent,
		CpuCores:      uint32(m.CPUCores),
		Load_1:        m.Load1,
		Load_5:        m.Load5,
		Load_15:       m.Load15,
		MemoryTotal:   m.MemoryTotal,
		MemoryUsed:    m.MemoryUsed,
		MemoryPercent: m.MemoryPercent,
		DiskTotal:     m.DiskTotal,
		DiskUsed:      m.DiskUsed,
		DiskPercent:   m.DiskPercent,
		NetBytesSent:  m.NetBytesSent,
		NetBytesRecv:  m.NetBytesRecv,
		UptimeSeconds: m.UptimeSeconds,
	}
}
