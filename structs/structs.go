// Package structs holds the shared model types exchanged between the panel
// and its node clients. Wire representations live in the proto package; these
// are the in-memory forms the rest of the codebase works with.
package structs

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"time"
)

// NodeStatus is the administrative status of a node as tracked by the panel.
type NodeStatus string

const (
	NodeStatusHealthy   NodeStatus = "healthy"
	NodeStatusDegraded  NodeStatus = "degraded"
	NodeStatusUnhealthy NodeStatus = "unhealthy"
	NodeStatusDisabled  NodeStatus = "disabled"
)

// Node is an addressable remote agent.
type Node struct {
	ID int64

	// Address is the hostname or IP the node service listens on.
	Address string
	Port    int

	// UsageCoefficient multiplies traffic reported by the node before it is
	// recorded.
	UsageCoefficient float64

	Status  NodeStatus
	Message string
}

// Addr returns the dial address for the node service.
func (n *Node) Addr() string {
	return fmt.Sprintf("%s:%d", n.Address, n.Port)
}

// BackendType enumerates the closed set of proxy back-ends a node may run.
type BackendType string

const (
	BackendTypeXray     BackendType = "xray"
	BackendTypeHysteria BackendType = "hysteria2"
	BackendTypeSingBox  BackendType = "sing-box"
)

// Backend describes a proxy instance as reported by a node.
type Backend struct {
	NodeID   int64
	Name     string
	Type     BackendType
	Version  string
	Running  bool
	Inbounds []Inbound
}

// Inbound is a configured listener on a backend, identified by tag.
type Inbound struct {
	NodeID   int64
	Tag      string
	Protocol string
	Port     int
	Config   string
}

// User is the panel's view of a VPN user as pushed to nodes. Key is the
// derived per-user credential; nodes never see the raw secret.
type User struct {
	ID       int64
	Username string
	Key      string
}

// UserUpdate is a per-node intent: the user should exist on the node with
// exactly the given inbound tags. An empty tag set means remove.
type UserUpdate struct {
	User     User
	Inbounds []string
}

// IsRemoval reports whether the update removes the user from the node.
func (u *UserUpdate) IsRemoval() bool {
	return len(u.Inbounds) == 0
}

// UserUsage is one entry of a node traffic report.
type UserUsage struct {
	UserID     int64
	UsageBytes uint64
}

// ConfigFormat identifies the serialization of a backend config blob.
type ConfigFormat int

const (
	ConfigFormatPlain ConfigFormat = 0
	ConfigFormatJSON  ConfigFormat = 1
	ConfigFormatYAML  ConfigFormat = 2
)

// PeakCategory buckets peak events by subsystem.
type PeakCategory string

const (
	PeakCategoryCPU     PeakCategory = "cpu"
	PeakCategoryMemory  PeakCategory = "memory"
	PeakCategoryDisk    PeakCategory = "disk"
	PeakCategoryNetwork PeakCategory = "network"
	PeakCategoryBackend PeakCategory = "backend"
)

// PeakLevel is the severity of a peak event. A peak may upgrade from warning
// to critical while open but never downgrades.
type PeakLevel string

const (
	PeakLevelWarning  PeakLevel = "warning"
	PeakLevelCritical PeakLevel = "critical"
)

// PeakEvent is a threshold-crossing observation emitted by a node. For a
// given (NodeID, DedupeKey) at most one event is open (ResolvedAtMs == 0) at
// any time, and Seq is strictly monotonic per node across restarts.
type PeakEvent struct {
	NodeID       int64
	Category     PeakCategory
	Metric       string
	Level        PeakLevel
	Value        float64
	Threshold    float64
	DedupeKey    string
	ContextJSON  string
	StartedAtMs  int64
	ResolvedAtMs int64
	Seq          uint64
}

// Resolved reports whether the event closes a peak interval.
func (e *PeakEvent) Resolved() bool {
	return e.ResolvedAtMs != 0
}

// PeakDedupeKey derives the stable correlation key for a peak interval:
// the first 16 hex characters of md5("<node_id>:<category>:<metric>").
func PeakDedupeKey(nodeID int64, category PeakCategory, metric string) string {
	sum := md5.Sum([]byte(fmt.Sprintf("%d:%s:%s", nodeID, category, metric)))
	return hex.EncodeToString(sum[:])[:16]
}

// NodeToken is the persisted form of a node auth token. Only the SHA-256 of
// the raw token is ever stored.
type NodeToken struct {
	ID         int64
	NodeID     int64
	TokenHash  string
	CreatedAt  time.Time
	ExpiresAt  time.Time
	IsActive   bool
	LastUsed   time.Time
	UsageCount int64
}

// Expired reports whether the token is past its expiry at the given time.
func (t *NodeToken) Expired(now time.Time) bool {
	return !t.ExpiresAt.IsZero() && now.After(t.ExpiresAt)
}

// FailedAuthAttempt records one rejected validation, retained long enough to
// compute a rolling lockout window.
type FailedAuthAttempt struct {
	NodeID      int64
	AttemptedAt time.Time
	Reason      string
}

// HostMetrics is a point-in-time snapshot of a node host.
type HostMetrics struct {
	CPUPercent    float64
	CPUCores      int
	Load1         float64
	Load5         float64
	Load15        float64
	MemoryTotal   uint64
	MemoryUsed    uint64
	MemoryPercent float64
	DiskTotal     uint64
	DiskUsed      uint64
	DiskPercent   float64
	NetBytesSent  uint64
	NetBytesRecv  uint64
	UptimeSeconds uint64
}
