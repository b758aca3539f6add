package node

import (
	"context"
	"sync"

	"github.com/wildosvpn/fleet/structs"
)

// Backend is one proxy instance managed by the node. The concrete set of
// implementations is closed: xray, hysteria2 and sing-box, all built on the
// shared process runner.
type Backend interface {
	Name() string
	Type() structs.BackendType
	Version() string
	Running() bool

	// Inbounds lists the listeners the backend exposes, parsed from its
	// active configuration.
	Inbounds() []structs.Inbound

	// AddUser grants the user access to the given inbound tags. Adding a
	// user that already exists on a tag is a no-op.
	AddUser(user structs.User, tags []string) error

	// RemoveUser revokes the user from the given inbound tags. Removing an
	// absent user is a no-op.
	RemoveUser(user structs.User, tags []string) error

	// Config returns the active configuration blob and its format.
	Config() (string, structs.ConfigFormat)

	// Restart applies a new configuration. The old process must keep running
	// when the replacement fails to start.
	Restart(ctx context.Context, config string, format structs.ConfigFormat) error

	// UsageStats reports cumulative per-user traffic in bytes. Counters are
	// monotonic for the lifetime of the backend.
	UsageStats() map[int64]uint64

	// SubscribeLogs returns a channel of log lines and a cancel function.
	// When includeBuffer is set, the buffered backlog is replayed first.
	SubscribeLogs(includeBuffer bool) (<-chan string, func())

	// Stop terminates the backend process.
	Stop()
}

// Backends is the node's registry of running back-ends, keyed by name.
type Backends struct {
	mu       sync.RWMutex
	backends map[string]Backend
}

// NewBackends creates an empty registry.
func NewBackends() *Backends {
	return &Backends{backends: make(map[string]Backend)}
}

// Register adds or replaces a backend by name.
func (b *Backends) Register(backend Backend) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.backends[backend.Name()] = backend
}

// Deregister removes a backend by name.
func (b *Backends) Deregister(name string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.backends, name)
}

// Get returns the backend and whether it exists.
func (b *Backends) Get(name string) (Backend, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	backend, ok := b.backends[name]
	return backend, ok
}

// List returns a snapshot of all registered back-ends.
func (b *Backends) List() []Backend {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]Backend, 0, len(b.backends))
	for _, backend := range b.backends {
		out = append(out, backend)
	}
	return out
}

// InboundTags returns the union of inbound tags across all back-ends.
func (b *Backends) InboundTags() map[string]Backend {
	b.mu.RLock()
	defer b.mu.RUnlock()
	tags := make(map[string]Backend)
	for _, backend := range b.backends {
		for _, inbound := range backend.Inbounds() {
			tags[inbound.Tag] = backend
		}
	}
	return tags
}
