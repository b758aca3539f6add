package node

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"github.com/armon/circbuf"
	hclog "github.com/hashicorp/go-hclog"

	"github.com/wildosvpn/fleet/structs"
)

const (
	// logRingSize bounds the replay buffer handed to new log subscribers.
	logRingSize = 64 * 1024

	// startGrace is how long a freshly started process must stay alive
	// before a restart is considered successful.
	startGrace = 500 * time.Millisecond
)

// ProcessConfig describes how to run one proxy backend process.
type ProcessConfig struct {
	Name       string
	Type       structs.BackendType
	Binary     string
	ConfigPath string
	Format     structs.ConfigFormat

	// Args builds the command line for a given config path.
	Args func(configPath string) []string

	// ParseInbounds extracts the inbound listeners from a config blob.
	ParseInbounds func(config string) ([]structs.Inbound, error)

	// Version is the backend version as reported to the panel.
	Version string
}

// processBackend runs a proxy as a child process. It implements Backend for
// all three variants; only the ProcessConfig differs.
type processBackend struct {
	cfg    ProcessConfig
	logger hclog.Logger

	mu       sync.Mutex
	cmd      *exec.Cmd
	running  bool
	config   string
	inbounds []structs.Inbound
	users    map[int64][]string
	usage    map[int64]uint64

	ring *circbuf.Buffer
	subs map[chan string]struct{}
}

// NewProcessBackend creates the backend and starts its process with the
// configuration found at cfg.ConfigPath.
func NewProcessBackend(logger hclog.Logger, cfg ProcessConfig) (Backend, error) {
	raw, err := os.ReadFile(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read backend config: %w", err)
	}

	ring, _ := circbuf.NewBuffer(logRingSize)
	b := &processBackend{
		cfg:    cfg,
		logger: logger.Named("backend").With("name", cfg.Name),
		users:  make(map[int64][]string),
		usage:  make(map[int64]uint64),
		ring:   ring,
		subs:   make(map[chan string]struct{}),
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.startLocked(string(raw), cfg.ConfigPath); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *processBackend) Name() string              { return b.cfg.Name }
func (b *processBackend) Type() structs.BackendType { return b.cfg.Type }
func (b *processBackend) Version() string           { return b.cfg.Version }

func (b *processBackend) Running() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.running
}

func (b *processBackend) Inbounds() []structs.Inbound {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]structs.Inbound(nil), b.inbounds...)
}

func (b *processBackend) Config() (string, structs.ConfigFormat) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.config, b.cfg.Format
}

func (b *processBackend) AddUser(user structs.User, tags []string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	existing := b.users[user.ID]
	for _, tag := range tags {
		if !containsTag(existing, tag) {
			existing = append(existing, tag)
		}
	}
	b.users[user.ID] = existing
	return nil
}

func (b *processBackend) RemoveUser(user structs.User, tags []string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	existing := b.users[user.ID]
	var kept []string
	for _, tag := range existing {
		if !containsTag(tags, tag) {
			kept = append(kept, tag)
		}
	}
	if len(kept) == 0 {
		delete(b.users, user.ID)
	} else {
		b.users[user.ID] = kept
	}
	return nil
}

func containsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

func (b *processBackend) UsageStats() map[int64]uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make(map[int64]uint64, len(b.usage))
	for id, n := range b.usage {
		out[id] = n
	}
	return out
}

// RecordUsage adds traffic to a user's monotonic counter. The process
// supervisor calls this when it polls the proxy's stats endpoint.
func (b *processBackend) RecordUsage(userID int64, bytes uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.usage[userID] += bytes
}

// startLocked launches a process for the given config. The caller holds the
// lock. On success the previous process (if any) has been replaced.
func (b *processBackend) startLocked(config, configPath string) error {
	inbounds, err := b.cfg.ParseInbounds(config)
	if err != nil {
		return fmt.Errorf("invalid backend config: %w", err)
	}

	cmd := exec.Command(b.cfg.Binary, b.cfg.Args(configPath)...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return err
	}
	cmd.Stderr = cmd.Stdout

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", b.cfg.Binary, err)
	}

	go b.consumeLogs(stdout)
	go func() {
		err := cmd.Wait()
		b.mu.Lock()
		if b.cmd == cmd {
			b.running = false
		}
		b.mu.Unlock()
		if err != nil {
			b.logger.Warn("backend process exited", "error", err)
		}
	}()

	b.cmd = cmd
	b.running = true
	b.config = config
	b.inbounds = inbounds
	return nil
}

// Restart writes the new configuration to a staging path and starts a
// replacement process. Only after the replacement survives its grace period
// is the old process terminated; on failure the old process keeps serving.
func (b *processBackend) Restart(ctx context.Context, config string, format structs.ConfigFormat) error {
	inbounds, err := b.cfg.ParseInbounds(config)
	if err != nil {
		return fmt.Errorf("invalid backend config: %w", err)
	}

	staging := b.cfg.ConfigPath + ".staging"
	if err := os.WriteFile(staging, []byte(config), 0o600); err != nil {
		return fmt.Errorf("failed to stage backend config: %w", err)
	}

	cmd := exec.Command(b.cfg.Binary, b.cfg.Args(staging)...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return err
	}
	cmd.Stderr = cmd.Stdout

	if err := cmd.Start(); err != nil {
		os.Remove(staging)
		return fmt.Errorf("failed to start replacement process: %w", err)
	}

	started := make(chan error, 1)
	go func() { started <- cmd.Wait() }()

	select {
	case err := <-started:
		os.Remove(staging)
		return fmt.Errorf("replacement process exited immediately: %v", err)
	case <-ctx.Done():
		cmd.Process.Kill()
		os.Remove(staging)
		return ctx.Err()
	case <-time.After(startGrace):
	}

	b.mu.Lock()
	old := b.cmd
	b.cmd = cmd
	b.running = true
	b.config = config
	b.inbounds = inbounds
	b.mu.Unlock()

	go b.consumeLogs(stdout)
	go func() {
		<-started
		b.mu.Lock()
		if b.cmd == cmd {
			b.running = false
		}
		b.mu.Unlock()
	}()

	if old != nil && old.Process != nil {
		old.Process.Kill()
	}

	if err := os.Rename(staging, b.cfg.ConfigPath); err != nil {
		// The new process already runs from the staging path; promote the
		// content so a node restart picks it up.
		if werr := os.WriteFile(b.cfg.ConfigPath, []byte(config), 0o600); werr != nil {
			b.logger.Error("failed to persist backend config", "error", werr)
		}
	}

	return nil
}

func (b *processBackend) Stop() {
	b.mu.Lock()
	cmd := b.cmd
	b.running = false
	b.mu.Unlock()

	if cmd != nil && cmd.Process != nil {
		cmd.Process.Kill()
	}
}

// consumeLogs relays process output into the ring buffer and to any live
// subscribers. Slow subscribers lose lines rather than stalling the reader.
func (b *processBackend) consumeLogs(r io.Reader) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()

		b.mu.Lock()
		b.ring.Write([]byte(line + "\n"))
		for ch := range b.subs {
			select {
			case ch <- line:
			default:
			}
		}
		b.mu.Unlock()
	}
}

func (b *processBackend) SubscribeLogs(includeBuffer bool) (<-chan string, func()) {
	ch := make(chan string, 256)

	b.mu.Lock()
	if includeBuffer {
		buffered := b.ring.String()
		start := 0
		for i := 0; i < len(buffered); i++ {
			if buffered[i] == '\n' {
				if line := buffered[start:i]; line != "" {
					select {
					case ch <- line:
					default:
					}
				}
				start = i + 1
			}
		}
	}
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		if _, ok := b.subs[ch]; ok {
			delete(b.subs, ch)
			close(ch)
		}
		b.mu.Unlock()
	}
	return ch, cancel
}

// ConfigDir returns the directory holding a backend's config file.
func (c *ProcessConfig) ConfigDir() string {
	return filepath.Dir(c.ConfigPath)
}
