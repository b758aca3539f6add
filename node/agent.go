package node

import (
	"context"
	"fmt"
	"net"
	"path/filepath"

	hclog "github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"

	"github.com/wildosvpn/fleet/helper/tlsutil"
	"github.com/wildosvpn/fleet/node/peakmon"
	"github.com/wildosvpn/fleet/proto"
)

// BackendDef declares one proxy backend the agent should run.
type BackendDef struct {
	Name       string
	Type       string
	Binary     string
	ConfigPath string
	Version    string
}

// Config configures a node agent.
type Config struct {
	NodeID     int64
	BindAddr   string
	Port       int
	DataDir    string
	AuthToken  string
	Backends   []BackendDef
	TLS        *tlsutil.Config
	Logger     hclog.Logger

	// ContainerID enables container operations when the node itself runs
	// inside a managed container. Empty disables them.
	ContainerID string

	// ManageFirewall enables the port open/close RPCs.
	ManageFirewall bool
}

// Agent is a running node: the gRPC service plus the processes and loops
// behind it.
type Agent struct {
	logger   hclog.Logger
	config   Config
	storage  *Storage
	backends *Backends
	peaks    *peakmon.Monitor
	server   *grpc.Server
	listener net.Listener
}

// NewAgent builds a node agent: opens storage, starts the configured
// back-ends, and prepares the gRPC server. Run starts serving.
func NewAgent(cfg Config) (*Agent, error) {
	logger := cfg.Logger.Named("agent")

	storage, err := OpenStorage(filepath.Join(cfg.DataDir, "users.db"))
	if err != nil {
		return nil, err
	}

	backends := NewBackends()
	for _, def := range cfg.Backends {
		backend, err := startBackend(logger, def)
		if err != nil {
			storage.Close()
			return nil, fmt.Errorf("failed to start backend %q: %w", def.Name, err)
		}
		backends.Register(backend)
	}

	seq, err := peakmon.OpenSeqFile(filepath.Join(cfg.DataDir, "peak_seq"))
	if err != nil {
		storage.Close()
		return nil, err
	}
	peaks := peakmon.New(peakmon.Config{
		NodeID:  cfg.NodeID,
		Logger:  logger,
		SeqFile: seq,
		BackendProbe: func() map[string]bool {
			probe := make(map[string]bool)
			for _, b := range backends.List() {
				probe[b.Name()] = b.Running()
			}
			return probe
		},
	})

	var firewall *Firewall
	if cfg.ManageFirewall {
		firewall, err = NewFirewall(logger)
		if err != nil {
			storage.Close()
			return nil, err
		}
	}

	var containers *ContainerOps
	if cfg.ContainerID != "" {
		containers, err = NewContainerOps(logger, cfg.ContainerID)
		if err != nil {
			storage.Close()
			return nil, err
		}
	}

	validator := NewTokenValidator(logger, cfg.AuthToken)
	opts := []grpc.ServerOption{
		grpc.ChainUnaryInterceptor(PanicInterceptor(logger), validator.UnaryInterceptor()),
		grpc.ChainStreamInterceptor(StreamPanicInterceptor(logger), validator.StreamInterceptor()),
	}
	if cfg.TLS != nil {
		tlsConfig, err := cfg.TLS.IncomingTLSConfig()
		if err != nil {
			storage.Close()
			return nil, fmt.Errorf("failed to build server TLS config: %w", err)
		}
		opts = append(opts, grpc.Creds(credentials.NewTLS(tlsConfig)))
	}

	server := grpc.NewServer(opts...)
	proto.RegisterNodeServiceServer(server, NewService(ServiceConfig{
		Logger:     logger,
		Storage:    storage,
		Backends:   backends,
		Peaks:      peaks,
		Firewall:   firewall,
		Containers: containers,
	}))

	return &Agent{
		logger:   logger,
		config:   cfg,
		storage:  storage,
		backends: backends,
		peaks:    peaks,
		server:   server,
	}, nil
}

func startBackend(logger hclog.Logger, def BackendDef) (Backend, error) {
	switch def.Type {
	case "xray":
		return NewXrayBackend(logger, def.Name, def.Binary, def.ConfigPath, def.Version)
	case "hysteria2":
		return NewHysteria2Backend(logger, def.Name, def.Binary, def.ConfigPath, def.Version)
	case "sing-box":
		return NewSingBoxBackend(logger, def.Name, def.Binary, def.ConfigPath, def.Version)
	default:
		return nil, fmt.Errorf("unknown backend type %q", def.Type)
	}
}

// Run serves until the context is cancelled, then shuts everything down.
func (a *Agent) Run(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", a.config.BindAddr, a.config.Port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	a.listener = listener
	a.logger.Info("node agent listening", "address", addr, "node_id", a.config.NodeID)

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		a.peaks.Run(ctx)
		return nil
	})
	group.Go(func() error {
		return a.server.Serve(listener)
	})
	group.Go(func() error {
		<-ctx.Done()
		a.server.GracefulStop()
		return nil
	})

	err = group.Wait()

	for _, backend := range a.backends.List() {
		backend.Stop()
	}
	if cerr := a.storage.Close(); cerr != nil {
		a.logger.Error("failed to close storage", "error", cerr)
	}

	if err == grpc.ErrServerStopped {
		return nil
	}
	return err
}
