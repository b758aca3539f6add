package node

import (
	"context"
	"io"
	"strings"
	"sync"
	"time"

	hclog "github.com/hashicorp/go-hclog"
	metrics "github.com/hashicorp/go-metrics"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/wildosvpn/fleet/node/peakmon"
	"github.com/wildosvpn/fleet/proto"
	"github.com/wildosvpn/fleet/structs"
)

// Service is the node's gRPC surface. It owns no processes itself; it routes
// panel calls to the backend registry, the reconciler, the peak monitor and
// the host-level helpers.
type Service struct {
	proto.UnimplementedNodeServiceServer

	logger   hclog.Logger
	storage  *Storage
	backends *Backends
	peaks    *peakmon.Monitor

	// firewall and containers are optional host integrations; nil when the
	// node runs without the corresponding privileges.
	firewall   *Firewall
	containers *ContainerOps

	// userMu serializes user mutations so panel updates apply in arrival
	// order even across overlapping RPCs.
	userMu     sync.Mutex
	reconciler *reconciler
}

// ServiceConfig wires a Service's collaborators.
type ServiceConfig struct {
	Logger     hclog.Logger
	Storage    *Storage
	Backends   *Backends
	Peaks      *peakmon.Monitor
	Firewall   *Firewall
	Containers *ContainerOps
}

// NewService builds the node service.
func NewService(cfg ServiceConfig) *Service {
	logger := cfg.Logger.Named("service")
	return &Service{
		logger:     logger,
		storage:    cfg.Storage,
		backends:   cfg.Backends,
		peaks:      cfg.Peaks,
		firewall:   cfg.Firewall,
		containers: cfg.Containers,
		reconciler: &reconciler{
			logger:   logger,
			storage:  cfg.Storage,
			backends: cfg.Backends,
		},
	}
}

// Ping confirms liveness. It carries no payload and bypasses auth.
func (s *Service) Ping(ctx context.Context, _ *proto.Empty) (*proto.Empty, error) {
	return &proto.Empty{}, nil
}

// SyncUsers applies a stream of incremental user updates in arrival order.
func (s *Service) SyncUsers(stream proto.NodeService_SyncUsersServer) error {
	var applied int
	for {
		update, err := stream.Recv()
		if err == io.EOF {
			s.logger.Debug("user sync stream closed", "applied", applied)
			return stream.SendAndClose(&proto.Empty{})
		}
		if err != nil {
			return err
		}
		if update.GetUser() == nil {
			return status.Error(codes.InvalidArgument, "user update without user")
		}

		s.userMu.Lock()
		err = s.reconciler.Apply(proto.UserUpdateFromProto(update))
		s.userMu.Unlock()
		if err != nil {
			s.logger.Error("failed to apply user update", "user_id", update.GetUser().GetId(), "error", err)
			return status.Errorf(codes.Internal, "failed to apply user update: %v", err)
		}
		applied++
		metrics.IncrCounter([]string{"fleet", "node", "users", "synced"}, 1)
	}
}

// RepopulateUsers reconciles node state against the authoritative full list.
func (s *Service) RepopulateUsers(ctx context.Context, data *proto.UsersData) (*proto.Empty, error) {
	updates := make([]structs.UserUpdate, 0, len(data.GetUsersUpdates()))
	for _, update := range data.GetUsersUpdates() {
		if update.GetUser() == nil {
			return nil, status.Error(codes.InvalidArgument, "user update without user")
		}
		updates = append(updates, proto.UserUpdateFromProto(update))
	}

	s.userMu.Lock()
	err := s.reconciler.Repopulate(updates)
	s.userMu.Unlock()
	if err != nil {
		return nil, status.Errorf(codes.Internal, "repopulate failed: %v", err)
	}

	s.logger.Info("repopulated users", "count", len(updates))
	return &proto.Empty{}, nil
}

// FetchBackends lists the node's back-ends and their inbounds.
func (s *Service) FetchBackends(ctx context.Context, _ *proto.Empty) (*proto.BackendsResponse, error) {
	resp := &proto.BackendsResponse{}
	for _, backend := range s.backends.List() {
		pb := &proto.Backend{
			Name:    backend.Name(),
			Type:    string(backend.Type()),
			Version: backend.Version(),
			Running: backend.Running(),
		}
		for _, inbound := range backend.Inbounds() {
			pb.Inbounds = append(pb.Inbounds, &proto.BackendInbound{
				Tag:      inbound.Tag,
				Protocol: inbound.Protocol,
				Port:     int32(inbound.Port),
				Config:   inbound.Config,
			})
		}
		resp.Backends = append(resp.Backends, pb)
	}
	return resp, nil
}

// FetchUsersStats reports cumulative per-user traffic aggregated across all
// back-ends. Every provisioned user appears in the response, including those
// with no recorded usage, so the panel can tell "idle" apart from "unknown".
func (s *Service) FetchUsersStats(ctx context.Context, _ *proto.Empty) (*proto.UsersStatsResponse, error) {
	totals := make(map[int64]uint64)
	users, err := s.storage.ListUsers()
	if err != nil {
		return nil, status.Errorf(codes.Internal, "list users: %v", err)
	}
	for _, user := range users {
		totals[user.ID] = 0
	}
	for _, backend := range s.backends.List() {
		for uid, n := range backend.UsageStats() {
			totals[uid] += n
		}
	}

	resp := &proto.UsersStatsResponse{}
	for uid, n := range totals {
		resp.UsersStats = append(resp.UsersStats, &proto.UserStat{Uid: uid, UsageBytes: n})
	}
	return resp, nil
}

func (s *Service) backend(name string) (Backend, error) {
	backend, ok := s.backends.Get(name)
	if !ok {
		return nil, status.Errorf(codes.NotFound, "unknown backend %q", name)
	}
	return backend, nil
}

// FetchBackendConfig returns a backend's active configuration.
func (s *Service) FetchBackendConfig(ctx context.Context, req *proto.BackendConfigRequest) (*proto.BackendConfig, error) {
	backend, err := s.backend(req.GetName())
	if err != nil {
		return nil, err
	}
	config, format := backend.Config()
	return &proto.BackendConfig{
		Configuration: config,
		ConfigFormat:  proto.FormatToProto(format),
	}, nil
}

// RestartBackend restarts a backend, optionally with a new configuration.
// When no configuration is supplied the current one is reused.
func (s *Service) RestartBackend(ctx context.Context, req *proto.RestartBackendRequest) (*proto.Empty, error) {
	backend, err := s.backend(req.GetName())
	if err != nil {
		return nil, err
	}

	config, format := backend.Config()
	if req.GetConfig() != nil {
		config = req.GetConfig().GetConfiguration()
		format = proto.FormatFromProto(req.GetConfig().GetConfigFormat())
	}

	s.logger.Info("restarting backend", "backend", req.GetName())
	if err := backend.Restart(ctx, config, format); err != nil {
		if strings.Contains(err.Error(), "invalid backend config") {
			return nil, status.Errorf(codes.InvalidArgument, "%v", err)
		}
		return nil, status.Errorf(codes.Internal, "restart failed: %v", err)
	}
	return &proto.Empty{}, nil
}

// GetBackendStats reports a single backend's liveness.
func (s *Service) GetBackendStats(ctx context.Context, req *proto.BackendStatsRequest) (*proto.BackendStats, error) {
	backend, err := s.backend(req.GetName())
	if err != nil {
		return nil, err
	}
	return &proto.BackendStats{Running: backend.Running()}, nil
}

// GetAllBackendsStats reports liveness for every backend.
func (s *Service) GetAllBackendsStats(ctx context.Context, _ *proto.Empty) (*proto.AllBackendsStats, error) {
	resp := &proto.AllBackendsStats{BackendStats: make(map[string]*proto.BackendStats)}
	for _, backend := range s.backends.List() {
		resp.BackendStats[backend.Name()] = &proto.BackendStats{Running: backend.Running()}
	}
	return resp, nil
}

// StreamBackendLogs streams backend log lines until the panel disconnects.
func (s *Service) StreamBackendLogs(req *proto.LogsRequest, stream proto.NodeService_StreamBackendLogsServer) error {
	backend, err := s.backend(req.GetBackendName())
	if err != nil {
		return err
	}

	lines, cancel := backend.SubscribeLogs(req.GetIncludeBuffer())
	defer cancel()

	for {
		select {
		case <-stream.Context().Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if err := stream.Send(&proto.LogLine{Line: line}); err != nil {
				return err
			}
		}
	}
}

// GetHostSystemMetrics returns a point-in-time host snapshot.
func (s *Service) GetHostSystemMetrics(ctx context.Context, _ *proto.Empty) (*proto.HostMetrics, error) {
	snapshot, err := CollectHostMetrics(ctx)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to collect host metrics: %v", err)
	}
	return proto.HostMetricsToProto(snapshot), nil
}

// OpenHostPort opens a host firewall port.
func (s *Service) OpenHostPort(ctx context.Context, req *proto.PortRequest) (*proto.PortResponse, error) {
	if s.firewall == nil {
		return nil, status.Error(codes.FailedPrecondition, "firewall management is not enabled on this node")
	}
	if err := s.firewall.OpenPort(int(req.GetPort()), req.GetProtocol()); err != nil {
		return &proto.PortResponse{Ok: false, Message: err.Error()}, nil
	}
	return &proto.PortResponse{Ok: true}, nil
}

// CloseHostPort closes a host firewall port.
func (s *Service) CloseHostPort(ctx context.Context, req *proto.PortRequest) (*proto.PortResponse, error) {
	if s.firewall == nil {
		return nil, status.Error(codes.FailedPrecondition, "firewall management is not enabled on this node")
	}
	if err := s.firewall.ClosePort(int(req.GetPort()), req.GetProtocol()); err != nil {
		return &proto.PortResponse{Ok: false, Message: err.Error()}, nil
	}
	return &proto.PortResponse{Ok: true}, nil
}

func (s *Service) container() (*ContainerOps, error) {
	if s.containers == nil {
		return nil, status.Error(codes.NotFound, "no container configured for this node")
	}
	return s.containers, nil
}

// GetContainerLogs returns the tail of the node container's logs.
func (s *Service) GetContainerLogs(ctx context.Context, req *proto.ContainerLogsRequest) (*proto.ContainerLogsResponse, error) {
	ops, err := s.container()
	if err != nil {
		return nil, err
	}
	raw, err := ops.Logs(ctx, int(req.GetTail()))
	if err != nil {
		return nil, status.Errorf(codes.Internal, "%v", err)
	}

	resp := &proto.ContainerLogsResponse{}
	for _, line := range strings.Split(raw, "\n") {
		if line != "" {
			resp.Lines = append(resp.Lines, line)
		}
	}
	return resp, nil
}

// GetContainerFiles lists files under a path in the node container.
func (s *Service) GetContainerFiles(ctx context.Context, req *proto.ContainerFilesRequest) (*proto.ContainerFilesResponse, error) {
	ops, err := s.container()
	if err != nil {
		return nil, err
	}
	files, err := ops.ListFiles(ctx, req.GetPath())
	if err != nil {
		return nil, status.Errorf(codes.Internal, "%v", err)
	}

	resp := &proto.ContainerFilesResponse{}
	for _, f := range files {
		resp.Files = append(resp.Files, &proto.FileInfo{
			Name:       f.Name,
			Size:       f.Size,
			Mode:       f.Mode,
			ModifiedMs: f.ModifiedAt.UnixMilli(),
		})
	}
	return resp, nil
}

// RestartContainer restarts the node's own container.
func (s *Service) RestartContainer(ctx context.Context, _ *proto.Empty) (*proto.Empty, error) {
	ops, err := s.container()
	if err != nil {
		return nil, err
	}
	if err := ops.Restart(ctx, 10*time.Second); err != nil {
		return nil, status.Errorf(codes.Internal, "%v", err)
	}
	return &proto.Empty{}, nil
}

// StreamPeakEvents streams peak events as the monitor emits them.
func (s *Service) StreamPeakEvents(_ *proto.Empty, stream proto.NodeService_StreamPeakEventsServer) error {
	events, cancel := s.peaks.Subscribe()
	defer cancel()

	for {
		select {
		case <-stream.Context().Done():
			return nil
		case event, ok := <-events:
			if !ok {
				return nil
			}
			if err := stream.Send(proto.PeakEventToProto(&event)); err != nil {
				return err
			}
		}
	}
}

// FetchPeakEvents replays retained peak events matching the query, then
// closes the stream. The primary cursor is the sequence number; since_ms is
// honored as an additional filter for callers that only know a timestamp.
func (s *Service) FetchPeakEvents(query *proto.PeakEventsQuery, stream proto.NodeService_FetchPeakEventsServer) error {
	category := proto.CategoryFromProto(query.GetCategory())
	for _, event := range s.peaks.EventsSince(query.GetSinceSeq()) {
		if event.StartedAtMs < query.GetSinceMs() {
			continue
		}
		if query.GetCategory() != proto.PeakCategory_PEAK_CATEGORY_UNSPECIFIED && event.Category != category {
			continue
		}
		if err := stream.Send(proto.PeakEventToProto(&event)); err != nil {
			return err
		}
	}
	return nil
}

// PanicInterceptor converts handler panics into Internal errors so a single
// bad request cannot take the whole agent down.
func PanicInterceptor(logger hclog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp interface{}, err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic in handler", "method", info.FullMethod, "panic", r)
				err = status.Errorf(codes.Internal, "internal error in %s", info.FullMethod)
			}
		}()
		return handler(ctx, req)
	}
}

// StreamPanicInterceptor is the streaming counterpart of PanicInterceptor.
func StreamPanicInterceptor(logger hclog.Logger) grpc.StreamServerInterceptor {
	return func(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic in stream handler", "method", info.FullMethod, "panic", r)
				err = status.Errorf(codes.Internal, "internal error in %s", info.FullMethod)
			}
		}()
		return handler(srv, ss)
	}
}
