package node

import (
	"context"
	"io"
	"path/filepath"
	"sync"
	"testing"

	"github.com/shoenig/test/must"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/wildosvpn/fleet/helper/testlog"
	"github.com/wildosvpn/fleet/node/peakmon"
	"github.com/wildosvpn/fleet/proto"
	"github.com/wildosvpn/fleet/structs"
)

// fakeBackend is an in-memory Backend for service tests.
type fakeBackend struct {
	mu       sync.Mutex
	name     string
	kind     structs.BackendType
	running  bool
	config   string
	format   structs.ConfigFormat
	inbounds []structs.Inbound
	users    map[int64][]string
	usage    map[int64]uint64

	restartErr error
	logs       chan string
}

func newFakeBackend(name string, tags ...string) *fakeBackend {
	b := &fakeBackend{
		name:    name,
		kind:    structs.BackendTypeXray,
		running: true,
		config:  `{"inbounds":[]}`,
		format:  structs.ConfigFormatJSON,
		users:   make(map[int64][]string),
		usage:   make(map[int64]uint64),
		logs:    make(chan string, 16),
	}
	for _, tag := range tags {
		b.inbounds = append(b.inbounds, structs.Inbound{Tag: tag, Protocol: "vless"})
	}
	return b
}

func (b *fakeBackend) Name() string              { return b.name }
func (b *fakeBackend) Type() structs.BackendType { return b.kind }
func (b *fakeBackend) Version() string           { return "1.0.0" }

func (b *fakeBackend) Running() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.running
}

func (b *fakeBackend) Inbounds() []structs.Inbound {
	return append([]structs.Inbound(nil), b.inbounds...)
}

func (b *fakeBackend) AddUser(user structs.User, tags []string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, tag := range tags {
		if !containsTag(b.users[user.ID], tag) {
			b.users[user.ID] = append(b.users[user.ID], tag)
		}
	}
	return nil
}

func (b *fakeBackend) RemoveUser(user structs.User, tags []string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	var kept []string
	for _, tag := range b.users[user.ID] {
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

func (b *fakeBackend) userTags(id int64) []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.users[id]...)
}

func (b *fakeBackend) Config() (string, structs.ConfigFormat) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.config, b.format
}

func (b *fakeBackend) Restart(ctx context.Context, config string, format structs.ConfigFormat) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.restartErr != nil {
		return b.restartErr
	}
	b.config = config
	b.format = format
	return nil
}

func (b *fakeBackend) UsageStats() map[int64]uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make(map[int64]uint64, len(b.usage))
	for id, n := range b.usage {
		out[id] = n
	}
	return out
}

func (b *fakeBackend) SubscribeLogs(includeBuffer bool) (<-chan string, func()) {
	return b.logs, func() {}
}

func (b *fakeBackend) Stop() {}

func testService(t *testing.T, backends ...Backend) (*Service, *Storage) {
	t.Helper()
	dir := t.TempDir()

	storage, err := OpenStorage(filepath.Join(dir, "users.db"))
	must.NoError(t, err)
	t.Cleanup(func() { storage.Close() })

	seq, err := peakmon.OpenSeqFile(filepath.Join(dir, "peak_seq"))
	must.NoError(t, err)

	registry := NewBackends()
	for _, b := range backends {
		registry.Register(b)
	}

	svc := NewService(ServiceConfig{
		Logger:   testlog.HCLogger(t),
		Storage:  storage,
		Backends: registry,
		Peaks: peakmon.New(peakmon.Config{
			NodeID:  1,
			Logger:  testlog.HCLogger(t),
			SeqFile: seq,
		}),
	})
	return svc, storage
}

// fakeSyncStream feeds queued updates to SyncUsers.
type fakeSyncStream struct {
	grpc.ServerStream
	updates []*proto.UserUpdate
	pos     int
	closed  bool
}

func (s *fakeSyncStream) Context() context.Context { return context.Background() }

func (s *fakeSyncStream) Recv() (*proto.UserUpdate, error) {
	if s.pos >= len(s.updates) {
		return nil, io.EOF
	}
	update := s.updates[s.pos]
	s.pos++
	return update, nil
}

func (s *fakeSyncStream) SendAndClose(*proto.Empty) error {
	s.closed = true
	return nil
}

func TestService_Ping(t *testing.T) {
	svc, _ := testService(t)
	resp, err := svc.Ping(context.Background(), &proto.Empty{})
	must.NoError(t, err)
	must.NotNil(t, resp)
}

func TestService_SyncUsers(t *testing.T) {
	backend := newFakeBackend("xray", "vless-in", "trojan-in")
	svc, storage := testService(t, backend)

	stream := &fakeSyncStream{updates: []*proto.UserUpdate{
		{
			User:     &proto.User{Id: 1, Username: "alice", Key: "k1"},
			Inbounds: []*proto.Inbound{{Tag: "vless-in"}, {Tag: "trojan-in"}},
		},
		{
			User:     &proto.User{Id: 1, Username: "alice", Key: "k1"},
			Inbounds: []*proto.Inbound{{Tag: "vless-in"}},
		},
	}}

	must.NoError(t, svc.SyncUsers(stream))
	must.True(t, stream.closed)

	// The second update narrowed alice to one tag.
	must.Eq(t, []string{"vless-in"}, backend.userTags(1))

	stored, err := storage.GetUser(1)
	must.NoError(t, err)
	must.NotNil(t, stored)
	must.Eq(t, []string{"vless-in"}, stored.Inbounds)
}

func TestService_SyncUsers_Removal(t *testing.T) {
	backend := newFakeBackend("xray", "vless-in")
	svc, storage := testService(t, backend)

	stream := &fakeSyncStream{updates: []*proto.UserUpdate{
		{User: &proto.User{Id: 2, Username: "bob", Key: "k2"}, Inbounds: []*proto.Inbound{{Tag: "vless-in"}}},
		{User: &proto.User{Id: 2, Username: "bob", Key: "k2"}},
	}}

	must.NoError(t, svc.SyncUsers(stream))
	must.Len(t, 0, backend.userTags(2))

	stored, err := storage.GetUser(2)
	must.NoError(t, err)
	must.Nil(t, stored)
}

func TestService_RepopulateUsers(t *testing.T) {
	backend := newFakeBackend("xray", "vless-in")
	svc, storage := testService(t, backend)

	// Seed a user the authoritative list will not contain.
	stream := &fakeSyncStream{updates: []*proto.UserUpdate{
		{User: &proto.User{Id: 9, Username: "stale", Key: "k9"}, Inbounds: []*proto.Inbound{{Tag: "vless-in"}}},
	}}
	must.NoError(t, svc.SyncUsers(stream))

	_, err := svc.RepopulateUsers(context.Background(), &proto.UsersData{
		UsersUpdates: []*proto.UserUpdate{
			{User: &proto.User{Id: 3, Username: "carol", Key: "k3"}, Inbounds: []*proto.Inbound{{Tag: "vless-in"}}},
		},
	})
	must.NoError(t, err)

	stale, err := storage.GetUser(9)
	must.NoError(t, err)
	must.Nil(t, stale)

	kept, err := storage.GetUser(3)
	must.NoError(t, err)
	must.NotNil(t, kept)
	must.Len(t, 0, backend.userTags(9))
	must.Eq(t, []string{"vless-in"}, backend.userTags(3))
}

func TestService_FetchBackends(t *testing.T) {
	svc, _ := testService(t, newFakeBackend("xray", "vless-in"), newFakeBackend("hy2", "hy2"))

	resp, err := svc.FetchBackends(context.Background(), &proto.Empty{})
	must.NoError(t, err)
	must.Len(t, 2, resp.Backends)
}

func TestService_BackendOps(t *testing.T) {
	backend := newFakeBackend("xray", "vless-in")
	svc, _ := testService(t, backend)
	ctx := context.Background()

	// Unknown names map to NotFound across the backend RPCs.
	_, err := svc.FetchBackendConfig(ctx, &proto.BackendConfigRequest{Name: "nope"})
	must.Eq(t, codes.NotFound, status.Code(err))
	_, err = svc.GetBackendStats(ctx, &proto.BackendStatsRequest{Name: "nope"})
	must.Eq(t, codes.NotFound, status.Code(err))
	_, err = svc.RestartBackend(ctx, &proto.RestartBackendRequest{Name: "nope"})
	must.Eq(t, codes.NotFound, status.Code(err))

	cfg, err := svc.FetchBackendConfig(ctx, &proto.BackendConfigRequest{Name: "xray"})
	must.NoError(t, err)
	must.Eq(t, proto.ConfigFormat_JSON, cfg.ConfigFormat)

	stats, err := svc.GetBackendStats(ctx, &proto.BackendStatsRequest{Name: "xray"})
	must.NoError(t, err)
	must.True(t, stats.Running)

	all, err := svc.GetAllBackendsStats(ctx, &proto.Empty{})
	must.NoError(t, err)
	must.MapLen(t, 1, all.BackendStats)

	// Restart with a fresh config applies it.
	_, err = svc.RestartBackend(ctx, &proto.RestartBackendRequest{
		Name: "xray",
		Config: &proto.BackendConfig{
			Configuration: `{"inbounds":[{"tag":"new"}]}`,
			ConfigFormat:  proto.ConfigFormat_JSON,
		},
	})
	must.NoError(t, err)
	config, _ := backend.Config()
	must.StrContains(t, config, "new")
}

func TestService_FetchUsersStats(t *testing.T) {
	a := newFakeBackend("xray", "vless-in")
	b := newFakeBackend("hy2", "hy2")
	a.usage[1] = 100
	b.usage[1] = 50
	b.usage[2] = 7

	svc, storage := testService(t, a, b)

	// An idle user shows up with a zero counter rather than being absent.
	must.NoError(t, storage.PutUser(&StoredUser{ID: 3, Username: "idle", Key: "k3"}))

	resp, err := svc.FetchUsersStats(context.Background(), &proto.Empty{})
	must.NoError(t, err)
	must.Len(t, 3, resp.UsersStats)

	totals := make(map[int64]uint64)
	for _, stat := range resp.UsersStats {
		totals[stat.Uid] = stat.UsageBytes
	}
	must.Eq(t, uint64(150), totals[1])
	must.Eq(t, uint64(7), totals[2])
	must.Eq(t, uint64(0), totals[3])
}

// fakePeakStream collects peak events sent over the replay RPC.
type fakePeakStream struct {
	grpc.ServerStream
	events []*proto.PeakEvent
}

func (s *fakePeakStream) Context() context.Context { return context.Background() }

func (s *fakePeakStream) Send(e *proto.PeakEvent) error {
	s.events = append(s.events, e)
	return nil
}

func TestService_FetchPeakEvents_SeqCursor(t *testing.T) {
	svc, _ := testService(t)
	svc.peaks.Observe(structs.PeakCategoryCPU, "cpu_percent", 95)
	svc.peaks.Observe(structs.PeakCategoryMemory, "memory_percent", 96)
	svc.peaks.Observe(structs.PeakCategoryDisk, "disk_percent", 97)

	// The cursor excludes everything already seen, regardless of timestamps.
	stream := &fakePeakStream{}
	must.NoError(t, svc.FetchPeakEvents(&proto.PeakEventsQuery{SinceSeq: 2}, stream))
	must.Len(t, 1, stream.events)
	must.Eq(t, uint64(3), stream.events[0].Seq)

	// A zero cursor replays the whole retained history.
	stream = &fakePeakStream{}
	must.NoError(t, svc.FetchPeakEvents(&proto.PeakEventsQuery{}, stream))
	must.Len(t, 3, stream.events)
}

func TestService_HostIntegrationsDisabled(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	_, err := svc.OpenHostPort(ctx, &proto.PortRequest{Port: 443})
	must.Eq(t, codes.FailedPrecondition, status.Code(err))

	_, err = svc.GetContainerLogs(ctx, &proto.ContainerLogsRequest{})
	must.Eq(t, codes.NotFound, status.Code(err))

	_, err = svc.RestartContainer(ctx, &proto.Empty{})
	must.Eq(t, codes.NotFound, status.Code(err))
}

func TestPanicInterceptor(t *testing.T) {
	interceptor := PanicInterceptor(testlog.HCLogger(t))

	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		panic("boom")
	}
	info := &grpc.UnaryServerInfo{FullMethod: "/fleet.NodeService/FetchBackends"}

	_, err := interceptor(context.Background(), nil, info, handler)
	must.Eq(t, codes.Internal, status.Code(err))
}
