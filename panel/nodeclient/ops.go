package nodeclient

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/wildosvpn/fleet/panel/breaker"
	"github.com/wildosvpn/fleet/proto"
	"github.com/wildosvpn/fleet/structs"
)

// Ping probes liveness. It bypasses the breakers: health probes are how a
// tripped node earns its way back, so they must never be rejected.
func (c *Client) Ping(ctx context.Context) error {
	return c.call(ctx, fastTimeout, func(ctx context.Context, client proto.NodeServiceClient) error {
		_, err := client.Ping(ctx, &proto.Empty{})
		return err
	})
}

// Sync queues a batch of user updates for delivery. The queue holds one
// pending batch; while it is occupied the caller blocks until the sync loop
// drains the slot, so a burst of updates toward a slow node exerts
// backpressure instead of dropping or reordering anything.
func (c *Client) Sync(ctx context.Context, updates []structs.UserUpdate) error {
	select {
	case c.syncCh <- updates:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-c.ctx.Done():
		return c.ctx.Err()
	}
}

// mergeUpdates folds newer into older: per-user intents from newer replace
// matching entries in older, everything else keeps its original order. Used
// when a failed delivery is requeued under a batch that raced in meanwhile.
func mergeUpdates(older, newer []structs.UserUpdate) []structs.UserUpdate {
	index := make(map[int64]int, len(older))
	out := append([]structs.UserUpdate(nil), older...)
	for i, u := range out {
		index[u.User.ID] = i
	}
	for _, u := range newer {
		if i, ok := index[u.User.ID]; ok {
			out[i] = u
			continue
		}
		index[u.User.ID] = len(out)
		out = append(out, u)
	}
	return out
}

// sendUsers delivers a snapshot over the client-streaming sync RPC.
func (c *Client) sendUsers(ctx context.Context, updates []structs.UserUpdate) error {
	return c.invoke(ctx, breaker.ClassUserSync, "SyncUsers", slowTimeout,
		func(ctx context.Context, client proto.NodeServiceClient) error {
			stream, err := client.SyncUsers(ctx)
			if err != nil {
				return err
			}
			for i := range updates {
				if err := stream.Send(proto.UserUpdateToProto(&updates[i])); err != nil {
					return err
				}
			}
			_, err = stream.CloseAndRecv()
			return err
		})
}

// RepopulateUsers pushes the authoritative full user list.
func (c *Client) RepopulateUsers(ctx context.Context, updates []structs.UserUpdate) error {
	return c.invoke(ctx, breaker.ClassUserSync, "RepopulateUsers", slowTimeout,
		func(ctx context.Context, client proto.NodeServiceClient) error {
			data := &proto.UsersData{}
			for i := range updates {
				data.UsersUpdates = append(data.UsersUpdates, proto.UserUpdateToProto(&updates[i]))
			}
			_, err := client.RepopulateUsers(ctx, data)
			return err
		})
}

// FetchBackends lists the node's back-ends.
func (c *Client) FetchBackends(ctx context.Context) ([]structs.Backend, error) {
	var out []structs.Backend
	err := c.invoke(ctx, breaker.ClassBackendOps, "FetchBackends", fastTimeout,
		func(ctx context.Context, client proto.NodeServiceClient) error {
			resp, err := client.FetchBackends(ctx, &proto.Empty{})
			if err != nil {
				return err
			}
			out = out[:0]
			for _, pb := range resp.GetBackends() {
				backend := structs.Backend{
					NodeID:  c.node.ID,
					Name:    pb.GetName(),
					Type:    structs.BackendType(pb.GetType()),
					Version: pb.GetVersion(),
					Running: pb.GetRunning(),
				}
				for _, inbound := range pb.GetInbounds() {
					backend.Inbounds = append(backend.Inbounds, structs.Inbound{
						NodeID:   c.node.ID,
						Tag:      inbound.GetTag(),
						Protocol: inbound.GetProtocol(),
						Port:     int(inbound.GetPort()),
						Config:   inbound.GetConfig(),
					})
				}
				out = append(out, backend)
			}
			return nil
		})
	return out, err
}

// FetchUsersStats reads per-user traffic counters. On failure it serves the
// last good response from the fallback cache, marked stale by the bool.
func (c *Client) FetchUsersStats(ctx context.Context) (map[int64]uint64, bool, error) {
	const cacheKey = "users_stats"

	var out map[int64]uint64
	err := c.invoke(ctx, breaker.ClassUserStats, "FetchUsersStats", fastTimeout,
		func(ctx context.Context, client proto.NodeServiceClient) error {
			resp, err := client.FetchUsersStats(ctx, &proto.Empty{})
			if err != nil {
				return err
			}
			out = make(map[int64]uint64, len(resp.GetUsersStats()))
			for _, stat := range resp.GetUsersStats() {
				out[stat.GetUid()] += stat.GetUsageBytes()
			}
			return nil
		})
	if err == nil {
		c.fallback.Put(cacheKey, out)
		return out, false, nil
	}

	if cached, ok := c.fallback.Get(cacheKey); ok {
		c.logger.Warn("serving cached user stats", "error", err)
		return cached.(map[int64]uint64), true, nil
	}
	return nil, false, err
}

// FetchBackendConfig reads a backend's active configuration.
func (c *Client) FetchBackendConfig(ctx context.Context, name string) (string, structs.ConfigFormat, error) {
	var config string
	var format structs.ConfigFormat
	err := c.invoke(ctx, breaker.ClassBackendOps, "FetchBackendConfig", fastTimeout,
		func(ctx context.Context, client proto.NodeServiceClient) error {
			resp, err := client.FetchBackendConfig(ctx, &proto.BackendConfigRequest{Name: name})
			if err != nil {
				return err
			}
			config = resp.GetConfiguration()
			format = proto.FormatFromProto(resp.GetConfigFormat())
			return nil
		})
	return config, format, err
}

// RestartBackend restarts a backend, with a new config when one is given.
func (c *Client) RestartBackend(ctx context.Context, name, config string, format structs.ConfigFormat) error {
	return c.invoke(ctx, breaker.ClassBackendOps, "RestartBackend", slowTimeout,
		func(ctx context.Context, client proto.NodeServiceClient) error {
			req := &proto.RestartBackendRequest{Name: name}
			if config != "" {
				req.Config = &proto.BackendConfig{
					Configuration: config,
					ConfigFormat:  proto.FormatToProto(format),
				}
			}
			_, err := client.RestartBackend(ctx, req)
			return err
		})
}

// GetBackendStats reports one backend's liveness.
func (c *Client) GetBackendStats(ctx context.Context, name string) (bool, error) {
	var running bool
	err := c.invoke(ctx, breaker.ClassBackendOps, "GetBackendStats", fastTimeout,
		func(ctx context.Context, client proto.NodeServiceClient) error {
			resp, err := client.GetBackendStats(ctx, &proto.BackendStatsRequest{Name: name})
			if err != nil {
				return err
			}
			running = resp.GetRunning()
			return nil
		})
	return running, err
}

// GetAllBackendsStats reports liveness for every backend on the node.
func (c *Client) GetAllBackendsStats(ctx context.Context) (map[string]bool, error) {
	var out map[string]bool
	err := c.invoke(ctx, breaker.ClassBackendOps, "GetAllBackendsStats", fastTimeout,
		func(ctx context.Context, client proto.NodeServiceClient) error {
			resp, err := client.GetAllBackendsStats(ctx, &proto.Empty{})
			if err != nil {
				return err
			}
			out = make(map[string]bool, len(resp.GetBackendStats()))
			for name, stats := range resp.GetBackendStats() {
				out[name] = stats.GetRunning()
			}
			return nil
		})
	return out, err
}

// StreamBackendLogs follows a backend's log output. The returned channel
// closes when the stream ends or ctx is cancelled.
func (c *Client) StreamBackendLogs(ctx context.Context, name string, includeBuffer bool) (<-chan string, error) {
	conn, err := c.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	streamCtx, cancel := c.authContext(ctx, 0)
	stream, err := proto.NewNodeServiceClient(conn.ClientConn()).StreamBackendLogs(streamCtx,
		&proto.LogsRequest{BackendName: name, IncludeBuffer: includeBuffer})
	if err != nil {
		cancel()
		c.pool.Release(conn, false)
		return nil, err
	}

	lines := make(chan string, 256)
	go func() {
		defer cancel()
		defer close(lines)
		for {
			line, err := stream.Recv()
			if err != nil {
				c.pool.Release(conn, err == io.EOF || ctx.Err() != nil)
				return
			}
			select {
			case lines <- line.GetLine():
			case <-ctx.Done():
				c.pool.Release(conn, true)
				return
			}
		}
	}()
	return lines, nil
}

// GetHostSystemMetrics snapshots the node host, with fallback to the last
// good snapshot.
func (c *Client) GetHostSystemMetrics(ctx context.Context) (*structs.HostMetrics, bool, error) {
	const cacheKey = "host_metrics"

	var out *structs.HostMetrics
	err := c.invoke(ctx, breaker.ClassSystemMonitoring, "GetHostSystemMetrics", fastTimeout,
		func(ctx context.Context, client proto.NodeServiceClient) error {
			resp, err := client.GetHostSystemMetrics(ctx, &proto.Empty{})
			if err != nil {
				return err
			}
			m := proto.HostMetricsFromProto(resp)
			out = &m
			return nil
		})
	if err == nil {
		c.fallback.Put(cacheKey, out)
		return out, false, nil
	}

	if cached, ok := c.fallback.Get(cacheKey); ok {
		c.logger.Warn("serving cached host metrics", "error", err)
		return cached.(*structs.HostMetrics), true, nil
	}
	return nil, false, err
}

// OpenHostPort opens a firewall port on the node host.
func (c *Client) OpenHostPort(ctx context.Context, port int, protocol string) error {
	return c.portOp(ctx, "OpenHostPort", port, protocol,
		func(ctx context.Context, client proto.NodeServiceClient, req *proto.PortRequest) (*proto.PortResponse, error) {
			return client.OpenHostPort(ctx, req)
		})
}

// CloseHostPort closes a firewall port on the node host.
func (c *Client) CloseHostPort(ctx context.Context, port int, protocol string) error {
	return c.portOp(ctx, "CloseHostPort", port, protocol,
		func(ctx context.Context, client proto.NodeServiceClient, req *proto.PortRequest) (*proto.PortResponse, error) {
			return client.CloseHostPort(ctx, req)
		})
}

func (c *Client) portOp(ctx context.Context, operation string, port int, protocol string,
	fn func(ctx context.Context, client proto.NodeServiceClient, req *proto.PortRequest) (*proto.PortResponse, error)) error {

	return c.invoke(ctx, breaker.ClassBackendOps, operation, portTimeout,
		func(ctx context.Context, client proto.NodeServiceClient) error {
			resp, err := fn(ctx, client, &proto.PortRequest{Port: uint32(port), Protocol: protocol})
			if err != nil {
				return err
			}
			if !resp.GetOk() {
				return fmt.Errorf("%s rejected: %s", operation, resp.GetMessage())
			}
			return nil
		})
}

// GetContainerLogs fetches the tail of the node container's logs.
func (c *Client) GetContainerLogs(ctx context.Context, tail int) ([]string, error) {
	var out []string
	err := c.invoke(ctx, breaker.ClassLogsStreaming, "GetContainerLogs", slowTimeout,
		func(ctx context.Context, client proto.NodeServiceClient) error {
			resp, err := client.GetContainerLogs(ctx, &proto.ContainerLogsRequest{Tail: uint32(tail)})
			if err != nil {
				return err
			}
			out = resp.GetLines()
			return nil
		})
	return out, err
}

// ContainerFile mirrors the node's directory listing entries.
type ContainerFile struct {
	Name       string
	Size       int64
	Mode       string
	ModifiedAt time.Time
}

// GetContainerFiles lists files under a path in the node container.
func (c *Client) GetContainerFiles(ctx context.Context, path string) ([]ContainerFile, error) {
	var out []ContainerFile
	err := c.invoke(ctx, breaker.ClassBackendOps, "GetContainerFiles", slowTimeout,
		func(ctx context.Context, client proto.NodeServiceClient) error {
			resp, err := client.GetContainerFiles(ctx, &proto.ContainerFilesRequest{Path: path})
			if err != nil {
				return err
			}
			out = out[:0]
			for _, f := range resp.GetFiles() {
				out = append(out, ContainerFile{
					Name:       f.GetName(),
					Size:       f.GetSize(),
					Mode:       f.GetMode(),
					ModifiedAt: time.UnixMilli(f.GetModifiedMs()),
				})
			}
			return nil
		})
	return out, err
}

// RestartContainer restarts the node's container.
func (c *Client) RestartContainer(ctx context.Context) error {
	return c.invoke(ctx, breaker.ClassBackendOps, "RestartContainer", slowTimeout,
		func(ctx context.Context, client proto.NodeServiceClient) error {
			_, err := client.RestartContainer(ctx, &proto.Empty{})
			return err
		})
}

// FetchPeakEvents replays the node's retained peak events with a sequence
// number beyond sinceSeq.
func (c *Client) FetchPeakEvents(ctx context.Context, sinceSeq uint64, category structs.PeakCategory) ([]structs.PeakEvent, error) {
	var out []structs.PeakEvent
	err := c.invoke(ctx, breaker.ClassSystemMonitoring, "FetchPeakEvents", streamTimeout,
		func(ctx context.Context, client proto.NodeServiceClient) error {
			stream, err := client.FetchPeakEvents(ctx, &proto.PeakEventsQuery{
				SinceSeq: sinceSeq,
				Category: proto.CategoryToProto(category),
			})
			if err != nil {
				return err
			}
			out = out[:0]
			for {
				event, err := stream.Recv()
				if err == io.EOF {
					return nil
				}
				if err != nil {
					return err
				}
				out = append(out, proto.PeakEventFromProto(event))
			}
		})
	return out, err
}
