package node

import (
	"archive/tar"
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/stdcopy"
	hclog "github.com/hashicorp/go-hclog"
)

// ContainerFile is one entry of a container directory listing.
type ContainerFile struct {
	Name       string
	Size       int64
	Mode       string
	ModifiedAt time.Time
	IsDir      bool
}

// ContainerOps wraps the Docker Engine API for the optional node container.
// A node deployed outside a container runs without it and the corresponding
// RPCs report that no container is configured.
type ContainerOps struct {
	logger      hclog.Logger
	docker      *client.Client
	containerID string
}

// NewContainerOps connects to the local Docker daemon using the standard
// environment configuration. containerID names this node's own container.
func NewContainerOps(logger hclog.Logger, containerID string) (*ContainerOps, error) {
	docker, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("failed to create docker client: %w", err)
	}
	return &ContainerOps{
		logger:      logger.Named("container"),
		docker:      docker,
		containerID: containerID,
	}, nil
}

// Logs returns up to tail lines of the container's combined output.
func (c *ContainerOps) Logs(ctx context.Context, tail int) (string, error) {
	opts := container.LogsOptions{
		ShowStdout: true,
		ShowStderr: true,
	}
	if tail > 0 {
		opts.Tail = strconv.Itoa(tail)
	}

	rc, err := c.docker.ContainerLogs(ctx, c.containerID, opts)
	if err != nil {
		return "", fmt.Errorf("failed to fetch container logs: %w", err)
	}
	defer rc.Close()

	// Engine log streams multiplex stdout and stderr into one frame format.
	var buf bytes.Buffer
	if _, err := stdcopy.StdCopy(&buf, &buf, rc); err != nil {
		return "", fmt.Errorf("failed to demultiplex container logs: %w", err)
	}
	return buf.String(), nil
}

// ListFiles lists the entries under path inside the container. The engine
// hands back a tar stream; only its headers are consumed.
func (c *ContainerOps) ListFiles(ctx context.Context, path string) ([]ContainerFile, error) {
	rc, _, err := c.docker.CopyFromContainer(ctx, c.containerID, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read container path %q: %w", path, err)
	}
	defer rc.Close()

	var files []ContainerFile
	tr := tar.NewReader(rc)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read container archive: %w", err)
		}
		files = append(files, ContainerFile{
			Name:       hdr.Name,
			Size:       hdr.Size,
			Mode:       hdr.FileInfo().Mode().String(),
			ModifiedAt: hdr.ModTime,
			IsDir:      hdr.FileInfo().IsDir(),
		})
	}
	return files, nil
}

// Restart restarts the node's container with a stop timeout.
func (c *ContainerOps) Restart(ctx context.Context, timeout time.Duration) error {
	secs := int(timeout.Seconds())
	if secs <= 0 {
		secs = 10
	}
	c.logger.Info("restarting container", "container_id", c.containerID, "timeout", timeout)
	if err := c.docker.ContainerRestart(ctx, c.containerID, container.StopOptions{Timeout: &secs}); err != nil {
		return fmt.Errorf("failed to restart container: %w", err)
	}
	return nil
}

// Close releases the docker client.
func (c *ContainerOps) Close() error {
	return c.docker.Close()
}
