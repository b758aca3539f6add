package command

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/wildosvpn/fleet/helper/tlsutil"
	"github.com/wildosvpn/fleet/node"
)

// NodeCommand runs the node agent: the gRPC service, its proxy back-ends and
// the peak monitor.
type NodeCommand struct {
	Meta
}

func (c *NodeCommand) Help() string {
	helpText := `
Usage: fleet node [options]

  Starts a node agent serving the fleet node API over gRPC. The panel
  authenticates with a bearer token; traffic is protected with mutual TLS
  when certificate material is configured.

  The agent also reads NODE_GRPC_PORT, FLEET_NODE_TOKEN, FLEET_DATA_DIR,
  SSL_CERT_FILE, SSL_KEY_FILE and SSL_CLIENT_CERT_FILE from the environment
  or from -env-file.

Options:

  -env-file=<path>
    Optional env file overriding the process environment.

  -node-id=<id>
    Numeric id of this node as registered on the panel.

  -bind=<addr>
    Address to listen on. Defaults to 0.0.0.0.

  -port=<port>
    Port to listen on. Defaults to NODE_GRPC_PORT or 62050.

  -data-dir=<path>
    Directory for node state (user storage, peak sequence file).

  -token=<token>
    Bearer token the panel must present. Overrides FLEET_NODE_TOKEN.

  -backend=<name,type,binary,config[,version]>
    Proxy backend to run. Repeatable. Types: xray, hysteria2, sing-box.

  -container-id=<id>
    Docker container id for container operations. Empty disables them.

  -manage-firewall
    Enable the host port open/close RPCs (requires iptables).
`
	return strings.TrimSpace(helpText)
}

func (c *NodeCommand) Synopsis() string {
	return "Run a node agent"
}

func (c *NodeCommand) Name() string { return "node" }

func (c *NodeCommand) Run(args []string) int {
	var envFile, bind, dataDir, token, containerID string
	var nodeID int64
	var port int
	var manageFirewall bool
	var backendSpecs flagList

	flags := c.FlagSet(c.Name())
	flags.StringVar(&envFile, "env-file", "", "")
	flags.Int64Var(&nodeID, "node-id", 0, "")
	flags.StringVar(&bind, "bind", "0.0.0.0", "")
	flags.IntVar(&port, "port", 0, "")
	flags.StringVar(&dataDir, "data-dir", "", "")
	flags.StringVar(&token, "token", "", "")
	flags.StringVar(&containerID, "container-id", "", "")
	flags.BoolVar(&manageFirewall, "manage-firewall", false, "")
	flags.Var(&backendSpecs, "backend", "")
	if err := flags.Parse(args); err != nil {
		c.Ui.Error(err.Error())
		return 1
	}

	env, err := loadEnv(envFile)
	if err != nil {
		c.Ui.Error(err.Error())
		return 1
	}

	if port == 0 {
		if port, err = envInt(env, EnvNodeGRPCPort, defaultNodePort); err != nil {
			c.Ui.Error(err.Error())
			return 1
		}
	}
	if dataDir == "" {
		dataDir = envDefault(env, EnvDataDir, defaultDataDir)
	}
	if token == "" {
		token = env[EnvNodeToken]
	}
	if token == "" {
		c.Ui.Error("an auth token is required (-token or FLEET_NODE_TOKEN)")
		return 1
	}

	backends, err := parseBackendSpecs(backendSpecs)
	if err != nil {
		c.Ui.Error(err.Error())
		return 1
	}

	cfg := node.Config{
		NodeID:         nodeID,
		BindAddr:       bind,
		Port:           port,
		DataDir:        dataDir,
		AuthToken:      token,
		Backends:       backends,
		TLS:            nodeTLS(env),
		Logger:         c.logger(env),
		ContainerID:    containerID,
		ManageFirewall: manageFirewall,
	}

	agent, err := node.NewAgent(cfg)
	if err != nil {
		c.Ui.Error(fmt.Sprintf("Failed to start node agent: %v", err))
		return 1
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := agent.Run(ctx); err != nil {
		c.Ui.Error(fmt.Sprintf("Node agent exited with error: %v", err))
		return 1
	}
	return 0
}

// nodeTLS assembles the agent's mTLS material: its own serving pair plus the
// panel client certificate acting as the trust anchor. Missing material
// disables TLS, which is only acceptable in development.
func nodeTLS(env map[string]string) *tlsutil.Config {
	cert := env[EnvSSLCertFile]
	key := env[EnvSSLKeyFile]
	if cert == "" || key == "" {
		return nil
	}
	return &tlsutil.Config{
		CAFile:   env[EnvSSLClientCertFile],
		CertFile: cert,
		KeyFile:  key,
	}
}

// parseBackendSpecs parses repeated -backend values of the form
// name,type,binary,config[,version].
func parseBackendSpecs(specs []string) ([]node.BackendDef, error) {
	var defs []node.BackendDef
	for _, spec := range specs {
		parts := strings.Split(spec, ",")
		if len(parts) < 4 || len(parts) > 5 {
			return nil, fmt.Errorf("invalid -backend %q: want name,type,binary,config[,version]", spec)
		}
		def := node.BackendDef{
			Name:       strings.TrimSpace(parts[0]),
			Type:       strings.TrimSpace(parts[1]),
			Binary:     strings.TrimSpace(parts[2]),
			ConfigPath: strings.TrimSpace(parts[3]),
		}
		if len(parts) == 5 {
			def.Version = strings.TrimSpace(parts[4])
		}
		if def.Name == "" || def.Binary == "" || def.ConfigPath == "" {
			return nil, fmt.Errorf("invalid -backend %q: empty field", spec)
		}
		defs = append(defs, def)
	}
	return defs, nil
}
