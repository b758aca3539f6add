package command

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/wildosvpn/fleet/helper/tlsutil"
	"github.com/wildosvpn/fleet/panel/keys"
	"github.com/wildosvpn/fleet/panel/registry"
	"github.com/wildosvpn/fleet/panel/store"
	"github.com/wildosvpn/fleet/panel/tokens"
	"github.com/wildosvpn/fleet/structs"
)

// PanelCommand runs the panel side: it connects to every registered node and
// keeps the fleet state flowing into the store.
type PanelCommand struct {
	Meta
}

func (c *PanelCommand) Help() string {
	helpText := `
Usage: fleet panel [options]

  Starts the panel: builds a client for every node in the database, streams
  their peak events, records their traffic counters and keeps node-auth
  token usage flushed.

  The panel also reads FLEET_DATABASE_PATH, AUTH_GENERATION_ALGORITHM,
  DISABLE_RECORDING_NODE_USAGE, TASKS_RECORD_USER_USAGES_INTERVAL,
  SSL_CERT_FILE, SSL_KEY_FILE and SSL_CLIENT_CERT_FILE from the environment
  or from -env-file.

Options:

  -env-file=<path>
    Optional env file overriding the process environment.

  -db=<path>
    Path to the sqlite database. Defaults to FLEET_DATABASE_PATH or
    "fleet.db".
`
	return strings.TrimSpace(helpText)
}

func (c *PanelCommand) Synopsis() string {
	return "Run the panel"
}

func (c *PanelCommand) Name() string { return "panel" }

func (c *PanelCommand) Run(args []string) int {
	var envFile, dbPath string

	flags := c.FlagSet(c.Name())
	flags.StringVar(&envFile, "env-file", "", "")
	flags.StringVar(&dbPath, "db", "", "")
	if err := flags.Parse(args); err != nil {
		c.Ui.Error(err.Error())
		return 1
	}

	env, err := loadEnv(envFile)
	if err != nil {
		c.Ui.Error(err.Error())
		return 1
	}
	if dbPath == "" {
		dbPath = envDefault(env, EnvDatabasePath, defaultDatabasePath)
	}

	// Fail early on a bad key-derivation algorithm rather than on the
	// first user operation.
	alg := keys.Algorithm(envDefault(env, EnvAuthAlgorithm, string(keys.AlgorithmPlain)))
	if _, err := keys.Derive(alg, "probe", "probe"); err != nil {
		c.Ui.Error(err.Error())
		return 1
	}

	usageInterval, err := envDuration(env, EnvRecordUsagesInterval, 30*time.Second)
	if err != nil {
		c.Ui.Error(err.Error())
		return 1
	}

	logger := c.logger(env)
	s, err := store.Open(logger, dbPath)
	if err != nil {
		c.Ui.Error(fmt.Sprintf("Failed to open database: %v", err))
		return 1
	}
	defer s.Close()

	manager := tokens.NewManager(logger, s)
	reg, err := registry.New(registry.Config{
		Logger:        logger,
		Store:         s,
		Tokens:        manager,
		UsageInterval: usageInterval,
	})
	if err != nil {
		c.Ui.Error(err.Error())
		return 1
	}
	defer reg.Stop()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	certs := panelTLS(env)
	nodes, err := s.ListNodes(ctx)
	if err != nil {
		c.Ui.Error(fmt.Sprintf("Failed to list nodes: %v", err))
		return 1
	}
	for _, n := range nodes {
		if n.Status == structs.NodeStatusDisabled {
			continue
		}
		// One bad node never keeps the panel from starting.
		if err := reg.Add(ctx, n, certs); err != nil {
			logger.Error("failed to register node", "node_id", n.ID, "error", err)
		}
	}
	logger.Info("panel started", "nodes", reg.Len(), "db", dbPath)

	go manager.RunUsageFlusher(ctx)
	go manager.RunCleanup(ctx)
	if !envBool(env, EnvDisableUsageRecord) {
		go reg.RunUsagePoller(ctx)
	}

	<-ctx.Done()
	logger.Info("panel shutting down")
	return 0
}

// panelTLS assembles the panel's client-side material: the node certificate
// as trust anchor and the panel client pair.
func panelTLS(env map[string]string) *tlsutil.Config {
	cert := env[EnvSSLCertFile]
	if cert == "" {
		return nil
	}
	return &tlsutil.Config{
		CAFile:   cert,
		CertFile: env[EnvSSLClientCertFile],
		KeyFile:  env[EnvSSLKeyFile],
	}
}
