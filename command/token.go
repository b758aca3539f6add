package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/cli"

	"github.com/wildosvpn/fleet/panel/store"
	"github.com/wildosvpn/fleet/panel/tokens"
)

// TokenCommand is the parent for token subcommands.
type TokenCommand struct {
	Meta
}

func (c *TokenCommand) Help() string {
	helpText := `
Usage: fleet token <subcommand> [options]

  Manage node-auth tokens.

  Generate a token for a node:

      $ fleet token generate -node-id=3

  Revoke every active token for a node:

      $ fleet token revoke -node-id=3
`
	return strings.TrimSpace(helpText)
}

func (c *TokenCommand) Synopsis() string {
	return "Manage node-auth tokens"
}

func (c *TokenCommand) Name() string { return "token" }

func (c *TokenCommand) Run(args []string) int {
	return cli.RunResultHelp
}

// tokenManager opens the panel store and builds a token manager around it.
func (m *Meta) tokenManager(envFile, dbPath string) (*tokens.Manager, *store.Store, error) {
	env, err := loadEnv(envFile)
	if err != nil {
		return nil, nil, err
	}
	if dbPath == "" {
		dbPath = envDefault(env, EnvDatabasePath, defaultDatabasePath)
	}

	s, err := store.Open(m.logger(env), dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	return tokens.NewManager(m.logger(env), s), s, nil
}

// TokenGenerateCommand issues a fresh node-auth token.
type TokenGenerateCommand struct {
	Meta
}

func (c *TokenGenerateCommand) Help() string {
	helpText := `
Usage: fleet token generate [options]

  Issues a token for a node and prints it. The raw token is shown exactly
  once; only its hash is stored.

Options:

  -env-file=<path>
    Optional env file overriding the process environment.

  -db=<path>
    Path to the sqlite database.

  -node-id=<id>
    Node the token authenticates. Required.
`
	return strings.TrimSpace(helpText)
}

func (c *TokenGenerateCommand) Synopsis() string {
	return "Issue a node-auth token"
}

func (c *TokenGenerateCommand) Name() string { return "token generate" }

func (c *TokenGenerateCommand) Run(args []string) int {
	var envFile, dbPath string
	var nodeID int64

	flags := c.FlagSet(c.Name())
	flags.StringVar(&envFile, "env-file", "", "")
	flags.StringVar(&dbPath, "db", "", "")
	flags.Int64Var(&nodeID, "node-id", 0, "")
	if err := flags.Parse(args); err != nil {
		c.Ui.Error(err.Error())
		return 1
	}
	if nodeID == 0 {
		c.Ui.Error("-node-id is required")
		return 1
	}

	manager, s, err := c.tokenManager(envFile, dbPath)
	if err != nil {
		c.Ui.Error(err.Error())
		return 1
	}
	defer s.Close()

	token, err := manager.Issue(context.Background(), nodeID)
	if err != nil {
		c.Ui.Error(fmt.Sprintf("Failed to issue token: %v", err))
		return 1
	}

	c.Ui.Output(fmt.Sprintf("Issued token for node %d (valid 7 days):", nodeID))
	c.Ui.Output("")
	c.Ui.Output("    " + token)
	c.Ui.Output("")
	c.Ui.Output("Store it now; it cannot be recovered later.")
	return 0
}

// TokenRevokeCommand deactivates every active token for a node.
type TokenRevokeCommand struct {
	Meta
}

func (c *TokenRevokeCommand) Help() string {
	helpText := `
Usage: fleet token revoke [options]

  Revokes every active token for a node.

Options:

  -env-file=<path>
    Optional env file overriding the process environment.

  -db=<path>
    Path to the sqlite database.

  -node-id=<id>
    Node whose tokens are revoked. Required.
`
	return strings.TrimSpace(helpText)
}

func (c *TokenRevokeCommand) Synopsis() string {
	return "Revoke a node's auth tokens"
}

func (c *TokenRevokeCommand) Name() string { return "token revoke" }

func (c *TokenRevokeCommand) Run(args []string) int {
	var envFile, dbPath string
	var nodeID int64

	flags := c.FlagSet(c.Name())
	flags.StringVar(&envFile, "env-file", "", "")
	flags.StringVar(&dbPath, "db", "", "")
	flags.Int64Var(&nodeID, "node-id", 0, "")
	if err := flags.Parse(args); err != nil {
		c.Ui.Error(err.Error())
		return 1
	}
	if nodeID == 0 {
		c.Ui.Error("-node-id is required")
		return 1
	}

	manager, s, err := c.tokenManager(envFile, dbPath)
	if err != nil {
		c.Ui.Error(err.Error())
		return 1
	}
	defer s.Close()

	n, err := manager.Revoke(context.Background(), nodeID)
	if err != nil {
		c.Ui.Error(fmt.Sprintf("Failed to revoke tokens: %v", err))
		return 1
	}
	c.Ui.Output(fmt.Sprintf("Revoked %d token(s) for node %d", n, nodeID))
	return 0
}
