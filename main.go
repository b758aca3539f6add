package main

import (
	"fmt"
	"os"

	"github.com/hashicorp/cli"

	"github.com/wildosvpn/fleet/command"
	"github.com/wildosvpn/fleet/version"
)

func main() {
	os.Exit(Run(os.Args[1:]))
}

// Run executes the CLI and returns the process exit code.
func Run(args []string) int {
	meta := &command.Meta{
		Ui: &cli.BasicUi{
			Reader:      os.Stdin,
			Writer:      os.Stdout,
			ErrorWriter: os.Stderr,
		},
	}

	c := cli.NewCLI("fleet", version.GetVersion().VersionNumber())
	c.Args = args
	c.Commands = command.Commands(meta)

	exitCode, err := c.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error executing CLI: %v\n", err)
		return 1
	}
	return exitCode
}
