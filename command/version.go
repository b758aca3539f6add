package command

import "strings"

// VersionCommand prints the build version.
type VersionCommand struct {
	Meta
	Version string
}

func (c *VersionCommand) Help() string {
	helpText := `
Usage: fleet version

  Prints the fleet version.
`
	return strings.TrimSpace(helpText)
}

func (c *VersionCommand) Synopsis() string {
	return "Prints the fleet version"
}

func (c *VersionCommand) Name() string { return "version" }

func (c *VersionCommand) Run(_ []string) int {
	c.Ui.Output(c.Version)
	return 0
}
