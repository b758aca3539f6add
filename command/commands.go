package command

import (
	"github.com/hashicorp/cli"

	"github.com/wildosvpn/fleet/version"
)

// Commands returns the mapping of CLI commands for the fleet binary.
func Commands(metaPtr *Meta) map[string]cli.CommandFactory {
	if metaPtr == nil {
		metaPtr = new(Meta)
	}
	meta := *metaPtr

	return map[string]cli.CommandFactory{
		"node": func() (cli.Command, error) {
			return &NodeCommand{Meta: meta}, nil
		},
		"panel": func() (cli.Command, error) {
			return &PanelCommand{Meta: meta}, nil
		},
		"token": func() (cli.Command, error) {
			return &TokenCommand{Meta: meta}, nil
		},
		"token generate": func() (cli.Command, error) {
			return &TokenGenerateCommand{Meta: meta}, nil
		},
		"token revoke": func() (cli.Command, error) {
			return &TokenRevokeCommand{Meta: meta}, nil
		},
		"version": func() (cli.Command, error) {
			return &VersionCommand{
				Meta:    meta,
				Version: version.GetVersion().FullVersionNumber(true),
			}, nil
		},
	}
}
