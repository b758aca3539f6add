package command

import (
	"flag"
	"io"

	"github.com/hashicorp/cli"
	hclog "github.com/hashicorp/go-hclog"
)

// Meta contains the options and helpers nearly every command inherits.
type Meta struct {
	Ui cli.Ui
}

// FlagSet returns a FlagSet configured for a command. Flag errors are
// reported through the Ui, not the default stderr writer.
func (m *Meta) FlagSet(name string) *flag.FlagSet {
	f := flag.NewFlagSet(name, flag.ContinueOnError)
	f.SetOutput(io.Discard)
	return f
}

// logger builds the process logger from the merged environment.
func (m *Meta) logger(env map[string]string) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:  "fleet",
		Level: hclog.LevelFromString(envDefault(env, EnvLogLevel, "INFO")),
	})
}

// flagList collects a repeatable string flag.
type flagList []string

func (f *flagList) String() string {
	return ""
}

func (f *flagList) Set(value string) error {
	*f = append(*f, value)
	return nil
}
