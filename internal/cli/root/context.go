package root

import (
	"context"
	"io"

	"github.com/urfave/cli/v3"

	"github.com/regenrek/splitpanes/internal/appconfig"
	"github.com/regenrek/splitpanes/internal/cli/spec"
)

// CommandContext wraps a command invocation.
type CommandContext struct {
	Context context.Context
	Args    []string
	Spec    spec.Command
	Cmd     *cli.Command
	Deps    Dependencies
	// Config is the loaded user config; ConfigPath is where it was read from.
	Config     appconfig.Config
	ConfigPath string
	JSON       bool
	Out        io.Writer
	ErrOut     io.Writer
	Stdin      io.Reader
	WorkDir    string
}
