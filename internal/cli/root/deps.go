package root

import (
	"io"
	"os"

	"github.com/regenrek/splitpanes/internal/identity"
)

// Dependencies provides process-level services to CLI handlers.
type Dependencies struct {
	Version string
	AppName string
	WorkDir string

	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader

	// SkipLogging leaves the process logger untouched. Tests set it.
	SkipLogging bool
}

// DefaultDependencies returns dependencies wired to the process.
func DefaultDependencies(version string) Dependencies {
	return Dependencies{
		Version: version,
		AppName: identity.CLIName,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Stdin:   os.Stdin,
	}
}
