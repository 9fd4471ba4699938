package entry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/regenrek/splitpanes/internal/cli/app"
	"github.com/regenrek/splitpanes/internal/cli/root"
	"github.com/regenrek/splitpanes/internal/identity"
)

// Run starts the CLI and returns the process exit code.
func Run(args []string, version string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return run(ctx, args, root.DefaultDependencies(version))
}

func run(ctx context.Context, args []string, deps root.Dependencies) int {
	appName := identity.ResolveBinaryName(args)
	deps.AppName = appName
	errOut := deps.Stderr
	if errOut == nil {
		errOut = io.Discard
	}
	runner, err := app.NewRunner(deps)
	if err != nil {
		fmt.Fprintf(errOut, "%s: %v\n", appName, err)
		return 1
	}
	if err := runner.Run(ctx, args); err != nil {
		var exitErr cli.ExitCoder
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode()
		}
		fmt.Fprintf(errOut, "%s: %v\n", appName, err)
		return 1
	}
	return 0
}
