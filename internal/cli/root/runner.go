package root

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/regenrek/splitpanes/internal/cli/spec"
	"github.com/regenrek/splitpanes/internal/identity"
)

// Runner executes the CLI using the spec and registry.
type Runner struct {
	specDoc *spec.Spec
	app     *cli.Command
}

func NewRunner(specDoc *spec.Spec, deps Dependencies, reg *Registry) (*Runner, error) {
	app, err := BuildApp(specDoc, deps, reg)
	if err != nil {
		return nil, err
	}
	return &Runner{specDoc: specDoc, app: app}, nil
}

// Run executes the CLI with the given arguments, args[0] being the binary.
func (r *Runner) Run(ctx context.Context, args []string) error {
	if r == nil || r.app == nil {
		return fmt.Errorf("runner is not initialized")
	}
	r.app.Name = identity.ResolveBinaryName(args)
	return r.app.Run(ctx, applyShorthand(r.specDoc, args))
}

// applyShorthand rewrites `splitpanes` to `splitpanes view` and
// `splitpanes NAME` to `splitpanes view NAME`.
func applyShorthand(specDoc *spec.Spec, args []string) []string {
	if specDoc == nil || !specDoc.App.LayoutShorthand || len(args) == 0 {
		return args
	}
	if len(args) == 1 {
		return []string{args[0], "view"}
	}
	if len(args) == 2 && !strings.HasPrefix(args[1], "-") && !specDoc.IsTopLevel(args[1]) && args[1] != "help" {
		return []string{args[0], "view", args[1]}
	}
	return args
}
