// Package view implements the interactive view command.
package view

import (
	"context"
	"strings"

	"github.com/regenrek/splitpanes/internal/cli/root"
	"github.com/regenrek/splitpanes/internal/layoutfile"
	"github.com/regenrek/splitpanes/internal/runenv"
	"github.com/regenrek/splitpanes/internal/tui/splitview"
)

var runViewFn = func(ctx context.Context, opts splitview.Options) error {
	return splitview.Run(ctx, opts)
}

// Register registers the view handler.
func Register(reg *root.Registry) {
	reg.Register("view", runView)
}

func runView(ctx root.CommandContext) error {
	ref := strings.TrimSpace(ctx.Cmd.StringArg("layout"))
	dirs, err := root.ResolveLayoutDirs(ctx)
	if err != nil {
		return err
	}
	load := resolver(dirs, ref)
	// Fail before the terminal switches to the alternate screen.
	if _, _, err := load(); err != nil {
		return err
	}
	return runViewFn(ctx.Context, splitview.Options{
		Load:           load,
		View:           ctx.Config.View,
		NoColor:        runenv.NoColor(),
		ReloadDebounce: runenv.ReloadDebounce(),
	})
}

// resolver returns a loader that rereads every layout source, so reloads see
// edits to global and project layouts as well as plain files.
func resolver(dirs root.LayoutDirs, ref string) func() (*layoutfile.Definition, layoutfile.Info, error) {
	return func() (*layoutfile.Definition, layoutfile.Info, error) {
		loader, err := dirs.NewLoader()
		if err != nil {
			return nil, layoutfile.Info{}, err
		}
		return loader.Resolve(ref)
	}
}
