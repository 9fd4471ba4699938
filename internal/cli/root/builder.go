package root

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/regenrek/splitpanes/internal/cli/output"
	"github.com/regenrek/splitpanes/internal/cli/spec"
)

// BuildApp constructs the CLI from the command spec and handler registry.
func BuildApp(specDoc *spec.Spec, deps Dependencies, reg *Registry) (*cli.Command, error) {
	if specDoc == nil {
		return nil, fmt.Errorf("spec is nil")
	}
	if reg == nil {
		return nil, fmt.Errorf("registry is nil")
	}
	if err := reg.EnsureHandlers(specDoc); err != nil {
		return nil, err
	}
	state := &settings{}
	app := &cli.Command{
		Name:        specDoc.App.Name,
		Usage:       specDoc.App.Summary,
		Description: specDoc.App.Summary,
		Writer:      deps.Stdout,
		ErrWriter:   deps.Stderr,
	}
	app.Before = func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
		if cmd.Bool("version") {
			out := deps.Stdout
			if out == nil {
				out = io.Discard
			}
			_, _ = fmt.Fprintf(out, "%s %s\n", specDoc.App.Name, deps.Version)
			return ctx, cli.Exit("", 0)
		}
		if err := state.load(ctx, cmd, deps); err != nil {
			state.close()
			return ctx, err
		}
		return ctx, nil
	}
	app.After = func(ctx context.Context, cmd *cli.Command) error {
		state.close()
		return nil
	}
	globalFlags, err := buildFlags(specDoc.GlobalFlags)
	if err != nil {
		return nil, err
	}
	app.Flags = globalFlags
	for _, cmdSpec := range specDoc.Commands {
		cmd, err := buildCommand(cmdSpec, deps, reg, state)
		if err != nil {
			return nil, err
		}
		app.Commands = append(app.Commands, cmd)
	}
	return app, nil
}

func buildCommand(cmdSpec spec.Command, deps Dependencies, reg *Registry, state *settings) (*cli.Command, error) {
	cmd := &cli.Command{
		Name:        cmdSpec.Name,
		Aliases:     cmdSpec.Aliases,
		Usage:       cmdSpec.Summary,
		Description: cmdSpec.Description,
		Hidden:      cmdSpec.Hidden,
		ArgsUsage:   argsUsage(cmdSpec.Args),
		Arguments:   buildArguments(cmdSpec.Args),
	}
	flags, err := buildFlags(cmdSpec.Flags)
	if err != nil {
		return nil, fmt.Errorf("flags for %s: %w", cmdSpec.ID, err)
	}
	cmd.Flags = flags
	for _, child := range cmdSpec.Subcommands {
		sub, err := buildCommand(child, deps, reg, state)
		if err != nil {
			return nil, err
		}
		cmd.Commands = append(cmd.Commands, sub)
	}
	if handler, ok := reg.HandlerFor(cmdSpec.ID); ok {
		cmd.Action = func(ctx context.Context, cliCmd *cli.Command) error {
			return runHandler(ctx, cliCmd, cmdSpec, deps, state, handler)
		}
	}
	return cmd, nil
}

func runHandler(ctx context.Context, cliCmd *cli.Command, cmdSpec spec.Command, deps Dependencies, state *settings, handler Handler) error {
	if handler == nil {
		return nil
	}
	commandCtx := CommandContext{
		Context:    ctx,
		Args:       positionalArgs(cmdSpec, cliCmd),
		Spec:       cmdSpec,
		Cmd:        cliCmd,
		Deps:       deps,
		Config:     state.config,
		ConfigPath: state.configPath,
		JSON:       cliCmd.Bool("json"),
		Out:        deps.Stdout,
		ErrOut:     deps.Stderr,
		Stdin:      deps.Stdin,
		WorkDir:    deps.WorkDir,
	}
	if commandCtx.Out == nil {
		commandCtx.Out = io.Discard
	}
	if commandCtx.ErrOut == nil {
		commandCtx.ErrOut = io.Discard
	}
	if commandCtx.JSON && !cmdSpec.JSON {
		return fmt.Errorf("command %s does not support --json", cmdSpec.Name)
	}
	start := time.Now()
	err := validateInvocation(cmdSpec, cliCmd)
	if err == nil {
		err = handler(commandCtx)
	}
	if err == nil {
		return nil
	}
	slog.Debug("command failed", slog.String("command", cmdSpec.ID), slog.Any("err", err))
	if !commandCtx.JSON {
		return err
	}
	meta := output.WithDuration(output.NewMeta(cmdSpec.ID, deps.Version), start)
	_ = output.WriteError(commandCtx.Out, meta, ErrorCode(err), err.Error(), errorDetails(err))
	return cli.Exit("", 1)
}
