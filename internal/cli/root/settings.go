package root

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/regenrek/splitpanes/internal/appconfig"
	"github.com/regenrek/splitpanes/internal/identity"
	"github.com/regenrek/splitpanes/internal/logging"
	"github.com/regenrek/splitpanes/internal/userpath"
)

// settings is the per-run state the root Before hook prepares for handlers.
type settings struct {
	config     appconfig.Config
	configPath string
	cleanups   []func()
}

func (s *settings) close() {
	for i := len(s.cleanups) - 1; i >= 0; i-- {
		s.cleanups[i]()
	}
	s.cleanups = nil
}

func (s *settings) load(ctx context.Context, cmd *cli.Command, deps Dependencies) error {
	cleanup, err := applyFreshConfig(cmd.Bool("fresh-config"))
	if err != nil {
		return err
	}
	s.cleanups = append(s.cleanups, cleanup)

	path := userpath.Expand(strings.TrimSpace(cmd.String("config")))
	if path == "" {
		path, err = appconfig.DefaultPath()
		if err != nil {
			return err
		}
	}
	cfg, err := appconfig.NewLoader(path).Load()
	if err != nil {
		return err
	}
	s.config = cfg
	s.configPath = path

	if deps.SkipLogging {
		return nil
	}
	logCfg := cfg.Logging
	if level := strings.TrimSpace(cmd.String("log-level")); level != "" {
		logCfg.Level = &level
	}
	args := append([]string{cmd.Name}, cmd.Args().Slice()...)
	mode := logging.ModeFromArgs(args)
	closeLogger, err := logging.Init(ctx, logCfg, logging.InitOptions{
		App:     identity.AppSlug,
		Version: deps.Version,
		Mode:    mode,
	})
	if err != nil {
		if mode == logging.ModeView {
			return fmt.Errorf("init logging: %w", err)
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})))
		slog.Error("init logging failed; using stderr fallback", "err", err)
		return nil
	}
	s.cleanups = append(s.cleanups, func() { _ = closeLogger() })
	slog.Debug("config loaded", slog.String("path", path), slog.String("mode", mode.String()))
	return nil
}
