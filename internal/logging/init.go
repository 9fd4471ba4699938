package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/regenrek/splitpanes/internal/appdirs"
	"github.com/regenrek/splitpanes/internal/userpath"
)

type InitOptions struct {
	App     string
	Version string
	Mode    Mode
}

// Init installs the process-wide slog logger built from the mode defaults,
// cfg and the SPLITPANES_LOG_* environment, in that order. The returned func
// closes the file sink, if any.
func Init(ctx context.Context, cfg Config, opts InitOptions) (func() error, error) {
	if opts.App == "" {
		opts.App = "splitpanes"
	}
	if opts.Mode == 0 {
		opts.Mode = ModeCLI
	}
	merged, err := overlay(DefaultConfig(opts.Mode), cfg).WithEnv().Normalize()
	if err != nil {
		return nil, err
	}
	sink := Sink(deref(merged.Sink, string(SinkStderr)))
	if opts.Mode == ModeView && sink == SinkStderr {
		// stderr is under the alt screen while the view runs.
		sink = SinkFile
	}
	writer, closeFn, err := openSink(merged, sink)
	if err != nil {
		return nil, err
	}
	handlerOpts := &slog.HandlerOptions{
		Level:     parseLevel(merged.Level),
		AddSource: deref(merged.AddSource, false),
	}
	var handler slog.Handler
	if Format(deref(merged.Format, string(FormatText))) == FormatJSON {
		handler = slog.NewJSONHandler(writer, handlerOpts)
	} else {
		handler = slog.NewTextHandler(writer, handlerOpts)
	}
	logger := slog.New(handler).With(
		slog.String("app", opts.App),
		slog.String("version", opts.Version),
		slog.String("mode", opts.Mode.String()),
	)
	slog.SetDefault(logger)
	logger.DebugContext(ctx, "logging initialised", slog.String("sink", string(sink)))
	return closeFn, nil
}

// overlay returns base with every non-nil field of override applied.
func overlay(base, override Config) Config {
	base.Level = pick(base.Level, override.Level)
	base.Format = pick(base.Format, override.Format)
	base.Sink = pick(base.Sink, override.Sink)
	base.File = pick(base.File, override.File)
	base.AddSource = pick(base.AddSource, override.AddSource)
	base.MaxSizeMB = pick(base.MaxSizeMB, override.MaxSizeMB)
	base.MaxBackups = pick(base.MaxBackups, override.MaxBackups)
	base.MaxAgeDays = pick(base.MaxAgeDays, override.MaxAgeDays)
	base.Compress = pick(base.Compress, override.Compress)
	return base
}

func pick[T any](base, override *T) *T {
	if override != nil {
		return override
	}
	return base
}

func deref[T any](v *T, fallback T) T {
	if v == nil {
		return fallback
	}
	return *v
}

func parseLevel(value *string) slog.Leveler {
	if value == nil {
		return slog.LevelInfo
	}
	raw := strings.TrimSpace(*value)
	if strings.EqualFold(raw, "warning") {
		raw = "warn"
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(raw)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func openSink(cfg Config, sink Sink) (io.Writer, func() error, error) {
	noop := func() error { return nil }
	switch sink {
	case SinkNone:
		return io.Discard, noop, nil
	case SinkStderr:
		return os.Stderr, noop, nil
	case SinkFile:
		path, err := logFilePath(cfg)
		if err != nil {
			return nil, nil, err
		}
		rot := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    deref(cfg.MaxSizeMB, 10),
			MaxBackups: deref(cfg.MaxBackups, 3),
			MaxAge:     deref(cfg.MaxAgeDays, 7),
			Compress:   deref(cfg.Compress, true),
		}
		return rot, rot.Close, nil
	default:
		return nil, nil, fmt.Errorf("logging: unknown sink %q", sink)
	}
}

// logFilePath resolves the configured file, or the default under the state
// dir, and makes sure its directory exists with private permissions.
func logFilePath(cfg Config) (string, error) {
	path := userpath.Expand(strings.TrimSpace(deref(cfg.File, "")))
	isOverride := path != ""
	if !isOverride {
		p, err := appdirs.LogFilePath()
		if err != nil {
			return "", err
		}
		path = p
	}
	if err := appdirs.EnsurePrivateDir(filepath.Dir(path), isOverride); err != nil {
		return "", err
	}
	return path, nil
}
