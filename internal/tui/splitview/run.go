package splitview

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/regenrek/splitpanes/internal/profiling"
	"github.com/regenrek/splitpanes/internal/tui/mouse"
)

type programRunner interface {
	Run() (tea.Model, error)
}

var newProgramFn = func(model tea.Model, opts ...tea.ProgramOption) programRunner {
	return tea.NewProgram(model, opts...)
}

// Run shows the view until the user quits or ctx is done.
func Run(ctx context.Context, opts Options) error {
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.WriteAll
	}
	if opts.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	model, err := NewModel(opts)
	if err != nil {
		return err
	}
	if path := model.info.Path; path != "" {
		changes, stop, err := watchLayout(path)
		if err != nil {
			slog.Warn("view: live reload disabled", slog.Any("err", err))
		} else {
			model.changes = changes
			defer func() { _ = stop() }()
		}
	}

	stopProfiler := profiling.Start(ctx)
	defer stopProfiler()

	programOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if opts.View.MouseEnabled() {
		filter := mouse.NewMotionFilter(MotionActive)
		programOpts = append(programOpts, tea.WithMouseCellMotion(), tea.WithFilter(filter.Filter))
	}
	slog.Info("view: start", slog.String("layout", model.info.Name), slog.String("source", string(model.info.Source)))
	if _, err := newProgramFn(model, programOpts...).Run(); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("splitview: %w", err)
	}
	return nil
}
