package splitview

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/regenrek/splitpanes/internal/gesture"
	"github.com/regenrek/splitpanes/internal/logging"
	"github.com/regenrek/splitpanes/internal/split"
	"github.com/regenrek/splitpanes/internal/tui/mouse"
)

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if !m.opts.View.MouseEnabled() {
		return nil
	}
	p := split.Point{X: float64(msg.X), Y: float64(msg.Y)}
	switch {
	case mouse.IsPrimaryPress(msg):
		if m.Tracking() {
			return nil
		}
		gutter, ok := m.frame().gutterAt(msg.X, msg.Y)
		if !ok {
			return nil
		}
		m.tracker.Press(gutter, p, m.opts.Now())
	case mouse.IsMotion(msg):
		if !m.Tracking() {
			return nil
		}
		if err := m.tracker.Move(p); err != nil {
			m.setError(err)
			return nil
		}
		if m.tracker.State() == gesture.StateDragging {
			logging.LogEvery(context.Background(), "view.drag", dragLogInterval, slog.LevelDebug, "view: drag",
				slog.Int("gutter", m.tracker.Gutter()), slog.Int("x", msg.X), slog.Int("y", msg.Y))
		}
	case mouse.IsRelease(msg):
		if !m.Tracking() {
			return nil
		}
		if err := m.tracker.Release(p, m.opts.Now()); err != nil {
			m.setError(err)
		}
	}
	return nil
}

// MotionActive is the predicate for mouse.NewMotionFilter.
func MotionActive(model tea.Model) bool {
	m, ok := model.(*Model)
	return ok && m.Tracking()
}
