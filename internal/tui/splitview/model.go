// Package splitview is the interactive terminal view of a split layout.
package splitview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/regenrek/splitpanes/internal/appconfig"
	"github.com/regenrek/splitpanes/internal/gesture"
	"github.com/regenrek/splitpanes/internal/layoutfile"
	"github.com/regenrek/splitpanes/internal/logging"
	"github.com/regenrek/splitpanes/internal/split"
	"github.com/regenrek/splitpanes/internal/tui/theme"
)

const (
	defaultReloadDebounce = 150 * time.Millisecond
	dragLogInterval       = 250 * time.Millisecond
)

// Options configures a Model.
type Options struct {
	// Load returns the layout to show. It is called again on every reload.
	Load           func() (*layoutfile.Definition, layoutfile.Info, error)
	View           appconfig.ViewConfig
	NoColor        bool
	Clipboard      func(string) error
	Now            func() time.Time
	ReloadDebounce time.Duration
}

type statusKind int

const (
	statusInfo statusKind = iota
	statusSuccess
	statusWarning
	statusError
)

type (
	clickTickMsg   struct{}
	fileChangedMsg struct{}
	reloadTickMsg  struct{ seq int }
)

// Model is the bubbletea model of the split view.
type Model struct {
	opts   Options
	keys   *keyMap
	help   help.Model
	styles theme.Styles

	def         *layoutfile.Definition
	info        layoutfile.Info
	split       *split.Split
	tracker     *gesture.Tracker
	unsubscribe func()
	events      []split.Event

	width  int
	height int
	focus  int

	status     string
	statusKind statusKind

	changes       <-chan struct{}
	tickAt        time.Time
	reloadSeq     int
	reloadPending bool
}

// NewModel loads the layout and builds the view model.
func NewModel(opts Options) (*Model, error) {
	if opts.Load == nil {
		return nil, errors.New("splitview: layout loader is required")
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.ReloadDebounce <= 0 {
		opts.ReloadDebounce = defaultReloadDebounce
	}
	keys, err := buildKeyMap(opts.View.Keys)
	if err != nil {
		return nil, err
	}
	m := &Model{
		opts:   opts,
		keys:   keys,
		help:   help.New(),
		styles: theme.New(opts.View.Theme),
		focus:  -1,
	}
	def, info, s, err := m.loadSplit()
	if err != nil {
		return nil, err
	}
	m.install(def, info, s)
	return m, nil
}

func (m *Model) loadSplit() (*layoutfile.Definition, layoutfile.Info, *split.Split, error) {
	def, info, err := m.opts.Load()
	if err != nil {
		return nil, layoutfile.Info{}, nil, err
	}
	s, err := def.NewSplit()
	if err != nil {
		return nil, layoutfile.Info{}, nil, err
	}
	if err := applyViewConfig(s, m.opts.View); err != nil {
		return nil, layoutfile.Info{}, nil, err
	}
	return def, info, s, nil
}

// applyViewConfig maps the view settings onto the split. Key steps are in
// cells here, not the pixel defaults of the split package.
func applyViewConfig(s *split.Split, view appconfig.ViewConfig) error {
	cfg := s.Config()
	if view.KeyStep > 0 {
		cfg.KeyStep = view.KeyStep
	}
	if view.PageMultiplier > 0 {
		cfg.PageMultiplier = view.PageMultiplier
	}
	if d, ok := view.DoubleClickThreshold(); ok {
		cfg.DoubleClickThreshold = d
	}
	if view.ClickDelta != nil {
		cfg.GutterClickDelta = *view.ClickDelta
	}
	return s.SetConfig(cfg)
}

func (m *Model) install(def *layoutfile.Definition, info layoutfile.Info, s *split.Split) {
	if m.tracker != nil {
		// deliver a click still waiting for its window before the tracker goes
		if deadline, ok := m.tracker.Deadline(); ok {
			m.tracker.Tick(deadline)
			m.drainEvents()
		}
	}
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
	m.def = def
	m.info = info
	m.split = s
	m.events = nil
	m.unsubscribe = s.Subscribe(func(ev split.Event) {
		m.events = append(m.events, ev)
	})
	m.tracker = gesture.NewTracker(s, func() split.Measurer {
		return m.frame().measurer()
	})
	m.clampFocus()
}

// Split returns the split being shown.
func (m *Model) Split() *split.Split { return m.split }

// Tracking reports whether a press or drag is in progress.
func (m *Model) Tracking() bool {
	return m.tracker != nil && m.tracker.State() != gesture.StateIdle
}

func (m *Model) Init() tea.Cmd {
	return waitForChange(m.changes)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m, m.after(m.handleKey(msg))
	case tea.MouseMsg:
		return m, m.after(m.handleMouse(msg))
	case clickTickMsg:
		m.tickAt = time.Time{}
		m.tracker.Tick(m.opts.Now())
		return m, m.after(nil)
	case fileChangedMsg:
		m.reloadSeq++
		seq := m.reloadSeq
		return m, tea.Batch(
			waitForChange(m.changes),
			tea.Tick(m.opts.ReloadDebounce, func(time.Time) tea.Msg { return reloadTickMsg{seq: seq} }),
		)
	case reloadTickMsg:
		if msg.seq != m.reloadSeq {
			return m, nil
		}
		m.requestReload()
		return m, m.after(nil)
	}
	return m, nil
}

// after handles split events raised by the last input and schedules the
// click window tick.
func (m *Model) after(cmd tea.Cmd) tea.Cmd {
	m.drainEvents()
	if m.reloadPending && !m.Tracking() {
		m.reloadPending = false
		m.reload()
		m.drainEvents()
	}
	deadline, ok := m.tracker.Deadline()
	if !ok || deadline.Equal(m.tickAt) {
		return cmd
	}
	m.tickAt = deadline
	delay := max(deadline.Sub(m.opts.Now()), 0)
	tick := tea.Tick(delay, func(time.Time) tea.Msg { return clickTickMsg{} })
	if cmd == nil {
		return tick
	}
	return tea.Batch(cmd, tick)
}

func (m *Model) drainEvents() {
	ctx := context.Background()
	for len(m.events) > 0 {
		ev := m.events[0]
		m.events = m.events[1:]
		switch ev.Kind {
		case split.EventGutterClick:
			m.focus = ev.GutterIndex
			m.setStatus(statusInfo, fmt.Sprintf("gutter %d focused", ev.GutterIndex+1))
		case split.EventGutterDoubleClick:
			m.focus = ev.GutterIndex
			m.resetSizes()
		case split.EventDragStart:
			slog.Debug("view: drag start", slog.Int("gutter", ev.GutterIndex))
		case split.EventDragEnd:
			slog.Info("view: drag end", slog.Int("gutter", ev.GutterIndex), slog.String("sizes", sizesString(ev.Sizes)))
		case split.EventSizesChanged:
			logging.LogEvery(ctx, "view.sizes", dragLogInterval, slog.LevelDebug, "view: sizes changed",
				slog.Int("gutter", ev.GutterIndex), slog.String("sizes", sizesString(ev.Sizes)))
		}
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.quit) {
		m.tracker.Cancel()
		return tea.Quit
	}
	if key.Matches(msg, m.keys.cancel) {
		if m.Tracking() {
			m.tracker.Cancel()
			m.setStatus(statusWarning, "drag cancelled")
		}
		return nil
	}
	if m.Tracking() {
		return nil
	}
	if k, ok := m.keys.moveKey(msg); ok {
		m.moveFocused(k)
		return nil
	}
	switch {
	case key.Matches(msg, m.keys.help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.focusNext):
		m.cycleFocus(1)
	case key.Matches(msg, m.keys.focusPrev):
		m.cycleFocus(-1)
	case key.Matches(msg, m.keys.reset):
		m.resetSizes()
	case key.Matches(msg, m.keys.copy):
		m.copyLayout()
	case key.Matches(msg, m.keys.reload):
		m.requestReload()
	case key.Matches(msg, m.keys.toggle):
		m.togglePane(int(msg.String()[0] - '1'))
	}
	return nil
}

func (m *Model) cycleFocus(delta int) {
	n := len(m.split.Gutters())
	if n == 0 {
		m.focus = -1
		m.setStatus(statusWarning, "no gutters to focus")
		return
	}
	switch {
	case m.focus < 0 && delta > 0:
		m.focus = 0
	case m.focus < 0:
		m.focus = n - 1
	default:
		m.focus = (m.focus + delta + n) % n
	}
	m.setStatus(statusInfo, fmt.Sprintf("gutter %d focused", m.focus+1))
}

func (m *Model) clampFocus() {
	if n := len(m.split.Gutters()); m.focus >= n {
		m.focus = n - 1
	}
}

func (m *Model) moveFocused(k split.Key) {
	if m.focus < 0 {
		m.setStatus(statusWarning, "press tab to focus a gutter")
		return
	}
	moved, err := m.split.KeyboardMove(m.focus, k, m.frame().measurer())
	if err != nil {
		m.setError(err)
		return
	}
	if !moved {
		m.setStatus(statusWarning, fmt.Sprintf("%s does not move a %s split", k, m.split.Config().Direction))
		return
	}
	m.setStatus(statusInfo, sizesString(m.split.Sizes()))
}

func (m *Model) togglePane(i int) {
	panes := m.split.Panes()
	if i < 0 || i >= len(panes) {
		m.setStatus(statusWarning, fmt.Sprintf("no pane %d", i+1))
		return
	}
	visible := !panes[i].Visible
	if err := m.split.SetVisible(i, visible); err != nil {
		m.setError(err)
		return
	}
	m.clampFocus()
	verb := "hidden"
	if visible {
		verb = "shown"
	}
	m.setStatus(statusSuccess, fmt.Sprintf("pane %d %s", i+1, verb))
}

// resetSizes restores every pane to its declared size.
func (m *Model) resetSizes() {
	if err := m.split.SetPanes(m.split.Panes()); err != nil {
		m.setError(err)
		return
	}
	m.setStatus(statusSuccess, "sizes reset")
}

func (m *Model) copyLayout() {
	out, err := layoutfile.ExportYAML(layoutfile.FromSplit(m.def.Name, m.def.Description, m.split))
	if err != nil {
		m.setError(err)
		return
	}
	if m.opts.Clipboard == nil {
		m.setStatus(statusWarning, "clipboard unavailable")
		return
	}
	if err := m.opts.Clipboard(out); err != nil {
		m.setError(fmt.Errorf("copy layout: %w", err))
		return
	}
	m.setStatus(statusSuccess, "layout copied to clipboard")
}

// requestReload reloads now, or after the current gesture ends.
func (m *Model) requestReload() {
	if m.Tracking() {
		m.reloadPending = true
		m.setStatus(statusInfo, "reload queued until the drag ends")
		return
	}
	m.reload()
}

func (m *Model) reload() {
	def, info, s, err := m.loadSplit()
	if err != nil {
		slog.Warn("view: reload failed", slog.Any("err", err))
		m.setError(err)
		return
	}
	m.install(def, info, s)
	slog.Info("view: layout reloaded", slog.String("layout", info.Name), slog.String("source", string(info.Source)))
	m.setStatus(statusSuccess, "reloaded "+info.Name)
}

func (m *Model) setStatus(kind statusKind, text string) {
	m.statusKind = kind
	m.status = text
}

func (m *Model) setError(err error) {
	if err == nil {
		return
	}
	m.setStatus(statusError, err.Error())
}

func waitForChange(ch <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return fileChangedMsg{}
	}
}
