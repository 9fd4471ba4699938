// Package split keeps the sizes of a row or column of panes consistent while
// gutters between them are dragged.
//
// A Split owns the effective size of every pane. Callers declare sizes with
// PaneConfig; the split resets effective sizes from the declarations whenever
// they change and rewrites them during a drag session. Sizes are either
// percentages of the panes' total extent or absolute pixels, and at most one
// pane may be the wildcard "*" that takes whatever space remains.
package split

import (
	"fmt"
	"time"
)

const (
	DefaultGutterSize     = 11
	DefaultGutterStep     = 1
	DefaultClickDelta     = 2
	DefaultKeyStep        = 50
	DefaultPageMultiplier = 10
)

// Config holds split-wide settings.
type Config struct {
	Direction    Direction
	Unit         Unit
	GutterSize   float64
	GutterStep   float64
	RestrictMove bool
	Dir          TextDir
	Disabled     bool

	// GutterClickDelta is how far the pointer may move after a press before the
	// press turns into a drag.
	GutterClickDelta float64
	// DoubleClickThreshold groups presses into a double click. Zero disables
	// double clicks and emits clicks immediately.
	DoubleClickThreshold time.Duration

	KeyStep        float64
	PageMultiplier float64
}

func DefaultConfig() Config {
	return Config{
		Direction:        DirectionHorizontal,
		Unit:             UnitPercent,
		GutterSize:       DefaultGutterSize,
		GutterStep:       DefaultGutterStep,
		GutterClickDelta: DefaultClickDelta,
		KeyStep:          DefaultKeyStep,
		PageMultiplier:   DefaultPageMultiplier,
	}
}

func (c Config) normalize() (Config, error) {
	if c.GutterStep == 0 {
		c.GutterStep = DefaultGutterStep
	}
	if c.KeyStep == 0 {
		c.KeyStep = DefaultKeyStep
	}
	if c.PageMultiplier == 0 {
		c.PageMultiplier = DefaultPageMultiplier
	}
	switch {
	case c.GutterSize <= 0:
		return c, configErr(ReasonInvalidConfig, -1, "gutter size must be positive, got %g", c.GutterSize)
	case c.GutterStep < 0:
		return c, configErr(ReasonInvalidConfig, -1, "gutter step must be positive, got %g", c.GutterStep)
	case c.GutterClickDelta < 0:
		return c, configErr(ReasonInvalidConfig, -1, "gutter click delta must not be negative, got %g", c.GutterClickDelta)
	case c.DoubleClickThreshold < 0:
		return c, configErr(ReasonInvalidConfig, -1, "double click threshold must not be negative")
	case c.KeyStep < 0 || c.PageMultiplier < 0:
		return c, configErr(ReasonInvalidConfig, -1, "keyboard step must be positive")
	}
	return c, nil
}

// Split is a single row or column of panes. It is not safe for concurrent use.
type Split struct {
	cfg   Config
	panes []*pane

	session   *DragSession
	lastToken uint64

	listeners     map[int]Listener
	listenerOrder []int
	nextListener  int
}

// New builds a split and validates the declared sizes.
func New(cfg Config, panes []PaneConfig) (*Split, error) {
	normalized, err := cfg.normalize()
	if err != nil {
		return nil, err
	}
	s := &Split{cfg: normalized, panes: newPanes(panes)}
	if err := reconcile(s.panes, s.cfg.Unit); err != nil {
		return nil, err
	}
	return s, nil
}

func newPanes(cfgs []PaneConfig) []*pane {
	out := make([]*pane, len(cfgs))
	for i := range cfgs {
		out[i] = &pane{cfg: cfgs[i]}
	}
	return out
}

func (s *Split) Config() Config { return s.cfg }

// Len returns the number of panes, visible or not.
func (s *Split) Len() int { return len(s.panes) }

// Panes returns a copy of the pane declarations.
func (s *Split) Panes() []PaneConfig {
	out := make([]PaneConfig, len(s.panes))
	for i, p := range s.panes {
		out[i] = p.cfg
	}
	return out
}

// Sizes returns the effective size of every visible pane, in order.
func (s *Split) Sizes() []Size {
	out := make([]Size, 0, len(s.panes))
	for _, p := range s.panes {
		if p.cfg.Visible {
			out = append(out, p.effective)
		}
	}
	return out
}

// EffectiveSize returns the effective size of pane i. Hidden panes report 0.
func (s *Split) EffectiveSize(i int) (Size, error) {
	if i < 0 || i >= len(s.panes) {
		return Size{}, fmt.Errorf("split: pane %d out of range", i)
	}
	return s.panes[i].effective, nil
}

// Dragging reports whether a drag session is active.
func (s *Split) Dragging() bool { return s.session != nil }

// SetPanes replaces every pane declaration.
func (s *Split) SetPanes(panes []PaneConfig) error {
	return s.mutate(func(cfg *Config, next []*pane) ([]*pane, error) {
		return newPanes(panes), nil
	})
}

// SetPaneSize changes the declared size of pane i.
func (s *Split) SetPaneSize(i int, size Size) error {
	return s.mutate(func(cfg *Config, next []*pane) ([]*pane, error) {
		if i < 0 || i >= len(next) {
			return nil, fmt.Errorf("split: pane %d out of range", i)
		}
		next[i].cfg.Size = size
		return next, nil
	})
}

// SetVisible shows or hides pane i.
func (s *Split) SetVisible(i int, visible bool) error {
	return s.mutate(func(cfg *Config, next []*pane) ([]*pane, error) {
		if i < 0 || i >= len(next) {
			return nil, fmt.Errorf("split: pane %d out of range", i)
		}
		next[i].cfg.Visible = visible
		return next, nil
	})
}

// SetUnit switches between percent and pixel sizing.
func (s *Split) SetUnit(unit Unit) error {
	return s.mutate(func(cfg *Config, next []*pane) ([]*pane, error) {
		cfg.Unit = unit
		return next, nil
	})
}

// SetConfig replaces the split settings. Effective sizes are reset only when
// the unit changes.
func (s *Split) SetConfig(cfg Config) error {
	if s.session != nil {
		return ErrDragInProgress
	}
	normalized, err := cfg.normalize()
	if err != nil {
		return err
	}
	if normalized.Unit == s.cfg.Unit {
		s.cfg = normalized
		return nil
	}
	return s.mutate(func(c *Config, next []*pane) ([]*pane, error) {
		*c = normalized
		return next, nil
	})
}

// mutate applies fn to a copy of the split state and commits it only when the
// result reconciles.
func (s *Split) mutate(fn func(cfg *Config, next []*pane) ([]*pane, error)) error {
	if s.session != nil {
		return ErrDragInProgress
	}
	cfg := s.cfg
	next := make([]*pane, len(s.panes))
	for i, p := range s.panes {
		cp := *p
		next[i] = &cp
	}
	next, err := fn(&cfg, next)
	if err != nil {
		return err
	}
	if err := reconcile(next, cfg.Unit); err != nil {
		return err
	}
	s.cfg = cfg
	s.panes = next
	s.emit(EventSizesChanged, -1)
	return nil
}

// Gutter is the divider between two consecutive visible panes. Before and
// After are pane indices in the full pane list.
type Gutter struct {
	Index  int
	Before int
	After  int
}

// Gutters lists the gutters between visible panes in order.
func (s *Split) Gutters() []Gutter {
	var out []Gutter
	prev := -1
	for i, p := range s.panes {
		if !p.cfg.Visible {
			continue
		}
		if prev >= 0 {
			out = append(out, Gutter{Index: len(out), Before: prev, After: i})
		}
		prev = i
	}
	return out
}

func (s *Split) gutter(index int) (Gutter, error) {
	gutters := s.Gutters()
	if index < 0 || index >= len(gutters) {
		return Gutter{}, fmt.Errorf("%w: %d (have %d)", ErrGutterOutOfRange, index, len(gutters))
	}
	return gutters[index], nil
}
