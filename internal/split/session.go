package split

import (
	"errors"
	"math"
)

// Boundary is a pane's pixel-space size range for one drag session.
type Boundary struct {
	Min float64
	Max float64
}

// DragSession is the snapshot taken when a gutter drag starts. Every move in
// the session is computed against this snapshot, never against the previous
// move.
type DragSession struct {
	token  uint64
	gutter Gutter
	start  Point

	pixelSizes []float64
	bounds     []Boundary
	movable    []bool

	direction    Direction
	dir          TextDir
	step         float64
	restrictMove bool
}

func (d *DragSession) Gutter() Gutter { return d.gutter }
func (d *DragSession) Start() Point   { return d.start }

// PixelSizes returns the measured size of every pane at drag start.
func (d *DragSession) PixelSizes() []float64 {
	return append([]float64(nil), d.pixelSizes...)
}

// Bounds returns the pixel bounds of every pane at drag start.
func (d *DragSession) Bounds() []Boundary {
	return append([]Boundary(nil), d.bounds...)
}

// BeginDrag snapshots pane sizes and bounds and activates a drag session on
// the given gutter.
func (s *Split) BeginDrag(gutterIndex int, start Point, m Measurer) (*DragSession, error) {
	if s.cfg.Disabled {
		return nil, ErrDisabled
	}
	if s.session != nil {
		return nil, ErrDragInProgress
	}
	g, err := s.gutter(gutterIndex)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, errors.New("split: measurer is required")
	}
	sess := s.buildSession(g, start, m)
	s.lastToken++
	sess.token = s.lastToken
	s.session = sess
	s.emit(EventDragStart, g.Index)
	return sess, nil
}

func (s *Split) buildSession(g Gutter, start Point, m Measurer) *DragSession {
	n := len(s.panes)
	sizes := make([]float64, n)
	for i := range s.panes {
		sizes[i] = roundWithPrecision(m.PaneExtent(i), 1)
	}
	total := sum(sizes)
	toPixels := func(percent float64) float64 {
		if math.IsInf(percent, 1) {
			return percent
		}
		return roundWithPrecision(percent/100*total, 3)
	}

	bounds := make([]Boundary, n)
	movable := make([]bool, n)
	for i, p := range s.panes {
		lo, hi := p.cfg.NormalizedMin(), p.cfg.NormalizedMax()
		if s.cfg.Unit == UnitPercent {
			lo, hi = toPixels(lo), toPixels(hi)
		}
		bounds[i] = Boundary{Min: lo, Max: hi}
		movable[i] = p.cfg.Visible && !p.cfg.LockSize
	}
	return &DragSession{
		gutter:       g,
		start:        start,
		pixelSizes:   sizes,
		bounds:       bounds,
		movable:      movable,
		direction:    s.cfg.Direction,
		dir:          s.cfg.Dir,
		step:         s.cfg.GutterStep,
		restrictMove: s.cfg.RestrictMove,
	}
}

func (s *Split) checkSession(sess *DragSession) error {
	if sess == nil || s.session == nil || sess.token != s.session.token {
		return ErrStaleSession
	}
	return nil
}

// UpdateDrag moves the dragged gutter to p and writes the new sizes back.
func (s *Split) UpdateDrag(sess *DragSession, p Point) error {
	if err := s.checkSession(sess); err != nil {
		return err
	}
	s.applyPixelSizes(sess.Redistribute(p))
	s.emit(EventSizesChanged, sess.gutter.Index)
	return nil
}

// EndDrag closes the session. Later updates with it return ErrStaleSession.
func (s *Split) EndDrag(sess *DragSession) error {
	if err := s.checkSession(sess); err != nil {
		return err
	}
	s.session = nil
	s.emit(EventDragEnd, sess.gutter.Index)
	return nil
}

// CancelDrag closes the active session, if any.
func (s *Split) CancelDrag() {
	if s.session == nil {
		return
	}
	_ = s.EndDrag(s.session)
}

// applyPixelSizes writes session pixel sizes back as effective sizes. Wildcard
// and locked panes are never assigned.
func (s *Split) applyPixelSizes(sizes []float64) {
	total := sum(sizes)
	for i, p := range s.panes {
		if i >= len(sizes) || !p.cfg.Visible || p.cfg.LockSize || p.effective.IsWildcard() {
			continue
		}
		if s.cfg.Unit == UnitPixel {
			p.effective = Fixed(sizes[i])
			continue
		}
		if total <= 0 {
			continue
		}
		p.effective = Fixed(roundWithPrecision(sizes[i]/total*100, 3))
	}
}
