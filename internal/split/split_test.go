package split

import (
	"errors"
	"math"
	"testing"
)

const referenceExtent = 1076 // 1065px of panes plus one 11px gutter

func percentPanes(sizes ...float64) []PaneConfig {
	out := make([]PaneConfig, len(sizes))
	for i, size := range sizes {
		cfg := NewPaneConfig("")
		cfg.Size = Fixed(size)
		out[i] = cfg
	}
	return out
}

func newReferenceSplit(t *testing.T) *Split {
	t.Helper()
	s, err := New(DefaultConfig(), percentPanes(30, 70))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return s
}

func approxEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

func assertTracks(t *testing.T, s *Split, extent float64, want ...float64) {
	t.Helper()
	got := s.Tracks(extent)
	if len(got) != len(want) {
		t.Fatalf("Tracks() = %v, want %v", got, want)
	}
	for i := range want {
		if !approxEqual(got[i], want[i], 0.05) {
			t.Fatalf("Tracks() = %v, want %v", got, want)
		}
	}
}

func dragBy(t *testing.T, s *Split, gutter int, extent float64, offset Point) {
	t.Helper()
	sess, err := s.BeginDrag(gutter, Point{X: 500, Y: 500}, s.ExtentMeasurer(extent))
	if err != nil {
		t.Fatalf("BeginDrag() error: %v", err)
	}
	end := Point{X: 500 + offset.X, Y: 500 + offset.Y}
	if err := s.UpdateDrag(sess, end); err != nil {
		t.Fatalf("UpdateDrag() error: %v", err)
	}
	if err := s.EndDrag(sess); err != nil {
		t.Fatalf("EndDrag() error: %v", err)
	}
}

func TestReferenceInitialTracks(t *testing.T) {
	s := newReferenceSplit(t)
	assertTracks(t, s, referenceExtent, 319.5, 745.5)
	if got := s.Template(); got != "1fr / 30fr 11px 70fr" {
		t.Fatalf("Template() = %q", got)
	}
}

func TestReferenceDragSequence(t *testing.T) {
	s := newReferenceSplit(t)

	dragBy(t, s, 0, referenceExtent, Point{X: 280})
	assertTracks(t, s, referenceExtent, 599.5, 465.5)

	dragBy(t, s, 0, referenceExtent, Point{X: -280})
	assertTracks(t, s, referenceExtent, 319.5, 745.5)
	sizes := s.Sizes()
	if sizes[0].Value() != 30 || sizes[1].Value() != 70 {
		t.Fatalf("expected sizes restored to 30/70, got %v", sizes)
	}

	dragBy(t, s, 0, referenceExtent, Point{X: 750})
	assertTracks(t, s, referenceExtent, 1065, 0)

	dragBy(t, s, 0, referenceExtent, Point{X: -1070})
	assertTracks(t, s, referenceExtent, 0, 1065)
}

func TestReferenceVerticalDrag(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Direction = DirectionVertical
	s, err := New(cfg, percentPanes(30, 70))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	extent := 300.0 // 289px of panes
	assertTracks(t, s, extent, 86.7, 202.3)

	dragBy(t, s, 0, extent, Point{X: 999, Y: 20})
	assertTracks(t, s, extent, 106.7, 182.3)

	dragBy(t, s, 0, extent, Point{Y: 300})
	assertTracks(t, s, extent, 289, 0)
	if got := s.Template(); got != "100fr 11px 0fr / 1fr" {
		t.Fatalf("Template() = %q", got)
	}
}

func TestPixelWildcardDrag(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Unit = UnitPixel
	cfg.GutterSize = 10
	panes := []PaneConfig{NewPaneConfig("a"), NewPaneConfig("b"), NewPaneConfig("c")}
	panes[0].Size = Fixed(50)
	panes[1].Size = Wildcard()
	panes[2].Size = Fixed(50)
	s, err := New(cfg, panes)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	assertTracks(t, s, 400, 50, 280, 50)
	if got := s.Template(); got != "1fr / 50px 10px 100fr 10px 50px" {
		t.Fatalf("Template() = %q", got)
	}

	dragBy(t, s, 0, 400, Point{X: 30})
	sizes := s.Sizes()
	if sizes[0].Value() != 80 || !sizes[1].IsWildcard() || sizes[2].Value() != 50 {
		t.Fatalf("unexpected sizes after drag: %v", sizes)
	}
	assertTracks(t, s, 400, 80, 250, 50)
}

func TestCascadeAndRestrictMove(t *testing.T) {
	build := func(restrict bool) *Split {
		cfg := DefaultConfig()
		cfg.GutterSize = 10
		cfg.RestrictMove = restrict
		panes := percentPanes(20, 30, 50)
		panes[1].MinSize = Fixed(20)
		s, err := New(cfg, panes)
		if err != nil {
			t.Fatalf("New() error: %v", err)
		}
		return s
	}
	extent := 1020.0 // 1000px of panes

	s := build(false)
	dragBy(t, s, 1, extent, Point{X: -200})
	assertTracks(t, s, extent, 100, 200, 700)

	s = build(true)
	dragBy(t, s, 1, extent, Point{X: -200})
	assertTracks(t, s, extent, 200, 200, 600)
	dragBy(t, s, 1, extent, Point{X: -400})
	assertTracks(t, s, extent, 200, 200, 600)
}

func TestExpandStopsAtMax(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GutterSize = 10
	panes := percentPanes(20, 30, 50)
	panes[0].MaxSize = Fixed(40)
	s, err := New(cfg, panes)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	dragBy(t, s, 0, 1020, Point{X: 300})
	assertTracks(t, s, 1020, 400, 100, 500)
}

func TestLockedPaneDoesNotMove(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GutterSize = 10
	panes := percentPanes(20, 30, 50)
	panes[0].LockSize = true
	s, err := New(cfg, panes)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	dragBy(t, s, 0, 1020, Point{X: 100})
	assertTracks(t, s, 1020, 200, 300, 500)

	dragBy(t, s, 1, 1020, Point{X: -500})
	assertTracks(t, s, 1020, 200, 0, 800)
}

func TestRTLMirrorsHorizontalOffset(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Dir = TextDirRTL
	s, err := New(cfg, percentPanes(30, 70))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	dragBy(t, s, 0, referenceExtent, Point{X: 100})
	assertTracks(t, s, referenceExtent, 219.5, 845.5)
}

func TestGutterStepQuantizesOffset(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GutterStep = 10
	s, err := New(cfg, percentPanes(30, 70))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	dragBy(t, s, 0, referenceExtent, Point{X: 4})
	assertTracks(t, s, referenceExtent, 319.5, 745.5)

	dragBy(t, s, 0, referenceExtent, Point{X: 14})
	assertTracks(t, s, referenceExtent, 329.5, 735.5)
}

func TestHiddenPaneIsSkipped(t *testing.T) {
	panes := percentPanes(30, 10, 70)
	panes[1].Visible = false
	s, err := New(DefaultConfig(), panes)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	gutters := s.Gutters()
	if len(gutters) != 1 || gutters[0].Before != 0 || gutters[0].After != 2 {
		t.Fatalf("unexpected gutters: %#v", gutters)
	}
	if got := s.Template(); got != "1fr / 30fr 11px 0 0 70fr" {
		t.Fatalf("Template() = %q", got)
	}
	dragBy(t, s, 0, referenceExtent, Point{X: 280})
	assertTracks(t, s, referenceExtent, 599.5, 0, 465.5)
	if got := len(s.Sizes()); got != 2 {
		t.Fatalf("Sizes() len = %d, want 2", got)
	}
}

func TestRedistributeProperties(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GutterSize = 10
	panes := percentPanes(15, 25, 20, 40)
	panes[0].MinSize = Fixed(5)
	panes[1].MaxSize = Fixed(35)
	panes[2].MinSize = Fixed(10)
	panes[3].MinSize = Fixed(20)
	s, err := New(cfg, panes)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	extent := 1030.0

	for gutter := 0; gutter < 3; gutter++ {
		sess, err := s.BeginDrag(gutter, Point{}, s.ExtentMeasurer(extent))
		if err != nil {
			t.Fatalf("BeginDrag() error: %v", err)
		}
		before := sess.PixelSizes()
		bounds := sess.Bounds()
		for offset := -1200.0; offset <= 1200; offset += 37 {
			got := sess.Redistribute(Point{X: offset})
			if !approxEqual(sum(got), sum(before), 0.001) {
				t.Fatalf("gutter %d offset %v: total %v, want %v", gutter, offset, sum(got), sum(before))
			}
			for i, size := range got {
				if size < bounds[i].Min-0.001 || size > bounds[i].Max+0.001 {
					t.Fatalf("gutter %d offset %v: pane %d size %v outside %#v", gutter, offset, i, size, bounds[i])
				}
			}
		}
		farForward := sess.Redistribute(Point{X: 5000})
		farther := sess.Redistribute(Point{X: 9000})
		for i := range farForward {
			if farForward[i] != farther[i] {
				t.Fatalf("expected clamped drag to stop changing, got %v then %v", farForward, farther)
			}
		}
		if got := sess.Redistribute(Point{}); !equalFloats(got, before) {
			t.Fatalf("zero offset changed sizes: %v -> %v", before, got)
		}
		s.CancelDrag()
	}
}

func equalFloats(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestRedistributeIsRelativeToSnapshot(t *testing.T) {
	s := newReferenceSplit(t)
	sess, err := s.BeginDrag(0, Point{X: 100}, s.ExtentMeasurer(referenceExtent))
	if err != nil {
		t.Fatalf("BeginDrag() error: %v", err)
	}
	for _, x := range []float64{150, 380, 200, 380} {
		if err := s.UpdateDrag(sess, Point{X: x}); err != nil {
			t.Fatalf("UpdateDrag() error: %v", err)
		}
	}
	if err := s.EndDrag(sess); err != nil {
		t.Fatalf("EndDrag() error: %v", err)
	}
	assertTracks(t, s, referenceExtent, 599.5, 465.5)
}

func TestSessionGuards(t *testing.T) {
	s := newReferenceSplit(t)
	sess, err := s.BeginDrag(0, Point{}, s.ExtentMeasurer(referenceExtent))
	if err != nil {
		t.Fatalf("BeginDrag() error: %v", err)
	}
	if !s.Dragging() {
		t.Fatalf("expected dragging")
	}
	if _, err := s.BeginDrag(0, Point{}, s.ExtentMeasurer(referenceExtent)); !errors.Is(err, ErrDragInProgress) {
		t.Fatalf("expected ErrDragInProgress, got %v", err)
	}
	if err := s.SetPaneSize(0, Fixed(50)); !errors.Is(err, ErrDragInProgress) {
		t.Fatalf("expected ErrDragInProgress on SetPaneSize, got %v", err)
	}
	if err := s.SetVisible(1, false); !errors.Is(err, ErrDragInProgress) {
		t.Fatalf("expected ErrDragInProgress on SetVisible, got %v", err)
	}
	if err := s.EndDrag(sess); err != nil {
		t.Fatalf("EndDrag() error: %v", err)
	}
	if err := s.UpdateDrag(sess, Point{X: 300}); !errors.Is(err, ErrStaleSession) {
		t.Fatalf("expected ErrStaleSession, got %v", err)
	}
	assertTracks(t, s, referenceExtent, 319.5, 745.5)
	if err := s.EndDrag(sess); !errors.Is(err, ErrStaleSession) {
		t.Fatalf("expected ErrStaleSession on second EndDrag, got %v", err)
	}
	if _, err := s.BeginDrag(3, Point{}, s.ExtentMeasurer(referenceExtent)); !errors.Is(err, ErrGutterOutOfRange) {
		t.Fatalf("expected ErrGutterOutOfRange, got %v", err)
	}
}

func TestDisabledSplitRejectsDrag(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Disabled = true
	s, err := New(cfg, percentPanes(30, 70))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if _, err := s.BeginDrag(0, Point{}, s.ExtentMeasurer(referenceExtent)); !errors.Is(err, ErrDisabled) {
		t.Fatalf("expected ErrDisabled, got %v", err)
	}
	if moved, err := s.KeyboardMove(0, KeyRight, s.ExtentMeasurer(referenceExtent)); moved || !errors.Is(err, ErrDisabled) {
		t.Fatalf("expected disabled keyboard move, got moved=%v err=%v", moved, err)
	}
}

func TestFailedMutationKeepsState(t *testing.T) {
	s := newReferenceSplit(t)
	dragBy(t, s, 0, referenceExtent, Point{X: 280})
	if err := s.SetPaneSize(0, Fixed(10)); !IsConfigurationError(err) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	assertTracks(t, s, referenceExtent, 599.5, 465.5)
	if got := s.Panes()[0].Size.Value(); got != 30 {
		t.Fatalf("declared size changed to %v", got)
	}

	if err := s.SetPaneSize(0, Fixed(40)); err == nil {
		t.Fatalf("expected 40/70 to be rejected")
	}
	if err := s.SetPanes(percentPanes(40, 60)); err != nil {
		t.Fatalf("SetPanes() error: %v", err)
	}
	assertTracks(t, s, referenceExtent, 426, 639)
}

func TestSetVisibleResetsEffectiveSizes(t *testing.T) {
	panes := []PaneConfig{NewPaneConfig("a"), NewPaneConfig("b"), NewPaneConfig("c"), NewPaneConfig("d")}
	s, err := New(DefaultConfig(), panes)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	for _, size := range s.Sizes() {
		if size.Value() != 25 {
			t.Fatalf("expected even distribution, got %v", s.Sizes())
		}
	}
	dragBy(t, s, 0, 1033, Point{X: 100})
	if err := s.SetVisible(3, false); err != nil {
		t.Fatalf("SetVisible() error: %v", err)
	}
	sizes := s.Sizes()
	if len(sizes) != 3 || !approxEqual(sizes[0].Value(), 100.0/3, 1e-9) {
		t.Fatalf("expected three even panes, got %v", sizes)
	}
}

func TestSetUnitRevalidates(t *testing.T) {
	s := newReferenceSplit(t)
	var cfgErr *ConfigurationError
	if err := s.SetUnit(UnitPixel); !errors.As(err, &cfgErr) || cfgErr.Reason != ReasonPixelNoWildcard {
		t.Fatalf("expected pixel_no_wildcard, got %v", err)
	}
	if s.Config().Unit != UnitPercent {
		t.Fatalf("unit changed after failed SetUnit")
	}
}

func TestEventsOrder(t *testing.T) {
	s := newReferenceSplit(t)
	var kinds []EventKind
	var last Event
	unsubscribe := s.Subscribe(func(ev Event) {
		kinds = append(kinds, ev.Kind)
		last = ev
	})
	moved, err := s.KeyboardMove(0, KeyRight, s.ExtentMeasurer(referenceExtent))
	if err != nil || !moved {
		t.Fatalf("KeyboardMove() = %v, %v", moved, err)
	}
	want := []EventKind{EventDragStart, EventSizesChanged, EventDragEnd}
	if len(kinds) != len(want) {
		t.Fatalf("events = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("events = %v, want %v", kinds, want)
		}
	}
	if last.GutterIndex != 0 || len(last.Sizes) != 2 || last.Sizes[0].Value() != 34.695 {
		t.Fatalf("unexpected drag end event: %#v", last)
	}

	s.GutterClicked(0)
	s.GutterDoubleClicked(0)
	if kinds[len(kinds)-2] != EventGutterClick || kinds[len(kinds)-1] != EventGutterDoubleClick {
		t.Fatalf("unexpected click events: %v", kinds)
	}

	unsubscribe()
	count := len(kinds)
	s.GutterClicked(0)
	if len(kinds) != count {
		t.Fatalf("listener called after unsubscribe")
	}
}
