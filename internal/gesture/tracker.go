// Package gesture turns raw pointer input on gutters into drag sessions and
// clicks.
package gesture

import (
	"math"
	"time"

	"github.com/regenrek/splitpanes/internal/split"
)

// State is the pointer tracker state.
type State int

const (
	StateIdle State = iota
	StateArmed
	StateDragging
)

func (s State) String() string {
	switch s {
	case StateArmed:
		return "armed"
	case StateDragging:
		return "dragging"
	default:
		return "idle"
	}
}

// Target is the split a tracker drives. *split.Split implements it.
type Target interface {
	Config() split.Config
	BeginDrag(gutterIndex int, start split.Point, m split.Measurer) (*split.DragSession, error)
	UpdateDrag(sess *split.DragSession, p split.Point) error
	EndDrag(sess *split.DragSession) error
	CancelDrag()
	GutterClicked(gutter int)
	GutterDoubleClicked(gutter int)
}

// Tracker is the pointer state machine for one split:
// Idle -> Armed on press, Armed -> Dragging once the pointer leaves the click
// delta, and back to Idle on release or cancel.
type Tracker struct {
	target  Target
	measure func() split.Measurer

	state    State
	gutter   int
	press    split.Point
	baseline split.Point
	session  *split.DragSession
	clicks   ClickClassifier
}

// NewTracker returns an idle tracker. measure is called when a drag starts to
// snapshot the current pane extents.
func NewTracker(target Target, measure func() split.Measurer) *Tracker {
	return &Tracker{target: target, measure: measure}
}

func (t *Tracker) State() State { return t.state }

// Gutter returns the gutter of the current press or drag.
func (t *Tracker) Gutter() int { return t.gutter }

// Press arms the tracker on gutter. It is ignored unless the tracker is idle
// and the target is enabled.
func (t *Tracker) Press(gutter int, p split.Point, now time.Time) {
	if t.state != StateIdle {
		return
	}
	cfg := t.target.Config()
	if cfg.Disabled {
		return
	}
	t.clicks.Threshold = cfg.DoubleClickThreshold
	if click, ok := t.clicks.Press(gutter, now); ok {
		t.deliver(click)
	}
	t.state = StateArmed
	t.gutter = gutter
	t.press = p
	t.baseline = p
}

// Move feeds a pointer motion. Leaving the click delta starts the drag from
// the last position still inside it, then applies the move.
func (t *Tracker) Move(p split.Point) error {
	switch t.state {
	case StateArmed:
		delta := t.target.Config().GutterClickDelta
		if math.Abs(p.X-t.press.X) <= delta && math.Abs(p.Y-t.press.Y) <= delta {
			t.baseline = p
			return nil
		}
		var m split.Measurer
		if t.measure != nil {
			m = t.measure()
		}
		sess, err := t.target.BeginDrag(t.gutter, t.baseline, m)
		if err != nil {
			t.state = StateIdle
			t.clicks.Abort()
			return err
		}
		t.clicks.Abort()
		t.session = sess
		t.state = StateDragging
		return t.target.UpdateDrag(sess, p)
	case StateDragging:
		return t.target.UpdateDrag(t.session, p)
	}
	return nil
}

// Release ends the current drag, or classifies the press as a click. The
// drag keeps the sizes of the last move; p is not applied.
func (t *Tracker) Release(p split.Point, now time.Time) error {
	switch t.state {
	case StateDragging:
		sess := t.session
		t.session = nil
		t.state = StateIdle
		return t.target.EndDrag(sess)
	case StateArmed:
		t.state = StateIdle
		if click, ok := t.clicks.Release(now); ok {
			t.deliver(click)
		}
	}
	return nil
}

// Cancel drops the current press or drag without classifying a click.
func (t *Tracker) Cancel() {
	if t.state == StateDragging {
		t.target.CancelDrag()
	}
	t.session = nil
	t.state = StateIdle
	t.clicks.Abort()
}

// Tick releases a pending single click whose window closed before now.
func (t *Tracker) Tick(now time.Time) bool {
	click, ok := t.clicks.Due(now)
	if ok {
		t.deliver(click)
	}
	return ok
}

// Deadline reports when Tick should next be called.
func (t *Tracker) Deadline() (time.Time, bool) {
	return t.clicks.Deadline()
}

func (t *Tracker) deliver(click Click) {
	switch click.Kind {
	case ClickSingle:
		t.target.GutterClicked(click.Gutter)
	case ClickDouble:
		t.target.GutterDoubleClicked(click.Gutter)
	}
}
