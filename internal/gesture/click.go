package gesture

import "time"

// ClickKind classifies a completed press on a gutter.
type ClickKind int

const (
	ClickNone ClickKind = iota
	ClickSingle
	ClickDouble
)

func (k ClickKind) String() string {
	switch k {
	case ClickSingle:
		return "click"
	case ClickDouble:
		return "double_click"
	default:
		return "none"
	}
}

// Click is a classified gutter click.
type Click struct {
	Kind   ClickKind
	Gutter int
}

// ClickClassifier groups presses on the same gutter into single and double
// clicks. Time is always passed in so callers control the clock.
//
// A zero Threshold disables double clicks: every release is a click.
type ClickClassifier struct {
	Threshold time.Duration

	gutter  int
	count   int
	pressAt time.Time
	pending bool
	dueAt   time.Time
}

// Press records a press on gutter. A pending click is returned when its window
// has closed or the press lands on another gutter; otherwise the press joins
// its group.
func (c *ClickClassifier) Press(gutter int, now time.Time) (Click, bool) {
	flushed, ok := c.Due(now)
	if !ok && c.pending && gutter != c.gutter {
		flushed, ok = Click{Kind: ClickSingle, Gutter: c.gutter}, true
		c.reset()
	}
	c.pending = false
	if c.count > 0 && gutter == c.gutter && c.Threshold > 0 && now.Sub(c.pressAt) < c.Threshold {
		c.count++
	} else {
		c.gutter = gutter
		c.count = 1
	}
	c.pressAt = now
	return flushed, ok
}

// Release classifies the release of the current press.
func (c *ClickClassifier) Release(now time.Time) (Click, bool) {
	if c.count == 0 {
		return Click{}, false
	}
	gutter := c.gutter
	switch {
	case c.Threshold <= 0:
		c.reset()
		return Click{Kind: ClickSingle, Gutter: gutter}, true
	case c.count >= 2:
		c.reset()
		return Click{Kind: ClickDouble, Gutter: gutter}, true
	case now.Sub(c.pressAt) >= c.Threshold:
		c.reset()
		return Click{Kind: ClickSingle, Gutter: gutter}, true
	}
	c.pending = true
	c.dueAt = c.pressAt.Add(c.Threshold)
	return Click{}, false
}

// Due releases the pending click once its window has closed.
func (c *ClickClassifier) Due(now time.Time) (Click, bool) {
	if !c.pending || now.Before(c.dueAt) {
		return Click{}, false
	}
	gutter := c.gutter
	c.reset()
	return Click{Kind: ClickSingle, Gutter: gutter}, true
}

// Deadline reports when the pending click falls due.
func (c *ClickClassifier) Deadline() (time.Time, bool) {
	return c.dueAt, c.pending
}

// Abort forgets the current group, including any pending click.
func (c *ClickClassifier) Abort() {
	c.reset()
}

func (c *ClickClassifier) reset() {
	c.count = 0
	c.pending = false
	c.pressAt = time.Time{}
	c.dueAt = time.Time{}
}
