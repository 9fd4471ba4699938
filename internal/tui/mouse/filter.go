package mouse

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Rect describes a hit-test rectangle in screen coordinates.
type Rect struct {
	X int
	Y int
	W int
	H int
}

// Empty reports whether the rectangle has non-positive dimensions.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Contains reports whether the point lies within the rectangle.
func (r Rect) Contains(x, y int) bool {
	if r.Empty() {
		return false
	}
	return x >= r.X && y >= r.Y && x < r.X+r.W && y < r.Y+r.H
}

const defaultMotionThrottle = 16 * time.Millisecond

// MotionFilter drops mouse motion the model does not need: motion while no
// gesture is active, repeats on the same cell, and events inside the throttle
// window. Pass Filter to tea.WithFilter.
type MotionFilter struct {
	throttle time.Duration
	active   func(tea.Model) bool
	now      func() time.Time

	lastAt time.Time
	lastX  int
	lastY  int
}

// NewMotionFilter returns a filter that forwards motion only while active
// reports true for the current model.
func NewMotionFilter(active func(tea.Model) bool) *MotionFilter {
	return &MotionFilter{
		throttle: defaultMotionThrottle,
		active:   active,
		now:      time.Now,
		lastX:    -1,
		lastY:    -1,
	}
}

func (f *MotionFilter) Filter(model tea.Model, msg tea.Msg) tea.Msg {
	if f == nil {
		return msg
	}
	mouse, ok := msg.(tea.MouseMsg)
	if !ok {
		return msg
	}
	if mouse.Action != tea.MouseActionMotion {
		// Presses and releases always pass and restart the throttle window.
		f.reset()
		return msg
	}
	if f.active != nil && !f.active(model) {
		f.reset()
		return nil
	}
	if mouse.X == f.lastX && mouse.Y == f.lastY {
		return nil
	}
	now := f.now()
	if !f.lastAt.IsZero() && now.Sub(f.lastAt) < f.throttle {
		return nil
	}
	f.lastAt = now
	f.lastX = mouse.X
	f.lastY = mouse.Y
	return msg
}

func (f *MotionFilter) reset() {
	f.lastAt = time.Time{}
	f.lastX = -1
	f.lastY = -1
}

// IsPrimaryPress reports a left button press.
func IsPrimaryPress(msg tea.MouseMsg) bool {
	return msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft
}

// IsRelease reports a button release. Some terminals report releases without
// a button, so the button is not checked.
func IsRelease(msg tea.MouseMsg) bool {
	return msg.Action == tea.MouseActionRelease
}

func IsMotion(msg tea.MouseMsg) bool {
	return msg.Action == tea.MouseActionMotion
}
