package split

// Key names a keyboard action on a focused gutter. Values match bubbletea key
// strings.
type Key string

const (
	KeyLeft     Key = "left"
	KeyRight    Key = "right"
	KeyUp       Key = "up"
	KeyDown     Key = "down"
	KeyPageUp   Key = "pgup"
	KeyPageDown Key = "pgdown"
)

// KeyOffset returns the gutter displacement for key, or false when the key does
// not move gutters on this split's axis.
func (s *Split) KeyOffset(key Key) (Point, bool) {
	step := s.cfg.KeyStep
	page := step * s.cfg.PageMultiplier
	if s.cfg.Direction == DirectionHorizontal {
		rtl := s.cfg.Dir == TextDirRTL
		switch key {
		case KeyLeft:
			return Point{X: -step}, true
		case KeyRight:
			return Point{X: step}, true
		case KeyPageUp:
			if rtl {
				return Point{X: -page}, true
			}
			return Point{X: page}, true
		case KeyPageDown:
			if rtl {
				return Point{X: page}, true
			}
			return Point{X: -page}, true
		}
		return Point{}, false
	}
	switch key {
	case KeyUp:
		return Point{Y: -step}, true
	case KeyDown:
		return Point{Y: step}, true
	case KeyPageUp:
		return Point{Y: -page}, true
	case KeyPageDown:
		return Point{Y: page}, true
	}
	return Point{}, false
}

// KeyboardMove applies a key press to a gutter as a one-shot drag. It reports
// false when the key is not a move key for this split.
func (s *Split) KeyboardMove(gutterIndex int, key Key, m Measurer) (bool, error) {
	offset, ok := s.KeyOffset(key)
	if !ok {
		return false, nil
	}
	sess, err := s.BeginDrag(gutterIndex, Point{}, m)
	if err != nil {
		return false, err
	}
	if err := s.UpdateDrag(sess, offset); err != nil {
		s.CancelDrag()
		return false, err
	}
	if err := s.EndDrag(sess); err != nil {
		return false, err
	}
	return true, nil
}
