package split

import (
	"strconv"
	"strings"
)

// Measurer reports the rendered extent of a pane along the split axis.
type Measurer interface {
	PaneExtent(index int) float64
}

// MeasureFunc adapts a function to Measurer.
type MeasureFunc func(index int) float64

func (f MeasureFunc) PaneExtent(index int) float64 { return f(index) }

type trackMeasurer []float64

func (m trackMeasurer) PaneExtent(index int) float64 {
	if index < 0 || index >= len(m) {
		return 0
	}
	return m[index]
}

// ExtentMeasurer measures panes as they would render in a container of the
// given extent.
func (s *Split) ExtentMeasurer(extent float64) Measurer {
	return trackMeasurer(s.Tracks(extent))
}

type track struct {
	px float64
	fr float64
}

// tracks builds one track per pane plus the gutter widths that follow each pane.
func (s *Split) tracks() ([]track, []float64) {
	visibleCount := 0
	nonWildcard := 0.0
	for _, p := range s.panes {
		if !p.cfg.Visible {
			continue
		}
		visibleCount++
		if !p.effective.IsWildcard() {
			nonWildcard += p.effective.Value()
		}
	}

	panes := make([]track, len(s.panes))
	gutters := make([]float64, len(s.panes))
	visited := 0
	for i, p := range s.panes {
		if p.cfg.Visible {
			size := p.effective
			switch {
			case s.cfg.Unit == UnitPixel && size.IsWildcard():
				panes[i] = track{fr: 100}
			case s.cfg.Unit == UnitPixel:
				panes[i] = track{px: size.Value()}
			case size.IsWildcard():
				rest := 100 - nonWildcard
				if rest < 0 {
					rest = 0
				}
				panes[i] = track{fr: rest}
			default:
				panes[i] = track{fr: size.Value()}
			}
			visited++
		}
		// Gutters only sit between two visible panes.
		if p.cfg.Visible && visibleCount-visited > 0 {
			gutters[i] = s.cfg.GutterSize
		}
	}
	return panes, gutters
}

// Tracks resolves the rendered extent of every pane inside a container of the
// given extent (gutters included). Hidden panes resolve to 0.
func (s *Split) Tracks(extent float64) []float64 {
	panes, gutters := s.tracks()
	free := extent
	totalFr := 0.0
	for i, t := range panes {
		free -= t.px + gutters[i]
		totalFr += t.fr
	}
	if free < 0 {
		free = 0
	}
	// A grid with less than one fr in total leaves the remainder unused.
	if totalFr < 1 {
		totalFr = 1
	}
	out := make([]float64, len(panes))
	for i, t := range panes {
		out[i] = t.px
		if t.fr > 0 {
			out[i] += free * t.fr / totalFr
		}
	}
	return out
}

// GutterExtent returns the total extent taken by gutters.
func (s *Split) GutterExtent() float64 {
	_, gutters := s.tracks()
	return sum(gutters)
}

// Template renders the layout as a grid-template value, e.g. "1fr / 30fr 11px 70fr".
func (s *Split) Template() string {
	panes, gutters := s.tracks()
	columns := make([]string, 0, len(panes)*2)
	for i, p := range s.panes {
		switch {
		case !p.cfg.Visible:
			columns = append(columns, "0")
		case p.effective.IsWildcard() || s.cfg.Unit == UnitPercent:
			columns = append(columns, formatNumber(panes[i].fr)+"fr")
		default:
			columns = append(columns, formatNumber(panes[i].px)+"px")
		}
		if i == len(s.panes)-1 {
			break
		}
		if gutters[i] > 0 {
			columns = append(columns, formatNumber(gutters[i])+"px")
		} else {
			columns = append(columns, "0")
		}
	}
	joined := strings.Join(columns, " ")
	if s.cfg.Direction == DirectionHorizontal {
		return "1fr / " + joined
	}
	return joined + " / 1fr"
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(roundWithPrecision(v, 3), 'f', -1, 64)
}
