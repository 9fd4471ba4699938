package splitview

import (
	"math"
	"sort"

	"github.com/regenrek/splitpanes/internal/split"
	"github.com/regenrek/splitpanes/internal/tui/mouse"
)

// span is a run of cells along the split axis.
type span struct {
	start int
	size  int
}

func (s span) end() int { return s.start + s.size }

// frame is the cell layout of one render: where every pane and gutter sits in
// the body area.
type frame struct {
	horizontal bool
	width      int
	height     int
	cells      []int
	panes      []span
	gutters    []span
	// gutterIndex maps a gutters entry to its split gutter index.
	gutterIndex []int
}

// axisExtent is the body size along the split axis.
func (f frame) axisExtent() int {
	if f.horizontal {
		return f.width
	}
	return f.height
}

// measurer reports rendered pane cells, so drags move gutters by whole cells.
func (f frame) measurer() split.Measurer {
	cells := f.cells
	return split.MeasureFunc(func(i int) float64 {
		if i < 0 || i >= len(cells) {
			return 0
		}
		return float64(cells[i])
	})
}

// gutterRect is the hit area of gutter i in screen coordinates.
func (f frame) gutterRect(i int) mouse.Rect {
	g := f.gutters[i]
	if f.horizontal {
		return mouse.Rect{X: g.start, Y: 0, W: g.size, H: f.height}
	}
	return mouse.Rect{X: 0, Y: g.start, W: f.width, H: g.size}
}

// gutterAt returns the gutter under (x, y).
func (f frame) gutterAt(x, y int) (int, bool) {
	for i := range f.gutters {
		if f.gutterRect(i).Contains(x, y) {
			return f.gutterIndex[i], true
		}
	}
	return -1, false
}

// gutterCells is the rendered width of one gutter.
func gutterCells(size float64) int {
	cells := int(math.Round(size))
	if cells < 1 {
		return 1
	}
	return cells
}

// computeFrame lays out s in a width x height body.
func computeFrame(s *split.Split, width, height int) frame {
	f := frame{
		horizontal: s.Config().Direction == split.DirectionHorizontal,
		width:      max(width, 0),
		height:     max(height, 0),
	}
	gutters := s.Gutters()
	gc := gutterCells(s.Config().GutterSize)
	free := f.axisExtent() - gc*len(gutters)
	if free < 0 {
		free = 0
	}
	// Tracks subtracts the split's own gutter extent, so hand it back.
	tracks := s.Tracks(float64(free) + s.GutterExtent())
	f.cells = distributeCells(tracks, free)

	f.panes = make([]span, len(f.cells))
	afterPane := make(map[int]int, len(gutters))
	for _, g := range gutters {
		afterPane[g.Before] = g.Index
	}
	pos := 0
	for i, c := range f.cells {
		f.panes[i] = span{start: pos, size: c}
		pos += c
		if gi, ok := afterPane[i]; ok {
			size := min(gc, max(f.axisExtent()-pos, 0))
			f.gutters = append(f.gutters, span{start: pos, size: size})
			f.gutterIndex = append(f.gutterIndex, gi)
			pos += size
		}
	}
	return f
}

// distributeCells rounds extents to whole cells with the largest remainder
// method. The result never exceeds total.
func distributeCells(extents []float64, total int) []int {
	out := make([]int, len(extents))
	sum := 0.0
	for _, e := range extents {
		if e > 0 {
			sum += e
		}
	}
	target := int(math.Round(sum))
	if target > total {
		target = total
	}
	if target <= 0 {
		return out
	}
	scale := 1.0
	if sum > float64(target) {
		scale = float64(target) / sum
	}
	type rest struct {
		index int
		frac  float64
	}
	rests := make([]rest, 0, len(extents))
	used := 0
	for i, e := range extents {
		if e <= 0 {
			continue
		}
		scaled := e * scale
		whole := math.Floor(scaled)
		out[i] = int(whole)
		used += out[i]
		rests = append(rests, rest{index: i, frac: scaled - whole})
	}
	sort.SliceStable(rests, func(a, b int) bool {
		return rests[a].frac > rests[b].frac
	})
	for i := 0; used < target && len(rests) > 0; i = (i + 1) % len(rests) {
		out[rests[i].index]++
		used++
	}
	return out
}
