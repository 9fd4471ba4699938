package split

import "math"

// Offset projects the pointer displacement from the session start onto the
// split axis. Horizontal offsets are mirrored for right-to-left hosts.
func (d *DragSession) Offset(end Point) float64 {
	if d.direction == DirectionVertical {
		return end.Y - d.start.Y
	}
	offset := end.X - d.start.X
	if d.dir == TextDirRTL {
		return -offset
	}
	return offset
}

// candidates returns the panes that may give or take size on each side of the
// dragged gutter, nearest first.
func (d *DragSession) candidates() (before, after []int) {
	if d.restrictMove {
		if d.movable[d.gutter.Before] {
			before = []int{d.gutter.Before}
		}
		if d.movable[d.gutter.After] {
			after = []int{d.gutter.After}
		}
		return before, after
	}
	for i := d.gutter.Before; i >= 0; i-- {
		if d.movable[i] {
			before = append(before, i)
		}
	}
	for i := d.gutter.After; i < len(d.movable); i++ {
		if d.movable[i] {
			after = append(after, i)
		}
	}
	return before, after
}

// Redistribute computes the pixel size of every pane after moving the dragged
// gutter to end. The result conserves the session total exactly and keeps
// every movable pane inside its bounds. It does not modify the session.
func (d *DragSession) Redistribute(end Point) []float64 {
	sizes := append([]float64(nil), d.pixelSizes...)
	offset := d.Offset(end)
	step := d.step
	if step <= 0 {
		step = 1
	}
	remaining := math.Abs(math.Round(offset/step) * step)
	if remaining == 0 {
		return sizes
	}
	before, after := d.candidates()
	shrink, expand := before, after
	if offset > 0 {
		shrink, expand = after, before
	}

	si, ei := 0, 0
	for remaining > 0 && si < len(shrink) && ei < len(expand) {
		sIdx, eIdx := shrink[si], expand[ei]
		shrinkCap := math.Max(0, sizes[sIdx]-d.bounds[sIdx].Min)
		expandCap := math.Max(0, d.bounds[eIdx].Max-sizes[eIdx])
		transfer := math.Min(math.Min(shrinkCap, expandCap), remaining)

		sizes[sIdx] -= transfer
		sizes[eIdx] += transfer
		remaining -= transfer

		// A pane that used up its capacity takes no further part in this move.
		if transfer == shrinkCap {
			si++
		}
		if transfer == expandCap {
			ei++
		}
	}
	return sizes
}
