package split

// PercentTolerance is the allowed slop when percent sizes are summed.
const PercentTolerance = 0.1

// validatePane checks one visible pane against its own bounds.
func validatePane(index int, p *pane, unit Unit) error {
	size := p.effective
	cfg := p.cfg
	if unit == UnitPixel && size.IsWildcard() {
		if cfg.MaxSize.IsFixed() {
			return configErr(ReasonWildcardBounds, index, "max size not allowed on * pane in pixel mode")
		}
		if cfg.MinSize.IsFixed() {
			return configErr(ReasonWildcardBounds, index, "min size not allowed on * pane in pixel mode")
		}
	}
	if cfg.LockSize && !cfg.Size.IsFixed() {
		return configErr(ReasonLockedWildcard, index, "lock size is not supported on a * or auto pane")
	}
	if !size.IsFixed() {
		return nil
	}
	if cfg.MaxSize.IsFixed() && size.Value() > cfg.MaxSize.Value() {
		return configErr(ReasonAboveMax, index, "size %s is larger than max size %s", size, cfg.MaxSize)
	}
	if cfg.MinSize.IsFixed() && size.Value() < cfg.MinSize.Value() {
		return configErr(ReasonBelowMin, index, "size %s is smaller than min size %s", size, cfg.MinSize)
	}
	return nil
}

// validateAreas enforces the split-wide invariants over the visible panes.
func validateAreas(visible []*pane, unit Unit) error {
	if len(visible) == 0 {
		return nil
	}
	wildcards := 0
	for _, p := range visible {
		if p.effective.IsWildcard() {
			wildcards++
		}
	}
	if wildcards > 1 {
		return configErr(ReasonMultipleWildcards, -1, "at most one * pane is allowed, got %d", wildcards)
	}
	if wildcards == 1 {
		return nil
	}
	if unit != UnitPercent {
		return configErr(ReasonPixelNoWildcard, -1, "pixel mode requires exactly one * pane")
	}
	total := 0.0
	for _, p := range visible {
		total += p.effective.Value()
	}
	if total < 100-PercentTolerance || total > 100+PercentTolerance {
		return configErr(ReasonPercentTotal, -1, "percent sizes must total 100, got %g", roundWithPrecision(total, 3))
	}
	return nil
}

// ValidatePanes runs reconciliation and validation on a pane list without
// building a Split. It reports the same errors New would.
func ValidatePanes(unit Unit, panes []PaneConfig) error {
	state := make([]*pane, len(panes))
	for i := range panes {
		state[i] = &pane{cfg: panes[i]}
	}
	return reconcile(state, unit)
}

// reconcile resets effective sizes from declarations, distributes auto sizes,
// and validates the result.
func reconcile(panes []*pane, unit Unit) error {
	visible := make([]*pane, 0, len(panes))
	index := make([]int, 0, len(panes))
	for i, p := range panes {
		p.reset()
		if p.cfg.Visible {
			visible = append(visible, p)
			index = append(index, i)
		}
	}
	if len(visible) > 0 && allAuto(visible) {
		if unit == UnitPixel {
			return configErr(ReasonAutoPixel, -1, "panes without size are only supported in percent mode")
		}
		share := 100 / float64(len(visible))
		for _, p := range visible {
			p.effective = Fixed(share)
		}
	}
	for i, p := range visible {
		if err := validatePane(index[i], p, unit); err != nil {
			return err
		}
	}
	return validateAreas(visible, unit)
}

func allAuto(panes []*pane) bool {
	for _, p := range panes {
		if !p.cfg.Size.IsAuto() {
			return false
		}
	}
	return true
}
