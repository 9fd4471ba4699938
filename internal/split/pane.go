package split

import "math"

// PaneConfig is the caller-owned declaration of a pane.
type PaneConfig struct {
	ID       string
	Title    string
	Size     Size
	MinSize  Size
	MaxSize  Size
	LockSize bool
	Visible  bool
}

// NewPaneConfig returns a visible auto-sized pane with unbounded min/max.
func NewPaneConfig(id string) PaneConfig {
	return PaneConfig{
		ID:      id,
		Size:    Auto(),
		MinSize: Wildcard(),
		MaxSize: Wildcard(),
		Visible: true,
	}
}

// pane pairs the declaration with the engine-owned effective size.
type pane struct {
	cfg       PaneConfig
	effective Size
}

// resolvedDeclared maps the declaration to the size used before any drag.
// Hidden panes collapse to 0 and auto panes become wildcards until distributed.
func (p *pane) resolvedDeclared() Size {
	if !p.cfg.Visible {
		return Fixed(0)
	}
	if p.cfg.Size.IsAuto() {
		return Wildcard()
	}
	return p.cfg.Size
}

func (p *pane) reset() {
	p.effective = p.resolvedDeclared()
}

// NormalizedMin returns the numeric lower bound of a pane.
func (c PaneConfig) NormalizedMin() float64 {
	return c.normalizeBound(c.MinSize, 0)
}

// NormalizedMax returns the numeric upper bound of a pane; unbounded is +Inf.
func (c PaneConfig) NormalizedMax() float64 {
	return c.normalizeBound(c.MaxSize, math.Inf(1))
}

func (c PaneConfig) normalizeBound(bound Size, fallback float64) float64 {
	if c.LockSize {
		// Locked panes without a fixed size fail validation; bounds stay numeric anyway.
		if !c.Size.IsFixed() {
			return fallback
		}
		return c.Size.Value()
	}
	if !bound.IsFixed() {
		return fallback
	}
	return bound.Value()
}
