// Package simulate implements the commands that load a layout and drive its
// split without a terminal: validate, template, drag, key and replay.
package simulate

import (
	"fmt"
	"strings"

	"github.com/regenrek/splitpanes/internal/cli/output"
	"github.com/regenrek/splitpanes/internal/cli/root"
	"github.com/regenrek/splitpanes/internal/layoutfile"
	"github.com/regenrek/splitpanes/internal/split"
)

// Register registers the simulation handlers.
func Register(reg *root.Registry) {
	reg.Register("validate", runValidate)
	reg.Register("template", runTemplate)
	reg.Register("drag", runDrag)
	reg.Register("key", runKey)
	reg.Register("replay", runReplay)
}

type loadedLayout struct {
	def   *layoutfile.Definition
	info  layoutfile.Info
	split *split.Split
}

func loadLayout(ctx root.CommandContext) (loadedLayout, error) {
	ref := strings.TrimSpace(ctx.Cmd.StringArg("layout"))
	dirs, err := root.ResolveLayoutDirs(ctx)
	if err != nil {
		return loadedLayout{}, err
	}
	loader, err := dirs.NewLoader()
	if err != nil {
		return loadedLayout{}, err
	}
	def, info, err := loader.Resolve(ref)
	if err != nil {
		return loadedLayout{}, err
	}
	s, err := def.NewSplit()
	if err != nil {
		return loadedLayout{}, fmt.Errorf("layout %s: %w", info.Name, err)
	}
	return loadedLayout{def: def, info: info, split: s}, nil
}

// axisPoint places offset on the split's drag axis.
func axisPoint(s *split.Split, offset float64) split.Point {
	if s.Config().Direction == split.DirectionVertical {
		return split.Point{Y: offset}
	}
	return split.Point{X: offset}
}

func sizeStrings(s *split.Split) []string {
	sizes := s.Sizes()
	out := make([]string, len(sizes))
	for i, size := range sizes {
		out[i] = size.String()
	}
	return out
}

func layoutState(name string, s *split.Split, extent float64) output.LayoutState {
	cfg := s.Config()
	tracks := s.Tracks(extent)
	panes := s.Panes()
	state := output.LayoutState{
		Layout:    name,
		Direction: cfg.Direction.String(),
		Unit:      cfg.Unit.String(),
		Extent:    extent,
		Template:  s.Template(),
		Panes:     make([]output.PaneSize, 0, len(panes)),
	}
	for i, pane := range panes {
		size, _ := s.EffectiveSize(i)
		entry := output.PaneSize{
			Index:   i,
			ID:      pane.ID,
			Title:   pane.Title,
			Size:    size.String(),
			Extent:  round1(tracks[i]),
			Visible: pane.Visible,
			Locked:  pane.LockSize,
		}
		if pane.MinSize.IsFixed() {
			v := pane.MinSize.Value()
			entry.Min = &v
		}
		if pane.MaxSize.IsFixed() {
			v := pane.MaxSize.Value()
			entry.Max = &v
		}
		state.Panes = append(state.Panes, entry)
	}
	return state
}
