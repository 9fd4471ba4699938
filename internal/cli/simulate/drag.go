package simulate

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/regenrek/splitpanes/internal/cli/output"
	"github.com/regenrek/splitpanes/internal/cli/root"
	"github.com/regenrek/splitpanes/internal/split"
)

func runDrag(ctx root.CommandContext) error {
	start := time.Now()
	l, err := loadLayout(ctx)
	if err != nil {
		return err
	}
	gutter := int(ctx.Cmd.Int("gutter"))
	extent := ctx.Cmd.Float("extent")
	result := output.DragResult{Layout: l.info.Name}
	for _, offset := range ctx.Cmd.FloatSlice("offset") {
		if err := dragOnce(ctx.Context, l.split, gutter, offset, extent); err != nil {
			return err
		}
		result.Steps = append(result.Steps, output.DragStep{
			Gutter: gutter,
			Offset: offset,
			Moved:  true,
			Sizes:  sizeStrings(l.split),
		})
	}
	result.Final = layoutState(l.info.Name, l.split, extent)
	if ctx.JSON {
		meta := output.WithDuration(output.NewMeta("drag", ctx.Deps.Version), start)
		return output.WriteSuccess(ctx.Out, meta, result)
	}
	return writeSteps(ctx, result.Steps, result.Final)
}

// dragOnce runs a full drag session that moves the pointer by offset along
// the split axis.
func dragOnce(ctx context.Context, s *split.Split, gutter int, offset, extent float64) error {
	sess, err := s.BeginDrag(gutter, split.Point{}, s.ExtentMeasurer(extent))
	if err != nil {
		return err
	}
	if err := s.UpdateDrag(sess, axisPoint(s, offset)); err != nil {
		s.CancelDrag()
		return err
	}
	if err := s.EndDrag(sess); err != nil {
		return err
	}
	slog.DebugContext(ctx, "drag applied",
		slog.Int("gutter", gutter),
		slog.Float64("offset", offset),
		slog.Any("sizes", sizeStrings(s)),
	)
	return nil
}

func writeSteps(ctx root.CommandContext, steps []output.DragStep, final output.LayoutState) error {
	for i, step := range steps {
		action := fmt.Sprintf("offset %s", formatFloat(step.Offset))
		if step.Key != "" {
			action = "key " + step.Key
		}
		moved := ""
		if !step.Moved {
			moved = " (no move)"
		}
		if _, err := fmt.Fprintf(ctx.Out, "%d. gutter %d %s -> %v%s\n", i+1, step.Gutter, action, step.Sizes, moved); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(ctx.Out); err != nil {
		return err
	}
	return writeState(ctx.Out, final)
}
