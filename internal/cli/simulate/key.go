package simulate

import (
	"fmt"
	"time"

	"github.com/regenrek/splitpanes/internal/cli/output"
	"github.com/regenrek/splitpanes/internal/cli/root"
	"github.com/regenrek/splitpanes/internal/split"
)

func runKey(ctx root.CommandContext) error {
	start := time.Now()
	l, err := loadLayout(ctx)
	if err != nil {
		return err
	}
	gutter := int(ctx.Cmd.Int("gutter"))
	extent := ctx.Cmd.Float("extent")
	key := split.Key(ctx.Cmd.String("key"))
	repeat := int(ctx.Cmd.Int("repeat"))
	if repeat < 1 {
		return fmt.Errorf("repeat must be at least 1")
	}
	result := output.DragResult{Layout: l.info.Name}
	for range repeat {
		moved, err := l.split.KeyboardMove(gutter, key, l.split.ExtentMeasurer(extent))
		if err != nil {
			return err
		}
		result.Steps = append(result.Steps, output.DragStep{
			Gutter: gutter,
			Key:    string(key),
			Moved:  moved,
			Sizes:  sizeStrings(l.split),
		})
	}
	result.Final = layoutState(l.info.Name, l.split, extent)
	if ctx.JSON {
		meta := output.WithDuration(output.NewMeta("key", ctx.Deps.Version), start)
		return output.WriteSuccess(ctx.Out, meta, result)
	}
	return writeSteps(ctx, result.Steps, result.Final)
}
