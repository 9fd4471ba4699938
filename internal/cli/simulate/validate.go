package simulate

import (
	"fmt"
	"time"

	"github.com/regenrek/splitpanes/internal/cli/output"
	"github.com/regenrek/splitpanes/internal/cli/root"
)

func runValidate(ctx root.CommandContext) error {
	start := time.Now()
	l, err := loadLayout(ctx)
	if err != nil {
		return err
	}
	result := output.ValidateResult{
		Layout: l.info.Name,
		Path:   l.info.Path,
		Valid:  true,
		Panes:  l.split.Len(),
	}
	if ctx.JSON {
		meta := output.WithDuration(output.NewMeta("validate", ctx.Deps.Version), start)
		return output.WriteSuccess(ctx.Out, meta, result)
	}
	_, err = fmt.Fprintf(ctx.Out, "ok: %s (%d panes, %s)\n", result.Layout, result.Panes, l.info.Source)
	return err
}
