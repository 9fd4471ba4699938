package simulate

import (
	"time"

	"github.com/regenrek/splitpanes/internal/cli/output"
	"github.com/regenrek/splitpanes/internal/cli/root"
)

func runTemplate(ctx root.CommandContext) error {
	start := time.Now()
	l, err := loadLayout(ctx)
	if err != nil {
		return err
	}
	state := layoutState(l.info.Name, l.split, ctx.Cmd.Float("extent"))
	if ctx.JSON {
		meta := output.WithDuration(output.NewMeta("template", ctx.Deps.Version), start)
		return output.WriteSuccess(ctx.Out, meta, state)
	}
	return writeState(ctx.Out, state)
}
