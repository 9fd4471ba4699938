package catalog

import (
	"github.com/regenrek/splitpanes/internal/cli/layouts"
	"github.com/regenrek/splitpanes/internal/cli/root"
	"github.com/regenrek/splitpanes/internal/cli/simulate"
	"github.com/regenrek/splitpanes/internal/cli/version"
	"github.com/regenrek/splitpanes/internal/cli/view"
)

// RegisterAll registers all CLI commands.
func RegisterAll(reg *root.Registry) {
	if reg == nil {
		return
	}
	view.Register(reg)
	simulate.Register(reg)
	layouts.Register(reg)
	version.Register(reg)
}
