package app

import (
	"github.com/regenrek/splitpanes/internal/cli/catalog"
	"github.com/regenrek/splitpanes/internal/cli/root"
	"github.com/regenrek/splitpanes/internal/cli/spec"
)

// NewRunner builds the CLI runner from the embedded spec.
func NewRunner(deps root.Dependencies) (*root.Runner, error) {
	specDoc, err := spec.LoadDefault()
	if err != nil {
		return nil, err
	}
	reg := root.NewRegistry()
	catalog.RegisterAll(reg)
	return root.NewRunner(specDoc, deps, reg)
}
