package version

import (
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"

	"github.com/regenrek/splitpanes/internal/cli/output"
	"github.com/regenrek/splitpanes/internal/cli/root"
	"github.com/regenrek/splitpanes/internal/identity"
	"github.com/regenrek/splitpanes/internal/layoutfile"
)

// Register registers version handler.
func Register(reg *root.Registry) {
	reg.Register("version", runVersion)
}

// normalize returns the canonical semver form of a build version, or the raw
// value for dev builds that are not semver.
func normalize(raw string) string {
	raw = strings.TrimSpace(raw)
	v, err := semver.NewVersion(raw)
	if err != nil {
		return raw
	}
	return v.String()
}

func runVersion(ctx root.CommandContext) error {
	start := time.Now()
	info := output.VersionInfo{
		Version:       normalize(ctx.Deps.Version),
		SchemaVersion: output.SchemaVersion,
		LayoutVersion: layoutfile.CurrentVersion,
	}
	if ctx.JSON {
		meta := output.WithDuration(output.NewMeta("version", ctx.Deps.Version), start)
		return output.WriteSuccess(ctx.Out, meta, info)
	}
	_, err := fmt.Fprintf(ctx.Out, "%s %s (layout format %s)\n", identity.CLIName, info.Version, info.LayoutVersion)
	return err
}
