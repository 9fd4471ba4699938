package layouts

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/regenrek/splitpanes/internal/atomicfile"
	"github.com/regenrek/splitpanes/internal/cli/output"
	"github.com/regenrek/splitpanes/internal/cli/root"
	"github.com/regenrek/splitpanes/internal/identity"
	"github.com/regenrek/splitpanes/internal/layoutfile"
	"github.com/regenrek/splitpanes/internal/userpath"
)

// Register registers layout handlers.
func Register(reg *root.Registry) {
	reg.Register("layouts", runList)
	reg.Register("layouts.list", runList)
	reg.Register("layouts.export", runExport)
}

func newLoader(ctx root.CommandContext) (*layoutfile.Loader, error) {
	dirs, err := root.ResolveLayoutDirs(ctx)
	if err != nil {
		return nil, err
	}
	return dirs.NewLoader()
}

func runList(ctx root.CommandContext) error {
	start := time.Now()
	loader, err := newLoader(ctx)
	if err != nil {
		return err
	}
	layouts := loader.List()
	if ctx.JSON {
		items := make([]output.LayoutSummary, 0, len(layouts))
		for _, l := range layouts {
			items = append(items, output.LayoutSummary{
				Name:        l.Name,
				Description: l.Description,
				Source:      string(l.Source),
				Path:        l.Path,
			})
		}
		meta := output.WithDuration(output.NewMeta("layouts.list", ctx.Deps.Version), start)
		return output.WriteSuccess(ctx.Out, meta, output.LayoutList{Layouts: items, Total: len(items)})
	}
	return writeLayoutsText(ctx, layouts)
}

func writeLayoutsText(ctx root.CommandContext, layouts []layoutfile.Info) error {
	if len(layouts) == 0 {
		_, err := fmt.Fprintln(ctx.Out, "No layouts found.")
		return err
	}
	w := tabwriter.NewWriter(ctx.Out, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "NAME\tSOURCE\tDESCRIPTION\tPATH"); err != nil {
		return err
	}
	for _, l := range layouts {
		desc := ansi.Truncate(l.Description, 50, "...")
		path := "-"
		if l.Path != "" {
			path = userpath.Shorten(l.Path)
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", l.Name, l.Source, desc, path); err != nil {
			return err
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(ctx.Out, "\nUse '%s layouts export <name>' to print a layout\n", identity.CLIName)
	return err
}

func runExport(ctx root.CommandContext) error {
	start := time.Now()
	name := strings.TrimSpace(ctx.Cmd.StringArg("name"))
	if name == "" {
		return fmt.Errorf("layout name is required")
	}
	format := strings.ToLower(strings.TrimSpace(ctx.Cmd.String("format")))
	if format == "" {
		format = "yaml"
	}
	loader, err := newLoader(ctx)
	if err != nil {
		return err
	}
	def, info, err := loader.Resolve(name)
	if err != nil {
		return err
	}
	var content string
	switch format {
	case "yaml":
		content, err = layoutfile.ExportYAML(def)
	case "kdl":
		content, err = layoutfile.ExportKDL(def)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	if err != nil {
		return err
	}
	if target := strings.TrimSpace(ctx.Cmd.String("output")); target != "" {
		return writeExportFile(ctx, start, info, format, content, target)
	}
	if ctx.JSON {
		meta := output.WithDuration(output.NewMeta("layouts.export", ctx.Deps.Version), start)
		return output.WriteSuccess(ctx.Out, meta, output.LayoutExport{Name: info.Name, Format: format, Content: content})
	}
	if format == "yaml" {
		if _, err := fmt.Fprintf(ctx.Out, "# %s layout: %s (%s)\n", identity.BrandName, info.Name, info.Source); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(ctx.Out, "# Save as %s in your project root\n\n", layoutfile.ProjectFileNames()[0]); err != nil {
			return err
		}
	}
	_, err = fmt.Fprint(ctx.Out, content)
	return err
}

func writeExportFile(ctx root.CommandContext, start time.Time, info layoutfile.Info, format, content, target string) error {
	target = userpath.Expand(target)
	if !filepath.IsAbs(target) {
		cwd, err := root.ResolveWorkDir(ctx)
		if err != nil {
			return err
		}
		target = filepath.Join(cwd, target)
	}
	if err := atomicfile.Write(target, []byte(content), atomicfile.Options{Overwrite: ctx.Cmd.Bool("force")}); err != nil {
		if errors.Is(err, atomicfile.ErrExists) {
			return fmt.Errorf("%s already exists (use --force to overwrite)", userpath.Shorten(target))
		}
		return err
	}
	if ctx.JSON {
		meta := output.WithDuration(output.NewMeta("layouts.export", ctx.Deps.Version), start)
		return output.WriteSuccess(ctx.Out, meta, output.LayoutExport{Name: info.Name, Format: format, Path: target})
	}
	_, err := fmt.Fprintf(ctx.Out, "wrote %s layout %s to %s\n", format, info.Name, userpath.Shorten(target))
	return err
}
