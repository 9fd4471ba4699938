package simulate

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/regenrek/splitpanes/internal/cli/output"
)

const (
	barWidth   = 40
	titleWidth = 16
)

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// writeState prints a layout as one proportional bar per pane.
func writeState(w io.Writer, state output.LayoutState) error {
	if _, err := fmt.Fprintf(w, "%s  %s %s  extent %s\n", state.Layout, state.Direction, state.Unit, formatFloat(state.Extent)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "template: %s\n", state.Template); err != nil {
		return err
	}
	for _, pane := range state.Panes {
		if _, err := fmt.Fprintln(w, paneLine(pane, state.Extent)); err != nil {
			return err
		}
	}
	return nil
}

func paneLine(pane output.PaneSize, extent float64) string {
	title := pane.Title
	if title == "" {
		title = pane.ID
	}
	title = runewidth.Truncate(title, titleWidth, "…")
	title = runewidth.FillRight(title, titleWidth)
	if !pane.Visible {
		return fmt.Sprintf("%s %s hidden", title, strings.Repeat(" ", barWidth))
	}
	filled := 0
	if extent > 0 {
		filled = int(math.Round(pane.Extent / extent * barWidth))
	}
	filled = max(0, min(barWidth, filled))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
	lock := ""
	if pane.Locked {
		lock = " locked"
	}
	return fmt.Sprintf("%s %s %8s  (%s)%s", title, bar, pane.Size, formatFloat(pane.Extent), lock)
}

func formatFloat(v float64) string {
	return fmt.Sprintf("%g", v)
}
