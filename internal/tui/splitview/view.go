package splitview

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/regenrek/splitpanes/internal/gesture"
	"github.com/regenrek/splitpanes/internal/split"
)

const ellipsis = "…"

func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	footer := m.footerView()
	f := computeFrame(m.split, m.width, m.height-lipgloss.Height(footer))
	if f.height <= 0 {
		return footer
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.bodyView(f), footer)
}

// frame lays out the current split in the body area.
func (m *Model) frame() frame {
	return computeFrame(m.split, m.width, m.height-lipgloss.Height(m.footerView()))
}

func (m *Model) bodyView(f frame) string {
	var parts []string
	for i, c := range f.cells {
		if c <= 0 {
			continue
		}
		if f.horizontal {
			parts = append(parts, m.paneView(i, c, f.height))
		} else {
			parts = append(parts, m.paneView(i, f.width, c))
		}
		end := f.panes[i].end()
		for slot, g := range f.gutters {
			if g.start == end && g.size > 0 {
				parts = append(parts, m.gutterView(f, f.gutterIndex[slot], g.size))
			}
		}
	}
	if len(parts) == 0 {
		return blankBlock(f.width, f.height)
	}
	if f.horizontal {
		return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Model) paneView(i, w, h int) string {
	style := m.styles.Pane
	fw, fh := style.GetHorizontalFrameSize(), style.GetVerticalFrameSize()
	if w <= fw || h <= fh {
		return blankBlock(w, h)
	}
	innerW, innerH := w-fw, h-fh
	pane := m.split.Panes()[i]
	title := pane.Title
	if title == "" {
		title = pane.ID
	}
	lines := []string{m.styles.PaneTitle.Render(ansi.Truncate(fmt.Sprintf("%d %s", i+1, title), innerW, ellipsis))}
	if innerH > 1 {
		size, _ := m.split.EffectiveSize(i)
		meta := formatSize(size, m.split.Config().Unit)
		if pane.LockSize {
			meta += " locked"
		}
		lines = append(lines, m.styles.PaneMeta.Render(ansi.Truncate(meta, innerW, ellipsis)))
	}
	return style.Width(innerW).Height(innerH).MaxHeight(h).Render(strings.Join(lines, "\n"))
}

func (m *Model) gutterView(f frame, gutter, size int) string {
	style := m.styles.Gutter
	switch {
	case m.tracker.State() == gesture.StateDragging && m.tracker.Gutter() == gutter:
		style = m.styles.GutterActive
	case m.focus == gutter:
		style = m.styles.GutterFocused
	}
	glyph := m.gutterGlyph(f.horizontal)
	if f.horizontal {
		row := strings.Repeat(glyph, size)
		rows := make([]string, f.height)
		for i := range rows {
			rows[i] = row
		}
		return style.Render(strings.Join(rows, "\n"))
	}
	row := strings.Repeat(glyph, f.width)
	rows := make([]string, size)
	for i := range rows {
		rows[i] = row
	}
	return style.Render(strings.Join(rows, "\n"))
}

func (m *Model) gutterGlyph(horizontal bool) string {
	if glyph := m.opts.View.GutterGlyph; glyph != "" && ansi.StringWidth(glyph) == 1 {
		return glyph
	}
	if horizontal {
		return "│"
	}
	return "─"
}

func (m *Model) footerView() string {
	return lipgloss.JoinVertical(lipgloss.Left, m.statusView(), m.help.View(m.keys))
}

func (m *Model) statusView() string {
	left := fmt.Sprintf("%s [%s]", m.info.Name, m.info.Source)
	if m.focus >= 0 {
		left += fmt.Sprintf(" gutter %d/%d", m.focus+1, len(m.split.Gutters()))
	}
	if m.split.Config().Disabled {
		left += " disabled"
	}
	line := left
	if m.status != "" {
		line += "  " + m.renderStatus()
	}
	return m.styles.StatusBar.Width(m.width).MaxWidth(m.width).Render(ansi.Truncate(line, m.width, ellipsis))
}

func (m *Model) renderStatus() string {
	switch m.statusKind {
	case statusSuccess:
		return m.styles.FormatSuccess(m.status)
	case statusWarning:
		return m.styles.FormatWarning(m.status)
	case statusError:
		return m.styles.FormatError(m.status)
	default:
		return m.status
	}
}

func blankBlock(w, h int) string {
	if w <= 0 || h <= 0 {
		return ""
	}
	row := strings.Repeat(" ", w)
	rows := make([]string, h)
	for i := range rows {
		rows[i] = row
	}
	return strings.Join(rows, "\n")
}

func formatSize(size split.Size, unit split.Unit) string {
	switch {
	case size.IsWildcard():
		return "*"
	case size.IsAuto():
		return "auto"
	case unit == split.UnitPixel:
		return strconv.FormatFloat(size.Value(), 'f', -1, 64) + "px"
	default:
		return strconv.FormatFloat(size.Value(), 'f', 1, 64) + "%"
	}
}

func sizesString(sizes []split.Size) string {
	parts := make([]string, len(sizes))
	for i, s := range sizes {
		parts[i] = s.String()
	}
	return strings.Join(parts, " ")
}
