// Package theme holds the styles of the split view. Styles are built per
// theme so the mono theme can drop every colour.
package theme

import "github.com/charmbracelet/lipgloss"

// Design tokens for the default theme.
var (
	Accent      = lipgloss.Color("#3B82F6")
	AccentSoft  = lipgloss.Color("#60A5FA")
	AccentAlt   = lipgloss.Color("#22C55E")
	AccentFocus = lipgloss.Color("#F9F871")

	Success = lipgloss.AdaptiveColor{Light: "#16A34A", Dark: "#22C55E"}
	Warning = lipgloss.AdaptiveColor{Light: "#F59E0B", Dark: "#FBBF24"}
	Error   = lipgloss.AdaptiveColor{Light: "#EF4444", Dark: "#F87171"}

	TextPrimary = lipgloss.Color("#F8FAFC")
	TextMuted   = lipgloss.Color("#94A3B8")
	TextDim     = lipgloss.Color("#64748B")

	Surface    = lipgloss.Color("#1A1A1A")
	SurfaceAlt = lipgloss.Color("#242424")
	Border     = lipgloss.Color("#3A3A3A")
)

const (
	Default = "default"
	Mono    = "mono"
)

// Styles is the full style set of the split view.
type Styles struct {
	Name string

	Pane      lipgloss.Style
	PaneTitle lipgloss.Style
	PaneMeta  lipgloss.Style
	PaneEmpty lipgloss.Style

	Gutter        lipgloss.Style
	GutterFocused lipgloss.Style
	GutterActive  lipgloss.Style

	StatusBar     lipgloss.Style
	StatusMessage lipgloss.Style
	StatusError   lipgloss.Style
	StatusWarning lipgloss.Style
}

// New returns the styles for a theme name. Unknown names use the default.
func New(name string) Styles {
	if name == Mono {
		return mono()
	}
	return Styles{
		Name: Default,
		Pane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border),
		PaneTitle: lipgloss.NewStyle().Bold(true).Foreground(TextPrimary),
		PaneMeta:  lipgloss.NewStyle().Foreground(TextMuted),
		PaneEmpty: lipgloss.NewStyle().Foreground(TextDim),

		Gutter:        lipgloss.NewStyle().Foreground(Border),
		GutterFocused: lipgloss.NewStyle().Foreground(AccentFocus).Bold(true),
		GutterActive:  lipgloss.NewStyle().Foreground(Accent).Bold(true),

		StatusBar:     lipgloss.NewStyle().Foreground(TextMuted).Background(SurfaceAlt),
		StatusMessage: lipgloss.NewStyle().Foreground(Success),
		StatusError:   lipgloss.NewStyle().Foreground(Error),
		StatusWarning: lipgloss.NewStyle().Foreground(Warning),
	}
}

func mono() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Name:          Mono,
		Pane:          plain.Border(lipgloss.NormalBorder()),
		PaneTitle:     plain.Bold(true),
		PaneMeta:      plain,
		PaneEmpty:     plain.Faint(true),
		Gutter:        plain,
		GutterFocused: plain.Bold(true),
		GutterActive:  plain.Reverse(true),
		StatusBar:     plain.Reverse(true),
		StatusMessage: plain,
		StatusError:   plain.Bold(true),
		StatusWarning: plain,
	}
}

// FormatSuccess renders a status line for a completed action.
func (s Styles) FormatSuccess(msg string) string {
	return s.StatusMessage.Render("✓ " + msg)
}

func (s Styles) FormatError(msg string) string {
	return s.StatusError.Render("✗ " + msg)
}

func (s Styles) FormatWarning(msg string) string {
	return s.StatusWarning.Render("⚠ " + msg)
}
