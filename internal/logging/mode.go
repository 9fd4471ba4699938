package logging

import "strings"

type Mode uint8

const (
	ModeCLI Mode = iota + 1
	ModeView
)

// ModeFromArgs picks the view mode when the first non-flag argument is the
// view command.
func ModeFromArgs(args []string) Mode {
	for _, arg := range args[min(1, len(args)):] {
		arg = strings.ToLower(strings.TrimSpace(arg))
		if arg == "" || strings.HasPrefix(arg, "-") {
			continue
		}
		if arg == "view" {
			return ModeView
		}
		return ModeCLI
	}
	return ModeCLI
}

func (m Mode) String() string {
	switch m {
	case ModeView:
		return "view"
	default:
		return "cli"
	}
}
