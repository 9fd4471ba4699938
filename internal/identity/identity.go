package identity

import (
	"path/filepath"
	"strings"
)

const (
	BrandName = "SplitPanes"
	// AppSlug is the canonical identifier for on-disk state and project files.
	AppSlug = "splitpanes"
	CLIName = "splitpanes"

	GlobalConfigFile = "config.toml"
	GlobalLayoutsDir = "layouts"
	LogFileName      = "splitpanes.log"
)

var (
	InputAliases = []string{"sp"}
)

// ResolveBinaryName returns the name the CLI was invoked as when it is a known
// alias, and CLIName otherwise.
func ResolveBinaryName(args []string) string {
	if len(args) == 0 {
		return CLIName
	}
	base := strings.ToLower(filepath.Base(args[0]))
	if IsCLICommandToken(base) {
		return base
	}
	return CLIName
}

func IsCLICommandToken(token string) bool {
	trimmed := strings.ToLower(strings.TrimSpace(token))
	if trimmed == "" {
		return false
	}
	if trimmed == CLIName {
		return true
	}
	for _, alias := range InputAliases {
		if trimmed == alias {
			return true
		}
	}
	return false
}
