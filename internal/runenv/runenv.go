package runenv

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	StateDirEnv       = "SPLITPANES_STATE_DIR"
	ConfigDirEnv      = "SPLITPANES_CONFIG_DIR"
	FreshConfigEnv    = "SPLITPANES_FRESH_CONFIG"
	ReloadDebounceEnv = "SPLITPANES_RELOAD_DEBOUNCE"
	NoColorEnv        = "NO_COLOR"
)

func enabledEnv(name string) bool {
	value := strings.TrimSpace(os.Getenv(name))
	if value == "" {
		return false
	}
	switch strings.ToLower(value) {
	case "0", "false", "no", "off":
		return false
	default:
		return true
	}
}

// FreshConfigEnabled reports whether the user config file should be ignored.
func FreshConfigEnabled() bool {
	return enabledEnv(FreshConfigEnv)
}

func ConfigDir() string {
	return strings.TrimSpace(os.Getenv(ConfigDirEnv))
}

func StateDir() string {
	return strings.TrimSpace(os.Getenv(StateDirEnv))
}

// NoColor follows https://no-color.org: any non-empty value disables colour.
func NoColor() bool {
	return os.Getenv(NoColorEnv) != ""
}

// ReloadDebounce is how long the view waits after a layout file change before
// reloading. Accepts a Go duration or a whole number of milliseconds.
func ReloadDebounce() time.Duration {
	const fallback = 150 * time.Millisecond
	raw := strings.TrimSpace(os.Getenv(ReloadDebounceEnv))
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		if d <= 0 {
			return fallback
		}
		return d
	}
	ms, err := strconv.Atoi(raw)
	if err != nil || ms <= 0 {
		return fallback
	}
	return time.Duration(ms) * time.Millisecond
}
