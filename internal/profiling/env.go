package profiling

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/regenrek/splitpanes/internal/userpath"
)

const (
	CPUProfileEnv     = "SPLITPANES_CPU_PROFILE"
	MemProfileEnv     = "SPLITPANES_MEM_PROFILE"
	FgprofEnv         = "SPLITPANES_FGPROF"
	ProfileSecsEnv    = "SPLITPANES_PROFILE_SECS"
	GopsEnv           = "SPLITPANES_GOPS"
	GopsAddrEnv       = "SPLITPANES_GOPS_ADDR"
	defaultProfileDur = 30 * time.Second
)

// Settings is what the environment asks the profiler to capture.
type Settings struct {
	CPUPath  string
	MemPath  string
	FgPath   string
	Duration time.Duration
	Gops     bool
	GopsAddr string
}

// Enabled reports whether anything was requested.
func (s Settings) Enabled() bool {
	return s.CPUPath != "" || s.MemPath != "" || s.FgPath != "" || s.Gops
}

// SettingsFromEnv reads the profiler environment. Durations accept a Go
// duration or whole seconds; zero means run until stopped.
func SettingsFromEnv() Settings {
	s := Settings{
		CPUPath:  strings.TrimSpace(os.Getenv(CPUProfileEnv)),
		MemPath:  strings.TrimSpace(os.Getenv(MemProfileEnv)),
		FgPath:   strings.TrimSpace(os.Getenv(FgprofEnv)),
		Duration: defaultProfileDur,
		GopsAddr: strings.TrimSpace(os.Getenv(GopsAddrEnv)),
	}
	switch strings.ToLower(strings.TrimSpace(os.Getenv(GopsEnv))) {
	case "1", "true", "yes", "on":
		s.Gops = true
	}
	if raw := strings.TrimSpace(os.Getenv(ProfileSecsEnv)); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d >= 0 {
			s.Duration = d
		} else if secs, err := strconv.Atoi(raw); err == nil && secs >= 0 {
			s.Duration = time.Duration(secs) * time.Second
		}
	}
	return s
}

// profilePath expands and absolutizes raw, creating its directory.
func profilePath(raw string) (string, error) {
	path := strings.TrimSpace(raw)
	if path == "" {
		return "", errors.New("profiling: path is required")
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return "", fmt.Errorf("profiling: path contains control characters: %q", path)
		}
	}
	abs, err := filepath.Abs(userpath.Expand(path))
	if err != nil {
		return "", fmt.Errorf("profiling: resolve %q: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", fmt.Errorf("profiling: create dir: %w", err)
	}
	return abs, nil
}
