package appconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/regenrek/splitpanes/internal/appdirs"
	"github.com/regenrek/splitpanes/internal/identity"
	"github.com/regenrek/splitpanes/internal/logging"
	"github.com/regenrek/splitpanes/internal/runenv"
)

const (
	defaultKeyStep        = 2
	defaultPageMultiplier = 10
	defaultTheme          = "default"
)

// Config represents <config dir>/config.toml.
type Config struct {
	View    ViewConfig     `toml:"view"`
	Logging logging.Config `toml:"logging"`
}

// ViewConfig configures the interactive terminal view. Pointer fields override
// the layout file only when set.
type ViewConfig struct {
	// KeyStep is how many cells an arrow key moves a gutter.
	KeyStep        float64  `toml:"key_step"`
	PageMultiplier float64  `toml:"page_multiplier"`
	DoubleClickMS  *int     `toml:"double_click_ms"`
	ClickDelta     *float64 `toml:"click_delta"`
	Mouse          *bool    `toml:"mouse"`
	// GutterGlyph replaces the default line drawing gutter character.
	GutterGlyph string           `toml:"gutter_glyph"`
	Theme       string           `toml:"theme"`
	Keys        ViewKeymapConfig `toml:"keys"`
}

// ViewKeymapConfig overrides view key bindings. Each entry lists the keys
// bound to the action, e.g. ["ctrl+q", "q"]. Empty lists keep the defaults.
type ViewKeymapConfig struct {
	Quit      []string `toml:"quit"`
	FocusNext []string `toml:"focus_next"`
	FocusPrev []string `toml:"focus_prev"`
	Left      []string `toml:"left"`
	Right     []string `toml:"right"`
	Up        []string `toml:"up"`
	Down      []string `toml:"down"`
	PageUp    []string `toml:"page_up"`
	PageDown  []string `toml:"page_down"`
	Reset     []string `toml:"reset"`
	Copy      []string `toml:"copy"`
	Reload    []string `toml:"reload"`
	Cancel    []string `toml:"cancel"`
	Help      []string `toml:"help"`
}

// MouseEnabled reports whether mouse tracking is on (default true).
func (v ViewConfig) MouseEnabled() bool {
	return v.Mouse == nil || *v.Mouse
}

// DoubleClickThreshold returns the configured threshold, if any.
func (v ViewConfig) DoubleClickThreshold() (time.Duration, bool) {
	if v.DoubleClickMS == nil {
		return 0, false
	}
	return time.Duration(*v.DoubleClickMS) * time.Millisecond, true
}

// Defaults returns the default configuration.
func Defaults() Config {
	return Config{
		View: ViewConfig{
			KeyStep:        defaultKeyStep,
			PageMultiplier: defaultPageMultiplier,
			Theme:          defaultTheme,
		},
	}
}

// DefaultPath returns the default config path.
func DefaultPath() (string, error) {
	dir, err := appdirs.ConfigDirPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, identity.GlobalConfigFile), nil
}

// Loader caches config values and reloads when the file changes.
type Loader struct {
	path     string
	lastRead fileState
	cached   Config
}

type fileState struct {
	modTime time.Time
	size    int64
}

// NewLoader creates a config loader for the provided path.
func NewLoader(path string) *Loader {
	return &Loader{
		path:   strings.TrimSpace(path),
		cached: Defaults(),
	}
}

// Path returns the file the loader reads.
func (l *Loader) Path() string { return l.path }

// Load returns the cached config, reloading if the file changed. A missing
// file yields defaults.
func (l *Loader) Load() (Config, error) {
	if l == nil {
		return Defaults(), errors.New("appconfig: nil loader")
	}
	if runenv.FreshConfigEnabled() {
		return Defaults(), nil
	}
	path := strings.TrimSpace(l.path)
	if path == "" {
		return Defaults(), errors.New("appconfig: empty config path")
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			l.cached = Defaults()
			l.lastRead = fileState{}
			return l.cached, nil
		}
		return Defaults(), fmt.Errorf("appconfig: %w", err)
	}
	state := fileState{modTime: info.ModTime(), size: info.Size()}
	if state == l.lastRead {
		return l.cached, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Defaults(), fmt.Errorf("appconfig: %w", err)
	}
	cfg := Defaults()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Defaults(), fmt.Errorf("appconfig: parse %q: %w", path, err)
	}
	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return Defaults(), fmt.Errorf("appconfig: %q: %w", path, err)
	}
	l.cached = cfg
	l.lastRead = state
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.View.DoubleClickMS != nil && *c.View.DoubleClickMS < 0 {
		return fmt.Errorf("view.double_click_ms: must not be negative")
	}
	if c.View.ClickDelta != nil && *c.View.ClickDelta < 0 {
		return fmt.Errorf("view.click_delta: must not be negative")
	}
	switch c.View.Theme {
	case "default", "mono":
	default:
		return fmt.Errorf("view.theme: invalid %q", c.View.Theme)
	}
	if _, err := c.Logging.Normalize(); err != nil {
		return err
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}
	if cfg.View.KeyStep <= 0 {
		cfg.View.KeyStep = defaultKeyStep
	}
	if cfg.View.PageMultiplier <= 0 {
		cfg.View.PageMultiplier = defaultPageMultiplier
	}
	cfg.View.Theme = strings.ToLower(strings.TrimSpace(cfg.View.Theme))
	if cfg.View.Theme == "" {
		cfg.View.Theme = defaultTheme
	}
}
