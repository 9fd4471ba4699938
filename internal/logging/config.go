package logging

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

type Sink string

const (
	SinkStderr Sink = "stderr"
	SinkFile   Sink = "file"
	SinkNone   Sink = "none"
)

const (
	EnvLogLevel      = "SPLITPANES_LOG_LEVEL"
	EnvLogFormat     = "SPLITPANES_LOG_FORMAT"
	EnvLogSink       = "SPLITPANES_LOG_SINK"
	EnvLogFile       = "SPLITPANES_LOG_FILE"
	EnvLogAddSource  = "SPLITPANES_LOG_ADD_SOURCE"
	EnvLogMaxSizeMB  = "SPLITPANES_LOG_MAX_SIZE_MB"
	EnvLogMaxBackups = "SPLITPANES_LOG_MAX_BACKUPS"
	EnvLogMaxAgeDays = "SPLITPANES_LOG_MAX_AGE_DAYS"
	EnvLogCompress   = "SPLITPANES_LOG_COMPRESS"
)

// Config is the [logging] section of config.toml. Nil fields fall back to the
// mode defaults.
type Config struct {
	Level     *string `toml:"level,omitempty" yaml:"level,omitempty"`
	Format    *string `toml:"format,omitempty" yaml:"format,omitempty"`
	Sink      *string `toml:"sink,omitempty" yaml:"sink,omitempty"`
	File      *string `toml:"file,omitempty" yaml:"file,omitempty"`
	AddSource *bool   `toml:"add_source,omitempty" yaml:"add_source,omitempty"`

	// Rotation, passed to lumberjack for the file sink.
	MaxSizeMB  *int  `toml:"max_size_mb,omitempty" yaml:"max_size_mb,omitempty"`
	MaxBackups *int  `toml:"max_backups,omitempty" yaml:"max_backups,omitempty"`
	MaxAgeDays *int  `toml:"max_age_days,omitempty" yaml:"max_age_days,omitempty"`
	Compress   *bool `toml:"compress,omitempty" yaml:"compress,omitempty"`
}

var (
	validLevels  = []string{"debug", "info", "warn", "warning", "error"}
	validFormats = []string{string(FormatText), string(FormatJSON)}
	validSinks   = []string{string(SinkStderr), string(SinkFile), string(SinkNone)}
)

func ptr[T any](v T) *T { return &v }

// DefaultConfig returns the settings for mode. The CLI stays quiet on stderr;
// the view owns the terminal and writes JSON to the log file.
func DefaultConfig(mode Mode) Config {
	cfg := Config{
		Level:      ptr("error"),
		Format:     ptr(string(FormatText)),
		Sink:       ptr(string(SinkStderr)),
		AddSource:  ptr(false),
		MaxSizeMB:  ptr(10),
		MaxBackups: ptr(3),
		MaxAgeDays: ptr(7),
		Compress:   ptr(true),
	}
	if mode == ModeView {
		cfg.Level = ptr("info")
		cfg.Format = ptr(string(FormatJSON))
		cfg.Sink = ptr(string(SinkFile))
	}
	return cfg
}

// WithEnv overlays the SPLITPANES_LOG_* variables. Unparseable numbers are
// ignored.
func (c Config) WithEnv() Config {
	for env, dst := range map[string]**string{
		EnvLogLevel:  &c.Level,
		EnvLogFormat: &c.Format,
		EnvLogSink:   &c.Sink,
		EnvLogFile:   &c.File,
	} {
		if v, ok := lookupEnv(env); ok {
			*dst = ptr(v)
		}
	}
	for env, dst := range map[string]**bool{
		EnvLogAddSource: &c.AddSource,
		EnvLogCompress:  &c.Compress,
	} {
		if v, ok := lookupEnv(env); ok {
			*dst = ptr(truthy(v))
		}
	}
	for env, dst := range map[string]**int{
		EnvLogMaxSizeMB:  &c.MaxSizeMB,
		EnvLogMaxBackups: &c.MaxBackups,
		EnvLogMaxAgeDays: &c.MaxAgeDays,
	} {
		v, ok := lookupEnv(env)
		if !ok {
			continue
		}
		if n, err := strconv.Atoi(v); err == nil {
			*dst = ptr(n)
		}
	}
	return c
}

// Normalize lowercases the enum fields, drops blank strings, clamps negative
// rotation settings to zero, then validates.
func (c Config) Normalize() (Config, error) {
	c.Level = lowerOrNil(c.Level)
	c.Format = lowerOrNil(c.Format)
	c.Sink = lowerOrNil(c.Sink)
	if c.File != nil {
		if v := strings.TrimSpace(*c.File); v != "" {
			c.File = ptr(v)
		} else {
			c.File = nil
		}
	}
	for _, n := range []**int{&c.MaxSizeMB, &c.MaxBackups, &c.MaxAgeDays} {
		if *n != nil && **n < 0 {
			*n = ptr(0)
		}
	}
	return c, c.Validate()
}

func (c Config) Validate() error {
	checks := []struct {
		field string
		value *string
		valid []string
	}{
		{"level", c.Level, validLevels},
		{"format", c.Format, validFormats},
		{"sink", c.Sink, validSinks},
	}
	for _, check := range checks {
		if check.value == nil || slices.Contains(check.valid, *check.value) {
			continue
		}
		return fmt.Errorf("logging.%s: invalid %q (want %s)", check.field, *check.value, strings.Join(check.valid, ", "))
	}
	return nil
}

func lookupEnv(name string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(name))
	return v, v != ""
}

func lowerOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.ToLower(strings.TrimSpace(*s))
	if v == "" {
		return nil
	}
	return &v
}

func truthy(value string) bool {
	switch strings.ToLower(value) {
	case "0", "false", "no", "off":
		return false
	}
	return true
}
