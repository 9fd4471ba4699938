package layoutfile

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/regenrek/splitpanes/internal/split"
)

// CurrentVersion is written into exported definitions.
const CurrentVersion = "1.0"

// versionConstraint accepts every 1.x definition.
const versionConstraint = "^1.0"

// SizeSpec is a size as written in a layout file: a number (optionally with a
// % or px suffix), "*", or "auto".
type SizeSpec string

// MarshalYAML writes numeric sizes as YAML numbers.
func (s SizeSpec) MarshalYAML() (any, error) {
	if f, err := strconv.ParseFloat(string(s), 64); err == nil {
		return f, nil
	}
	return string(s), nil
}

// PaneDef defines a single pane within a split definition.
type PaneDef struct {
	ID       string   `yaml:"id,omitempty"`
	Title    string   `yaml:"title,omitempty"`
	Size     SizeSpec `yaml:"size,omitempty"`
	MinSize  SizeSpec `yaml:"min_size,omitempty"`
	MaxSize  SizeSpec `yaml:"max_size,omitempty"`
	LockSize bool     `yaml:"lock_size,omitempty"`
	Visible  *bool    `yaml:"visible,omitempty"`
}

// Definition is a split layout file.
type Definition struct {
	Version          string    `yaml:"version,omitempty"`
	Name             string    `yaml:"name,omitempty"`
	Description      string    `yaml:"description,omitempty"`
	Direction        string    `yaml:"direction,omitempty"`
	Unit             string    `yaml:"unit,omitempty"`
	GutterSize       *float64  `yaml:"gutter_size,omitempty"`
	GutterStep       *float64  `yaml:"gutter_step,omitempty"`
	RestrictMove     bool      `yaml:"restrict_move,omitempty"`
	Dir              string    `yaml:"dir,omitempty"`
	Disabled         bool      `yaml:"disabled,omitempty"`
	GutterClickDelta *float64  `yaml:"gutter_click_delta,omitempty"`
	DoubleClickMS    *int      `yaml:"double_click_ms,omitempty"`
	Panes            []PaneDef `yaml:"panes"`
}

// Parse validates data against the layout schema and decodes it.
func Parse(data []byte) (*Definition, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("layoutfile: definition is empty")
	}
	if err := Validate(data); err != nil {
		return nil, err
	}
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("layoutfile: parse yaml: %w", err)
	}
	if err := checkVersion(def.Version); err != nil {
		return nil, err
	}
	return &def, nil
}

// LoadFile reads and parses a definition from disk. A missing name defaults to
// the file name without extension.
func LoadFile(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("layoutfile: read %q: %w", path, err)
	}
	def, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if def.Name == "" {
		def.Name = trimLayoutExt(baseName(path))
	}
	return def, nil
}

func checkVersion(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	version, err := semver.NewVersion(raw)
	if err != nil {
		return fmt.Errorf("layoutfile: invalid version %q: %w", raw, err)
	}
	constraint, err := semver.NewConstraint(versionConstraint)
	if err != nil {
		return fmt.Errorf("layoutfile: version constraint: %w", err)
	}
	if !constraint.Check(version) {
		return fmt.Errorf("layoutfile: version %s is not supported (want %s)", version, versionConstraint)
	}
	return nil
}

// Build converts the definition into split settings and pane declarations.
func (d *Definition) Build() (split.Config, []split.PaneConfig, error) {
	cfg := split.DefaultConfig()
	var err error
	if cfg.Direction, err = split.ParseDirection(d.Direction); err != nil {
		return cfg, nil, fmt.Errorf("layoutfile: %w", err)
	}
	if cfg.Unit, err = split.ParseUnit(d.Unit); err != nil {
		return cfg, nil, fmt.Errorf("layoutfile: %w", err)
	}
	if cfg.Dir, err = split.ParseTextDir(d.Dir); err != nil {
		return cfg, nil, fmt.Errorf("layoutfile: %w", err)
	}
	if d.GutterSize != nil {
		cfg.GutterSize = *d.GutterSize
	}
	if d.GutterStep != nil {
		cfg.GutterStep = *d.GutterStep
	}
	if d.GutterClickDelta != nil {
		cfg.GutterClickDelta = *d.GutterClickDelta
	}
	if d.DoubleClickMS != nil {
		cfg.DoubleClickThreshold = time.Duration(*d.DoubleClickMS) * time.Millisecond
	}
	cfg.RestrictMove = d.RestrictMove
	cfg.Disabled = d.Disabled

	panes := make([]split.PaneConfig, len(d.Panes))
	for i, def := range d.Panes {
		pane, err := def.build(i)
		if err != nil {
			return cfg, nil, err
		}
		panes[i] = pane
	}
	return cfg, panes, nil
}

func (p PaneDef) build(index int) (split.PaneConfig, error) {
	id := strings.TrimSpace(p.ID)
	if id == "" {
		id = "pane-" + strconv.Itoa(index+1)
	}
	cfg := split.NewPaneConfig(id)
	cfg.Title = p.Title
	cfg.LockSize = p.LockSize
	if p.Visible != nil {
		cfg.Visible = *p.Visible
	}
	var err error
	if cfg.Size, err = split.ParseSize(string(p.Size)); err != nil {
		return cfg, fmt.Errorf("layoutfile: pane %q: %w", id, err)
	}
	if cfg.MinSize, err = split.ParseBound(string(p.MinSize)); err != nil {
		return cfg, fmt.Errorf("layoutfile: pane %q min_size: %w", id, err)
	}
	if cfg.MaxSize, err = split.ParseBound(string(p.MaxSize)); err != nil {
		return cfg, fmt.Errorf("layoutfile: pane %q max_size: %w", id, err)
	}
	return cfg, nil
}

// NewSplit builds and validates a split from the definition.
func (d *Definition) NewSplit() (*split.Split, error) {
	cfg, panes, err := d.Build()
	if err != nil {
		return nil, err
	}
	s, err := split.New(cfg, panes)
	if err != nil {
		return nil, fmt.Errorf("layoutfile: %s: %w", d.displayName(), err)
	}
	return s, nil
}

// FromSplit captures the current effective state of s as a definition.
func FromSplit(name, description string, s *split.Split) *Definition {
	cfg := s.Config()
	gutterSize := cfg.GutterSize
	gutterStep := cfg.GutterStep
	clickDelta := cfg.GutterClickDelta
	def := &Definition{
		Version:          CurrentVersion,
		Name:             name,
		Description:      description,
		Direction:        cfg.Direction.String(),
		Unit:             cfg.Unit.String(),
		GutterSize:       &gutterSize,
		GutterStep:       &gutterStep,
		RestrictMove:     cfg.RestrictMove,
		Dir:              cfg.Dir.String(),
		Disabled:         cfg.Disabled,
		GutterClickDelta: &clickDelta,
	}
	if cfg.DoubleClickThreshold > 0 {
		ms := int(cfg.DoubleClickThreshold / time.Millisecond)
		def.DoubleClickMS = &ms
	}
	for i, pane := range s.Panes() {
		size := pane.Size
		if pane.Visible {
			if effective, err := s.EffectiveSize(i); err == nil {
				size = effective
			}
		}
		def.Panes = append(def.Panes, paneDefFrom(pane, size))
	}
	return def
}

func paneDefFrom(pane split.PaneConfig, size split.Size) PaneDef {
	def := PaneDef{
		ID:       pane.ID,
		Title:    pane.Title,
		Size:     SizeSpec(size.String()),
		LockSize: pane.LockSize,
	}
	if pane.MinSize.IsFixed() {
		def.MinSize = SizeSpec(pane.MinSize.String())
	}
	if pane.MaxSize.IsFixed() {
		def.MaxSize = SizeSpec(pane.MaxSize.String())
	}
	if !pane.Visible {
		visible := false
		def.Visible = &visible
	}
	return def
}

func (d *Definition) displayName() string {
	if d.Name == "" {
		return "(unnamed)"
	}
	return d.Name
}
