package layoutfile

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sblinch/kdl-go"

	"github.com/regenrek/splitpanes/internal/split"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestBuiltinLayoutsBuild(t *testing.T) {
	loader := NewLoaderWithPaths("", "")
	if err := loader.LoadBuiltins(); err != nil {
		t.Fatalf("LoadBuiltins() error: %v", err)
	}
	infos := loader.List()
	if len(infos) == 0 {
		t.Fatal("List() returned no layouts")
	}
	for _, info := range infos {
		def, _, err := loader.Get(info.Name)
		if err != nil {
			t.Fatalf("Get(%q) error: %v", info.Name, err)
		}
		if _, err := def.NewSplit(); err != nil {
			t.Fatalf("builtin %q does not build: %v", info.Name, err)
		}
	}
	def, info, err := loader.Get("")
	if err != nil {
		t.Fatalf("Get(\"\") error: %v", err)
	}
	if def.Name != DefaultLayoutName || info.Source != SourceBuiltin {
		t.Fatalf("default layout = %q from %q", def.Name, info.Source)
	}
}

func TestParseBuildsSplitConfig(t *testing.T) {
	data := `
version: "1.2"
direction: vertical
unit: pixel
gutter_size: 2
gutter_step: 5
restrict_move: true
dir: rtl
gutter_click_delta: 3
double_click_ms: 250
panes:
  - id: top
    size: 120px
    min_size: 40
    lock_size: true
  - size: "*"
  - id: hidden
    size: 10
    visible: false
`
	def, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	cfg, panes, err := def.Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if cfg.Direction != split.DirectionVertical || cfg.Unit != split.UnitPixel || cfg.Dir != split.TextDirRTL {
		t.Fatalf("unexpected config: %#v", cfg)
	}
	if cfg.GutterSize != 2 || cfg.GutterStep != 5 || !cfg.RestrictMove || cfg.GutterClickDelta != 3 {
		t.Fatalf("unexpected gutter settings: %#v", cfg)
	}
	if cfg.DoubleClickThreshold != 250*time.Millisecond {
		t.Fatalf("DoubleClickThreshold = %v", cfg.DoubleClickThreshold)
	}
	if len(panes) != 3 {
		t.Fatalf("panes = %d, want 3", len(panes))
	}
	if panes[0].Size != split.Fixed(120) || panes[0].MinSize != split.Fixed(40) || !panes[0].LockSize {
		t.Fatalf("unexpected first pane: %#v", panes[0])
	}
	if panes[1].ID != "pane-2" || !panes[1].Size.IsWildcard() {
		t.Fatalf("unexpected second pane: %#v", panes[1])
	}
	if panes[2].Visible {
		t.Fatalf("expected hidden pane")
	}
	if _, err := def.NewSplit(); err != nil {
		t.Fatalf("NewSplit() error: %v", err)
	}
}

func TestParseRejectsInvalidDefinitions(t *testing.T) {
	cases := map[string]string{
		"empty":            "   ",
		"no panes":         "name: x\n",
		"unknown key":      "panes:\n  - size: 50\n  - size: 50\nextra: true\n",
		"bad direction":    "direction: diagonal\npanes:\n  - size: 100\n",
		"negative size":    "panes:\n  - size: -5\n",
		"bad size string":  "panes:\n  - size: wide\n",
		"auto bound":       "panes:\n  - size: 100\n    max_size: auto\n",
		"future version":   "version: \"2.0\"\npanes:\n  - size: 100\n",
		"bad version":      "version: banana\npanes:\n  - size: 100\n",
		"zero gutter size": "gutter_size: 0\npanes:\n  - size: 100\n",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(data)); err == nil {
				t.Fatalf("Parse() expected error for %q", data)
			}
		})
	}
}

func TestNewSplitReportsConfigurationError(t *testing.T) {
	def, err := Parse([]byte("panes:\n  - size: 40\n  - size: 40\n"))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	_, err = def.NewSplit()
	var cfgErr *split.ConfigurationError
	if !errors.As(err, &cfgErr) || cfgErr.Reason != split.ReasonPercentTotal {
		t.Fatalf("expected percent_total configuration error, got %v", err)
	}
}

func TestLoaderPrecedence(t *testing.T) {
	tmpDir := t.TempDir()
	globalDir := filepath.Join(tmpDir, "layouts")
	writeFile(t, filepath.Join(globalDir, "custom.yml"), "description: mine\npanes:\n  - size: 100\n")
	writeFile(t, filepath.Join(globalDir, "columns.yaml"), "name: columns\ndescription: override\npanes:\n  - size: 50\n  - size: 50\n")
	writeFile(t, filepath.Join(globalDir, "broken.yml"), "panes: nope\n")

	projectDir := filepath.Join(tmpDir, "project")
	writeFile(t, filepath.Join(projectDir, ".splitpanes.yml"), "panes:\n  - size: 25\n  - size: 75\n")

	loader := NewLoaderWithPaths(globalDir, projectDir)
	if err := loader.LoadAll(); err != nil {
		t.Fatalf("LoadAll() error: %v", err)
	}

	def, info, err := loader.Get("custom")
	if err != nil {
		t.Fatalf("Get(custom) error: %v", err)
	}
	if info.Source != SourceGlobal || def.Description != "mine" {
		t.Fatalf("custom layout source=%q description=%q", info.Source, def.Description)
	}

	def, info, err = loader.Get("columns")
	if err != nil {
		t.Fatalf("Get(columns) error: %v", err)
	}
	if info.Source != SourceGlobal || def.Description != "override" {
		t.Fatalf("columns layout source=%q description=%q", info.Source, def.Description)
	}

	def, info, err = loader.Get("")
	if err != nil {
		t.Fatalf("Get(\"\") error: %v", err)
	}
	if info.Source != SourceProject || len(def.Panes) != 2 || def.Name != "project" {
		t.Fatalf("project layout source=%q name=%q panes=%d", info.Source, def.Name, len(def.Panes))
	}

	if _, _, err := loader.Get("broken"); !IsNotFound(err) {
		t.Fatalf("expected broken layout to be skipped, got %v", err)
	}

	sources := map[string]Source{}
	for _, info := range loader.List() {
		sources[info.Name] = info.Source
	}
	if sources["project"] != SourceProject || sources["custom"] != SourceGlobal || sources["editor"] != SourceBuiltin {
		t.Fatalf("unexpected List() sources: %#v", sources)
	}
}

func TestResolveRelativeAndHomePaths(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	projectDir := t.TempDir()
	writeFile(t, filepath.Join(projectDir, "layouts", "pair.yml"), "panes:\n  - size: 30\n  - size: 70\n")
	writeFile(t, filepath.Join(home, "solo.yml"), "name: solo\npanes:\n  - size: \"*\"\n")

	loader := NewLoaderWithPaths("", projectDir)
	def, info, err := loader.Resolve("layouts/pair.yml")
	if err != nil {
		t.Fatalf("Resolve(relative) error: %v", err)
	}
	if def.Name != "pair" || info.Path != filepath.Join(projectDir, "layouts", "pair.yml") {
		t.Fatalf("Resolve(relative) name=%q path=%q", def.Name, info.Path)
	}

	def, info, err = loader.Resolve("~/solo.yml")
	if err != nil {
		t.Fatalf("Resolve(home) error: %v", err)
	}
	if def.Name != "solo" || info.Path != filepath.Join(home, "solo.yml") {
		t.Fatalf("Resolve(home) name=%q path=%q", def.Name, info.Path)
	}
}

func TestResolveRelativeToWorkDir(t *testing.T) {
	projectDir := t.TempDir()
	workDir := filepath.Join(projectDir, "sub")
	writeFile(t, filepath.Join(workDir, "pair.yml"), "panes:\n  - size: 40\n  - size: 60\n")

	loader := NewLoaderWithPaths("", projectDir)
	loader.SetWorkDir(workDir)
	_, info, err := loader.Resolve("./pair.yml")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if info.Path != filepath.Join(workDir, "pair.yml") {
		t.Fatalf("Resolve() path = %q", info.Path)
	}
}

func TestResolve(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "wide.yml")
	writeFile(t, path, "panes:\n  - size: 10\n  - size: 90\n")

	loader := NewLoaderWithPaths("", "")
	if err := loader.LoadBuiltins(); err != nil {
		t.Fatalf("LoadBuiltins() error: %v", err)
	}

	def, info, err := loader.Resolve(path)
	if err != nil {
		t.Fatalf("Resolve(path) error: %v", err)
	}
	if info.Source != SourceFile || def.Name != "wide" {
		t.Fatalf("Resolve(path) source=%q name=%q", info.Source, def.Name)
	}

	if _, _, err := loader.Resolve(filepath.Join(tmpDir, "missing.yml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not exist error, got %v", err)
	}

	_, _, err = loader.Resolve("colums")
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	found := false
	for _, s := range nf.Suggestions {
		if s == "columns" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected columns suggestion, got %v", nf.Suggestions)
	}
}

func TestExportYAMLRoundTrip(t *testing.T) {
	loader := NewLoaderWithPaths("", "")
	if err := loader.LoadBuiltins(); err != nil {
		t.Fatalf("LoadBuiltins() error: %v", err)
	}
	def, _, err := loader.Get("editor")
	if err != nil {
		t.Fatalf("Get(editor) error: %v", err)
	}
	out, err := ExportYAML(def)
	if err != nil {
		t.Fatalf("ExportYAML() error: %v", err)
	}
	if !strings.Contains(out, "size: 20\n") {
		t.Fatalf("expected numeric size in export:\n%s", out)
	}
	again, err := Parse([]byte(out))
	if err != nil {
		t.Fatalf("Parse(export) error: %v\n%s", err, out)
	}
	if len(again.Panes) != len(def.Panes) || again.Panes[1].Size != def.Panes[1].Size {
		t.Fatalf("round trip changed panes: %#v", again.Panes)
	}
}

func TestFromSplitCapturesEffectiveSizes(t *testing.T) {
	def, err := Parse([]byte("gutter_size: 1\npanes:\n  - id: a\n    size: 30\n  - id: b\n    size: 70\n    min_size: 20\n"))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	s, err := def.NewSplit()
	if err != nil {
		t.Fatalf("NewSplit() error: %v", err)
	}
	if _, err := s.KeyboardMove(0, split.KeyRight, s.ExtentMeasurer(101)); err != nil {
		t.Fatalf("KeyboardMove() error: %v", err)
	}
	snapshot := FromSplit("snap", "", s)
	out, err := ExportYAML(snapshot)
	if err != nil {
		t.Fatalf("ExportYAML() error: %v", err)
	}
	again, err := Parse([]byte(out))
	if err != nil {
		t.Fatalf("Parse(snapshot) error: %v\n%s", err, out)
	}
	restored, err := again.NewSplit()
	if err != nil {
		t.Fatalf("NewSplit(snapshot) error: %v", err)
	}
	want, got := s.Sizes(), restored.Sizes()
	for i := range want {
		if want[i] != got[i] {
			t.Fatalf("restored sizes %v, want %v", got, want)
		}
	}
	if again.Panes[1].MinSize != "20" {
		t.Fatalf("min size lost: %#v", again.Panes[1])
	}
}

func TestExportKDL(t *testing.T) {
	loader := NewLoaderWithPaths("", "")
	if err := loader.LoadBuiltins(); err != nil {
		t.Fatalf("LoadBuiltins() error: %v", err)
	}

	def, _, err := loader.Get("editor")
	if err != nil {
		t.Fatalf("Get(editor) error: %v", err)
	}
	out, err := ExportKDL(def)
	if err != nil {
		t.Fatalf("ExportKDL() error: %v", err)
	}
	for _, want := range []string{"layout", "split_direction", "vertical", "20%", "55%", "25%", "Editor"} {
		if !strings.Contains(out, want) {
			t.Fatalf("ExportKDL() missing %q:\n%s", want, out)
		}
	}
	doc, err := kdl.Parse(bytes.NewReader([]byte(out)))
	if err != nil {
		t.Fatalf("exported kdl does not parse: %v\n%s", err, out)
	}
	if len(doc.Nodes) != 1 || len(doc.Nodes[0].Children) != 1 || len(doc.Nodes[0].Children[0].Children) != 3 {
		t.Fatalf("unexpected kdl structure:\n%s", out)
	}

	def, _, err = loader.Get("rows")
	if err != nil {
		t.Fatalf("Get(rows) error: %v", err)
	}
	out, err = ExportKDL(def)
	if err != nil {
		t.Fatalf("ExportKDL(rows) error: %v", err)
	}
	if !strings.Contains(out, "horizontal") {
		t.Fatalf("vertical split should export as a horizontal zellij split:\n%s", out)
	}
}
