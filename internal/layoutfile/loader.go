package layoutfile

import (
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/regenrek/splitpanes/internal/appdirs"
	"github.com/regenrek/splitpanes/internal/identity"
	"github.com/regenrek/splitpanes/internal/userpath"
)

//go:embed defaults/*.yml
var embeddedLayouts embed.FS

// DefaultLayoutName is used when no layout is requested and the project has none.
const DefaultLayoutName = "columns"

// Source identifies where a layout was loaded from.
type Source string

const (
	SourceBuiltin Source = "builtin"
	SourceGlobal  Source = "global"
	SourceProject Source = "project"
	SourceFile    Source = "file"
)

// Info provides metadata about an available layout.
type Info struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Source      Source `json:"source"`
	Path        string `json:"path,omitempty"`
}

// NotFoundError reports an unknown layout name with close matches.
type NotFoundError struct {
	Name        string
	Suggestions []string
}

func (e *NotFoundError) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("layoutfile: layout %q not found", e.Name)
	}
	return fmt.Sprintf("layoutfile: layout %q not found (did you mean %s?)", e.Name, strings.Join(e.Suggestions, ", "))
}

type entry struct {
	def  *Definition
	path string
}

// Loader loads layouts from builtins, the global layouts dir, and the project
// file. Later sources win.
type Loader struct {
	globalLayoutsDir string
	projectDir       string
	// workDir anchors relative file refs; projectDir is used when empty.
	workDir string

	builtin map[string]entry
	global  map[string]entry
	project *entry
}

// NewLoader creates a loader with default paths.
func NewLoader(projectDir string) (*Loader, error) {
	layoutsDir, err := DefaultLayoutsDir()
	if err != nil {
		return nil, err
	}
	return NewLoaderWithPaths(layoutsDir, projectDir), nil
}

// NewLoaderWithPaths creates a loader with custom paths.
func NewLoaderWithPaths(layoutsDir, projectDir string) *Loader {
	return &Loader{
		globalLayoutsDir: layoutsDir,
		projectDir:       projectDir,
		builtin:          make(map[string]entry),
		global:           make(map[string]entry),
	}
}

// SetWorkDir sets the directory relative layout paths are resolved from.
func (l *Loader) SetWorkDir(dir string) {
	l.workDir = dir
}

// DefaultLayoutsDir returns the global layouts directory.
func DefaultLayoutsDir() (string, error) {
	dir, err := appdirs.ConfigDirPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, identity.GlobalLayoutsDir), nil
}

// ProjectFileNames lists the project layout file names, in lookup order.
func ProjectFileNames() []string {
	return []string{"." + identity.AppSlug + ".yml", "." + identity.AppSlug + ".yaml"}
}

// LoadAll loads layouts from all sources.
func (l *Loader) LoadAll() error {
	if err := l.LoadBuiltins(); err != nil {
		return err
	}
	if err := l.LoadGlobalLayouts(); err != nil {
		return err
	}
	return l.LoadProjectLayout()
}

// LoadBuiltins loads all embedded default layouts.
func (l *Loader) LoadBuiltins() error {
	entries, err := embeddedLayouts.ReadDir("defaults")
	if err != nil {
		return fmt.Errorf("layoutfile: read embedded layouts: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yml") {
			continue
		}
		data, err := embeddedLayouts.ReadFile("defaults/" + e.Name())
		if err != nil {
			return fmt.Errorf("layoutfile: read embedded %s: %w", e.Name(), err)
		}
		def, err := Parse(data)
		if err != nil {
			return fmt.Errorf("layoutfile: embedded %s: %w", e.Name(), err)
		}
		if def.Name == "" {
			def.Name = strings.TrimSuffix(e.Name(), ".yml")
		}
		l.builtin[def.Name] = entry{def: def}
	}
	return nil
}

// LoadGlobalLayouts loads layouts from the user's layouts directory. Files that
// fail to parse are skipped with a warning.
func (l *Loader) LoadGlobalLayouts() error {
	if l.globalLayoutsDir == "" {
		return nil
	}
	info, err := os.Stat(l.globalLayoutsDir)
	if err != nil || !info.IsDir() {
		return nil
	}
	entries, err := os.ReadDir(l.globalLayoutsDir)
	if err != nil {
		return fmt.Errorf("layoutfile: read layouts dir: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() || !isLayoutFileName(e.Name()) {
			continue
		}
		path := filepath.Join(l.globalLayoutsDir, e.Name())
		def, err := LoadFile(path)
		if err != nil {
			slog.Warn("layout file skipped", "path", path, "err", err)
			continue
		}
		l.global[def.Name] = entry{def: def, path: path}
	}
	return nil
}

// LoadProjectLayout loads the project layout file, if present.
func (l *Loader) LoadProjectLayout() error {
	if l.projectDir == "" {
		return nil
	}
	for _, name := range ProjectFileNames() {
		path := filepath.Join(l.projectDir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		def, err := LoadFile(path)
		if err != nil {
			return err
		}
		if def.Name == "" || def.Name == trimLayoutExt(name) {
			def.Name = "project"
		}
		l.project = &entry{def: def, path: path}
		return nil
	}
	return nil
}

// Get retrieves a layout by name. An empty name returns the project layout, or
// the default builtin when the project has none.
func (l *Loader) Get(name string) (*Definition, Info, error) {
	name = strings.TrimSpace(name)
	if l.project != nil && (name == "" || name == l.project.def.Name) {
		return l.project.def, l.info(SourceProject, *l.project), nil
	}
	if name == "" {
		name = DefaultLayoutName
	}
	if e, ok := l.global[name]; ok {
		return e.def, l.info(SourceGlobal, e), nil
	}
	if e, ok := l.builtin[name]; ok {
		return e.def, l.info(SourceBuiltin, e), nil
	}
	return nil, Info{}, &NotFoundError{Name: name, Suggestions: l.suggest(name)}
}

// Resolve accepts a layout name or a path to a layout file. Relative paths
// are taken from the work dir; a leading ~ is expanded.
func (l *Loader) Resolve(ref string) (*Definition, Info, error) {
	ref = userpath.Expand(strings.TrimSpace(ref))
	if looksLikePath(ref) {
		path := ref
		base := l.workDir
		if base == "" {
			base = l.projectDir
		}
		if !filepath.IsAbs(path) && base != "" {
			path = filepath.Join(base, path)
		}
		if _, err := os.Stat(path); err == nil {
			def, err := LoadFile(path)
			if err != nil {
				return nil, Info{}, err
			}
			return def, Info{Name: def.Name, Description: def.Description, Source: SourceFile, Path: path}, nil
		}
		if !strings.ContainsRune(ref, filepath.Separator) && isLayoutFileName(ref) {
			return l.Get(trimLayoutExt(ref))
		}
		return nil, Info{}, fmt.Errorf("layoutfile: %q: %w", ref, os.ErrNotExist)
	}
	return l.Get(ref)
}

// List returns info about all available layouts, sorted by name.
func (l *Loader) List() []Info {
	seen := make(map[string]bool)
	var out []Info
	if l.project != nil {
		out = append(out, l.info(SourceProject, *l.project))
		seen[l.project.def.Name] = true
	}
	for name, e := range l.global {
		if seen[name] {
			continue
		}
		out = append(out, l.info(SourceGlobal, e))
		seen[name] = true
	}
	for name, e := range l.builtin {
		if seen[name] {
			continue
		}
		out = append(out, l.info(SourceBuiltin, e))
		seen[name] = true
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

func (l *Loader) info(source Source, e entry) Info {
	return Info{Name: e.def.Name, Description: e.def.Description, Source: source, Path: e.path}
}

func (l *Loader) names() []string {
	var names []string
	for _, info := range l.List() {
		names = append(names, info.Name)
	}
	return names
}

// suggest returns up to three layout names that fuzzily match name.
func (l *Loader) suggest(name string) []string {
	names := l.names()
	matches := fuzzy.Find(name, names)
	if len(matches) == 0 {
		// Fall back to names contained in the query ("columnsx" -> "columns").
		for _, candidate := range names {
			if len(fuzzy.Find(candidate, []string{name})) > 0 {
				matches = append(matches, fuzzy.Match{Str: candidate})
			}
		}
	}
	out := make([]string, 0, 3)
	for _, match := range matches {
		if len(out) == 3 {
			break
		}
		out = append(out, match.Str)
	}
	return out
}

// IsNotFound reports whether err is an unknown layout name.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func isLayoutFileName(name string) bool {
	return strings.HasSuffix(name, ".yml") || strings.HasSuffix(name, ".yaml")
}

func looksLikePath(ref string) bool {
	return strings.ContainsRune(ref, filepath.Separator) || strings.ContainsRune(ref, '/') || isLayoutFileName(ref)
}

func trimLayoutExt(name string) string {
	return strings.TrimSuffix(strings.TrimSuffix(name, ".yml"), ".yaml")
}

func baseName(path string) string {
	return filepath.Base(path)
}
