package root

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveWorkDirPrecedence(t *testing.T) {
	ctxDir := t.TempDir()
	depsDir := t.TempDir()
	got, err := ResolveWorkDir(CommandContext{WorkDir: ctxDir, Deps: Dependencies{WorkDir: depsDir}})
	if err != nil {
		t.Fatalf("ResolveWorkDir() error: %v", err)
	}
	if got != ctxDir {
		t.Fatalf("ResolveWorkDir() = %q, want %q", got, ctxDir)
	}
	got, err = ResolveWorkDir(CommandContext{Deps: Dependencies{WorkDir: depsDir}})
	if err != nil || got != depsDir {
		t.Fatalf("ResolveWorkDir(deps) = %q, %v", got, err)
	}

	file := filepath.Join(t.TempDir(), "plain.txt")
	if err := os.WriteFile(file, []byte("x"), 0o600); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	if _, err := ResolveWorkDir(CommandContext{WorkDir: file}); err == nil {
		t.Fatalf("expected error for a file workdir")
	}
}

func TestResolveProjectDirWalksUp(t *testing.T) {
	project := t.TempDir()
	nested := filepath.Join(project, "src", "pkg")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("MkdirAll() error: %v", err)
	}
	got, err := ResolveProjectDir(CommandContext{WorkDir: nested})
	if err != nil {
		t.Fatalf("ResolveProjectDir() error: %v", err)
	}
	if got != nested {
		t.Fatalf("without a project file got %q, want %q", got, nested)
	}

	if err := os.WriteFile(filepath.Join(project, ".splitpanes.yaml"), []byte("panes:\n  - {}\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	got, err = ResolveProjectDir(CommandContext{WorkDir: nested})
	if err != nil {
		t.Fatalf("ResolveProjectDir() error: %v", err)
	}
	if got != project {
		t.Fatalf("ResolveProjectDir() = %q, want %q", got, project)
	}
}

func TestLayoutDirsResolveFromWorkDir(t *testing.T) {
	t.Setenv("SPLITPANES_CONFIG_DIR", t.TempDir())
	project := t.TempDir()
	nested := filepath.Join(project, "app")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("MkdirAll() error: %v", err)
	}
	if err := os.WriteFile(filepath.Join(project, ".splitpanes.yml"), []byte("name: proj\npanes:\n  - size: \"*\"\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	if err := os.WriteFile(filepath.Join(nested, "local.yml"), []byte("panes:\n  - size: 25\n  - size: 75\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}

	dirs, err := ResolveLayoutDirs(CommandContext{WorkDir: nested})
	if err != nil {
		t.Fatalf("ResolveLayoutDirs() error: %v", err)
	}
	if dirs.Project != project || dirs.Work != nested {
		t.Fatalf("ResolveLayoutDirs() = %+v", dirs)
	}
	loader, err := dirs.NewLoader()
	if err != nil {
		t.Fatalf("NewLoader() error: %v", err)
	}
	def, _, err := loader.Resolve("local.yml")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if def.Name != "local" {
		t.Fatalf("Resolve() name = %q", def.Name)
	}
}
