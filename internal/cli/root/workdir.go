package root

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/regenrek/splitpanes/internal/layoutfile"
	"github.com/regenrek/splitpanes/internal/userpath"
)

// ResolveWorkDir returns the directory the command runs in: the context's
// WorkDir, then Deps.WorkDir, then the process cwd.
func ResolveWorkDir(ctx CommandContext) (string, error) {
	dir := strings.TrimSpace(ctx.WorkDir)
	if dir == "" {
		dir = strings.TrimSpace(ctx.Deps.WorkDir)
	}
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		dir = cwd
	}
	abs, err := filepath.Abs(userpath.Expand(dir))
	if err != nil {
		return "", err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", fmt.Errorf("workdir %s is not a directory", abs)
	}
	return abs, nil
}

// ResolveProjectDir returns the nearest directory at or above the work dir
// that holds a project layout file, or the work dir when none does.
func ResolveProjectDir(ctx CommandContext) (string, error) {
	workDir, err := ResolveWorkDir(ctx)
	if err != nil {
		return "", err
	}
	for dir := workDir; ; {
		if hasProjectLayout(dir) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return workDir, nil
		}
		dir = parent
	}
}

func hasProjectLayout(dir string) bool {
	for _, name := range layoutfile.ProjectFileNames() {
		if info, err := os.Stat(filepath.Join(dir, name)); err == nil && info.Mode().IsRegular() {
			return true
		}
	}
	return false
}
