package appdirs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/regenrek/splitpanes/internal/identity"
	"github.com/regenrek/splitpanes/internal/runenv"
)

// ConfigDirPath returns the directory holding config.toml and the layouts dir.
// It does not create it.
func ConfigDirPath() (string, error) {
	if override := runenv.ConfigDir(); override != "" {
		return override, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".config", identity.AppSlug), nil
}

// StateDirPath returns the directory for logs and other local state. It does
// not create it.
func StateDirPath() (string, error) {
	if override := runenv.StateDir(); override != "" {
		return override, nil
	}
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("resolve cache dir: %w", err)
	}
	return filepath.Join(dir, identity.AppSlug), nil
}

// StateDir returns the state directory, creating it with private permissions.
func StateDir() (string, error) {
	dir, err := StateDirPath()
	if err != nil {
		return "", err
	}
	if err := EnsurePrivateDir(dir, runenv.StateDir() != ""); err != nil {
		return "", err
	}
	return dir, nil
}

// LogFilePath returns the default log file location.
func LogFilePath() (string, error) {
	dir, err := StateDirPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, identity.LogFileName), nil
}
