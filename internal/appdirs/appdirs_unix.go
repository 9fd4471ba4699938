//go:build !windows

package appdirs

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"golang.org/x/sys/unix"
)

var permsWarnOnce sync.Once

// EnsurePrivateDir creates dir with mode 0700 or tightens an existing one we
// own. Overrides chosen by the user are only warned about.
func EnsurePrivateDir(dir string, isOverride bool) error {
	if dir == "" || dir == "." {
		return nil
	}
	info, err := os.Stat(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("stat dir: %w", err)
		}
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create dir: %w", err)
		}
		return nil
	}
	if !info.IsDir() {
		return fmt.Errorf("%q is not a directory", dir)
	}
	mode := info.Mode().Perm()
	if mode&0o077 == 0 {
		return nil
	}
	if isOverride {
		permsWarnOnce.Do(func() {
			slog.Warn("dir is group/world accessible; consider chmod 0700", "path", dir, "mode", mode.String())
		})
		return nil
	}
	if ownedByCurrentUser(dir) {
		if err := os.Chmod(dir, 0o700); err != nil {
			return fmt.Errorf("chmod dir: %w", err)
		}
		return nil
	}
	permsWarnOnce.Do(func() {
		slog.Warn("dir is not owned by current user; permissions unchanged", "path", dir, "mode", mode.String())
	})
	return nil
}

func ownedByCurrentUser(dir string) bool {
	var st unix.Stat_t
	if err := unix.Stat(dir, &st); err != nil {
		return false
	}
	return st.Uid == uint32(unix.Getuid())
}
