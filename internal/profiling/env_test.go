package profiling

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSettingsFromEnv(t *testing.T) {
	t.Setenv(CPUProfileEnv, "")
	t.Setenv(MemProfileEnv, "")
	t.Setenv(FgprofEnv, "")
	t.Setenv(GopsEnv, "")
	t.Setenv(ProfileSecsEnv, "")
	if s := SettingsFromEnv(); s.Enabled() || s.Duration != 30*time.Second {
		t.Fatalf("expected disabled defaults, got %+v", s)
	}

	t.Setenv(CPUProfileEnv, " cpu.out ")
	t.Setenv(GopsEnv, "yes")
	t.Setenv(ProfileSecsEnv, "5")
	s := SettingsFromEnv()
	if !s.Enabled() || s.CPUPath != "cpu.out" || !s.Gops || s.Duration != 5*time.Second {
		t.Fatalf("unexpected settings %+v", s)
	}

	t.Setenv(ProfileSecsEnv, "1500ms")
	if got := SettingsFromEnv().Duration; got != 1500*time.Millisecond {
		t.Fatalf("Duration = %v", got)
	}
	t.Setenv(ProfileSecsEnv, "soon")
	if got := SettingsFromEnv().Duration; got != 30*time.Second {
		t.Fatalf("Duration = %v", got)
	}
}

func TestProfilePath(t *testing.T) {
	dir := t.TempDir()
	path, err := profilePath(filepath.Join(dir, "deep", "cpu.out"))
	if err != nil {
		t.Fatalf("profilePath() error: %v", err)
	}
	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		t.Fatalf("expected dir to exist: %v", err)
	}
	if _, err := profilePath("bad\x00path"); err == nil {
		t.Fatalf("expected control character error")
	}
	if _, err := profilePath("  "); err == nil {
		t.Fatalf("expected empty path error")
	}
}

func TestStartWithoutSettingsIsNoop(t *testing.T) {
	t.Setenv(CPUProfileEnv, "")
	t.Setenv(MemProfileEnv, "")
	t.Setenv(FgprofEnv, "")
	t.Setenv(GopsEnv, "")
	stop := Start(context.Background())
	stop()
	stop()
}
