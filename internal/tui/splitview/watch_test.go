package splitview

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatchLayoutReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".splitpanes.yml")
	if err := os.WriteFile(path, []byte(evenLayout), 0o600); err != nil {
		t.Fatalf("write layout: %v", err)
	}
	changes, stop, err := watchLayout(path)
	if err != nil {
		t.Fatalf("watchLayout() error: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o600); err != nil {
		t.Fatalf("write other: %v", err)
	}
	if err := os.WriteFile(path, []byte(wildcardLayout), 0o600); err != nil {
		t.Fatalf("rewrite layout: %v", err)
	}
	select {
	case <-changes:
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for change")
	}

	if err := stop(); err != nil {
		t.Fatalf("stop() error: %v", err)
	}
	deadline := time.After(5 * time.Second)
	for {
		select {
		case _, ok := <-changes:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatalf("expected channel to close after stop")
		}
	}
}

func TestWatchLayoutMissingDir(t *testing.T) {
	if _, _, err := watchLayout(filepath.Join(t.TempDir(), "missing", "x.yml")); err == nil {
		t.Fatalf("expected error for missing directory")
	}
}

func TestWaitForChange(t *testing.T) {
	if waitForChange(nil) != nil {
		t.Fatalf("expected nil command without a watcher")
	}
	ch := make(chan struct{}, 1)
	ch <- struct{}{}
	if _, ok := waitForChange(ch)().(fileChangedMsg); !ok {
		t.Fatalf("expected fileChangedMsg")
	}
	close(ch)
	if msg := waitForChange(ch)(); msg != nil {
		t.Fatalf("expected nil message after close, got %#v", msg)
	}
}
