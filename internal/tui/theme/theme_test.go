package theme

import (
	"strings"
	"testing"
)

func TestFormatHelpers(t *testing.T) {
	for _, name := range []string{Default, Mono} {
		s := New(name)
		if !strings.Contains(s.FormatSuccess("saved"), "✓ saved") {
			t.Fatalf("%s: FormatSuccess missing checkmark", name)
		}
		if !strings.Contains(s.FormatError("bad"), "✗ bad") {
			t.Fatalf("%s: FormatError missing cross", name)
		}
		if !strings.Contains(s.FormatWarning("hm"), "⚠ hm") {
			t.Fatalf("%s: FormatWarning missing symbol", name)
		}
	}
}

func TestNewFallsBackToDefault(t *testing.T) {
	if got := New("neon").Name; got != Default {
		t.Fatalf("New(neon).Name = %q, want default", got)
	}
	if got := New(Mono).Name; got != Mono {
		t.Fatalf("New(mono).Name = %q", got)
	}
}

func TestPaneBorderAddsFrame(t *testing.T) {
	s := New(Mono)
	if got := s.Pane.GetHorizontalFrameSize(); got != 2 {
		t.Fatalf("pane horizontal frame = %d, want 2", got)
	}
}
