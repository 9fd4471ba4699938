package userpath

import (
	"path/filepath"
	"testing"
)

func TestExpand(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		name string
		path string
		want string
	}{
		{"empty", "", ""},
		{"tilde", "~", home},
		{"tilde slash", "~/layouts/dev.yml", filepath.Join(home, "layouts/dev.yml")},
		{"absolute", "/etc/splitpanes", "/etc/splitpanes"},
		{"relative", "layouts/dev.yml", "layouts/dev.yml"},
		{"other user", "~bob/dev.yml", "~bob/dev.yml"},
		{"tilde inside", "/tmp/~/x", "/tmp/~/x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Expand(tt.path); got != tt.want {
				t.Errorf("Expand(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestShorten(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		name string
		path string
		want string
	}{
		{"empty", "", ""},
		{"home", home, "~"},
		{"under home", filepath.Join(home, "proj", ".splitpanes.yml"), filepath.Join("~", "proj", ".splitpanes.yml")},
		{"sibling prefix", home + "-other/x", home + "-other/x"},
		{"elsewhere", "/srv/layouts", "/srv/layouts"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Shorten(tt.path); got != tt.want {
				t.Errorf("Shorten(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}
