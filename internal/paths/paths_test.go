package paths

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigDir(t *testing.T) {
	got := ConfigDir()
	if !strings.HasSuffix(got, AppName) {
		t.Errorf("ConfigDir = %q, want suffix %q", got, AppName)
	}
	if !filepath.IsAbs(got) {
		t.Errorf("ConfigDir = %q, want absolute path", got)
	}
}

func TestDefaultDestination(t *testing.T) {
	got := DefaultDestination()
	want := filepath.Join(AppName, "backups")
	if !strings.HasSuffix(got, want) {
		t.Errorf("DefaultDestination = %q, want suffix %q", got, want)
	}
}

func TestExpandHome(t *testing.T) {
	home := Home()
	if home == "" {
		t.Skip("home directory not resolvable")
	}

	tests := []struct {
		input string
		want  string
	}{
		{"~", home},
		{"~/data", filepath.Join(home, "data")},
		{"/absolute/path", "/absolute/path"},
		{"relative/path", "relative/path"},
		{"~user/data", "~user/data"}, // other users' homes are not expanded
	}

	for _, tt := range tests {
		if got := ExpandHome(tt.input); got != tt.want {
			t.Errorf("ExpandHome(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
