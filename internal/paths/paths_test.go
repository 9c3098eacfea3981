package paths

import (
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func TestExpandHome(t *testing.T) {
	home := Home()
	if home == "" {
		t.Skip("no home directory in test environment")
	}

	tests := []struct {
		input string
		want  string
	}{
		{"~", home},
		{"~/.gitconfig", filepath.Join(home, ".gitconfig")},
		{"/etc/hosts", "/etc/hosts"},
		{"relative/path", "relative/path"},
		{"~user/file", "~user/file"}, // other users' homes are not expanded
	}

	for _, tt := range tests {
		if got := ExpandHome(tt.input); got != tt.want {
			t.Errorf("ExpandHome(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestLookupKnownConfig(t *testing.T) {
	kc, err := LookupKnownConfig("git")
	if err != nil {
		t.Fatalf("LookupKnownConfig(git) error: %v", err)
	}
	if kc.Name != "git" {
		t.Errorf("Name = %q, want git", kc.Name)
	}
	if strings.HasPrefix(kc.Path, "~") {
		t.Errorf("Path %q not expanded", kc.Path)
	}
	if !strings.HasSuffix(kc.Path, ".gitconfig") {
		t.Errorf("Path = %q, want .gitconfig suffix", kc.Path)
	}
}

func TestLookupKnownConfig_Unknown(t *testing.T) {
	_, err := LookupKnownConfig("nonexistent-tool")
	if err == nil {
		t.Fatal("expected error for unknown config name")
	}
}

func TestKnownConfigNames_SortedAndComplete(t *testing.T) {
	names := KnownConfigNames()
	if !slices.IsSorted(names) {
		t.Errorf("names not sorted: %v", names)
	}
	if !slices.Contains(names, "git") {
		t.Errorf("catalog missing git: %v", names)
	}
	if !slices.Contains(names, "ssh") {
		t.Errorf("catalog missing ssh: %v", names)
	}
}

func TestIdentity(t *testing.T) {
	if Hostname() == "" {
		t.Error("Hostname() should never be empty")
	}
	if Username() == "" {
		t.Error("Username() should never be empty")
	}
}

func TestDefaultBackupRoot(t *testing.T) {
	root := DefaultBackupRoot()
	if root == "" {
		t.Fatal("DefaultBackupRoot() is empty")
	}
	if filepath.Base(root) != "backups" {
		t.Errorf("root = %q, want backups leaf", root)
	}
}
