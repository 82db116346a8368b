package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "servers.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadTargets(t *testing.T) {
	path := writeFile(t, "servers:\n  - play.example.com\n  - other.example.com:25570\n")

	targets, err := LoadTargets(path)
	if err != nil {
		t.Fatalf("LoadTargets() error: %v", err)
	}
	if len(targets) != 2 || targets[0] != "play.example.com" || targets[1] != "other.example.com:25570" {
		t.Errorf("targets = %v", targets)
	}
}

func TestLoadTargetsEmpty(t *testing.T) {
	path := writeFile(t, "servers: []\n")
	if _, err := LoadTargets(path); err == nil {
		t.Fatal("LoadTargets() should fail on an empty list")
	}
}

func TestLoadTargetsBadYAML(t *testing.T) {
	path := writeFile(t, "servers: [unterminated\n")
	if _, err := LoadTargets(path); err == nil {
		t.Fatal("LoadTargets() should fail on invalid yaml")
	}
}

func TestLoadTargetsMissingFile(t *testing.T) {
	if _, err := LoadTargets(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("LoadTargets() should fail on a missing file")
	}
}
