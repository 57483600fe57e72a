package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestProfileRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := *DefaultConfig()
	cfg.Dialect = "xmlfunctions"
	cfg.Tools = []string{"search", "fetch"}

	if err := SaveProfile("test-profile", cfg); err != nil {
		t.Fatalf("SaveProfile() error: %v", err)
	}

	names, err := ListProfiles()
	if err != nil {
		t.Fatalf("ListProfiles() error: %v", err)
	}
	if len(names) != 1 || names[0] != "test-profile" {
		t.Fatalf("ListProfiles() = %v, want [test-profile]", names)
	}

	loaded, err := LoadProfile("test-profile")
	if err != nil {
		t.Fatalf("LoadProfile() error: %v", err)
	}
	if loaded.Dialect != "xmlfunctions" || len(loaded.Tools) != 2 {
		t.Errorf("LoadProfile() = %+v, want dialect xmlfunctions with 2 tools", loaded)
	}

	if err := DeleteProfile("test-profile"); err != nil {
		t.Fatalf("DeleteProfile() error: %v", err)
	}
	if _, err := LoadProfile("test-profile"); err == nil {
		t.Error("expected error loading deleted profile, got nil")
	}
}

func TestLoadProfileNotFound(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	if _, err := LoadProfile("does-not-exist"); err == nil {
		t.Error("expected error for missing profile, got nil")
	}
}

func TestProfilesDirCreated(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", base)

	dir, err := profilesDir()
	if err != nil {
		t.Fatalf("profilesDir() error: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("profilesDir() did not create directory: %v", err)
	}
	if filepath.Base(dir) != "profiles" {
		t.Errorf("profilesDir() = %q, want basename %q", dir, "profiles")
	}
}
