package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingConfig(t *testing.T) {
	cfg := Load(t.TempDir())
	if cfg.RepoPath != "" || cfg.APIKey != "" {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadCorruptConfig(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, ".lowbeer"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, ".lowbeer", "config.json"), []byte("nope"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := Load(root)
	if cfg != (Config{}) {
		t.Fatalf("expected empty config for corrupt file, got %+v", cfg)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	root := t.TempDir()
	in := Config{RepoPath: "/tmp/repo", APIKey: "secret"}
	if err := Save(root, in); err != nil {
		t.Fatalf("save: %v", err)
	}
	if got := Load(root); got != in {
		t.Fatalf("round trip mismatch: %+v != %+v", got, in)
	}
}

func TestSettingsDefaults(t *testing.T) {
	s, err := LoadSettings(t.TempDir())
	if err != nil {
		t.Fatalf("load settings: %v", err)
	}
	if s.LLM.Model != "gemini-pro" {
		t.Fatalf("unexpected model: %q", s.LLM.Model)
	}
	if s.LLM.TimeoutSeconds != 60 {
		t.Fatalf("unexpected timeout: %d", s.LLM.TimeoutSeconds)
	}
	if len(s.Watch.IgnoreDirs) == 0 {
		t.Fatalf("expected default ignore dirs")
	}
}

func TestSettingsOverride(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, ".lowbeer"), 0o755); err != nil {
		t.Fatal(err)
	}
	body := "[llm]\nmodel = \"gemini-1.5-flash\"\ntimeout_seconds = 10\n\n[watch]\nignore_dirs = [\"vendor\"]\n"
	if err := os.WriteFile(filepath.Join(root, ".lowbeer", "settings.toml"), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := LoadSettings(root)
	if err != nil {
		t.Fatalf("load settings: %v", err)
	}
	if s.LLM.Model != "gemini-1.5-flash" || s.LLM.TimeoutSeconds != 10 {
		t.Fatalf("override not applied: %+v", s.LLM)
	}
	if len(s.Watch.IgnoreDirs) != 1 || s.Watch.IgnoreDirs[0] != "vendor" {
		t.Fatalf("unexpected ignore dirs: %v", s.Watch.IgnoreDirs)
	}
}
