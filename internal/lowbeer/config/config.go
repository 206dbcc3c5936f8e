// Package config loads and saves the project configuration and the
// optional operator settings file.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/mistakeknot/lowbeer/internal/lowbeer/project"
)

// Config is the singleton persisted configuration record. It is read at
// startup and written only on an explicit save.
type Config struct {
	RepoPath string `json:"repo_path"`
	APIKey   string `json:"api_key"`
}

// Load reads the configuration under root. A missing or unreadable file
// is treated as empty configuration, not an error.
func Load(root string) Config {
	raw, err := os.ReadFile(project.ConfigPath(root))
	if err != nil {
		return Config{}
	}
	var cfg Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return Config{}
	}
	return cfg
}

// Save writes the configuration under root, creating the project
// directory if needed.
func Save(root string, cfg Config) error {
	path := project.ConfigPath(root)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}
