package config

import (
	"errors"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/mistakeknot/lowbeer/internal/lowbeer/project"
)

// LLMSettings tunes the completion backend.
type LLMSettings struct {
	Model          string `toml:"model"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// WatchSettings tunes the filesystem watcher.
type WatchSettings struct {
	IgnoreDirs []string `toml:"ignore_dirs"`
}

// TUISettings tunes the dashboard.
type TUISettings struct {
	ConfirmQuit bool `toml:"confirm_quit"`
}

// Settings is the optional settings.toml file. Missing file or missing
// keys fall back to defaults.
type Settings struct {
	LLM   LLMSettings   `toml:"llm"`
	Watch WatchSettings `toml:"watch"`
	TUI   TUISettings   `toml:"tui"`
}

func defaultSettings() Settings {
	return Settings{
		LLM:   LLMSettings{Model: "gemini-pro", TimeoutSeconds: 60},
		Watch: WatchSettings{IgnoreDirs: []string{".git", ".lowbeer"}},
		TUI:   TUISettings{ConfirmQuit: false},
	}
}

// LoadSettings reads settings.toml under root, applying defaults for
// anything unset.
func LoadSettings(root string) (Settings, error) {
	s := defaultSettings()
	path := project.SettingsPath(root)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return Settings{}, err
	}
	if _, err := toml.DecodeFile(path, &s); err != nil {
		return Settings{}, err
	}
	if s.LLM.Model == "" {
		s.LLM.Model = "gemini-pro"
	}
	if s.LLM.TimeoutSeconds <= 0 {
		s.LLM.TimeoutSeconds = 60
	}
	return s, nil
}
