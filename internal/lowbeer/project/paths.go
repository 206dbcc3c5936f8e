// Package project defines the on-disk layout of a lowbeer project and
// the durable task/log storage.
package project

import "path/filepath"

// Dir returns the .lowbeer directory under root.
func Dir(root string) string {
	return filepath.Join(root, ".lowbeer")
}

// StoragePath returns the task/log storage file under root.
func StoragePath(root string) string {
	return filepath.Join(Dir(root), "storage.json")
}

// ConfigPath returns the configuration file under root.
func ConfigPath(root string) string {
	return filepath.Join(Dir(root), "config.json")
}

// SettingsPath returns the optional tuning file under root.
func SettingsPath(root string) string {
	return filepath.Join(Dir(root), "settings.toml")
}
