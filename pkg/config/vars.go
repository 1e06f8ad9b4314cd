package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "tfingest"

	// SupportedRounds are the reporting rounds tfingest knows
	// how to ingest.
	SupportedRounds = []int{3, 4, 5, 6}
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/tfingest by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for cache files.
// Returns ~/.cache/tfingest by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/tfingest/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/tfingest/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}
