package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths and as the Entrez
	// tool name.
	AppName = "bsfetch"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/bsfetch by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/bsfetch/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the bsfetch.yaml file.
// Returns ~/.config/bsfetch/bsfetch.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "bsfetch.yaml")
}
