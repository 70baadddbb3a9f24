package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "nutrigrade"

	// ReferenceFile is the default name of the additive dataset.
	ReferenceFile = "fssai_additives.json"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/nutrigrade by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for cache files.
// Returns ~/.cache/nutrigrade by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/nutrigrade/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/nutrigrade/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// ReferenceFilePath returns the default path of the additive dataset.
// Returns ~/.config/nutrigrade/fssai_additives.json by default.
func ReferenceFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), ReferenceFile)
}
