package config

import (
	"os"
	"path/filepath"
)

// HomeDir returns PRMONITOR_HOME or ~/.prmonitor
func HomeDir() string {
	home := os.Getenv("PRMONITOR_HOME")
	if home == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ".prmonitor"
		}
		return filepath.Join(homeDir, ".prmonitor")
	}
	return ExpandPath(home)
}

// DBPath returns <home>/state.db
func DBPath(home string) string {
	return filepath.Join(home, "state.db")
}

// ConfigPath returns <home>/config.yaml
func ConfigPath(home string) string {
	return filepath.Join(home, "config.yaml")
}

// ExpandPath expands ~ to home directory
func ExpandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			if len(path) == 1 {
				return homeDir
			}
			return filepath.Join(homeDir, path[1:])
		}
	}
	return path
}
