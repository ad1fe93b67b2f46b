// Package config handles configuration loading, saving, and path management.
package config

import (
	"os"
	"path/filepath"
)

const (
	// GlobalDirName is the name of the global easysurf directory.
	GlobalDirName = ".easysurf"

	// HomeEnv overrides the global directory when set.
	HomeEnv = "EASYSURF_HOME"
)

// File names
const (
	DaemonFileName   = "daemon.yaml"
	SettingsFileName = "settings.yaml"
)

// GlobalDir returns the path to the global easysurf directory (~/.easysurf/).
func GlobalDir() (string, error) {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, GlobalDirName), nil
}

// GlobalDaemonFile returns the path to the daemon.yaml file.
func GlobalDaemonFile() (string, error) {
	dir, err := GlobalDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, DaemonFileName), nil
}

// GlobalSettingsFile returns the path to the settings.yaml file.
func GlobalSettingsFile() (string, error) {
	dir, err := GlobalDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, SettingsFileName), nil
}

// EnsureGlobalDir creates the global easysurf directory if it doesn't exist.
func EnsureGlobalDir() error {
	dir, err := GlobalDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}
