// Package storage keeps a trace of dynamic komi decisions on disk.
package storage

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "dynkomi"

// dataHome returns the per-user base directory for application data:
// ~/Library/Application Support on macOS, %APPDATA% on Windows and
// $XDG_DATA_HOME or ~/.local/share elsewhere.
func dataHome() (string, error) {
	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "Library", "Application Support"), nil
	case "windows":
		if dir := os.Getenv("APPDATA"); dir != "" {
			return dir, nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "AppData", "Roaming"), nil
	}
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share"), nil
}

// GetDataDir returns the application data directory, creating it.
func GetDataDir(sub ...string) (string, error) {
	base, err := dataHome()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(append([]string{base, appName}, sub...)...)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

// GetDatabaseDir returns the directory of the decision trace database.
func GetDatabaseDir() (string, error) {
	return GetDataDir("db")
}
