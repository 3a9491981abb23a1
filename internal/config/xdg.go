package config

import (
	"os"
	"path/filepath"
)

// XDGConfigHome returns $XDG_CONFIG_HOME or ~/.config.
func XDGConfigHome() string { return xdgDir("XDG_CONFIG_HOME", ".config") }

// XDGDataHome returns $XDG_DATA_HOME or ~/.local/share.
func XDGDataHome() string { return xdgDir("XDG_DATA_HOME", ".local", "share") }

// XDGStateHome returns $XDG_STATE_HOME or ~/.local/state.
func XDGStateHome() string { return xdgDir("XDG_STATE_HOME", ".local", "state") }

// xdgDir resolves an XDG base directory: the env var when set, else the
// fallback under the home directory, else ".".
func xdgDir(env string, fallback ...string) string {
	if v := os.Getenv(env); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(append([]string{home}, fallback...)...)
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), "solar-terminal", "config.toml")
}

// DefaultDBPath returns the default path for the fetch journal.
func DefaultDBPath() string {
	return filepath.Join(XDGDataHome(), "solar-terminal", "journal.db")
}

// DefaultLogPath returns the default dashboard log file.
func DefaultLogPath() string {
	return filepath.Join(XDGStateHome(), "solar-terminal", "solar-terminal.log")
}
