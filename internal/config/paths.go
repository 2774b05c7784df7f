package config

import (
	"os"
	"path/filepath"
	"runtime"
)

const (
	// AppName is the application name used for config and log directories.
	AppName = "svcwrap"
	// ConfigFileName is the default file backing the file-based store.
	ConfigFileName = "services.toml"
	// EnvPrefix is the prefix for environment variable overrides.
	EnvPrefix = "SVCWRAP"
)

// DefaultConfigDir returns the default configuration directory for the current OS.
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "windows":
		// %ProgramData%\svcwrap; services run as LocalSystem, not a user profile
		programData := os.Getenv("ProgramData")
		if programData == "" {
			programData = `C:\ProgramData`
		}
		return filepath.Join(programData, AppName), nil

	case "darwin":
		// ~/Library/Application Support/svcwrap
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "Library", "Application Support", AppName), nil

	default:
		// $XDG_CONFIG_HOME/svcwrap or ~/.config/svcwrap
		if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
			return filepath.Join(xdgConfig, AppName), nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", AppName), nil
	}
}

// DefaultConfigPath returns the full path to the default config file.
func DefaultConfigPath() (string, error) {
	dir, err := DefaultConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

// DefaultLogDir returns the default log directory for the current OS.
func DefaultLogDir() (string, error) {
	switch runtime.GOOS {
	case "windows":
		dir, err := DefaultConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, "logs"), nil

	case "darwin":
		// ~/Library/Logs/svcwrap
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "Library", "Logs", AppName), nil

	default:
		// $XDG_STATE_HOME/svcwrap or ~/.local/state/svcwrap
		if xdgState := os.Getenv("XDG_STATE_HOME"); xdgState != "" {
			return filepath.Join(xdgState, AppName), nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".local", "state", AppName), nil
	}
}
