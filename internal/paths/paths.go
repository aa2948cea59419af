// Package paths resolves configuration and data directory locations for
// the probe CLI.
// See docs/ARCHITECTURE.md § CLI and Client.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// DefaultDataDirName is the CWD-relative data directory used when no
// override is active. Keeping snapshot databases next to the project
// being worked on is the primary mode.
const DefaultDataDirName = ".probe-db"

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "PROBE_CONFIG_DIR"
	EnvDataDir   = "PROBE_DATA_DIR"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/probe (fallback ~/.config/probe)
// macOS:   ~/Library/Application Support/probe
// Windows: %APPDATA%/probe
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "probe"), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", "probe"), nil
	default:
		// macOS and Windows use os.UserConfigDir which returns
		// ~/Library/Application Support on macOS and %APPDATA% on Windows.
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, "probe"), nil
	}
}

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > PROBE_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveDataDir returns the data directory following the precedence
// chain: flag > config.yaml value > PROBE_DATA_DIR env >
// $(CWD)/.probe-db.
func ResolveDataDir(flag, configYAMLValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configYAMLValue != "" {
		return filepath.Abs(configYAMLValue)
	}
	if env := os.Getenv(EnvDataDir); env != "" {
		return filepath.Abs(env)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDataDirName), nil
}
