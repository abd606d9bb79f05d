// Package xdg provides user-level path management following XDG Base
// Directory conventions. Project-local paths (.nanobench/config.toml,
// nanobench.toml) remain in internal/config.
package xdg

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
)

const appName = "nanobench"

// ConfigHome returns $XDG_CONFIG_HOME or ~/.config.
func ConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join("~", ".config")
	}

	return filepath.Join(home, ".config")
}

// StateHome returns $XDG_STATE_HOME or ~/.local/state.
func StateHome() string {
	if v := os.Getenv("XDG_STATE_HOME"); v != "" {
		return v
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join("~", ".local", "state")
	}

	return filepath.Join(home, ".local", "state")
}

// ConfigDir returns ConfigHome()/nanobench.
func ConfigDir() string {
	return filepath.Join(ConfigHome(), appName)
}

// StateDir returns StateHome()/nanobench.
func StateDir() string {
	return filepath.Join(StateHome(), appName)
}

// GlobalConfigFile returns ConfigDir()/config.toml, the user-level
// configuration overridden by project config, environment and flags.
func GlobalConfigFile() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// LogFile returns the default log file path, StateDir()/nanobench.log.
func LogFile() string {
	return filepath.Join(StateDir(), appName+".log")
}

// ExpandPath resolves a ~ prefix to the user's home directory. Paths
// without the prefix pass through unchanged. "~foo" is rejected.
func ExpandPath(path string) (string, error) {
	if len(path) == 0 || path[0] != '~' {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get home directory")
	}

	switch {
	case path == "~":
		return home, nil
	case strings.HasPrefix(path, "~/"):
		return filepath.Join(home, path[2:]), nil
	default:
		return "", errors.Newf("paths starting with ~ must be either ~ or ~/subdir, got %q", path)
	}
}

// ExpandPathSilent resolves a ~ prefix, returning the original path on
// error.
func ExpandPathSilent(path string) string {
	expanded, err := ExpandPath(path)
	if err != nil {
		return path
	}

	return expanded
}

// EnsureDir creates a directory with 0700 permissions if it doesn't exist,
// and fixes permissions on existing directories if they're too open.
func EnsureDir(path string) error {
	const dirMode = 0o700

	if err := os.MkdirAll(path, dirMode); err != nil {
		return errors.Wrapf(err, "failed to create directory %s", path)
	}

	// MkdirAll only sets perms on new dirs. Fix existing ones if too open.
	info, err := os.Stat(path)
	if err != nil {
		return errors.Wrapf(err, "failed to stat directory %s", path)
	}

	if info.Mode().Perm() != dirMode {
		if err := os.Chmod(path, dirMode); err != nil {
			return errors.Wrapf(err, "failed to set permissions on %s", path)
		}
	}

	return nil
}
