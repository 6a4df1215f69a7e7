// Package paths resolves where contactsim keeps its configuration file and
// its transcript database.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// AppName names the per-user directories.
const AppName = "contactsim"

// DefaultDataDirName is the working-directory transcript location used when
// no override is set.
const DefaultDataDirName = ".contactsim"

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "CONTACTSIM_CONFIG_DIR"
	EnvDataDir   = "CONTACTSIM_DATA_DIR"
)

// platformDir holds platform lookups that tests override.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// userDir returns the per-user directory for contactsim. On Linux it honours
// xdgVar and falls back to home/linuxFallback; elsewhere it uses
// os.UserConfigDir.
func userDir(xdgVar string, linuxFallback ...string) (string, error) {
	if runtime.GOOS != "linux" {
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, AppName), nil
	}
	if xdg := os.Getenv(xdgVar); xdg != "" {
		return filepath.Join(xdg, AppName), nil
	}
	home, err := platformDir.homeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(append(append([]string{home}, linuxFallback...), AppName)...), nil
}

// DefaultConfigDir returns the platform default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/contactsim (fallback ~/.config/contactsim)
// macOS:   ~/Library/Application Support/contactsim
// Windows: %APPDATA%/contactsim
func DefaultConfigDir() (string, error) {
	return userDir("XDG_CONFIG_HOME", ".config")
}

// DefaultUserDataDir returns the platform default per-user data directory.
//
// Linux:   $XDG_DATA_HOME/contactsim (fallback ~/.local/share/contactsim)
// macOS and Windows: same as DefaultConfigDir.
func DefaultUserDataDir() (string, error) {
	return userDir("XDG_DATA_HOME", ".local", "share")
}

// ResolveConfigDir applies flag > CONTACTSIM_CONFIG_DIR > DefaultConfigDir.
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveDataDir applies flag > configured value > CONTACTSIM_DATA_DIR >
// ./.contactsim.
func ResolveDataDir(flag, configured string) (string, error) {
	for _, dir := range []string{flag, configured, os.Getenv(EnvDataDir)} {
		if dir != "" {
			return filepath.Abs(dir)
		}
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDataDirName), nil
}
