package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ConfigDir is $XDG_CONFIG_HOME/bizpilot, falling back to ~/.config/bizpilot
// on every platform.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "bizpilot")
	}
	return filepath.Join(homeDir(), ".config", "bizpilot")
}

func SettingsFilePath() string {
	return filepath.Join(ConfigDir(), "settings.toml")
}

func homeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return string(filepath.Separator)
}

// ExpandPath resolves a leading ~/ and $VARS in a configured path.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		path = filepath.Join(homeDir(), rest)
	}
	return filepath.Clean(os.ExpandEnv(path))
}

func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ensurePrivateDir creates dir if needed and tightens it to 0700; the data
// directory holds the API key and debug log.
func ensurePrivateDir(dir string) error {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}
	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if info.Mode().Perm() != 0700 {
		return os.Chmod(dir, 0700)
	}
	return nil
}
