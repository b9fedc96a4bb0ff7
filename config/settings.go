package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// decodeOrSeed decodes path into dst. A missing file is created from template
// and dst keeps its defaults. Keys absent from an existing file also keep
// their defaults, since toml only touches fields it finds.
func decodeOrSeed(path, template string, dst any) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, []byte(template), 0600); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		return nil
	} else if err != nil {
		return err
	}

	if _, err := toml.DecodeFile(path, dst); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func LoadSystemConfig() (*SystemConfig, error) {
	cfg := DefaultSystemConfig()
	if err := decodeOrSeed(SettingsFilePath(), GenerateSystemConfigTemplate(), cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadUserConfig reads <dataDir>/config.toml, including its [keybindings]
// section.
func LoadUserConfig(dataDir string) (*UserConfig, error) {
	cfg := DefaultUserConfig()
	if err := decodeOrSeed(filepath.Join(dataDir, "config.toml"), GenerateUserConfigTemplate(), cfg); err != nil {
		return nil, err
	}

	if cfg.SystemPrompt == "" {
		cfg.SystemPrompt = DefaultSystemPrompt
	}
	if err := cfg.Keybindings.normalize(); err != nil {
		return nil, fmt.Errorf("invalid keybindings: %w", err)
	}
	return cfg, nil
}
