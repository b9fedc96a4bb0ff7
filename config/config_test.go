package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points every config path at a temp dir and clears BIZPILOT_* vars.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	for _, v := range []string{"PROVIDER", "BASE_URL", "MODEL", "API_KEY", "DATA_DIR", "DEBUG"} {
		unsetenv(t, "BIZPILOT_"+v)
	}
	unsetenv(t, "API_KEY")
	return home
}

// unsetenv removes key for the duration of the test; t.Setenv restores it.
func unsetenv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func TestLoadCreatesDefaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".local", "share", "bizpilot"), cfg.DataDir())
	assert.Equal(t, "backend", cfg.ProviderType)
	assert.Empty(t, cfg.ProviderBaseURL, "each provider picks its own endpoint")
	assert.Equal(t, 30*time.Millisecond, cfg.TokenDelay)
	assert.Equal(t, 120*time.Second, cfg.GenerationTimeout)
	assert.Equal(t, DefaultSystemPrompt, cfg.SystemPrompt)
	require.NotNil(t, cfg.Keybindings)

	assert.Equal(t, "alt+n", cfg.Keybindings.GetActionKey("new_conversation"))

	assert.True(t, FileExists(SettingsFilePath()))
	assert.True(t, FileExists(filepath.Join(cfg.DataDir(), "config.toml")))

	// the seeded template must load back to the same values
	again, err := Load()
	require.NoError(t, err)
	assert.Equal(t, cfg.ProviderType, again.ProviderType)
	assert.Equal(t, cfg.TokenDelay, again.TokenDelay)
	assert.Equal(t, "alt+A", again.Keybindings.GetActionKey("about"))

	info, err := os.Stat(cfg.DataDir())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0700), info.Mode().Perm())
}

func TestLoadUserConfigFile(t *testing.T) {
	home := isolate(t)
	dataDir := filepath.Join(home, "data")
	t.Setenv("BIZPILOT_DATA_DIR", dataDir)

	require.NoError(t, os.MkdirAll(dataDir, 0700))
	content := `
token_delay_ms = 0
generation_timeout_seconds = 45

[provider]
type = "ollama"
base_url = "http://gpu-box:11434"
model = "llama3.1:latest"

[dictation]
command = "stt --stdout"

[keybindings]
primary = "ctrl"

[keybindings.actions]
quit = "ctrl+shift+q"
`
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "config.toml"), []byte(content), 0600))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "ollama", cfg.ProviderType)
	assert.Equal(t, "http://gpu-box:11434", cfg.ProviderBaseURL)
	assert.Equal(t, "llama3.1:latest", cfg.ProviderModel)
	assert.Equal(t, time.Duration(0), cfg.TokenDelay)
	assert.Equal(t, 45*time.Second, cfg.GenerationTimeout)
	assert.Equal(t, "stt --stdout", cfg.DictationCommand)
	// system_prompt omitted from the file falls back to the default persona
	assert.Equal(t, DefaultSystemPrompt, cfg.SystemPrompt)
	assert.Equal(t, "ctrl+n", cfg.Keybindings.GetActionKey("new_conversation"))
	assert.Equal(t, "alt+G", cfg.Keybindings.GetActionKey("scroll_to_bottom"), "secondary keeps its default")
	assert.Equal(t, "ctrl+shift+q", cfg.Keybindings.GetActionKey("quit"))
}

func TestLoadRejectsBadKeybindings(t *testing.T) {
	tests := []struct {
		name    string
		section string
	}{
		{"bare shift", "[keybindings]\nprimary = \"shift\"\n"},
		{"unknown action", "[keybindings.actions]\nlaunch = \"alt+l\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			home := isolate(t)
			dataDir := filepath.Join(home, "data")
			t.Setenv("BIZPILOT_DATA_DIR", dataDir)
			require.NoError(t, os.MkdirAll(dataDir, 0700))
			require.NoError(t, os.WriteFile(filepath.Join(dataDir, "config.toml"), []byte(tt.section), 0600))

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid keybindings")
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("BIZPILOT_PROVIDER", "Gemini")
	t.Setenv("BIZPILOT_MODEL", "gemini-2.5-flash")
	t.Setenv("BIZPILOT_API_KEY", "env-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "gemini", cfg.ProviderType)
	assert.Equal(t, "gemini-2.5-flash", cfg.ProviderModel)
	assert.Equal(t, "env-key", cfg.APIKey)
}

func TestSwitchingProviderKeepsItsOwnEndpoint(t *testing.T) {
	for _, provider := range []string{"openai", "openrouter", "anthropic", "ollama"} {
		t.Run(provider, func(t *testing.T) {
			isolate(t)
			t.Setenv("BIZPILOT_PROVIDER", provider)
			t.Setenv("BIZPILOT_API_KEY", "sk-test")

			cfg, err := Load()
			require.NoError(t, err)
			assert.Equal(t, provider, cfg.ProviderType)
			assert.Empty(t, cfg.ProviderBaseURL)
		})
	}
}

func TestProviderTypeFromFileIsCaseInsensitive(t *testing.T) {
	home := isolate(t)
	dataDir := filepath.Join(home, "data")
	t.Setenv("BIZPILOT_DATA_DIR", dataDir)
	t.Setenv("BIZPILOT_API_KEY", "k")
	require.NoError(t, os.MkdirAll(dataDir, 0700))
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "config.toml"), []byte("[provider]\ntype = \" Gemini \"\n"), 0600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "gemini", cfg.ProviderType)
}

func TestBareAPIKeyFallback(t *testing.T) {
	isolate(t)
	t.Setenv("API_KEY", "legacy-key")

	env, err := LoadEnvOverrides()
	require.NoError(t, err)
	assert.Equal(t, "legacy-key", env.APIKey)

	t.Setenv("BIZPILOT_API_KEY", "preferred")
	env, err = LoadEnvOverrides()
	require.NoError(t, err)
	assert.Equal(t, "preferred", env.APIKey)
}

func TestLoadRejectsCloudProviderWithoutKey(t *testing.T) {
	isolate(t)
	t.Setenv("BIZPILOT_PROVIDER", "anthropic")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires an API key")
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{ProviderType: "backend", GenerationTimeout: time.Minute}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"backend without key", func(c *Config) {}, false},
		{"ollama without key", func(c *Config) { c.ProviderType = "ollama" }, false},
		{"openai with key", func(c *Config) { c.ProviderType = "openai"; c.APIKey = "k" }, false},
		{"openrouter without key", func(c *Config) { c.ProviderType = "openrouter" }, true},
		{"unknown type", func(c *Config) { c.ProviderType = "watson" }, true},
		{"negative delay", func(c *Config) { c.TokenDelay = -time.Millisecond }, true},
		{"zero timeout", func(c *Config) { c.GenerationTimeout = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	t.Setenv("HOME", "/home/founder")
	t.Setenv("BIZ_ROOT", "/srv/biz")

	assert.Equal(t, "/home/founder/.local/share/bizpilot", ExpandPath("~/.local/share/bizpilot"))
	assert.Equal(t, "/srv/biz/data", ExpandPath("$BIZ_ROOT/data"))
	assert.Equal(t, "", ExpandPath(""))
}
