package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EnvPrefix is the prefix for all BizPilot environment overrides (BIZPILOT_*).
const EnvPrefix = "bizpilot"

type SystemConfig struct {
	DataDirectory string `toml:"data_directory"`
}

type ProviderConfig struct {
	Type    string `toml:"type"`
	BaseURL string `toml:"base_url"`
	Model   string `toml:"model"`
	APIKey  string `toml:"api_key,omitempty"`
}

type DictationConfig struct {
	Command string `toml:"command"`
}

type UserConfig struct {
	Provider                 ProviderConfig    `toml:"provider"`
	SystemPrompt             string            `toml:"system_prompt,omitempty"`
	TokenDelayMs             int               `toml:"token_delay_ms"`
	GenerationTimeoutSeconds int               `toml:"generation_timeout_seconds"`
	Dictation                DictationConfig   `toml:"dictation"`
	Keybindings              KeyBindingsConfig `toml:"keybindings"`
}

// EnvOverrides holds the BIZPILOT_* environment variables.
type EnvOverrides struct {
	Provider string
	BaseURL  string `split_words:"true"`
	Model    string
	APIKey   string `split_words:"true"`
	DataDir  string `split_words:"true"`
	Debug    bool
}

type Config struct {
	DataDirectory     string
	ProviderType      string
	ProviderBaseURL   string
	ProviderModel     string
	APIKey            string
	SystemPrompt      string
	TokenDelay        time.Duration
	GenerationTimeout time.Duration
	DictationCommand  string
	Keybindings       *KeyBindingsConfig
}

var Debug = false

// DebugLog is a no-op logger until InitDebugLog enables file logging.
var DebugLog = zap.NewNop().Sugar()

func (c *Config) DataDir() string {
	return ExpandPath(c.DataDirectory)
}

// IsCloudProvider reports whether the configured provider needs an API key.
func (c *Config) IsCloudProvider() bool {
	switch c.ProviderType {
	case "gemini", "openai", "openrouter", "anthropic":
		return true
	}
	return false
}

// Validate checks the provider section after files and env have been merged.
func (c *Config) Validate() error {
	switch c.ProviderType {
	case "backend", "gemini", "openai", "openrouter", "anthropic", "ollama":
	default:
		return fmt.Errorf("unknown provider type: %q", c.ProviderType)
	}
	if c.IsCloudProvider() && c.APIKey == "" {
		return fmt.Errorf("provider %s requires an API key (set api_key or BIZPILOT_API_KEY)", c.ProviderType)
	}
	if c.TokenDelay < 0 {
		return fmt.Errorf("token_delay_ms must not be negative")
	}
	if c.GenerationTimeout <= 0 {
		return fmt.Errorf("generation_timeout_seconds must be positive")
	}
	return nil
}

// LoadEnvOverrides reads BIZPILOT_* variables. A bare API_KEY is accepted as a
// fallback for the credential.
func LoadEnvOverrides() (*EnvOverrides, error) {
	env := &EnvOverrides{}
	if err := envconfig.Process(EnvPrefix, env); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	if env.APIKey == "" {
		env.APIKey = os.Getenv("API_KEY")
	}
	return env, nil
}

func (c *Config) applyUserConfig(u *UserConfig) {
	c.ProviderType = strings.ToLower(strings.TrimSpace(u.Provider.Type))
	c.ProviderBaseURL = u.Provider.BaseURL
	c.ProviderModel = u.Provider.Model
	c.APIKey = u.Provider.APIKey
	c.SystemPrompt = u.SystemPrompt
	c.TokenDelay = time.Duration(u.TokenDelayMs) * time.Millisecond
	c.GenerationTimeout = time.Duration(u.GenerationTimeoutSeconds) * time.Second
	c.DictationCommand = u.Dictation.Command
	kb := u.Keybindings
	c.Keybindings = &kb
}

func (c *Config) applyEnvOverrides(env *EnvOverrides) {
	if env.Provider != "" {
		c.ProviderType = strings.ToLower(strings.TrimSpace(env.Provider))
	}
	if env.BaseURL != "" {
		c.ProviderBaseURL = env.BaseURL
	}
	if env.Model != "" {
		c.ProviderModel = env.Model
	}
	if env.APIKey != "" {
		c.APIKey = env.APIKey
	}
}

// Load merges settings.toml, <data_directory>/config.toml and BIZPILOT_* env.
func Load() (*Config, error) {
	env, err := LoadEnvOverrides()
	if err != nil {
		return nil, err
	}

	systemCfg, err := LoadSystemConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load system config: %w", err)
	}

	cfg := &Config{DataDirectory: systemCfg.DataDirectory}
	if env.DataDir != "" {
		cfg.DataDirectory = env.DataDir
	}

	dataDir := cfg.DataDir()
	if err := ensurePrivateDir(dataDir); err != nil {
		return nil, fmt.Errorf("failed to prepare data directory: %w", err)
	}

	userCfg, err := LoadUserConfig(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}
	cfg.applyUserConfig(userCfg)
	cfg.applyEnvOverrides(env)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if w := cfg.Keybindings.ConflictWarning(); w != "" {
		DebugLog.Warnf("[Config] %s", w)
	}

	return cfg, nil
}

func CheckDebug() bool {
	env, err := LoadEnvOverrides()
	if err != nil {
		return false
	}
	return env.Debug
}

// InitDebugLog switches DebugLog to <dataDir>/debug.log when BIZPILOT_DEBUG is set.
// The terminal belongs to the UI, so nothing is ever logged to stdout or stderr.
func InitDebugLog(dataDir string) {
	if !CheckDebug() {
		return
	}

	logPath := filepath.Join(dataDir, "debug.log")

	// 0600 - may contain prompts and provider errors
	f, err := os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not open debug log at %s: %v\n", logPath, err)
		return
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.000000")
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(f), zapcore.DebugLevel)

	Debug = true
	DebugLog = zap.New(core, zap.AddCaller()).Sugar()
	DebugLog.Infof("=== Debug logging started ===")
	DebugLog.Infof("Log path: %s", logPath)
}

// SyncDebugLog flushes buffered log entries; call before exit.
func SyncDebugLog() {
	_ = DebugLog.Sync()
}
