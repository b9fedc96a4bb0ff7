package provider

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bizpilot/config"
)

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		expectError bool
		wantName    string
		wantModel   string
	}{
		{
			name:      "backend with defaults",
			config:    Config{Type: ProviderTypeBackend},
			wantName:  "backend",
			wantModel: "",
		},
		{
			name:        "backend with bad URL",
			config:      Config{Type: ProviderTypeBackend, BaseURL: "localhost:8000"},
			expectError: true,
		},
		{
			name:      "ollama with defaults",
			config:    Config{Type: ProviderTypeOllama},
			wantName:  "ollama",
			wantModel: "llama3.1:latest",
		},
		{
			name:      "openai",
			config:    Config{Type: ProviderTypeOpenAI, APIKey: "test-key"},
			wantName:  "openai",
			wantModel: "gpt-4o-mini",
		},
		{
			name:      "openrouter with model",
			config:    Config{Type: ProviderTypeOpenRouter, APIKey: "test-key", Model: "meta-llama/llama-3.3-70b-instruct"},
			wantName:  "openrouter",
			wantModel: "meta-llama/llama-3.3-70b-instruct",
		},
		{
			name:      "anthropic",
			config:    Config{Type: ProviderTypeAnthropic, APIKey: "test-key"},
			wantName:  "anthropic",
			wantModel: "claude-sonnet-4-5-20250929",
		},
		{
			name:        "openai without key",
			config:      Config{Type: ProviderTypeOpenAI},
			expectError: true,
		},
		{
			name:        "gemini without key",
			config:      Config{Type: ProviderTypeGemini},
			expectError: true,
		},
		{
			name:        "unknown provider type",
			config:      Config{Type: ProviderType("watson")},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProvider(tt.config)
			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, p)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, p)
			assert.Equal(t, tt.wantName, p.Name())
			assert.Equal(t, tt.wantModel, p.GetModel())
		})
	}
}

func TestParseProviderType(t *testing.T) {
	assert.Equal(t, ProviderTypeGemini, ParseProviderType(" Gemini "))
	assert.Equal(t, ProviderTypeBackend, ParseProviderType("backend"))
	assert.Equal(t, ProviderType("custom"), ParseProviderType("custom"))
}

func TestInitializeProvider(t *testing.T) {
	p, err := InitializeProvider(&config.Config{
		ProviderType:      "backend",
		ProviderBaseURL:   "http://127.0.0.1:9",
		TokenDelay:        10 * time.Millisecond,
		GenerationTimeout: 45 * time.Second,
	})
	require.NoError(t, err)

	backend, ok := p.(*BackendProvider)
	require.True(t, ok)
	assert.Equal(t, 10*time.Millisecond, backend.tokenDelay)
	assert.Equal(t, 45*time.Second, backend.timeout)
	assert.Equal(t, "http://127.0.0.1:9", backend.BaseURL())

	p, err = InitializeProvider(&config.Config{ProviderType: "backend"})
	require.NoError(t, err)
	assert.Equal(t, config.DefaultBackendURL, p.(*BackendProvider).BaseURL(), "empty base_url falls back per provider")

	p, err = InitializeProvider(&config.Config{ProviderType: "openai", APIKey: "sk-test", GenerationTimeout: time.Minute})
	require.NoError(t, err)
	assert.Equal(t, time.Minute, p.(*OpenAIProvider).timeout)

	_, err = InitializeProvider(&config.Config{ProviderType: "anthropic"})
	assert.Error(t, err)
}
