package provider

import (
	"fmt"
	"strings"

	"bizpilot/model"
)

// NewProvider creates a provider based on configuration.
//
// This is the centralized factory function for creating any provider type.
// Returns an error if the type is unknown or the provider-specific constructor
// fails (missing API key, invalid URL).
//
// Example (HTTP backend):
//
//	p, err := provider.NewProvider(provider.Config{
//	    Type:       provider.ProviderTypeBackend,
//	    BaseURL:    "http://localhost:8000",
//	    TokenDelay: 30 * time.Millisecond,
//	})
//
// Example (direct Gemini access):
//
//	p, err := provider.NewProvider(provider.Config{
//	    Type:         provider.ProviderTypeGemini,
//	    APIKey:       os.Getenv("API_KEY"),
//	    SystemPrompt: config.DefaultSystemPrompt,
//	})
func NewProvider(cfg Config) (model.Provider, error) {
	var (
		p   model.Provider
		err error
	)
	switch cfg.Type {
	case ProviderTypeBackend:
		p, err = NewBackendProvider(cfg.BaseURL, cfg.TokenDelay)
	case ProviderTypeGemini:
		p, err = NewGeminiProvider(cfg.APIKey, cfg.Model, cfg.SystemPrompt)
	case ProviderTypeOpenAI:
		p, err = NewOpenAIProvider(cfg.BaseURL, cfg.APIKey, cfg.Model, cfg.SystemPrompt)
	case ProviderTypeOpenRouter:
		p, err = NewOpenRouterProvider(cfg.BaseURL, cfg.APIKey, cfg.Model, cfg.SystemPrompt)
	case ProviderTypeAnthropic:
		p, err = NewAnthropicProvider(cfg.BaseURL, cfg.APIKey, cfg.Model, cfg.SystemPrompt)
	case ProviderTypeOllama:
		p, err = NewOllamaProvider(cfg.BaseURL, cfg.Model, cfg.SystemPrompt)
	default:
		return nil, fmt.Errorf("unknown provider type: %s", cfg.Type)
	}
	if err != nil {
		return nil, err
	}

	if ts, ok := p.(timeoutSetter); ok {
		ts.setRequestTimeout(cfg.RequestTimeout)
	}
	return p, nil
}

// ParseProviderType converts a config provider ID to a ProviderType.
// Matching is case-insensitive; unknown IDs pass through and the factory
// rejects them.
func ParseProviderType(id string) ProviderType {
	return ProviderType(strings.ToLower(strings.TrimSpace(id)))
}
