// Package provider implements the roadmap generation strategies.
//
// BizPilot talks to exactly one generation service per run, selected by
// configuration. Every strategy implements model.Provider, so the transcript
// controller stays unaware of which one is in use.
//
// # Strategies
//
//   - BackendProvider posts the structured idea to the BizPilot HTTP backend
//     (POST /generate-roadmap) and replays the returned roadmap word by word.
//   - GeminiProvider, OpenAIProvider, OpenRouterProvider, AnthropicProvider and
//     OllamaProvider call a language model directly and stream its output.
//     Each owns its conversation history so follow-up questions keep context;
//     ResetSession starts over.
//
// # Usage
//
//	p, err := provider.NewProvider(provider.Config{
//	    Type:    provider.ProviderTypeBackend,
//	    BaseURL: "http://localhost:8000",
//	})
//	if err != nil {
//	    // handle error
//	}
//	err = p.Generate(ctx, model.NewInitialRequest(idea), callback)
package provider

import "time"

// Note: The Provider interface and StreamCallback are defined in the model package
// (model/provider.go) to avoid import cycles. This package implements model.Provider.

// ProviderType identifies the provider implementation.
type ProviderType string

const (
	ProviderTypeBackend    ProviderType = "backend"
	ProviderTypeGemini     ProviderType = "gemini"
	ProviderTypeOpenAI     ProviderType = "openai"
	ProviderTypeOpenRouter ProviderType = "openrouter"
	ProviderTypeAnthropic  ProviderType = "anthropic"
	ProviderTypeOllama     ProviderType = "ollama"
)

// Config holds provider-specific configuration.
type Config struct {
	Type         ProviderType
	BaseURL      string
	Model        string
	APIKey       string        // Gemini, OpenAI, OpenRouter and Anthropic
	SystemPrompt string        // Direct model providers only
	TokenDelay   time.Duration // Backend only: pause between replayed words

	// RequestTimeout bounds each call to the service (zero: no limit).
	// The backend's word replay runs outside it.
	RequestTimeout time.Duration
}

// Sampling parameters shared by the direct model providers.
const (
	defaultTemperature = 0.7
	defaultTopP        = 0.95
)
