package provider

import (
	"fmt"

	"github.com/openai/openai-go/v3/option"
)

// OpenRouterProvider connects to OpenRouter's API, which is OpenAI-compatible,
// through the OpenAI provider.
type OpenRouterProvider struct {
	*OpenAIProvider
}

// NewOpenRouterProvider creates a new OpenRouter provider instance.
//
// Parameters:
//   - baseURL: OpenRouter API base URL (default: "https://openrouter.ai/api/v1")
//   - apiKey: OpenRouter API key (required)
//   - model: Model to use with vendor prefix (default: "google/gemini-2.5-pro")
//   - systemPrompt: Advisor persona sent ahead of every conversation
func NewOpenRouterProvider(baseURL, apiKey, model, systemPrompt string) (*OpenRouterProvider, error) {
	if baseURL == "" {
		baseURL = "https://openrouter.ai/api/v1"
	}
	if apiKey == "" {
		return nil, fmt.Errorf("OpenRouter API key is required")
	}
	if model == "" {
		model = "google/gemini-2.5-pro"
	}

	return &OpenRouterProvider{
		OpenAIProvider: newOpenAICompatible(string(ProviderTypeOpenRouter), model, systemPrompt,
			option.WithBaseURL(baseURL),
			option.WithAPIKey(apiKey),
			option.WithHeader("X-Title", "BizPilot"),
		),
	}, nil
}
