package provider

import "bizpilot/model"

// Compile-time checks that every strategy satisfies model.Provider.
var (
	_ model.Provider = (*BackendProvider)(nil)
	_ model.Provider = (*GeminiProvider)(nil)
	_ model.Provider = (*OpenAIProvider)(nil)
	_ model.Provider = (*OpenRouterProvider)(nil)
	_ model.Provider = (*AnthropicProvider)(nil)
	_ model.Provider = (*OllamaProvider)(nil)
)
