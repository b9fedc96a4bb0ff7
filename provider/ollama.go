package provider

import (
	"context"
	"fmt"
	"strings"

	"bizpilot/model"
	"bizpilot/ollama"
)

// OllamaProvider wraps ollama.Client to implement model.Provider against a
// local or self-hosted Ollama server.
type OllamaProvider struct {
	requestTimeout

	client  *ollama.Client
	history *history
}

// NewOllamaProvider creates a new Ollama provider instance.
//
// Parameters:
//   - baseURL: The Ollama server URL (default: "http://localhost:11434")
//   - model: The model name to use (default: "llama3.1:latest")
//   - systemPrompt: Advisor persona sent as the first system message
//
// Returns an error if the baseURL is invalid.
func NewOllamaProvider(baseURL, model, systemPrompt string) (*OllamaProvider, error) {
	client, err := ollama.NewClient(baseURL, model)
	if err != nil {
		return nil, fmt.Errorf("failed to create Ollama client: %w", err)
	}
	client.SetOptions(map[string]any{
		"temperature": defaultTemperature,
		"top_p":       defaultTopP,
	})

	return &OllamaProvider{
		client:  client,
		history: newHistory(systemPrompt),
	}, nil
}

// Generate implements model.Provider.
func (p *OllamaProvider) Generate(ctx context.Context, req model.GenerationRequest, callback model.StreamCallback) error {
	ctx, cancel := p.bound(ctx)
	defer cancel()

	messages := toOllamaMessages(p.history.system, p.history.with(req.Prompt))

	var reply strings.Builder
	err := p.client.Chat(ctx, messages, func(chunk string) error {
		reply.WriteString(chunk)
		if callback != nil {
			return callback(chunk)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("Ollama chat error: %w", err)
	}

	p.history.commit(req.Prompt, reply.String())
	return nil
}

// ResetSession implements model.Provider by clearing the history.
func (p *OllamaProvider) ResetSession() {
	p.history.reset()
}

func (p *OllamaProvider) Name() string { return string(ProviderTypeOllama) }

func (p *OllamaProvider) GetModel() string { return p.client.GetModel() }

// Ping implements model.Provider. A reachable server without the configured
// model pulled is reported as an error too.
func (p *OllamaProvider) Ping(ctx context.Context) error {
	if err := p.client.Ping(ctx); err != nil {
		return err
	}
	ok, err := p.client.HasModel(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("model %s is not available on %s (run: ollama pull %s)", p.client.GetModel(), p.client.BaseURL(), p.client.GetModel())
	}
	return nil
}
