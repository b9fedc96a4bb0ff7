package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"bizpilot/model"
)

// anthropicMaxTokens is required by the Messages API; roadmaps are long.
const anthropicMaxTokens = 8192

// AnthropicProvider implements model.Provider using Anthropic's official Go SDK.
type AnthropicProvider struct {
	requestTimeout

	client  *anthropic.Client
	model   anthropic.Model
	history *history
}

// NewAnthropicProvider creates a new Anthropic provider instance.
//
// Parameters:
//   - baseURL: Anthropic API base URL (default: "https://api.anthropic.com")
//   - apiKey: Anthropic API key (required)
//   - model: Model to use (default: Claude Sonnet 4.5)
//   - systemPrompt: Advisor persona, sent as the system parameter
//
// Returns an error if the API key is missing.
func NewAnthropicProvider(baseURL, apiKey, model, systemPrompt string) (*AnthropicProvider, error) {
	if baseURL == "" {
		baseURL = "https://api.anthropic.com"
	}
	if apiKey == "" {
		return nil, fmt.Errorf("Anthropic API key is required")
	}

	anthropicModel := anthropic.ModelClaudeSonnet4_5_20250929
	if model != "" {
		anthropicModel = anthropic.Model(model)
	}

	client := anthropic.NewClient(
		option.WithBaseURL(baseURL),
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	)

	return &AnthropicProvider{
		client:  &client,
		model:   anthropicModel,
		history: newHistory(systemPrompt),
	}, nil
}

// Generate implements model.Provider with streaming messages.
func (p *AnthropicProvider) Generate(ctx context.Context, req model.GenerationRequest, callback model.StreamCallback) error {
	ctx, cancel := p.bound(ctx)
	defer cancel()

	params := anthropic.MessageNewParams{
		Model:       p.model,
		Messages:    toAnthropicMessages(p.history.with(req.Prompt)),
		MaxTokens:   anthropicMaxTokens,
		Temperature: anthropic.Float(defaultTemperature),
	}
	if p.history.system != "" {
		params.System = []anthropic.TextBlockParam{{Text: p.history.system}}
	}

	stream := p.client.Messages.NewStreaming(ctx, params)
	defer stream.Close()

	var reply strings.Builder
	for stream.Next() {
		event := stream.Current()

		switch eventVariant := event.AsAny().(type) {
		case anthropic.ContentBlockDeltaEvent:
			switch deltaVariant := eventVariant.Delta.AsAny().(type) {
			case anthropic.TextDelta:
				reply.WriteString(deltaVariant.Text)
				if callback != nil {
					if err := callback(deltaVariant.Text); err != nil {
						return err
					}
				}
			}
		}
	}

	if err := stream.Err(); err != nil {
		return fmt.Errorf("Anthropic streaming error: %w", err)
	}

	p.history.commit(req.Prompt, reply.String())
	return nil
}

// ResetSession implements model.Provider by clearing the history.
func (p *AnthropicProvider) ResetSession() {
	p.history.reset()
}

func (p *AnthropicProvider) Name() string { return string(ProviderTypeAnthropic) }

func (p *AnthropicProvider) GetModel() string { return string(p.model) }

// Ping implements model.Provider by listing models, which costs no tokens.
func (p *AnthropicProvider) Ping(ctx context.Context) error {
	_, err := p.client.Models.List(ctx, anthropic.ModelListParams{})
	if err != nil {
		return fmt.Errorf("Anthropic ping failed: %w", err)
	}
	return nil
}
