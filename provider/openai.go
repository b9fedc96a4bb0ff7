package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"bizpilot/model"
)

// OpenAIProvider implements model.Provider using OpenAI's official Go SDK.
// OpenRouterProvider reuses it against OpenRouter's compatible API.
type OpenAIProvider struct {
	requestTimeout

	client  openai.Client
	model   string
	name    string
	history *history
}

// NewOpenAIProvider creates a new OpenAI provider instance.
//
// Parameters:
//   - baseURL: OpenAI API base URL (default: "https://api.openai.com/v1")
//   - apiKey: OpenAI API key (required)
//   - model: Model to use (default: "gpt-4o-mini")
//   - systemPrompt: Advisor persona sent ahead of every conversation
//
// Returns an error if the API key is missing.
func NewOpenAIProvider(baseURL, apiKey, model, systemPrompt string) (*OpenAIProvider, error) {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	if model == "" {
		model = "gpt-4o-mini"
	}

	return newOpenAICompatible(string(ProviderTypeOpenAI), model, systemPrompt,
		option.WithBaseURL(baseURL),
		option.WithAPIKey(apiKey),
	), nil
}

func newOpenAICompatible(name, model, systemPrompt string, opts ...option.RequestOption) *OpenAIProvider {
	// One attempt per generation; the user retries by asking again.
	opts = append(opts, option.WithMaxRetries(0))
	return &OpenAIProvider{
		client:  openai.NewClient(opts...),
		model:   model,
		name:    name,
		history: newHistory(systemPrompt),
	}
}

// Generate implements model.Provider with streaming chat completions.
func (p *OpenAIProvider) Generate(ctx context.Context, req model.GenerationRequest, callback model.StreamCallback) error {
	ctx, cancel := p.bound(ctx)
	defer cancel()

	params := openai.ChatCompletionNewParams{
		Messages:    toOpenAIMessages(p.history.system, p.history.with(req.Prompt)),
		Model:       openai.ChatModel(p.model),
		Temperature: openai.Float(defaultTemperature),
		TopP:        openai.Float(defaultTopP),
	}

	stream := p.client.Chat.Completions.NewStreaming(ctx, params)
	defer stream.Close()

	var reply strings.Builder
	for stream.Next() {
		chunk := stream.Current()
		if len(chunk.Choices) == 0 || chunk.Choices[0].Delta.Content == "" {
			continue
		}
		content := chunk.Choices[0].Delta.Content
		reply.WriteString(content)
		if callback != nil {
			if err := callback(content); err != nil {
				return err
			}
		}
	}

	if err := stream.Err(); err != nil {
		return fmt.Errorf("%s streaming error: %w", p.name, err)
	}

	p.history.commit(req.Prompt, reply.String())
	return nil
}

// ResetSession implements model.Provider by clearing the history.
func (p *OpenAIProvider) ResetSession() {
	p.history.reset()
}

func (p *OpenAIProvider) Name() string { return p.name }

func (p *OpenAIProvider) GetModel() string { return p.model }

// Ping implements model.Provider by attempting to list models.
func (p *OpenAIProvider) Ping(ctx context.Context) error {
	_, err := p.client.Models.List(ctx)
	if err != nil {
		return fmt.Errorf("%s ping failed: %w", p.name, err)
	}
	return nil
}
