package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"bizpilot/config"
	"bizpilot/model"
)

const defaultGeminiModel = "gemini-2.5-pro"

// GeminiProvider talks to Gemini directly. The chat session is created on
// first use and lives as long as the provider, so follow-ups keep context
// until ResetSession.
type GeminiProvider struct {
	requestTimeout

	client    *genai.Client
	model     *genai.GenerativeModel
	modelName string

	mu      sync.Mutex
	session *genai.ChatSession
}

// NewGeminiProvider creates a Gemini provider. The API key is required.
func NewGeminiProvider(apiKey, modelName, systemPrompt string) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}
	if modelName == "" {
		modelName = defaultGeminiModel
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	m := client.GenerativeModel(modelName)
	m.SetTemperature(defaultTemperature)
	m.SetTopP(defaultTopP)
	if systemPrompt != "" {
		m.SystemInstruction = genai.NewUserContent(genai.Text(systemPrompt))
	}

	return &GeminiProvider{
		client:    client,
		model:     m,
		modelName: modelName,
	}, nil
}

func (p *GeminiProvider) chat() *genai.ChatSession {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.session == nil {
		config.DebugLog.Debugf("[Gemini] starting chat session with %s", p.modelName)
		p.session = p.model.StartChat()
	}
	return p.session
}

// Generate implements model.Provider.
func (p *GeminiProvider) Generate(ctx context.Context, req model.GenerationRequest, callback model.StreamCallback) error {
	ctx, cancel := p.bound(ctx)
	defer cancel()

	cs := p.chat()
	committed := len(cs.History)

	iter := cs.SendMessageStream(ctx, genai.Text(req.Prompt))
	for {
		resp, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			return nil
		}
		if err != nil {
			// The session records the prompt up front; drop it so the next
			// request does not carry two user turns in a row.
			if len(cs.History) > committed {
				cs.History = cs.History[:committed]
			}
			return fmt.Errorf("Gemini streaming error: %w", err)
		}

		if text := responseText(resp); text != "" && callback != nil {
			if err := callback(text); err != nil {
				return err
			}
		}
	}
}

// responseText joins the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	return b.String()
}

// ResetSession implements model.Provider; the next Generate starts a new chat.
func (p *GeminiProvider) ResetSession() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.session = nil
}

func (p *GeminiProvider) Name() string { return string(ProviderTypeGemini) }

func (p *GeminiProvider) GetModel() string { return p.modelName }

// Ping implements model.Provider with a token count, which generates nothing.
func (p *GeminiProvider) Ping(ctx context.Context) error {
	if _, err := p.model.CountTokens(ctx, genai.Text("ping")); err != nil {
		return fmt.Errorf("Gemini ping failed: %w", err)
	}
	return nil
}

// Close releases the underlying client connection.
func (p *GeminiProvider) Close() error {
	return p.client.Close()
}
