package provider

import (
	"sync"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/ollama/ollama/api"
	"github.com/openai/openai-go/v3"
)

// chatMessage is one entry of a provider-owned conversation history.
type chatMessage struct {
	Role    string // "user" or "assistant"
	Content string
}

// history is the conversation a direct model provider replays on every call.
// An exchange is only committed once the reply completed, so a failed call
// leaves no dangling user turn behind.
type history struct {
	mu       sync.Mutex
	system   string
	messages []chatMessage
}

func newHistory(system string) *history {
	return &history{system: system}
}

// with returns the committed history followed by prompt as the next user turn.
func (h *history) with(prompt string) []chatMessage {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]chatMessage, 0, len(h.messages)+1)
	out = append(out, h.messages...)
	return append(out, chatMessage{Role: "user", Content: prompt})
}

func (h *history) commit(prompt, reply string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.messages = append(h.messages,
		chatMessage{Role: "user", Content: prompt},
		chatMessage{Role: "assistant", Content: reply},
	)
}

func (h *history) reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.messages = nil
}

func (h *history) len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.messages)
}

// toOpenAIMessages converts history to OpenAI format with the system prompt first.
func toOpenAIMessages(system string, messages []chatMessage) []openai.ChatCompletionMessageParamUnion {
	result := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages)+1)
	if system != "" {
		result = append(result, openai.SystemMessage(system))
	}
	for _, msg := range messages {
		switch msg.Role {
		case "assistant":
			result = append(result, openai.AssistantMessage(msg.Content))
		default:
			result = append(result, openai.UserMessage(msg.Content))
		}
	}
	return result
}

// toAnthropicMessages converts history to Anthropic format. Anthropic takes
// the system prompt as a separate parameter.
func toAnthropicMessages(messages []chatMessage) []anthropic.MessageParam {
	result := make([]anthropic.MessageParam, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case "assistant":
			result = append(result, anthropic.NewAssistantMessage(anthropic.NewTextBlock(msg.Content)))
		default:
			result = append(result, anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)))
		}
	}
	return result
}

// toOllamaMessages converts history to Ollama format with the system prompt first.
func toOllamaMessages(system string, messages []chatMessage) []api.Message {
	result := make([]api.Message, 0, len(messages)+1)
	if system != "" {
		result = append(result, api.Message{Role: "system", Content: system})
	}
	for _, msg := range messages {
		result = append(result, api.Message{Role: msg.Role, Content: msg.Content})
	}
	return result
}
