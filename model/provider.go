package model

import "context"

// Provider abstracts the roadmap generation strategies (HTTP backend, direct
// model access through Gemini, OpenAI, OpenRouter, Anthropic or Ollama).
//
// This interface is defined in the model package (not provider package) to avoid
// import cycles: provider implementations import model, and model drives the
// Provider without importing the provider package.
type Provider interface {
	// Generate sends one request and streams text fragments back via callback.
	// Fragments must be delivered in order; a non-nil error means the call failed.
	Generate(ctx context.Context, req GenerationRequest, callback StreamCallback) error

	// ResetSession forgets any conversation state held by the provider.
	ResetSession()

	// Name returns the provider identifier shown in the status bar.
	Name() string

	// GetModel returns the model name, or an empty string when the provider
	// does not expose one (the HTTP backend).
	GetModel() string

	// Ping checks if the provider is reachable.
	Ping(ctx context.Context) error
}

// StreamCallback is called for each fragment of a streamed response.
type StreamCallback func(chunk string) error

// Dictation is the speech-to-text collaborator. Transcript returns everything
// recognized since the last StartListening. Done is closed when the current
// session ends, after which Err reports why; both are nil-safe to call before
// the first session.
type Dictation interface {
	StartListening(ctx context.Context) error
	StopListening() error
	Transcript() string
	Listening() bool
	Available() bool
	Done() <-chan struct{}
	Err() error
}
