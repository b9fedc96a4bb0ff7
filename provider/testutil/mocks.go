package testutil

import (
	"context"
	"sync"

	"bizpilot/model"
)

// MockProvider implements model.Provider for testing. Every call is recorded;
// behaviour is swapped by assigning the func fields.
type MockProvider struct {
	GenerateFunc func(ctx context.Context, req model.GenerationRequest, callback model.StreamCallback) error
	PingFunc     func(ctx context.Context) error

	mu        sync.Mutex
	requests  []model.GenerationRequest
	resets    int
	modelName string
}

// NewMockProvider creates a mock provider with default implementations
func NewMockProvider(modelName string) *MockProvider {
	mock := &MockProvider{modelName: modelName}
	mock.GenerateFunc = mock.defaultGenerate
	mock.PingFunc = func(ctx context.Context) error { return nil }
	return mock
}

func (m *MockProvider) defaultGenerate(ctx context.Context, req model.GenerationRequest, callback model.StreamCallback) error {
	return callback("Mock roadmap")
}

func (m *MockProvider) Generate(ctx context.Context, req model.GenerationRequest, callback model.StreamCallback) error {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()
	return m.GenerateFunc(ctx, req, callback)
}

func (m *MockProvider) ResetSession() {
	m.mu.Lock()
	m.resets++
	m.mu.Unlock()
}

func (m *MockProvider) Name() string { return "mock" }

func (m *MockProvider) GetModel() string { return m.modelName }

func (m *MockProvider) Ping(ctx context.Context) error {
	return m.PingFunc(ctx)
}

// Requests returns a copy of every request passed to Generate.
func (m *MockProvider) Requests() []model.GenerationRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.GenerationRequest, len(m.requests))
	copy(out, m.requests)
	return out
}

// Resets returns how many times ResetSession was called.
func (m *MockProvider) Resets() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resets
}

// StreamFragments returns a GenerateFunc that delivers fragments in order and
// then returns err.
func StreamFragments(err error, fragments ...string) func(context.Context, model.GenerationRequest, model.StreamCallback) error {
	return func(ctx context.Context, req model.GenerationRequest, callback model.StreamCallback) error {
		for _, f := range fragments {
			if cbErr := callback(f); cbErr != nil {
				return cbErr
			}
		}
		return err
	}
}

// BlockUntilCancelled returns a GenerateFunc that emits first, signals started
// and then waits for its context to end.
func BlockUntilCancelled(started chan<- struct{}, first string) func(context.Context, model.GenerationRequest, model.StreamCallback) error {
	return func(ctx context.Context, req model.GenerationRequest, callback model.StreamCallback) error {
		if first != "" {
			_ = callback(first)
		}
		close(started)
		<-ctx.Done()
		return ctx.Err()
	}
}
