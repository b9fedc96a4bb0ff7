package model

import (
	"context"
	"errors"

	"bizpilot/config"
)

// FallbackMessage is delivered as a final fragment when a generation fails.
const FallbackMessage = "I'm sorry, but I encountered an issue while generating the roadmap. Please check your connection or API key and try again."

var errNoProvider = errors.New("no generation provider configured")

// Callbacks receives the outcome of one Generate call. OnComplete fires exactly
// once, after the last OnStream, on success and failure alike.
type Callbacks struct {
	OnStream   func(chunk string)
	OnComplete func()
	OnError    func(err error)
}

// Generator is the roadmap generation client. It makes a single attempt per
// call and never retries; callers guarantee one call in flight at a time.
type Generator struct {
	provider Provider
}

func NewGenerator(p Provider) *Generator {
	return &Generator{provider: p}
}

func (g *Generator) Provider() Provider {
	return g.provider
}

// Generate runs req against the provider and reports through cb. It does not
// return an error: failures surface as FallbackMessage on OnStream followed by
// OnError.
func (g *Generator) Generate(ctx context.Context, req GenerationRequest, cb Callbacks) {
	defer func() {
		if cb.OnComplete != nil {
			cb.OnComplete()
		}
	}()

	stream := func(chunk string) {
		if chunk != "" && cb.OnStream != nil {
			cb.OnStream(chunk)
		}
	}

	var err error
	if g.provider == nil {
		err = errNoProvider
	} else {
		err = g.provider.Generate(ctx, req, func(chunk string) error {
			stream(chunk)
			return nil
		})
	}

	if err != nil {
		config.DebugLog.Warnf("[Generator] generation failed (follow-up=%v): %v", req.FollowUp, err)
		stream(FallbackMessage)
		if cb.OnError != nil {
			cb.OnError(err)
		}
	}
}
