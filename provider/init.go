package provider

import (
	"fmt"

	"bizpilot/config"
	"bizpilot/model"
)

// InitializeProvider creates the provider selected in cfg.
//
// The provider package owns the provider lifecycle, so mapping configuration
// onto a provider Config lives here, not in config or ui.
func InitializeProvider(cfg *config.Config) (model.Provider, error) {
	providerType := ParseProviderType(cfg.ProviderType)

	p, err := NewProvider(Config{
		Type:         providerType,
		BaseURL:      cfg.ProviderBaseURL,
		Model:        cfg.ProviderModel,
		APIKey:       cfg.APIKey,
		SystemPrompt: cfg.SystemPrompt,
		TokenDelay:   cfg.TokenDelay,

		RequestTimeout: cfg.GenerationTimeout,
	})
	if err != nil {
		config.DebugLog.Errorf("[Provider] failed to initialize %s: %v", providerType, err)
		return nil, fmt.Errorf("failed to initialize %s provider: %w", providerType, err)
	}

	config.DebugLog.Infof("[Provider] Initialized provider: %s (model: %q)", p.Name(), p.GetModel())
	return p, nil
}
