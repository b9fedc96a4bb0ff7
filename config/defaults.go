package config

// DefaultSystemPrompt is the advisor persona sent to direct-model providers.
const DefaultSystemPrompt = "You are BizPilot, an expert business advisor specializing in the startup ecosystem, tax laws, and registration processes in Bangladesh. Your goal is to provide a clear, actionable, step-by-step roadmap for entrepreneurs. Use markdown for clear formatting, including headings, lists, and bold text. Make your advice practical and specific to Bangladesh."

const (
	DefaultProviderType             = "backend"
	DefaultBackendURL               = "http://localhost:8000"
	DefaultTokenDelayMs             = 30
	DefaultGenerationTimeoutSeconds = 120
)

func DefaultSystemConfig() *SystemConfig {
	return &SystemConfig{
		DataDirectory: "~/.local/share/bizpilot",
	}
}

func DefaultUserConfig() *UserConfig {
	return &UserConfig{
		Provider: ProviderConfig{
			Type: DefaultProviderType,
		},
		SystemPrompt:             DefaultSystemPrompt,
		TokenDelayMs:             DefaultTokenDelayMs,
		GenerationTimeoutSeconds: DefaultGenerationTimeoutSeconds,
		Keybindings:              *DefaultKeybindings(),
	}
}

func GenerateSystemConfigTemplate() string {
	return `# BizPilot System Configuration
# Location: ~/.config/bizpilot/settings.toml
# This file uses TOML format: https://toml.io

# Directory where config.toml and the debug log are stored
data_directory = "~/.local/share/bizpilot"
`
}

func GenerateUserConfigTemplate() string {
	return `# BizPilot User Configuration
# Location: <data_directory>/config.toml
# This file uses TOML format: https://toml.io

# Top-level keys must stay above the first [section].

# Advisor persona for direct providers (ignored by the backend)
# system_prompt = ""

# Delay between words when the backend returns a whole roadmap at once
token_delay_ms = 30

# Upper bound for a single roadmap request
generation_timeout_seconds = 120

[provider]
# Where roadmaps come from:
#   backend    - BizPilot roadmap API (POST /generate-roadmap)
#   gemini     - Google Gemini directly (needs api_key)
#   openai     - OpenAI (needs api_key)
#   openrouter - OpenRouter (needs api_key)
#   anthropic  - Anthropic (needs api_key)
#   ollama     - local Ollama server
type = "backend"

# Endpoint override; empty uses the selected provider's own default
# (backend: http://localhost:8000)
# base_url = ""

# Model name for direct providers (empty = provider default)
model = ""

# API key for cloud providers. BIZPILOT_API_KEY overrides this.
# api_key = ""

[dictation]
# External speech-to-text command; each line it prints is appended to the
# message being dictated. Leave empty to disable dictation.
# Example: command = "whisper-stream --stdout"
command = ""

[keybindings]
primary = "alt"          # alt, ctrl, meta or super
secondary = "alt+shift"

# Inside tmux Alt may be taken; try:
#   primary = "ctrl"
#   secondary = "ctrl+shift"

[keybindings.actions]
# Rebind single actions:
#   new_conversation = "ctrl+t"
#   dictation = "ctrl+r"
#   yank_last_response = "ctrl+y"
`
}
