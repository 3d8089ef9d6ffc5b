package llm

import (
	"fmt"
	"strings"
	"time"

	"github.com/ppiankov/realitycheck/internal/model"
)

// NewProvider creates a completion provider based on configuration
func NewProvider(config Config) (Provider, error) {
	provider := strings.ToLower(config.Provider)

	switch provider {
	case "openai", "gateway", "":
		return NewOpenAIProvider(config)

	case "anthropic", "claude":
		return NewAnthropicProvider(config)

	case "ollama":
		return NewOllamaProvider(config)

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai, anthropic, ollama)", config.Provider)
	}
}

// ConfigFromModel converts model.LLMConfig to llm.Config. The gateway model
// and base URL defaults only make sense for the OpenAI-compatible provider,
// so they are dropped for the others and each provider falls back to its own.
func ConfigFromModel(modelConfig model.LLMConfig) Config {
	cfg := Config{
		Provider:  modelConfig.Provider,
		Model:     modelConfig.Model,
		APIKey:    modelConfig.APIKey,
		BaseURL:   modelConfig.BaseURL,
		Timeout:   modelConfig.Timeout,
		MaxTokens: modelConfig.MaxTokens,
	}

	defaults := model.DefaultConfig().LLM
	switch strings.ToLower(cfg.Provider) {
	case "openai", "gateway", "":
	default:
		if cfg.Model == defaults.Model {
			cfg.Model = ""
		}
		if cfg.BaseURL == defaults.BaseURL {
			cfg.BaseURL = ""
		}
	}

	return cfg
}

func secondsToDuration(seconds int) time.Duration {
	return time.Duration(seconds) * time.Second
}
