package factory

import (
	"ai-journaling-be/pkg/llm"
	"ai-journaling-be/pkg/llm/ollama"
	"ai-journaling-be/pkg/llm/openai"
	"fmt"
	"time"
)

type ProviderConfig struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
	Timeout  time.Duration
}

func NewLLMProvider(cfg ProviderConfig) (llm.LLMProvider, error) {
	switch cfg.Provider {
	case "openai", "":
		return openai.NewOpenAIProvider(cfg.APIKey, cfg.BaseURL, cfg.Model, cfg.Timeout)
	case "ollama":
		return ollama.NewOllamaProvider(cfg.BaseURL, cfg.Model, cfg.Timeout), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
