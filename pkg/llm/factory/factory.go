package factory

import (
	"fmt"

	"shopping-chat-be/pkg/llm"
	"shopping-chat-be/pkg/llm/ollama"
	"shopping-chat-be/pkg/llm/openai"
)

// NewProvider builds the configured LLM backend. The model passed here is
// only the provider default; the gateway overrides it per page.
func NewProvider(providerType, apiKey, baseURL, modelName string) (llm.Provider, error) {
	switch providerType {
	case "openai":
		if apiKey == "" {
			return nil, fmt.Errorf("openai provider requires an API key")
		}
		return openai.NewOpenAIProvider(apiKey, baseURL, modelName), nil
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
