package factory

import (
	"fmt"

	"ai-chat-be/pkg/llm"
	"ai-chat-be/pkg/llm/openai"
)

func NewLLMProvider(providerType, baseURL, apiKey string) (llm.Provider, error) {
	switch providerType {
	case "", "openai":
		if baseURL == "" {
			baseURL = "https://api.openai.com" // Default
		}
		return openai.NewOpenAIProvider(baseURL, apiKey), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
