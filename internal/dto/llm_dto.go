package dto

import "ai-chat-be/pkg/llm"

type CompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []llm.Message `json:"messages" validate:"required,min=1,dive"`
	Temperature *float64      `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type GenerateImageRequest struct {
	Prompt string `json:"prompt" validate:"required"`
	Model  string `json:"model,omitempty"`
	N      int    `json:"n,omitempty"`
	Size   string `json:"size,omitempty"`
}
