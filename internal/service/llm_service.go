package service

import (
	"context"

	"ai-chat-be/internal/dto"
	"ai-chat-be/pkg/llm"
)

type ILlmService interface {
	GetModels(ctx context.Context) ([]llm.Model, error)
	Complete(ctx context.Context, req *dto.CompletionRequest) (*llm.CompletionResponse, error)
	CompleteStream(ctx context.Context, req *dto.CompletionRequest) (*llm.Stream, error)
	GenerateImage(ctx context.Context, req *dto.GenerateImageRequest) (*llm.ImageResponse, error)
}

// llmService forwards calls to the provider, filling in the configured
// default model when the request leaves it blank.
type llmService struct {
	provider     llm.Provider
	defaultModel string
}

func NewLlmService(provider llm.Provider, defaultModel string) ILlmService {
	return &llmService{
		provider:     provider,
		defaultModel: defaultModel,
	}
}

func (s *llmService) completionRequest(req *dto.CompletionRequest) llm.CompletionRequest {
	model := req.Model
	if model == "" {
		model = s.defaultModel
	}
	return llm.CompletionRequest{
		Model:       model,
		Messages:    req.Messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}
}

func (s *llmService) GetModels(ctx context.Context) ([]llm.Model, error) {
	return s.provider.GetModels(ctx)
}

func (s *llmService) Complete(ctx context.Context, req *dto.CompletionRequest) (*llm.CompletionResponse, error) {
	return s.provider.CreateChatCompletion(ctx, s.completionRequest(req))
}

func (s *llmService) CompleteStream(ctx context.Context, req *dto.CompletionRequest) (*llm.Stream, error) {
	return s.provider.StreamChatCompletion(ctx, s.completionRequest(req))
}

func (s *llmService) GenerateImage(ctx context.Context, req *dto.GenerateImageRequest) (*llm.ImageResponse, error) {
	return s.provider.GenerateImage(ctx, llm.ImageRequest{
		Prompt: req.Prompt,
		Model:  req.Model,
		N:      req.N,
		Size:   req.Size,
	})
}
