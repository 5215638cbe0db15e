package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"ai-chat-be/pkg/llm"
)

// OpenAIProvider speaks the OpenAI-compatible REST surface: /v1/models,
// /v1/chat/completions and /v1/images/generations, bearer-authenticated.
type OpenAIProvider struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

var _ llm.Provider = &OpenAIProvider{}

func NewOpenAIProvider(baseURL, apiKey string) *OpenAIProvider {
	return &OpenAIProvider{
		BaseURL: baseURL,
		APIKey:  apiKey,
		// No client timeout: cancellation is the caller's context or, for
		// streams, closing the stream.
		Client: &http.Client{},
	}
}

type modelsResponse struct {
	Object string      `json:"object"`
	Data   []llm.Model `json:"data"`
}

type apiErrorBody struct {
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (p *OpenAIProvider) request(ctx context.Context, method, path string, payload interface{}) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, p.BaseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.APIKey)
	}

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("llm request failed: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		return nil, p.apiError(resp)
	}

	return resp, nil
}

// apiError surfaces the provider's error.message; an unreadable error body is
// itself reported as a failure.
func (p *OpenAIProvider) apiError(resp *http.Response) error {
	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("llm api error (status %d): unreadable error body: %w", resp.StatusCode, err)
	}

	var errBody apiErrorBody
	if err := json.Unmarshal(bodyBytes, &errBody); err != nil || errBody.Error == nil || errBody.Error.Message == "" {
		return fmt.Errorf("llm api error (status %d): malformed error body", resp.StatusCode)
	}

	return fmt.Errorf("llm api error (status %d): %s", resp.StatusCode, errBody.Error.Message)
}

func (p *OpenAIProvider) GetModels(ctx context.Context) ([]llm.Model, error) {
	resp, err := p.request(ctx, http.MethodGet, "/v1/models", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var models modelsResponse
	if err := json.NewDecoder(resp.Body).Decode(&models); err != nil {
		return nil, fmt.Errorf("decode models response: %w", err)
	}
	return models.Data, nil
}

func (p *OpenAIProvider) CreateChatCompletion(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	req.Stream = false

	resp, err := p.request(ctx, http.MethodPost, "/v1/chat/completions", req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var completion llm.CompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return nil, fmt.Errorf("decode completion response: %w", err)
	}
	return &completion, nil
}

func (p *OpenAIProvider) StreamChatCompletion(ctx context.Context, req llm.CompletionRequest) (*llm.Stream, error) {
	req.Stream = true

	resp, err := p.request(ctx, http.MethodPost, "/v1/chat/completions", req)
	if err != nil {
		return nil, err
	}
	if resp.Body == nil {
		return nil, fmt.Errorf("llm stream returned no readable body")
	}

	return llm.NewStream(resp.Body), nil
}

func (p *OpenAIProvider) GenerateImage(ctx context.Context, req llm.ImageRequest) (*llm.ImageResponse, error) {
	resp, err := p.request(ctx, http.MethodPost, "/v1/images/generations", req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var image llm.ImageResponse
	if err := json.NewDecoder(resp.Body).Decode(&image); err != nil {
		return nil, fmt.Errorf("decode image response: %w", err)
	}
	return &image, nil
}
