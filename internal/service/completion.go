package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/arlo/tweetsmith/internal/domain"
	"github.com/go-resty/resty/v2"
)

// TextGenerator produces text from a role-structured prompt. Implemented by
// CompletionService; tests substitute a canned generator.
type TextGenerator interface {
	Complete(ctx context.Context, system, user string, maxTokens int, temperature float32) (string, error)
}

// CompletionService calls an OpenAI-compatible chat-completions endpoint.
type CompletionService struct {
	client   *resty.Client
	model    string
	endpoint string
}

// CompletionConfig holds configuration for the completion service.
type CompletionConfig struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
}

// NewCompletionService creates a new completion service.
// Parameters:
//   - cfg: completion configuration including model, API key, and base URL.
// Returns:
//   - *CompletionService: initialized client wrapper.
func NewCompletionService(cfg *CompletionConfig) *CompletionService {
	client := resty.New()
	client.SetHeader("Authorization", "Bearer "+cfg.APIKey)
	client.SetHeader("Content-Type", "application/json")
	// Set timeout to prevent hanging requests
	client.SetTimeout(60 * time.Second)

	// Default to OpenAI compatible endpoint if not specified
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	endpoint := baseURL + "/chat/completions"

	return &CompletionService{
		client:   client,
		model:    cfg.Model,
		endpoint: endpoint,
	}
}

// GetModel returns the model name being used.
// Parameters: none.
// Returns:
//   - string: model identifier.
func (s *CompletionService) GetModel() string {
	return s.model
}

// OpenAI-compatible Chat Completion API request/response structures
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float32       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Complete sends a system/user prompt pair and returns the model's text.
// No retries are attempted; a failed or empty response is terminal for the
// request and surfaces as domain.ErrGenerationFailed.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - system: system instruction framing the model's role.
//   - user: user instruction with the embedded input.
//   - maxTokens: output token cap.
//   - temperature: sampling temperature.
// Returns:
//   - string: generated text, trimmed.
//   - error: non-nil if the API call fails or yields no usable text.
func (s *CompletionService) Complete(ctx context.Context, system, user string, maxTokens int, temperature float32) (string, error) {
	req := chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}

	var resp chatResponse
	httpResp, err := s.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&resp).
		Post(s.endpoint)

	if err != nil {
		return "", fmt.Errorf("%w: completion API call failed: %v", domain.ErrGenerationFailed, err)
	}

	// Check HTTP status code
	if httpResp.StatusCode() < 200 || httpResp.StatusCode() >= 300 {
		errorMsg := fmt.Sprintf("HTTP %d", httpResp.StatusCode())
		if resp.Error != nil {
			errorMsg = fmt.Sprintf("HTTP %d: %s", httpResp.StatusCode(), resp.Error.Message)
		} else if len(httpResp.Body()) > 0 {
			errorMsg = fmt.Sprintf("HTTP %d: %s", httpResp.StatusCode(), string(httpResp.Body()))
		}
		return "", fmt.Errorf("%w: completion API returned error: %s", domain.ErrGenerationFailed, errorMsg)
	}

	if resp.Error != nil {
		return "", fmt.Errorf("%w: completion API error: %s", domain.ErrGenerationFailed, resp.Error.Message)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response (status: %d)", domain.ErrGenerationFailed, httpResp.StatusCode())
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("%w: empty completion content", domain.ErrGenerationFailed)
	}

	return text, nil
}
