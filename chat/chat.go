// Package chat proxies prompt requests to the upstream chat-completion
// service.
package chat

import (
	"context"
	"math"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"github.com/wepredict/go-api-server/internal/apperrors"
)

const defaultTemperature = 0.7

// Request is a single prompt. Model, Temperature and MaxTokens are
// optional and fall back to service defaults.
type Request struct {
	Message     string
	Model       string
	Temperature *float32
	MaxTokens   int
}

type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

type Response struct {
	Reply string `json:"response"`
	Model string `json:"model"`
	Usage *Usage `json:"usage,omitempty"`
}

// Service wraps the upstream client. The repository adds nothing on top
// of the passthrough beyond input checks and error classification.
type Service struct {
	client       *openai.Client
	defaultModel string
}

func NewService(apiKey, baseURL, defaultModel string) (*Service, error) {
	if apiKey == "" {
		return nil, apperrors.Dependency(nil, false, "chat completion API key is not configured")
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if defaultModel == "" {
		defaultModel = openai.GPT3Dot5Turbo
	}
	return &Service{
		client:       openai.NewClientWithConfig(cfg),
		defaultModel: defaultModel,
	}, nil
}

// Complete sends the prompt upstream and returns the first choice.
func (s *Service) Complete(ctx context.Context, req Request) (*Response, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, apperrors.Validation("message is required")
	}

	model := req.Model
	if model == "" {
		model = s.defaultModel
	}
	temperature := float32(defaultTemperature)
	if req.Temperature != nil {
		temperature = *req.Temperature
	}
	// The upstream request marshals temperature with omitempty, so a
	// requested 0 would vanish and the upstream would apply its own
	// default. The library's escape hatch is the smallest nonzero float.
	if temperature == 0 {
		temperature = math.SmallestNonzeroFloat32
	}

	completion, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: req.Message},
		},
		Temperature: temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return nil, apperrors.ValidationWrap(err, "chat completion failed")
	}
	if len(completion.Choices) == 0 {
		return nil, apperrors.Validation("chat completion returned no choices")
	}

	return &Response{
		Reply: completion.Choices[0].Message.Content,
		Model: completion.Model,
		Usage: &Usage{
			PromptTokens:     completion.Usage.PromptTokens,
			CompletionTokens: completion.Usage.CompletionTokens,
			TotalTokens:      completion.Usage.TotalTokens,
		},
	}, nil
}
