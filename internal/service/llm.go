package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/pageza/babychef/backend/config"
	"github.com/pageza/babychef/backend/internal/metrics"
)

// Model call kinds used for metrics and logging
const (
	KindText   = "text"
	KindVision = "vision"
)

// LLMClient talks to an OpenAI-compatible chat completions API
type LLMClient struct {
	client            *openai.Client
	textModel         string
	visionModel       string
	temperature       float32
	visionTemperature float32
	timeout           time.Duration
	metrics           *metrics.Metrics
	log               *zap.Logger
}

var _ Completer = (*LLMClient)(nil)

// NewLLMClient creates a new LLMClient from the AI configuration
func NewLLMClient(cfg config.AIConfig, m *metrics.Metrics, log *zap.Logger) (*LLMClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("ai.api_key must be set")
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &LLMClient{
		client:            openai.NewClientWithConfig(clientCfg),
		textModel:         cfg.TextModel,
		visionModel:       cfg.VisionModel,
		temperature:       cfg.Temperature,
		visionTemperature: cfg.VisionTemperature,
		timeout:           cfg.Timeout,
		metrics:           m,
		log:               log,
	}, nil
}

// CompleteText sends a text-only prompt and returns the raw response content
func (c *LLMClient) CompleteText(ctx context.Context, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       c.textModel,
		Temperature: c.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}
	return c.complete(ctx, KindText, req)
}

// CompleteVision sends a prompt together with an image URL
func (c *LLMClient) CompleteVision(ctx context.Context, prompt, imageURL string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       c.visionModel,
		Temperature: c.visionTemperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: SystemPrompt},
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: prompt},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    imageURL,
							Detail: openai.ImageURLDetailAuto,
						},
					},
				},
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}
	return c.complete(ctx, KindVision, req)
}

func (c *LLMClient) complete(ctx context.Context, kind string, req openai.ChatCompletionRequest) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err == nil && len(resp.Choices) == 0 {
		err = errors.New("no choices in response")
	}
	c.metrics.RecordModelRequest(kind, err, time.Since(start))
	if err != nil {
		return "", fmt.Errorf("%s completion failed: %w", kind, err)
	}

	c.log.Debug("Model response received",
		zap.String("kind", kind),
		zap.String("model", req.Model),
		zap.Int("total_tokens", resp.Usage.TotalTokens),
		zap.Duration("latency", time.Since(start)))

	return resp.Choices[0].Message.Content, nil
}
