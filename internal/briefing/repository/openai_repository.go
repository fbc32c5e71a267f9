package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"market-briefing/internal/briefing/config"
	"market-briefing/internal/briefing/dto"
	"market-briefing/pkg/logger"
	"market-briefing/pkg/retry"
)

type openaiRepository struct {
	client *http.Client
	cfg    *config.Config
	logger *logger.Logger
}

// NewOpenAIRepository creates a TextGenerator for any OpenAI-compatible chat completions API.
func NewOpenAIRepository(cfg *config.Config, logger *logger.Logger) TextGenerator {
	return &openaiRepository{
		client: &http.Client{
			Timeout: cfg.AI.Timeout,
		},
		cfg:    cfg,
		logger: logger,
	}
}

func (r *openaiRepository) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := r.SendRequest(ctx, prompt)
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", ErrEmptyCompletion
	}

	return resp.Choices[0].Message.Content, nil
}

func (r *openaiRepository) SendRequest(ctx context.Context, prompt string) (*dto.OpenAPIRes, error) {
	payload := dto.OpenAPIReq{
		Model: r.cfg.OpenAI.Model,
		Messages: []dto.Message{
			{
				Role:    "user",
				Content: prompt,
			},
		},
		Temperature: r.cfg.AI.Temperature,
		MaxTokens:   r.cfg.AI.MaxTokens,
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return nil, &retry.Permanent{Err: fmt.Errorf("failed to marshal payload: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.cfg.OpenAI.BaseURL, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return nil, &retry.Permanent{Err: fmt.Errorf("failed to create new http request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", r.cfg.OpenAI.APIKey))

	r.logger.DebugContext(ctx, "Sending request to OpenAI API", logger.StringField("url", r.cfg.OpenAI.BaseURL), logger.StringField("model", r.cfg.OpenAI.Model))

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request to OpenAI API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		r.logger.ErrorContext(ctx, "Received non-OK response from OpenAI API", logger.IntField("status_code", resp.StatusCode), logger.StringField("url", r.cfg.OpenAI.BaseURL), logger.StringField("model", r.cfg.OpenAI.Model))
		return nil, &StatusError{Service: "OpenAI API", StatusCode: resp.StatusCode, Body: string(body)}
	}

	var openaiResp dto.OpenAPIRes
	if err := json.NewDecoder(resp.Body).Decode(&openaiResp); err != nil {
		return nil, fmt.Errorf("failed to decode response body: %w", err)
	}

	r.logger.DebugContext(ctx, "OpenAI API usage", logger.IntField("total_tokens", openaiResp.Usage.TotalTokens))

	return &openaiResp, nil
}
