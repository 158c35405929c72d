// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// Defaults for an OpenAI-compatible provider.
const (
	DefaultBaseURL = "https://api.openai.com/v1/"
	DefaultModel   = "gpt-4o-mini"
	DefaultTimeout = 30 * time.Second
)

// Config configures an OpenAISuggester.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client
}

// OpenAISuggester asks a chat completion model for suggestions.
type OpenAISuggester struct {
	client openai.Client
	model  string
	logger *slog.Logger
}

// NewOpenAISuggester creates a suggester. Retries are disabled: a failed
// call surfaces as ErrUnavailable straight away.
func NewOpenAISuggester(cfg Config, logger *slog.Logger) *OpenAISuggester {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}
	if logger == nil {
		logger = slog.Default()
	}

	client := openai.NewClient(
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(cfg.BaseURL),
		option.WithMaxRetries(0),
		option.WithHTTPClient(cfg.HTTPClient),
		option.WithRequestTimeout(cfg.Timeout),
	)

	return &OpenAISuggester{
		client: client,
		model:  cfg.Model,
		logger: logger,
	}
}

// Suggest implements Suggester.
func (s *OpenAISuggester) Suggest(ctx context.Context, text string) (Suggestion, error) {
	start := time.Now()
	resp, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(s.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(buildUserPrompt(text)),
		},
	})
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			s.logger.Warn("ai provider returned an error", "category", "system",
				"status", apiErr.StatusCode, "model", s.model)
		} else {
			s.logger.Warn("ai provider call failed", "category", "system", "error", err, "model", s.model)
		}
		return Suggestion{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if len(resp.Choices) == 0 {
		return Suggestion{}, fmt.Errorf("%w: no choices returned", ErrUnavailable)
	}

	suggestion, err := ParseSuggestion(resp.Choices[0].Message.Content)
	if err != nil {
		s.logger.Warn("ai reply unusable", "category", "system", "error", err, "model", s.model)
		return Suggestion{}, err
	}

	s.logger.Debug("ai suggestion generated",
		"model", resp.Model,
		"total_tokens", resp.Usage.TotalTokens,
		"duration", time.Since(start))
	return suggestion, nil
}

var (
	_ Suggester = (*OpenAISuggester)(nil)
	_ Suggester = Disabled{}
)
