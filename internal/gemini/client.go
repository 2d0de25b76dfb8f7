// Package gemini implements the ai.Backend interface on top of Google's
// Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"google.golang.org/genai"

	"personabot/internal/ai"
	"personabot/internal/config"
	"personabot/internal/prompt"
)

// Client is an ai.Backend backed by the genai SDK.
type Client struct {
	genaiClient *genai.Client
	log         *slog.Logger
	baseConfig  *genai.GenerateContentConfig
	model       string
	timeout     time.Duration
	maxRetries  int
	retryDelay  time.Duration
}

// NewClient creates a Gemini client from configuration. It fails fast when
// the API key is missing so a misconfigured process never serves traffic.
func NewClient(ctx context.Context, cfg config.GeminiConfig, log *slog.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	temperature := cfg.Temperature
	baseConfig := &genai.GenerateContentConfig{
		Temperature: &temperature,
	}

	logger := log.With("component", "gemini_client")
	logger.Info("Gemini client initialized", "model", cfg.Model, "timeout", cfg.Timeout)

	return &Client{
		genaiClient: gc,
		log:         logger,
		baseConfig:  baseConfig,
		model:       cfg.Model,
		timeout:     cfg.Timeout,
		maxRetries:  cfg.MaxRetries,
		retryDelay:  cfg.RetryDelay,
	}, nil
}

// Generate sends the composed payload to Gemini and returns the reply text.
// The persona instruction travels as the system instruction; conversation
// turns map onto genai user/model contents. Failures are translated into the
// ai package's error taxonomy.
func (c *Client) Generate(ctx context.Context, payload prompt.Payload) (string, error) {
	contents := make([]*genai.Content, 0, len(payload.Turns))
	for _, turn := range payload.Turns {
		role := genai.Role(genai.RoleUser)
		if turn.Role == prompt.RoleModel {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(turn.Content, role))
	}

	reqConfig := *c.baseConfig
	if payload.Instruction != "" {
		reqConfig.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: payload.Instruction}},
		}
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.generateWithRetries(reqCtx, contents, &reqConfig)
	if err != nil {
		return "", translateError(err)
	}

	return extractText(resp)
}

// generateWithRetries calls the API, retrying transient server errors
// (HTTP 500/503) up to maxRetries times with a fixed delay.
func (c *Client) generateWithRetries(ctx context.Context, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		resp, err := c.genaiClient.Models.GenerateContent(ctx, c.model, contents, cfg)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		var apiErr *genai.APIError
		retriable := errors.As(err, &apiErr) && (apiErr.Code == 500 || apiErr.Code == 503)
		if !retriable || attempt == c.maxRetries {
			c.log.ErrorContext(ctx, "Gemini API call failed", "attempt", attempt+1, "error", err)
			return nil, err
		}

		c.log.WarnContext(ctx, "Gemini API call failed, retrying",
			"attempt", attempt+1, "max_retries", c.maxRetries, "code", apiErr.Code, "delay", c.retryDelay)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.retryDelay):
		}
	}

	return nil, lastErr
}

// translateError maps SDK and context failures onto the relay-facing
// taxonomy defined in the ai package.
func translateError(err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", ai.ErrTimeout, err)
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("%w: %v", ai.ErrTimeout, err)
	}

	var apiErr *genai.APIError
	if errors.As(err, &apiErr) && apiErr.Code >= 200 && apiErr.Code < 500 {
		// The service answered but rejected the request content.
		return fmt.Errorf("%w: %v", ai.ErrMalformedResponse, err)
	}

	return fmt.Errorf("%w: %v", ai.ErrUnavailable, err)
}

// extractText pulls the reply text out of a successful API response,
// treating blocked prompts and empty candidates as malformed responses.
func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != genai.BlockedReasonUnspecified {
		reason := resp.PromptFeedback.BlockReasonMessage
		if reason == "" {
			reason = fmt.Sprintf("%v", resp.PromptFeedback.BlockReason)
		}
		return "", fmt.Errorf("%w: blocked by safety filter: %s", ai.ErrMalformedResponse, reason)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		finishReason := "unknown"
		if len(resp.Candidates) > 0 && resp.Candidates[0].FinishReason != genai.FinishReasonUnspecified {
			finishReason = fmt.Sprintf("%v", resp.Candidates[0].FinishReason)
		}
		return "", fmt.Errorf("%w: no content, finish reason: %s", ai.ErrMalformedResponse, finishReason)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("%w: empty reply text", ai.ErrMalformedResponse)
	}

	return text, nil
}
