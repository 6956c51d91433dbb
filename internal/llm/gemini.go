package llm

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"crmkit/internal/config"
)

// GeminiClient generates text using Google's Gemini API
type GeminiClient struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewGeminiClient creates a Gemini-backed client from configuration.
// Returns an error when no API key is set; callers typically fall back
// to Disabled() in that case.
func NewGeminiClient(ctx context.Context, cfg config.LLMConfig, logger *slog.Logger) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiClient{
		client:  client,
		model:   cfg.Model,
		timeout: cfg.Timeout,
		limiter: rate.NewLimiter(rate.Limit(cfg.RateRPS), cfg.RateBurst),
		logger:  logger.With(slog.String("component", "gemini_client")),
	}, nil
}

// Available reports whether the client is usable
func (c *GeminiClient) Available() bool {
	return c.client != nil
}

// Generate calls the Gemini API with the request's prompts. Calls are
// rate limited and bounded by the configured timeout.
func (c *GeminiClient) Generate(ctx context.Context, req Request) (string, error) {
	if !c.Available() {
		return "", ErrUnavailable
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	genCfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(req.Temperature)),
		MaxOutputTokens: int32(req.MaxTokens),
	}
	if req.System != "" {
		genCfg.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}

	start := time.Now()
	resp, err := c.client.Models.GenerateContent(callCtx, c.model, genai.Text(req.Prompt), genCfg)
	if err != nil {
		c.logger.ErrorContext(ctx, "gemini generation failed",
			slog.String("model", c.model),
			slog.String("error", err.Error()),
		)
		return "", fmt.Errorf("LLM API error: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("LLM returned an empty response")
	}

	c.logger.DebugContext(ctx, "gemini generation complete",
		slog.String("model", c.model),
		slog.Int("response_chars", len(text)),
		slog.Duration("duration", time.Since(start)),
	)

	return text, nil
}
