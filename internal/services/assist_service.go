package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"crmkit/internal/assist"
	"crmkit/internal/config"
	"crmkit/internal/llm"
	"crmkit/internal/validation"
)

// AssistService runs the prompt-based assist modules: lead intelligence
// and requirement translation. Unlike narration, these features require
// a working LLM client; without one they fail with llm.ErrUnavailable.
type AssistService struct {
	client llm.Client
	llmCfg config.LLMConfig
	logger *slog.Logger
	now    func() time.Time
}

// NewAssistService creates an assist service
func NewAssistService(cfg *config.Config, client llm.Client, logger *slog.Logger) *AssistService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AssistService{
		client: client,
		llmCfg: cfg.LLM,
		logger: logger.With(slog.String("component", "assist_service")),
		now:    time.Now,
	}
}

// Lead analyzes messy lead/opportunity text into a structured summary
func (s *AssistService) Lead(ctx context.Context, input string) (string, error) {
	if err := validation.ValidateTextInput(input,
		validation.DefaultMinTextLength, validation.DefaultMaxTextLength, "Lead information"); err != nil {
		return "", err
	}

	return s.generate(ctx, assist.LeadSystemPrompt, assist.LeadPrompt(input), "")
}

// Requirements translates client requirement notes into execution-ready
// drafts
func (s *AssistService) Requirements(ctx context.Context, input string) (string, error) {
	if err := validation.ValidateTextInput(input,
		validation.DefaultMinTextLength, validation.DefaultMaxTextLength, "Requirements"); err != nil {
		return "", err
	}

	return s.generate(ctx, assist.RequirementsSystemPrompt, assist.RequirementsPrompt(input), assist.RequirementsReminder())
}

// generate runs the LLM call and wraps the output in the draft framing
func (s *AssistService) generate(ctx context.Context, system, prompt, trailer string) (string, error) {
	if !s.client.Available() {
		return "", llm.ErrUnavailable
	}

	start := time.Now()
	content, err := s.client.Generate(ctx, llm.Request{
		System:      system,
		Prompt:      prompt,
		Temperature: s.llmCfg.Temperature,
		MaxTokens:   s.llmCfg.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("generation failed: %w", err)
	}

	s.logger.InfoContext(ctx, "assist generation complete",
		slog.Int("prompt_chars", len(prompt)),
		slog.Int("response_chars", len(content)),
		slog.Duration("duration", time.Since(start)),
	)

	return assist.DraftHeader() + content + trailer + assist.Disclaimer(s.now()), nil
}
