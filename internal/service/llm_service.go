package service

import (
	"context"
	"fmt"

	"cardwise/pkg/config"

	"github.com/Role1776/gigago"
	"go.uber.org/zap"
)

// Generator produces free text for a prompt role and structured context.
// Calls may fail or time out; callers must degrade without it.
type Generator interface {
	Generate(ctx context.Context, role PromptRole, payload PromptPayload) (string, error)
}

// LLMService implements Generator on top of GigaChat.
type LLMService struct {
	client *gigago.Client
	model  *gigago.GenerativeModel
	logger *zap.Logger
}

func NewLLMService(cfg *config.GigaChatConfig, logger *zap.Logger) (*LLMService, error) {
	ctx := context.Background()

	opts := []gigago.Option{
		gigago.WithCustomScope(cfg.Scope),
	}
	if cfg.InsecureSkipVerify {
		opts = append(opts, gigago.WithCustomInsecureSkipVerify(true))
		logger.Warn("GigaChat TLS certificate verification is disabled")
	}

	client, err := gigago.NewClient(ctx, cfg.APIKey, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GigaChat client: %w", err)
	}

	model := client.GenerativeModel(cfg.Model)
	model.SystemInstruction = advisorSystemInstruction
	model.Temperature = 0.3

	logger.Info("LLM service initialized", zap.String("model", cfg.Model))

	return &LLMService{
		client: client,
		model:  model,
		logger: logger,
	}, nil
}

// Generate renders the prompt for role and runs one completion.
func (s *LLMService) Generate(ctx context.Context, role PromptRole, payload PromptPayload) (string, error) {
	prompt := buildPrompt(role, payload)

	messages := []gigago.Message{
		{Role: gigago.RoleUser, Content: prompt},
	}

	resp, err := s.model.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("failed to generate response: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from LLM")
	}

	s.logger.Debug("Generation completed",
		zap.String("role", string(role)),
		zap.Int("prompt_length", len(prompt)),
	)

	return sanitizeUTF8(resp.Choices[0].Message.Content), nil
}

func (s *LLMService) Close() error {
	if s.client != nil {
		s.client.Close()
	}
	return nil
}
