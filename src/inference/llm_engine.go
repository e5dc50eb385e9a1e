package inference

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/torresnicolas0/clima-chatbot/src/config"
)

// LLMClient implements models.TextGenerator over any OpenAI-compatible API.
type LLMClient struct {
	config *config.LLMConfig
	llm    llms.Model
}

func NewLLMClient(cfg *config.LLMConfig) (*LLMClient, error) {
	opts := []openai.Option{
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.Model),
	}
	if cfg.Endpoint != "" {
		opts = append(opts, openai.WithBaseURL(cfg.Endpoint))
	}

	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
	}

	return NewLLMClientWithModel(cfg, llm), nil
}

// NewLLMClientWithModel wraps an already constructed model.
func NewLLMClientWithModel(cfg *config.LLMConfig, llm llms.Model) *LLMClient {
	return &LLMClient{
		config: cfg,
		llm:    llm,
	}
}

// Generate completes prompt deterministically; corrections must not vary
// between identical requests.
func (c *LLMClient) Generate(ctx context.Context, prompt string) (string, error) {
	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	callOptions := []llms.CallOption{
		llms.WithTemperature(0),
	}
	if c.config.MaxTokens > 0 {
		callOptions = append(callOptions, llms.WithMaxTokens(c.config.MaxTokens))
	}

	response, err := llms.GenerateFromSinglePrompt(ctx, c.llm, prompt, callOptions...)
	if err != nil {
		return "", fmt.Errorf("OpenAI generation failed: %w", err)
	}

	return response, nil
}
