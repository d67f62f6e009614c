package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/maemreyo/canonica/internal/model"
	"github.com/maemreyo/canonica/internal/util"
)

// Client talks to the external structuring service through an
// OpenAI-compatible chat API. A nil *Client means the external tiers
// are disabled and only local strategies run.
type Client struct {
	api     *openai.Client
	cfg     model.LLMConfig
	limiter *Limiter
}

// NewClient creates a structuring service client from configuration.
// Returns (nil, nil) when no provider is configured. A configured
// provider without an API key is a configuration error: the process
// should fail to initialize rather than fail per call.
func NewClient(cfg model.LLMConfig, limiter *Limiter) (*Client, error) {
	provider := strings.ToLower(cfg.Provider)

	switch provider {
	case "":
		return nil, nil
	case "openai":
		// OpenAI-compatible endpoints (including self-hosted ones via
		// BaseURL) share this path
	default:
		return nil, model.NewConfigError("unknown structuring provider: %s (supported: openai)", cfg.Provider)
	}

	if cfg.APIKey == "" {
		return nil, model.NewConfigError("structuring provider %q requires an API key", cfg.Provider)
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	clientConfig.HTTPClient = &http.Client{
		Transport: &http.Transport{
			Proxy: util.NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy, cfg.NoProxy),
		},
	}

	return &Client{
		api:     openai.NewClientWithConfig(clientConfig),
		cfg:     cfg,
		limiter: limiter,
	}, nil
}

// Name returns the configured provider name
func (c *Client) Name() string {
	return strings.ToLower(c.cfg.Provider)
}

// Model returns the model the client will request
func (c *Client) Model() string {
	if c.cfg.Model != "" {
		return c.cfg.Model
	}
	return openai.GPT4oMini
}

// Complete sends one chat completion request and returns the raw text
// of the first choice. The caller owns the timeout on ctx; Complete
// never retries.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx, c.Name()); err != nil {
			return "", fmt.Errorf("rate limit wait: %w", err)
		}
	}

	req := openai.ChatCompletionRequest{
		Model: c.Model(),
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: 0.1, // Structuring wants determinism, not creativity
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("structuring service: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("structuring service returned no choices")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
