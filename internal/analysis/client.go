// Package analysis generates technical analysis commentary via an
// OpenAI-compatible chat completion endpoint (OpenRouter).
package analysis

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"

	"github.com/saqif1/AI-Technical-Analysis/internal/common"
	"github.com/saqif1/AI-Technical-Analysis/internal/config"
)

// ErrEmptyResponse indicates the model returned no choices.
var ErrEmptyResponse = errors.New("model returned empty response")

// Client sends chat completion requests to the configured provider.
// The API key is supplied per call and held only for the duration of
// the request.
type Client struct {
	cfg    config.AnalysisConfig
	logger *common.Logger
}

// NewClient creates an analysis client from configuration.
func NewClient(cfg config.AnalysisConfig, logger *common.Logger) *Client {
	return &Client{cfg: cfg, logger: logger}
}

// headerTransport injects the attribution headers OpenRouter uses for
// app rankings on every request.
type headerTransport struct {
	base    http.RoundTripper
	referer string
	title   string
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.referer != "" {
		req.Header.Set("HTTP-Referer", t.referer)
	}
	if t.title != "" {
		req.Header.Set("X-Title", t.title)
	}
	return t.base.RoundTrip(req)
}

// Analyze sends the system guide and user message to the model and returns
// the generated analysis text. A single attempt is made; transport and
// provider failures surface to the caller unretried.
func (c *Client) Analyze(ctx context.Context, apiKey, systemMsg, userMsg string) (string, error) {
	clientCfg := openai.DefaultConfig(apiKey)
	clientCfg.BaseURL = c.cfg.BaseURL
	clientCfg.HTTPClient = &http.Client{
		Timeout: c.cfg.GetTimeout(),
		Transport: &headerTransport{
			base:    http.DefaultTransport,
			referer: c.cfg.Referer,
			title:   c.cfg.Title,
		},
	}

	client := openai.NewClientWithConfig(clientCfg)

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemMsg},
			{Role: openai.ChatMessageRoleUser, Content: userMsg},
		},
		MaxTokens: c.cfg.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}

	c.logger.Debug().
		Str("model", c.cfg.Model).
		Int("prompt_tokens", resp.Usage.PromptTokens).
		Int("completion_tokens", resp.Usage.CompletionTokens).
		Msg("analysis generated")

	return resp.Choices[0].Message.Content, nil
}
