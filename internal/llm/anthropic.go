package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/liushuangls/go-anthropic/v2"
)

const (
	DefaultAnthropicModel = "claude-sonnet-4-5-20250929"

	anthropicMaxTokens = 2000
)

// AnthropicClient generates replies through the Messages API.
type AnthropicClient struct {
	client *anthropic.Client
	model  string
}

func NewAnthropicClient(apiKey, model, baseURL string) *AnthropicClient {
	if model == "" {
		model = DefaultAnthropicModel
	}
	var opts []anthropic.ClientOption
	if baseURL != "" {
		opts = append(opts, anthropic.WithBaseURL(strings.TrimSuffix(baseURL, "/")))
	}
	return &AnthropicClient{client: anthropic.NewClient(apiKey, opts...), model: model}
}

func (c *AnthropicClient) Generate(ctx context.Context, req Request) (string, error) {
	messages := make([]anthropic.Message, 0, len(req.Messages))
	for _, m := range req.Messages {
		role := anthropic.RoleUser
		if isModel(m.Role) {
			role = anthropic.RoleAssistant
		}
		text := m.Text
		messages = append(messages, anthropic.Message{
			Role:    role,
			Content: []anthropic.MessageContent{{Type: "text", Text: &text}},
		})
	}

	resp, err := c.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:     anthropic.Model(c.model),
		MaxTokens: anthropicMaxTokens,
		System:    req.System,
		Messages:  messages,
	})
	if err != nil {
		var reqErr *anthropic.RequestError
		if errors.As(err, &reqErr) {
			return "", &StatusError{Provider: "anthropic", StatusCode: reqErr.StatusCode, Body: reqErr.Error()}
		}
		var apiErr *anthropic.APIError
		if errors.As(err, &apiErr) {
			return "", &StatusError{Provider: "anthropic", Body: apiErr.Message}
		}
		return "", fmt.Errorf("anthropic call: %w", err)
	}

	for _, block := range resp.Content {
		if block.Type == "text" && block.Text != nil {
			return *block.Text, nil
		}
	}
	return "", ErrNoOutput
}
