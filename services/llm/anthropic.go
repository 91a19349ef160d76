package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"

	"github.com/trezcool/professor/core"
	"github.com/trezcool/professor/core/chat"
)

const messagesEndpoint = "/v1/messages"

type (
	AnthropicClient struct {
		client    *resty.Client
		baseURL   string
		apiKey    string
		model     string
		version   string
		maxTokens int
	}

	message struct {
		Role    chat.Role `json:"role"`
		Content string    `json:"content"`
	}

	messagesRequest struct {
		Model     string    `json:"model"`
		MaxTokens int       `json:"max_tokens"`
		System    string    `json:"system,omitempty"`
		Messages  []message `json:"messages"`
	}

	contentBlock struct {
		Type string `json:"type"`
		Text string `json:"text"`
	}

	messagesResponse struct {
		Content []contentBlock `json:"content"`
	}

	errorResponse struct {
		Error struct {
			Type    string `json:"type"`
			Message string `json:"message"`
		} `json:"error"`
	}
)

var _ chat.Completer = (*AnthropicClient)(nil)

func NewAnthropicClient(conf *core.Config) *AnthropicClient {
	return &AnthropicClient{
		client:    resty.New(),
		baseURL:   strings.TrimRight(conf.Anthropic.BaseURL, "/"),
		apiKey:    conf.Anthropic.APIKey,
		model:     conf.Anthropic.Model,
		version:   conf.Anthropic.Version,
		maxTokens: conf.Anthropic.MaxTokens,
	}
}

// Complete sends a single Messages API request with the whole turn sequence. It never retries.
// Every failure is reported as chat.ErrCompletionFailed, with the provider detail in the message.
func (c *AnthropicClient) Complete(ctx context.Context, systemPrompt string, turns []chat.Turn) (string, error) {
	body := messagesRequest{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		System:    systemPrompt,
		Messages:  make([]message, 0, len(turns)),
	}
	for _, t := range turns {
		body.Messages = append(body.Messages, message{Role: t.Role, Content: t.Content})
	}

	var (
		result  messagesResponse
		errBody errorResponse
	)
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("x-api-key", c.apiKey).
		SetHeader("anthropic-version", c.version).
		SetBody(body).
		SetResult(&result).
		SetError(&errBody).
		Post(c.baseURL + messagesEndpoint)
	if err != nil {
		return "", errors.Wrapf(chat.ErrCompletionFailed, "calling messages api: %v", err)
	}

	if resp.IsError() {
		detail := errBody.Error.Message
		if detail == "" {
			detail = fmt.Sprintf("API request failed: %d", resp.StatusCode())
		}
		return "", errors.Wrap(chat.ErrCompletionFailed, detail)
	}

	for _, block := range result.Content {
		if block.Type == "text" || (block.Type == "" && block.Text != "") {
			return block.Text, nil
		}
	}
	return "", errors.Wrap(chat.ErrCompletionFailed, "response has no text content")
}
