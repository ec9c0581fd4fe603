package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/louisbranch/gmtrainer/internal/errors"
)

const (
	defaultAnthropicMessagesURL = "https://api.anthropic.com/v1/messages"
	defaultAnthropicModel       = "claude-sonnet-4-5"
	defaultAnthropicMaxTokens   = 1024
	anthropicVersion            = "2023-06-01"
)

// AnthropicConfig configures the Anthropic messages endpoint and HTTP behavior.
type AnthropicConfig struct {
	APIKey      string
	Model       string
	MaxTokens   int
	MessagesURL string
	HTTPClient  *http.Client
}

type anthropicClient struct {
	cfg AnthropicConfig
}

// NewAnthropicClient builds an Anthropic messages adapter.
func NewAnthropicClient(cfg AnthropicConfig) (Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New(errors.CodeConfigMissingAPIKey, "anthropic api key is required")
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	if strings.TrimSpace(cfg.MessagesURL) == "" {
		cfg.MessagesURL = defaultAnthropicMessagesURL
	}
	if strings.TrimSpace(cfg.Model) == "" {
		cfg.Model = defaultAnthropicModel
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultAnthropicMaxTokens
	}
	return &anthropicClient{cfg: cfg}, nil
}

func (c *anthropicClient) Generate(ctx context.Context, req Request) (Response, error) {
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return Response{}, fmt.Errorf("prompt is required")
	}

	requestBody, err := json.Marshal(map[string]any{
		"model":      c.cfg.Model,
		"max_tokens": c.cfg.MaxTokens,
		"system":     req.System,
		"messages": []map[string]any{
			{"role": "user", "content": prompt},
		},
	})
	if err != nil {
		return Response{}, fmt.Errorf("marshal generate request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.MessagesURL, bytes.NewReader(requestBody))
	if err != nil {
		return Response{}, fmt.Errorf("build generate request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("anthropic-version", anthropicVersion)
	// Credential material is sent only as a header and is never echoed in
	// errors or response payloads.
	httpReq.Header.Set("x-api-key", c.cfg.APIKey)

	res, err := c.cfg.HTTPClient.Do(httpReq)
	if err != nil {
		return Response{}, errors.Wrap(errors.CodeProviderUnavailable, "generate request failed", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		body, readErr := io.ReadAll(io.LimitReader(res.Body, 4096))
		if readErr != nil {
			return Response{}, fmt.Errorf("read generate error body: %w", readErr)
		}
		detail := strings.TrimSpace(string(body))
		switch {
		case res.StatusCode == http.StatusUnauthorized || res.StatusCode == http.StatusForbidden:
			return Response{}, errors.Newf(errors.CodeProviderAuth, "provider rejected credentials: status %d: %s", res.StatusCode, detail)
		case res.StatusCode == http.StatusTooManyRequests:
			return Response{}, errors.Newf(errors.CodeProviderRateLimited, "provider throttled request: status %d: %s", res.StatusCode, detail)
		default:
			return Response{}, errors.Newf(errors.CodeProviderUnavailable, "generate request status %d: %s", res.StatusCode, detail)
		}
	}

	var payload struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return Response{}, fmt.Errorf("decode generate response: %w", err)
	}

	var text strings.Builder
	for _, block := range payload.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if strings.TrimSpace(text.String()) == "" {
		return Response{}, errors.New(errors.CodeProviderEmptyReply, "provider returned no text content")
	}
	return Response{Text: strings.TrimSpace(text.String())}, nil
}
