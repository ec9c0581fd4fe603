package llm

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/louisbranch/gmtrainer/internal/errors"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const defaultGeminiModel = "gemini-2.5-flash"

// GeminiConfig configures the Gemini adapter.
type GeminiConfig struct {
	APIKey string
	Model  string
}

// GeminiClient adapts the Gemini SDK to the Client interface.
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient builds a Gemini adapter over the official SDK.
// Close must be called when the client is no longer needed.
func NewGeminiClient(ctx context.Context, cfg GeminiConfig) (*GeminiClient, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New(errors.CodeConfigMissingAPIKey, "gemini api key is required")
	}
	if strings.TrimSpace(cfg.Model) == "" {
		cfg.Model = defaultGeminiModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiClient{client: client, model: cfg.Model}, nil
}

// Close releases the underlying SDK client.
func (c *GeminiClient) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

func (c *GeminiClient) Generate(ctx context.Context, req Request) (Response, error) {
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return Response{}, fmt.Errorf("prompt is required")
	}

	model := c.client.GenerativeModel(c.model)
	if strings.TrimSpace(req.System) != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(req.System)},
		}
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return Response{}, classifyGeminiError(err)
	}

	var text strings.Builder
	if len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		for _, part := range resp.Candidates[0].Content.Parts {
			if txt, ok := part.(genai.Text); ok {
				text.WriteString(string(txt))
			}
		}
	}
	if strings.TrimSpace(text.String()) == "" {
		return Response{}, errors.New(errors.CodeProviderEmptyReply, "provider returned no text content")
	}
	return Response{Text: strings.TrimSpace(text.String())}, nil
}

func classifyGeminiError(err error) error {
	var apiErr *googleapi.Error
	if stderrors.As(err, &apiErr) {
		switch apiErr.Code {
		case 401, 403:
			return errors.Wrap(errors.CodeProviderAuth, "provider rejected credentials", err)
		case 429:
			return errors.Wrap(errors.CodeProviderRateLimited, "provider throttled request", err)
		}
	}
	return errors.Wrap(errors.CodeProviderUnavailable, "generate request failed", err)
}
