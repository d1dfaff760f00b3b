package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

var _ Client = (*OpenAIClient)(nil)

// OpenAIClient implements Client using chat completions. A client without an
// API key is still constructible; every Generate call then reports
// ErrNotConfigured so ingestion keeps working without enrichment.
type OpenAIClient struct {
	model      string
	opts       []option.RequestOption
	configured bool
}

func NewOpenAIClient(apiKey, model, baseURL string) *OpenAIClient {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &OpenAIClient{
		model:      model,
		opts:       opts,
		configured: apiKey != "",
	}
}

// Configured reports whether a credential is available.
func (c *OpenAIClient) Configured() bool {
	return c.configured
}

func (c *OpenAIClient) Generate(ctx context.Context, prompt string) (string, error) {
	if !c.configured {
		return "", ErrNotConfigured
	}
	if strings.TrimSpace(prompt) == "" {
		return "", nil
	}

	client := openai.NewClient(c.opts...)

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}
