package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
)

// OpenAIClient talks to the OpenAI chat completions API (or any
// OpenAI-compatible gateway via a base URL override).
type OpenAIClient struct {
	llm *openai.LLM
}

func NewOpenAIClient(apiKey, modelName, baseURL string) (*OpenAIClient, error) {
	opts := []openai.Option{
		openai.WithModel(modelName),
		openai.WithToken(apiKey),
	}
	if baseURL != "" {
		opts = append(opts, openai.WithBaseURL(baseURL))
	}

	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
	}
	return &OpenAIClient{llm: llm}, nil
}

func (c *OpenAIClient) Close() error { return nil }

func (c *OpenAIClient) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.llm.GenerateContent(ctx, []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeHuman, prompt),
	})
	if err != nil {
		return "", classifyOpenAIError(err)
	}

	if len(resp.Choices) == 0 {
		return "", transient(errors.New("no choices returned from OpenAI"))
	}

	choice := resp.Choices[0]
	if strings.EqualFold(choice.StopReason, "content_filter") {
		return "", contentBlocked(fmt.Errorf("completion stopped: %s", choice.StopReason))
	}
	return choice.Content, nil
}

// classifyOpenAIError maps the SDK's flat error strings onto the shared
// taxonomy. The wording coupling stays contained here.
func classifyOpenAIError(err error) *ProviderError {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "429"),
		strings.Contains(msg, "quota"),
		strings.Contains(msg, "rate limit"):
		return quotaExceeded(err)
	case strings.Contains(msg, "content_filter"),
		strings.Contains(msg, "content management policy"),
		strings.Contains(msg, "safety"):
		return contentBlocked(err)
	default:
		return transient(err)
	}
}
