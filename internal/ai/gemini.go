package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// GeminiClient wraps a single Gemini model behind the Provider interface.
type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiClient(ctx context.Context, apiKey, modelName string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.7)

	return &GeminiClient{client: client, model: model}, nil
}

func (c *GeminiClient) Close() error {
	return c.client.Close()
}

func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", classifyGeminiError(err)
	}

	// A candidate cut off by the safety filter counts as blocked even when
	// the call itself succeeded.
	for _, cand := range resp.Candidates {
		if cand.FinishReason == genai.FinishReasonSafety {
			return "", contentBlocked(fmt.Errorf("candidate blocked: %s", cand.FinishReason))
		}
	}

	text := extractText(resp)
	if text == "" {
		return "", transient(errors.New("Gemini returned an empty response"))
	}
	return text, nil
}

func classifyGeminiError(err error) *ProviderError {
	var blocked *genai.BlockedError
	if errors.As(err, &blocked) {
		return contentBlocked(err)
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusTooManyRequests {
		return quotaExceeded(err)
	}

	// The SDK does not type every failure; fall back to message matching
	// for quota refusals surfaced as plain errors.
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "quota") || strings.Contains(msg, "rate limit") || strings.Contains(msg, "429") {
		return quotaExceeded(err)
	}
	if strings.Contains(msg, "safety") || strings.Contains(msg, "blocked") {
		return contentBlocked(err)
	}
	return transient(err)
}

func extractText(resp *genai.GenerateContentResponse) string {
	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if t, ok := part.(genai.Text); ok {
					text.WriteString(string(t))
				}
			}
		}
	}
	return text.String()
}
