package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/routellm/llm-router/internal/types"
)

const (
	anthropicBaseURL     = "https://api.anthropic.com/v1"
	anthropicVersion     = "2023-06-01"
	anthropicMaxTokens   = 8096
)

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type anthropicUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

type anthropicResponse struct {
	Content []anthropicContentBlock `json:"content"`
	Usage   anthropicUsage          `json:"usage"`
}

// AnthropicClient implements Client against Anthropic's native messages
// API, which differs from the OpenAI-compatible shape in headers and
// max_tokens requirement (spec §4.3).
type AnthropicClient struct {
	APIKey     string
	HTTPClient *http.Client

	DumpRequests bool
}

// NewAnthropicClient builds a client bound to apiKey.
func NewAnthropicClient(apiKey string) *AnthropicClient {
	return &AnthropicClient{APIKey: apiKey, HTTPClient: &http.Client{}}
}

func (c *AnthropicClient) Complete(ctx context.Context, prompt string, modelID string) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, CallDeadline)
	defer cancel()

	return measureLatency(func() (CompletionData, error) {
		return c.doRequest(ctx, prompt, modelID)
	})
}

func (c *AnthropicClient) doRequest(ctx context.Context, prompt, modelID string) (CompletionData, error) {
	reqBody := anthropicRequest{
		Model:     modelID,
		MaxTokens: anthropicMaxTokens,
		Messages: []anthropicMessage{
			{Role: "user", Content: prompt},
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return CompletionData{}, fmt.Errorf("failed to marshal anthropic request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, anthropicBaseURL+"/messages", bytes.NewReader(body))
	if err != nil {
		return CompletionData{}, fmt.Errorf("failed to build anthropic request: %w", err)
	}
	httpReq.Header.Set("x-api-key", c.APIKey)
	httpReq.Header.Set("anthropic-version", anthropicVersion)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return CompletionData{}, &types.TimeoutError{Provider: "anthropic", Model: modelID}
		}
		return CompletionData{}, &types.TransportError{Provider: "anthropic", Model: modelID, Cause: err}
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return CompletionData{}, &types.TransportError{Provider: "anthropic", Model: modelID, Cause: err}
	}

	if c.DumpRequests {
		dumpDebug("anthropic", modelID, body, bodyBytes, resp.StatusCode)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return CompletionData{}, &types.ProviderError{
			Provider:   "anthropic",
			Model:      modelID,
			StatusCode: resp.StatusCode,
			Body:       string(bodyBytes),
		}
	}

	var parsed anthropicResponse
	if err := json.Unmarshal(bodyBytes, &parsed); err != nil {
		return CompletionData{}, fmt.Errorf("failed to parse anthropic response: %w", err)
	}

	content := ""
	if len(parsed.Content) > 0 {
		content = parsed.Content[0].Text
	}

	return CompletionData{
		Content:      content,
		InputTokens:  parsed.Usage.InputTokens,
		OutputTokens: parsed.Usage.OutputTokens,
	}, nil
}
