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

// chatMessage mirrors the single-turn request body every OpenAI-compatible
// provider expects (spec §4.3/§6).
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type chatChoice struct {
	Message struct {
		Content *string `json:"content"`
	} `json:"message"`
}

type chatUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
	Usage   chatUsage    `json:"usage"`
}

// OpenAICompatClient implements Client for any OpenAI-compatible HTTP
// endpoint (openrouter, openai, google's OpenAI-compat surface, deepseek).
// Each Complete makes a single request; retries are driven by the caller.
// The request shape is adapted from the teacher's
// clients/openai/openai.go and groq/groq.go HTTP clients, generalised
// into one reusable client parameterised by base URL and provider name.
type OpenAICompatClient struct {
	ProviderName string
	BaseURL      string
	APIKey       string
	HTTPClient   *http.Client

	// DumpRequests enables an opt-in debug line per call (status code and
	// request/response sizes), restored from the teacher's
	// pkg/adapters/openai/retry.go saveResponseToFile behaviour; off by
	// default and never on the success-path critical semantics (spec's
	// ambient-stack debug tooling, see SPEC_FULL.md).
	DumpRequests bool
}

// NewOpenAICompatClient builds a client for providerName against baseURL.
func NewOpenAICompatClient(providerName, baseURL, apiKey string) *OpenAICompatClient {
	return &OpenAICompatClient{
		ProviderName: providerName,
		BaseURL:      baseURL,
		APIKey:       apiKey,
		HTTPClient:   &http.Client{},
	}
}

// Complete executes one completion call with the shared 30s deadline.
func (c *OpenAICompatClient) Complete(ctx context.Context, prompt string, modelID string) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, CallDeadline)
	defer cancel()

	return measureLatency(func() (CompletionData, error) {
		return c.doRequest(ctx, prompt, modelID)
	})
}

func (c *OpenAICompatClient) doRequest(ctx context.Context, prompt, modelID string) (CompletionData, error) {
	reqBody := chatRequest{
		Model: modelID,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return CompletionData{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return CompletionData{}, fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return CompletionData{}, &types.TimeoutError{Provider: c.ProviderName, Model: modelID}
		}
		return CompletionData{}, &types.TransportError{Provider: c.ProviderName, Model: modelID, Cause: err}
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return CompletionData{}, &types.TransportError{Provider: c.ProviderName, Model: modelID, Cause: err}
	}

	if c.DumpRequests {
		dumpDebug(c.ProviderName, modelID, body, bodyBytes, resp.StatusCode)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return CompletionData{}, &types.ProviderError{
			Provider:   c.ProviderName,
			Model:      modelID,
			StatusCode: resp.StatusCode,
			Body:       string(bodyBytes),
		}
	}

	var parsed chatResponse
	if err := json.Unmarshal(bodyBytes, &parsed); err != nil {
		return CompletionData{}, fmt.Errorf("failed to parse %s response: %w", c.ProviderName, err)
	}

	content := ""
	if len(parsed.Choices) > 0 && parsed.Choices[0].Message.Content != nil {
		content = *parsed.Choices[0].Message.Content
	}

	return CompletionData{
		Content:      content,
		InputTokens:  parsed.Usage.PromptTokens,
		OutputTokens: parsed.Usage.CompletionTokens,
	}, nil
}

// dumpDebug is the opt-in debug dump restored from the teacher's
// pkg/adapters/openai/retry.go. It prints one line to stdout with the
// status code and the request/response sizes; bodies are not written, and
// nothing it does affects the response.
func dumpDebug(providerName, modelID string, reqBody, respBody []byte, statusCode int) {
	fmt.Printf("debug dump [%s/%s] status=%d req=%d bytes resp=%d bytes\n",
		providerName, modelID, statusCode, len(reqBody), len(respBody))
}

// Provider base URLs for the five supported providers (spec §4.2/§6).
const (
	OpenRouterBaseURL = "https://openrouter.ai/api/v1"
	OpenAIBaseURL     = "https://api.openai.com/v1"
	DeepSeekBaseURL   = "https://api.deepseek.com/v1"
	GoogleBaseURL     = "https://generativelanguage.googleapis.com/v1beta/openai"
)
