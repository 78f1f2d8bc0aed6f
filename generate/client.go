// Package generate talks to an OpenAI-compatible chat-completions API.
package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	lifeline "github.com/lifelinehq/lifeline"
)

// DefaultBaseURL is used when Options.BaseURL is empty.
const DefaultBaseURL = "https://api.openai.com/v1"

// Options configures a Client. APIKey is required at call time.
type Options struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
	// HTTPClient defaults to http.DefaultClient. No timeout is set beyond the
	// transport default; callers bound requests with their context.
	HTTPClient *http.Client
}

// Client performs single-shot chat completions.
type Client struct {
	baseURL     string
	apiKey      string
	model       string
	temperature float64
	maxTokens   int
	client      *http.Client
}

// NewClient creates a client from explicit options.
func NewClient(opts Options) *Client {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{
		baseURL:     baseURL,
		apiKey:      opts.APIKey,
		model:       opts.Model,
		temperature: opts.Temperature,
		maxTokens:   opts.MaxTokens,
		client:      hc,
	}
}

// NewClientFromConfig resolves options from cfg and the environment.
func NewClientFromConfig(cfg *lifeline.Config) *Client {
	opts := Options{
		BaseURL:     lifeline.ResolveBaseURL(cfg),
		APIKey:      lifeline.ResolveAPIKey(cfg),
		Model:       lifeline.ResolveModel(cfg),
		Temperature: lifeline.ResolveTemperature(cfg),
	}
	if cfg != nil {
		opts.MaxTokens = cfg.Generation.MaxTokens
	}
	return NewClient(opts)
}

type chatCompletionsRequest struct {
	Model       string             `json:"model"`
	Messages    []lifeline.Message `json:"messages"`
	Temperature float64            `json:"temperature"`
	MaxTokens   int                `json:"max_tokens,omitempty"`
}

type chatCompletionsResponse struct {
	Choices []chatChoice `json:"choices"`
	Error   *apiError    `json:"error,omitempty"`
}

type chatChoice struct {
	Message *chatMessage `json:"message"`
}

type chatMessage struct {
	Role    string  `json:"role"`
	Content *string `json:"content"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// Complete sends one chat-completion request and returns the assistant reply.
// It fails with *lifeline.ConfigurationError before any network attempt when no
// API key is set, *lifeline.UpstreamError on a non-2xx status or an error body, and
// *lifeline.EmptyResponseError when the reply carries no content.
func (c *Client) Complete(ctx context.Context, p lifeline.Params) (string, error) {
	if c.apiKey == "" {
		return "", &lifeline.ConfigurationError{
			Key:    "api_key",
			Reason: "not configured; set LIFELINE_API_KEY or generation.api_key",
		}
	}
	if p.Prompt == "" {
		return "", lifeline.ErrEmptyPrompt
	}

	reqBody := c.buildRequest(p)
	data, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	slog.Debug("sending completion", "model", reqBody.Model, "messages", len(reqBody.Messages), "temperature", reqBody.Temperature)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to call API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &lifeline.UpstreamError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var result chatCompletionsResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to parse response: %w (body: %s)", err, string(body))
	}

	// Some compatible servers report failures in a 2xx body.
	if result.Error != nil {
		return "", &lifeline.UpstreamError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if len(result.Choices) == 0 {
		return "", &lifeline.EmptyResponseError{Reason: "no choices in response"}
	}
	msg := result.Choices[0].Message
	if msg == nil || msg.Content == nil || *msg.Content == "" {
		return "", &lifeline.EmptyResponseError{Reason: "no message content in first choice"}
	}

	return *msg.Content, nil
}

func (c *Client) buildRequest(p lifeline.Params) chatCompletionsRequest {
	model := c.model
	if p.Model != "" {
		model = p.Model
	}
	temperature := c.temperature
	if p.Temperature != nil {
		temperature = *p.Temperature
	}
	return chatCompletionsRequest{
		Model:       model,
		Messages:    p.Messages(),
		Temperature: temperature,
		MaxTokens:   c.maxTokens,
	}
}
