package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"passportx/internal/config"
	"passportx/internal/domain"
	"passportx/internal/extractor"
)

const (
	apiURL       = "https://openrouter.ai/api/v1/chat/completions"
	defaultModel = "qwen/qwen3.5-flash-02-23"
	providerName = "openrouter"
)

// Client implements port.VisionModel using the OpenRouter Chat Completions API.
type Client struct {
	apiKey   string
	model    string
	endpoint string
	routing  routingPreferences
	referer  string
	title    string
	client   *http.Client
}

// NewClient creates an OpenRouter client from the provider config.
func NewClient(cfg *config.ProviderConfig) *Client {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = apiURL
	}
	return newClient(cfg, endpoint)
}

// NewClientWithEndpoint creates a client pointing at a custom API endpoint (for testing).
func NewClientWithEndpoint(cfg *config.ProviderConfig, endpoint string) *Client {
	return newClient(cfg, endpoint)
}

func newClient(cfg *config.ProviderConfig, endpoint string) *Client {
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		apiKey:   cfg.APIKey,
		model:    model,
		endpoint: endpoint,
		routing: routingPreferences{
			Order:          cfg.Order,
			AllowFallbacks: cfg.AllowFallbacks,
			Sort:           cfg.Sort,
		},
		referer: cfg.Referer,
		title:   cfg.Title,
		client:  &http.Client{Timeout: timeout},
	}
}

// Model returns the model identifier requests are sent to.
func (c *Client) Model() string {
	return c.model
}

// chatRequest is the body sent to the chat-completions endpoint.
type chatRequest struct {
	Model    string             `json:"model"`
	Messages []chatMessage      `json:"messages"`
	Provider routingPreferences `json:"provider"`
}

type chatMessage struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

// routingPreferences restricts which upstream providers OpenRouter may use.
type routingPreferences struct {
	Order          []string `json:"order,omitempty"`
	AllowFallbacks bool     `json:"allow_fallbacks"`
	Sort           string   `json:"sort,omitempty"`
}

func (c *Client) buildRequest(req *domain.ExtractionRequest) chatRequest {
	return chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{
				Role: "user",
				Content: []contentPart{
					{Type: "text", Text: extractor.PassportPrompt},
					{Type: "image_url", ImageURL: &imageURL{URL: req.DataURI()}},
				},
			},
		},
		Provider: c.routing,
	}
}

// Extract sends the passport image to the model and returns its reply text.
// It makes exactly one HTTP call and never retries.
func (c *Client) Extract(ctx context.Context, req *domain.ExtractionRequest) (string, error) {
	if c.apiKey == "" {
		return "", domain.ErrProviderKeyMissing
	}

	bodyBytes, err := json.Marshal(c.buildRequest(req))
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	if c.referer != "" {
		httpReq.Header.Set("HTTP-Referer", c.referer)
	}
	if c.title != "" {
		httpReq.Header.Set("X-Title", c.title)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("calling openrouter API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &domain.UpstreamError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			Body:       string(respBody),
		}
	}

	return parseResponse(respBody, resp.StatusCode)
}

// apiResponse models the OpenRouter Chat Completions API response.
type apiResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Code    json.RawMessage `json:"code"`
		Message string          `json:"message"`
	} `json:"error"`
}

func parseResponse(body []byte, status int) (string, error) {
	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("unmarshaling response: %w", err)
	}

	// OpenRouter can report mid-request provider failures inside a 200 body.
	if resp.Error != nil {
		return "", &domain.UpstreamError{Provider: providerName, StatusCode: status, Body: resp.Error.Message}
	}

	if len(resp.Choices) == 0 {
		return "", &domain.UpstreamError{Provider: providerName, StatusCode: status, Body: "empty response: no choices"}
	}

	return resp.Choices[0].Message.Content, nil
}
