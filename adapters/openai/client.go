// Package openai is a minimal client for OpenAI-compatible chat completion
// endpoints such as OpenAI, Groq or a local Ollama server.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/miguelAagelcruzvargas/sara-intent/internal/retry"
)

// DefaultBaseURL is the OpenAI API root
const DefaultBaseURL = "https://api.openai.com/v1"

// Client is a minimal client for the Chat Completions API
type Client struct {
	APIKey      string
	BaseURL     string
	HTTPClient  *http.Client
	RetryConfig retry.Config
	Logger      *zap.Logger
}

var _ LanguageModelClient = (*Client)(nil)

// NewClient creates a client for baseURL, or DefaultBaseURL when empty
func NewClient(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		APIKey:      apiKey,
		BaseURL:     strings.TrimRight(baseURL, "/"),
		HTTPClient:  http.DefaultClient,
		RetryConfig: retry.DefaultConfig(),
		Logger:      zap.NewNop(),
	}
}

// ChatCompletion sends a chat completion request with retry logic
func (c *Client) ChatCompletion(ctx context.Context, req ChatCompletionRequest) (*ChatCompletionResponse, error) {
	bodyBytes, err := retry.Execute(ctx, retry.Options{
		Config:       c.RetryConfig,
		ErrorChecker: isRetryableError,
		Logger:       c.Logger,
		APIName:      "chat completions",
	}, c.attempt(ctx, c.BaseURL+"/chat/completions", req))
	if err != nil {
		return nil, err
	}

	var chatResp ChatCompletionResponse
	if err := json.Unmarshal(bodyBytes, &chatResp); err != nil {
		return nil, &ChatCompletionError{
			Message: fmt.Sprintf("failed to parse chat completion response: %v", err),
			RawBody: json.RawMessage(bodyBytes),
		}
	}
	return &chatResp, nil
}

// isRetryableError retries network errors, rate limits and server errors
func isRetryableError(err error, statusCode int, _ []byte) bool {
	if err != nil && statusCode == 0 {
		return true
	}
	return statusCode == http.StatusTooManyRequests || statusCode >= 500
}

func (c *Client) attempt(ctx context.Context, url string, requestBody any) retry.Func[[]byte] {
	return func(attempt int) ([]byte, int, []byte, error) {
		body, err := json.Marshal(requestBody)
		if err != nil {
			return nil, 0, nil, fmt.Errorf("failed to marshal request: %w", err)
		}

		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return nil, 0, nil, fmt.Errorf("failed to create HTTP request: %w", err)
		}
		if c.APIKey != "" {
			httpReq.Header.Set("Authorization", "Bearer "+c.APIKey)
		}
		httpReq.Header.Set("Content-Type", "application/json")

		resp, err := c.HTTPClient.Do(httpReq)
		if err != nil {
			return nil, 0, nil, err
		}
		defer resp.Body.Close()

		bodyBytes, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, resp.StatusCode, nil, fmt.Errorf("failed to read response body: %w", err)
		}

		if resp.StatusCode != http.StatusOK {
			msg := fmt.Sprintf("chat completions API error %d", resp.StatusCode)
			var apiErr ChatCompletionResponseError
			if json.Unmarshal(bodyBytes, &apiErr) == nil && apiErr.Error.Message != "" {
				msg += ": " + apiErr.Error.Message
			}
			return nil, resp.StatusCode, bodyBytes, &ChatCompletionError{
				Message:    msg,
				StatusCode: resp.StatusCode,
				RawBody:    json.RawMessage(bodyBytes),
			}
		}

		return bodyBytes, resp.StatusCode, bodyBytes, nil
	}
}
