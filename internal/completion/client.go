// Package completion talks to a text-completion HTTP endpoint.
package completion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	CompletionsPath = "/v1/completions"
	DefaultTimeout  = 60 * time.Second
)

// StopSequences end generation at the closing quote or end of line.
var StopSequences = []string{"\n", "\""}

// Completer turns a prompt into generated text.
type Completer interface {
	Complete(ctx context.Context, prompt string, opts ...CallOption) (string, error)
}

// Client calls {endpoint}/v1/completions with a bearer credential.
type Client struct {
	endpoint   string
	apiKey     string
	maxTokens  int
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the round trip timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient = &http.Client{Timeout: d}
	}
}

// New creates a client for endpoint using maxTokens as the default token budget.
func New(endpoint, apiKey string, maxTokens int, opts ...Option) *Client {
	c := &Client{
		endpoint:  strings.TrimSuffix(endpoint, "/"),
		apiKey:    apiKey,
		maxTokens: maxTokens,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the base URL without a trailing slash.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// MaxTokens returns the default token budget.
func (c *Client) MaxTokens() int {
	return c.maxTokens
}

type callOptions struct {
	maxTokens int
}

// CallOption adjusts a single Complete call.
type CallOption func(*callOptions)

// WithMaxTokens overrides the client's default token budget for one call.
func WithMaxTokens(n int) CallOption {
	return func(o *callOptions) {
		o.maxTokens = n
	}
}

type request struct {
	Prompt    string   `json:"prompt"`
	Stop      []string `json:"stop"`
	MaxTokens int      `json:"max_tokens"`
}

type response struct {
	Choices []struct {
		Text string `json:"text"`
	} `json:"choices"`
}

// Complete sends prompt and returns the first generated choice.
// Every failure is a *RequestError. Nothing is retried.
func (c *Client) Complete(ctx context.Context, prompt string, opts ...CallOption) (string, error) {
	o := callOptions{maxTokens: c.maxTokens}
	for _, opt := range opts {
		opt(&o)
	}

	payload, err := json.Marshal(request{
		Prompt:    prompt,
		Stop:      StopSequences,
		MaxTokens: o.maxTokens,
	})
	if err != nil {
		return "", &RequestError{Err: fmt.Errorf("failed to marshal request: %w", err)}
	}

	uri := c.endpoint + CompletionsPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uri, bytes.NewReader(payload))
	if err != nil {
		return "", &RequestError{Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	log.Info().Str("prompt", prompt).Msg("Sending prompt")
	log.Debug().Str("endpoint", uri).Int("max_tokens", o.maxTokens).Msg("Making completion request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &RequestError{Err: fmt.Errorf("failed to make request: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &RequestError{StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &RequestError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var parsed response
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", &RequestError{StatusCode: resp.StatusCode, Body: string(body), Err: fmt.Errorf("failed to parse response: %w", err)}
	}
	if len(parsed.Choices) == 0 {
		return "", &RequestError{StatusCode: resp.StatusCode, Body: string(body), Err: fmt.Errorf("response has no choices")}
	}

	log.Debug().Int("status", resp.StatusCode).Int("choices", len(parsed.Choices)).Msg("Completion request successful")
	return parsed.Choices[0].Text, nil
}
