package openai

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"stocktracker/internal/provider"
)

// HTTPClient describes an HTTP client.
//
//go:generate mockgen -package=openai_test -destination=mock_http_client_test.go -source=client.go HTTPClient
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client streams chat completions from an OpenAI-compatible endpoint.
type Client struct {
	// endpoint is the full chat-completions URL.
	endpoint string
	// apiKey is sent as a bearer token when non-empty.
	apiKey string
	// model is the model name passed with every request.
	model string
	// httpClient is the HTTP client used for requests.
	httpClient HTTPClient
	// header contains additional headers to be sent with each request.
	header http.Header
}

// Option is a configuration option for the Client.
type Option func(*Client)

// WithEndpoint sets the chat-completions URL.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		c.endpoint = endpoint
	}
}

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(httpClient HTTPClient) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithModel sets the model name.
func WithModel(model string) Option {
	return func(c *Client) {
		c.model = model
	}
}

// WithHeader sets additional headers to be sent with each request.
func WithHeader(header http.Header) Option {
	return func(c *Client) {
		for key, values := range header {
			for _, value := range values {
				c.header.Add(key, value)
			}
		}
	}
}

const defaultEndpoint = "https://api.openai.com/v1/chat/completions"

// New creates a Client. The key may be empty for keyless local backends.
func New(key string, options ...Option) *Client {
	c := &Client{
		endpoint:   defaultEndpoint,
		apiKey:     key,
		model:      "gpt-4o-mini",
		httpClient: http.DefaultClient,
		header:     http.Header{},
	}
	for _, option := range options {
		option(c)
	}
	return c
}

func (c *Client) Name() string { return "openai" }

// chatRequest mirrors the OpenAI chat completion request.
type chatRequest struct {
	Model    string             `json:"model"`
	Messages []provider.Message `json:"messages"`
	Stream   bool               `json:"stream"`
}

type chatChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
		FinishReason *string `json:"finish_reason"`
	} `json:"choices"`
}

// StreamCompletion opens a streamed completion and forwards each non-empty
// delta to emit in arrival order. The SSE body is decoded line by line; the
// "[DONE]" sentinel ends the stream. Lines with an unparseable payload are
// skipped.
func (c *Client) StreamCompletion(ctx context.Context, messages []provider.Message, emit func(delta string) error) error {
	body, err := json.Marshal(chatRequest{Model: c.model, Messages: messages, Stream: true})
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	for k, vs := range c.header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 2<<10))
		return fmt.Errorf("POST %s -> %d: %s", c.endpoint, resp.StatusCode, string(b))
	}

	r := bufio.NewReader(resp.Body)
	for {
		line, err := r.ReadString('\n')
		if line != "" {
			if done, emitErr := c.dispatch(line, emit); emitErr != nil {
				return emitErr
			} else if done {
				return nil
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				// Upstream closed without the sentinel; treat as complete.
				return nil
			}
			return err
		}
	}
}

// dispatch parses one SSE line. It reports done=true on the [DONE] sentinel
// or a finish_reason, and forwards any delta text to emit.
func (c *Client) dispatch(line string, emit func(string) error) (done bool, err error) {
	line = strings.TrimRight(line, "\r\n")
	if !strings.HasPrefix(line, "data:") {
		return false, nil
	}
	payload := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
	if payload == "" {
		return false, nil
	}
	if payload == "[DONE]" {
		return true, nil
	}
	var chunk chatChunk
	if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
		return false, nil
	}
	if len(chunk.Choices) == 0 {
		return false, nil
	}
	choice := chunk.Choices[0]
	if choice.Delta.Content != "" {
		if err := emit(choice.Delta.Content); err != nil {
			return false, err
		}
	}
	if choice.FinishReason != nil && *choice.FinishReason != "" {
		return true, nil
	}
	return false, nil
}
