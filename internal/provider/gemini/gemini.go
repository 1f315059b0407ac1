package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"stocktracker/internal/provider"
)

// Client streams chat completions from the Gemini API.
type Client struct {
	client *genai.Client
	model  string
}

// New creates a Gemini-backed completer. An empty key falls back to the
// SDK's environment-based configuration.
func New(ctx context.Context, key, model string) (*Client, error) {
	var cfg *genai.ClientConfig
	if key != "" {
		cfg = &genai.ClientConfig{APIKey: key, Backend: genai.BackendGeminiAPI}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}
	return &Client{client: client, model: model}, nil
}

func (c *Client) Name() string { return "gemini" }

// StreamCompletion translates the message list into Gemini contents (system
// turns become the system instruction, assistant maps to the "model" role)
// and forwards each streamed text part to emit.
func (c *Client) StreamCompletion(ctx context.Context, messages []provider.Message, emit func(delta string) error) error {
	var system string
	contents := make([]*genai.Content, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case provider.RoleSystem:
			if system != "" {
				system += "\n"
			}
			system += m.Content
		case provider.RoleAssistant:
			contents = append(contents, &genai.Content{Role: "model", Parts: []*genai.Part{{Text: m.Content}}})
		default:
			contents = append(contents, &genai.Content{Role: "user", Parts: []*genai.Part{{Text: m.Content}}})
		}
	}
	var config *genai.GenerateContentConfig
	if system != "" {
		config = &genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: system}}},
		}
	}

	for resp, err := range c.client.Models.GenerateContentStream(ctx, c.model, contents, config) {
		if err != nil {
			return err
		}
		for _, cand := range resp.Candidates {
			if cand.Content == nil {
				continue
			}
			for _, part := range cand.Content.Parts {
				if part.Text == "" {
					continue
				}
				if err := emit(part.Text); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
