package provider

import "context"

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of a chat conversation sent upstream.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Completer streams a chat completion. Implementations call emit once per
// text fragment, in arrival order, and return nil after the upstream stream
// ends normally. An error returned before the first emit means the request
// never started streaming; after the first emit it means the stream died
// mid-flight. If emit itself returns an error, streaming stops and that
// error is returned.
type Completer interface {
	Name() string
	StreamCompletion(ctx context.Context, messages []Message, emit func(delta string) error) error
}
