package chat

// StreamEvent is one frame of a chat response stream. Exactly one of the
// fields is set: a text fragment, the done marker, or a terminal error.
// A stream carries zero or more content events followed by exactly one
// terminal event.
type StreamEvent struct {
	Content string `json:"content,omitempty"`
	Done    bool   `json:"done,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Turn is one entry of the conversation history carried by the client.
type Turn struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// Request is the chat request body.
type Request struct {
	Message string `json:"message"`
	History []Turn `json:"history"`
}
