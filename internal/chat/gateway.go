package chat

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"stocktracker/internal/market"
	"stocktracker/internal/provider"
)

// Gateway bridges chat requests to a completion provider, re-emitting the
// provider's fragment stream as server-sent events. It holds no per-request
// state; concurrent requests are independent.
type Gateway struct {
	completer provider.Completer
	board     *market.Board
}

func NewGateway(c provider.Completer, b *market.Board) *Gateway {
	return &Gateway{completer: c, board: b}
}

func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req Request
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		http.Error(w, "message cannot be empty", http.StatusBadRequest)
		return
	}

	messages := g.buildMessages(req)

	// The SSE response commits lazily on the first frame, so a provider
	// failure before any fragment still surfaces as a plain error response.
	sse := &sseWriter{w: w}
	err := g.completer.StreamCompletion(r.Context(), messages, func(delta string) error {
		if delta == "" {
			return nil
		}
		return sse.send(StreamEvent{Content: delta})
	})
	if err != nil {
		if !sse.started {
			log.Printf("chat: provider setup failed: %v", err)
			http.Error(w, fmt.Sprintf("chat provider error: %v", err), http.StatusBadGateway)
			return
		}
		// Content already on the wire stands; the error becomes the
		// single terminal frame.
		log.Printf("chat: stream failed mid-flight: %v", err)
		_ = sse.send(StreamEvent{Error: fmt.Sprintf("stream interrupted: %v", err)})
		return
	}
	_ = sse.send(StreamEvent{Done: true})
}

// buildMessages assembles the ordered upstream conversation: the analyst
// instruction plus enrichment context, the caller's history in order, then
// the new user message.
func (g *Gateway) buildMessages(req Request) []provider.Message {
	messages := make([]provider.Message, 0, len(req.History)+2)
	messages = append(messages, provider.Message{
		Role:    provider.RoleSystem,
		Content: systemPrompt + "\n\n" + enrichmentContext(g.board, req.Message),
	})
	for _, t := range req.History {
		role := provider.RoleUser
		if t.Role == provider.RoleAssistant {
			role = provider.RoleAssistant
		}
		messages = append(messages, provider.Message{Role: role, Content: t.Content})
	}
	messages = append(messages, provider.Message{Role: provider.RoleUser, Content: req.Message})
	return messages
}

// sseWriter writes event frames, committing the response headers on the
// first frame only.
type sseWriter struct {
	w       http.ResponseWriter
	started bool
}

func (s *sseWriter) send(ev StreamEvent) error {
	if !s.started {
		h := s.w.Header()
		h.Set("Content-Type", "text/event-stream")
		h.Set("Cache-Control", "no-cache")
		h.Set("Connection", "keep-alive")
		s.w.WriteHeader(http.StatusOK)
		s.started = true
	}
	b, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", b); err != nil {
		return err
	}
	if fl, ok := s.w.(http.Flusher); ok {
		fl.Flush()
	}
	return nil
}
