// Package chatclient consumes the chat gateway's event stream and turns it
// into incremental callbacks, the way a UI layer wants to see it.
package chatclient

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"stocktracker/internal/chat"
	"stocktracker/internal/httpx"
)

// Callbacks receive the decoded stream. Exactly one terminal callback
// (OnDone or OnError) fires per Stream call, after which no further
// callbacks are invoked. Nil callbacks are simply skipped.
type Callbacks struct {
	OnChunk func(text string)
	OnDone  func()
	OnError func(message string)
}

func (cb Callbacks) chunk(text string) {
	if cb.OnChunk != nil {
		cb.OnChunk(text)
	}
}

func (cb Callbacks) done() {
	if cb.OnDone != nil {
		cb.OnDone()
	}
}

func (cb Callbacks) fail(message string) {
	if cb.OnError != nil {
		cb.OnError(message)
	}
}

// Client talks to a chat gateway. There is no cancellation API: once Stream
// starts, it runs until the server sends a terminal frame or closes the
// connection.
type Client struct {
	BaseURL string
	HTTP    *httpx.Client
}

// New creates a client for the gateway at baseURL. The underlying HTTP
// client has no overall deadline; a chat stream may run arbitrarily long.
func New(baseURL string) *Client {
	return &Client{BaseURL: strings.TrimRight(baseURL, "/"), HTTP: httpx.New(0)}
}

const dataPrefix = "data: "

// errorResponseMsg is the fixed message reported for any non-success
// transport response.
const errorResponseMsg = "chat request failed"

// Stream posts the message and history to the gateway and dispatches the
// framed event stream to cb. All effects happen through the callbacks.
func (c *Client) Stream(message string, history []chat.Turn, cb Callbacks) {
	body, err := json.Marshal(chat.Request{Message: message, History: history})
	if err != nil {
		cb.fail(err.Error())
		return
	}
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, c.BaseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		cb.fail(err.Error())
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.HTTP.Do(req.Context(), req)
	if err != nil {
		cb.fail(err.Error())
		return
	}
	// Single close on every exit path of the read loop.
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		cb.fail(errorResponseMsg)
		return
	}

	r := bufio.NewReader(resp.Body)
	for {
		line, err := r.ReadString('\n')
		if line != "" {
			if terminal := c.dispatch(line, cb); terminal {
				// Bytes still pending on the wire are discarded.
				return
			}
		}
		if err != nil {
			// Stream ended without a terminal frame (EOF or otherwise):
			// the caller still gets exactly one terminal callback.
			if !errors.Is(err, io.EOF) {
				cb.fail(err.Error())
				return
			}
			cb.done()
			return
		}
	}
}

// dispatch decodes one line and fires the matching callback. Malformed
// payloads are skipped; the stream continues with the next line.
func (c *Client) dispatch(line string, cb Callbacks) (terminal bool) {
	line = strings.TrimRight(line, "\r\n")
	if !strings.HasPrefix(line, dataPrefix) {
		return false
	}
	var ev chat.StreamEvent
	if err := json.Unmarshal([]byte(strings.TrimPrefix(line, dataPrefix)), &ev); err != nil {
		return false
	}
	switch {
	case ev.Error != "":
		cb.fail(ev.Error)
		return true
	case ev.Done:
		cb.done()
		return true
	case ev.Content != "":
		cb.chunk(ev.Content)
	}
	return false
}
