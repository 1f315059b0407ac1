package chatclient_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"stocktracker/internal/chat"
	"stocktracker/internal/chatclient"
)

// recorder captures the callback sequence so ordering can be asserted.
type recorder struct {
	events []string
}

func (r *recorder) callbacks() chatclient.Callbacks {
	return chatclient.Callbacks{
		OnChunk: func(text string) { r.events = append(r.events, "chunk:"+text) },
		OnDone:  func() { r.events = append(r.events, "done") },
		OnError: func(message string) { r.events = append(r.events, "error:"+message) },
	}
}

func frameServer(t *testing.T, frames ...string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		for _, f := range frames {
			fmt.Fprintf(w, "data: %s\n\n", f)
		}
	}))
}

func assertSequence(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("callback sequence = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("callback sequence = %v, want %v", got, want)
		}
	}
}

func TestStream_ChunksThenDone(t *testing.T) {
	ts := frameServer(t,
		`{"content":"Apple"}`,
		`{"content":" is"}`,
		`{"content":" strong."}`,
		`{"done":true}`,
	)
	defer ts.Close()

	rec := &recorder{}
	chatclient.New(ts.URL).Stream("Analyze AAPL", nil, rec.callbacks())
	assertSequence(t, rec.events, []string{"chunk:Apple", "chunk: is", "chunk: strong.", "done"})
}

func TestStream_ErrorFrameStopsDispatch(t *testing.T) {
	ts := frameServer(t,
		`{"content":"Apple"}`,
		`{"error":"upstream reset"}`,
		`{"content":"never seen"}`,
		`{"done":true}`,
	)
	defer ts.Close()

	rec := &recorder{}
	chatclient.New(ts.URL).Stream("Analyze AAPL", nil, rec.callbacks())
	assertSequence(t, rec.events, []string{"chunk:Apple", "error:upstream reset"})
}

func TestStream_FramesAfterDoneAreDiscarded(t *testing.T) {
	ts := frameServer(t,
		`{"content":"hello"}`,
		`{"done":true}`,
		`{"content":"stale"}`,
	)
	defer ts.Close()

	rec := &recorder{}
	chatclient.New(ts.URL).Stream("hi", nil, rec.callbacks())
	assertSequence(t, rec.events, []string{"chunk:hello", "done"})
}

func TestStream_EOFWithoutTerminalStillDone(t *testing.T) {
	ts := frameServer(t,
		`{"content":"partial"}`,
	)
	defer ts.Close()

	rec := &recorder{}
	chatclient.New(ts.URL).Stream("hi", nil, rec.callbacks())
	assertSequence(t, rec.events, []string{"chunk:partial", "done"})
}

func TestStream_EmptyBodyStillDone(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
	}))
	defer ts.Close()

	rec := &recorder{}
	chatclient.New(ts.URL).Stream("hi", nil, rec.callbacks())
	assertSequence(t, rec.events, []string{"done"})
}

func TestStream_MalformedFrameSkipped(t *testing.T) {
	ts := frameServer(t,
		`{not json`,
		`{"content":"ok"}`,
		`{"done":true}`,
	)
	defer ts.Close()

	rec := &recorder{}
	chatclient.New(ts.URL).Stream("hi", nil, rec.callbacks())
	assertSequence(t, rec.events, []string{"chunk:ok", "done"})
}

func TestStream_NonSuccessStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "message cannot be empty", http.StatusBadRequest)
	}))
	defer ts.Close()

	rec := &recorder{}
	chatclient.New(ts.URL).Stream("", nil, rec.callbacks())
	assertSequence(t, rec.events, []string{"error:chat request failed"})
}

func TestStream_ConnectionFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close() // nothing listening anymore

	rec := &recorder{}
	chatclient.New(ts.URL).Stream("hi", nil, rec.callbacks())
	if len(rec.events) != 1 || !strings.HasPrefix(rec.events[0], "error:") {
		t.Fatalf("callback sequence = %v, want a single error", rec.events)
	}
	if rec.events[0] == "error:" {
		t.Fatal("connection error should carry the underlying message")
	}
}

func TestStream_SendsMessageAndHistory(t *testing.T) {
	var got chat.Request
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"done\":true}\n\n")
	}))
	defer ts.Close()

	history := []chat.Turn{{Role: "user", Content: "hi"}, {Role: "assistant", Content: "hello"}}
	rec := &recorder{}
	chatclient.New(ts.URL).Stream("Analyze AAPL", history, rec.callbacks())

	if got.Message != "Analyze AAPL" {
		t.Errorf("message = %q", got.Message)
	}
	if len(got.History) != 2 || got.History[1].Content != "hello" {
		t.Errorf("history = %+v", got.History)
	}
	assertSequence(t, rec.events, []string{"done"})
}

func TestStream_NilCallbacksDoNotPanic(t *testing.T) {
	ts := frameServer(t, `{"content":"x"}`, `{"done":true}`)
	defer ts.Close()
	chatclient.New(ts.URL).Stream("hi", nil, chatclient.Callbacks{})
}
