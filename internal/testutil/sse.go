package testutil

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// ChatServer is an httptest server that answers chat-completions requests
// with scripted SSE event sequences, one script per request.
type ChatServer struct {
	*httptest.Server

	mu       sync.Mutex
	scripts  [][]string
	requests []map[string]any
}

// NewChatServer starts a server that replays scripts in order. Each script is a
// list of raw `data:` payloads; the server writes them as SSE events. When the
// scripts run out the server answers with an empty stream.
func NewChatServer(t testing.TB, scripts ...[]string) *ChatServer {
	t.Helper()
	s := &ChatServer{scripts: scripts}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

func (s *ChatServer) handle(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	var decoded map[string]any
	_ = json.Unmarshal(body, &decoded)

	s.mu.Lock()
	s.requests = append(s.requests, decoded)
	var script []string
	if len(s.scripts) > 0 {
		script = s.scripts[0]
		s.scripts = s.scripts[1:]
	}
	s.mu.Unlock()

	w.Header().Set("Content-Type", "text/event-stream")
	flusher, _ := w.(http.Flusher)
	for _, payload := range script {
		fmt.Fprintf(w, "data: %s\n\n", payload)
		if flusher != nil {
			flusher.Flush()
		}
	}
}

// Requests returns the decoded JSON bodies received so far.
func (s *ChatServer) Requests() []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]map[string]any, len(s.requests))
	copy(out, s.requests)
	return out
}

// ContentEvent renders a content delta payload.
func ContentEvent(text string) string {
	return deltaEvent(map[string]any{"content": text})
}

// ReasoningEvent renders a reasoning delta payload.
func ReasoningEvent(text string) string {
	return deltaEvent(map[string]any{"reasoning_content": text})
}

// ToolCallEvent renders a tool-call delta payload. Empty fields are omitted.
func ToolCallEvent(id, name, arguments string) string {
	return IndexedToolCallEvent(0, id, name, arguments)
}

// IndexedToolCallEvent renders a tool-call delta for the call at position index.
func IndexedToolCallEvent(index int, id, name, arguments string) string {
	call := map[string]any{"index": index}
	function := map[string]any{}
	if id != "" {
		call["id"] = id
		call["type"] = "function"
	}
	if name != "" {
		function["name"] = name
	}
	if arguments != "" {
		function["arguments"] = arguments
	}
	if len(function) > 0 {
		call["function"] = function
	}
	return deltaEvent(map[string]any{"tool_calls": []any{call}})
}

// DoneEvent is the optional end-of-stream marker.
const DoneEvent = "[DONE]"

func deltaEvent(delta map[string]any) string {
	data, err := json.Marshal(map[string]any{
		"choices": []any{map[string]any{"index": 0, "delta": delta}},
	})
	if err != nil {
		panic(err)
	}
	return string(data)
}
