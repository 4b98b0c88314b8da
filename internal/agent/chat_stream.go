package agent

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// chatStreamChunk is one SSE payload.
type chatStreamChunk struct {
	Choices []chatStreamChoice `json:"choices"`
	Error   *chatStreamError   `json:"error"`
}

type chatStreamError struct {
	Message string `json:"message"`
}

// chatStreamChoice contains a delta event.
type chatStreamChoice struct {
	Delta chatStreamDelta `json:"delta"`
}

// chatStreamDelta contains incremental content, reasoning or tool calls.
type chatStreamDelta struct {
	Content          *string              `json:"content"`
	ReasoningContent *string              `json:"reasoning_content"`
	Reasoning        *string              `json:"reasoning"`
	ToolCalls        []chatStreamToolCall `json:"tool_calls"`
}

// chatStreamToolCall represents a streaming tool call fragment.
type chatStreamToolCall struct {
	Index    int              `json:"index"`
	ID       string           `json:"id"`
	Function chatFunctionCall `json:"function"`
}

// sseStream decodes server-sent events lazily from a response body.
type sseStream struct {
	ctx    context.Context
	body   io.ReadCloser
	reader *bufio.Reader
	done   bool
}

func newSSEStream(ctx context.Context, body io.ReadCloser) *sseStream {
	return &sseStream{ctx: ctx, body: body, reader: bufio.NewReaderSize(body, 64*1024)}
}

// Recv returns the next usable delta. Events that fail to decode are skipped.
// The stream ends with io.EOF on [DONE] or when the body closes cleanly.
func (s *sseStream) Recv() (Delta, error) {
	for !s.done {
		line, err := s.reader.ReadString('\n')
		if len(line) > 0 {
			delta, ok, done, derr := decodeSSELine(line)
			if derr != nil {
				return Delta{}, derr
			}
			if done {
				s.done = true
				break
			}
			if ok {
				return delta, nil
			}
		}
		if err != nil {
			s.done = true
			if errors.Is(err, io.EOF) {
				break
			}
			if ctxErr := s.ctx.Err(); ctxErr != nil {
				return Delta{}, &TransportError{Cause: ctxErr}
			}
			return Delta{}, &TransportError{Cause: err}
		}
	}
	return Delta{}, io.EOF
}

// Close releases the underlying connection.
func (s *sseStream) Close() error {
	s.done = true
	return s.body.Close()
}

// decodeSSELine converts one SSE line into a delta. ok is false for lines that
// carry nothing usable; done is true on the [DONE] marker.
func decodeSSELine(line string) (delta Delta, ok bool, done bool, err error) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "data:") {
		return Delta{}, false, false, nil
	}
	data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
	if data == "" {
		return Delta{}, false, false, nil
	}
	if data == "[DONE]" {
		return Delta{}, false, true, nil
	}
	var chunk chatStreamChunk
	if err := json.Unmarshal([]byte(data), &chunk); err != nil {
		log.Debug().Err(err).Str("data", data).Msg("skipping malformed stream event")
		return Delta{}, false, false, nil
	}
	if chunk.Error != nil {
		return Delta{}, false, false, &TransportError{Cause: errors.Errorf("stream error: %s", chunk.Error.Message)}
	}
	if len(chunk.Choices) == 0 {
		return Delta{}, false, false, nil
	}
	raw := chunk.Choices[0].Delta
	if raw.Content != nil {
		delta.Content = *raw.Content
	}
	switch {
	case raw.ReasoningContent != nil:
		delta.Reasoning = *raw.ReasoningContent
	case raw.Reasoning != nil:
		delta.Reasoning = *raw.Reasoning
	}
	if len(raw.ToolCalls) > 0 {
		call := raw.ToolCalls[0]
		if call.ID == "" && call.Function.Name == "" && call.Function.Arguments == "" {
			return delta, !delta.Empty(), false, nil
		}
		delta.ToolCall = &ToolCallDelta{
			Index:     call.Index,
			ID:        call.ID,
			Name:      call.Function.Name,
			Arguments: call.Function.Arguments,
		}
	}
	return delta, !delta.Empty(), false, nil
}
