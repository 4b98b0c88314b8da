package agent

import (
	"context"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// DeltaFunc observes deltas as they arrive, for live display.
type DeltaFunc func(Delta)

// Assemble drains stream into one assistant message. Text deltas of the same
// kind are concatenated in arrival order. At most one tool call is built from
// the fragments sharing the first index seen: the first non-empty id names it,
// name and argument fragments are appended. Fragments of other calls are dropped.
//
// The stream is always closed. A stream without usable content yields
// ErrEmptyResponse.
func Assemble(ctx context.Context, stream Stream, observe DeltaFunc) (AssistantMessage, error) {
	defer stream.Close()

	var reasoning, content strings.Builder
	var call *ToolCall
	var name, arguments strings.Builder
	callIndex := 0
	events := 0
	for {
		if err := ctx.Err(); err != nil {
			return AssistantMessage{}, &TransportError{Cause: err}
		}
		delta, err := stream.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return AssistantMessage{}, err
		}
		if delta.Empty() {
			continue
		}
		events++
		if observe != nil {
			observe(delta)
		}
		reasoning.WriteString(delta.Reasoning)
		content.WriteString(delta.Content)
		if frag := delta.ToolCall; frag != nil {
			if call == nil {
				call = &ToolCall{}
				callIndex = frag.Index
			} else if frag.Index != callIndex {
				log.Debug().Int("index", frag.Index).Str("call_id", frag.ID).Msg("dropping fragment of additional tool call")
				continue
			}
			if call.ID == "" && frag.ID != "" {
				call.ID = frag.ID
			}
			name.WriteString(frag.Name)
			arguments.WriteString(frag.Arguments)
		}
	}

	msg := AssistantMessage{Reasoning: reasoning.String(), Content: content.String()}
	if call != nil {
		call.Name = name.String()
		call.Arguments = arguments.String()
		if call.ID == "" {
			call.ID = NewCallID()
		}
		msg.ToolCall = call
	}
	log.Debug().
		Int("events", events).
		Int("reasoning_bytes", len(msg.Reasoning)).
		Int("content_bytes", len(msg.Content)).
		Bool("tool_call", msg.ToolCall != nil).
		Msg("assembled model response")
	if msg.Empty() {
		return AssistantMessage{}, ErrEmptyResponse
	}
	return msg, nil
}

// NewCallID returns a short correlation id for calls the model did not name.
func NewCallID() string {
	return "call_" + uuid.NewString()[:6]
}
