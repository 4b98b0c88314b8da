package agent

import (
	"context"
	"encoding/json"
)

// ToolCallDelta is one streamed fragment of a tool call.
type ToolCallDelta struct {
	// Index is the call's position in the response; fragments of one call share it.
	Index     int
	ID        string
	Name      string
	Arguments string
}

// Delta is one incremental event decoded from the model stream.
type Delta struct {
	Reasoning string
	Content   string
	ToolCall  *ToolCallDelta
}

// Empty reports whether the delta carries no usable content.
func (d Delta) Empty() bool {
	return d.Reasoning == "" && d.Content == "" && d.ToolCall == nil
}

// Stream yields incremental model events until io.EOF.
type Stream interface {
	Recv() (Delta, error)
	Close() error
}

// Request is everything a provider needs for one model turn.
type Request struct {
	Messages []Message
	Tools    []ToolDefinition
}

// Provider streams model responses for a request.
type Provider interface {
	Stream(ctx context.Context, req Request) (Stream, error)
}

// ToolCall describes a tool invocation emitted by the model. Arguments is the
// raw text accumulated from the stream.
type ToolCall struct {
	ID        string
	Name      string
	Arguments string
}

// Args decodes the raw argument text into a JSON object.
func (c ToolCall) Args() (ToolCallArgs, error) {
	var args ToolCallArgs
	if err := json.Unmarshal([]byte(c.Arguments), &args); err != nil {
		return nil, &ToolArgumentError{Tool: c.Name, Reason: "arguments are not a JSON object: " + err.Error()}
	}
	if args == nil {
		return nil, &ToolArgumentError{Tool: c.Name, Reason: "arguments are not a JSON object"}
	}
	return args, nil
}
