package agent

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// AppendFunc observes every message appended to a session, with its 0-based position.
type AppendFunc func(seq int, msg Message)

// Session is the append-only dialogue history. Messages are never modified
// after they are appended.
type Session struct {
	messages []Message
	calls    map[string]struct{}
	onAppend AppendFunc
}

// SessionInput describes how a dialogue starts.
type SessionInput struct {
	SystemPrompt string
	Task         string
	InputFiles   []string
	Files        FileTools
	OnAppend     AppendFunc
}

// NewSession builds the opening history: system prompt, task, then a
// synthesized ReadFile call and result for each input file so the model starts
// with their contents. A missing input file is an error.
func NewSession(input SessionInput) (*Session, error) {
	s := &Session{calls: map[string]struct{}{}, onAppend: input.OnAppend}
	if err := s.Append(SystemMessage{Content: input.SystemPrompt}); err != nil {
		return nil, err
	}
	if err := s.Append(UserMessage{Content: input.Task}); err != nil {
		return nil, err
	}
	for _, path := range input.InputFiles {
		content, err := input.Files.Read(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, errors.Errorf("cannot open input file %s", path)
			}
			return nil, errors.Wrapf(err, "read input file %s", path)
		}
		arguments, err := json.Marshal(map[string]string{ArgFileName: path})
		if err != nil {
			return nil, errors.Wrap(err, "marshal read arguments")
		}
		call := &ToolCall{ID: NewCallID(), Name: ToolReadFile, Arguments: string(arguments)}
		if err := s.Append(AssistantMessage{ToolCall: call}); err != nil {
			return nil, err
		}
		if err := s.Append(ToolMessage{ToolCallID: call.ID, Content: content}); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Append adds msg to the history. A tool result must answer a call already in
// the history.
func (s *Session) Append(msg Message) error {
	if s.calls == nil {
		s.calls = map[string]struct{}{}
	}
	switch m := msg.(type) {
	case nil:
		return errors.New("message is nil")
	case ToolMessage:
		if m.ToolCallID == "" {
			return errors.New("tool result without a tool call id")
		}
		if _, ok := s.calls[m.ToolCallID]; !ok {
			return errors.Errorf("tool result for unknown call %q", m.ToolCallID)
		}
	case AssistantMessage:
		if m.ToolCall != nil {
			if m.ToolCall.ID == "" {
				return errors.New("tool call without an id")
			}
			s.calls[m.ToolCall.ID] = struct{}{}
		}
	}
	s.messages = append(s.messages, msg)
	if s.onAppend != nil {
		s.onAppend(len(s.messages)-1, msg)
	}
	return nil
}

// Messages returns a copy of the history.
func (s *Session) Messages() []Message {
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Len returns the number of messages in the history.
func (s *Session) Len() int {
	return len(s.messages)
}
