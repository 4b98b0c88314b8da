package call

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codefitter/internal/agent"
	"codefitter/internal/testutil"
)

// fakeProvider answers each request with the next scripted turn.
type fakeProvider struct {
	turns    []fakeTurn
	requests []agent.Request
}

type fakeTurn struct {
	msg agent.AssistantMessage
	err error
}

func (p *fakeProvider) Stream(_ context.Context, req agent.Request) (agent.Stream, error) {
	p.requests = append(p.requests, req)
	if len(p.turns) == 0 {
		return nil, errors.New("unexpected model request")
	}
	turn := p.turns[0]
	p.turns = p.turns[1:]
	if turn.err != nil {
		return nil, turn.err
	}
	var deltas []agent.Delta
	if turn.msg.Reasoning != "" {
		deltas = append(deltas, agent.Delta{Reasoning: turn.msg.Reasoning})
	}
	if turn.msg.Content != "" {
		deltas = append(deltas, agent.Delta{Content: turn.msg.Content})
	}
	if call := turn.msg.ToolCall; call != nil {
		deltas = append(deltas, agent.Delta{ToolCall: &agent.ToolCallDelta{ID: call.ID, Name: call.Name, Arguments: call.Arguments}})
	}
	return &sliceStream{deltas: deltas}, nil
}

type sliceStream struct {
	deltas []agent.Delta
}

func (s *sliceStream) Recv() (agent.Delta, error) {
	if len(s.deltas) == 0 {
		return agent.Delta{}, io.EOF
	}
	next := s.deltas[0]
	s.deltas = s.deltas[1:]
	return next, nil
}

func (s *sliceStream) Close() error { return nil }

// scriptedPrompter replays answers and records the questions asked.
type scriptedPrompter struct {
	confirms  []bool
	texts     []string
	questions []string
}

func (p *scriptedPrompter) Confirm(question string) (bool, error) {
	p.questions = append(p.questions, question)
	if len(p.confirms) == 0 {
		return false, io.EOF
	}
	answer := p.confirms[0]
	p.confirms = p.confirms[1:]
	return answer, nil
}

func (p *scriptedPrompter) ReadText(label string) (string, error) {
	p.questions = append(p.questions, label)
	if len(p.texts) == 0 {
		return "", io.EOF
	}
	text := p.texts[0]
	p.texts = p.texts[1:]
	return text, nil
}

// recordingPresenter keeps everything shown to the human.
type recordingPresenter struct {
	strings.Builder
}

func (p *recordingPresenter) Delta(d agent.Delta)     { p.WriteString(d.Reasoning + d.Content) }
func (p *recordingPresenter) EndResponse()            { p.WriteString("\n") }
func (p *recordingPresenter) ToolCall(name, f string) { p.WriteString("tool " + name + " " + f + "\n") }
func (p *recordingPresenter) Diff(text string)        { p.WriteString(text + "\n") }
func (p *recordingPresenter) FileContent(text string) { p.WriteString(text + "\n") }
func (p *recordingPresenter) Notice(text string)      { p.WriteString(text + "\n") }

type harness struct {
	root      string
	provider  *fakeProvider
	prompter  *scriptedPrompter
	presenter *recordingPresenter
	dialogue  *Dialogue
}

func newHarness(t *testing.T, turns []fakeTurn, prompter *scriptedPrompter) *harness {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "target.txt"), []byte("one\ntwo\nctx\nold\nfive\n"), 0o644))
	files := agent.FileTools{Root: root}
	session, err := agent.NewSession(agent.SessionInput{
		SystemPrompt: "You edit files.",
		Task:         "update target.txt",
		InputFiles:   []string{"target.txt"},
		Files:        files,
	})
	require.NoError(t, err)
	h := &harness{
		root:      root,
		provider:  &fakeProvider{turns: turns},
		prompter:  prompter,
		presenter: &recordingPresenter{},
	}
	h.dialogue = &Dialogue{
		Provider:  h.provider,
		Session:   session,
		Files:     files,
		Prompter:  prompter,
		Presenter: h.presenter,
	}
	return h
}

func (h *harness) readTarget(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(h.root, "target.txt"))
	require.NoError(t, err)
	return string(data)
}

func (h *harness) lastToolResult(t *testing.T) agent.ToolMessage {
	t.Helper()
	messages := h.dialogue.Session.Messages()
	for i := len(messages) - 1; i >= 0; i-- {
		if msg, ok := messages[i].(agent.ToolMessage); ok {
			return msg
		}
	}
	t.Fatalf("no tool result in history")
	return agent.ToolMessage{}
}

func modifyTurn(id, fileName, diffText string) fakeTurn {
	args, _ := json.Marshal(map[string]string{"file_name": fileName, "diff_content": diffText})
	return fakeTurn{msg: agent.AssistantMessage{
		Content:  "Here is the change.",
		ToolCall: &agent.ToolCall{ID: id, Name: agent.ToolModifyFile, Arguments: string(args)},
	}}
}

func textTurn(text string) fakeTurn {
	return fakeTurn{msg: agent.AssistantMessage{Content: text}}
}

const replaceOld = "@@ -3,2 +3,3 @@\n ctx\n-old\n+new1\n+new2\n"

func TestRunAppliesConfirmedModification(t *testing.T) {
	h := newHarness(t, []fakeTurn{
		modifyTurn("m1", "target.txt", replaceOld),
		textTurn("Done."),
	}, &scriptedPrompter{confirms: []bool{true, true}})

	result, err := h.dialogue.Run(testutil.Context(t, 0))

	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\nctx\nnew1\nnew2\nfive\n", h.readTarget(t))
	assert.Equal(t, []string{"target.txt"}, result.Modified)
	assert.Equal(t, 2, result.Turns)

	reply := h.lastToolResult(t)
	assert.Equal(t, "m1", reply.ToolCallID)
	assert.True(t, strings.HasPrefix(reply.Content, "CONFIRMED"))
	assert.Contains(t, h.presenter.String(), "-old")

	require.Len(t, h.provider.requests, 2)
	second := h.provider.requests[1]
	assert.Len(t, second.Messages, 6)
	assert.Len(t, second.Tools, 3)
}

func TestRunRejectionKeepsFileAndSendsFeedback(t *testing.T) {
	h := newHarness(t, []fakeTurn{
		modifyTurn("m1", "target.txt", replaceOld),
		textTurn("Understood."),
	}, &scriptedPrompter{
		confirms: []bool{false, true},
		texts:    []string{"  Keep 'old', rename ctx instead.\nThanks  "},
	})
	before := h.readTarget(t)

	result, err := h.dialogue.Run(testutil.Context(t, 0))

	require.NoError(t, err)
	assert.Equal(t, before, h.readTarget(t))
	assert.Empty(t, result.Modified)
	assert.Equal(t, 1, result.Rejected)
	reply := h.lastToolResult(t)
	assert.Equal(t, "m1", reply.ToolCallID)
	assert.True(t, strings.HasPrefix(reply.Content, "REJECTED"))
	assert.Contains(t, reply.Content, "  Keep 'old', rename ctx instead.\nThanks  ")
}

func TestRunMalformedArgumentsSkipHuman(t *testing.T) {
	h := newHarness(t, []fakeTurn{
		{msg: agent.AssistantMessage{ToolCall: &agent.ToolCall{ID: "bad", Name: agent.ToolModifyFile, Arguments: `{"file_name":"target.txt",`}}},
		textTurn("Sorry."),
	}, &scriptedPrompter{confirms: []bool{true}})

	_, err := h.dialogue.Run(testutil.Context(t, 0))

	require.NoError(t, err)
	assert.Equal(t, []string{"Stop the session?"}, h.prompter.questions)
	messages := h.dialogue.Session.Messages()
	var reply agent.ToolMessage
	for _, msg := range messages {
		if tool, ok := msg.(agent.ToolMessage); ok && tool.ToolCallID == "bad" {
			reply = tool
		}
	}
	assert.True(t, strings.HasPrefix(reply.Content, "FAILED"))
	assert.Contains(t, reply.Content, "ModifyFile")
}

func TestRunMalformedReadArgumentsReportFailure(t *testing.T) {
	h := newHarness(t, []fakeTurn{
		{msg: agent.AssistantMessage{ToolCall: &agent.ToolCall{ID: "r1", Name: agent.ToolReadFile, Arguments: `["target.txt"]`}}},
		textTurn("Retrying."),
	}, &scriptedPrompter{confirms: []bool{true}})

	_, err := h.dialogue.Run(testutil.Context(t, 0))

	require.NoError(t, err)
	reply := h.lastToolResult(t)
	assert.Equal(t, "r1", reply.ToolCallID)
	assert.True(t, strings.HasPrefix(reply.Content, "FAILED"))
	assert.Contains(t, reply.Content, agent.ToolReadFile)
	assert.NotContains(t, h.presenter.String(), "tool ReadFile")
}

func TestRunPatchFailureIsReportedToModel(t *testing.T) {
	h := newHarness(t, []fakeTurn{
		modifyTurn("m1", "missing.txt", replaceOld),
		textTurn("Oops."),
	}, &scriptedPrompter{confirms: []bool{true, true}})

	_, err := h.dialogue.Run(testutil.Context(t, 0))

	require.NoError(t, err)
	reply := h.lastToolResult(t)
	assert.True(t, strings.HasPrefix(reply.Content, "FAILED"))
	assert.Contains(t, reply.Content, "file_not_found")
	_, statErr := os.Stat(filepath.Join(h.root, "missing.txt"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunExitAfterModify(t *testing.T) {
	h := newHarness(t, []fakeTurn{modifyTurn("m1", "target.txt", replaceOld)}, &scriptedPrompter{confirms: []bool{true}})
	h.dialogue.Options.ExitAfterModify = true

	result, err := h.dialogue.Run(testutil.Context(t, 0))

	require.NoError(t, err)
	assert.Equal(t, 1, result.Turns)
	assert.Len(t, h.provider.requests, 1)
}

func TestRunReadAndWriteFile(t *testing.T) {
	writeArgs, _ := json.Marshal(map[string]string{"file_name": "out/new.txt", "file_content": "fresh\n"})
	h := newHarness(t, []fakeTurn{
		{msg: agent.AssistantMessage{ToolCall: &agent.ToolCall{ID: "r1", Name: agent.ToolReadFile, Arguments: `{"file_name":"target.txt"}`}}},
		{msg: agent.AssistantMessage{ToolCall: &agent.ToolCall{ID: "w1", Name: agent.ToolWriteFile, Arguments: string(writeArgs)}}},
		{msg: agent.AssistantMessage{ToolCall: &agent.ToolCall{ID: "x1", Name: "DeleteFile", Arguments: `{}`}}},
		textTurn("All done."),
	}, &scriptedPrompter{confirms: []bool{true, true}})

	result, err := h.dialogue.Run(testutil.Context(t, 0))

	require.NoError(t, err)
	data, readErr := os.ReadFile(filepath.Join(h.root, "out", "new.txt"))
	require.NoError(t, readErr)
	assert.Equal(t, "fresh\n", string(data))
	assert.Equal(t, []string{"out/new.txt"}, result.Modified)

	var replies []agent.ToolMessage
	for _, msg := range h.dialogue.Session.Messages()[4:] {
		if tool, ok := msg.(agent.ToolMessage); ok {
			replies = append(replies, tool)
		}
	}
	require.Len(t, replies, 3)
	assert.Equal(t, "one\ntwo\nctx\nold\nfive\n", replies[0].Content)
	assert.True(t, strings.HasPrefix(replies[1].Content, "CONFIRMED"))
	assert.Contains(t, replies[2].Content, "unknown tool")
}

func TestRunEmptyResponseAsksToStop(t *testing.T) {
	h := newHarness(t, []fakeTurn{
		{err: agent.ErrEmptyResponse},
		textTurn("Back again."),
	}, &scriptedPrompter{confirms: []bool{false, true}, texts: []string{"try again please"}})

	result, err := h.dialogue.Run(testutil.Context(t, 0))

	require.NoError(t, err)
	assert.Equal(t, 2, result.Turns)
	assert.Contains(t, h.presenter.String(), "no usable output")
	last := h.provider.requests[1].Messages
	assert.Equal(t, agent.UserMessage{Content: "try again please"}, last[len(last)-1])
}

func TestRunTransportErrorEndsSession(t *testing.T) {
	h := newHarness(t, []fakeTurn{{err: &agent.TransportError{Cause: context.DeadlineExceeded}}}, &scriptedPrompter{})

	_, err := h.dialogue.Run(testutil.Context(t, 0))

	require.Error(t, err)
	assert.True(t, errors.Is(err, agent.ErrTransport))
	assert.Empty(t, h.prompter.questions)
}

func TestRunEndsWhenInputCloses(t *testing.T) {
	h := newHarness(t, []fakeTurn{modifyTurn("m1", "target.txt", replaceOld)}, &scriptedPrompter{})
	before := h.readTarget(t)

	_, err := h.dialogue.Run(testutil.Context(t, 0))

	require.NoError(t, err)
	assert.Equal(t, before, h.readTarget(t))
}
