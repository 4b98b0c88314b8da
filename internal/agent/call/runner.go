package call

import (
	"context"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"codefitter/internal/agent"
)

// Dialogue drives one session between the model and the human.
type Dialogue struct {
	Provider  agent.Provider
	Session   *agent.Session
	Files     agent.FileTools
	Prompter  Prompter
	Presenter Presenter
	Options   RunOptions
}

// pendingEdit is a WriteFile or ModifyFile waiting for the human.
type pendingEdit struct {
	call     agent.ToolCall
	fileName string
	content  string
	diff     string
}

// Run loops through the dialogue states until the human stops or a transport
// failure ends the session. Model and patch failures are fed back to the model
// as tool results.
func (d *Dialogue) Run(ctx context.Context) (RunResult, error) {
	var result RunResult
	var call *agent.ToolCall
	var edit *pendingEdit
	state := StateAwaitingModel

	for state != StateTerminated {
		log.Debug().Str("state", state.String()).Int("messages", d.Session.Len()).Msg("dialogue step")
		var err error
		switch state {
		case StateAwaitingModel:
			result.Turns++
			call, state, err = d.awaitModel(ctx)
		case StateHandlingToolCall:
			edit, state, err = d.handleToolCall(*call)
		case StateAwaitingConfirmation:
			state, err = d.confirm(edit, &result)
		case StateAwaitingFeedback:
			result.Rejected++
			state, err = d.collectFeedback(edit)
		default:
			err = errors.Errorf("unexpected state %s", state)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				log.Info().Str("state", state.String()).Msg("input closed, ending session")
				break
			}
			return result, err
		}
	}
	return result, nil
}

// awaitModel requests one model turn and decides where the dialogue goes next.
func (d *Dialogue) awaitModel(ctx context.Context) (*agent.ToolCall, State, error) {
	msg, err := d.requestModel(ctx)
	if err != nil {
		if errors.Is(err, agent.ErrEmptyResponse) {
			log.Warn().Err(err).Msg("model returned no usable output")
			d.Presenter.Notice("The model returned no usable output.")
			return d.askToStop()
		}
		d.Presenter.Notice("Model request failed: " + err.Error())
		return nil, StateTerminated, err
	}
	if err := d.Session.Append(msg); err != nil {
		return nil, StateTerminated, err
	}
	if msg.ToolCall == nil {
		return d.askToStop()
	}
	log.Debug().
		Str("tool", msg.ToolCall.Name).
		Str("call_id", msg.ToolCall.ID).
		Msg("model requested tool")
	return msg.ToolCall, StateHandlingToolCall, nil
}

// requestModel streams one response under the per-request timeout.
func (d *Dialogue) requestModel(ctx context.Context) (agent.AssistantMessage, error) {
	if d.Options.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.Options.RequestTimeout)
		defer cancel()
	}
	stream, err := d.Provider.Stream(ctx, agent.Request{
		Messages: d.Session.Messages(),
		Tools:    agent.ToolDeclarations(),
	})
	if err != nil {
		return agent.AssistantMessage{}, err
	}
	msg, err := agent.Assemble(ctx, stream, d.Presenter.Delta)
	d.Presenter.EndResponse()
	return msg, err
}

// askToStop ends the session on yes. On no, optional follow-up text is added
// as a user message before the model is asked again.
func (d *Dialogue) askToStop() (*agent.ToolCall, State, error) {
	stop, err := d.Prompter.Confirm("Stop the session?")
	if err != nil {
		return nil, StateTerminated, err
	}
	if stop {
		return nil, StateTerminated, nil
	}
	text, err := d.Prompter.ReadText("Message for the model (empty to retry)")
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, StateTerminated, err
	}
	if strings.TrimSpace(text) != "" {
		if err := d.Session.Append(agent.UserMessage{Content: text}); err != nil {
			return nil, StateTerminated, err
		}
	}
	return nil, StateAwaitingModel, nil
}

// handleToolCall runs reads directly and stages writes and patches for confirmation.
func (d *Dialogue) handleToolCall(call agent.ToolCall) (*pendingEdit, State, error) {
	switch call.Name {
	case agent.ToolReadFile:
		args, err := agent.ParseReadFileArgs(call)
		if err != nil {
			return nil, StateAwaitingModel, d.replyArgumentError(call, err)
		}
		d.Presenter.ToolCall(call.Name, args.FileName)
		return nil, StateAwaitingModel, d.reply(call, d.Files.ExecuteRead(call))
	case agent.ToolWriteFile:
		args, err := agent.ParseWriteFileArgs(call)
		if err != nil {
			return nil, StateAwaitingModel, d.replyArgumentError(call, err)
		}
		d.Presenter.ToolCall(call.Name, args.FileName)
		d.Presenter.FileContent(args.FileContent)
		return &pendingEdit{call: call, fileName: args.FileName, content: args.FileContent}, StateAwaitingConfirmation, nil
	case agent.ToolModifyFile:
		args, err := agent.ParseModifyFileArgs(call)
		if err != nil {
			return nil, StateAwaitingModel, d.replyArgumentError(call, err)
		}
		d.Presenter.ToolCall(call.Name, args.FileName)
		d.Presenter.Diff(args.DiffContent)
		return &pendingEdit{call: call, fileName: args.FileName, diff: args.DiffContent}, StateAwaitingConfirmation, nil
	default:
		log.Warn().Str("tool", call.Name).Msg("model called unknown tool")
		return nil, StateAwaitingModel, d.reply(call, unknownToolResult(call.Name))
	}
}

// confirm asks before touching the file and applies the edit on yes.
func (d *Dialogue) confirm(edit *pendingEdit, result *RunResult) (State, error) {
	ok, err := d.Prompter.Confirm("Apply this change to " + edit.fileName + "?")
	if err != nil {
		return StateTerminated, err
	}
	if !ok {
		return StateAwaitingFeedback, nil
	}

	if edit.call.Name == agent.ToolWriteFile {
		err = d.Files.Write(edit.fileName, edit.content)
	} else {
		err = d.Files.Modify(edit.fileName, edit.diff)
	}
	if err != nil {
		log.Warn().Err(err).Str("file", edit.fileName).Str("tool", edit.call.Name).Msg("edit failed")
		d.Presenter.Notice("Change failed: " + err.Error())
		return StateAwaitingModel, d.reply(edit.call, failedResult(edit.fileName, err))
	}

	log.Info().Str("file", edit.fileName).Str("tool", edit.call.Name).Msg("edit applied")
	result.Modified = append(result.Modified, edit.fileName)
	if err := d.reply(edit.call, completedResult(edit.fileName)); err != nil {
		return StateTerminated, err
	}
	if d.Options.ExitAfterModify && edit.call.Name == agent.ToolModifyFile {
		return StateTerminated, nil
	}
	return StateAwaitingModel, nil
}

// collectFeedback records the human's reason for rejecting an edit.
func (d *Dialogue) collectFeedback(edit *pendingEdit) (State, error) {
	feedback, err := d.Prompter.ReadText("Why was the change rejected?")
	if err != nil && !errors.Is(err, io.EOF) {
		return StateTerminated, err
	}
	return StateAwaitingModel, d.reply(edit.call, rejectedResult(edit.fileName, feedback))
}

func (d *Dialogue) replyArgumentError(call agent.ToolCall, err error) error {
	log.Warn().Err(err).Str("tool", call.Name).Str("call_id", call.ID).Msg("malformed tool arguments")
	return d.reply(call, argumentErrorResult(err))
}

func (d *Dialogue) reply(call agent.ToolCall, content string) error {
	return d.Session.Append(agent.ToolMessage{ToolCallID: call.ID, Content: content})
}
