package call

import (
	"time"

	"codefitter/internal/agent"
)

// State is a step of the dialogue state machine.
type State int

const (
	StateAwaitingModel State = iota
	StateHandlingToolCall
	StateAwaitingConfirmation
	StateAwaitingFeedback
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateAwaitingModel:
		return "awaiting_model"
	case StateHandlingToolCall:
		return "handling_tool_call"
	case StateAwaitingConfirmation:
		return "awaiting_confirmation"
	case StateAwaitingFeedback:
		return "awaiting_feedback"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Prompter asks the human for decisions and text.
type Prompter interface {
	Confirm(question string) (bool, error)
	ReadText(label string) (string, error)
}

// Presenter shows the dialogue to the human.
type Presenter interface {
	Delta(delta agent.Delta)
	EndResponse()
	ToolCall(name, fileName string)
	Diff(diffText string)
	FileContent(content string)
	Notice(text string)
}

// RunOptions tunes a dialogue run.
type RunOptions struct {
	// ExitAfterModify ends the session after the first applied ModifyFile.
	ExitAfterModify bool
	// RequestTimeout bounds each model request, stream included. Zero means no bound.
	RequestTimeout time.Duration
}

// RunResult summarizes a finished dialogue.
type RunResult struct {
	Turns    int
	Modified []string
	Rejected int
}
