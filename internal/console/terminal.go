package console

import (
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

var isTerminal = term.IsTerminal

// TerminalPrompter confirms with plain line input and collects free text in
// an interactive editor when both streams are terminals.
type TerminalPrompter struct {
	in          io.Reader
	out         io.Writer
	lines       *LinePrompter
	interactive bool
}

// NewTerminalPrompter picks the editor or the line reader based on the streams.
func NewTerminalPrompter(in io.Reader, out io.Writer) *TerminalPrompter {
	return &TerminalPrompter{
		in:          in,
		out:         out,
		lines:       NewLinePrompter(in, out),
		interactive: isTTY(in) && isTTY(out),
	}
}

// Confirm asks a yes/no question.
func (p *TerminalPrompter) Confirm(question string) (bool, error) {
	return p.lines.Confirm(question)
}

// ReadText collects multi-line text from the human.
func (p *TerminalPrompter) ReadText(label string) (string, error) {
	if p.interactive {
		return runEditor(p.in, p.out, label)
	}
	return p.lines.ReadText(label)
}

// isTTY reports whether the stream is attached to a terminal.
func isTTY(stream any) bool {
	if file, ok := stream.(*os.File); ok {
		return isTerminal(int(file.Fd()))
	}
	if fder, ok := stream.(interface{ Fd() uintptr }); ok {
		return isTerminal(int(fder.Fd()))
	}
	return false
}

// ShouldStyle reports whether ANSI styling should be used on writer.
func ShouldStyle(writer io.Writer, noColor bool) bool {
	if noColor || writer == nil {
		return false
	}
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	if strings.EqualFold(os.Getenv("CLICOLOR"), "0") {
		return false
	}
	return isTTY(writer)
}
