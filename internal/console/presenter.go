package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"codefitter/internal/agent"
)

const separator = "------------------------"

// streamBlock tracks which kind of text is currently being printed.
type streamBlock int

const (
	blockNone streamBlock = iota
	blockThinking
	blockTalking
)

// Presenter prints the dialogue to the terminal. Heading colours rotate
// through the palette each time a new block starts.
type Presenter struct {
	out      io.Writer
	renderer *lipgloss.Renderer
	palette  Palette
	block    streamBlock
}

// NewPresenter writes to out. Styling is applied only when styled is true.
func NewPresenter(out io.Writer, styled bool) *Presenter {
	var renderer *lipgloss.Renderer
	if styled {
		renderer = lipgloss.NewRenderer(out)
	}
	return &Presenter{out: out, renderer: renderer, palette: NewPalette(renderer)}
}

// Delta prints streamed text as it arrives, opening a heading when the text
// kind changes.
func (p *Presenter) Delta(delta agent.Delta) {
	if delta.Reasoning != "" {
		p.open(blockThinking, ">>>>>> Thinking")
		fmt.Fprint(p.out, delta.Reasoning)
	}
	if delta.Content != "" {
		p.open(blockTalking, ">>>>>> Output")
		fmt.Fprint(p.out, delta.Content)
	}
}

// EndResponse closes the block left open by streamed text.
func (p *Presenter) EndResponse() {
	p.close()
}

// ToolCall announces a tool call and its target file.
func (p *Presenter) ToolCall(name, fileName string) {
	p.close()
	p.palette = p.palette.Next()
	fmt.Fprintln(p.out, p.palette.Render(">>>>>> Tool: "+name))
	if fileName != "" {
		fmt.Fprintln(p.out, p.palette.Render(">> Target file: "+fileName))
	}
}

// Diff prints a proposed patch.
func (p *Presenter) Diff(diffText string) {
	fmt.Fprintln(p.out, RenderDiff(p.renderer, strings.TrimRight(diffText, "\n")))
	fmt.Fprintln(p.out, p.palette.Render(separator))
}

// FileContent prints the full content proposed for a file write.
func (p *Presenter) FileContent(content string) {
	fmt.Fprintln(p.out, strings.TrimRight(content, "\n"))
	fmt.Fprintln(p.out, p.palette.Render(separator))
}

// Notice prints a one-line message for the human.
func (p *Presenter) Notice(text string) {
	p.close()
	fmt.Fprintln(p.out, p.palette.Render(text))
}

func (p *Presenter) open(block streamBlock, heading string) {
	if p.block == block {
		return
	}
	p.close()
	p.palette = p.palette.Next()
	fmt.Fprintln(p.out, p.palette.Render(heading))
	p.block = block
}

func (p *Presenter) close() {
	if p.block == blockNone {
		return
	}
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, p.palette.Render(separator))
	fmt.Fprintln(p.out)
	p.block = blockNone
}
