package console

import (
	"bytes"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codefitter/internal/agent"
)

func TestPaletteRotatesAsValue(t *testing.T) {
	first := NewPalette(nil)
	second := first.Next()

	assert.NotEqual(t, first.Color(), second.Color())
	assert.Equal(t, headingColors[0], first.Color())

	p := first
	for range headingColors {
		p = p.Next()
	}
	assert.Equal(t, first.Color(), p.Color())
	assert.Equal(t, "plain", first.Render("plain"))
}

func TestRenderDiffColorsByPrefix(t *testing.T) {
	renderer := lipgloss.NewRenderer(io.Discard)
	renderer.SetColorProfile(termenv.ANSI)
	text := "--- a/x\n+++ b/x\n@@ -1 +1 @@\n ctx\n-old\n+new"

	out := RenderDiff(renderer, text)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 6)
	assert.Contains(t, lines[0], "\x1b[")
	assert.Contains(t, lines[2], "\x1b[")
	assert.Equal(t, " ctx", lines[3])
	assert.Contains(t, lines[4], "old")
	assert.Contains(t, lines[4], "\x1b[")
	assert.Contains(t, lines[5], "new")
	assert.Equal(t, text, RenderDiff(nil, text))
}

func TestPresenterStreamsBlocks(t *testing.T) {
	var out bytes.Buffer
	presenter := NewPresenter(&out, false)

	presenter.Delta(agent.Delta{Reasoning: "hmm "})
	presenter.Delta(agent.Delta{Reasoning: "ok"})
	presenter.Delta(agent.Delta{Content: "Hello"})
	presenter.EndResponse()
	presenter.ToolCall(agent.ToolModifyFile, "main.go")
	presenter.Diff("@@ -1 +1 @@\n-a\n+b\n")

	text := out.String()
	assert.Equal(t, 1, strings.Count(text, ">>>>>> Thinking"))
	assert.Equal(t, 1, strings.Count(text, ">>>>>> Output"))
	assert.Contains(t, text, "hmm ok")
	assert.Contains(t, text, ">>>>>> Tool: ModifyFile")
	assert.Contains(t, text, ">> Target file: main.go")
	assert.Contains(t, text, "-a\n+b\n")
	assert.Less(t, strings.Index(text, "Thinking"), strings.Index(text, "Output"))
}

func TestEditorModelSubmitAndAbort(t *testing.T) {
	model := newEditorModel("Task")
	next, _ := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(" fix it ")})
	next, cmd := next.Update(tea.KeyMsg{Type: tea.KeyCtrlD})

	submitted := next.(editorModel)
	assert.True(t, submitted.submitted)
	assert.Equal(t, " fix it ", submitted.Value())
	require.NotNil(t, cmd)

	aborted, _ := newEditorModel("Task").Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, aborted.(editorModel).aborted)
}
