package console

import (
	"io"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"
)

// ErrAborted is returned when the human cancels text entry.
var ErrAborted = errors.New("input aborted")

// editorModel is a multi-line text entry submitted with ctrl+d.
type editorModel struct {
	label     string
	area      textarea.Model
	submitted bool
	aborted   bool
}

func newEditorModel(label string) editorModel {
	area := textarea.New()
	area.Placeholder = "Type here..."
	area.ShowLineNumbers = false
	area.CharLimit = 0
	area.SetWidth(80)
	area.SetHeight(8)
	area.Focus()
	return editorModel{label: label, area: area}
}

// Init starts the cursor blinking.
func (m editorModel) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles submit and abort keys and forwards the rest to the textarea.
func (m editorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		switch typed.Type {
		case tea.KeyCtrlD:
			m.submitted = true
			return m, tea.Quit
		case tea.KeyCtrlC:
			m.aborted = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.area.SetWidth(max(typed.Width-2, 20))
	}
	var cmd tea.Cmd
	m.area, cmd = m.area.Update(msg)
	return m, cmd
}

// View renders the label, the text area and a key hint.
func (m editorModel) View() string {
	if m.submitted || m.aborted {
		return ""
	}
	label := lipgloss.NewStyle().Foreground(lipgloss.Color("177")).Bold(true).Render(m.label)
	hint := lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Render("ctrl+d submit, ctrl+c cancel")
	return lipgloss.JoinVertical(lipgloss.Left, label, m.area.View(), hint)
}

// Value returns the entered text as typed.
func (m editorModel) Value() string {
	return m.area.Value()
}

// runEditor runs the editor program on the given terminal streams.
func runEditor(in io.Reader, out io.Writer, label string) (string, error) {
	program := tea.NewProgram(newEditorModel(label), tea.WithInput(in), tea.WithOutput(out))
	final, err := program.Run()
	if err != nil {
		return "", errors.Wrap(err, "run editor")
	}
	model, ok := final.(editorModel)
	if !ok {
		return "", errors.Errorf("unexpected editor model %T", final)
	}
	if model.aborted {
		return "", ErrAborted
	}
	return model.Value(), nil
}
