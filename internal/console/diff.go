package console

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Diff line colours.
var (
	diffHeaderColor  = lipgloss.Color("6")
	diffHunkColor    = lipgloss.Color("3")
	diffAddedColor   = lipgloss.Color("2")
	diffRemovedColor = lipgloss.Color("1")
)

// RenderDiff colours a unified diff line by line. A nil renderer returns the
// text unchanged.
func RenderDiff(renderer *lipgloss.Renderer, diffText string) string {
	if renderer == nil {
		return diffText
	}
	lines := strings.Split(diffText, "\n")
	for i, line := range lines {
		var color lipgloss.Color
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			color = diffHeaderColor
		case strings.HasPrefix(line, "@@"):
			color = diffHunkColor
		case strings.HasPrefix(line, "+"):
			color = diffAddedColor
		case strings.HasPrefix(line, "-"):
			color = diffRemovedColor
		default:
			continue
		}
		lines[i] = renderer.NewStyle().Foreground(color).Render(line)
	}
	return strings.Join(lines, "\n")
}
