package console

import "github.com/charmbracelet/lipgloss"

// headingColors is the rotation used for block headings.
var headingColors = []lipgloss.Color{"9", "10", "117", "78", "177"}

// Palette is the heading colour state. It is a value: Next returns the
// advanced palette and leaves the receiver unchanged.
type Palette struct {
	index    int
	renderer *lipgloss.Renderer
}

// NewPalette starts the rotation. A nil renderer disables styling.
func NewPalette(renderer *lipgloss.Renderer) Palette {
	return Palette{renderer: renderer}
}

// Next moves to the following colour.
func (p Palette) Next() Palette {
	p.index = (p.index + 1) % len(headingColors)
	return p
}

// Color returns the current heading colour.
func (p Palette) Color() lipgloss.Color {
	return headingColors[p.index]
}

// Render paints text in the current colour.
func (p Palette) Render(text string) string {
	if p.renderer == nil {
		return text
	}
	return p.renderer.NewStyle().Foreground(p.Color()).Render(text)
}
