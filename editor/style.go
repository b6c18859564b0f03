package editor

import "github.com/charmbracelet/lipgloss"

// Style controls the editor's rendering.
type Style struct {
	Gutter        lipgloss.Style
	LineNum       lipgloss.Style
	LineNumActive lipgloss.Style

	Text      lipgloss.Style
	Selection lipgloss.Style
	Cursor    lipgloss.Style

	// Used by LatexHighlighter.
	Command     lipgloss.Style
	Environment lipgloss.Style
	Mismatch    lipgloss.Style
}

func DefaultStyle() Style {
	gutter := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	return Style{
		Gutter:        gutter,
		LineNum:       gutter,
		LineNumActive: lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Bold(true),
		Text:          lipgloss.NewStyle(),
		Selection:     lipgloss.NewStyle().Background(lipgloss.Color("237")),
		Cursor:        lipgloss.NewStyle().Reverse(true),
		Command:       lipgloss.NewStyle().Foreground(lipgloss.Color("75")),
		Environment:   lipgloss.NewStyle().Foreground(lipgloss.Color("176")),
		Mismatch:      lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Underline(true),
	}
}
