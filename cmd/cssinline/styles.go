package main

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Terminal styles for the status lines on stderr.
var (
	StyleRed   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	StyleGreen = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
)

// RenderStyle applies a lipgloss style to text when colors are enabled.
func RenderStyle(style lipgloss.Style, text string, useColors bool) string {
	if !useColors {
		return text
	}
	return style.Render(text)
}

// useColors reports whether status output should be colored: always with
// --color, otherwise only when stderr is a terminal.
func useColors() bool {
	if getBoolWithDefault("color", false) {
		return true
	}
	return term.IsTerminal(int(os.Stderr.Fd()))
}
