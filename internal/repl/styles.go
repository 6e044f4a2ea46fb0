// File: styles.go
// Title: REPL Styles
// Description: lipgloss styles of the interactive shell.
// Author: msto63 with Claude Sonnet 4.0
// Version: v0.1.0
// Created: 2025-11-11
// Modified: 2025-11-11
//
// Change History:
// - 2025-11-11 v0.1.0: Initial implementation

package repl

import "github.com/charmbracelet/lipgloss"

var (
	ColorPrimary = lipgloss.Color("#8B5CF6") // Violet
	ColorSuccess = lipgloss.Color("#10B981") // Emerald
	ColorError   = lipgloss.Color("#EF4444") // Red
	ColorMuted   = lipgloss.Color("#6B7280") // Gray
	ColorText    = lipgloss.Color("#F8FAFC") // Slate 50
)

var (
	PromptStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	InputEchoStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	OutputStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	StatusStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)

	SuggestionStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary)
)
