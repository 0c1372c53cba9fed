// Package ui provides terminal output utilities for skillmeta.
package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Color function types for styled output.
var (
	// Success is used for valid skills (green).
	Success = color.New(color.FgGreen).SprintFunc()
	// Error is used for violations and failures (red).
	Error = color.New(color.FgRed).SprintFunc()
	// Warning is used for cautions (yellow).
	Warning = color.New(color.FgYellow).SprintFunc()
	// Bold is used for emphasis.
	Bold = color.New(color.Bold).SprintFunc()
	// Dim is used for secondary information such as paths.
	Dim = color.New(color.Faint).SprintFunc()
	// Header is used for listing headers (bold cyan).
	Header = color.New(color.FgCyan, color.Bold).SprintFunc()
)

// Status symbols.
const (
	SymbolValid   = "✓"
	SymbolInvalid = "✗"
	SymbolWarning = "⚠"
)

// StatusValid returns a green checkmark with optional message.
func StatusValid(msg string) string {
	if msg == "" {
		return Success(SymbolValid)
	}
	return Success(SymbolValid) + " " + msg
}

// StatusInvalid returns a red X with optional message.
func StatusInvalid(msg string) string {
	if msg == "" {
		return Error(SymbolInvalid)
	}
	return Error(SymbolInvalid) + " " + msg
}

// Configure sets color output according to a mode string: "always",
// "never", or "auto". Auto disables colors when stdout is not a terminal.
func Configure(mode string) {
	switch mode {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	default:
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			color.NoColor = true
		}
	}
}

// DisableColors disables all color output.
func DisableColors() {
	color.NoColor = true
}

// IsColorEnabled returns whether colors are currently enabled.
func IsColorEnabled() bool {
	return !color.NoColor
}
