package tui

import (
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// Theme returns a custom Huh theme using the spectree colors from styles.go.
// Uses AdaptiveColor for light/dark terminal support.
func Theme() *huh.Theme {
	// Check color support (NO_COLOR handling)
	CheckNoColor()

	// Start with base theme and customize
	t := huh.ThemeBase()

	// Map ColorPrimary to focused state
	t.Focused.Base = t.Focused.Base.BorderForeground(ColorPrimary)
	t.Focused.Title = t.Focused.Title.Foreground(ColorPrimary)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(ColorPrimary)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(ColorPrimary)
	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(ColorPrimary)

	// Map ColorSuccess to selected/completed state
	t.Focused.SelectedPrefix = t.Focused.SelectedPrefix.Foreground(ColorSuccess)

	// Map ColorError to validation failures
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(ColorError)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(ColorError)

	// Map ColorMuted to unfocused/help text state
	t.Blurred.Base = t.Blurred.Base.BorderForeground(ColorMuted)
	t.Blurred.Title = t.Blurred.Title.Foreground(ColorMuted)
	t.Focused.Description = t.Focused.Description.Foreground(ColorMuted)
	t.Help.Ellipsis = t.Help.Ellipsis.Foreground(ColorMuted)

	return t
}

// IsInteractive reports whether stdin is attached to a terminal.
// Interactive prompts must not run without one; this also prevents tests
// from hanging when form code is reached in a non-TTY environment.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
