// Package tui provides terminal user interface components for spectree.
//
// This package provides a centralized style system using Lip Gloss for consistent
// TUI component styling. All colors use AdaptiveColor for light/dark terminal support.
//
// # Semantic Colors
//
// Five semantic colors are exported for use across TUI components:
//   - ColorPrimary (Blue): headings, links, informational text
//   - ColorSuccess (Green): passed tests
//   - ColorWarning (Yellow): skipped and expected-failure states
//   - ColorError (Red): failed tests and setup/teardown errors
//   - ColorMuted (Gray): pending tests, secondary text
//
// # Outcome Symbols
//
// Triple redundancy is maintained for all outcome displays: symbol + color + text.
// See OutcomeSymbol and OutcomeColors for the mappings.
//
// # NO_COLOR Support
//
// Call CheckNoColor() at the start of commands to respect the NO_COLOR environment
// variable. Colors are also disabled when TERM=dumb.
package tui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/mrz1836/spectree/internal/domain"
)

//nolint:gochecknoglobals // Intentional package-level constants for TUI styling API
var (
	// ColorPrimary is blue, used for headings, links, and informational text.
	ColorPrimary = lipgloss.AdaptiveColor{Light: "#0087AF", Dark: "#00D7FF"}

	// ColorSuccess is green, used for passed tests.
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#008700", Dark: "#00FF87"}

	// ColorWarning is yellow, used for skipped tests and expected failures.
	ColorWarning = lipgloss.AdaptiveColor{Light: "#AF8700", Dark: "#FFD700"}

	// ColorError is red, used for failed tests and setup/teardown errors.
	ColorError = lipgloss.AdaptiveColor{Light: "#AF0000", Dark: "#FF5F5F"}

	// ColorMuted is gray, used for pending tests and secondary text.
	ColorMuted = lipgloss.AdaptiveColor{Light: "#585858", Dark: "#6C6C6C"}

	// StyleBold applies bold formatting to text.
	StyleBold = lipgloss.NewStyle().Bold(true)

	// StyleDim applies dim/faint formatting to text.
	StyleDim = lipgloss.NewStyle().Faint(true)
)

// OutcomeColors returns the semantic color definitions for test outcomes.
// Uses AdaptiveColor for light/dark terminal support.
func OutcomeColors() map[domain.Outcome]lipgloss.AdaptiveColor {
	return map[domain.Outcome]lipgloss.AdaptiveColor{
		domain.OutcomePassed:  ColorSuccess,
		domain.OutcomeFailed:  ColorError,
		domain.OutcomeSkipped: ColorWarning,
		domain.OutcomeXFailed: ColorWarning,
		domain.OutcomeXPassed: ColorError,
		domain.OutcomeError:   ColorError,
		domain.OutcomePending: ColorMuted,
	}
}

// OutcomeSymbol returns the symbol for a given test outcome.
// Used for visual outcome indicators in tree and report displays.
func OutcomeSymbol(outcome domain.Outcome) string {
	switch outcome {
	case domain.OutcomePassed:
		return "✓"
	case domain.OutcomeFailed:
		return "✗"
	case domain.OutcomeSkipped:
		return "○"
	case domain.OutcomeXFailed:
		return "⊘"
	case domain.OutcomeXPassed:
		return "✗!"
	case domain.OutcomeError:
		return "☠"
	case domain.OutcomePending:
		return "?"
	default:
		return "?"
	}
}

// OutcomeStyle returns a lipgloss style carrying the semantic foreground
// color for the given outcome. Unknown outcomes use the muted color.
func OutcomeStyle(outcome domain.Outcome) lipgloss.Style {
	color, ok := OutcomeColors()[outcome]
	if !ok {
		color = ColorMuted
	}
	return lipgloss.NewStyle().Foreground(color)
}

// FormatOutcomeWithSymbol formats an outcome with its symbol and text for
// triple redundancy. Color is applied via Lip Gloss styles when rendering;
// this function provides symbol + text.
func FormatOutcomeWithSymbol(outcome domain.Outcome) string {
	return OutcomeSymbol(outcome) + " " + outcome.String()
}

// OutputStyles holds common output styles.
type OutputStyles struct {
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	Dim     lipgloss.Style
}

// NewOutputStyles creates common output styles using AdaptiveColor for light/dark terminal support.
func NewOutputStyles() *OutputStyles {
	return &OutputStyles{
		Success: lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true),
		Error: lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true),
		Warning: lipgloss.NewStyle().
			Foreground(ColorWarning),
		Info: lipgloss.NewStyle().
			Foreground(ColorPrimary),
		Dim: lipgloss.NewStyle().
			Foreground(ColorMuted),
	}
}

// CheckNoColor respects the NO_COLOR environment variable.
// Call this at the start of commands that output styled text.
func CheckNoColor() {
	if !HasColorSupport() {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// HasColorSupport returns true if the terminal supports colors.
// Returns false if NO_COLOR is set (any value including empty string) or TERM=dumb.
// This follows the NO_COLOR standard: https://no-color.org/
func HasColorSupport() bool {
	// NO_COLOR spec: If NO_COLOR exists in the environment (with any value, including empty),
	// color should be disabled.
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return false
	}

	// Also disable colors for dumb terminals
	if os.Getenv("TERM") == "dumb" {
		return false
	}

	return true
}

// GetTerminalWidth returns the current terminal width.
// Returns 0 if width cannot be determined (disables width-aware truncation).
func GetTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0
	}
	return width
}
