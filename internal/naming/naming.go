// Package naming converts raw collected identifiers into human-readable
// display names and formats durations for presentation.
//
// The transforms are pure string functions shared by the classifier and
// the renderers, so both always agree on what a node is called.
package naming

import (
	"fmt"
	"strings"
	"unicode"
)

// describePrefixes are the recognized describe-block name prefixes, in
// match order. Matching is case-sensitive and only the first match is
// stripped.
//
//nolint:gochecknoglobals // Fixed lookup table
var describePrefixes = []string{"describe_", "Describe_"}

// HumanizeDescribeName turns a raw describe-block name into its display
// form. The describe prefix is stripped; a remainder that looks like a
// type name (leading upper-case letter, no underscores) is kept as-is,
// anything else has underscores replaced with spaces.
//
// A name consisting of only the prefix is returned unchanged.
func HumanizeDescribeName(name string) string {
	remainder := name
	for _, prefix := range describePrefixes {
		if strings.HasPrefix(name, prefix) {
			remainder = strings.TrimPrefix(name, prefix)
			break
		}
	}

	if remainder == "" {
		return name
	}

	// Treat "MyClass"-shaped remainders as proper type names.
	first := []rune(remainder)[0]
	if unicode.IsUpper(first) && !strings.Contains(remainder, "_") {
		return remainder
	}

	return strings.ReplaceAll(remainder, "_", " ")
}

// HumanizeTestName turns a raw test name into its display form by
// replacing underscores with spaces. No prefix stripping is applied.
func HumanizeTestName(name string) string {
	return strings.ReplaceAll(name, "_", " ")
}

// FormatDuration renders a duration in seconds for display: sub-second
// values as whole milliseconds, values under a minute with two decimal
// places, and longer values as whole minutes plus remaining seconds.
func FormatDuration(seconds float64) string {
	if seconds < 1 {
		return fmt.Sprintf("%.0fms", seconds*1000)
	}
	if seconds < 60 {
		return fmt.Sprintf("%.2fs", seconds)
	}
	minutes := int(seconds / 60)
	remainder := seconds - float64(minutes)*60
	return fmt.Sprintf("%dm %.1fs", minutes, remainder)
}
