// Package domain provides shared domain types for the spectree reporting engine.
// These types are used across all internal packages to ensure consistent data structures.
//
// This package follows strict import rules:
//   - CAN import: internal/constants, internal/errors, standard library
//   - MUST NOT import: any other internal packages
//
// All JSON field names use snake_case per architecture requirements.
package domain

// Section is one captured side-output block attached to a test result,
// such as captured stdout, stderr or log records.
//
// Example JSON representation:
//
//	{
//	    "label": "Captured stdout call",
//	    "text": "starting worker...\n"
//	}
type Section struct {
	// Label identifies the section (e.g., "Captured stdout call").
	Label string `json:"label"`

	// Text is the raw captured content.
	Text string `json:"text"`
}

// Result captures the execution outcome of a single test. It is owned
// exclusively by its TEST node and starts in the pending state.
//
// Example JSON representation:
//
//	{
//	    "outcome": "failed",
//	    "duration": 0.042,
//	    "longrepr": "assert 1 == 2\n...",
//	    "sections": [...],
//	    "fixtures": ["db_session", "client"]
//	}
type Result struct {
	// Outcome is the current result state. Defaults to pending until a
	// result event arrives.
	Outcome Outcome `json:"outcome"`

	// Duration is the execution time in seconds as reported by the runner.
	Duration float64 `json:"duration"`

	// Longrepr is the long failure description (empty when absent).
	Longrepr string `json:"longrepr,omitempty"`

	// Sections holds captured output blocks in the order they arrived.
	// Overwritten wholesale by each call-phase event.
	Sections []Section `json:"sections,omitempty"`

	// Fixtures lists the test's declared dependency names, in declaration
	// order, with framework-internal fixtures already filtered out.
	Fixtures []string `json:"fixtures,omitempty"`
}

// NewPendingResult returns a Result in its default state: pending outcome,
// zero duration, no failure description and no sections.
func NewPendingResult(fixtures []string) *Result {
	return &Result{
		Outcome:  OutcomePending,
		Fixtures: fixtures,
	}
}
