// Package domain provides shared domain types for the spectree reporting engine.
package domain

import "github.com/mrz1836/spectree/internal/constants"

// Re-export Outcome, NodeKind and Phase from the constants package.
// This allows consumers to import domain types and enum types together,
// providing a unified API for working with spectree domain objects.
//
// Example usage:
//
//	import "github.com/mrz1836/spectree/internal/domain"
//
//	result := domain.Result{
//	    Outcome: domain.OutcomePassed,
//	}
type (
	// Outcome represents the result state of a single test.
	Outcome = constants.Outcome

	// NodeKind discriminates file, describe and test nodes.
	NodeKind = constants.NodeKind

	// Phase identifies which execution phase produced a result event.
	Phase = constants.Phase
)

// Re-export Outcome constants for convenience.
// These mirror the values in internal/constants/outcome.go.
const (
	// OutcomePassed indicates the test body completed successfully.
	OutcomePassed = constants.OutcomePassed

	// OutcomeFailed indicates the test body raised a failure.
	OutcomeFailed = constants.OutcomeFailed

	// OutcomeSkipped indicates the test was skipped before or during setup.
	OutcomeSkipped = constants.OutcomeSkipped

	// OutcomeXFailed indicates an expected failure that failed as expected.
	OutcomeXFailed = constants.OutcomeXFailed

	// OutcomeXPassed indicates an expected failure that unexpectedly passed.
	OutcomeXPassed = constants.OutcomeXPassed

	// OutcomeError indicates a setup or teardown failure, distinct from a
	// test-body failure.
	OutcomeError = constants.OutcomeError

	// OutcomePending indicates no result has been received yet.
	OutcomePending = constants.OutcomePending
)

// Re-export NodeKind constants for convenience.
const (
	// KindFile is a source grouping unit, always a tree root.
	KindFile = constants.KindFile

	// KindDescribe is a named grouping block, nestable arbitrarily deep.
	KindDescribe = constants.KindDescribe

	// KindTest is a leaf; the only kind that carries a Result.
	KindTest = constants.KindTest
)

// Re-export Phase constants for convenience.
const (
	// PhaseSetup is the fixture preparation phase.
	PhaseSetup = constants.PhaseSetup

	// PhaseCall is the test body execution phase.
	PhaseCall = constants.PhaseCall

	// PhaseTeardown is the fixture cleanup phase.
	PhaseTeardown = constants.PhaseTeardown
)
