package constants

// Outcome represents the result state of a single test.
// Outcome values use lowercase strings for JSON serialization compatibility.
type Outcome string

// Test outcome constants define the closed set of result states.
// PENDING is the default before any result event arrives and remains a legal
// terminal state when a result is never delivered.
const (
	// OutcomePassed indicates the test body ran and succeeded.
	OutcomePassed Outcome = "passed"

	// OutcomeFailed indicates the test body ran and failed.
	OutcomeFailed Outcome = "failed"

	// OutcomeSkipped indicates the test was skipped.
	OutcomeSkipped Outcome = "skipped"

	// OutcomeXFailed indicates an expected failure that failed as expected.
	OutcomeXFailed Outcome = "xfailed"

	// OutcomeXPassed indicates an expected failure that unexpectedly passed.
	OutcomeXPassed Outcome = "xpassed"

	// OutcomeError indicates a setup or teardown failure, distinct from a
	// failure of the test body itself.
	OutcomeError Outcome = "error"

	// OutcomePending indicates no result has been received yet.
	OutcomePending Outcome = "pending"
)

// String returns the string representation of the Outcome.
// This implements fmt.Stringer for convenient logging and debugging.
func (o Outcome) String() string {
	return string(o)
}

// IsFailure reports whether the outcome counts as a failure for roll-up
// purposes. ERROR counts alongside FAILED everywhere failures are tallied.
func (o Outcome) IsFailure() bool {
	return o == OutcomeFailed || o == OutcomeError
}

// NodeKind represents the kind of a node in the describe tree.
// Kind values use lowercase strings for JSON serialization compatibility.
type NodeKind string

// Node kind constants define the three entity kinds the tree holds.
const (
	// KindFile is a source grouping unit; always a tree root.
	KindFile NodeKind = "file"

	// KindDescribe is a named grouping block; nests arbitrarily deep.
	KindDescribe NodeKind = "describe"

	// KindTest is a leaf test; the only kind that carries a Result.
	KindTest NodeKind = "test"
)

// String returns the string representation of the NodeKind.
// This implements fmt.Stringer for convenient logging and debugging.
func (k NodeKind) String() string {
	return string(k)
}

// Phase represents one of the three sub-stages of a test's execution
// lifecycle that runner adapters report separately.
type Phase string

// Phase constants define the valid execution phases of a result event.
const (
	// PhaseSetup is the fixture preparation stage before the test body.
	PhaseSetup Phase = "setup"

	// PhaseCall is the test body execution stage.
	PhaseCall Phase = "call"

	// PhaseTeardown is the fixture cleanup stage after the test body.
	PhaseTeardown Phase = "teardown"
)

// String returns the string representation of the Phase.
func (p Phase) String() string {
	return string(p)
}
