package constants

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutcome_String(t *testing.T) {
	tests := []struct {
		name     string
		outcome  Outcome
		expected string
	}{
		{
			name:     "passed outcome",
			outcome:  OutcomePassed,
			expected: "passed",
		},
		{
			name:     "failed outcome",
			outcome:  OutcomeFailed,
			expected: "failed",
		},
		{
			name:     "skipped outcome",
			outcome:  OutcomeSkipped,
			expected: "skipped",
		},
		{
			name:     "xfailed outcome",
			outcome:  OutcomeXFailed,
			expected: "xfailed",
		},
		{
			name:     "xpassed outcome",
			outcome:  OutcomeXPassed,
			expected: "xpassed",
		},
		{
			name:     "error outcome",
			outcome:  OutcomeError,
			expected: "error",
		},
		{
			name:     "pending outcome",
			outcome:  OutcomePending,
			expected: "pending",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.outcome.String())
		})
	}
}

func TestOutcome_IsFailure(t *testing.T) {
	tests := []struct {
		name     string
		outcome  Outcome
		expected bool
	}{
		{
			name:     "failed is a failure",
			outcome:  OutcomeFailed,
			expected: true,
		},
		{
			name:     "error is a failure",
			outcome:  OutcomeError,
			expected: true,
		},
		{
			name:     "passed is not a failure",
			outcome:  OutcomePassed,
			expected: false,
		},
		{
			name:     "xpassed is not a failure",
			outcome:  OutcomeXPassed,
			expected: false,
		},
		{
			name:     "xfailed is not a failure",
			outcome:  OutcomeXFailed,
			expected: false,
		},
		{
			name:     "skipped is not a failure",
			outcome:  OutcomeSkipped,
			expected: false,
		},
		{
			name:     "pending is not a failure",
			outcome:  OutcomePending,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.outcome.IsFailure())
		})
	}
}

func TestNodeKind_String(t *testing.T) {
	tests := []struct {
		name     string
		kind     NodeKind
		expected string
	}{
		{
			name:     "file kind",
			kind:     KindFile,
			expected: "file",
		},
		{
			name:     "describe kind",
			kind:     KindDescribe,
			expected: "describe",
		},
		{
			name:     "test kind",
			kind:     KindTest,
			expected: "test",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.kind.String())
		})
	}
}

func TestPhase_String(t *testing.T) {
	tests := []struct {
		name     string
		phase    Phase
		expected string
	}{
		{
			name:     "setup phase",
			phase:    PhaseSetup,
			expected: "setup",
		},
		{
			name:     "call phase",
			phase:    PhaseCall,
			expected: "call",
		},
		{
			name:     "teardown phase",
			phase:    PhaseTeardown,
			expected: "teardown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.phase.String())
		})
	}
}

func TestOutcome_JSONSerialization(t *testing.T) {
	type wrapper struct {
		Outcome Outcome `json:"outcome"`
	}

	w := wrapper{Outcome: OutcomeXFailed}
	data, err := json.Marshal(w)
	require.NoError(t, err)
	assert.Equal(t, `{"outcome":"xfailed"}`, string(data))

	var decoded wrapper
	require.NoError(t, json.Unmarshal([]byte(`{"outcome":"xpassed"}`), &decoded))
	assert.Equal(t, OutcomeXPassed, decoded.Outcome)
}

func TestIsBuiltinFixture(t *testing.T) {
	tests := []struct {
		name     string
		fixture  string
		expected bool
	}{
		{
			name:     "request is builtin",
			fixture:  "request",
			expected: true,
		},
		{
			name:     "monkeypatch is builtin",
			fixture:  "monkeypatch",
			expected: true,
		},
		{
			name:     "record_testsuite_property is builtin",
			fixture:  "record_testsuite_property",
			expected: true,
		},
		{
			name:     "testdir is builtin",
			fixture:  "testdir",
			expected: true,
		},
		{
			name:     "user fixture is not builtin",
			fixture:  "db_session",
			expected: false,
		},
		{
			name:     "empty name is not builtin",
			fixture:  "",
			expected: false,
		},
		{
			name:     "matching is case sensitive",
			fixture:  "Request",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsBuiltinFixture(tt.fixture))
		})
	}
}
