package report

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/spectree/internal/domain"
)

// fixedClock returns a canned instant so metadata assertions are exact.
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

// reportFixture builds a small but fully featured tree:
//
//	test_auth.py
//	└── login -- Authenticating registered users.
//	    ├── it accepts valid credentials   passed  250ms  fixtures client, user
//	    ├── when password is wrong
//	    │   └── it rejects                 failed  100ms  secret in longrepr and stdout
//	    └── it survives heavy load         passed  750ms  slow at the 0.5s threshold
//	test_cart.py
//	├── it starts empty                    passed   50ms
//	├── it handles concurrent checkout     no result yet
//	└── it retries on conflict             pending result
func reportFixture() *domain.Tree {
	tree := domain.NewTree(0.5)

	accepts := &domain.Node{
		ID:          "tests/test_auth.py::describe_login::it_accepts_valid_credentials",
		Name:        "it_accepts_valid_credentials",
		DisplayName: "it accepts valid credentials",
		Kind:        domain.KindTest,
		Result: &domain.Result{
			Outcome:  domain.OutcomePassed,
			Duration: 0.25,
			Fixtures: []string{"client", "user"},
		},
	}
	rejects := &domain.Node{
		ID:          "tests/test_auth.py::describe_login::describe_when_password_is_wrong::it_rejects",
		Name:        "it_rejects",
		DisplayName: "it rejects",
		Kind:        domain.KindTest,
		Result: &domain.Result{
			Outcome:  domain.OutcomeFailed,
			Duration: 0.1,
			Longrepr: "AssertionError: password=supersecret99 leaked\nassert resp.status == 200",
			Sections: []domain.Section{
				{Label: "Captured stdout call", Text: "login attempt with password=topsecret123\n"},
			},
		},
	}
	wrongPassword := &domain.Node{
		ID:          "tests/test_auth.py::describe_login::describe_when_password_is_wrong",
		Name:        "describe_when_password_is_wrong",
		DisplayName: "when password is wrong",
		Kind:        domain.KindDescribe,
		Children:    []*domain.Node{rejects},
	}
	survives := &domain.Node{
		ID:          "tests/test_auth.py::describe_login::it_survives_heavy_load",
		Name:        "it_survives_heavy_load",
		DisplayName: "it survives heavy load",
		Kind:        domain.KindTest,
		Result: &domain.Result{
			Outcome:  domain.OutcomePassed,
			Duration: 0.75,
		},
	}
	login := &domain.Node{
		ID:          "tests/test_auth.py::describe_login",
		Name:        "describe_login",
		DisplayName: "login",
		Doc:         "Authenticating registered users.",
		Kind:        domain.KindDescribe,
		Children:    []*domain.Node{accepts, wrongPassword, survives},
	}
	authFile := &domain.Node{
		ID:          "tests/test_auth.py",
		Name:        "test_auth.py",
		DisplayName: "test_auth.py",
		Kind:        domain.KindFile,
		Children:    []*domain.Node{login},
	}

	startsEmpty := &domain.Node{
		ID:          "tests/test_cart.py::it_starts_empty",
		Name:        "it_starts_empty",
		DisplayName: "it starts empty",
		Kind:        domain.KindTest,
		Result: &domain.Result{
			Outcome:  domain.OutcomePassed,
			Duration: 0.05,
		},
	}
	concurrent := &domain.Node{
		ID:          "tests/test_cart.py::it_handles_concurrent_checkout",
		Name:        "it_handles_concurrent_checkout",
		DisplayName: "it handles concurrent checkout",
		Kind:        domain.KindTest,
	}
	retries := &domain.Node{
		ID:          "tests/test_cart.py::it_retries_on_conflict",
		Name:        "it_retries_on_conflict",
		DisplayName: "it retries on conflict",
		Kind:        domain.KindTest,
		Result:      domain.NewPendingResult(nil),
	}
	cartFile := &domain.Node{
		ID:          "tests/test_cart.py",
		Name:        "test_cart.py",
		DisplayName: "test_cart.py",
		Kind:        domain.KindFile,
		Children:    []*domain.Node{startsEmpty, concurrent, retries},
	}

	tree.AddRoot(authFile)
	tree.AddRoot(cartFile)
	return tree
}

// fixtureMeta returns deterministic metadata for exact-output assertions.
func fixtureMeta() Meta {
	return Meta{
		RunID:       "run-20250615-0001",
		ReportID:    "8a6e0804-2bd0-4672-b79d-d97027f9071a",
		GeneratedAt: time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC),
	}
}

func TestNewMeta(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)
	meta := NewMeta("run-20250615-0001", fixedClock{now: now})

	assert.Equal(t, "run-20250615-0001", meta.RunID)
	assert.Equal(t, now, meta.GeneratedAt)

	_, err := uuid.Parse(meta.ReportID)
	require.NoError(t, err, "report id should be a valid UUID")
}

func TestNewMeta_FreshReportIDPerCall(t *testing.T) {
	t.Parallel()

	clk := fixedClock{now: time.Now()}
	first := NewMeta("run-1", clk)
	second := NewMeta("run-1", clk)

	assert.NotEqual(t, first.ReportID, second.ReportID)
}
