package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/spectree/internal/domain"
)

// forcePlainOutput pins the lipgloss color profile to Ascii so rendered
// lines carry no escape sequences and can be compared verbatim.
func forcePlainOutput(t *testing.T) {
	t.Helper()
	lipgloss.SetColorProfile(termenv.Ascii)
}

// treeFixture builds a tree exercising the rendering paths: nested describe
// blocks, a child order that needs regrouping, mixed outcomes, a slow test,
// a file-level test and a pending one. Slow threshold is 0.5 seconds.
//
//	tests/test_auth.py
//	└── login
//	    ├── it accepts valid credentials  (passed, 0.25s, fixtures)
//	    ├── when password is wrong
//	    │   └── it rejects                (failed, 0.1s, longrepr)
//	    └── it survives heavy load        (passed, 0.75s, slow)
//	tests/test_cart.py
//	├── it starts empty                   (passed, 0.05s)
//	└── it handles concurrent checkout    (pending, no result)
func treeFixture() *domain.Tree {
	rejects := &domain.Node{
		ID:          "tests/test_auth.py::describe_login::describe_when_password_is_wrong::it_rejects",
		Name:        "it_rejects",
		DisplayName: "it rejects",
		Kind:        domain.KindTest,
		Result: &domain.Result{
			Outcome:  domain.OutcomeFailed,
			Duration: 0.1,
			Longrepr: "AssertionError: expected 401\nassert resp.status == 200",
		},
	}
	whenWrong := &domain.Node{
		ID:          "tests/test_auth.py::describe_login::describe_when_password_is_wrong",
		Name:        "describe_when_password_is_wrong",
		DisplayName: "when password is wrong",
		Kind:        domain.KindDescribe,
	}
	whenWrong.AddChild(rejects)

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
	slow := &domain.Node{
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
	}
	// Deliberately interleaved: the renderer must pull the describe block
	// ahead of the tests.
	login.AddChild(accepts)
	login.AddChild(whenWrong)
	login.AddChild(slow)

	authFile := &domain.Node{
		ID:          "tests/test_auth.py",
		Name:        "test_auth.py",
		DisplayName: "test_auth.py",
		Kind:        domain.KindFile,
	}
	authFile.AddChild(login)

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
	pending := &domain.Node{
		ID:          "tests/test_cart.py::it_handles_concurrent_checkout",
		Name:        "it_handles_concurrent_checkout",
		DisplayName: "it handles concurrent checkout",
		Kind:        domain.KindTest,
	}
	cartFile := &domain.Node{
		ID:          "tests/test_cart.py",
		Name:        "test_cart.py",
		DisplayName: "test_cart.py",
		Kind:        domain.KindFile,
	}
	cartFile.AddChild(startsEmpty)
	cartFile.AddChild(pending)

	tree := domain.NewTree(0.5)
	tree.AddRoot(authFile)
	tree.AddRoot(cartFile)
	return tree
}

// renderToString renders the fixture with the given options and returns
// the output.
func renderToString(t *testing.T, tree *domain.Tree, opts ...TreeOption) string {
	t.Helper()
	var b strings.Builder
	require.NoError(t, RenderTree(&b, tree, opts...))
	return b.String()
}

func TestTreeRenderer_Render(t *testing.T) {
	forcePlainOutput(t)

	output := renderToString(t, treeFixture())

	expected := strings.Join([]string{
		"└── ✗ login (2/3 passed, 1.10s)",
		"    ├── ✗ when password is wrong (0/1 passed, 100ms)",
		"    │   └── ✗ it rejects (100ms)",
		"    ├── ✓ it accepts valid credentials (250ms)",
		"    └── ✓ it survives heavy load (750ms) ⏱",
		"└── ✓ it starts empty (50ms)",
		"└── ? it handles concurrent checkout (0ms)",
		"",
	}, "\n")
	assert.Equal(t, expected, output)
}

// TestTreeRenderer_FileShellNotPrinted verifies rendering starts at each
// root's children: the runner output already names the file.
func TestTreeRenderer_FileShellNotPrinted(t *testing.T) {
	forcePlainOutput(t)

	output := renderToString(t, treeFixture())

	assert.NotContains(t, output, "test_auth.py")
	assert.NotContains(t, output, "test_cart.py")
}

// TestTreeRenderer_DescribesBeforeTests verifies grouping blocks render
// ahead of test leaves regardless of collection order.
func TestTreeRenderer_DescribesBeforeTests(t *testing.T) {
	forcePlainOutput(t)

	output := renderToString(t, treeFixture())

	describeAt := strings.Index(output, "when password is wrong")
	testAt := strings.Index(output, "it accepts valid credentials")
	require.GreaterOrEqual(t, describeAt, 0)
	require.GreaterOrEqual(t, testAt, 0)
	assert.Less(t, describeAt, testAt, "describe block should render before sibling tests")
}

func TestTreeRenderer_SlowMarker(t *testing.T) {
	forcePlainOutput(t)

	output := renderToString(t, treeFixture())

	assert.Contains(t, output, "it survives heavy load (750ms) ⏱")
	// At exactly the threshold or below nothing is flagged
	assert.NotContains(t, output, "it accepts valid credentials (250ms) ⏱")
}

func TestTreeRenderer_ExpandMode(t *testing.T) {
	forcePlainOutput(t)

	t.Run("appends docstrings and fixtures", func(t *testing.T) {
		output := renderToString(t, treeFixture(), WithExpand(true))

		assert.Contains(t, output, "login -- Authenticating registered users. (2/3 passed")
		assert.Contains(t, output, "it accepts valid credentials (250ms) 🔧 client, user")
	})

	t.Run("fixture display can be suppressed", func(t *testing.T) {
		output := renderToString(t, treeFixture(), WithExpand(true), WithFixtures(false))

		assert.Contains(t, output, "login -- Authenticating registered users.")
		assert.NotContains(t, output, "🔧")
	})

	t.Run("fixtures hidden outside expand mode", func(t *testing.T) {
		output := renderToString(t, treeFixture())

		assert.NotContains(t, output, "🔧")
		assert.NotContains(t, output, " -- ")
	})
}

func TestTreeRenderer_FailedOnly(t *testing.T) {
	forcePlainOutput(t)

	output := renderToString(t, treeFixture(), WithFailedOnly(true))

	expected := strings.Join([]string{
		"└── ✗ login (2/3 passed, 1.10s)",
		"    └── ✗ when password is wrong (0/1 passed, 100ms)",
		"        └── ✗ it rejects (100ms)",
		"",
	}, "\n")
	assert.Equal(t, expected, output)
}

func TestTreeRenderer_FailureDetails(t *testing.T) {
	forcePlainOutput(t)

	t.Run("longrepr lines indent beneath the failed test", func(t *testing.T) {
		output := renderToString(t, treeFixture(), WithFailureDetails(true))

		assert.Contains(t, output, "    │       AssertionError: expected 401\n")
		assert.Contains(t, output, "    │       assert resp.status == 200\n")
	})

	t.Run("hidden without the option", func(t *testing.T) {
		output := renderToString(t, treeFixture())

		assert.NotContains(t, output, "AssertionError")
	})
}

func TestTreeRenderer_MaxWidth(t *testing.T) {
	forcePlainOutput(t)

	output := renderToString(t, treeFixture(), WithMaxWidth(24))

	for _, line := range strings.Split(strings.TrimRight(output, "\n"), "\n") {
		assert.LessOrEqual(t, runewidth.StringWidth(line), 24, "line %q exceeds width", line)
	}
	assert.Contains(t, output, "…")
}

// TestTreeRenderer_EmptyTree verifies a tree without roots renders nothing.
func TestTreeRenderer_EmptyTree(t *testing.T) {
	forcePlainOutput(t)

	output := renderToString(t, domain.NewTree(0.5))

	assert.Empty(t, output)
}

func TestFormatTotals(t *testing.T) {
	t.Run("fixture tree", func(t *testing.T) {
		totals := FormatTotals(treeFixture())
		assert.Equal(t, "5 tests: 3 passed, 1 failed in 1.15s", totals)
	})

	t.Run("skipped segment appears when present", func(t *testing.T) {
		skipped := &domain.Node{
			ID:          "tests/test_io.py::it_needs_network",
			Name:        "it_needs_network",
			DisplayName: "it needs network",
			Kind:        domain.KindTest,
			Result: &domain.Result{
				Outcome:  domain.OutcomeSkipped,
				Duration: 0.01,
			},
		}
		file := &domain.Node{
			ID:          "tests/test_io.py",
			Name:        "test_io.py",
			DisplayName: "test_io.py",
			Kind:        domain.KindFile,
		}
		file.AddChild(skipped)
		tree := domain.NewTree(0.5)
		tree.AddRoot(file)

		totals := FormatTotals(tree)
		assert.Equal(t, "1 test: 0 passed, 1 skipped in 10ms", totals)
	})

	t.Run("empty tree", func(t *testing.T) {
		totals := FormatTotals(domain.NewTree(0.5))
		assert.Equal(t, "0 tests: 0 passed in 0ms", totals)
	})
}
