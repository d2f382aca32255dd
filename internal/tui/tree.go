package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/mrz1836/spectree/internal/domain"
	"github.com/mrz1836/spectree/internal/naming"
)

// Tree guide fragments. A node rendered as the last child of its parent
// closes the guide line below it; any other node continues it.
const (
	connectorMiddle = "├── "
	connectorLast   = "└── "
	prefixContinue  = "│   "
	prefixBlank     = "    "
)

// slowMarker is appended to tests whose duration exceeded the slow threshold.
const slowMarker = " ⏱"

// fixtureMarker introduces the fixture list in expand mode.
const fixtureMarker = " 🔧 "

// truncationTail replaces the cut end of a line that exceeds the terminal width.
const truncationTail = "…"

// TreeRenderer renders a result tree as connector-guided, outcome-colored
// lines. Each file root contributes its children; the file node itself is
// never printed because the runner output already names the file.
//
// Describe children render before test children at every level, each group
// keeping its first-seen order. Top-level blocks are each treated as the
// closing child of their file, so sibling blocks read as separate groups
// rather than one joined trunk.
type TreeRenderer struct {
	tree         *domain.Tree
	expand       bool
	showFixtures bool
	failedOnly   bool
	showDetails  bool
	plain        bool
	maxWidth     int
}

// TreeOption configures a TreeRenderer.
type TreeOption func(*TreeRenderer)

// WithExpand enables expand mode: docstrings and fixture lists are appended
// to node lines.
func WithExpand(expand bool) TreeOption {
	return func(r *TreeRenderer) {
		r.expand = expand
	}
}

// WithFixtures controls whether fixture lists render in expand mode.
// Has no effect outside expand mode.
func WithFixtures(show bool) TreeOption {
	return func(r *TreeRenderer) {
		r.showFixtures = show
	}
}

// WithFailedOnly prunes the rendered tree to subtrees containing at least
// one failed or errored test. Stats on the surviving describe lines still
// cover the full subtree.
func WithFailedOnly(failedOnly bool) TreeOption {
	return func(r *TreeRenderer) {
		r.failedOnly = failedOnly
	}
}

// WithFailureDetails renders failure representation lines indented beneath
// failed and errored tests.
func WithFailureDetails(show bool) TreeOption {
	return func(r *TreeRenderer) {
		r.showDetails = show
	}
}

// WithMaxWidth caps rendered lines at the given number of terminal columns,
// truncating with an ellipsis. Zero or negative disables truncation.
func WithMaxWidth(width int) TreeOption {
	return func(r *TreeRenderer) {
		r.maxWidth = width
	}
}

// WithPlainText disables outcome coloring so the output can be embedded in
// files, independent of the process-wide color profile.
func WithPlainText() TreeOption {
	return func(r *TreeRenderer) {
		r.plain = true
	}
}

// NewTreeRenderer creates a renderer for the given tree. Fixture display
// defaults to on; everything else defaults to off.
func NewTreeRenderer(tree *domain.Tree, opts ...TreeOption) *TreeRenderer {
	r := &TreeRenderer{
		tree:         tree,
		showFixtures: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RenderTree renders tree to w with the given options.
// Convenience function for one-off rendering without keeping the renderer.
func RenderTree(w io.Writer, tree *domain.Tree, opts ...TreeOption) error {
	return NewTreeRenderer(tree, opts...).Render(w)
}

// Render writes the summary tree for every root to w.
func (r *TreeRenderer) Render(w io.Writer) error {
	for _, root := range r.tree.Roots {
		for _, child := range r.visibleChildren(root.Children) {
			if err := r.renderNode(w, child, "", true); err != nil {
				return err
			}
		}
	}
	return nil
}

// renderNode writes one node line plus, recursively, its children.
// prefix carries the accumulated guide fragments of the ancestors.
func (r *TreeRenderer) renderNode(w io.Writer, node *domain.Node, prefix string, isLast bool) error {
	connector := connectorMiddle
	if isLast {
		connector = connectorLast
	}
	outcome := node.OverallOutcome()

	line := prefix + connector + OutcomeSymbol(outcome) + " " + node.DisplayName
	if r.expand && node.Doc != "" {
		line += " -- " + node.Doc
	}
	if node.Kind == domain.KindTest {
		line += " (" + testDuration(node) + ")"
		if node.IsSlow(r.tree.SlowThreshold) {
			line += slowMarker
		}
		if r.expand && r.showFixtures && node.Result != nil && len(node.Result.Fixtures) > 0 {
			line += fixtureMarker + strings.Join(node.Result.Fixtures, ", ")
		}
	} else {
		line += fmt.Sprintf(" (%d/%d passed, %s)",
			node.PassedCount(), node.TestCount(),
			naming.FormatDuration(node.AggregateDuration()))
	}

	if r.maxWidth > 0 {
		line = runewidth.Truncate(line, r.maxWidth, truncationTail)
	}
	if !r.plain {
		line = OutcomeStyle(outcome).Render(line)
	}
	if _, err := fmt.Fprintln(w, line); err != nil {
		return err
	}

	childPrefix := prefix + prefixContinue
	if isLast {
		childPrefix = prefix + prefixBlank
	}

	if err := r.renderFailureDetails(w, node, outcome, childPrefix); err != nil {
		return err
	}

	children := r.visibleChildren(node.Children)
	for i, child := range children {
		if err := r.renderNode(w, child, childPrefix, i == len(children)-1); err != nil {
			return err
		}
	}
	return nil
}

// renderFailureDetails writes the failure representation beneath a failed
// or errored test line, one indented line per source line.
func (r *TreeRenderer) renderFailureDetails(w io.Writer, node *domain.Node, outcome domain.Outcome, childPrefix string) error {
	if !r.showDetails || node.Kind != domain.KindTest {
		return nil
	}
	if node.Result == nil || node.Result.Longrepr == "" || !outcome.IsFailure() {
		return nil
	}

	detailStyle := OutcomeStyle(domain.OutcomeFailed)
	for _, detail := range strings.Split(node.Result.Longrepr, "\n") {
		line := childPrefix + detail
		if r.maxWidth > 0 {
			line = runewidth.Truncate(line, r.maxWidth, truncationTail)
		}
		if !r.plain {
			line = detailStyle.Render(line)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// visibleChildren orders describe children ahead of test children, each
// group keeping its first-seen order, and applies failed-only pruning.
func (r *TreeRenderer) visibleChildren(children []*domain.Node) []*domain.Node {
	ordered := make([]*domain.Node, 0, len(children))
	for _, child := range children {
		if child.Kind != domain.KindTest && r.keep(child) {
			ordered = append(ordered, child)
		}
	}
	for _, child := range children {
		if child.Kind == domain.KindTest && r.keep(child) {
			ordered = append(ordered, child)
		}
	}
	return ordered
}

// keep reports whether a node survives failed-only pruning: test leaves
// must themselves be failed or errored, grouping nodes must contain at
// least one such leaf.
func (r *TreeRenderer) keep(node *domain.Node) bool {
	if !r.failedOnly {
		return true
	}
	if node.Kind == domain.KindTest {
		return node.OverallOutcome().IsFailure()
	}
	return node.FailedCount() > 0
}

// testDuration formats a test leaf's duration, treating a missing result
// as zero so pending tests still render a well-formed line.
func testDuration(node *domain.Node) string {
	if node.Result == nil {
		return naming.FormatDuration(0)
	}
	return naming.FormatDuration(node.Result.Duration)
}

// FormatTotals returns the one-line aggregate summary for a tree, for
// example "12 tests: 10 passed, 1 failed, 1 skipped in 4.32s". Failed and
// skipped segments are omitted when zero.
func FormatTotals(tree *domain.Tree) string {
	total := tree.TotalTests()
	testWord := "tests"
	if total == 1 {
		testWord = "test"
	}

	segments := []string{fmt.Sprintf("%d passed", tree.TotalPassed())}
	if failed := tree.TotalFailed(); failed > 0 {
		segments = append(segments, fmt.Sprintf("%d failed", failed))
	}
	if skipped := tree.TotalSkipped(); skipped > 0 {
		segments = append(segments, fmt.Sprintf("%d skipped", skipped))
	}

	return fmt.Sprintf("%d %s: %s in %s",
		total, testWord,
		strings.Join(segments, ", "),
		naming.FormatDuration(tree.TotalDuration()))
}
