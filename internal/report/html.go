package report

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/mrz1836/spectree/internal/domain"
	"github.com/mrz1836/spectree/internal/logging"
	"github.com/mrz1836/spectree/internal/naming"
)

//go:embed templates/report.html.tmpl
var templateFS embed.FS

// htmlTemplate is parsed once at startup. The template is embedded, so a
// parse failure is a compile-time bug we want to hear about immediately.
//
//nolint:gochecknoglobals // parsed embedded template, read-only after init
var htmlTemplate = template.Must(template.ParseFS(templateFS, "templates/report.html.tmpl"))

// htmlPage is the template payload for the whole report page.
type htmlPage struct {
	Total    int
	Passed   int
	Failed   int
	Skipped  int
	Duration string
	Blocks   []*htmlNode
}

// htmlNode is the template payload for one tree node. Describe blocks use
// Stats and Children; test leaves use the remaining fields. Both shapes
// share the type so the template can recurse over mixed children.
type htmlNode struct {
	Test     bool
	Root     bool
	Open     bool
	Class    string
	Symbol   string
	Name     string
	Doc      string
	Stats    string
	Duration string
	Slow     bool
	Fixtures string
	Failure  string
	Sections []htmlSection
	Children []*htmlNode
}

// htmlSection is one captured-output block rendered as a collapsible
// details element beneath its test.
type htmlSection struct {
	Label string
	Text  string
}

// WriteHTML renders the standalone HTML report for tree to w. The page is
// self-contained: styles and the expand/collapse/failed-only controls are
// inlined, so the file can be opened straight from disk or attached to a
// CI run as a single artifact.
func WriteHTML(w io.Writer, tree *domain.Tree) error {
	if err := htmlTemplate.Execute(w, buildHTMLPage(tree)); err != nil {
		return fmt.Errorf("failed to render HTML report: %w", err)
	}
	return nil
}

// buildHTMLPage flattens the tree into the template payload. Each root
// contributes its children as top-level blocks; the file node itself is
// not rendered, matching the terminal tree.
func buildHTMLPage(tree *domain.Tree) *htmlPage {
	page := &htmlPage{
		Total:    tree.TotalTests(),
		Passed:   tree.TotalPassed(),
		Failed:   tree.TotalFailed(),
		Skipped:  tree.TotalSkipped(),
		Duration: naming.FormatDuration(tree.TotalDuration()),
	}
	for _, root := range tree.Roots {
		for _, child := range root.Children {
			if view := buildHTMLNode(child, tree.SlowThreshold, true); view != nil {
				page.Blocks = append(page.Blocks, view)
			}
		}
	}
	return page
}

// buildHTMLNode converts one node to its template payload. Describe blocks
// whose subtree contains a failure start open so a reader lands on the
// problem without clicking through the hierarchy.
func buildHTMLNode(node *domain.Node, slowThreshold float64, root bool) *htmlNode {
	if node.Kind == domain.KindTest {
		return buildHTMLTest(node, slowThreshold)
	}

	view := &htmlNode{
		Root: root,
		Open: node.OverallOutcome().IsFailure(),
		Name: node.DisplayName,
		Doc:  node.Doc,
		Stats: fmt.Sprintf("%d/%d passed, %s",
			node.PassedCount(), node.TestCount(),
			naming.FormatDuration(node.AggregateDuration())),
	}
	for _, child := range node.Children {
		if childView := buildHTMLNode(child, slowThreshold, false); childView != nil {
			view.Children = append(view.Children, childView)
		}
	}
	return view
}

// buildHTMLTest converts a test leaf to its template payload. Tests without
// a result are omitted entirely; failure text and captured output are
// filtered for sensitive values before they reach the page.
func buildHTMLTest(node *domain.Node, slowThreshold float64) *htmlNode {
	if node.Result == nil {
		return nil
	}

	outcome := node.Result.Outcome
	symbol, class := outcomeView(outcome)
	view := &htmlNode{
		Test:     true,
		Class:    class,
		Symbol:   symbol,
		Name:     node.DisplayName,
		Doc:      node.Doc,
		Duration: naming.FormatDuration(node.Result.Duration),
		Slow:     node.IsSlow(slowThreshold),
		Fixtures: strings.Join(node.Result.Fixtures, ", "),
	}
	if outcome.IsFailure() && node.Result.Longrepr != "" {
		view.Failure = logging.FilterSensitiveValue(node.Result.Longrepr)
	}
	for _, section := range node.Result.Sections {
		view.Sections = append(view.Sections, htmlSection{
			Label: section.Label,
			Text:  logging.FilterSensitiveValue(section.Text),
		})
	}
	return view
}

// outcomeView returns the symbol and CSS class for an outcome. Unknown
// outcomes fall back to the pending presentation.
func outcomeView(outcome domain.Outcome) (symbol, class string) {
	switch outcome {
	case domain.OutcomePassed:
		return "✓", "passed"
	case domain.OutcomeFailed:
		return "✗", "failed"
	case domain.OutcomeSkipped:
		return "○", "skipped"
	case domain.OutcomeXFailed:
		return "⊘", "xfailed"
	case domain.OutcomeXPassed:
		return "✗!", "xpassed"
	case domain.OutcomeError:
		return "☠", "error"
	case domain.OutcomePending:
		return "?", "pending"
	default:
		return "?", "pending"
	}
}
