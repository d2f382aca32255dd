package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/mrz1836/spectree/internal/domain"
	"github.com/mrz1836/spectree/internal/logging"
	"github.com/mrz1836/spectree/internal/naming"
	"github.com/mrz1836/spectree/internal/tui"
)

// failureExcerpt pairs a failed test's identifier with its filtered
// failure text for the excerpt section at the end of the summary.
type failureExcerpt struct {
	id   string
	text string
}

// WriteMarkdown renders the Markdown summary for tree to w. The summary is
// aimed at code review attachments and automation that reads reports as
// text: run metadata up top, a counts line, the tree per file in fenced
// blocks and failure excerpts at the end.
func WriteMarkdown(w io.Writer, tree *domain.Tree, meta Meta) error {
	var b strings.Builder

	b.WriteString("# Test Report\n\n")
	fmt.Fprintf(&b, "- Run: `%s`\n", meta.RunID)
	fmt.Fprintf(&b, "- Generated: %s\n", meta.GeneratedAt.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "- Report: `%s`\n\n", meta.ReportID)

	b.WriteString(markdownTotals(tree))

	for _, root := range tree.Roots {
		fmt.Fprintf(&b, "\n## %s\n\n", root.DisplayName)
		b.WriteString("```text\n")

		// Render one file at a time so each fenced block holds exactly
		// that file's subtree.
		single := &domain.Tree{
			Roots:         []*domain.Node{root},
			SlowThreshold: tree.SlowThreshold,
		}
		if err := tui.RenderTree(&b, single, tui.WithPlainText()); err != nil {
			return fmt.Errorf("failed to render Markdown tree: %w", err)
		}
		b.WriteString("```\n")
	}

	if excerpts := collectFailureExcerpts(tree); len(excerpts) > 0 {
		b.WriteString("\n## Failures\n")
		for _, excerpt := range excerpts {
			fmt.Fprintf(&b, "\n### %s\n\n```text\n%s\n```\n", excerpt.id, excerpt.text)
		}
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("failed to write Markdown report: %w", err)
	}
	return nil
}

// markdownTotals returns the bolded counts line. Counts are grouped with
// thousands separators since this summary mainly exists for suites big
// enough to need one.
func markdownTotals(tree *domain.Tree) string {
	printer := message.NewPrinter(language.English)

	segments := []string{printer.Sprintf("%d passed", tree.TotalPassed())}
	if failed := tree.TotalFailed(); failed > 0 {
		segments = append(segments, printer.Sprintf("%d failed", failed))
	}
	if skipped := tree.TotalSkipped(); skipped > 0 {
		segments = append(segments, printer.Sprintf("%d skipped", skipped))
	}

	total := tree.TotalTests()
	testWord := "tests"
	if total == 1 {
		testWord = "test"
	}

	return printer.Sprintf("**%d %s**: %s in %s\n",
		total, testWord,
		strings.Join(segments, ", "),
		naming.FormatDuration(tree.TotalDuration()))
}

// collectFailureExcerpts walks the tree in order and returns every failed
// or errored test that carries failure text, filtered for sensitive
// values.
func collectFailureExcerpts(tree *domain.Tree) []failureExcerpt {
	var excerpts []failureExcerpt

	var walk func(node *domain.Node)
	walk = func(node *domain.Node) {
		if node.Kind == domain.KindTest {
			if node.Result != nil && node.Result.Outcome.IsFailure() && node.Result.Longrepr != "" {
				excerpts = append(excerpts, failureExcerpt{
					id:   node.ID,
					text: logging.FilterSensitiveValue(node.Result.Longrepr),
				})
			}
			return
		}
		for _, child := range node.Children {
			walk(child)
		}
	}
	for _, root := range tree.Roots {
		walk(root)
	}
	return excerpts
}
