package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/mrz1836/spectree/internal/domain"
	"github.com/mrz1836/spectree/internal/logging"
)

// Envelope is the JSON export payload: report identity, aggregate totals
// and the full tree. Field names are snake_case like the run artifacts, so
// consumers parse one naming convention across the pipeline.
type Envelope struct {
	RunID         string         `json:"run_id"`
	ReportID      string         `json:"report_id"`
	Generated     time.Time      `json:"generated"`
	Totals        Totals         `json:"totals"`
	SlowThreshold float64        `json:"slow_threshold"`
	Roots         []*domain.Node `json:"roots"`
}

// Totals carries the aggregate counts for consumers that do not want to
// walk the node hierarchy.
type Totals struct {
	Tests    int     `json:"tests"`
	Passed   int     `json:"passed"`
	Failed   int     `json:"failed"`
	Skipped  int     `json:"skipped"`
	Duration float64 `json:"duration"`
}

// NewEnvelope builds the export payload for tree. Failure text and
// captured sections are deep-copied with sensitive values filtered, so
// the source tree is never mutated and stays safe for a live watch view.
func NewEnvelope(tree *domain.Tree, meta Meta) *Envelope {
	return &Envelope{
		RunID:     meta.RunID,
		ReportID:  meta.ReportID,
		Generated: meta.GeneratedAt,
		Totals: Totals{
			Tests:    tree.TotalTests(),
			Passed:   tree.TotalPassed(),
			Failed:   tree.TotalFailed(),
			Skipped:  tree.TotalSkipped(),
			Duration: tree.TotalDuration(),
		},
		SlowThreshold: tree.SlowThreshold,
		Roots:         redactedRoots(tree.Roots),
	}
}

// WriteJSON writes the indented JSON export for tree to w.
func WriteJSON(w io.Writer, tree *domain.Tree, meta Meta) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(NewEnvelope(tree, meta)); err != nil {
		return fmt.Errorf("failed to encode JSON report: %w", err)
	}
	return nil
}

// redactedRoots clones the root nodes with sensitive values filtered from
// every result.
func redactedRoots(roots []*domain.Node) []*domain.Node {
	out := make([]*domain.Node, 0, len(roots))
	for _, root := range roots {
		out = append(out, redactNode(root))
	}
	return out
}

// redactNode returns a copy of node whose result, if any, carries filtered
// failure text and section contents. Children are cloned recursively;
// shared immutable fields are copied as is.
func redactNode(node *domain.Node) *domain.Node {
	clone := *node

	if node.Result != nil {
		result := *node.Result
		result.Longrepr = logging.FilterSensitiveValue(result.Longrepr)
		if len(result.Sections) > 0 {
			sections := make([]domain.Section, len(result.Sections))
			for i, section := range result.Sections {
				sections[i] = domain.Section{
					Label: section.Label,
					Text:  logging.FilterSensitiveValue(section.Text),
				}
			}
			result.Sections = sections
		}
		clone.Result = &result
	}

	if len(node.Children) > 0 {
		children := make([]*domain.Node, len(node.Children))
		for i, child := range node.Children {
			children[i] = redactNode(child)
		}
		clone.Children = children
	}
	return &clone
}
