package domain

// Tree is the root container for one collection session. Roots hold the
// file-level nodes in the order the files were first encountered; only
// FILE-kind nodes may appear in the root sequence.
//
// The whole structure is built once per session and discarded across
// sessions; nodes are never removed within a session.
type Tree struct {
	// Roots holds the file-level nodes in first-seen order.
	Roots []*Node `json:"roots"`

	// SlowThreshold is the slow-test duration threshold in seconds.
	// It is used only by presentation logic but travels with the tree
	// so renderers do not need separate plumbing.
	SlowThreshold float64 `json:"slow_threshold"`
}

// NewTree returns an empty tree carrying the given slow-test threshold.
func NewTree(slowThreshold float64) *Tree {
	return &Tree{SlowThreshold: slowThreshold}
}

// AddRoot appends a file-level node to the root sequence.
func (t *Tree) AddRoot(node *Node) {
	t.Roots = append(t.Roots, node)
}

// TotalTests returns the number of test leaves across all roots.
func (t *Tree) TotalTests() int {
	total := 0
	for _, root := range t.Roots {
		total += root.TestCount()
	}
	return total
}

// TotalPassed returns the number of passed test leaves across all roots.
func (t *Tree) TotalPassed() int {
	total := 0
	for _, root := range t.Roots {
		total += root.PassedCount()
	}
	return total
}

// TotalFailed returns the number of failed or errored test leaves across
// all roots.
func (t *Tree) TotalFailed() int {
	total := 0
	for _, root := range t.Roots {
		total += root.FailedCount()
	}
	return total
}

// TotalSkipped returns the number of skipped test leaves across all roots.
func (t *Tree) TotalSkipped() int {
	total := 0
	for _, root := range t.Roots {
		total += root.SkippedCount()
	}
	return total
}

// TotalDuration returns the summed duration in seconds of all test
// leaves across all roots.
func (t *Tree) TotalDuration() float64 {
	total := 0.0
	for _, root := range t.Roots {
		total += root.AggregateDuration()
	}
	return total
}

// Find returns the first node with the given identifier, searching
// depth-first in root order, or nil when no node matches. Renderers use
// this to react incrementally to result events.
func (t *Tree) Find(id string) *Node {
	for _, root := range t.Roots {
		if found := root.find(id); found != nil {
			return found
		}
	}
	return nil
}
