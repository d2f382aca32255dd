package domain

// Node is the hierarchy's unit: a file, a describe block or a test leaf.
//
// A node exclusively owns its children and its Result; there is no
// back-reference from child to parent. Parent resolution happens via
// identifier lookup from the tree, never by pointer traversal. Once
// created, a node keeps its id, kind, name, display name and docstring
// for its lifetime; only the children sequence (append-only) and the
// Result contents change afterwards.
//
// Example JSON representation:
//
//	{
//	    "id": "tests/test_auth.py::describe_login::it_rejects_bad_password",
//	    "name": "it_rejects_bad_password",
//	    "display_name": "it rejects bad password",
//	    "kind": "test",
//	    "result": {...}
//	}
type Node struct {
	// ID is the stable identifier assigned by the upstream runner.
	ID string `json:"id"`

	// Name is the raw name as collected.
	Name string `json:"name"`

	// DisplayName is the humanized name shown to users.
	DisplayName string `json:"display_name"`

	// Doc is the optional docstring or description (empty when absent).
	Doc string `json:"doc,omitempty"`

	// Kind discriminates file, describe and test nodes.
	Kind NodeKind `json:"kind"`

	// Children holds owned child nodes in first-seen order. Only file and
	// describe nodes have children; the order is semantically meaningful
	// and drives display grouping.
	Children []*Node `json:"children,omitempty"`

	// Result is owned by TEST nodes only; nil for file and describe nodes.
	Result *Result `json:"result,omitempty"`
}

// AddChild appends child to the node's children sequence, preserving
// first-seen insertion order.
func (n *Node) AddChild(child *Node) {
	n.Children = append(n.Children, child)
}

// TestCount returns the number of test leaves in this subtree.
// A TEST node counts as one regardless of whether a result has arrived.
func (n *Node) TestCount() int {
	if n.Kind == KindTest {
		return 1
	}
	count := 0
	for _, child := range n.Children {
		count += child.TestCount()
	}
	return count
}

// PassedCount returns the number of passed test leaves in this subtree.
func (n *Node) PassedCount() int {
	return n.countOutcome(func(o Outcome) bool { return o == OutcomePassed })
}

// FailedCount returns the number of failed test leaves in this subtree.
// Setup/teardown errors count as failures alongside test-body failures.
func (n *Node) FailedCount() int {
	return n.countOutcome(func(o Outcome) bool { return o.IsFailure() })
}

// SkippedCount returns the number of skipped test leaves in this subtree.
func (n *Node) SkippedCount() int {
	return n.countOutcome(func(o Outcome) bool { return o == OutcomeSkipped })
}

// countOutcome implements the shared recursion for the count properties:
// a TEST node contributes one when its result outcome matches, any other
// node sums over its children.
func (n *Node) countOutcome(match func(Outcome) bool) int {
	if n.Kind == KindTest {
		if n.Result != nil && match(n.Result.Outcome) {
			return 1
		}
		return 0
	}
	count := 0
	for _, child := range n.Children {
		count += child.countOutcome(match)
	}
	return count
}

// AggregateDuration returns the total duration in seconds of all test
// leaves in this subtree.
func (n *Node) AggregateDuration() float64 {
	if n.Kind == KindTest {
		if n.Result == nil {
			return 0
		}
		return n.Result.Duration
	}
	total := 0.0
	for _, child := range n.Children {
		total += child.AggregateDuration()
	}
	return total
}

// OverallOutcome computes the composite outcome of this subtree.
//
// For a TEST node it is simply the result's outcome (pending when no
// result exists). For grouping nodes the precedence over the children's
// composite outcomes is, in order: no children → pending; any failed or
// error → failed; any xpassed → xpassed; all skipped → skipped; all
// pending → pending; otherwise passed. Note that xfailed contributes to
// the passing catch-all, never to a category of its own, and that a
// failed child dominates even alongside an xpassed one.
func (n *Node) OverallOutcome() Outcome {
	if n.Kind == KindTest {
		if n.Result == nil {
			return OutcomePending
		}
		return n.Result.Outcome
	}

	if len(n.Children) == 0 {
		return OutcomePending
	}

	allSkipped := true
	allPending := true
	sawXPassed := false
	for _, child := range n.Children {
		outcome := child.OverallOutcome()
		if outcome.IsFailure() {
			return OutcomeFailed
		}
		if outcome == OutcomeXPassed {
			sawXPassed = true
		}
		if outcome != OutcomeSkipped {
			allSkipped = false
		}
		if outcome != OutcomePending {
			allPending = false
		}
	}

	switch {
	case sawXPassed:
		return OutcomeXPassed
	case allSkipped:
		return OutcomeSkipped
	case allPending:
		return OutcomePending
	default:
		return OutcomePassed
	}
}

// IsSlow reports whether this node is a test leaf whose duration exceeds
// the given threshold in seconds. The comparison is strictly greater
// than, so a test exactly at the threshold is not slow.
func (n *Node) IsSlow(threshold float64) bool {
	if n.Kind != KindTest || n.Result == nil {
		return false
	}
	return n.Result.Duration > threshold
}

// find performs a depth-first search of this subtree, children in
// insertion order, returning the first node whose identifier matches.
func (n *Node) find(id string) *Node {
	if n.ID == id {
		return n
	}
	for _, child := range n.Children {
		if found := child.find(id); found != nil {
			return found
		}
	}
	return nil
}
