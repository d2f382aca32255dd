// Package collector reconstructs the describe-tree from the flat chain
// sequences a test runner collects, then attaches result events to the
// right leaves as execution progresses.
//
// A Collector is used in two strictly separated epochs per session: one
// Build call with the complete set of chains at collection time, then
// zero or more sequential Update calls as result events arrive. The two
// epochs never interleave, and a Collector is confined to a single
// goroutine, so no locking is needed.
package collector

import (
	"github.com/mrz1836/spectree/internal/domain"
)

// Event is one result event from the execution phase, targeting a
// single test leaf by identifier.
//
// Example JSON representation (one line of events.jsonl):
//
//	{"id":"tests/test_auth.py::describe_login::it_works","phase":"call",
//	 "passed":true,"duration":0.012}
type Event struct {
	// NodeID is the target node's identifier.
	NodeID string `json:"id"`

	// Phase is the execution phase that produced this event.
	Phase domain.Phase `json:"phase"`

	// Passed, Failed and Skipped are the runner's outcome flags.
	Passed  bool `json:"passed"`
	Failed  bool `json:"failed"`
	Skipped bool `json:"skipped"`

	// Duration is the phase duration in seconds.
	Duration float64 `json:"duration"`

	// Longrepr is the long failure description (empty when absent).
	Longrepr string `json:"longrepr,omitempty"`

	// Sections holds captured output blocks attached to this event.
	Sections []domain.Section `json:"sections,omitempty"`

	// XFail is the expected-failure marker.
	XFail bool `json:"xfail,omitempty"`
}

// Collector owns the evolving tree for one collection session plus an
// identifier index for O(1) re-visit detection during Build and O(1)
// event resolution during Update.
type Collector struct {
	tree  *domain.Tree
	nodes map[string]*domain.Node
}

// New returns an empty Collector whose tree carries the given slow-test
// threshold in seconds.
func New(slowThreshold float64) *Collector {
	return &Collector{
		tree:  domain.NewTree(slowThreshold),
		nodes: make(map[string]*domain.Node),
	}
}

// Tree exposes the collected hierarchy for read access. Aggregation
// properties on it are pure and safe to read between Update calls.
func (c *Collector) Tree() *domain.Tree {
	return c.tree
}

// Build extends the tree from an ordered sequence of chains, each the
// ancestors-then-self element list for one discovered test (outermost
// first). Shared ancestors across chains merge into a single node with
// children appended in first-seen order; re-running Build with the same
// identifiers never duplicates nodes.
func (c *Collector) Build(chains [][]Element) {
	for _, chain := range chains {
		var parent *domain.Node
		for _, el := range chain {
			if existing, ok := c.nodes[el.ID()]; ok {
				parent = existing
				continue
			}

			cls, ok := Classify(el)
			if !ok {
				// Skipped elements leave the current parent untouched, so
				// the next element links to the last resolved ancestor.
				continue
			}

			node := &domain.Node{
				ID:          el.ID(),
				Name:        el.Name(),
				DisplayName: cls.DisplayName,
				Doc:         cls.Doc,
				Kind:        cls.Kind,
			}
			if cls.Kind == domain.KindTest {
				node.Result = domain.NewPendingResult(cls.Fixtures)
			}
			c.nodes[el.ID()] = node

			switch {
			case parent != nil:
				parent.AddChild(node)
			case cls.Kind == domain.KindFile:
				c.tree.AddRoot(node)
			default:
				// An unparented non-file node stays reachable through the
				// identifier index only. Upstream should not produce this
				// shape, but it must not crash the build.
			}

			parent = node
		}
	}
}

// Update applies one result event to its target node's Result. Events
// for unknown identifiers, or for nodes without a Result, are silently
// ignored; so are phase/flag combinations outside the documented policy.
// Events are idempotent overwrites, so replaying one is harmless.
func (c *Collector) Update(ev Event) {
	node, ok := c.nodes[ev.NodeID]
	if !ok || node.Result == nil {
		return
	}

	result := node.Result
	switch {
	case ev.Phase == domain.PhaseCall:
		// The call phase owns the result: outcome, duration and the
		// wholesale section list. An empty longrepr never erases one a
		// previous event recorded.
		result.Outcome = mapOutcome(ev)
		result.Duration = ev.Duration
		if ev.Longrepr != "" {
			result.Longrepr = ev.Longrepr
		}
		result.Sections = ev.Sections

	case (ev.Phase == domain.PhaseSetup || ev.Phase == domain.PhaseTeardown) && ev.Failed:
		// Fixture failures are errors, never reinterpreted as expected
		// failures even when the marker is present.
		result.Outcome = domain.OutcomeError
		result.Duration = ev.Duration
		if ev.Longrepr != "" {
			result.Longrepr = ev.Longrepr
		}

	case ev.Phase == domain.PhaseSetup && ev.Skipped:
		// A setup skip can still map to xfailed via the marker. The
		// longrepr is left alone here.
		result.Outcome = mapOutcome(ev)
		result.Duration = ev.Duration
	}
}

// mapOutcome converts an event's flag set to an Outcome. The
// expected-failure marker takes precedence over the plain flags.
func mapOutcome(ev Event) domain.Outcome {
	switch {
	case ev.XFail:
		if ev.Passed {
			return domain.OutcomeXPassed
		}
		return domain.OutcomeXFailed
	case ev.Passed:
		return domain.OutcomePassed
	case ev.Failed:
		return domain.OutcomeFailed
	case ev.Skipped:
		return domain.OutcomeSkipped
	default:
		return domain.OutcomePending
	}
}
