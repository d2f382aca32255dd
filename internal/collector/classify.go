package collector

import (
	"github.com/mrz1836/spectree/internal/constants"
	"github.com/mrz1836/spectree/internal/domain"
	"github.com/mrz1836/spectree/internal/naming"
)

// Classification is the typed result of classifying one chain element:
// the node kind plus the attributes relevant to that kind.
type Classification struct {
	// Kind is the recognized node kind.
	Kind domain.NodeKind

	// DisplayName is the humanized name for the node.
	DisplayName string

	// Doc is the docstring (always empty for FILE nodes).
	Doc string

	// Fixtures is the denylist-filtered dependency list, TEST nodes only.
	Fixtures []string
}

// Classify determines which node kind one chain element represents and
// extracts the attributes for that kind. The second return value is
// false when the element carries no display-worthy entity and must be
// skipped (the session container, or an unrecognized collector shape).
//
// The probe order is load-bearing and must not be rearranged: elements
// do not carry a reliable type tag, so each branch narrows the shape by
// presence or absence of a capability.
func Classify(el Element) (Classification, bool) {
	// Grouping shapes: anything exposing a path and the collect capability.
	if _, hasPath := el.Path(); hasPath && el.Collects() {
		if el.BlockType() == constants.DescribeBlockType {
			return Classification{
				Kind:        domain.KindDescribe,
				DisplayName: naming.HumanizeDescribeName(el.Name()),
				Doc:         describeDoc(el),
			}, true
		}

		// The session container has the grouping shape but no location.
		if !el.HasLocation() {
			return Classification{}, false
		}

		return Classification{
			Kind:        domain.KindFile,
			DisplayName: el.Name(),
		}, true
	}

	// Test leaves: anything with a function association.
	if fn, ok := el.Function(); ok {
		return Classification{
			Kind:        domain.KindTest,
			DisplayName: naming.HumanizeTestName(el.Name()),
			Doc:         fn.Doc,
			Fixtures:    filterFixtures(fn.Fixtures),
		}, true
	}

	return Classification{}, false
}

// describeDoc resolves a describe block's docstring: the function
// association wins when it carries one, then the element's own
// docstring, else empty.
func describeDoc(el Element) string {
	if fn, ok := el.Function(); ok && fn.Doc != "" {
		return fn.Doc
	}
	if doc, ok := el.Doc(); ok {
		return doc
	}
	return ""
}

// filterFixtures drops framework-internal fixture names, preserving the
// declaration order of everything else. Returns nil when nothing is left.
func filterFixtures(names []string) []string {
	var kept []string
	for _, name := range names {
		if !constants.IsBuiltinFixture(name) {
			kept = append(kept, name)
		}
	}
	return kept
}
