package collector

// FunctionInfo describes the function association a chain element may
// carry: the function's docstring and its declared dependency names in
// declaration order.
type FunctionInfo struct {
	// Doc is the function's docstring (empty when absent).
	Doc string

	// Fixtures lists the declared dependency names, unfiltered.
	Fixtures []string
}

// Element is one opaque chain element as supplied by the upstream test
// runner. Elements expose heterogeneous, overlapping capability subsets
// depending on what they structurally represent, so the accessors use
// comma-ok style rather than an explicit type tag. The classifier probes
// them in a fixed order to disambiguate.
type Element interface {
	// ID returns the stable identifier assigned by the runner.
	ID() string

	// Name returns the raw collected name.
	Name() string

	// Path returns the element's path attribute, if it has one.
	Path() (string, bool)

	// Collects reports whether the element has the grouping capability,
	// i.e. it is some kind of collector node rather than a leaf.
	Collects() bool

	// HasLocation reports whether the element exposes location info.
	// The top-level session container is the one grouping shape that
	// does not.
	HasLocation() bool

	// BlockType returns the element's runtime type name as observed by
	// the runner (empty when unknown).
	BlockType() string

	// Doc returns the element's own docstring, if it has one.
	Doc() (string, bool)

	// Function returns the function association, if the element has one.
	// Test leaves always do; describe blocks usually do.
	Function() (FunctionInfo, bool)
}
